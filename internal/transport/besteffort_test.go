package transport

import (
	"bytes"
	"net"
	"testing"
	"time"

	"github.com/Virtual-Universe/Virtual-Universe-Early-Dev-sub000/internal/wire"
)

func startFakeDatagramEngine(t *testing.T) *net.UDPConn {
	t.Helper()
	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	if err != nil {
		t.Fatalf("listen udp: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestBestEffort_OneDatagramPerMessage(t *testing.T) {
	srv := startFakeDatagramEngine(t)
	c, err := DialBestEffort(BestEffortConfig{Addr: srv.LocalAddr().String()}, nil, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer c.Dispose()

	first := wire.Encode(wire.Header{Version: wire.ProtocolVersion, Index: 1}, &wire.UpdateActorPosition{
		Actor:    wire.ActorID{SimID: 1, ActorID: 2},
		Position: wire.Vector{X: 1, Y: 2, Z: 3},
	})
	second := wire.Encode(wire.Header{Version: wire.ProtocolVersion, Index: 2}, &wire.Logoff{SimID: 1})

	c.Send(first)
	c.Send(second)
	c.Update()

	// Each message must arrive as its own datagram, never coalesced.
	buf := make([]byte, 64*1024)
	_ = srv.SetReadDeadline(time.Now().Add(2 * time.Second))
	n, client, err := srv.ReadFromUDP(buf)
	if err != nil {
		t.Fatalf("read first: %v", err)
	}
	if !bytes.Equal(buf[:n], first) {
		t.Fatalf("first datagram %d bytes, want %d", n, len(first))
	}
	n, _, err = srv.ReadFromUDP(buf)
	if err != nil {
		t.Fatalf("read second: %v", err)
	}
	if !bytes.Equal(buf[:n], second) {
		t.Fatalf("second datagram %d bytes, want %d", n, len(second))
	}

	// And back: one inbound datagram becomes one received message.
	reply := wire.Encode(wire.Header{Version: wire.ProtocolVersion, Index: 3}, &wire.SetDynamicActor{
		Actor: wire.ActorID{SimID: 1, ActorID: 2},
	})
	if _, err := srv.WriteToUDP(reply, client); err != nil {
		t.Fatalf("write reply: %v", err)
	}

	var got []byte
	deadline := time.Now().Add(2 * time.Second)
	for got == nil && time.Now().Before(deadline) {
		c.Update()
		if msg, ok := c.Receive(); ok {
			got = msg
		}
	}
	if !bytes.Equal(got, reply) {
		t.Fatalf("reply mismatch: got %d bytes", len(got))
	}
}

func TestBestEffort_SendAlwaysAccepted(t *testing.T) {
	srv := startFakeDatagramEngine(t)
	c, err := DialBestEffort(BestEffortConfig{Addr: srv.LocalAddr().String()}, nil, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer c.Dispose()

	// The connectionless channel never refuses an enqueue, even after the
	// peer goes away.
	_ = srv.Close()
	for i := 0; i < 10; i++ {
		if !c.Send(wire.Encode(wire.Header{Version: wire.ProtocolVersion}, &wire.Logoff{SimID: 1})) {
			t.Fatalf("send %d rejected", i)
		}
	}
	// Flushing may hit ICMP-driven errors; they are swallowed and the
	// channel stays usable.
	c.Update()
	c.Update()
	if !c.Send(wire.Encode(wire.Header{Version: wire.ProtocolVersion}, &wire.Logoff{SimID: 1})) {
		t.Fatalf("send rejected after socket errors")
	}
}

func TestBestEffort_OwnThreadFlushes(t *testing.T) {
	srv := startFakeDatagramEngine(t)
	c, err := DialBestEffort(BestEffortConfig{
		Addr:         srv.LocalAddr().String(),
		PollInterval: 2 * time.Millisecond,
		OwnThread:    true,
	}, nil, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer c.Dispose()

	msg := wire.Encode(wire.Header{Version: wire.ProtocolVersion, Index: 9}, &wire.Logoff{SimID: 3})
	c.Send(msg)

	buf := make([]byte, 64*1024)
	_ = srv.SetReadDeadline(time.Now().Add(2 * time.Second))
	n, _, err := srv.ReadFromUDP(buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(buf[:n], msg) {
		t.Fatalf("datagram mismatch")
	}
}
