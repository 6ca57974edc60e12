package transport

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/Virtual-Universe/Virtual-Universe-Early-Dev-sub000/internal/wire"
)

var testLayout = FrameLayout{HeaderSize: wire.HeaderSize, LengthOffset: wire.LengthOffset}

func testFrames(t *testing.T) [][]byte {
	t.Helper()
	bodies := []wire.Body{
		&wire.Logon{SimID: 7, Name: "TestSim"},
		&wire.AdvanceTime{SimID: 7, Step: 0.25},
		&wire.AddConvexMesh{Shape: wire.ShapeID{SimID: 7, ShapeID: 5}, Points: []wire.Vector{{X: 1}, {Y: 2}, {Z: 3}}},
		&wire.Logoff{SimID: 7},
	}
	frames := make([][]byte, 0, len(bodies))
	for i, b := range bodies {
		frames = append(frames, wire.Encode(wire.Header{Version: wire.ProtocolVersion, Index: uint32(i)}, b))
	}
	return frames
}

func TestSplitter_WholeStream(t *testing.T) {
	frames := testFrames(t)
	stream := bytes.Join(frames, nil)

	s := &splitter{layout: testLayout}
	got, err := s.next(stream)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if len(got) != len(frames) {
		t.Fatalf("messages=%d want=%d", len(got), len(frames))
	}
	for i := range frames {
		if !bytes.Equal(got[i], frames[i]) {
			t.Fatalf("message %d mismatch", i)
		}
	}
	if len(s.overflow) != 0 {
		t.Fatalf("overflow=%d", len(s.overflow))
	}
}

// Splitting one contiguous stream at every possible offset must yield the
// same ordered message sequence as feeding it whole: the split may land
// mid-header, mid-body, or exactly on a boundary.
func TestSplitter_EverySplitOffset(t *testing.T) {
	frames := testFrames(t)
	stream := bytes.Join(frames, nil)

	for cut := 0; cut <= len(stream); cut++ {
		s := &splitter{layout: testLayout}
		var got [][]byte

		part, err := s.next(stream[:cut])
		if err != nil {
			t.Fatalf("cut=%d: %v", cut, err)
		}
		got = append(got, part...)
		part, err = s.next(stream[cut:])
		if err != nil {
			t.Fatalf("cut=%d: %v", cut, err)
		}
		got = append(got, part...)

		if len(got) != len(frames) {
			t.Fatalf("cut=%d: messages=%d want=%d", cut, len(got), len(frames))
		}
		for i := range frames {
			if !bytes.Equal(got[i], frames[i]) {
				t.Fatalf("cut=%d: message %d mismatch", cut, i)
			}
		}
	}
}

func TestSplitter_ByteAtATime(t *testing.T) {
	frames := testFrames(t)
	stream := bytes.Join(frames, nil)

	s := &splitter{layout: testLayout}
	var got [][]byte
	for i := range stream {
		part, err := s.next(stream[i : i+1])
		if err != nil {
			t.Fatalf("byte %d: %v", i, err)
		}
		got = append(got, part...)
	}
	if len(got) != len(frames) {
		t.Fatalf("messages=%d want=%d", len(got), len(frames))
	}
	for i := range frames {
		if !bytes.Equal(got[i], frames[i]) {
			t.Fatalf("message %d mismatch", i)
		}
	}
}

func TestSplitter_DeclaredLengthOutOfRange(t *testing.T) {
	frame := wire.Encode(wire.Header{Version: wire.ProtocolVersion}, &wire.Logoff{SimID: 1})

	tooSmall := append([]byte(nil), frame...)
	binary.BigEndian.PutUint32(tooSmall[wire.LengthOffset:], uint32(wire.HeaderSize-1))
	s := &splitter{layout: testLayout}
	if _, err := s.next(tooSmall); err == nil {
		t.Fatalf("expected error for undersized declared length")
	}

	tooBig := append([]byte(nil), frame...)
	binary.BigEndian.PutUint32(tooBig[wire.LengthOffset:], uint32(maxFrameSize+1))
	s = &splitter{layout: testLayout}
	if _, err := s.next(tooBig); err == nil {
		t.Fatalf("expected error for oversized declared length")
	}
}

// A bad-version message is still framed correctly: the splitter works from
// the length field alone, so the stream does not desynchronize and the
// following message survives.
func TestSplitter_BadVersionDoesNotDesync(t *testing.T) {
	bad := wire.Encode(wire.Header{Version: wire.ProtocolVersion}, &wire.Logon{SimID: 1, Name: "a"})
	binary.BigEndian.PutUint16(bad[0:], wire.ProtocolVersion+7)
	good := wire.Encode(wire.Header{Version: wire.ProtocolVersion}, &wire.Logoff{SimID: 1})

	s := &splitter{layout: testLayout}
	got, err := s.next(append(append([]byte(nil), bad...), good...))
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("messages=%d", len(got))
	}
	if _, _, err := wire.Decode(got[0]); err == nil {
		t.Fatalf("expected version error on first message")
	}
	if _, _, err := wire.Decode(got[1]); err != nil {
		t.Fatalf("second message should decode: %v", err)
	}
}

func TestFrameLayout_Validate(t *testing.T) {
	if err := testLayout.validate(); err != nil {
		t.Fatalf("canonical layout rejected: %v", err)
	}
	bad := []FrameLayout{
		{HeaderSize: 0, LengthOffset: 0},
		{HeaderSize: 8, LengthOffset: -1},
		{HeaderSize: 8, LengthOffset: 6},
	}
	for _, l := range bad {
		if err := l.validate(); err == nil {
			t.Fatalf("layout %+v accepted", l)
		}
	}
}

// FuzzSplitter feeds the reassembler random streams in two random pieces.
// It must never panic, and on valid streams the split feed must reproduce
// the whole-feed result.
func FuzzSplitter(f *testing.F) {
	frames := [][]byte{
		wire.Encode(wire.Header{Version: wire.ProtocolVersion}, &wire.Logoff{SimID: 1}),
		wire.Encode(wire.Header{Version: wire.ProtocolVersion}, &wire.Logon{SimID: 2, Name: "fuzz"}),
	}
	f.Add(bytes.Join(frames, nil), 10)
	f.Add(frames[0], 0)
	f.Add([]byte{}, 0)
	f.Add([]byte{0xff, 0xff}, 1)

	f.Fuzz(func(t *testing.T, stream []byte, cut int) {
		if cut < 0 || cut > len(stream) {
			cut = len(stream) / 2
		}
		whole := &splitter{layout: testLayout}
		wantMsgs, wantErr := whole.next(append([]byte(nil), stream...))

		split := &splitter{layout: testLayout}
		gotMsgs, err := split.next(append([]byte(nil), stream[:cut]...))
		if err == nil {
			var more [][]byte
			more, err = split.next(append([]byte(nil), stream[cut:]...))
			gotMsgs = append(gotMsgs, more...)
		}

		if (wantErr == nil) != (err == nil) {
			// An error can surface in either half depending on where the
			// cut lands, but a clean whole-feed must stay clean when split.
			if wantErr == nil {
				t.Fatalf("split feed failed where whole feed succeeded: %v", err)
			}
			return
		}
		if wantErr != nil {
			return
		}
		if len(gotMsgs) != len(wantMsgs) {
			t.Fatalf("split feed yielded %d messages, whole feed %d", len(gotMsgs), len(wantMsgs))
		}
		for i := range wantMsgs {
			if !bytes.Equal(gotMsgs[i], wantMsgs[i]) {
				t.Fatalf("message %d differs between split and whole feed", i)
			}
		}
	})
}
