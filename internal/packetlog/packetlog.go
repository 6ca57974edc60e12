// Package packetlog writes optional NDJSON telemetry for wire traffic.
//
// One record per line; enabled by configuring a file path. The zero-value
// (nil) Logger is safe to call and does nothing, so call sites never need a
// nil check.
package packetlog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Record is one NDJSON telemetry line. Frame records carry the wire header
// fields so captures can be correlated with the remote engine's logs.
type Record struct {
	RunID     string `json:"run_id"`
	Timestamp string `json:"ts"`
	Type      string `json:"type"`                // startup, frame, drop, event
	Direction string `json:"direction,omitempty"` // in, out
	Channel   string `json:"channel,omitempty"`   // reliable, besteffort
	MsgType   uint16 `json:"msg_type,omitempty"`
	MsgIndex  uint32 `json:"msg_index,omitempty"`
	Length    int    `json:"len,omitempty"`
	Message   string `json:"message,omitempty"`
}

type Logger struct {
	mu sync.Mutex
	f  *os.File
	w  *bufio.Writer
}

func New(path string) (*Logger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return &Logger{
		f: f,
		w: bufio.NewWriterSize(f, 256*1024),
	}, nil
}

func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.w != nil {
		_ = l.w.Flush()
	}
	if l.f != nil {
		return l.f.Close()
	}
	return nil
}

func (l *Logger) Log(rec Record) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.w == nil {
		return
	}
	line, err := json.Marshal(rec)
	if err != nil {
		return
	}
	_, _ = l.w.Write(append(line, '\n'))
	_ = l.w.Flush()
}

func NowTS() string { return time.Now().UTC().Format(time.RFC3339Nano) }

func MakeRunID() string {
	// Avoid embedding timestamps in identifiers. Use a random UUID.
	id, err := uuid.NewRandom()
	if err != nil {
		// Extremely rare; keep it unique-ish without leaking wall-clock date formatting.
		return fmt.Sprintf("run-%d", time.Now().UTC().UnixNano())
	}
	return "run-" + id.String()
}
