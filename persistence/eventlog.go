package persistence

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"

	"beast-ride-saga/server/models"
)

const moveLogHour = "2006-01-02-15"

// MoveEvent records one exploration step
type MoveEvent struct {
	Time       time.Time          `json:"time"`
	PlayerID   string             `json:"player_id"`
	World      string             `json:"world"`
	Direction  models.Direction   `json:"direction"`
	Moved      bool               `json:"moved"`
	Position   models.Position    `json:"position"`
	Discovered models.Discoveries `json:"discovered"`
}

// EventLog appends move events to zstd-compressed JSONL files, one file per
// UTC hour of the event time: <dir>/moves-YYYY-MM-DD-HH.jsonl.zst.
type EventLog struct {
	dir string
	now func() time.Time

	mu  sync.Mutex
	seg *moveSegment
}

// moveSegment is the open file for one hour
type moveSegment struct {
	hour string
	file *os.File
	zw   *zstd.Encoder
	buf  *bufio.Writer
	enc  *json.Encoder
}

func NewEventLog(dir string) *EventLog {
	return &EventLog{dir: dir, now: time.Now}
}

// WriteMove appends e to the file for its hour. Events without a time are
// stamped with the current time.
func (l *EventLog) WriteMove(e MoveEvent) error {
	if e.Time.IsZero() {
		e.Time = l.now()
	}
	hour := e.Time.UTC().Format(moveLogHour)

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.seg == nil || l.seg.hour != hour {
		if err := l.closeSegment(); err != nil {
			return err
		}
		seg, err := openMoveSegment(l.dir, MoveLogPath(l.dir, e.Time), hour)
		if err != nil {
			return fmt.Errorf("event log: %w", err)
		}
		l.seg = seg
	}

	// Encode writes the trailing newline
	if err := l.seg.enc.Encode(e); err != nil {
		return err
	}
	return l.seg.buf.Flush()
}

func (l *EventLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closeSegment()
}

func (l *EventLog) closeSegment() error {
	if l.seg == nil {
		return nil
	}
	seg := l.seg
	l.seg = nil

	err := seg.buf.Flush()
	if cerr := seg.zw.Close(); err == nil {
		err = cerr
	}
	if cerr := seg.file.Close(); err == nil {
		err = cerr
	}
	return err
}

// MoveLogPath is the file holding events from the given hour
func MoveLogPath(dir string, t time.Time) string {
	return filepath.Join(dir, "moves-"+t.UTC().Format(moveLogHour)+".jsonl.zst")
}

func openMoveSegment(dir, path, hour string) (*moveSegment, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	zw, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	buf := bufio.NewWriter(zw)
	return &moveSegment{hour: hour, file: f, zw: zw, buf: buf, enc: json.NewEncoder(buf)}, nil
}
