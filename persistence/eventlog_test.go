package persistence

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/klauspost/compress/zstd"

	"beast-ride-saga/server/models"
)

func TestEventLogRotatesHourly(t *testing.T) {
	dir := t.TempDir()
	log := NewEventLog(dir)
	clock := time.Date(2026, 3, 1, 10, 59, 0, 0, time.UTC)
	log.now = func() time.Time { return clock }

	write := func(at time.Time, x int) {
		t.Helper()
		err := log.WriteMove(MoveEvent{
			Time:      at,
			PlayerID:  "p-1",
			World:     "w",
			Direction: models.East,
			Moved:     true,
			Position:  models.Position{X: x, Y: 1},
		})
		if err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	write(clock, 1)
	write(time.Time{}, 2)
	write(clock.Add(2*time.Minute), 3)
	// a late event goes back to the file for its own hour
	write(clock.Add(30*time.Second), 4)
	if err := log.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	first := readMoves(t, MoveLogPath(dir, clock))
	second := readMoves(t, filepath.Join(dir, "moves-2026-03-01-11.jsonl.zst"))
	if len(first) != 3 || len(second) != 1 {
		t.Fatalf("got %d and %d events, want 3 and 1", len(first), len(second))
	}
	if first[1].Position.X != 2 || first[2].Position.X != 4 || second[0].Position.X != 3 {
		t.Fatalf("events out of order: %+v %+v", first, second)
	}
	if !first[1].Time.Equal(clock) {
		t.Fatalf("unstamped event time = %v, want %v", first[1].Time, clock)
	}
}

func readMoves(t *testing.T, path string) []MoveEvent {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	dec, err := zstd.NewReader(f)
	if err != nil {
		t.Fatalf("zstd: %v", err)
	}
	defer dec.Close()

	var out []MoveEvent
	sc := bufio.NewScanner(dec)
	for sc.Scan() {
		var e MoveEvent
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			t.Fatalf("decode line: %v", err)
		}
		out = append(out, e)
	}
	if err := sc.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}
	return out
}
