package persistence

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"

	"beast-ride-saga/server/models"
)

// SnapshotVersion is the current snapshot file format
const SnapshotVersion = 1

// SnapshotHeader is the first line of a snapshot file
type SnapshotHeader struct {
	Version int       `json:"version"`
	Name    string    `json:"name"`
	Seed    int64     `json:"seed"`
	Width   int       `json:"width"`
	Height  int       `json:"height"`
	SavedAt time.Time `json:"saved_at"`
}

// SnapshotPath returns the file a named world is snapshotted to
func SnapshotPath(dir, name string) string {
	return filepath.Join(dir, name+".snap.zst")
}

// WriteSnapshot writes a zstd stream holding a JSON header line followed by the world
func WriteSnapshot(path, name string, w *models.WorldMap) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}

	if err := writeSnapshot(f, name, w); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

func writeSnapshot(out io.Writer, name string, w *models.WorldMap) error {
	enc, err := zstd.NewWriter(out, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	bw := bufio.NewWriterSize(enc, 256*1024)

	header := SnapshotHeader{
		Version: SnapshotVersion,
		Name:    name,
		Seed:    w.Seed,
		Width:   w.Width,
		Height:  w.Height,
		SavedAt: time.Now().UTC(),
	}
	hb, err := json.Marshal(header)
	if err != nil {
		_ = enc.Close()
		return err
	}
	if _, err := bw.Write(hb); err != nil {
		_ = enc.Close()
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		_ = enc.Close()
		return err
	}
	if err := json.NewEncoder(bw).Encode(w); err != nil {
		_ = enc.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		_ = enc.Close()
		return err
	}
	return enc.Close()
}

// ReadSnapshot restores the header and world from a snapshot file
func ReadSnapshot(path string) (SnapshotHeader, *models.WorldMap, error) {
	var header SnapshotHeader
	f, err := os.Open(path)
	if err != nil {
		return header, nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return header, nil, err
	}
	defer dec.Close()

	br := bufio.NewReaderSize(dec, 256*1024)
	header, err = readHeader(br)
	if err != nil {
		return header, nil, err
	}

	var w models.WorldMap
	if err := json.NewDecoder(br).Decode(&w); err != nil {
		return header, nil, fmt.Errorf("snapshot body: %w", err)
	}
	if len(w.Cells) != w.Width*w.Height {
		return header, nil, fmt.Errorf("snapshot has %d cells, want %dx%d", len(w.Cells), w.Width, w.Height)
	}
	return header, &w, nil
}

// ReadSnapshotHeader reads only the header line of a snapshot file
func ReadSnapshotHeader(path string) (SnapshotHeader, error) {
	f, err := os.Open(path)
	if err != nil {
		return SnapshotHeader{}, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return SnapshotHeader{}, err
	}
	defer dec.Close()
	return readHeader(bufio.NewReader(dec))
}

func readHeader(br *bufio.Reader) (SnapshotHeader, error) {
	var header SnapshotHeader
	line, err := br.ReadBytes('\n')
	if err != nil {
		return header, fmt.Errorf("snapshot header: %w", err)
	}
	if err := json.Unmarshal(line, &header); err != nil {
		return header, fmt.Errorf("snapshot header: %w", err)
	}
	if header.Version != SnapshotVersion {
		return header, fmt.Errorf("unsupported snapshot version %d", header.Version)
	}
	return header, nil
}
