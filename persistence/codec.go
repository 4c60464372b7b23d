package persistence

import (
	"encoding/json"
	"fmt"

	"github.com/klauspost/compress/zstd"

	"beast-ride-saga/server/models"
)

var (
	encoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	decoder, _ = zstd.NewReader(nil)
)

// MarshalWorld encodes a world in its plain JSON save shape
func MarshalWorld(w *models.WorldMap) ([]byte, error) {
	return json.Marshal(w)
}

// UnmarshalWorld decodes the plain JSON save shape
func UnmarshalWorld(data []byte) (*models.WorldMap, error) {
	var w models.WorldMap
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, err
	}
	if len(w.Cells) != w.Width*w.Height {
		return nil, fmt.Errorf("world has %d cells, want %dx%d", len(w.Cells), w.Width, w.Height)
	}
	return &w, nil
}

// EncodeWorld returns the zstd-compressed JSON save of a world
func EncodeWorld(w *models.WorldMap) ([]byte, error) {
	raw, err := MarshalWorld(w)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal world: %w", err)
	}
	return encoder.EncodeAll(raw, make([]byte, 0, len(raw)/4)), nil
}

// DecodeWorld reverses EncodeWorld
func DecodeWorld(data []byte) (*models.WorldMap, error) {
	raw, err := decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress world: %w", err)
	}
	return UnmarshalWorld(raw)
}
