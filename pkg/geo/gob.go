package geo

import (
	"encoding/gob"
	"fmt"
	"os"
)

// loadSnapshot deserializes raw reference pairs from a gob-encoded file.
func loadSnapshot(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gob file: %w", err)
	}
	defer f.Close()

	var snap Snapshot
	if err := gob.NewDecoder(f).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode gob: %w", err)
	}
	return &snap, nil
}

// SaveSnapshot serializes raw reference pairs to a gob-encoded file at path.
// The import command writes this so later loads skip CSV parsing.
func SaveSnapshot(snap *Snapshot, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create gob file: %w", err)
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(snap); err != nil {
		return fmt.Errorf("encode gob: %w", err)
	}
	return nil
}
