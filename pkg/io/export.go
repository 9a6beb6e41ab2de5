package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/balancecoach/pkg/composition"
	"github.com/matzehuels/balancecoach/pkg/errors"
)

// WriteJSON encodes snap as indented JSON and writes it to w.
func WriteJSON(snap composition.Snapshot, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes snap to a JSON file at path.
func ExportJSON(snap composition.Snapshot, path string) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(snap, f)
}

// SaveEngine exports the current state of e to path.
func SaveEngine(e *composition.Engine, path string) error {
	return ExportJSON(e.Snapshot(), path)
}
