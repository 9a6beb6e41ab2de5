package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/balancecoach/pkg/composition"
	"github.com/matzehuels/balancecoach/pkg/errors"
)

// ReadJSON decodes a snapshot from r. It checks only that the JSON is well
// formed; use [composition.Restore] or [LoadEngine] to validate the board.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (composition.Snapshot, error) {
	var snap composition.Snapshot
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&snap); err != nil {
		return composition.Snapshot{}, fmt.Errorf("decode: %w", err)
	}
	return snap, nil
}

// ImportJSON reads the snapshot stored at path.
func ImportJSON(path string) (composition.Snapshot, error) {
	if err := errors.ValidatePath(path); err != nil {
		return composition.Snapshot{}, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return composition.Snapshot{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "composition %s not found", path)
	}
	if err != nil {
		return composition.Snapshot{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

// LoadEngine imports the snapshot at path and restores an engine from it.
func LoadEngine(path string, opts ...composition.Option) (*composition.Engine, error) {
	snap, err := ImportJSON(path)
	if err != nil {
		return nil, err
	}
	e, err := composition.Restore(snap, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return e, nil
}
