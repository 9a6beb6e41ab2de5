package io

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/balancecoach/pkg/composition"
	"github.com/matzehuels/balancecoach/pkg/errors"
)

func TestRoundTrip(t *testing.T) {
	e := composition.New(composition.DefaultBoard(), composition.WithSeed(5), composition.WithMode(composition.ModeSymmetrical))
	if _, err := e.AddShape(composition.KindSquare, 100, 2); err != nil {
		t.Fatalf("AddShape: %v", err)
	}
	path := filepath.Join(t.TempDir(), "board.json")
	if err := SaveEngine(e, path); err != nil {
		t.Fatalf("SaveEngine: %v", err)
	}
	got, err := LoadEngine(path)
	if err != nil {
		t.Fatalf("LoadEngine: %v", err)
	}
	want := e.Shapes()
	for i, s := range got.Shapes() {
		if s != want[i] {
			t.Errorf("shape %d = %+v, want %+v", i, s, want[i])
		}
	}
	if got.Mode() != composition.ModeSymmetrical {
		t.Errorf("mode = %s", got.Mode())
	}
}

func TestReadJSONMinimal(t *testing.T) {
	in := `{"shapes":[{"id":"a","kind":"rectangle","x":0,"y":0,"width":50,"height":100,"shade":2}]}`
	snap, err := ReadJSON(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	e, err := composition.Restore(snap)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	s, _ := e.Shape("a")
	if s.Weight != 62.5 {
		t.Errorf("weight = %v, want 62.5", s.Weight)
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"malformed", `{"shapes": [`},
		{"unknown field", `{"nodes": []}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadJSON(strings.NewReader(tt.in)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadEngineInvalidBoard(t *testing.T) {
	var buf bytes.Buffer
	snap := composition.Snapshot{Shapes: []composition.Shape{
		composition.NewShape("a", composition.KindSquare, 360, 0, 100, 1),
	}}
	if err := WriteJSON(snap, &buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := ExportJSON(snap, path); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	if _, err := LoadEngine(path); err == nil {
		t.Error("straddling shape accepted")
	}
}

func TestPathErrors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.json")
	if _, err := ImportJSON(missing); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ImportJSON(missing) = %v, want FILE_NOT_FOUND", err)
	}
	if _, err := ImportJSON(""); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("ImportJSON(\"\") = %v, want INVALID_PATH", err)
	}
	if err := ExportJSON(composition.Snapshot{}, "board\x00.json"); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("ExportJSON(control char) = %v, want INVALID_PATH", err)
	}
}
