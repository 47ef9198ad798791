package utils

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFile(t *testing.T) {
	payload := []byte{0x00, 0xC3, 0x50, 0x01, 0xCE, 0xED}

	t.Run("raw", func(t *testing.T) {
		name := filepath.Join(t.TempDir(), "image.gb")
		if err := os.WriteFile(name, payload, 0o644); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got, err := LoadFile(name)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !bytes.Equal(got, payload) {
			t.Errorf("expected %X, got %X", payload, got)
		}
	})

	t.Run("gzip", func(t *testing.T) {
		name := filepath.Join(t.TempDir(), "image.gb.gz")
		var buf bytes.Buffer
		w := gzip.NewWriter(&buf)
		if _, err := w.Write(payload); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := w.Close(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := os.WriteFile(name, buf.Bytes(), 0o644); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got, err := LoadFile(name)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !bytes.Equal(got, payload) {
			t.Errorf("expected %X, got %X", payload, got)
		}
	})

	t.Run("zip", func(t *testing.T) {
		name := filepath.Join(t.TempDir(), "image.zip")
		var buf bytes.Buffer
		w := zip.NewWriter(&buf)
		entry, err := w.Create("image.gb")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := entry.Write(payload); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := w.Close(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := os.WriteFile(name, buf.Bytes(), 0o644); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got, err := LoadFile(name)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !bytes.Equal(got, payload) {
			t.Errorf("expected %X, got %X", payload, got)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.gb")); err == nil {
			t.Error("expected an error for a missing file")
		}
	})
}
