package research

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestIngestEmptyInput(t *testing.T) {
	bundle := IngestDocuments(nil)
	if !bundle.Empty() {
		t.Error("expected empty bundle for empty input")
	}
	if len(bundle.Skipped) != 0 {
		t.Errorf("expected no warnings, got %v", bundle.Skipped)
	}
}

func TestIngestPreservesUploadOrder(t *testing.T) {
	dir := t.TempDir()
	files := []FileHandle{
		{Path: writeTempFile(t, dir, "b.txt", []byte("second")), Name: "b.txt"},
		{Path: writeTempFile(t, dir, "a.txt", []byte("first")), Name: "a.txt"},
		{Path: writeTempFile(t, dir, "c.txt", []byte("third")), Name: "c.txt"},
	}

	bundle := IngestDocuments(files)
	if len(bundle.Documents) != 3 {
		t.Fatalf("expected 3 documents, got %d", len(bundle.Documents))
	}
	for i, want := range []string{"b.txt", "a.txt", "c.txt"} {
		if bundle.Documents[i].Name != want {
			t.Errorf("expected document %d to be %q, got %q", i, want, bundle.Documents[i].Name)
		}
	}
	if bundle.Documents[0].Text != "second" {
		t.Errorf("unexpected content: %q", bundle.Documents[0].Text)
	}
}

func TestIngestSkipsFailuresWithoutAborting(t *testing.T) {
	dir := t.TempDir()
	files := []FileHandle{
		{Path: writeTempFile(t, dir, "good1.txt", []byte("hello")), Name: "good1.txt"},
		{Path: filepath.Join(dir, "missing.txt"), Name: "missing.txt"},
		{Path: writeTempFile(t, dir, "binary.bin", []byte{0xff, 0xfe, 0x00, 0x80}), Name: "binary.bin"},
		{Path: writeTempFile(t, dir, "good2.txt", []byte("world")), Name: "good2.txt"},
	}

	bundle := IngestDocuments(files)

	if len(bundle.Documents) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(bundle.Documents))
	}
	if bundle.Documents[0].Name != "good1.txt" || bundle.Documents[1].Name != "good2.txt" {
		t.Errorf("unexpected document order: %v", bundle.Documents)
	}

	if len(bundle.Skipped) != 2 {
		t.Fatalf("expected 2 skip warnings, got %d", len(bundle.Skipped))
	}
	if bundle.Skipped[0].Name != "missing.txt" {
		t.Errorf("expected first skip to be missing.txt, got %q", bundle.Skipped[0].Name)
	}
	if bundle.Skipped[1].Name != "binary.bin" {
		t.Errorf("expected second skip to be binary.bin, got %q", bundle.Skipped[1].Name)
	}
	for _, skip := range bundle.Skipped {
		if skip.Reason == "" {
			t.Errorf("expected a skip reason for %s", skip.Name)
		}
	}
}
