package ingest

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"stylometer/internal/merror"
	"stylometer/internal/textmodel"
)

func TestParseDOCX(t *testing.T) {
	raw := buildDOCX(t, `<w:document><w:body><w:p><w:r><w:t>Chapter 1</w:t></w:r></w:p><w:p><w:r><w:t>Hello world.</w:t></w:r></w:p></w:body></w:document>`)
	got, err := parseDOCX(raw)
	if err != nil {
		t.Fatalf("parseDOCX failed: %v", err)
	}
	if got != "Chapter 1\nHello world." {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestParseFilePlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.txt")
	if err := os.WriteFile(path, []byte("\xef\xbb\xbfHello there. General\xff Kenobi!"), 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}
	parsed, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	if parsed.Title != "sample" {
		t.Fatalf("expected title sample, got %q", parsed.Title)
	}
	if parsed.Text != "Hello there. General� Kenobi!" {
		t.Fatalf("unexpected text %q", parsed.Text)
	}
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "missing.txt"))
	if !errors.Is(err, merror.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected wrapped not-exist error, got %v", err)
	}
}

func TestParseFileBrokenDOCX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.docx")
	if err := os.WriteFile(path, []byte("not a zip"), 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}
	if _, err := ParseFile(path); err == nil {
		t.Fatal("expected docx error")
	}
}

func TestAddFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "source.txt")
	if err := os.WriteFile(path, []byte("It is interesting that she is interested."), 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}
	m := textmodel.New("source1")
	if err := AddFile(m, path); err != nil {
		t.Fatalf("AddFile failed: %v", err)
	}
	if m.Words["is"] != 2 {
		t.Fatalf("expected is=2, got %d", m.Words["is"])
	}
	if err := AddFile(m, path+".missing"); !errors.Is(err, merror.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func buildDOCX(t *testing.T, bodyXML string) []byte {
	t.Helper()
	var b bytes.Buffer
	zw := zip.NewWriter(&b)
	f, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	xml := `<?xml version="1.0" encoding="UTF-8"?>` + bodyXML
	if _, err := f.Write([]byte(xml)); err != nil {
		t.Fatalf("write xml: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return b.Bytes()
}
