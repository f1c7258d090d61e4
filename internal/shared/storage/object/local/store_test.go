package local

import (
	"context"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

func TestSaveGeneratesUniqueNames(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	namePattern := regexp.MustCompile(`^\d+-[0-9a-f]{16}\.pdf$`)

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		storedName, path, err := store.Save(context.Background(), "invoice.PDF", strings.NewReader("content"))
		if err != nil {
			t.Fatalf("save: %v", err)
		}
		if !namePattern.MatchString(storedName) {
			t.Fatalf("unexpected stored name %q", storedName)
		}
		if seen[storedName] {
			t.Fatalf("stored name %q repeated", storedName)
		}
		seen[storedName] = true
		if filepath.Base(path) != storedName {
			t.Fatalf("path %q does not end in stored name %q", path, storedName)
		}
	}
}

func TestSaveAndOpenRoundtrip(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	storedName, _, err := store.Save(context.Background(), "receipt.png", strings.NewReader("pixels"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	rc, err := store.Open(context.Background(), storedName)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "pixels" {
		t.Fatalf("expected stored content, got %q", data)
	}
}

func TestOpenRejectsTraversal(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if _, err := store.Open(context.Background(), "../outside"); err == nil {
		t.Fatalf("expected traversal rejection")
	}
}

func TestSaveRejectsBadName(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if _, _, err := store.Save(context.Background(), "../evil.pdf", strings.NewReader("x")); err == nil {
		t.Fatalf("expected bad name rejection")
	}
}
