package photos

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDiskStore_Save(t *testing.T) {
	dir := t.TempDir()
	s, err := NewDiskStore(filepath.Join(dir, "uploads"), "/uploads/")
	if err != nil {
		t.Fatalf("NewDiskStore failed: %v", err)
	}

	data := []byte("not really a jpeg")
	url, err := s.Save(context.Background(), "p1", "IMG_0001.PNG", data)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !strings.HasPrefix(url, "/uploads/walk-") || !strings.HasSuffix(url, ".png") {
		t.Fatalf("unexpected url %q", url)
	}

	got, err := os.ReadFile(filepath.Join(dir, "uploads", strings.TrimPrefix(url, "/uploads/")))
	if err != nil {
		t.Fatalf("read stored photo: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatal("stored bytes differ")
	}

	leftovers, _ := filepath.Glob(filepath.Join(dir, "uploads", "*.tmp"))
	if len(leftovers) != 0 {
		t.Fatalf("temp files left behind: %v", leftovers)
	}
}

func TestDiskStore_UnknownExtensionDefaultsToJPG(t *testing.T) {
	s, err := NewDiskStore(t.TempDir(), "/uploads")
	if err != nil {
		t.Fatalf("NewDiskStore failed: %v", err)
	}
	url, err := s.Save(context.Background(), "p1", "payload.exe", []byte{1})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !strings.HasSuffix(url, ".jpg") {
		t.Fatalf("expected .jpg, got %q", url)
	}
}

func TestDiskStore_Delete(t *testing.T) {
	dir := t.TempDir()
	s, err := NewDiskStore(dir, "/uploads")
	if err != nil {
		t.Fatalf("NewDiskStore failed: %v", err)
	}
	url, err := s.Save(context.Background(), "p1", "walk.jpg", []byte{1})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if err := s.Delete(context.Background(), url); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if files, _ := os.ReadDir(dir); len(files) != 0 {
		t.Fatalf("expected an empty dir, found %d files", len(files))
	}
	if err := s.Delete(context.Background(), url); err != nil {
		t.Fatalf("deleting twice must succeed, got %v", err)
	}

	for _, bad := range []string{"", "/elsewhere/walk.jpg", "/uploads/../secret", "/uploads/a/b.jpg"} {
		if err := s.Delete(context.Background(), bad); err == nil {
			t.Errorf("Delete(%q) should be refused", bad)
		}
	}
}
