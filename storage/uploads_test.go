package storage

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// 1x1 transparent PNG
const tinyPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

func TestSaveBase64Image(t *testing.T) {
	t.Setenv("UPLOAD_DIR", t.TempDir())

	url, err := SaveBase64Image("data:image/png;base64,"+tinyPNG, "avatars")
	if err != nil {
		t.Fatalf("SaveBase64Image: %v", err)
	}
	if !strings.HasPrefix(url, "/uploads/avatars/") || !strings.HasSuffix(url, ".png") {
		t.Fatalf("unexpected url %q", url)
	}

	path := filepath.Join(UploadDir(), strings.TrimPrefix(url, "/uploads/"))
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	want, _ := base64.StdEncoding.DecodeString(tinyPNG)
	if len(data) != len(want) {
		t.Fatalf("stored %d bytes, want %d", len(data), len(want))
	}
}

func TestSaveBase64ImageBarePayload(t *testing.T) {
	t.Setenv("UPLOAD_DIR", t.TempDir())

	// No data-URL header: defaults to jpg
	url, err := SaveBase64Image(tinyPNG, "venues")
	if err != nil {
		t.Fatalf("SaveBase64Image: %v", err)
	}
	if !strings.HasSuffix(url, ".jpg") {
		t.Fatalf("expected .jpg fallback, got %q", url)
	}
}

func TestSaveBase64ImageRejectsGarbage(t *testing.T) {
	t.Setenv("UPLOAD_DIR", t.TempDir())

	if _, err := SaveBase64Image("", "avatars"); err == nil {
		t.Error("expected error for empty input")
	}
	if _, err := SaveBase64Image("data:image/png;base64,!!!not-base64!!!", "avatars"); err == nil {
		t.Error("expected error for invalid base64")
	}
}

func TestDeleteUploadedImage(t *testing.T) {
	t.Setenv("UPLOAD_DIR", t.TempDir())

	url, err := SaveBase64Image("data:image/png;base64,"+tinyPNG, "logos")
	if err != nil {
		t.Fatalf("SaveBase64Image: %v", err)
	}

	if !DeleteUploadedImage(url) {
		t.Fatal("expected delete to succeed")
	}
	path := filepath.Join(UploadDir(), strings.TrimPrefix(url, "/uploads/"))
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("file still exists after delete")
	}

	// Outside the uploads tree is refused
	if DeleteUploadedImage("/etc/passwd") {
		t.Fatal("must refuse paths outside /uploads/")
	}
}
