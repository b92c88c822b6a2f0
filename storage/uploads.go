package storage

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Image assets are stored on local disk under UPLOAD_DIR (default "uploads")
// and referenced by relative URL in JSON payloads, e.g. /uploads/avatars/<uuid>.jpg.

func UploadDir() string {
	dir := os.Getenv("UPLOAD_DIR")
	if dir == "" {
		dir = "uploads"
	}
	return dir
}

func InitializeUploads() {
	for _, sub := range []string{"avatars", "logos", "venues"} {
		if err := os.MkdirAll(filepath.Join(UploadDir(), sub), 0o755); err != nil {
			fmt.Printf("ERROR: Failed to create upload directory %s: %v\n", sub, err)
		}
	}
}

// SaveBase64Image decodes a data-URL or bare base64 image and writes it under
// UPLOAD_DIR/<prefix>/. Returns the relative URL to store in JSON payloads.
func SaveBase64Image(base64ImageSrc string, prefix string) (string, error) {
	if base64ImageSrc == "" {
		return "", fmt.Errorf("empty base64 image")
	}

	payload := base64ImageSrc
	ext := "jpg"
	if i := strings.Index(base64ImageSrc, ","); i != -1 {
		header := base64ImageSrc[:i]
		payload = base64ImageSrc[i+1:]
		if strings.Contains(header, "image/png") {
			ext = "png"
		}
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("invalid base64 image: %w", err)
	}

	name := fmt.Sprintf("%s.%s", uuid.NewString(), ext)
	path := filepath.Join(UploadDir(), prefix, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}

	return "/uploads/" + prefix + "/" + name, nil
}

// DeleteUploadedImage removes a previously stored asset by its relative URL.
// Best effort; a missing file is not an error.
func DeleteUploadedImage(relativeURL string) bool {
	if !strings.HasPrefix(relativeURL, "/uploads/") {
		return false
	}
	path := filepath.Join(UploadDir(), strings.TrimPrefix(relativeURL, "/uploads/"))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		fmt.Printf("ERROR: Failed to delete upload %s: %v\n", path, err)
		return false
	}
	return true
}
