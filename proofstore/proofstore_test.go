package proofstore

import (
	"bytes"
	"image"
	"image/png"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"solstice/apperr"
)

func TestSaveRejectsCorruptImage(t *testing.T) {
	garbage := bytes.NewReader([]byte("this is not an image at all"))

	_, _, err := Save(garbage)
	if err == nil {
		t.Fatal("expected corrupt upload to fail")
	}
	if apperr.Status(err) != http.StatusBadRequest {
		t.Fatalf("expected validation error, got status %d", apperr.Status(err))
	}
}

func TestSaveAndRemove(t *testing.T) {
	t.Setenv("PROOF_DIR", t.TempDir())

	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 8, 8))); err != nil {
		t.Fatalf("failed to encode fixture image: %v", err)
	}

	screenshot, thumb, err := Save(&buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(screenshot, "/static/proofpic/") || !strings.HasPrefix(thumb, "/static/proofpic/thumb/") {
		t.Fatalf("unexpected URLs: %s, %s", screenshot, thumb)
	}

	onDisk := func(url string) string {
		return filepath.Join(os.Getenv("PROOF_DIR"), strings.TrimPrefix(url, "/static/proofpic/"))
	}
	for _, url := range []string{screenshot, thumb} {
		if _, err := os.Stat(onDisk(url)); err != nil {
			t.Fatalf("expected %s on disk: %v", url, err)
		}
	}

	Remove(screenshot, thumb)

	for _, url := range []string{screenshot, thumb} {
		if _, err := os.Stat(onDisk(url)); !os.IsNotExist(err) {
			t.Fatalf("expected %s to be deleted, stat err: %v", url, err)
		}
	}
}

func TestRemoveIgnoresForeignURLs(t *testing.T) {
	// Must not touch anything outside the proof directory.
	Remove("", "/etc/passwd", "relative.jpg")
}
