package proofstore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"solstice/apperr"
	"solstice/utils"

	"github.com/disintegration/imaging"
)

const urlPrefix = "/static/proofpic/"

func baseDir() string {
	if dir := os.Getenv("PROOF_DIR"); dir != "" {
		return dir
	}
	return "./static/proofpic"
}

// Save persists an uploaded payment screenshot and a small thumbnail for
// the admin review list. Returns durable URLs; the caller stores only
// these.
func Save(file io.Reader) (string, string, error) {
	img, err := imaging.Decode(file)
	if err != nil {
		return "", "", apperr.Validation("Could not read the payment screenshot. Please upload a valid image file.")
	}

	dir := baseDir()
	id := utils.GenerateID(16)
	thumbDir := filepath.Join(dir, "thumb")
	if err := utils.EnsureDir(dir); err != nil {
		return "", "", fmt.Errorf("failed to create proof directory: %w", err)
	}
	if err := utils.EnsureDir(thumbDir); err != nil {
		return "", "", fmt.Errorf("failed to create thumbnail directory: %w", err)
	}

	fileName := id + ".jpg"
	if err := imaging.Save(img, filepath.Join(dir, fileName)); err != nil {
		return "", "", fmt.Errorf("failed to save screenshot: %w", err)
	}

	thumb := imaging.Resize(img, 300, 0, imaging.Lanczos)
	if err := imaging.Save(thumb, filepath.Join(thumbDir, fileName)); err != nil {
		return "", "", fmt.Errorf("failed to save thumbnail: %w", err)
	}

	return urlPrefix + fileName, urlPrefix + "thumb/" + fileName, nil
}

// Remove deletes previously saved proof files. Called when the transaction
// that would have referenced them aborts, so no orphans accumulate.
func Remove(urls ...string) {
	dir := baseDir()
	for _, u := range urls {
		rel := strings.TrimPrefix(u, urlPrefix)
		if rel == "" || rel == u {
			continue
		}
		os.Remove(filepath.Join(dir, filepath.FromSlash(rel)))
	}
}
