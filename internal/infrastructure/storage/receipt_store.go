// Package storage provides local file storage for transfer receipts.
package storage

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

var (
	// ErrEmptyFile is returned when no file content was provided
	ErrEmptyFile = errors.New("no file content provided")
	// ErrFileTooLarge is returned when the decoded file exceeds the size limit
	ErrFileTooLarge = errors.New("file exceeds the maximum allowed size")
)

// dataURLPrefix matches the "data:image/png;base64," style prefix some
// clients send in front of the payload.
var dataURLPrefix = regexp.MustCompile(`^data:[a-zA-Z0-9/+.-]+;base64,`)

// nonSlugChars strips everything a member name contributes to a path
// except lowercase letters, digits and underscores.
var nonSlugChars = regexp.MustCompile(`[^a-z0-9_]`)

// StoredReceipt describes a receipt written to disk.
type StoredReceipt struct {
	URL      string
	Filename string
}

// ReceiptStore writes base64-encoded receipt images under a local uploads
// directory. Files are grouped per member and named after the member and
// the upload date, so a second upload on the same day replaces the first.
type ReceiptStore struct {
	baseDir string
	maxSize int64
}

// NewReceiptStore creates a ReceiptStore rooted at baseDir. maxSize
// bounds the decoded file size in bytes; zero disables the check.
func NewReceiptStore(baseDir string, maxSize int64) *ReceiptStore {
	return &ReceiptStore{
		baseDir: baseDir,
		maxSize: maxSize,
	}
}

// Save decodes the base64 payload and writes it to
// <baseDir>/receipts/<member-slug>/<member-slug>_<yyyy-mm-dd><ext>.
// It returns the relative URL the HTTP layer serves the file under.
func (s *ReceiptStore) Save(memberName, fileName, base64Data string) (*StoredReceipt, error) {
	if strings.TrimSpace(base64Data) == "" {
		return nil, ErrEmptyFile
	}

	payload := dataURLPrefix.ReplaceAllString(base64Data, "")
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode receipt: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	if s.maxSize > 0 && int64(len(data)) > s.maxSize {
		return nil, ErrFileTooLarge
	}

	slug := memberSlug(memberName)
	ext := path.Ext(fileName)
	if ext == "" {
		ext = ".jpg"
	}
	filename := fmt.Sprintf("%s_%s%s", slug, time.Now().Format("2006-01-02"), ext)

	dir := filepath.Join(s.baseDir, "receipts", slug)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create receipt directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, filename), data, 0o644); err != nil {
		return nil, fmt.Errorf("write receipt: %w", err)
	}

	return &StoredReceipt{
		URL:      "/uploads/receipts/" + slug + "/" + filename,
		Filename: filename,
	}, nil
}

// memberSlug turns a member name into a safe directory name.
func memberSlug(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Join(strings.Fields(slug), "_")
	slug = nonSlugChars.ReplaceAllString(slug, "")
	if slug == "" {
		slug = "unknown"
	}
	return slug
}
