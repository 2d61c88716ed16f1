package upload

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
)

// sniffLen is how much of the file head is read to establish the declared type
const sniffLen = 3072

// Candidate is the file currently selected by the user. It is replaced, never
// merged, by any later selection.
type Candidate struct {
	// Name is the display/upload file name
	Name string

	// Type is the declared media type, fixed at selection time
	Type string

	// Size is the byte size
	Size int64

	open func() (io.ReadCloser, error)
}

// New creates a candidate from explicit attributes and a content handle
func New(name, mediaType string, size int64, open func() (io.ReadCloser, error)) *Candidate {
	return &Candidate{
		Name: name,
		Type: mediaType,
		Size: size,
		open: open,
	}
}

// FromBytes creates a candidate backed by an in-memory buffer. The declared
// type is sniffed from the content.
func FromBytes(name string, data []byte) *Candidate {
	head := data
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}

	return New(name, mimetype.Detect(head).String(), int64(len(data)), func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(data)), nil
	})
}

// FromPath creates a candidate for a file on disk. Only the file head is read;
// the content handle reopens the file on demand.
func FromPath(path string) (*Candidate, error) {
	cleanPath := filepath.Clean(path)

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", cleanPath)
	}

	mtype, err := mimetype.DetectFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to detect media type: %w", err)
	}

	return New(filepath.Base(cleanPath), mtype.String(), info.Size(), func() (io.ReadCloser, error) {
		// #nosec G304 - path is chosen by the user
		return os.Open(cleanPath)
	}), nil
}

// Open returns a reader over the candidate content
func (c *Candidate) Open() (io.ReadCloser, error) {
	if c.open == nil {
		return nil, fmt.Errorf("candidate %q has no content handle", c.Name)
	}
	return c.open()
}

// ReadAll reads the full candidate content
func (c *Candidate) ReadAll() ([]byte, error) {
	rc, err := c.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	return io.ReadAll(rc)
}
