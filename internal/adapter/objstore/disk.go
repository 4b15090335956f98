// Package objstore implements the profile-image store on local disk.
// The store is a port, so swapping in a hosted backend touches nothing
// above it.
package objstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// Disk stores objects under a directory and serves them from a base URL.
type Disk struct {
	dir     string
	baseURL string
}

// NewDisk creates a disk store rooted at dir, addressable under baseURL.
func NewDisk(dir, baseURL string) *Disk {
	return &Disk{dir: dir, baseURL: baseURL}
}

// Save writes the object and returns its public URL.
func (d *Disk) Save(_ context.Context, name string, r io.Reader) (string, error) {
	path := filepath.Join(d.dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return d.baseURL + "/" + name, nil
}
