// Package filestore holds blob storage adapters for image content.
package filestore

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"

	domainerrors "fieldproof/contexts/campaign-workflow/image-service/domain/errors"
	"fieldproof/contexts/campaign-workflow/image-service/ports"
)

// DefaultMaxSizeBytes caps uploads at 10 MiB.
const DefaultMaxSizeBytes = 10 << 20

var defaultAllowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// MemoryFileStore keeps blobs in memory and enforces the size and
// content-type limits. It is the validating collaborator of the upload use
// case; swapping in an object-store adapter does not move the rules.
type MemoryFileStore struct {
	mu           sync.RWMutex
	blobs        map[string][]byte
	maxSizeBytes int64
	allowedTypes map[string]bool
}

func NewMemoryFileStore() *MemoryFileStore {
	return &MemoryFileStore{
		blobs:        make(map[string][]byte),
		maxSizeBytes: DefaultMaxSizeBytes,
		allowedTypes: defaultAllowedTypes,
	}
}

func (fs *MemoryFileStore) Store(ctx context.Context, upload ports.FileUpload) (ports.StoredFile, error) {
	contentType := strings.ToLower(strings.TrimSpace(upload.ContentType))
	if !fs.allowedTypes[contentType] {
		return ports.StoredFile{}, fmt.Errorf("%w: unsupported content type %q", domainerrors.ErrFileRejected, contentType)
	}
	if upload.SizeBytes > fs.maxSizeBytes {
		return ports.StoredFile{}, fmt.Errorf("%w: %d bytes exceeds limit", domainerrors.ErrFileRejected, upload.SizeBytes)
	}
	if upload.Content == nil {
		return ports.StoredFile{}, fmt.Errorf("%w: empty body", domainerrors.ErrFileRejected)
	}

	// The declared size is a hint; the read is bounded so a lying client
	// cannot push past the limit.
	data, err := io.ReadAll(io.LimitReader(upload.Content, fs.maxSizeBytes+1))
	if err != nil {
		return ports.StoredFile{}, err
	}
	if int64(len(data)) > fs.maxSizeBytes {
		return ports.StoredFile{}, fmt.Errorf("%w: body exceeds %d bytes", domainerrors.ErrFileRejected, fs.maxSizeBytes)
	}
	if len(data) == 0 {
		return ports.StoredFile{}, fmt.Errorf("%w: empty body", domainerrors.ErrFileRejected)
	}

	key := uuid.NewString()
	fs.mu.Lock()
	fs.blobs[key] = data
	fs.mu.Unlock()

	return ports.StoredFile{
		StorageKey:  key,
		ContentType: contentType,
		SizeBytes:   int64(len(data)),
	}, nil
}

func (fs *MemoryFileStore) Remove(ctx context.Context, storageKey string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	delete(fs.blobs, storageKey)
	return nil
}

// Open returns a stored blob, for serving downloads.
func (fs *MemoryFileStore) Open(storageKey string) ([]byte, bool) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	data, ok := fs.blobs[storageKey]
	return data, ok
}

var _ ports.FileStore = (*MemoryFileStore)(nil)
