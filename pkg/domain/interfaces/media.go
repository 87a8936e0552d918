package interfaces

import (
	"context"
	"io"
	"time"

	"github.com/secmon-lab/mnemosyne/pkg/domain/types"
)

// MediaStore is the blob storage backend for capture media. It is a thin
// pass-through: the core pipeline only carries the returned references.
type MediaStore interface {
	// Put stores a blob under the owner's namespace and returns its
	// object reference.
	Put(ctx context.Context, ownerID types.OwnerID, name string, contentType string, r io.Reader) (string, error)

	// SignedURL returns a time-limited read URL for an object reference.
	SignedURL(ctx context.Context, ref string, ttl time.Duration) (string, error)
}
