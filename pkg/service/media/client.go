package media

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/mnemosyne/pkg/domain/interfaces"
	"github.com/secmon-lab/mnemosyne/pkg/domain/types"
)

// Client is the Cloud Storage media backend. It is a thin pass-through:
// the pipeline only ever carries the returned gs:// references.
type Client struct {
	client *storage.Client
	bucket string
}

var _ interfaces.MediaStore = &Client{}

// New creates a media client bound to one bucket
func New(ctx context.Context, bucket string) (*Client, error) {
	if bucket == "" {
		return nil, goerr.New("media bucket is required")
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client", goerr.V("bucket", bucket))
	}

	return &Client{client: client, bucket: bucket}, nil
}

// Put stores a blob under the owner's namespace. Object names are
// prefixed with a UUID so client-chosen names cannot collide.
func (c *Client) Put(ctx context.Context, ownerID types.OwnerID, name string, contentType string, r io.Reader) (string, error) {
	if err := ownerID.Validate(); err != nil {
		return "", goerr.Wrap(err, "media upload requires an owner")
	}

	object := fmt.Sprintf("media/%s/%s_%s", ownerID, uuid.New().String(), sanitizeName(name))

	w := c.client.Bucket(c.bucket).Object(object).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", goerr.Wrap(err, "failed to write media object", goerr.V("object", object))
	}
	if err := w.Close(); err != nil {
		return "", goerr.Wrap(err, "failed to finalize media object", goerr.V("object", object))
	}

	return fmt.Sprintf("gs://%s/%s", c.bucket, object), nil
}

// SignedURL returns a time-limited read URL for a gs:// reference
func (c *Client) SignedURL(ctx context.Context, ref string, ttl time.Duration) (string, error) {
	bucket, object, err := splitRef(ref)
	if err != nil {
		return "", err
	}

	url, err := c.client.Bucket(bucket).SignedURL(object, &storage.SignedURLOptions{
		Method:  "GET",
		Expires: time.Now().Add(ttl),
		Scheme:  storage.SigningSchemeV4,
	})
	if err != nil {
		return "", goerr.Wrap(err, "failed to sign media URL", goerr.V("ref", ref))
	}

	return url, nil
}

// Close releases the underlying storage client
func (c *Client) Close() error {
	return c.client.Close()
}

func sanitizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "blob"
	}
	replacer := strings.NewReplacer("/", "_", "\\", "_", " ", "_")
	return replacer.Replace(name)
}

func splitRef(ref string) (string, string, error) {
	trimmed, ok := strings.CutPrefix(ref, "gs://")
	if !ok {
		return "", "", goerr.New("media ref must be a gs:// URI", goerr.V("ref", ref))
	}
	bucket, object, ok := strings.Cut(trimmed, "/")
	if !ok || bucket == "" || object == "" {
		return "", "", goerr.New("malformed media ref", goerr.V("ref", ref))
	}
	return bucket, object, nil
}
