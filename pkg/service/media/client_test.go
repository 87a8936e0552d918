package media_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/mnemosyne/pkg/service/media"
)

func TestSplitRef(t *testing.T) {
	t.Run("valid ref", func(t *testing.T) {
		bucket, object, err := media.SplitRef("gs://my-bucket/media/u1/abc_photo.jpg")
		gt.NoError(t, err).Required()
		gt.Value(t, bucket).Equal("my-bucket")
		gt.Value(t, object).Equal("media/u1/abc_photo.jpg")
	})

	t.Run("invalid refs", func(t *testing.T) {
		for _, ref := range []string{"", "http://example.com/x", "gs://", "gs://bucket-only", "gs://bucket/"} {
			_, _, err := media.SplitRef(ref)
			gt.Error(t, err)
		}
	})
}

func TestSanitizeName(t *testing.T) {
	gt.Value(t, media.SanitizeName("photo.jpg")).Equal("photo.jpg")
	gt.Value(t, media.SanitizeName("../etc/passwd")).Equal(".._etc_passwd")
	gt.Value(t, media.SanitizeName("my photo.jpg")).Equal("my_photo.jpg")
	gt.Value(t, media.SanitizeName("  ")).Equal("blob")
}
