package types_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/mnemosyne/pkg/domain/types"
)

func TestNewCaptureID(t *testing.T) {
	id1 := types.NewCaptureID()
	id2 := types.NewCaptureID()

	gt.Value(t, id1.String()).NotEqual("")
	gt.Value(t, id1).NotEqual(id2)
	gt.NoError(t, id1.Validate())
}

func TestCaptureIDValidate(t *testing.T) {
	gt.Error(t, types.CaptureID("").Validate())
	gt.NoError(t, types.CaptureID("client-supplied-1").Validate())
}

func TestDateKey(t *testing.T) {
	t.Run("derive from UTC instant", func(t *testing.T) {
		ts := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
		gt.Value(t, types.NewDateKey(ts)).Equal(types.DateKey("2024-06-01"))
	})

	t.Run("offset timestamps bucket to the UTC day", func(t *testing.T) {
		loc := time.FixedZone("JST", 9*60*60)
		ts := time.Date(2024, 6, 1, 3, 0, 0, 0, loc) // 2024-05-31T18:00Z
		gt.Value(t, types.NewDateKey(ts)).Equal(types.DateKey("2024-05-31"))
	})

	t.Run("parse valid", func(t *testing.T) {
		d, err := types.ParseDateKey("2024-01-31")
		gt.NoError(t, err).Required()
		gt.Value(t, d.String()).Equal("2024-01-31")
	})

	t.Run("parse invalid", func(t *testing.T) {
		for _, s := range []string{"", "2024/01/01", "01-01-2024", "2024-13-01", "today"} {
			_, err := types.ParseDateKey(s)
			gt.Error(t, err)
		}
	})

	t.Run("day range is half-open 24h", func(t *testing.T) {
		start, end, err := types.DateKey("2024-06-01").DayRange()
		gt.NoError(t, err).Required()
		gt.Value(t, start).Equal(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
		gt.Value(t, end.Sub(start)).Equal(24 * time.Hour)
	})
}

func TestProcessingStatus(t *testing.T) {
	t.Run("valid statuses", func(t *testing.T) {
		for _, s := range types.AllProcessingStatuses() {
			gt.Bool(t, s.IsValid()).True()
		}
		gt.Bool(t, types.ProcessingStatus("done").IsValid()).False()
	})

	t.Run("terminal states", func(t *testing.T) {
		gt.Bool(t, types.ProcessingPending.IsTerminal()).False()
		gt.Bool(t, types.ProcessingSucceeded.IsTerminal()).True()
		gt.Bool(t, types.ProcessingFailed.IsTerminal()).True()
	})

	t.Run("empty normalizes to pending", func(t *testing.T) {
		gt.Value(t, types.ProcessingStatus("").Normalize()).Equal(types.ProcessingPending)
		gt.Value(t, types.ProcessingFailed.Normalize()).Equal(types.ProcessingFailed)
	})

	t.Run("parse", func(t *testing.T) {
		s, err := types.ParseProcessingStatus("failed")
		gt.NoError(t, err).Required()
		gt.Value(t, s).Equal(types.ProcessingFailed)

		_, err = types.ParseProcessingStatus("unknown")
		gt.Error(t, err)
	})
}

func TestSessionRole(t *testing.T) {
	gt.Bool(t, types.RoleCapture.IsValid()).True()
	gt.Bool(t, types.RoleViewer.IsValid()).True()
	gt.Bool(t, types.SessionRole("admin").IsValid()).False()

	r, err := types.ParseSessionRole("viewer")
	gt.NoError(t, err).Required()
	gt.Value(t, r).Equal(types.RoleViewer)

	_, err = types.ParseSessionRole("")
	gt.Error(t, err)
}
