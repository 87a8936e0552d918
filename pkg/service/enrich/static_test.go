package enrich_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/mnemosyne/pkg/domain/model"
	"github.com/secmon-lab/mnemosyne/pkg/service/enrich"
)

func TestStaticAnalyze(t *testing.T) {
	ctx := context.Background()
	svc := enrich.NewStatic()

	t.Run("transcript becomes highlight", func(t *testing.T) {
		a, err := svc.Analyze(ctx, &model.Capture{
			ID:         "c1",
			OwnerID:    "u1",
			Timestamp:  time.Now().UTC(),
			Transcript: "had coffee with an old friend in the park",
			Location:   &model.Location{Name: "Harbor Park"},
		})
		gt.NoError(t, err).Required()
		gt.Value(t, a.Highlights[0]).Equal("had coffee with an old friend in the park")
		gt.Value(t, a.Mood).Equal("positive")
		gt.Value(t, a.LocationHint).Equal("Harbor Park")
		gt.Array(t, a.Themes).Equal([]string{"friends", "food", "outdoors"})
	})

	t.Run("empty transcript", func(t *testing.T) {
		a, err := svc.Analyze(ctx, &model.Capture{ID: "c2", OwnerID: "u1"})
		gt.NoError(t, err).Required()
		gt.Value(t, a.Highlights[0]).Equal("No transcript provided")
		gt.Array(t, a.Themes).Length(0)
	})

	t.Run("long transcript truncated", func(t *testing.T) {
		long := strings.Repeat("a", 200)
		a, err := svc.Analyze(ctx, &model.Capture{ID: "c3", OwnerID: "u1", Transcript: long})
		gt.NoError(t, err).Required()
		gt.Value(t, len(a.Highlights[0])).Equal(123) // 120 chars + "..."
		gt.Bool(t, strings.HasSuffix(a.Highlights[0], "...")).True()
	})

	t.Run("deterministic for identical input", func(t *testing.T) {
		c := &model.Capture{ID: "c4", OwnerID: "u1", Transcript: "long walk after work"}
		a1, err := svc.Analyze(ctx, c)
		gt.NoError(t, err).Required()
		a2, err := svc.Analyze(ctx, c)
		gt.NoError(t, err).Required()
		gt.Value(t, a1).Equal(a2)
	})
}
