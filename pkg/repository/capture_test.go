package repository_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/mnemosyne/pkg/domain/interfaces"
	"github.com/secmon-lab/mnemosyne/pkg/domain/model"
	"github.com/secmon-lab/mnemosyne/pkg/domain/types"
	"github.com/secmon-lab/mnemosyne/pkg/repository/firestore"
	"github.com/secmon-lab/mnemosyne/pkg/repository/memory"
)

func newCapture(id types.CaptureID, owner types.OwnerID, ts time.Time) *model.Capture {
	return &model.Capture{
		ID:        id,
		OwnerID:   owner,
		Timestamp: ts.UTC(),
		Status:    types.ProcessingPending,
		CreatedAt: time.Now().UTC(),
	}
}

func runCaptureRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create and Get round trip", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		ts := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
		c := newCapture("cap-1", "u1", ts)
		c.Transcript = "hello"
		c.Location = &model.Location{Name: "park"}

		gt.NoError(t, repo.Capture().Create(ctx, c)).Required()

		got, err := repo.Capture().Get(ctx, "cap-1")
		gt.NoError(t, err).Required()
		gt.Value(t, got.ID).Equal(c.ID)
		gt.Value(t, got.OwnerID).Equal(c.OwnerID)
		gt.Bool(t, got.Timestamp.Equal(ts)).True()
		gt.Value(t, got.Transcript).Equal("hello")
		gt.Value(t, got.Location.Name).Equal("park")
		gt.Value(t, got.Status).Equal(types.ProcessingPending)
		gt.Value(t, got.Analysis).Nil()
	})

	t.Run("Create without ID fails", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		err := repo.Capture().Create(ctx, newCapture("", "u1", time.Now()))
		gt.Error(t, err)
	})

	t.Run("Create overwrites same ID silently", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		ts := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
		first := newCapture("cap-dup", "u1", ts)
		first.Transcript = "first"
		gt.NoError(t, repo.Capture().Create(ctx, first)).Required()

		second := newCapture("cap-dup", "u1", ts)
		second.Transcript = "second"
		gt.NoError(t, repo.Capture().Create(ctx, second)).Required()

		got, err := repo.Capture().Get(ctx, "cap-dup")
		gt.NoError(t, err).Required()
		gt.Value(t, got.Transcript).Equal("second")
	})

	t.Run("Get returns error for missing capture", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Capture().Get(ctx, "no-such-capture")
		gt.Error(t, err)
	})

	t.Run("Update applies partial fields", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		c := newCapture("cap-upd", "u1", time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC))
		gt.NoError(t, repo.Capture().Create(ctx, c)).Required()

		succeeded := types.ProcessingSucceeded
		analysis := &model.Analysis{
			Title:      "Morning walk",
			Highlights: []string{"hello"},
			Mood:       "positive",
			Themes:     []string{"outdoors"},
		}
		err := repo.Capture().Update(ctx, "cap-upd", &interfaces.CaptureUpdate{
			Status:   &succeeded,
			Analysis: analysis,
		})
		gt.NoError(t, err).Required()

		got, err := repo.Capture().Get(ctx, "cap-upd")
		gt.NoError(t, err).Required()
		gt.Value(t, got.Status).Equal(types.ProcessingSucceeded)
		gt.Value(t, got.Analysis.Title).Equal("Morning walk")
		gt.Array(t, got.Analysis.Themes).Equal([]string{"outdoors"})
		// Untouched fields survive a partial update
		gt.Value(t, got.OwnerID).Equal(types.OwnerID("u1"))
	})

	t.Run("Update of missing capture is a no-op", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		failed := types.ProcessingFailed
		msg := "enrichment failed"
		err := repo.Capture().Update(ctx, "ghost", &interfaces.CaptureUpdate{
			Status: &failed,
			Error:  &msg,
		})
		gt.NoError(t, err)
	})

	t.Run("ListByOwnerAndDay filters and orders", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
		gt.NoError(t, repo.Capture().Create(ctx, newCapture("c-noon", "u1", day.Add(12*time.Hour)))).Required()
		gt.NoError(t, repo.Capture().Create(ctx, newCapture("c-dawn", "u1", day.Add(6*time.Hour)))).Required()
		gt.NoError(t, repo.Capture().Create(ctx, newCapture("c-last", "u1", day.Add(23*time.Hour+59*time.Minute)))).Required()
		// Outside the day or owned by someone else
		gt.NoError(t, repo.Capture().Create(ctx, newCapture("c-next", "u1", day.Add(24*time.Hour)))).Required()
		gt.NoError(t, repo.Capture().Create(ctx, newCapture("c-prev", "u1", day.Add(-time.Second)))).Required()
		gt.NoError(t, repo.Capture().Create(ctx, newCapture("c-other", "u2", day.Add(12*time.Hour)))).Required()

		captures, err := repo.Capture().ListByOwnerAndDay(ctx, "u1", "2024-06-01")
		gt.NoError(t, err).Required()
		gt.Array(t, captures).Length(3)
		gt.Value(t, captures[0].ID).Equal(types.CaptureID("c-dawn"))
		gt.Value(t, captures[1].ID).Equal(types.CaptureID("c-noon"))
		gt.Value(t, captures[2].ID).Equal(types.CaptureID("c-last"))
	})

	t.Run("ListByOwnerAndDay empty day", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		captures, err := repo.Capture().ListByOwnerAndDay(ctx, "u1", "1999-01-01")
		gt.NoError(t, err).Required()
		gt.Array(t, captures).Length(0)
	})

	t.Run("ListByOwnerAndDay rejects bad date", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Capture().ListByOwnerAndDay(ctx, "u1", "not-a-date")
		gt.Error(t, err)
	})
}

func TestCaptureRepository_Memory(t *testing.T) {
	runCaptureRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestCaptureRepository_Firestore(t *testing.T) {
	projectID := os.Getenv("TEST_FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("TEST_FIRESTORE_PROJECT_ID not set")
	}
	databaseID := os.Getenv("TEST_FIRESTORE_DATABASE_ID")

	runCaptureRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		repo, err := firestore.New(context.Background(), projectID, databaseID)
		gt.NoError(t, err).Required()
		return repo
	})
}
