package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/mnemosyne/pkg/domain/interfaces"
	"github.com/secmon-lab/mnemosyne/pkg/domain/model"
	"github.com/secmon-lab/mnemosyne/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// captureDoc is the Firestore document representation of model.Capture
type captureDoc struct {
	ID         types.CaptureID        `firestore:"ID"`
	OwnerID    types.OwnerID          `firestore:"OwnerID"`
	Timestamp  time.Time              `firestore:"Timestamp"`
	PhotoRef   string                 `firestore:"PhotoRef,omitempty"`
	AudioRef   string                 `firestore:"AudioRef,omitempty"`
	Transcript string                 `firestore:"Transcript,omitempty"`
	Location   *model.Location        `firestore:"Location,omitempty"`
	Status     types.ProcessingStatus `firestore:"Status"`
	Analysis   *model.Analysis        `firestore:"Analysis,omitempty"`
	Error      string                 `firestore:"Error,omitempty"`
	CreatedAt  time.Time              `firestore:"CreatedAt"`
}

func toCaptureDoc(c *model.Capture) *captureDoc {
	return &captureDoc{
		ID:         c.ID,
		OwnerID:    c.OwnerID,
		Timestamp:  c.Timestamp.UTC(),
		PhotoRef:   c.PhotoRef,
		AudioRef:   c.AudioRef,
		Transcript: c.Transcript,
		Location:   c.Location,
		Status:     c.Status.Normalize(),
		Analysis:   c.Analysis,
		Error:      c.Error,
		CreatedAt:  c.CreatedAt,
	}
}

func fromCaptureDoc(d *captureDoc) *model.Capture {
	return &model.Capture{
		ID:         d.ID,
		OwnerID:    d.OwnerID,
		Timestamp:  d.Timestamp.UTC(),
		PhotoRef:   d.PhotoRef,
		AudioRef:   d.AudioRef,
		Transcript: d.Transcript,
		Location:   d.Location,
		Status:     d.Status.Normalize(),
		Analysis:   d.Analysis,
		Error:      d.Error,
		CreatedAt:  d.CreatedAt,
	}
}

type captureRepository struct {
	client *firestore.Client
}

func newCaptureRepository(client *firestore.Client) *captureRepository {
	return &captureRepository{client: client}
}

func (r *captureRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(collectionCaptures)
}

func (r *captureRepository) Create(ctx context.Context, c *model.Capture) error {
	if err := c.ID.Validate(); err != nil {
		return goerr.Wrap(err, "capture requires an ID")
	}

	// Set is an idempotent overwrite, matching the in-memory backend
	if _, err := r.collection().Doc(c.ID.String()).Set(ctx, toCaptureDoc(c)); err != nil {
		return goerr.Wrap(err, "failed to create capture", goerr.V("captureID", c.ID))
	}

	return nil
}

func (r *captureRepository) Update(ctx context.Context, id types.CaptureID, update *interfaces.CaptureUpdate) error {
	updates := make([]firestore.Update, 0, 3)
	if update.Status != nil {
		updates = append(updates, firestore.Update{Path: "Status", Value: *update.Status})
	}
	if update.Analysis != nil {
		updates = append(updates, firestore.Update{Path: "Analysis", Value: update.Analysis})
	}
	if update.Error != nil {
		updates = append(updates, firestore.Update{Path: "Error", Value: *update.Error})
	}
	if len(updates) == 0 {
		return nil
	}

	if _, err := r.collection().Doc(id.String()).Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			// Absence is tolerated, not reported
			return nil
		}
		return goerr.Wrap(err, "failed to update capture", goerr.V("captureID", id))
	}

	return nil
}

func (r *captureRepository) Get(ctx context.Context, id types.CaptureID) (*model.Capture, error) {
	doc, err := r.collection().Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "capture not found", goerr.V("captureID", id))
		}
		return nil, goerr.Wrap(err, "failed to get capture", goerr.V("captureID", id))
	}

	var d captureDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal capture", goerr.V("captureID", id))
	}

	return fromCaptureDoc(&d), nil
}

func (r *captureRepository) ListByOwnerAndDay(ctx context.Context, ownerID types.OwnerID, day types.DateKey) ([]*model.Capture, error) {
	start, end, err := day.DayRange()
	if err != nil {
		return nil, err
	}

	iter := r.collection().
		Where("OwnerID", "==", ownerID).
		Where("Timestamp", ">=", start).
		Where("Timestamp", "<", end).
		OrderBy("Timestamp", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	captures := make([]*model.Capture, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate captures",
				goerr.V("ownerID", ownerID),
				goerr.V("date", day),
			)
		}

		var d captureDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal capture")
		}

		captures = append(captures, fromCaptureDoc(&d))
	}

	return captures, nil
}
