package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/mnemosyne/pkg/domain/model"
	"github.com/secmon-lab/mnemosyne/pkg/domain/types"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// aggregateDoc is the Firestore document representation of
// model.DailyAggregate. Document ID is "{ownerID}_{dateKey}".
type aggregateDoc struct {
	OwnerID    types.OwnerID     `firestore:"OwnerID"`
	Date       types.DateKey     `firestore:"Date"`
	Summary    string            `firestore:"Summary"`
	Themes     []string          `firestore:"Themes"`
	CaptureIDs []types.CaptureID `firestore:"CaptureIDs"`
	UpdatedAt  time.Time         `firestore:"UpdatedAt"`
}

func toAggregateDoc(a *model.DailyAggregate) *aggregateDoc {
	return &aggregateDoc{
		OwnerID:    a.OwnerID,
		Date:       a.Date,
		Summary:    a.Summary,
		Themes:     a.Themes,
		CaptureIDs: a.CaptureIDs,
		UpdatedAt:  a.UpdatedAt,
	}
}

func fromAggregateDoc(d *aggregateDoc) *model.DailyAggregate {
	return &model.DailyAggregate{
		OwnerID:    d.OwnerID,
		Date:       d.Date,
		Summary:    d.Summary,
		Themes:     d.Themes,
		CaptureIDs: d.CaptureIDs,
		UpdatedAt:  d.UpdatedAt,
	}
}

type aggregateRepository struct {
	client *firestore.Client
}

func newAggregateRepository(client *firestore.Client) *aggregateRepository {
	return &aggregateRepository{client: client}
}

func aggregateDocID(ownerID types.OwnerID, date types.DateKey) string {
	return fmt.Sprintf("%s_%s", ownerID, date)
}

func (r *aggregateRepository) Get(ctx context.Context, ownerID types.OwnerID, date types.DateKey) (*model.DailyAggregate, error) {
	doc, err := r.client.Collection(collectionAggregates).Doc(aggregateDocID(ownerID, date)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			// No aggregate yet is a normal state, not an error
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get aggregate",
			goerr.V("ownerID", ownerID),
			goerr.V("date", date),
		)
	}

	var d aggregateDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal aggregate",
			goerr.V("ownerID", ownerID),
			goerr.V("date", date),
		)
	}

	return fromAggregateDoc(&d), nil
}

func (r *aggregateRepository) Upsert(ctx context.Context, agg *model.DailyAggregate) error {
	if err := agg.OwnerID.Validate(); err != nil {
		return goerr.Wrap(err, "aggregate requires an owner")
	}
	if err := agg.Date.Validate(); err != nil {
		return goerr.Wrap(err, "aggregate requires a date key")
	}

	stored := agg.Clone()
	stored.UpdatedAt = time.Now().UTC()

	// Set without merge: full replace, last writer wins
	docRef := r.client.Collection(collectionAggregates).Doc(aggregateDocID(agg.OwnerID, agg.Date))
	if _, err := docRef.Set(ctx, toAggregateDoc(stored)); err != nil {
		return goerr.Wrap(err, "failed to upsert aggregate",
			goerr.V("ownerID", agg.OwnerID),
			goerr.V("date", agg.Date),
		)
	}

	return nil
}
