package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/mnemosyne/pkg/domain/interfaces"
)

const (
	collectionCaptures   = "captures"
	collectionAggregates = "daily_memories"
)

type Firestore struct {
	client    *firestore.Client
	capture   *captureRepository
	aggregate *aggregateRepository
}

var _ interfaces.Repository = &Firestore{}

func New(ctx context.Context, projectID, databaseID string) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID == "" {
		client, err = firestore.NewClient(ctx, projectID)
	} else {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID),
			goerr.V("databaseID", databaseID),
		)
	}

	return &Firestore{
		client:    client,
		capture:   newCaptureRepository(client),
		aggregate: newAggregateRepository(client),
	}, nil
}

func (f *Firestore) Capture() interfaces.CaptureRepository {
	return f.capture
}

func (f *Firestore) Aggregate() interfaces.AggregateRepository {
	return f.aggregate
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}
