/* source.go
 * Bridges mongo change streams onto the trigger topics. Each watched
 * collection publishes a DocumentChange per write, with before/after
 * snapshots when the deployment provides them (pre-images must be enabled on
 * the collection for the before side of updates and deletes).
 */

package trigger

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"matchroom/api/store"
)

// Source tails the groups and matches collections and publishes their writes
// as document change events.
type Source struct {
	Store     *store.Store
	Publisher message.Publisher
	Log       *zap.Logger
}

func NewSource(s *store.Store, pub message.Publisher, log *zap.Logger) *Source {
	return &Source{Store: s, Publisher: pub, Log: log}
}

// Run watches both collections until the context is cancelled. The first
// stream failure stops the source.
func (s *Source) Run(ctx context.Context) error {
	errCh := make(chan error, 2)

	go func() { errCh <- s.watch(ctx, s.Store.Collections.Groups, TopicGroups) }()
	go func() { errCh <- s.watch(ctx, s.Store.Collections.Matches, TopicMatches) }()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

func (s *Source) watch(ctx context.Context, coll *mongo.Collection, topic string) error {
	opts := options.ChangeStream().
		SetFullDocument(options.UpdateLookup).
		SetFullDocumentBeforeChange(options.WhenAvailable)

	stream, err := coll.Watch(ctx, mongo.Pipeline{}, opts)
	if err != nil {
		return fmt.Errorf("failed to open change stream on %s: %w", coll.Name(), err)
	}
	defer stream.Close(ctx)

	s.Log.Info("watching collection for changes", zap.String("collection", coll.Name()))

	for stream.Next(ctx) {
		var ev changeEvent
		if err := stream.Decode(&ev); err != nil {
			s.Log.Error("failed to decode change stream event", zap.Error(err))
			continue
		}

		change, err := ev.toDocumentChange()
		if err != nil {
			s.Log.Error("failed to convert change stream event", zap.Error(err))
			continue
		}

		if err := Publish(s.Publisher, topic, change); err != nil {
			s.Log.Error("failed to publish document change",
				zap.String("topic", topic), zap.String("id", change.ID), zap.Error(err))
		}
	}
	return stream.Err()
}

type changeEvent struct {
	OperationType string `bson:"operationType"`
	DocumentKey   struct {
		ID string `bson:"_id"`
	} `bson:"documentKey"`
	FullDocument             bson.M `bson:"fullDocument,omitempty"`
	FullDocumentBeforeChange bson.M `bson:"fullDocumentBeforeChange,omitempty"`
}

func (ev changeEvent) toDocumentChange() (DocumentChange, error) {
	change := DocumentChange{ID: ev.DocumentKey.ID}

	if ev.FullDocument != nil {
		after, err := json.Marshal(ev.FullDocument)
		if err != nil {
			return DocumentChange{}, fmt.Errorf("failed to marshal after snapshot: %w", err)
		}
		change.After = after
	}
	if ev.FullDocumentBeforeChange != nil {
		before, err := json.Marshal(ev.FullDocumentBeforeChange)
		if err != nil {
			return DocumentChange{}, fmt.Errorf("failed to marshal before snapshot: %w", err)
		}
		change.Before = before
	}
	return change, nil
}
