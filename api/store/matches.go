/* matches.go
 * Contains the methods for interacting with the matches collection, including
 * the atomic migration commit and the cascade delete used on group removal.
 */

package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// cleanupBatchSize caps how many staged deletes go into one bulk commit.
const cleanupBatchSize = 500

// FetchGroupMatches does a DB lookup for every match belonging to a group.
// Preconditions: Receives string containing the group id
// Postconditions: Returns slice of Matches (possibly empty), or an error if it occurs
func (s *Store) FetchGroupMatches(ctx context.Context, groupID string) ([]Match, error) {
	cursor, err := s.Collections.Matches.Find(ctx, bson.M{"groupId": groupID})
	if err != nil {
		return nil, fmt.Errorf("error fetching matches from db: %w", err)
	}

	var matches []Match
	if err = cursor.All(ctx, &matches); err != nil {
		return nil, fmt.Errorf("error unpacking cursor into slice of matches: %w", err)
	}
	return matches, nil
}

// CommitMigration applies a guest migration as a single atomic unit: every
// staged match player-list rewrite plus the group's filtered guest list. The
// writes run inside one session transaction so a failure leaves both the
// matches and the group unchanged.
func (s *Store) CommitMigration(ctx context.Context, groupID string, updates []MatchUpdate, guests []Guest) error {
	session, err := s.Client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start migration session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if len(updates) > 0 {
			models := make([]mongo.WriteModel, 0, len(updates))
			for _, u := range updates {
				models = append(models, mongo.NewUpdateOneModel().
					SetFilter(bson.M{"_id": u.MatchID}).
					SetUpdate(bson.M{"$set": u.Fields}))
			}
			if _, err := s.Collections.Matches.BulkWrite(sc, models); err != nil {
				return nil, fmt.Errorf("failed to rewrite matches: %w", err)
			}
		}

		update := bson.M{"$set": bson.M{"guests": guests}}
		if _, err := s.Collections.Groups.UpdateOne(sc, bson.M{"_id": groupID}, update); err != nil {
			return nil, fmt.Errorf("failed to update group guest list: %w", err)
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("migration batch commit failed: %w", err)
	}
	return nil
}

// DeleteGroupMatches removes every match belonging to a deleted group, in
// batches of at most cleanupBatchSize staged deletes per commit.
// Postconditions: Returns the number of matches deleted, or an error if it occurs
func (s *Store) DeleteGroupMatches(ctx context.Context, groupID string) (int64, error) {
	cursor, err := s.Collections.Matches.Find(ctx, bson.M{"groupId": groupID})
	if err != nil {
		return 0, fmt.Errorf("error fetching matches for cleanup: %w", err)
	}

	var docs []struct {
		ID string `bson:"_id"`
	}
	if err = cursor.All(ctx, &docs); err != nil {
		return 0, fmt.Errorf("error unpacking cleanup cursor: %w", err)
	}
	if len(docs) == 0 {
		return 0, nil
	}

	var deleted int64
	for start := 0; start < len(docs); start += cleanupBatchSize {
		end := start + cleanupBatchSize
		if end > len(docs) {
			end = len(docs)
		}

		models := make([]mongo.WriteModel, 0, end-start)
		for _, doc := range docs[start:end] {
			models = append(models, mongo.NewDeleteOneModel().SetFilter(bson.M{"_id": doc.ID}))
		}

		result, err := s.Collections.Matches.BulkWrite(ctx, models)
		if err != nil {
			return deleted, fmt.Errorf("failed to delete batch of matches: %w", err)
		}
		deleted += result.DeletedCount
	}
	return deleted, nil
}
