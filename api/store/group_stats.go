/* group_stats.go
 * Contains the methods for interacting with the groupStats collection. Stats
 * documents are a derived cache keyed by group id: they are only ever written
 * wholesale, never patched, so concurrent recomputes resolve last-write-wins.
 */

package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ReplaceGroupStats overwrites the group's stats snapshot, creating it if
// missing. LastUpdated is stamped here so every write carries a fresh
// monotonic timestamp.
func (s *Store) ReplaceGroupStats(ctx context.Context, stats GroupStats) error {
	stats.LastUpdated = time.Now().UTC()

	opts := options.Replace().SetUpsert(true)
	_, err := s.Collections.GroupStats.ReplaceOne(ctx, bson.M{"_id": stats.GroupID}, stats, opts)
	if err != nil {
		return fmt.Errorf("failed to replace group stats: %w", err)
	}
	return nil
}

// DeleteGroupStats removes the stats snapshot for a deleted group. Deleting a
// snapshot that does not exist is not an error.
func (s *Store) DeleteGroupStats(ctx context.Context, groupID string) error {
	_, err := s.Collections.GroupStats.DeleteOne(ctx, bson.M{"_id": groupID})
	if err != nil {
		return fmt.Errorf("failed to delete group stats: %w", err)
	}
	return nil
}
