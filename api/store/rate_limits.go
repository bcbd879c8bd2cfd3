/* rate_limits.go
 * Contains the methods for interacting with the ratelimits and
 * matchRatelimits collections: simple per-user counters keyed by uid.
 */

package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RecordGroupCreation increments the user's group counter and stamps the
// creation time, creating the counter document on first use.
func (s *Store) RecordGroupCreation(ctx context.Context, uid string) error {
	update := bson.M{
		"$inc":         bson.M{"groupCount": 1},
		"$currentDate": bson.M{"lastGroupCreation": true},
	}
	opts := options.Update().SetUpsert(true)
	_, err := s.Collections.RateLimits.UpdateOne(ctx, bson.M{"_id": uid}, update, opts)
	if err != nil {
		return fmt.Errorf("failed to update group rate limit: %w", err)
	}
	return nil
}

// DecrementGroupCount lowers the user's group counter after a group deletion,
// floored at zero. A user without a counter document is left untouched.
func (s *Store) DecrementGroupCount(ctx context.Context, uid string) error {
	var doc RateLimit
	err := s.Collections.RateLimits.FindOne(ctx, bson.M{"_id": uid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil
		}
		return fmt.Errorf("failed to read group rate limit: %w", err)
	}

	newCount := doc.GroupCount - 1
	if newCount < 0 {
		newCount = 0
	}

	update := bson.M{"$set": bson.M{"groupCount": newCount}}
	_, err = s.Collections.RateLimits.UpdateOne(ctx, bson.M{"_id": uid}, update)
	if err != nil {
		return fmt.Errorf("failed to decrement group count: %w", err)
	}
	return nil
}

// RecordMatchCreation stamps the user's last-match-creation time, creating
// the document on first use.
func (s *Store) RecordMatchCreation(ctx context.Context, uid string) error {
	update := bson.M{"$currentDate": bson.M{"lastMatchCreation": true}}
	opts := options.Update().SetUpsert(true)
	_, err := s.Collections.MatchRateLimits.UpdateOne(ctx, bson.M{"_id": uid}, update, opts)
	if err != nil {
		return fmt.Errorf("failed to update match rate limit: %w", err)
	}
	return nil
}
