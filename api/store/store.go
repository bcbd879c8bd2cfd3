/* store.go
 * Contains the Store struct and NewStore function. The methods for this
 * package were split across groups.go, matches.go, group_stats.go and
 * rate_limits.go: each of these files contains the methods for interacting
 * with that part of the database.
 */

package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	Client      *mongo.Client
	Database    *mongo.Database
	Collections struct {
		Groups          *mongo.Collection
		Matches         *mongo.Collection
		GroupStats      *mongo.Collection
		RateLimits      *mongo.Collection
		MatchRateLimits *mongo.Collection
	}
}

// NewStore initialises the db connection and binds the collection handles.
// Preconditions: Receives strings containing dbName and mongoURI
// Postconditions: Returns pointer to the Store object, or error if it occurs
func NewStore(ctx context.Context, dbName string, mongoURI string) (*Store, error) {
	if dbName == "" {
		return nil, fmt.Errorf("dbName cannot be empty")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, err
	}
	db := client.Database(dbName)

	s := &Store{
		Client:   client,
		Database: db,
	}
	s.Collections.Groups = db.Collection("groups")
	s.Collections.Matches = db.Collection("matches")
	s.Collections.GroupStats = db.Collection("groupStats")
	s.Collections.RateLimits = db.Collection("ratelimits")
	s.Collections.MatchRateLimits = db.Collection("matchRatelimits")

	return s, nil
}
