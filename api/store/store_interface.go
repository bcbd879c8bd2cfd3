/* store_interface.go
 * Contains the Store interface for dependency injection and testing
 */

package store

import (
	"context"
)

// Interface defines the methods that Store implements.
// This allows for mocking in tests.
type Interface interface {
	GetGroup(ctx context.Context, groupID string) (Group, error)
	FindGroupByInviteCode(ctx context.Context, inviteCode string) (Group, error)
	AddGroupMember(ctx context.Context, groupID string, uid string, member Member) error
	UpdateGroupGuests(ctx context.Context, groupID string, guests []Guest) error

	FetchGroupMatches(ctx context.Context, groupID string) ([]Match, error)
	CommitMigration(ctx context.Context, groupID string, updates []MatchUpdate, guests []Guest) error
	DeleteGroupMatches(ctx context.Context, groupID string) (int64, error)

	ReplaceGroupStats(ctx context.Context, stats GroupStats) error
	DeleteGroupStats(ctx context.Context, groupID string) error

	RecordGroupCreation(ctx context.Context, uid string) error
	DecrementGroupCount(ctx context.Context, uid string) error
	RecordMatchCreation(ctx context.Context, uid string) error

	// Getter methods for accessing fields
	GetDatabase() interface{ Name() string }
	GetClient() interface{ Disconnect(context.Context) error }
}

// Ensure Store implements Interface
var _ Interface = (*Store)(nil)

// GetDatabase returns the database instance
func (s *Store) GetDatabase() interface{ Name() string } {
	return s.Database
}

// GetClient returns the MongoDB client
func (s *Store) GetClient() interface{ Disconnect(context.Context) error } {
	return s.Client
}
