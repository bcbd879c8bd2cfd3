/* groups.go
 * Contains the methods for interacting with the groups collection
 */

package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetGroup does a DB lookup for a single group document.
// Preconditions: Receives string containing the group id
// Postconditions: Returns the Group if it exists, mongo.ErrNoDocuments if it
// does not, or a wrapped error for any other failure
func (s *Store) GetGroup(ctx context.Context, groupID string) (Group, error) {
	var group Group
	err := s.Collections.Groups.FindOne(ctx, bson.M{"_id": groupID}).Decode(&group)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Group{}, err
		}
		return Group{}, fmt.Errorf("error fetching group from db: %w", err)
	}
	return group, nil
}

// FindGroupByInviteCode looks a group up by its invite code. When more than
// one group carries the code the first match wins.
// Preconditions: Receives normalized (uppercase) invite code
// Postconditions: Returns the Group, mongo.ErrNoDocuments when no group
// matches, or a wrapped error for any other failure
func (s *Store) FindGroupByInviteCode(ctx context.Context, inviteCode string) (Group, error) {
	var group Group
	err := s.Collections.Groups.FindOne(ctx, bson.M{"inviteCode": inviteCode}).Decode(&group)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Group{}, err
		}
		return Group{}, fmt.Errorf("error fetching group by invite code: %w", err)
	}
	return group, nil
}

// AddGroupMember writes a single member entry into the group's members map
// without touching the rest of the document.
func (s *Store) AddGroupMember(ctx context.Context, groupID string, uid string, member Member) error {
	update := bson.M{"$set": bson.M{"members." + uid: member}}
	_, err := s.Collections.Groups.UpdateOne(ctx, bson.M{"_id": groupID}, update)
	if err != nil {
		return fmt.Errorf("failed to add member to group: %w", err)
	}
	return nil
}

// UpdateGroupGuests overwrites the group's guest list.
func (s *Store) UpdateGroupGuests(ctx context.Context, groupID string, guests []Guest) error {
	update := bson.M{"$set": bson.M{"guests": guests}}
	_, err := s.Collections.Groups.UpdateOne(ctx, bson.M{"_id": groupID}, update)
	if err != nil {
		return fmt.Errorf("failed to update group guests: %w", err)
	}
	return nil
}
