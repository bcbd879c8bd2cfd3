/* api_test.go
 * Contains unit tests for api.go functions
 */

package api

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"matchroom/api/shared"
	"matchroom/api/store"
)

func newTestAPI(mock *MockStore) *API {
	return New(mock, zap.NewNop())
}

// migrationFixture builds a group with one admin, one member, one guest and
// three matches, one of which references the guest under each alias form
func migrationFixture() *MockStore {
	mock := NewMockStore()
	mock.Groups["group1"] = store.Group{
		ID:       "group1",
		Name:     "Sunday League",
		AdminUID: "admin1",
		Members: map[string]store.Member{
			"admin1":  {Name: "Admin", Role: "admin"},
			"member1": {Name: "New Member", Role: "viewer"},
		},
		Guests: []store.Guest{
			{ID: "g1", Name: "Old Guest"},
			{ID: "g2", Name: "Other Guest"},
		},
	}
	mock.Matches = []store.Match{
		{
			ID:      "m1",
			GroupID: "group1",
			Team1:   store.TeamSide{Players: []any{map[string]any{"uid": "g1", "displayName": "Old Guest"}}},
			Team2:   store.TeamSide{Players: []any{map[string]any{"uid": "admin1", "displayName": "Admin"}}},
		},
		{
			ID:      "m2",
			GroupID: "group1",
			Team1:   store.TeamSide{Players: []any{map[string]any{"uid": "admin1", "displayName": "Admin"}}},
			Team2:   store.TeamSide{Players: []any{map[string]any{"uid": "guest_g1", "displayName": "Old Guest"}}},
		},
		{
			ID:      "m3",
			GroupID: "group1",
			Team1:   store.TeamSide{Players: []any{map[string]any{"uid": "admin1", "displayName": "Admin"}}},
			Team2:   store.TeamSide{Players: []any{map[string]any{"uid": "g2", "displayName": "Other Guest"}}},
		},
	}
	return mock
}

var adminUser = shared.User{UID: "admin1", Name: "Admin"}

// region MigrateGuestToMember tests

func TestMigrateGuestToMember_Success(t *testing.T) {
	mock := migrationFixture()
	a := newTestAPI(mock)

	resp, err := a.MigrateGuestToMember(context.Background(), adminUser, MigrateRequest{
		GroupID: "group1", GuestID: "g1", MemberID: "member1",
	})

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.MatchesUpdated)
	assert.Equal(t, "Successfully migrated guest 'Old Guest' to member 'New Member'. Updated 2 matches.", resp.Message)

	assert.Equal(t, 1, mock.CommitCalls)
	require.Len(t, mock.CommittedUpdates, 2)
	assert.Equal(t, "m1", mock.CommittedUpdates[0].MatchID)
	assert.Contains(t, mock.CommittedUpdates[0].Fields, "team1.players")
	assert.NotContains(t, mock.CommittedUpdates[0].Fields, "team2.players")
	assert.Equal(t, "m2", mock.CommittedUpdates[1].MatchID)
	assert.Contains(t, mock.CommittedUpdates[1].Fields, "team2.players")

	// g1 removed from the guest list, g2 untouched
	require.Len(t, mock.CommittedGuests, 1)
	assert.Equal(t, "g2", mock.CommittedGuests[0].ID)
}

// TestMigrateGuestToMember_NoMatchingMatches tests that a guest with no match
// references still gets removed, with a zero count
func TestMigrateGuestToMember_NoMatchingMatches(t *testing.T) {
	mock := migrationFixture()
	mock.Matches = nil
	a := newTestAPI(mock)

	resp, err := a.MigrateGuestToMember(context.Background(), adminUser, MigrateRequest{
		GroupID: "group1", GuestID: "g1", MemberID: "member1",
	})

	require.NoError(t, err)
	assert.Equal(t, 0, resp.MatchesUpdated)
	assert.Equal(t, 1, mock.CommitCalls)
	assert.Empty(t, mock.CommittedUpdates)
}

// TestMigrateGuestToMember_MemberNameFallback tests that a nameless member
// inherits the guest's display name in the rewrite
func TestMigrateGuestToMember_MemberNameFallback(t *testing.T) {
	mock := migrationFixture()
	group := mock.Groups["group1"]
	group.Members["member1"] = store.Member{Role: "viewer"}
	mock.Groups["group1"] = group
	a := newTestAPI(mock)

	resp, err := a.MigrateGuestToMember(context.Background(), adminUser, MigrateRequest{
		GroupID: "group1", GuestID: "g1", MemberID: "member1",
	})

	require.NoError(t, err)
	assert.Contains(t, resp.Message, "to member 'Old Guest'")
}

func TestMigrateGuestToMember_Unauthenticated(t *testing.T) {
	a := newTestAPI(migrationFixture())

	_, err := a.MigrateGuestToMember(context.Background(), shared.User{}, MigrateRequest{
		GroupID: "group1", GuestID: "g1", MemberID: "member1",
	})

	require.Error(t, err)
	assert.True(t, shared.IsValidation(err))
	assert.Equal(t, "Authentication required", shared.ValidationMessage(err))
}

func TestMigrateGuestToMember_MissingField(t *testing.T) {
	a := newTestAPI(migrationFixture())

	_, err := a.MigrateGuestToMember(context.Background(), adminUser, MigrateRequest{
		GroupID: "group1", MemberID: "member1",
	})

	require.Error(t, err)
	assert.True(t, shared.IsValidation(err))
	assert.Equal(t, "Missing required field: guestId", shared.ValidationMessage(err))
}

func TestMigrateGuestToMember_GroupNotFound(t *testing.T) {
	a := newTestAPI(migrationFixture())

	_, err := a.MigrateGuestToMember(context.Background(), adminUser, MigrateRequest{
		GroupID: "missing", GuestID: "g1", MemberID: "member1",
	})

	require.Error(t, err)
	assert.True(t, shared.IsValidation(err))
	assert.Equal(t, "Group with ID missing does not exist", shared.ValidationMessage(err))
}

func TestMigrateGuestToMember_NotAdmin(t *testing.T) {
	a := newTestAPI(migrationFixture())

	_, err := a.MigrateGuestToMember(context.Background(), shared.User{UID: "member1"}, MigrateRequest{
		GroupID: "group1", GuestID: "g1", MemberID: "member1",
	})

	require.Error(t, err)
	assert.Equal(t, "Only group admins can migrate guest data", shared.ValidationMessage(err))
}

// TestMigrateGuestToMember_AdminRoleMember tests that a member carrying the
// admin role may migrate even when not the recorded adminUid
func TestMigrateGuestToMember_AdminRoleMember(t *testing.T) {
	mock := migrationFixture()
	group := mock.Groups["group1"]
	group.Members["second"] = store.Member{Name: "Second Admin", Role: "admin"}
	mock.Groups["group1"] = group
	a := newTestAPI(mock)

	_, err := a.MigrateGuestToMember(context.Background(), shared.User{UID: "second"}, MigrateRequest{
		GroupID: "group1", GuestID: "g1", MemberID: "member1",
	})

	assert.NoError(t, err)
}

func TestMigrateGuestToMember_GuestNotFound(t *testing.T) {
	a := newTestAPI(migrationFixture())

	_, err := a.MigrateGuestToMember(context.Background(), adminUser, MigrateRequest{
		GroupID: "group1", GuestID: "ghost", MemberID: "member1",
	})

	require.Error(t, err)
	assert.Equal(t, "Guest with ID ghost does not exist in group group1", shared.ValidationMessage(err))
}

func TestMigrateGuestToMember_MemberNotFound(t *testing.T) {
	a := newTestAPI(migrationFixture())

	_, err := a.MigrateGuestToMember(context.Background(), adminUser, MigrateRequest{
		GroupID: "group1", GuestID: "g1", MemberID: "nobody",
	})

	require.Error(t, err)
	assert.Equal(t, "Member with ID nobody does not exist in group group1", shared.ValidationMessage(err))
}

// TestMigrateGuestToMember_CommitFailure tests that a storage failure is
// internal, not a validation error, and surfaces no partial success
func TestMigrateGuestToMember_CommitFailure(t *testing.T) {
	mock := migrationFixture()
	mock.CommitMigrationError = errors.New("transaction aborted")
	a := newTestAPI(mock)

	resp, err := a.MigrateGuestToMember(context.Background(), adminUser, MigrateRequest{
		GroupID: "group1", GuestID: "g1", MemberID: "member1",
	})

	require.Error(t, err)
	assert.False(t, shared.IsValidation(err))
	assert.False(t, resp.Success)
}

// endregion

// region JoinGroup tests

func joinFixture() *MockStore {
	mock := NewMockStore()
	mock.Groups["group1"] = store.Group{
		ID:         "group1",
		Name:       "Sunday League",
		InviteCode: "ABC12345",
		Members: map[string]store.Member{
			"existing": {Name: "Existing", Role: "viewer"},
		},
	}
	return mock
}

func TestJoinGroup_Success(t *testing.T) {
	mock := joinFixture()
	a := newTestAPI(mock)

	resp, err := a.JoinGroup(context.Background(), shared.User{UID: "new1", Name: "Newcomer"}, JoinRequest{
		InviteCode: " abc12345 ",
	})

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "group1", resp.GroupID)
	assert.Equal(t, "Sunday League", resp.GroupName)
	assert.False(t, resp.AlreadyMember)
	assert.Equal(t, "Successfully joined group: Sunday League", resp.Message)

	member, ok := mock.AddedMembers["new1"]
	require.True(t, ok)
	assert.Equal(t, "Newcomer", member.Name)
	assert.Equal(t, "viewer", member.Role)
}

// TestJoinGroup_DefaultName tests the display-name fallback for callers
// without one in their token
func TestJoinGroup_DefaultName(t *testing.T) {
	mock := joinFixture()
	a := newTestAPI(mock)

	_, err := a.JoinGroup(context.Background(), shared.User{UID: "new1"}, JoinRequest{InviteCode: "ABC12345"})

	require.NoError(t, err)
	assert.Equal(t, "User", mock.AddedMembers["new1"].Name)
}

func TestJoinGroup_AlreadyMember(t *testing.T) {
	mock := joinFixture()
	a := newTestAPI(mock)

	resp, err := a.JoinGroup(context.Background(), shared.User{UID: "existing"}, JoinRequest{InviteCode: "ABC12345"})

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.True(t, resp.AlreadyMember)
	assert.Equal(t, "You are already a member of this group", resp.Message)
	assert.Empty(t, mock.AddedMembers)
}

func TestJoinGroup_Unauthenticated(t *testing.T) {
	a := newTestAPI(joinFixture())

	_, err := a.JoinGroup(context.Background(), shared.User{}, JoinRequest{InviteCode: "ABC12345"})

	require.Error(t, err)
	assert.Equal(t, "Authentication required", shared.ValidationMessage(err))
}

func TestJoinGroup_MissingCode(t *testing.T) {
	a := newTestAPI(joinFixture())

	_, err := a.JoinGroup(context.Background(), shared.User{UID: "new1"}, JoinRequest{})

	require.Error(t, err)
	assert.Equal(t, "Missing required field: inviteCode", shared.ValidationMessage(err))
}

func TestJoinGroup_MalformedCode(t *testing.T) {
	a := newTestAPI(joinFixture())

	_, err := a.JoinGroup(context.Background(), shared.User{UID: "new1"}, JoinRequest{InviteCode: "short"})

	require.Error(t, err)
	assert.True(t, shared.IsValidation(err))
	assert.Equal(t, "Invite code must be 8 characters", shared.ValidationMessage(err))
}

func TestJoinGroup_UnknownCode(t *testing.T) {
	a := newTestAPI(joinFixture())

	_, err := a.JoinGroup(context.Background(), shared.User{UID: "new1"}, JoinRequest{InviteCode: "ZZZ99999"})

	require.Error(t, err)
	assert.Equal(t, "Invalid invite code. No matching group found.", shared.ValidationMessage(err))
}

// endregion
