/* test_mocks.go
 * Contains mock structures for testing the API package
 */

package api

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"matchroom/api/store"
)

// MockStore implements the store Interface for testing
type MockStore struct {
	// Storage for mock data
	Groups  map[string]store.Group
	Matches []store.Match
	Stats   map[string]store.GroupStats

	// Recorded writes for assertions
	CommittedUpdates   []store.MatchUpdate
	CommittedGuests    []store.Guest
	CommitCalls        int
	AddedMembers       map[string]store.Member
	UpdatedGuests      []store.Guest
	GuestsUpdated      bool
	ReplacedStats      []store.GroupStats
	DeletedStatsIDs    []string
	DeletedMatchGroups []string
	GroupCreations     []string
	GroupDecrements    []string
	MatchCreations     []string

	// Injected behaviour
	DeleteMatchesCount int64

	// Error injection for testing error paths
	GetGroupError              error
	FindGroupByInviteCodeError error
	AddGroupMemberError        error
	UpdateGroupGuestsError     error
	FetchGroupMatchesError     error
	CommitMigrationError       error
	DeleteGroupMatchesError    error
	ReplaceGroupStatsError     error
	DeleteGroupStatsError      error
	RecordGroupCreationError   error
	DecrementGroupCountError   error
	RecordMatchCreationError   error
}

// NewMockStore creates a new MockStore with empty state
func NewMockStore() *MockStore {
	return &MockStore{
		Groups:       make(map[string]store.Group),
		Stats:        make(map[string]store.GroupStats),
		AddedMembers: make(map[string]store.Member),
	}
}

var _ store.Interface = (*MockStore)(nil)

func (m *MockStore) GetGroup(ctx context.Context, groupID string) (store.Group, error) {
	if m.GetGroupError != nil {
		return store.Group{}, m.GetGroupError
	}
	group, ok := m.Groups[groupID]
	if !ok {
		return store.Group{}, mongo.ErrNoDocuments
	}
	return group, nil
}

func (m *MockStore) FindGroupByInviteCode(ctx context.Context, inviteCode string) (store.Group, error) {
	if m.FindGroupByInviteCodeError != nil {
		return store.Group{}, m.FindGroupByInviteCodeError
	}
	for _, group := range m.Groups {
		if group.InviteCode == inviteCode {
			return group, nil
		}
	}
	return store.Group{}, mongo.ErrNoDocuments
}

func (m *MockStore) AddGroupMember(ctx context.Context, groupID string, uid string, member store.Member) error {
	if m.AddGroupMemberError != nil {
		return m.AddGroupMemberError
	}
	m.AddedMembers[uid] = member
	return nil
}

func (m *MockStore) UpdateGroupGuests(ctx context.Context, groupID string, guests []store.Guest) error {
	if m.UpdateGroupGuestsError != nil {
		return m.UpdateGroupGuestsError
	}
	m.UpdatedGuests = guests
	m.GuestsUpdated = true
	return nil
}

func (m *MockStore) FetchGroupMatches(ctx context.Context, groupID string) ([]store.Match, error) {
	if m.FetchGroupMatchesError != nil {
		return nil, m.FetchGroupMatchesError
	}
	var matches []store.Match
	for _, match := range m.Matches {
		if match.GroupID == groupID {
			matches = append(matches, match)
		}
	}
	return matches, nil
}

func (m *MockStore) CommitMigration(ctx context.Context, groupID string, updates []store.MatchUpdate, guests []store.Guest) error {
	if m.CommitMigrationError != nil {
		return m.CommitMigrationError
	}
	m.CommitCalls++
	m.CommittedUpdates = updates
	m.CommittedGuests = guests
	return nil
}

func (m *MockStore) DeleteGroupMatches(ctx context.Context, groupID string) (int64, error) {
	if m.DeleteGroupMatchesError != nil {
		return 0, m.DeleteGroupMatchesError
	}
	m.DeletedMatchGroups = append(m.DeletedMatchGroups, groupID)
	return m.DeleteMatchesCount, nil
}

func (m *MockStore) ReplaceGroupStats(ctx context.Context, stats store.GroupStats) error {
	if m.ReplaceGroupStatsError != nil {
		return m.ReplaceGroupStatsError
	}
	m.ReplacedStats = append(m.ReplacedStats, stats)
	m.Stats[stats.GroupID] = stats
	return nil
}

func (m *MockStore) DeleteGroupStats(ctx context.Context, groupID string) error {
	if m.DeleteGroupStatsError != nil {
		return m.DeleteGroupStatsError
	}
	m.DeletedStatsIDs = append(m.DeletedStatsIDs, groupID)
	return nil
}

func (m *MockStore) RecordGroupCreation(ctx context.Context, uid string) error {
	if m.RecordGroupCreationError != nil {
		return m.RecordGroupCreationError
	}
	m.GroupCreations = append(m.GroupCreations, uid)
	return nil
}

func (m *MockStore) DecrementGroupCount(ctx context.Context, uid string) error {
	if m.DecrementGroupCountError != nil {
		return m.DecrementGroupCountError
	}
	m.GroupDecrements = append(m.GroupDecrements, uid)
	return nil
}

func (m *MockStore) RecordMatchCreation(ctx context.Context, uid string) error {
	if m.RecordMatchCreationError != nil {
		return m.RecordMatchCreationError
	}
	m.MatchCreations = append(m.MatchCreations, uid)
	return nil
}

func (m *MockStore) GetDatabase() interface{ Name() string } {
	return mockDatabase{}
}

func (m *MockStore) GetClient() interface{ Disconnect(context.Context) error } {
	return mockClient{}
}

type mockDatabase struct{}

func (mockDatabase) Name() string { return "test" }

type mockClient struct{}

func (mockClient) Disconnect(context.Context) error { return nil }
