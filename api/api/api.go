/* api.go
 * This file contains the public callable operations of the application:
 * migrating a guest's match history to a member account, and joining a group
 * with an invite code. Both require a verified caller identity and surface
 * only two error kinds: validation (descriptive, caller-correctable) and
 * internal (generic). Trigger-driven operations live in triggers.go.
 */

package api

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"matchroom/api/logic"
	"matchroom/api/shared"
	"matchroom/api/store"
)

// API provides the callable and trigger operations over the document store.
type API struct {
	Store    store.Interface
	Log      *zap.Logger
	validate *validator.Validate
}

// New builds an API around an existing store, used directly by tests.
func New(s store.Interface, log *zap.Logger) *API {
	v := validator.New()
	// report field names as they appear on the wire
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &API{
		Store:    s,
		Log:      log,
		validate: v,
	}
}

// NewAPI creates a new API instance with its own store connection.
func NewAPI(ctx context.Context, dbName string, mongoURI string, log *zap.Logger) (*API, error) {
	s, err := store.NewStore(ctx, dbName, mongoURI)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}
	return New(s, log), nil
}

// checkRequired runs struct validation and converts the first failure into the
// user-facing missing-field message.
func (a *API) checkRequired(payload any) error {
	err := a.validate.Struct(payload)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return shared.Validationf("Missing required field: %s", fieldErrs[0].Field())
	}
	return shared.Validationf("invalid request payload")
}

// MigrateGuestToMember rewrites every match record referencing a guest so it
// references the member instead, and removes the guest from the group, as one
// atomic batch. Preconditions are checked in order; the first failure wins
// and is returned as a validation error.
func (a *API) MigrateGuestToMember(ctx context.Context, user shared.User, req MigrateRequest) (MigrateResponse, error) {
	if user.UID == "" {
		return MigrateResponse{}, shared.Validationf("Authentication required")
	}
	if err := a.checkRequired(req); err != nil {
		return MigrateResponse{}, err
	}

	group, err := a.Store.GetGroup(ctx, req.GroupID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return MigrateResponse{}, shared.Validationf("Group with ID %s does not exist", req.GroupID)
		}
		return MigrateResponse{}, fmt.Errorf("failed to fetch group: %w", err)
	}

	if !isGroupAdmin(group, user.UID) {
		return MigrateResponse{}, shared.Validationf("Only group admins can migrate guest data")
	}

	guestName, guestExists := findGuestName(group.Guests, req.GuestID)
	if !guestExists {
		return MigrateResponse{}, shared.Validationf("Guest with ID %s does not exist in group %s", req.GuestID, req.GroupID)
	}

	member, memberExists := group.Members[req.MemberID]
	if !memberExists {
		return MigrateResponse{}, shared.Validationf("Member with ID %s does not exist in group %s", req.MemberID, req.GroupID)
	}

	memberName := member.Name
	if memberName == "" {
		memberName = guestName
	}

	matches, err := a.Store.FetchGroupMatches(ctx, req.GroupID)
	if err != nil {
		return MigrateResponse{}, fmt.Errorf("failed to fetch group matches: %w", err)
	}

	var updates []store.MatchUpdate
	updatedMatches := 0

	for _, match := range matches {
		fields := bson.M{}
		if rewritten, changed := logic.RewriteTeamPlayers(match.Team1.Players, req.GuestID, req.MemberID, memberName); changed {
			fields["team1.players"] = rewritten
		}
		if rewritten, changed := logic.RewriteTeamPlayers(match.Team2.Players, req.GuestID, req.MemberID, memberName); changed {
			fields["team2.players"] = rewritten
		}
		if len(fields) > 0 {
			updates = append(updates, store.MatchUpdate{MatchID: match.ID, Fields: fields})
			updatedMatches++
		}
	}

	remaining := logic.RemoveGuest(group.Guests, req.GuestID)

	if err := a.Store.CommitMigration(ctx, req.GroupID, updates, remaining); err != nil {
		return MigrateResponse{}, fmt.Errorf("migration commit failed: %w", err)
	}

	a.Log.Info("guest migrated to member",
		zap.String("groupId", req.GroupID),
		zap.String("guestId", req.GuestID),
		zap.String("memberId", req.MemberID),
		zap.Int("matchesUpdated", updatedMatches))

	return MigrateResponse{
		Success:        true,
		Message:        fmt.Sprintf("Successfully migrated guest '%s' to member '%s'. Updated %d matches.", guestName, memberName, updatedMatches),
		MatchesUpdated: updatedMatches,
	}, nil
}

// JoinGroup adds the caller to the group matching an invite code with the
// viewer role. Joining a group you already belong to is reported as success
// without a write.
func (a *API) JoinGroup(ctx context.Context, user shared.User, req JoinRequest) (JoinResponse, error) {
	if user.UID == "" {
		return JoinResponse{}, shared.Validationf("Authentication required")
	}
	if err := a.checkRequired(req); err != nil {
		return JoinResponse{}, err
	}

	code, err := logic.NormalizeInviteCode(req.InviteCode)
	if err != nil {
		return JoinResponse{}, err
	}

	group, err := a.Store.FindGroupByInviteCode(ctx, code)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return JoinResponse{}, shared.Validationf("Invalid invite code. No matching group found.")
		}
		return JoinResponse{}, fmt.Errorf("failed to look up invite code: %w", err)
	}

	if _, ok := group.Members[user.UID]; ok {
		return JoinResponse{
			Success:       true,
			Message:       "You are already a member of this group",
			GroupID:       group.ID,
			GroupName:     group.Name,
			AlreadyMember: true,
		}, nil
	}

	name := user.Name
	if name == "" {
		name = "User"
	}
	member := store.Member{Name: name, Role: "viewer"}

	if err := a.Store.AddGroupMember(ctx, group.ID, user.UID, member); err != nil {
		return JoinResponse{}, fmt.Errorf("failed to join group: %w", err)
	}

	a.Log.Info("user joined group", zap.String("groupId", group.ID), zap.String("uid", user.UID))

	return JoinResponse{
		Success:   true,
		Message:   fmt.Sprintf("Successfully joined group: %s", group.Name),
		GroupID:   group.ID,
		GroupName: group.Name,
	}, nil
}

// isGroupAdmin reports whether uid may administer the group: either the
// recorded adminUid, or any member carrying the admin role.
func isGroupAdmin(group store.Group, uid string) bool {
	if group.AdminUID == uid {
		return true
	}
	member, ok := group.Members[uid]
	return ok && member.Role == "admin"
}

func findGuestName(guests []store.Guest, guestID string) (string, bool) {
	for _, guest := range guests {
		if guest.ID == guestID {
			return guest.Name, true
		}
	}
	return "", false
}
