/* handlers.go
 * Trigger handlers wired to the document change topics. Handlers never return
 * an error to the router: a failed trigger is logged and dropped, favouring
 * eventual consistency over blocking or redelivering the triggering write.
 */

package trigger

import (
	"encoding/json"
	"reflect"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.uber.org/zap"

	"matchroom/api/api"
	"matchroom/api/store"
)

// Handlers binds the trigger operations to incoming document change events.
type Handlers struct {
	API *api.API
	Log *zap.Logger
}

func NewHandlers(a *api.API, log *zap.Logger) *Handlers {
	return &Handlers{API: a, Log: log}
}

// OnMatchWritten handles create/update/delete of a match document: stamps the
// creator's rate limit on creation and recomputes the owning group's stats on
// every write.
func (h *Handlers) OnMatchWritten(msg *message.Message) error {
	var change DocumentChange
	if err := json.Unmarshal(msg.Payload, &change); err != nil {
		h.Log.Error("failed to decode match change event", zap.Error(err))
		return nil
	}

	ctx := msg.Context()
	before, hasBefore := decodeMatch(change.Before)
	after, hasAfter := decodeMatch(change.After)

	if !hasBefore && !hasAfter {
		h.Log.Warn("no match data found", zap.String("matchId", change.ID))
		return nil
	}

	if hasAfter && !hasBefore {
		if err := h.API.RecordMatchCreated(ctx, after.CreatedBy); err != nil {
			h.Log.Error("error updating match rate limit", zap.Error(err))
		}
	}

	groupID := after.GroupID
	if groupID == "" {
		groupID = before.GroupID
	}
	if groupID == "" {
		h.Log.Error("no groupId found in match data", zap.String("matchId", change.ID))
		return nil
	}

	if err := h.API.RecomputeGroupStats(ctx, groupID); err != nil {
		h.Log.Error("error calculating stats for group", zap.String("groupId", groupID), zap.Error(err))
	}
	return nil
}

// OnGroupWritten handles create/update/delete of a group document: guest-name
// sanitation and rate limiting on create/update, membership-change stats
// recomputation, and cascade cleanup plus counter decrement on deletion.
func (h *Handlers) OnGroupWritten(msg *message.Message) error {
	var change DocumentChange
	if err := json.Unmarshal(msg.Payload, &change); err != nil {
		h.Log.Error("failed to decode group change event", zap.Error(err))
		return nil
	}

	ctx := msg.Context()
	before, hasBefore := decodeGroup(change.Before)
	after, hasAfter := decodeGroup(change.After)

	switch {
	case !hasBefore && !hasAfter:
		h.Log.Warn("no group data found", zap.String("groupId", change.ID))

	case hasAfter:
		if !hasBefore {
			if err := h.API.RecordGroupCreated(ctx, after.AdminUID); err != nil {
				h.Log.Error("error updating group rate limit", zap.Error(err))
			}
		}

		if err := h.API.CleanGuestNames(ctx, change.ID, after.Guests); err != nil {
			h.Log.Error("error sanitizing guest names", zap.String("groupId", change.ID), zap.Error(err))
		}

		if hasBefore && membershipChanged(before, after) {
			if err := h.API.RecomputeGroupStats(ctx, change.ID); err != nil {
				h.Log.Error("error calculating stats for group", zap.String("groupId", change.ID), zap.Error(err))
			}
		}

	default: // deleted
		if err := h.API.RecordGroupDeleted(ctx, before.AdminUID); err != nil {
			h.Log.Error("error decrementing group count", zap.Error(err))
		}
		if err := h.API.CleanupDeletedGroup(ctx, change.ID); err != nil {
			h.Log.Error("error during cleanup for group", zap.String("groupId", change.ID), zap.Error(err))
		}
	}
	return nil
}

// membershipChanged reports whether the members map or guest list changed
// value between the two snapshots.
func membershipChanged(before, after store.Group) bool {
	return !reflect.DeepEqual(before.Members, after.Members) ||
		!reflect.DeepEqual(before.Guests, after.Guests)
}

func decodeGroup(raw json.RawMessage) (store.Group, bool) {
	if !present(raw) {
		return store.Group{}, false
	}
	var group store.Group
	if err := json.Unmarshal(raw, &group); err != nil {
		return store.Group{}, false
	}
	return group, true
}

func decodeMatch(raw json.RawMessage) (store.Match, bool) {
	if !present(raw) {
		return store.Match{}, false
	}
	var match store.Match
	if err := json.Unmarshal(raw, &match); err != nil {
		return store.Match{}, false
	}
	return match, true
}
