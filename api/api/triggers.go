/* triggers.go
 * Contains the operations invoked by document change triggers: stats
 * recomputation, guest-name sanitation, cascade cleanup and the per-user
 * rate-limit counters. These run with no external caller, so errors returned
 * here are logged by the trigger layer and never surfaced further.
 */

package api

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"matchroom/api/logic"
	"matchroom/api/store"
)

// RecomputeGroupStats fetches the group and its full match history and
// unconditionally overwrites the stats snapshot. A group that no longer
// exists is skipped silently: its orphaned snapshot is removed by the
// deletion cleanup, not here.
func (a *API) RecomputeGroupStats(ctx context.Context, groupID string) error {
	group, err := a.Store.GetGroup(ctx, groupID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			a.Log.Warn("group not found, cannot calculate stats", zap.String("groupId", groupID))
			return nil
		}
		return fmt.Errorf("failed to fetch group for stats: %w", err)
	}

	matches, err := a.Store.FetchGroupMatches(ctx, groupID)
	if err != nil {
		return fmt.Errorf("failed to fetch matches for stats: %w", err)
	}

	stats := logic.ComputeGroupStats(group, matches)
	if err := a.Store.ReplaceGroupStats(ctx, stats); err != nil {
		return fmt.Errorf("failed to persist group stats: %w", err)
	}

	a.Log.Info("updated stats for group",
		zap.String("groupId", groupID),
		zap.Int("totalMatches", stats.TotalMatches))
	return nil
}

// CleanGuestNames sanitizes a group's guest display names after a group
// write, rewriting the guest list only when something actually changed.
func (a *API) CleanGuestNames(ctx context.Context, groupID string, guests []store.Guest) error {
	sanitized, needsCleaning := logic.SanitizeGuests(guests)
	if !needsCleaning {
		return nil
	}

	if err := a.Store.UpdateGroupGuests(ctx, groupID, sanitized); err != nil {
		return fmt.Errorf("failed to sanitize guest names: %w", err)
	}
	a.Log.Info("sanitized guest names for group", zap.String("groupId", groupID))
	return nil
}

// CleanupDeletedGroup removes everything a deleted group left behind: its
// matches (batched) and its stats snapshot. The store enforces no referential
// integrity, so this cascade is explicit.
func (a *API) CleanupDeletedGroup(ctx context.Context, groupID string) error {
	deleted, err := a.Store.DeleteGroupMatches(ctx, groupID)
	if err != nil {
		return fmt.Errorf("failed to delete group matches: %w", err)
	}
	if deleted == 0 {
		a.Log.Info("no matches found for deleted group", zap.String("groupId", groupID))
	} else {
		a.Log.Info("deleted matches for group", zap.String("groupId", groupID), zap.Int64("count", deleted))
	}

	if err := a.Store.DeleteGroupStats(ctx, groupID); err != nil {
		return fmt.Errorf("failed to delete group stats: %w", err)
	}
	return nil
}

// RecordGroupCreated bumps the creating user's group rate-limit counter.
func (a *API) RecordGroupCreated(ctx context.Context, adminUID string) error {
	if adminUID == "" {
		a.Log.Warn("group document missing adminUid, skipping rate limit update")
		return nil
	}
	if err := a.Store.RecordGroupCreation(ctx, adminUID); err != nil {
		return err
	}
	a.Log.Info("updated group rate limit", zap.String("uid", adminUID))
	return nil
}

// RecordGroupDeleted decrements the owning user's group counter, floored at 0.
func (a *API) RecordGroupDeleted(ctx context.Context, adminUID string) error {
	if adminUID == "" {
		a.Log.Warn("group document missing adminUid, skipping rate limit decrement")
		return nil
	}
	if err := a.Store.DecrementGroupCount(ctx, adminUID); err != nil {
		return err
	}
	a.Log.Info("decremented group count", zap.String("uid", adminUID))
	return nil
}

// RecordMatchCreated stamps the creating user's last-match-creation time.
func (a *API) RecordMatchCreated(ctx context.Context, createdBy string) error {
	if createdBy == "" {
		a.Log.Warn("match document missing createdBy, skipping rate limit update")
		return nil
	}
	if err := a.Store.RecordMatchCreation(ctx, createdBy); err != nil {
		return err
	}
	a.Log.Info("updated match rate limit", zap.String("uid", createdBy))
	return nil
}
