/* migration.go
 * Contains the pure rewrite step of a guest-to-member migration: replacing a
 * guest's identifiers inside a team's player list while preserving every other
 * player field verbatim. The storage commit lives in the store package.
 */

package logic

import (
	"go.mongodb.org/mongo-driver/bson"

	"matchroom/api/store"
)

// GuestAlias returns the synthetic player identifier used to reference a
// guest inside match records.
func GuestAlias(guestID string) string {
	return "guest_" + guestID
}

// MatchesGuest reports whether a player uid references the guest. Legacy
// documents carry the bare guest id instead of the prefixed alias, so both
// forms are matched.
func MatchesGuest(uid, guestID string) bool {
	return uid != "" && (uid == guestID || uid == GuestAlias(guestID))
}

// RewriteTeamPlayers rewrites every reference to the guest inside one team's
// raw player list, replacing uid with memberID and displayName with
// memberName. It returns the full rewritten sequence (untouched teammates
// included, map-encoded inputs flattened to the normalized order) and whether
// anything changed. Non-object entries in array-encoded lists pass through
// unchanged.
func RewriteTeamPlayers(players any, guestID, memberID, memberName string) ([]any, bool) {
	normalized := NormalizePlayers(players)
	if normalized == nil {
		return nil, false
	}

	rewritten := make([]any, 0, len(normalized))
	modified := false

	for _, player := range normalized {
		if IsPlayerDoc(player) && MatchesGuest(PlayerUID(player), guestID) {
			rewritten = append(rewritten, rewritePlayer(player, memberID, memberName))
			modified = true
		} else {
			rewritten = append(rewritten, player)
		}
	}

	return rewritten, modified
}

// rewritePlayer copies a player document with uid and displayName replaced.
// All other fields carry over untouched.
func rewritePlayer(player any, memberID, memberName string) any {
	switch p := player.(type) {
	case bson.D:
		out := make(bson.D, 0, len(p)+2)
		seenUID, seenName := false, false
		for _, e := range p {
			switch e.Key {
			case "uid":
				out = append(out, bson.E{Key: "uid", Value: memberID})
				seenUID = true
			case "displayName":
				out = append(out, bson.E{Key: "displayName", Value: memberName})
				seenName = true
			default:
				out = append(out, e)
			}
		}
		if !seenUID {
			out = append(out, bson.E{Key: "uid", Value: memberID})
		}
		if !seenName {
			out = append(out, bson.E{Key: "displayName", Value: memberName})
		}
		return out
	case bson.M:
		return rewritePlayerMap(map[string]any(p), memberID, memberName)
	case map[string]any:
		return rewritePlayerMap(p, memberID, memberName)
	default:
		return player
	}
}

func rewritePlayerMap(player map[string]any, memberID, memberName string) map[string]any {
	out := make(map[string]any, len(player))
	for k, v := range player {
		out[k] = v
	}
	out["uid"] = memberID
	out["displayName"] = memberName
	return out
}

// RemoveGuest returns the guest list with the given guest filtered out.
func RemoveGuest(guests []store.Guest, guestID string) []store.Guest {
	out := make([]store.Guest, 0, len(guests))
	for _, guest := range guests {
		if guest.ID == guestID {
			continue
		}
		out = append(out, guest)
	}
	return out
}
