/* normalize.go
 * Contains the player-list normalizer and helpers for reading loosely-typed
 * match documents. Match player lists arrive in one of two encodings: an
 * ordered array, or a map of arbitrary string keys to player objects. All
 * consumers work on the normalized ordered form produced here.
 */

package logic

import (
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NormalizePlayers converts either player-list encoding into an ordered slice.
// Arrays pass through unchanged, preserving order. Maps are emitted in
// lexicographic key order with non-object values filtered out, so iteration is
// deterministic across recomputations. Any other type yields an empty slice.
func NormalizePlayers(players any) []any {
	switch p := players.(type) {
	case []any:
		return p
	case bson.A:
		return []any(p)
	case bson.D:
		sorted := make(bson.D, len(p))
		copy(sorted, p)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Key < sorted[j].Key })
		var out []any
		for _, e := range sorted {
			if IsPlayerDoc(e.Value) {
				out = append(out, e.Value)
			}
		}
		return out
	case bson.M:
		return normalizePlayerMap(map[string]any(p))
	case map[string]any:
		return normalizePlayerMap(p)
	default:
		return nil
	}
}

func normalizePlayerMap(players map[string]any) []any {
	keys := make([]string, 0, len(players))
	for k := range players {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out []any
	for _, k := range keys {
		if IsPlayerDoc(players[k]) {
			out = append(out, players[k])
		}
	}
	return out
}

// IsPlayerDoc reports whether v is an object-typed value in any of the
// document shapes the bson and json decoders produce.
func IsPlayerDoc(v any) bool {
	switch v.(type) {
	case bson.D, bson.M, map[string]any:
		return true
	default:
		return false
	}
}

// PlayerField reads a string field off a player document, returning "" when
// the field is missing, non-string or the value is not an object.
func PlayerField(player any, key string) string {
	switch p := player.(type) {
	case bson.D:
		for _, e := range p {
			if e.Key == key {
				if s, ok := e.Value.(string); ok {
					return s
				}
				return ""
			}
		}
	case bson.M:
		if s, ok := p[key].(string); ok {
			return s
		}
	case map[string]any:
		if s, ok := p[key].(string); ok {
			return s
		}
	}
	return ""
}

// PlayerUID returns the player's uid field.
func PlayerUID(player any) string {
	return PlayerField(player, "uid")
}

// PlayerDisplayName returns the player's displayName field.
func PlayerDisplayName(player any) string {
	return PlayerField(player, "displayName")
}

// TimestampSeconds coerces a playedAt value into epoch seconds for ordering.
// Supported shapes: driver timestamps, time.Time, raw numerics (seconds), and
// objects carrying a "seconds" field. Anything else maps to 0, which is only
// ever used as a sort key, never persisted.
func TimestampSeconds(v any) int64 {
	switch t := v.(type) {
	case primitive.DateTime:
		return t.Time().Unix()
	case primitive.Timestamp:
		return int64(t.T)
	case time.Time:
		return t.Unix()
	case int64:
		return t
	case int32:
		return int64(t)
	case int:
		return int64(t)
	case float64:
		return int64(t)
	case bson.D:
		for _, e := range t {
			if e.Key == "seconds" {
				return TimestampSeconds(e.Value)
			}
		}
	case bson.M:
		if s, ok := t["seconds"]; ok {
			return TimestampSeconds(s)
		}
	case map[string]any:
		if s, ok := t["seconds"]; ok {
			return TimestampSeconds(s)
		}
	}
	return 0
}
