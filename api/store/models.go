/* models.go
 * This file contains the structs that map to documents in the groups, matches,
 * groupStats and rate-limit collections. Match player lists and timestamps are
 * kept loosely typed because legacy documents use more than one encoding; the
 * logic package normalizes them at ingestion.
 */

package store

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// Member is one entry in a group's members map, keyed by user id.
type Member struct {
	Name string `bson:"name,omitempty" json:"name,omitempty"`
	Role string `bson:"role,omitempty" json:"role,omitempty"`
}

// Guest is an unauthenticated placeholder participant embedded in a group.
// Match records reference it through the synthetic alias "guest_"+ID.
type Guest struct {
	ID   string `bson:"id,omitempty" json:"id,omitempty"`
	Name string `bson:"name,omitempty" json:"name,omitempty"`
}

// TeamColors holds the two configured team colors for a group as hex strings.
type TeamColors struct {
	TeamOne string `bson:"teamOne,omitempty" json:"teamOne,omitempty"`
	TeamTwo string `bson:"teamTwo,omitempty" json:"teamTwo,omitempty"`
}

type Group struct {
	ID         string            `bson:"_id,omitempty" json:"id,omitempty"`
	Name       string            `bson:"name,omitempty" json:"name,omitempty"`
	AdminUID   string            `bson:"adminUid,omitempty" json:"adminUid,omitempty"`
	InviteCode string            `bson:"inviteCode,omitempty" json:"inviteCode,omitempty"`
	Members    map[string]Member `bson:"members,omitempty" json:"members,omitempty"`
	Guests     []Guest           `bson:"guests,omitempty" json:"guests,omitempty"`
	TeamColors *TeamColors       `bson:"teamColors,omitempty" json:"teamColors,omitempty"`
}

// TeamSide is one of the two team sub-objects of a match. Players carries the
// raw encoded player list (array or keyed map) with arbitrary extra fields
// preserved verbatim.
type TeamSide struct {
	Score   int    `bson:"score" json:"score"`
	Color   string `bson:"color,omitempty" json:"color,omitempty"`
	Players any    `bson:"players,omitempty" json:"players,omitempty"`
}

type Match struct {
	ID        string   `bson:"_id,omitempty" json:"id,omitempty"`
	GroupID   string   `bson:"groupId,omitempty" json:"groupId,omitempty"`
	GameType  string   `bson:"gameType,omitempty" json:"gameType,omitempty"`
	Winner    string   `bson:"winner,omitempty" json:"winner,omitempty"`
	PlayedAt  any      `bson:"playedAt,omitempty" json:"playedAt,omitempty"`
	CreatedBy string   `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	Team1     TeamSide `bson:"team1,omitempty" json:"team1,omitempty"`
	Team2     TeamSide `bson:"team2,omitempty" json:"team2,omitempty"`
}

// PartnerStat tracks how a player fares alongside one 2v2 teammate.
type PartnerStat struct {
	DisplayName string  `bson:"displayName" json:"displayName"`
	Matches     int     `bson:"matches" json:"matches"`
	Wins        int     `bson:"wins" json:"wins"`
	WinRate     float64 `bson:"winRate" json:"winRate"`
}

type PlayerStat struct {
	DisplayName         string                  `bson:"displayName" json:"displayName"`
	IsGuest             bool                    `bson:"isGuest" json:"isGuest"`
	TotalMatches        int                     `bson:"totalMatches" json:"totalMatches"`
	Wins                int                     `bson:"wins" json:"wins"`
	Draws               int                     `bson:"draws" json:"draws"`
	Losses              int                     `bson:"losses" json:"losses"`
	WinRate             float64                 `bson:"winRate" json:"winRate"`
	Rating              int                     `bson:"rating" json:"rating"`
	CurrentStreak       int                     `bson:"currentStreak" json:"currentStreak"`
	LongestWinStreak    int                     `bson:"longestWinStreak" json:"longestWinStreak"`
	LongestLossStreak   int                     `bson:"longestLossStreak" json:"longestLossStreak"`
	TeamPartners        map[string]*PartnerStat `bson:"teamPartners" json:"teamPartners"`
	LastPlayed          any                     `bson:"lastPlayed" json:"lastPlayed"`
	GoalsScored         int                     `bson:"goalsScored" json:"goalsScored"`
	GoalsConceded       int                     `bson:"goalsConceded" json:"goalsConceded"`
	AverageGoalsScored  float64                 `bson:"averageGoalsScored" json:"averageGoalsScored"`
	AverageGoalsConceded float64                `bson:"averageGoalsConceded" json:"averageGoalsConceded"`
}

type ColorStat struct {
	TotalMatches  int     `bson:"totalMatches" json:"totalMatches"`
	Wins          int     `bson:"wins" json:"wins"`
	Draws         int     `bson:"draws" json:"draws"`
	Losses        int     `bson:"losses" json:"losses"`
	WinRate       float64 `bson:"winRate" json:"winRate"`
	GoalsScored   int     `bson:"goalsScored" json:"goalsScored"`
	GoalsConceded int     `bson:"goalsConceded" json:"goalsConceded"`
}

// HighestScore records the single highest team score seen across a group's
// history. Ties do not replace the first record found.
type HighestScore struct {
	Score   int    `bson:"score" json:"score"`
	MatchID string `bson:"matchId" json:"matchId"`
	Player  string `bson:"player" json:"player"`
	Date    any    `bson:"date" json:"date"`
}

// StreakRecord is the group-wide longest win streak with its holder.
type StreakRecord struct {
	Player     string `bson:"player" json:"player"`
	PlayerName string `bson:"playerName" json:"playerName"`
	Count      int    `bson:"count" json:"count"`
}

// RecentMatch is a compact summary kept in the stats snapshot, most recent first.
type RecentMatch struct {
	ID         string `bson:"id" json:"id"`
	PlayedAt   any    `bson:"playedAt" json:"playedAt"`
	Team1Score int    `bson:"team1Score" json:"team1Score"`
	Team2Score int    `bson:"team2Score" json:"team2Score"`
	GameType   string `bson:"gameType" json:"gameType"`
	Winner     string `bson:"winner" json:"winner"`
}

// GroupStats is the derived snapshot document, one per group, fully replaced
// on every recompute. It is always rebuildable from the group and its matches.
type GroupStats struct {
	GroupID           string                 `bson:"groupId" json:"groupId"`
	LastUpdated       time.Time              `bson:"lastUpdated" json:"lastUpdated"`
	PlayerStats       map[string]*PlayerStat `bson:"playerStats" json:"playerStats"`
	TeamColorStats    map[string]*ColorStat  `bson:"teamColorStats" json:"teamColorStats"`
	TotalMatches      int                    `bson:"totalMatches" json:"totalMatches"`
	MatchesByGameType map[string]int         `bson:"matchesByGameType" json:"matchesByGameType"`
	HighestScore      HighestScore           `bson:"highestScore" json:"highestScore"`
	LongestWinStreak  StreakRecord           `bson:"longestWinStreak" json:"longestWinStreak"`
	RecentMatches     []RecentMatch          `bson:"recentMatches" json:"recentMatches"`
}

// RateLimit is the per-user group-creation counter document, keyed by uid.
// GroupCount is monotonic except that group deletion decrements it, floored at 0.
type RateLimit struct {
	UID               string    `bson:"_id,omitempty" json:"uid,omitempty"`
	GroupCount        int       `bson:"groupCount" json:"groupCount"`
	LastGroupCreation time.Time `bson:"lastGroupCreation,omitempty" json:"lastGroupCreation,omitempty"`
}

// MatchRateLimit is the per-user last-match-creation document, keyed by uid.
type MatchRateLimit struct {
	UID               string    `bson:"_id,omitempty" json:"uid,omitempty"`
	LastMatchCreation time.Time `bson:"lastMatchCreation,omitempty" json:"lastMatchCreation,omitempty"`
}

// MatchUpdate is one staged match rewrite in a guest migration: the set of
// team player-list fields to overwrite on a single match document.
type MatchUpdate struct {
	MatchID string
	Fields  bson.M
}
