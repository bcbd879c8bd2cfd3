/* stats.go
 * Contains the group statistics engine. The engine is a pure function from a
 * group and its full match history to a complete stats snapshot: it never
 * reads or patches previous stats, so recomputation is idempotent and the
 * snapshot can be overwritten wholesale by any trigger.
 */

package logic

import (
	"math"
	"sort"

	"matchroom/api/store"
)

const (
	defaultTeamOneColor = "#000000"
	defaultTeamTwoColor = "#ffffff"
	recentMatchesLimit  = 5
	baseRating          = 1000
)

// ComputeGroupStats builds the full stats snapshot for a group from its
// complete match history. The caller persists the result with overwrite
// semantics; LastUpdated is stamped at write time.
func ComputeGroupStats(group store.Group, matches []store.Match) store.GroupStats {
	stats := store.GroupStats{
		GroupID:           group.ID,
		PlayerStats:       make(map[string]*store.PlayerStat),
		TeamColorStats:    make(map[string]*store.ColorStat),
		MatchesByGameType: map[string]int{"1v1": 0, "2v2": 0},
		RecentMatches:     []store.RecentMatch{},
	}

	seedPlayerStats(&stats, group)
	seedTeamColorStats(&stats, group)

	for _, match := range matches {
		if match.PlayedAt != nil {
			stats.RecentMatches = append(stats.RecentMatches, store.RecentMatch{
				ID:         match.ID,
				PlayedAt:   match.PlayedAt,
				Team1Score: match.Team1.Score,
				Team2Score: match.Team2.Score,
				GameType:   gameTypeOf(match),
				Winner:     winnerOf(match),
			})
		}
		processMatch(&stats, match)
	}

	sort.SliceStable(stats.RecentMatches, func(i, j int) bool {
		return TimestampSeconds(stats.RecentMatches[i].PlayedAt) > TimestampSeconds(stats.RecentMatches[j].PlayedAt)
	})
	if len(stats.RecentMatches) > recentMatchesLimit {
		stats.RecentMatches = stats.RecentMatches[:recentMatchesLimit]
	}

	deriveStats(&stats)
	return stats
}

// seedPlayerStats creates a zeroed entry per registered member and one per
// guest under its synthetic alias, so players without matches still appear.
func seedPlayerStats(stats *store.GroupStats, group store.Group) {
	for memberID, member := range group.Members {
		name := member.Name
		if name == "" {
			name = "Unknown"
		}
		stats.PlayerStats[memberID] = newPlayerStat(name, false)
	}
	for _, guest := range group.Guests {
		if guest.ID == "" {
			continue
		}
		name := guest.Name
		if name == "" {
			name = "Unknown Guest"
		}
		stats.PlayerStats[GuestAlias(guest.ID)] = newPlayerStat(name, true)
	}
}

func seedTeamColorStats(stats *store.GroupStats, group store.Group) {
	if group.TeamColors == nil {
		return
	}
	stats.TeamColorStats[colorOrDefault(group.TeamColors.TeamOne, defaultTeamOneColor)] = &store.ColorStat{}
	stats.TeamColorStats[colorOrDefault(group.TeamColors.TeamTwo, defaultTeamTwoColor)] = &store.ColorStat{}
}

func newPlayerStat(displayName string, isGuest bool) *store.PlayerStat {
	return &store.PlayerStat{
		DisplayName:  displayName,
		IsGuest:      isGuest,
		Rating:       baseRating,
		TeamPartners: make(map[string]*store.PartnerStat),
	}
}

func processMatch(stats *store.GroupStats, match store.Match) {
	stats.TotalMatches++
	stats.MatchesByGameType[gameTypeOf(match)]++

	winner := winnerOf(match)
	team1Color := colorOrDefault(match.Team1.Color, defaultTeamOneColor)
	team2Color := colorOrDefault(match.Team2.Color, defaultTeamTwoColor)

	team1Players := NormalizePlayers(match.Team1.Players)
	team2Players := NormalizePlayers(match.Team2.Players)

	checkHighestScore(stats, match, match.Team1.Score, team1Players)
	checkHighestScore(stats, match, match.Team2.Score, team2Players)

	updateTeamColorStats(stats, team1Color, team2Color, match.Team1.Score, match.Team2.Score, winner)

	updateTeamPlayerStats(stats, match, team1Players, match.Team1.Score, match.Team2.Score, winner == "team1", winner == "team2", winner)
	updateTeamPlayerStats(stats, match, team2Players, match.Team2.Score, match.Team1.Score, winner == "team2", winner == "team1", winner)
}

// checkHighestScore updates the group-wide best score record. Strictly greater
// wins: the first maximum found stays, later equal scores are ignored. Teams
// with no players are skipped.
func checkHighestScore(stats *store.GroupStats, match store.Match, score int, players []any) {
	if score <= stats.HighestScore.Score || len(players) == 0 {
		return
	}
	stats.HighestScore = store.HighestScore{
		Score:   score,
		MatchID: match.ID,
		Player:  PlayerDisplayName(players[0]),
		Date:    match.PlayedAt,
	}
}

func updateTeamColorStats(stats *store.GroupStats, team1Color, team2Color string, team1Score, team2Score int, winner string) {
	if _, ok := stats.TeamColorStats[team1Color]; !ok {
		stats.TeamColorStats[team1Color] = &store.ColorStat{}
	}
	if _, ok := stats.TeamColorStats[team2Color]; !ok {
		stats.TeamColorStats[team2Color] = &store.ColorStat{}
	}

	c1 := stats.TeamColorStats[team1Color]
	c2 := stats.TeamColorStats[team2Color]

	c1.TotalMatches++
	c1.GoalsScored += team1Score
	c1.GoalsConceded += team2Score

	c2.TotalMatches++
	c2.GoalsScored += team2Score
	c2.GoalsConceded += team1Score

	switch winner {
	case "team1":
		c1.Wins++
		c2.Losses++
	case "team2":
		c1.Losses++
		c2.Wins++
	default:
		c1.Draws++
		c2.Draws++
	}
}

// updateTeamPlayerStats applies one match's outcome to every player on one
// team. Ids not present in the snapshot (unlinked or deleted participants) are
// silently skipped.
func updateTeamPlayerStats(stats *store.GroupStats, match store.Match, players []any, goalsFor, goalsAgainst int, won, lost bool, winner string) {
	for _, player := range players {
		playerID := PlayerUID(player)
		ps, ok := stats.PlayerStats[playerID]
		if playerID == "" || !ok {
			continue
		}

		ps.TotalMatches++
		ps.GoalsScored += goalsFor
		ps.GoalsConceded += goalsAgainst
		ps.LastPlayed = match.PlayedAt

		switch {
		case won:
			ps.Wins++
			updatePlayerStreak(stats, ps, playerID, "win")
		case lost:
			ps.Losses++
			updatePlayerStreak(stats, ps, playerID, "loss")
		default:
			ps.Draws++
			updatePlayerStreak(stats, ps, playerID, "draw")
		}

		if gameTypeOf(match) == "2v2" && len(players) > 1 {
			updateTeamPartnerships(ps, playerID, players, won)
		}
	}
}

// updatePlayerStreak advances the player's signed streak counter. Positive
// values count consecutive wins, negative values consecutive losses; a draw
// resets to neutral. The group-wide record only tracks win streaks.
func updatePlayerStreak(stats *store.GroupStats, ps *store.PlayerStat, playerID string, outcome string) {
	switch outcome {
	case "draw":
		ps.CurrentStreak = 0
	case "win":
		if ps.CurrentStreak < 0 {
			ps.CurrentStreak = 1
		} else {
			ps.CurrentStreak++
		}
		if ps.CurrentStreak > ps.LongestWinStreak {
			ps.LongestWinStreak = ps.CurrentStreak
		}
		if ps.CurrentStreak > stats.LongestWinStreak.Count {
			stats.LongestWinStreak = store.StreakRecord{
				Player:     playerID,
				PlayerName: ps.DisplayName,
				Count:      ps.CurrentStreak,
			}
		}
	case "loss":
		if ps.CurrentStreak > 0 {
			ps.CurrentStreak = -1
		} else {
			ps.CurrentStreak--
		}
		if -ps.CurrentStreak > ps.LongestLossStreak {
			ps.LongestLossStreak = -ps.CurrentStreak
		}
	}
}

// updateTeamPartnerships updates the pairwise 2v2 records for one player
// against every object-typed teammate on the same side. A partner's display
// name is captured on first sight and not corrected afterwards.
func updateTeamPartnerships(ps *store.PlayerStat, playerID string, teamPlayers []any, won bool) {
	for _, teammate := range teamPlayers {
		teammateID := PlayerUID(teammate)
		if teammateID == "" || teammateID == playerID {
			continue
		}
		partner, ok := ps.TeamPartners[teammateID]
		if !ok {
			name := PlayerDisplayName(teammate)
			if name == "" {
				name = "Unknown"
			}
			partner = &store.PartnerStat{DisplayName: name}
			ps.TeamPartners[teammateID] = partner
		}
		partner.Matches++
		if won {
			partner.Wins++
		}
	}
}

// deriveStats fills the derived fields for every player, partner and color
// with at least one match. Zero-match entries keep their seeded defaults.
func deriveStats(stats *store.GroupStats) {
	for _, ps := range stats.PlayerStats {
		if ps.TotalMatches == 0 {
			continue
		}
		ps.WinRate = round3(float64(ps.Wins) / float64(ps.TotalMatches))
		ps.AverageGoalsScored = round2(float64(ps.GoalsScored) / float64(ps.TotalMatches))
		ps.AverageGoalsConceded = round2(float64(ps.GoalsConceded) / float64(ps.TotalMatches))
		ps.Rating = int(math.Round(baseRating + ps.WinRate*500 + (ps.AverageGoalsScored-ps.AverageGoalsConceded)*10))

		for _, partner := range ps.TeamPartners {
			if partner.Matches > 0 {
				partner.WinRate = round3(float64(partner.Wins) / float64(partner.Matches))
			}
		}
	}

	for _, cs := range stats.TeamColorStats {
		if cs.TotalMatches > 0 {
			cs.WinRate = round3(float64(cs.Wins) / float64(cs.TotalMatches))
		}
	}
}

func gameTypeOf(match store.Match) string {
	if match.GameType == "" {
		return "1v1"
	}
	return match.GameType
}

func winnerOf(match store.Match) string {
	if match.Winner == "" {
		return "draw"
	}
	return match.Winner
}

func colorOrDefault(color, fallback string) string {
	if color == "" {
		return fallback
	}
	return color
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
