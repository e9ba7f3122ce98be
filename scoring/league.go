package scoring

import (
	"sort"

	"github.com/garry1963/golf-society-manager-sub000/models"
)

// positionPoints is the fixed allocation for finishing positions 1-10;
// position 11 and beyond earns nothing.
var positionPoints = [...]int{25, 18, 15, 12, 10, 8, 6, 4, 2, 1}

// missingNet makes a stroke-play score without a gross total sort
// behind every real result.
const missingNet = 1e9

func pointsForPosition(pos int) int {
	if pos < 0 || pos >= len(positionPoints) {
		return 0
	}
	return positionPoints[pos]
}

// finishOrder sorts scores into finishing order for a tournament:
// Stableford descending by points, stroke play ascending by net (gross
// minus the member's current handicap). The sort is stable, so tied
// entries keep their input order, which callers supply in score-id
// order to make placements deterministic.
func finishOrder(format models.ScoringFormat, scores []models.Score, members map[int]*models.Member) []models.Score {
	ordered := make([]models.Score, len(scores))
	copy(ordered, scores)

	if format == models.FormatStrokePlay {
		net := func(s models.Score) float64 {
			if s.Gross == nil {
				return missingNet
			}
			handicap := 0.0
			if m, ok := members[s.MemberID]; ok {
				handicap = m.Handicap
			}
			return NetScore(*s.Gross, handicap)
		}
		sort.SliceStable(ordered, func(i, j int) bool {
			return net(ordered[i]) < net(ordered[j])
		})
		return ordered
	}

	points := func(s models.Score) int {
		if s.Points == nil {
			return 0
		}
		return *s.Points
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return points(ordered[i]) > points(ordered[j])
	})
	return ordered
}

// knownOnly drops scores whose member id does not resolve. Dangling
// references are skipped silently rather than failing the whole table.
func knownOnly(scores []models.Score, members map[int]*models.Member) []models.Score {
	kept := make([]models.Score, 0, len(scores))
	for _, s := range scores {
		if _, ok := members[s.MemberID]; ok {
			kept = append(kept, s)
		}
	}
	return kept
}

// TournamentResults returns the finishing order of a single tournament
// with league points attached.
func TournamentResults(t *models.Tournament, scores []models.Score, members map[int]*models.Member) []models.TournamentResult {
	ordered := finishOrder(t.Format, knownOnly(scores, members), members)

	results := make([]models.TournamentResult, 0, len(ordered))
	for i, s := range ordered {
		member := members[s.MemberID]
		result := models.TournamentResult{
			Position:     i + 1,
			MemberID:     s.MemberID,
			MemberName:   member.FirstName + " " + member.LastName,
			Gross:        s.Gross,
			Points:       s.Points,
			LeaguePoints: pointsForPosition(i),
		}
		if t.Format == models.FormatStrokePlay && s.Gross != nil {
			net := NetScore(*s.Gross, member.Handicap)
			result.Net = &net
		}
		results = append(results, result)
	}
	return results
}

// ComputeStandings builds the league table from finalized tournaments
// and their scores. It is a pure function of its inputs: re-running it
// on the same data yields the identical table, and scoping the table
// (to a season, say) is just filtering the tournament slice first.
// Tournaments that are not finalized are ignored.
//
// Ties on total points are broken by wins, then by fewer events
// played, then by member id, so the ordering is fully deterministic.
func ComputeStandings(members []models.Member, tournaments []models.Tournament, scoresByTournament map[int][]models.Score) []models.StandingsEntry {
	byID := make(map[int]*models.Member, len(members))
	entries := make(map[int]*models.StandingsEntry, len(members))
	for i := range members {
		m := &members[i]
		byID[m.ID] = m
		entries[m.ID] = &models.StandingsEntry{
			MemberID:   m.ID,
			MemberName: m.FirstName + " " + m.LastName,
			Handicap:   m.Handicap,
		}
	}

	for i := range tournaments {
		t := &tournaments[i]
		if !t.Completed {
			continue
		}
		ordered := finishOrder(t.Format, knownOnly(scoresByTournament[t.ID], byID), byID)
		for pos, s := range ordered {
			entry := entries[s.MemberID]
			entry.Points += pointsForPosition(pos)
			entry.EventsPlayed++
			if pos == 0 {
				entry.Wins++
			}
		}
	}

	table := make([]models.StandingsEntry, 0, len(entries))
	for _, e := range entries {
		table = append(table, *e)
	}
	sort.Slice(table, func(i, j int) bool {
		a, b := table[i], table[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		if a.EventsPlayed != b.EventsPlayed {
			return a.EventsPlayed < b.EventsPlayed
		}
		return a.MemberID < b.MemberID
	})
	for i := range table {
		table[i].Rank = i + 1
	}
	return table
}
