// Package scoring holds the pure computation rules of the society:
// Stableford points, net scores, handicap revision on finalize, and
// league aggregation. Nothing here touches the database, the network
// or the clock; callers load state and persist results.
package scoring

import (
	"math"

	"github.com/garry1963/golf-society-manager-sub000/models"
)

const defaultHolePar = 4

type StablefordResult struct {
	TotalPoints int `json:"total_points"`
	TotalGross  int `json:"total_gross"`
}

// PlayingHandicap converts a handicap index to the whole-stroke
// allocation for a round. Simplified allocation: nearest whole number,
// no slope conversion.
func PlayingHandicap(handicapIndex float64) int {
	return int(math.Round(handicapIndex))
}

// StrokesReceived returns the extra strokes a player receives on a hole
// with the given stroke index. Playing handicaps of zero or below
// receive no strokes anywhere; plus players do not give strokes back on
// the hardest holes. That is a deliberate simplification of the full
// allocation rules, not an oversight.
func StrokesReceived(playingHandicap, strokeIndex int) int {
	if playingHandicap <= 0 {
		return 0
	}
	strokes := playingHandicap / models.HolesPerRound
	if strokeIndex <= playingHandicap%models.HolesPerRound {
		strokes++
	}
	return strokes
}

// DefaultHoles returns the fallback reference data used when a course
// has no hole records: par 4 everywhere, stroke index equal to the
// hole number.
func DefaultHoles() []models.Hole {
	holes := make([]models.Hole, models.HolesPerRound)
	for i := range holes {
		holes[i] = models.Hole{
			Number:      i + 1,
			Par:         defaultHolePar,
			StrokeIndex: i + 1,
		}
	}
	return holes
}

// normalizeHoles produces a complete 18-entry table indexed by hole
// number, substituting defaults for any hole the course data does not
// cover. It never fails: a course with no hole data at all still
// yields a usable table.
func normalizeHoles(holes []models.Hole) []models.Hole {
	table := DefaultHoles()
	for _, h := range holes {
		if h.Number < 1 || h.Number > models.HolesPerRound {
			continue
		}
		entry := &table[h.Number-1]
		if h.Par > 0 {
			entry.Par = h.Par
		}
		if h.StrokeIndex >= 1 && h.StrokeIndex <= models.HolesPerRound {
			entry.StrokeIndex = h.StrokeIndex
		}
	}
	return table
}

// ComputeStableford scores an 18-hole card. holeScores holds gross
// strokes per hole; 0 (or a missing trailing entry) means the hole was
// not played and contributes nothing. Per hole: net = gross - strokes
// received, points = max(0, 2 + par - net). The gross total sums every
// entered value.
func ComputeStableford(holeScores []int, handicapIndex float64, holes []models.Hole) StablefordResult {
	table := normalizeHoles(holes)
	playing := PlayingHandicap(handicapIndex)

	var result StablefordResult
	for i, hole := range table {
		if i >= len(holeScores) {
			break
		}
		gross := holeScores[i]
		if gross <= 0 {
			continue
		}
		result.TotalGross += gross

		net := gross - StrokesReceived(playing, hole.StrokeIndex)
		points := 2 + hole.Par - net
		if points < 0 {
			points = 0
		}
		result.TotalPoints += points
	}
	return result
}
