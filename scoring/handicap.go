package scoring

import (
	"math"
	"time"

	"github.com/garry1963/golf-society-manager-sub000/models"
)

// Simplified society-play revision bands. Stableford: 32-36 points is
// the buffer zone (inclusive both ends), above 36 cuts, below 32 adds
// 0.1. Stroke play: net below par cuts, net more than four over par
// adds 0.1.
const (
	stablefordBufferLow  = 32
	stablefordBufferHigh = 36
	strokePlayBuffer     = 4
	cutPerPoint          = 0.3
	increaseStep         = 0.1

	fallbackCoursePar = 72
)

// HandicapRevision is the outcome of revising one member after a
// finalized tournament. OldHandicap == NewHandicap is a valid revision
// and still produces an audit entry.
type HandicapRevision struct {
	MemberID    int
	OldHandicap float64
	NewHandicap float64
	Date        time.Time
	Reason      string
}

// RoundHandicap rounds to exactly one decimal place, half away from
// zero on the x10 integer.
func RoundHandicap(x float64) float64 {
	return math.Round(x*10) / 10
}

// ReviseHandicaps computes the post-tournament handicap for every
// member with a recorded score. Scores referencing unknown members are
// skipped, as are roster members with no score. The caller applies the
// returned revisions and appends history entries as one atomic
// finalize step; this function mutates nothing.
func ReviseHandicaps(t *models.Tournament, coursePar int, scores []models.Score, members map[int]*models.Member) []HandicapRevision {
	if coursePar <= 0 {
		coursePar = fallbackCoursePar
	}

	revisions := make([]HandicapRevision, 0, len(scores))
	for _, score := range scores {
		member, ok := members[score.MemberID]
		if !ok {
			continue
		}

		old := member.Handicap
		var revised float64
		switch t.Format {
		case models.FormatStrokePlay:
			if score.Gross == nil {
				// No round total recorded, nothing to revise against.
				continue
			}
			revised = reviseStrokePlay(old, *score.Gross, coursePar)
		default:
			points := 0
			if score.Points != nil {
				points = *score.Points
			}
			revised = reviseStableford(old, points)
		}

		revisions = append(revisions, HandicapRevision{
			MemberID:    score.MemberID,
			OldHandicap: old,
			NewHandicap: RoundHandicap(revised),
			Date:        t.StartsOn,
			Reason:      t.Name,
		})
	}
	return revisions
}

func reviseStableford(old float64, points int) float64 {
	switch {
	case points > stablefordBufferHigh:
		return old - float64(points-stablefordBufferHigh)*cutPerPoint
	case points < stablefordBufferLow:
		return old + increaseStep
	default:
		return old
	}
}

func reviseStrokePlay(old float64, gross, par int) float64 {
	net := NetScore(gross, old)
	switch {
	case net < float64(par):
		return old - (float64(par)-net)*cutPerPoint
	case net > float64(par+strokePlayBuffer):
		return old + increaseStep
	default:
		return old
	}
}
