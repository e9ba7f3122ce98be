package services

import (
	"errors"
	"time"

	"github.com/garry1963/golf-society-manager-sub000/models"
	"github.com/garry1963/golf-society-manager-sub000/repositories"
)

const (
	minHandicap = -10.0
	maxHandicap = 54.0
)

func validateHandicap(h float64) error {
	if h < minHandicap || h > maxHandicap {
		return ErrHandicapOutOfRange
	}
	return nil
}

func validateSeasonDates(start, end time.Time) error {
	if start.IsZero() || end.IsZero() || !start.Before(end) {
		return ErrSeasonInvalidDateRange
	}
	return nil
}

func validateHoles(holes []models.Hole) error {
	seen := make(map[int]bool, len(holes))
	for _, h := range holes {
		if h.Number < 1 || h.Number > models.HolesPerRound || seen[h.Number] {
			return ErrCourseInvalidHoles
		}
		seen[h.Number] = true
	}
	return nil
}

// mapMemberRepoError translates repository sentinels into the service
// vocabulary so handlers only ever match on services errors.
func mapMemberRepoError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrMemberNotFound):
		return ErrMemberNotFound
	case errors.Is(err, repositories.ErrMemberEmailConflict):
		return ErrMemberEmailConflict
	}
	return err
}

func mapCourseRepoError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrCourseNotFound):
		return ErrCourseNotFound
	case errors.Is(err, repositories.ErrCourseNameConflict):
		return ErrCourseNameConflict
	}
	return err
}

func mapSeasonRepoError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrSeasonNotFound):
		return ErrSeasonNotFound
	case errors.Is(err, repositories.ErrSeasonNameConflict):
		return ErrSeasonNameConflict
	}
	return err
}

func mapTournamentRepoError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrTournamentNotFound):
		return ErrTournamentNotFound
	case errors.Is(err, repositories.ErrTournamentNameConflict):
		return ErrTournamentNameConflict
	case errors.Is(err, repositories.ErrTournamentInvalidCourse):
		return ErrCourseNotFound
	case errors.Is(err, repositories.ErrTournamentInvalidSeason):
		return ErrSeasonNotFound
	case errors.Is(err, repositories.ErrTournamentAlreadyCompleted):
		return ErrTournamentAlreadyFinalized
	}
	return err
}

func memberIndex(members []models.Member) map[int]*models.Member {
	byID := make(map[int]*models.Member, len(members))
	for i := range members {
		byID[members[i].ID] = &members[i]
	}
	return byID
}
