package services

import "errors"

// Sentinel errors shared across services and the HTTP error mapping.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business rules
	ErrValidationFailed        = errors.New("validation failed")
	ErrMemberNameRequired      = errors.New("member first and last name are required")
	ErrMemberEmailRequired     = errors.New("member email is required")
	ErrCourseNameRequired      = errors.New("course name is required")
	ErrCourseInvalidPar        = errors.New("course par must be positive")
	ErrCourseInvalidHoles      = errors.New("course holes must be numbered 1 through 18")
	ErrSeasonNameRequired      = errors.New("season name is required")
	ErrSeasonInvalidDateRange  = errors.New("season end date must be after start date")
	ErrTournamentNameRequired  = errors.New("tournament name is required")
	ErrTournamentInvalidFormat = errors.New("tournament scoring format must be stableford or stroke_play")
	ErrTournamentInvalidDates  = errors.New("tournament end date must not precede start date")
	ErrTournamentInvalidRounds = errors.New("tournament round count must be positive")
	ErrScoreInvalidHoleCount   = errors.New("hole scores must contain at most 18 entries")
	ErrScoreNegative           = errors.New("scores must not be negative")
	ErrScoreEmpty              = errors.New("a score needs a gross total, a points total, or hole scores")
	ErrScoreNotInRoster        = errors.New("member is not on the tournament roster")
	ErrHandicapOutOfRange      = errors.New("handicap must be between -10.0 and 54.0")
	ErrPasswordTooShort        = errors.New("password must be at least 8 characters")

	// State errors
	ErrTournamentAlreadyFinalized = errors.New("tournament is already finalized")
	ErrTournamentFinalized        = errors.New("tournament is finalized; scores are frozen")

	// Conflicts
	ErrMemberEmailConflict    = errors.New("member email is already in use")
	ErrCourseNameConflict     = errors.New("course name is already in use")
	ErrSeasonNameConflict     = errors.New("season name is already in use")
	ErrTournamentNameConflict = errors.New("tournament name is already in use")

	// Authentication
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrAuthEmailTaken         = errors.New("email is already taken")
	ErrForbiddenOperation     = errors.New("operation not allowed for the current user")

	// Invites
	ErrInviteExpired = errors.New("invite has expired")

	// Entity-specific not-found errors for clearer context
	ErrMemberNotFound     = errors.New("member not found")
	ErrCourseNotFound     = errors.New("course not found")
	ErrSeasonNotFound     = errors.New("season not found")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrScoreNotFound      = errors.New("score not found")
	ErrInviteNotFound     = errors.New("invite not found")
	ErrUserNotFound       = errors.New("user not found")
)
