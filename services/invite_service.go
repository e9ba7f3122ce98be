package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/garry1963/golf-society-manager-sub000/models"
	"github.com/garry1963/golf-society-manager-sub000/repositories"
	"github.com/garry1963/golf-society-manager-sub000/scoring"
)

const inviteLifetime = 7 * 24 * time.Hour

// InviteMailer delivers the invite link. Nil disables delivery; the
// secretary can still read the token off the create response.
type InviteMailer interface {
	SendInvite(ctx context.Context, invite *models.Invite) error
}

type AcceptInviteInput struct {
	Token     string  `json:"token"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Handicap  float64 `json:"handicap"`
}

type InviteService interface {
	Create(ctx context.Context, email string) (*models.Invite, error)
	Accept(ctx context.Context, input AcceptInviteInput) (*models.Member, error)
}

type inviteService struct {
	inviteRepo repositories.InviteRepository
	memberRepo repositories.MemberRepository
	mailer     InviteMailer
	logger     *slog.Logger
}

func NewInviteService(inviteRepo repositories.InviteRepository, memberRepo repositories.MemberRepository, mailer InviteMailer, logger *slog.Logger) InviteService {
	return &inviteService{inviteRepo: inviteRepo, memberRepo: memberRepo, mailer: mailer, logger: logger}
}

func (s *inviteService) Create(ctx context.Context, email string) (*models.Invite, error) {
	if email == "" {
		return nil, ErrMemberEmailRequired
	}

	token, err := generateToken(32)
	if err != nil {
		return nil, err
	}
	invite := &models.Invite{
		Email:     email,
		Token:     token,
		ExpiresAt: time.Now().UTC().Add(inviteLifetime),
	}
	if err := s.inviteRepo.Create(ctx, invite); err != nil {
		return nil, fmt.Errorf("failed to create invite: %w", err)
	}

	if s.mailer != nil {
		if err := s.mailer.SendInvite(ctx, invite); err != nil && s.logger != nil {
			s.logger.Error("failed to email invite",
				slog.String("email", invite.Email),
				slog.String("error", err.Error()),
			)
		}
	}
	return invite, nil
}

// Accept redeems a token: the prospective member fills in their name
// and starting handicap and becomes a playing member. The invite is
// single-use and burned on success.
func (s *inviteService) Accept(ctx context.Context, input AcceptInviteInput) (*models.Member, error) {
	invite, err := s.inviteRepo.GetByToken(ctx, input.Token)
	if err != nil {
		if errors.Is(err, repositories.ErrInviteNotFound) {
			return nil, ErrInviteNotFound
		}
		return nil, err
	}
	if time.Now().After(invite.ExpiresAt) {
		return nil, ErrInviteExpired
	}

	if input.FirstName == "" || input.LastName == "" {
		return nil, ErrMemberNameRequired
	}
	if err := validateHandicap(input.Handicap); err != nil {
		return nil, err
	}

	member := &models.Member{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     invite.Email,
		Handicap:  scoring.RoundHandicap(input.Handicap),
	}
	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, mapMemberRepoError(err)
	}

	if err := s.inviteRepo.Delete(ctx, invite.ID); err != nil && s.logger != nil {
		s.logger.Error("failed to delete redeemed invite",
			slog.Int("invite_id", invite.ID),
			slog.String("error", err.Error()),
		)
	}
	return member, nil
}

func generateToken(bytes int) (string, error) {
	buf := make([]byte, bytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
