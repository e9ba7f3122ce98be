package services

import (
	"context"
	"testing"
	"time"

	"github.com/garry1963/golf-society-manager-sub000/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInviteCreateGeneratesToken(t *testing.T) {
	var created *models.Invite
	inviteRepo := &fakeInviteRepo{
		CreateFunc: func(ctx context.Context, inv *models.Invite) error {
			inv.ID = 1
			created = inv
			return nil
		},
	}
	svc := NewInviteService(inviteRepo, nil, nil, nil)

	invite, err := svc.Create(context.Background(), "new@example.com")
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Len(t, invite.Token, 64)
	assert.Equal(t, "new@example.com", invite.Email)
	assert.True(t, invite.ExpiresAt.After(time.Now()))
}

func TestInviteAcceptCreatesMemberAndBurnsInvite(t *testing.T) {
	invite := &models.Invite{
		ID:        9,
		Email:     "new@example.com",
		Token:     "tok",
		ExpiresAt: time.Now().Add(time.Hour),
	}

	deleted := false
	inviteRepo := &fakeInviteRepo{
		GetByTokenFunc: func(ctx context.Context, token string) (*models.Invite, error) { return invite, nil },
		DeleteFunc: func(ctx context.Context, id int) error {
			deleted = true
			return nil
		},
	}
	memberRepo := &fakeMemberRepo{
		CreateFunc: func(ctx context.Context, m *models.Member) error {
			m.ID = 42
			return nil
		},
	}
	svc := NewInviteService(inviteRepo, memberRepo, nil, nil)

	member, err := svc.Accept(context.Background(), AcceptInviteInput{
		Token:     "tok",
		FirstName: "New",
		LastName:  "Member",
		Handicap:  24.35,
	})
	require.NoError(t, err)

	assert.Equal(t, 42, member.ID)
	assert.Equal(t, "new@example.com", member.Email)
	assert.Equal(t, 24.4, member.Handicap)
	assert.True(t, deleted)
}

func TestInviteAcceptExpired(t *testing.T) {
	inviteRepo := &fakeInviteRepo{
		GetByTokenFunc: func(ctx context.Context, token string) (*models.Invite, error) {
			return &models.Invite{ID: 9, ExpiresAt: time.Now().Add(-time.Minute)}, nil
		},
	}
	svc := NewInviteService(inviteRepo, nil, nil, nil)

	_, err := svc.Accept(context.Background(), AcceptInviteInput{Token: "tok", FirstName: "A", LastName: "B"})
	assert.ErrorIs(t, err, ErrInviteExpired)
}
