package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/garry1963/golf-society-manager-sub000/models"
	"github.com/garry1963/golf-society-manager-sub000/repositories"
	"github.com/garry1963/golf-society-manager-sub000/scoring"
	"github.com/garry1963/golf-society-manager-sub000/storage"
)

type CreateMemberInput struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     string  `json:"email"`
	Handicap  float64 `json:"handicap"`
}

type UpdateMemberInput struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
}

type SetHandicapInput struct {
	Handicap float64 `json:"handicap"`
	Reason   string  `json:"reason"`
}

type MemberService interface {
	Create(ctx context.Context, input CreateMemberInput) (*models.Member, error)
	GetByID(ctx context.Context, id int) (*models.Member, error)
	List(ctx context.Context) ([]models.Member, error)
	Update(ctx context.Context, id int, input UpdateMemberInput) (*models.Member, error)
	SetHandicap(ctx context.Context, id int, input SetHandicapInput) (*models.Member, error)
	History(ctx context.Context, id int) ([]models.HandicapHistory, error)
	Delete(ctx context.Context, id int) error
	UploadAvatar(ctx context.Context, id int, body io.Reader, contentType string) (*models.Member, error)
}

type memberService struct {
	memberRepo repositories.MemberRepository
	uploader   storage.FileUploader
}

func NewMemberService(memberRepo repositories.MemberRepository, uploader storage.FileUploader) MemberService {
	return &memberService{memberRepo: memberRepo, uploader: uploader}
}

func (s *memberService) Create(ctx context.Context, input CreateMemberInput) (*models.Member, error) {
	if input.FirstName == "" || input.LastName == "" {
		return nil, ErrMemberNameRequired
	}
	if input.Email == "" {
		return nil, ErrMemberEmailRequired
	}
	if err := validateHandicap(input.Handicap); err != nil {
		return nil, err
	}

	member := &models.Member{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Handicap:  scoring.RoundHandicap(input.Handicap),
	}
	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, mapMemberRepoError(err)
	}
	s.populateAvatarURL(member)
	return member, nil
}

func (s *memberService) GetByID(ctx context.Context, id int) (*models.Member, error) {
	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapMemberRepoError(err)
	}
	s.populateAvatarURL(member)
	return member, nil
}

func (s *memberService) List(ctx context.Context) ([]models.Member, error) {
	members, err := s.memberRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range members {
		s.populateAvatarURL(&members[i])
	}
	return members, nil
}

func (s *memberService) Update(ctx context.Context, id int, input UpdateMemberInput) (*models.Member, error) {
	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapMemberRepoError(err)
	}

	if input.FirstName != nil {
		member.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		member.LastName = *input.LastName
	}
	if input.Email != nil {
		member.Email = *input.Email
	}
	if member.FirstName == "" || member.LastName == "" {
		return nil, ErrMemberNameRequired
	}
	if member.Email == "" {
		return nil, ErrMemberEmailRequired
	}

	if err := s.memberRepo.Update(ctx, member); err != nil {
		return nil, mapMemberRepoError(err)
	}
	s.populateAvatarURL(member)
	return member, nil
}

// SetHandicap is the manual committee adjustment. Like the automatic
// revision it rounds to one decimal and appends an audit entry, with
// the supplied reason.
func (s *memberService) SetHandicap(ctx context.Context, id int, input SetHandicapInput) (*models.Member, error) {
	if err := validateHandicap(input.Handicap); err != nil {
		return nil, err
	}

	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapMemberRepoError(err)
	}

	newHandicap := scoring.RoundHandicap(input.Handicap)
	reason := input.Reason
	if reason == "" {
		reason = "manual adjustment"
	}

	if err := s.memberRepo.UpdateHandicap(ctx, nil, id, newHandicap); err != nil {
		return nil, mapMemberRepoError(err)
	}
	entry := &models.HandicapHistory{
		MemberID:    id,
		RecordedAt:  time.Now().UTC(),
		OldHandicap: member.Handicap,
		NewHandicap: newHandicap,
		Reason:      reason,
	}
	if err := s.memberRepo.AppendHistory(ctx, nil, entry); err != nil {
		return nil, fmt.Errorf("failed to record handicap history: %w", err)
	}

	member.Handicap = newHandicap
	s.populateAvatarURL(member)
	return member, nil
}

func (s *memberService) History(ctx context.Context, id int) ([]models.HandicapHistory, error) {
	if _, err := s.memberRepo.GetByID(ctx, id); err != nil {
		return nil, mapMemberRepoError(err)
	}
	return s.memberRepo.ListHistory(ctx, id)
}

func (s *memberService) Delete(ctx context.Context, id int) error {
	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		return mapMemberRepoError(err)
	}
	if err := s.memberRepo.Delete(ctx, id); err != nil {
		return mapMemberRepoError(err)
	}
	// Object cleanup is best effort.
	if s.uploader != nil && member.AvatarKey != nil && *member.AvatarKey != "" {
		_ = s.uploader.Delete(ctx, *member.AvatarKey)
	}
	return nil
}

func (s *memberService) UploadAvatar(ctx context.Context, id int, body io.Reader, contentType string) (*models.Member, error) {
	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapMemberRepoError(err)
	}
	if s.uploader == nil {
		return nil, storage.ErrUploaderDisabled
	}

	key := fmt.Sprintf("members/%d/avatar", id)
	if err := s.uploader.Upload(ctx, key, body, contentType); err != nil {
		return nil, fmt.Errorf("failed to upload avatar: %w", err)
	}
	if err := s.memberRepo.UpdateAvatarKey(ctx, id, &key); err != nil {
		return nil, mapMemberRepoError(err)
	}

	member.AvatarKey = &key
	s.populateAvatarURL(member)
	return member, nil
}

func (s *memberService) populateAvatarURL(m *models.Member) {
	if s.uploader == nil || m.AvatarKey == nil || *m.AvatarKey == "" {
		return
	}
	url := s.uploader.PublicURL(*m.AvatarKey)
	m.AvatarURL = &url
}
