package services

import (
	"context"
	"fmt"
	"io"

	"github.com/garry1963/golf-society-manager-sub000/models"
	"github.com/garry1963/golf-society-manager-sub000/repositories"
	"github.com/garry1963/golf-society-manager-sub000/storage"
)

type CreateCourseInput struct {
	Name  string        `json:"name"`
	Par   int           `json:"par"`
	Holes []models.Hole `json:"holes"`
}

type UpdateCourseInput struct {
	Name  *string       `json:"name"`
	Par   *int          `json:"par"`
	Holes []models.Hole `json:"holes"`
}

type CourseService interface {
	Create(ctx context.Context, input CreateCourseInput) (*models.Course, error)
	GetByID(ctx context.Context, id int) (*models.Course, error)
	List(ctx context.Context) ([]models.Course, error)
	Update(ctx context.Context, id int, input UpdateCourseInput) (*models.Course, error)
	Delete(ctx context.Context, id int) error
	UploadPhoto(ctx context.Context, id int, body io.Reader, contentType string) (*models.Course, error)
}

type courseService struct {
	courseRepo repositories.CourseRepository
	uploader   storage.FileUploader
}

func NewCourseService(courseRepo repositories.CourseRepository, uploader storage.FileUploader) CourseService {
	return &courseService{courseRepo: courseRepo, uploader: uploader}
}

func (s *courseService) Create(ctx context.Context, input CreateCourseInput) (*models.Course, error) {
	if input.Name == "" {
		return nil, ErrCourseNameRequired
	}
	if input.Par <= 0 {
		return nil, ErrCourseInvalidPar
	}
	if err := validateHoles(input.Holes); err != nil {
		return nil, err
	}

	course := &models.Course{Name: input.Name, Par: input.Par}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, mapCourseRepoError(err)
	}
	if len(input.Holes) > 0 {
		if err := s.courseRepo.ReplaceHoles(ctx, course.ID, input.Holes); err != nil {
			return nil, fmt.Errorf("failed to store holes for course %d: %w", course.ID, err)
		}
	}
	return s.load(ctx, course.ID)
}

func (s *courseService) GetByID(ctx context.Context, id int) (*models.Course, error) {
	return s.load(ctx, id)
}

func (s *courseService) List(ctx context.Context) ([]models.Course, error) {
	courses, err := s.courseRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range courses {
		s.populatePhotoURL(&courses[i])
	}
	return courses, nil
}

func (s *courseService) Update(ctx context.Context, id int, input UpdateCourseInput) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapCourseRepoError(err)
	}

	if input.Name != nil {
		course.Name = *input.Name
	}
	if input.Par != nil {
		course.Par = *input.Par
	}
	if course.Name == "" {
		return nil, ErrCourseNameRequired
	}
	if course.Par <= 0 {
		return nil, ErrCourseInvalidPar
	}

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, mapCourseRepoError(err)
	}

	if input.Holes != nil {
		if err := validateHoles(input.Holes); err != nil {
			return nil, err
		}
		if err := s.courseRepo.ReplaceHoles(ctx, id, input.Holes); err != nil {
			return nil, fmt.Errorf("failed to replace holes for course %d: %w", id, err)
		}
	}
	return s.load(ctx, id)
}

func (s *courseService) Delete(ctx context.Context, id int) error {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return mapCourseRepoError(err)
	}
	if err := s.courseRepo.Delete(ctx, id); err != nil {
		return mapCourseRepoError(err)
	}
	// Object cleanup is best effort.
	if s.uploader != nil && course.PhotoKey != nil && *course.PhotoKey != "" {
		_ = s.uploader.Delete(ctx, *course.PhotoKey)
	}
	return nil
}

func (s *courseService) UploadPhoto(ctx context.Context, id int, body io.Reader, contentType string) (*models.Course, error) {
	if _, err := s.courseRepo.GetByID(ctx, id); err != nil {
		return nil, mapCourseRepoError(err)
	}
	if s.uploader == nil {
		return nil, storage.ErrUploaderDisabled
	}

	key := fmt.Sprintf("courses/%d/photo", id)
	if err := s.uploader.Upload(ctx, key, body, contentType); err != nil {
		return nil, fmt.Errorf("failed to upload course photo: %w", err)
	}
	if err := s.courseRepo.UpdatePhotoKey(ctx, id, &key); err != nil {
		return nil, mapCourseRepoError(err)
	}
	return s.load(ctx, id)
}

func (s *courseService) load(ctx context.Context, id int) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapCourseRepoError(err)
	}
	holes, err := s.courseRepo.ListHoles(ctx, id)
	if err != nil {
		return nil, err
	}
	course.Holes = holes
	s.populatePhotoURL(course)
	return course, nil
}

func (s *courseService) populatePhotoURL(c *models.Course) {
	if s.uploader == nil || c.PhotoKey == nil || *c.PhotoKey == "" {
		return
	}
	url := s.uploader.PublicURL(*c.PhotoKey)
	c.PhotoURL = &url
}
