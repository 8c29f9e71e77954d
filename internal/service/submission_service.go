package service

import (
	"context"
	"fmt"
	"io"

	"github.com/MRKIKSY/backendpaystacktestmode/internal/models"
	"github.com/MRKIKSY/backendpaystacktestmode/internal/repository"
	"github.com/MRKIKSY/backendpaystacktestmode/internal/storage"
)

// Upload is an attached file as received from the client.
type Upload struct {
	FileName string
	Content  io.Reader
}

// SubmissionInput holds the free-text fields of an intake request. None of
// them are validated.
type SubmissionInput struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Comment  string `json:"comment"`
}

type SubmissionService interface {
	Create(ctx context.Context, in SubmissionInput, picture *Upload) (*models.Submission, error)
	List(ctx context.Context) ([]models.Submission, error)
}

type submissionService struct {
	subs    repository.SubmissionStore
	uploads storage.Storage
}

func NewSubmissionService(subs repository.SubmissionStore, uploads storage.Storage) SubmissionService {
	return &submissionService{subs: subs, uploads: uploads}
}

// Create stores the optional picture and inserts a pending submission that
// references it by filename.
func (s *submissionService) Create(ctx context.Context, in SubmissionInput, picture *Upload) (*models.Submission, error) {
	var pictureName *string
	if picture != nil {
		name, err := s.uploads.Save(ctx, picture.FileName, picture.Content)
		if err != nil {
			return nil, fmt.Errorf("save picture: %w", err)
		}
		pictureName = &name
	}

	sub := models.NewSubmission(in.Email, in.Username, in.Comment, pictureName)
	id, err := s.subs.Create(ctx, sub)
	if err != nil {
		return nil, fmt.Errorf("insert submission: %w", err)
	}
	sub.ID = id
	return sub, nil
}

func (s *submissionService) List(ctx context.Context) ([]models.Submission, error) {
	subs, err := s.subs.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	if subs == nil {
		subs = []models.Submission{}
	}
	return subs, nil
}
