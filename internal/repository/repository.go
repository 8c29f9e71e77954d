package repository

import (
	"context"

	"github.com/MRKIKSY/backendpaystacktestmode/internal/models"
)

// SubmissionsCollection is the collection (or key prefix) submissions live in.
const SubmissionsCollection = "submissions"

// SubmissionStore persists submissions. Records are only ever appended;
// FindAll returns them in storage order.
type SubmissionStore interface {
	Create(ctx context.Context, sub *models.Submission) (string, error)
	FindAll(ctx context.Context) ([]models.Submission, error)
	Ping(ctx context.Context) error
}
