package repository

import (
	"context"
	"errors"
	"log/slog"

	"github.com/MRKIKSY/backendpaystacktestmode/internal/db"
	"github.com/MRKIKSY/backendpaystacktestmode/internal/models"
	"github.com/MRKIKSY/backendpaystacktestmode/internal/oxidb"
)

type OxiSubmissionRepo struct {
	pool *db.Pool
}

func NewOxiSubmissionRepo(pool *db.Pool) *OxiSubmissionRepo {
	return &OxiSubmissionRepo{pool: pool}
}

// EnsureCollection creates the submissions collection if it is missing.
func (r *OxiSubmissionRepo) EnsureCollection(ctx context.Context) error {
	err := r.pool.Get().CreateCollection(ctx, SubmissionsCollection)
	var oxErr *oxidb.Error
	if errors.As(err, &oxErr) && oxErr.Exists {
		return nil
	}
	return err
}

func (r *OxiSubmissionRepo) Create(ctx context.Context, sub *models.Submission) (string, error) {
	doc, err := toDoc(sub)
	if err != nil {
		return "", err
	}
	result, err := r.pool.Get().Insert(ctx, SubmissionsCollection, doc)
	if err != nil {
		return "", err
	}
	return extractID(result), nil
}

func (r *OxiSubmissionRepo) FindAll(ctx context.Context) ([]models.Submission, error) {
	docs, err := r.pool.Get().Find(ctx, SubmissionsCollection, map[string]any{}, &oxidb.FindOptions{
		Sort: map[string]any{"_id": 1},
	})
	if err != nil {
		return nil, err
	}
	subs := make([]models.Submission, 0, len(docs))
	for _, d := range docs {
		var s models.Submission
		if err := fromDoc(d, &s); err != nil {
			slog.WarnContext(ctx, "skipping unreadable submission", "id", d["_id"], "err", err)
			continue
		}
		subs = append(subs, s)
	}
	return subs, nil
}

func (r *OxiSubmissionRepo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
