package storage

import (
	"context"
	"io"
)

// Storage keeps uploaded files and hands back the name they were stored
// under. Only the name is persisted alongside a submission.
type Storage interface {
	// Save writes data under a fresh, collision-resistant name derived from
	// originalName and returns that name.
	Save(ctx context.Context, originalName string, data io.Reader) (name string, err error)
}
