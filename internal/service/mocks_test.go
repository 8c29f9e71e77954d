package service

import (
	"context"
	"io"

	"github.com/MRKIKSY/backendpaystacktestmode/internal/models"
	"github.com/MRKIKSY/backendpaystacktestmode/internal/paystack"
)

type mockStore struct {
	subs      []models.Submission
	createErr error
	findErr   error
}

func (m *mockStore) Create(_ context.Context, sub *models.Submission) (string, error) {
	if m.createErr != nil {
		return "", m.createErr
	}
	m.subs = append(m.subs, *sub)
	return "id-" + string(rune('0'+len(m.subs))), nil
}

func (m *mockStore) FindAll(context.Context) ([]models.Submission, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.subs, nil
}

func (m *mockStore) Ping(context.Context) error { return nil }

type mockStorage struct {
	saved   map[string]string
	saveErr error
}

func (m *mockStorage) Save(_ context.Context, originalName string, data io.Reader) (string, error) {
	if m.saveErr != nil {
		return "", m.saveErr
	}
	b, err := io.ReadAll(data)
	if err != nil {
		return "", err
	}
	if m.saved == nil {
		m.saved = map[string]string{}
	}
	name := "stored-" + originalName
	m.saved[name] = string(b)
	return name, nil
}

type mockPaystack struct {
	verifyFunc func(ctx context.Context, reference string) (*paystack.Verification, error)
}

func (m *mockPaystack) VerifyTransaction(ctx context.Context, reference string) (*paystack.Verification, error) {
	return m.verifyFunc(ctx, reference)
}
