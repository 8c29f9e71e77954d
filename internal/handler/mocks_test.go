package handler

import (
	"context"

	"github.com/MRKIKSY/backendpaystacktestmode/internal/models"
	"github.com/MRKIKSY/backendpaystacktestmode/internal/service"
)

type mockSubmissionService struct {
	createFn func(ctx context.Context, in service.SubmissionInput, picture *service.Upload) (*models.Submission, error)
	listFn   func(ctx context.Context) ([]models.Submission, error)
}

func (m *mockSubmissionService) Create(ctx context.Context, in service.SubmissionInput, picture *service.Upload) (*models.Submission, error) {
	return m.createFn(ctx, in, picture)
}

func (m *mockSubmissionService) List(ctx context.Context) ([]models.Submission, error) {
	return m.listFn(ctx)
}

type mockAuthService struct {
	loginFn func(ctx context.Context, username, password string) (string, error)
}

func (m *mockAuthService) Login(ctx context.Context, username, password string) (string, error) {
	return m.loginFn(ctx, username, password)
}

type mockPaymentService struct {
	verifyFn func(ctx context.Context, reference string) (*service.PaymentResult, error)
}

func (m *mockPaymentService) Verify(ctx context.Context, reference string) (*service.PaymentResult, error) {
	return m.verifyFn(ctx, reference)
}

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(context.Context) error { return m.err }
