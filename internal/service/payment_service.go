package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/MRKIKSY/backendpaystacktestmode/internal/paystack"
)

var ErrEmptyReference = errors.New("payment reference is required")

// PaymentResult is the outcome of one verification. Payload is the
// provider's response, relayed as-is.
type PaymentResult struct {
	Successful bool
	Payload    json.RawMessage
}

type PaymentService interface {
	Verify(ctx context.Context, reference string) (*PaymentResult, error)
}

type paymentService struct {
	client paystack.Client
}

func NewPaymentService(client paystack.Client) PaymentService {
	return &paymentService{client: client}
}

// Verify asks the provider once. Nothing is retried or recorded.
func (s *paymentService) Verify(ctx context.Context, reference string) (*PaymentResult, error) {
	if reference == "" {
		return nil, ErrEmptyReference
	}
	v, err := s.client.VerifyTransaction(ctx, reference)
	if err != nil {
		return nil, err
	}
	return &PaymentResult{Successful: v.Succeeded(), Payload: v.Raw}, nil
}
