package services_test

import (
	"context"

	"github.com/DevByAndrei/portfolio/pkg/resend"
	"github.com/stretchr/testify/mock"
)

// MockEmailSender implements services.EmailSender for testing
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendEmail(ctx context.Context, email resend.Email) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}
