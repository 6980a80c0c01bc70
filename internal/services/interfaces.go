package services

import (
	"context"

	"github.com/DevByAndrei/portfolio/pkg/resend"
)

// EmailSender dispatches one notification email synchronously. Implemented
// by pkg/resend; mocked in tests.
type EmailSender interface {
	SendEmail(ctx context.Context, email resend.Email) error
}
