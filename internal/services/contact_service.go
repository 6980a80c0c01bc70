package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/DevByAndrei/portfolio/config"
	"github.com/DevByAndrei/portfolio/internal/models"
	"github.com/DevByAndrei/portfolio/pkg/logger"
	"github.com/DevByAndrei/portfolio/pkg/mailtemplate"
	"github.com/DevByAndrei/portfolio/pkg/metrics"
	"github.com/DevByAndrei/portfolio/pkg/resend"
	"github.com/DevByAndrei/portfolio/pkg/sanitize"
	"github.com/DevByAndrei/portfolio/pkg/tracing"
	"github.com/DevByAndrei/portfolio/pkg/validate"
)

// ContactService runs the submission pipeline: sanitize, validate, render
// the notification document, dispatch it. A submission has no identity
// beyond this call; nothing is persisted.
type ContactService struct {
	mailer EmailSender
	config *config.Config
	clock  func() time.Time
}

// NewContactService creates a new contact service instance
func NewContactService(mailer EmailSender, cfg *config.Config) *ContactService {
	return &ContactService{
		mailer: mailer,
		config: cfg,
		clock:  time.Now,
	}
}

// Submit processes one contact-form submission. It returns nil on success,
// a *ValidationError when the sanitized fields fail validation, and an
// ErrDispatchFailed-wrapped error when the provider call fails.
func (s *ContactService) Submit(ctx context.Context, req *models.ContactRequest) error {
	ctx, span := tracing.StartSpan(ctx, "contact.submit")
	defer span.End()

	// Sanitization runs on the raw input before validation and before any
	// use in output, so error paths never re-emit unescaped content.
	fields := sanitize.Apply(sanitize.RawFields{
		Name:    req.Name,
		Email:   req.Email,
		Reason:  req.Reason,
		Message: req.Message,
	})
	if fields.Reason == "" {
		fields.Reason = models.DefaultReason
	}

	if errs := validate.Fields(fields); len(errs) > 0 {
		metrics.ContactFormSubmissions.WithLabelValues("validation_failed").Inc()
		field, msg, _ := validate.First(errs)
		logger.Warn("Contact submission rejected",
			zap.String("field", field),
			zap.Int("violations", len(errs)))
		return &ValidationError{Field: field, Message: msg}
	}

	glyph := models.GlyphForReason(fields.Reason)
	doc := mailtemplate.Render(mailtemplate.Data{
		Name:    fields.Name,
		Email:   fields.Email,
		Reason:  fields.Reason,
		Message: fields.Message,
		Glyph:   glyph,
		SendID:  s.clock().UnixMilli(),
	})

	start := s.clock()
	err := s.mailer.SendEmail(ctx, resend.Email{
		From:    s.config.Mail.From,
		To:      s.config.Mail.To,
		Subject: fmt.Sprintf("%s %s — %s", glyph, fields.Reason, fields.Name),
		HTML:    doc,
	})
	if err != nil {
		metrics.ContactFormSubmissions.WithLabelValues("dispatch_failed").Inc()
		metrics.EmailDispatchDuration.WithLabelValues("error").Observe(metrics.MeasureDuration(start))
		// Provider detail stays out of production logs and errors; locally
		// it is the fastest way to debug a misconfigured key.
		if s.config.IsProduction() {
			logger.Error("Failed to dispatch contact email")
			return ErrDispatchFailed
		}
		logger.Error("Failed to dispatch contact email", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrDispatchFailed, err)
	}

	metrics.ContactFormSubmissions.WithLabelValues("success").Inc()
	metrics.EmailDispatchDuration.WithLabelValues("success").Observe(metrics.MeasureDuration(start))
	logger.Info("Contact email dispatched", zap.String("reason", fields.Reason))
	return nil
}
