package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/DevByAndrei/portfolio/config"
	"github.com/DevByAndrei/portfolio/internal/models"
	"github.com/DevByAndrei/portfolio/internal/services"
	"github.com/DevByAndrei/portfolio/pkg/resend"
	"github.com/DevByAndrei/portfolio/pkg/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func testConfig(env string) *config.Config {
	cfg := &config.Config{}
	cfg.Server.AppEnv = env
	cfg.Mail.From = "Portfolio Contact <onboarding@resend.dev>"
	cfg.Mail.To = "devbyandrei@gmail.com"
	return cfg
}

func TestContactService_Submit_Success(t *testing.T) {
	mailer := new(MockEmailSender)
	service := services.NewContactService(mailer, testConfig("development"))
	ctx := context.Background()

	var sent resend.Email
	mailer.On("SendEmail", ctx, mock.AnythingOfType("resend.Email")).
		Run(func(args mock.Arguments) {
			sent = args.Get(1).(resend.Email)
		}).
		Return(nil).Once()

	err := service.Submit(ctx, &models.ContactRequest{
		Name:    "Ana",
		Email:   "ana@example.com",
		Reason:  "Colaboración",
		Message: "Hola, quiero colaborar contigo",
	})

	assert.NoError(t, err)
	assert.Equal(t, "devbyandrei@gmail.com", sent.To)
	assert.Equal(t, "🤝 Colaboración — Ana", sent.Subject)
	assert.Contains(t, sent.HTML, "Colaboración")
	assert.Contains(t, sent.HTML, "Hola, quiero colaborar contigo")
	assert.Contains(t, sent.HTML, "mailto:ana@example.com")
	mailer.AssertExpectations(t)
}

func TestContactService_Submit_DefaultsReason(t *testing.T) {
	mailer := new(MockEmailSender)
	service := services.NewContactService(mailer, testConfig("development"))
	ctx := context.Background()

	var sent resend.Email
	mailer.On("SendEmail", ctx, mock.AnythingOfType("resend.Email")).
		Run(func(args mock.Arguments) {
			sent = args.Get(1).(resend.Email)
		}).
		Return(nil).Once()

	err := service.Submit(ctx, &models.ContactRequest{
		Name:    "Ana",
		Email:   "ana@example.com",
		Message: "Hola, quiero colaborar contigo",
	})

	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(sent.Subject, "💼 Propuesta de trabajo"), "subject: %s", sent.Subject)
}

func TestContactService_Submit_UnknownReasonKeepsTextWithDefaultGlyph(t *testing.T) {
	mailer := new(MockEmailSender)
	service := services.NewContactService(mailer, testConfig("development"))
	ctx := context.Background()

	var sent resend.Email
	mailer.On("SendEmail", ctx, mock.AnythingOfType("resend.Email")).
		Run(func(args mock.Arguments) {
			sent = args.Get(1).(resend.Email)
		}).
		Return(nil).Once()

	err := service.Submit(ctx, &models.ContactRequest{
		Name:    "Ana",
		Email:   "ana@example.com",
		Reason:  "Charla técnica",
		Message: "Hola, quiero colaborar contigo",
	})

	assert.NoError(t, err)
	assert.Equal(t, "💬 Charla técnica — Ana", sent.Subject)
}

func TestContactService_Submit_ValidationFailure(t *testing.T) {
	mailer := new(MockEmailSender)
	service := services.NewContactService(mailer, testConfig("development"))

	err := service.Submit(context.Background(), &models.ContactRequest{
		Name:    "A",
		Email:   "ana@example.com",
		Message: "short",
	})

	var vErr *services.ValidationError
	assert.ErrorAs(t, err, &vErr)
	// First failing field wins; name comes before message.
	assert.Equal(t, "name", vErr.Field)
	assert.Equal(t, validate.MsgNameTooShort, vErr.Message)
	mailer.AssertNotCalled(t, "SendEmail")
}

func TestContactService_Submit_SanitizesBeforeDispatch(t *testing.T) {
	mailer := new(MockEmailSender)
	service := services.NewContactService(mailer, testConfig("development"))
	ctx := context.Background()

	var sent resend.Email
	mailer.On("SendEmail", ctx, mock.AnythingOfType("resend.Email")).
		Run(func(args mock.Arguments) {
			sent = args.Get(1).(resend.Email)
		}).
		Return(nil).Once()

	err := service.Submit(ctx, &models.ContactRequest{
		Name:    "Ana",
		Email:   "Ana@Example.com",
		Message: "Hola <script>alert('x')</script> mundo",
	})

	assert.NoError(t, err)
	assert.NotContains(t, sent.HTML, "<script>")
	assert.Contains(t, sent.HTML, "&lt;script&gt;")
	assert.Contains(t, sent.HTML, "mailto:ana@example.com")
}

func TestContactService_Submit_DispatchFailure(t *testing.T) {
	mailer := new(MockEmailSender)
	service := services.NewContactService(mailer, testConfig("development"))
	ctx := context.Background()

	mailer.On("SendEmail", ctx, mock.AnythingOfType("resend.Email")).
		Return(errors.New("resend: unexpected status 500")).Once()

	err := service.Submit(ctx, &models.ContactRequest{
		Name:    "Ana",
		Email:   "ana@example.com",
		Message: "Hola, quiero colaborar contigo",
	})

	assert.ErrorIs(t, err, services.ErrDispatchFailed)
	mailer.AssertExpectations(t)
}

// In production the dispatch error must not carry provider detail.
func TestContactService_Submit_DispatchFailureOpaqueInProduction(t *testing.T) {
	mailer := new(MockEmailSender)
	service := services.NewContactService(mailer, testConfig("production"))
	ctx := context.Background()

	mailer.On("SendEmail", ctx, mock.AnythingOfType("resend.Email")).
		Return(errors.New("quota exceeded for key re_secret")).Once()

	err := service.Submit(ctx, &models.ContactRequest{
		Name:    "Ana",
		Email:   "ana@example.com",
		Message: "Hola, quiero colaborar contigo",
	})

	assert.ErrorIs(t, err, services.ErrDispatchFailed)
	assert.NotContains(t, err.Error(), "re_secret")
}
