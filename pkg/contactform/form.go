package contactform

import (
	"context"
	"sync"
	"time"

	"github.com/DevByAndrei/portfolio/pkg/sanitize"
	"github.com/DevByAndrei/portfolio/pkg/validate"
)

// State is the submission state the UI renders from.
type State string

const (
	StateIdle    State = "idle"
	StateSending State = "sending"
	StateSent    State = "sent"
	StateError   State = "error"
)

// User feedback shown next to the submit control.
const (
	FeedbackSent  = "✅ Mensaje enviado con éxito. ¡Gracias por contactarme!"
	FeedbackError = "⚠️ Error al enviar el mensaje. Intenta nuevamente."
)

// initialReason preselects the first option of the reason dropdown.
const initialReason = "Consulta general"

// ClearDelay is how long a terminal state (sent/error) stays on screen
// before the form returns to idle.
const ClearDelay = 3 * time.Second

// Form is the contact-form state machine. All methods are safe for
// concurrent use; the submit control must stay disabled from sending
// through the terminal state, and SubmitDisabled reports exactly that.
type Form struct {
	client *Client

	mu          sync.Mutex
	values      sanitize.RawFields
	fieldErrors map[string]string
	state       State
	feedback    string

	schedule func(time.Duration, func())
}

// FormOption configures a Form.
type FormOption func(*Form)

// WithScheduler replaces the auto-clear timer, used by tests to fire it
// deterministically.
func WithScheduler(schedule func(time.Duration, func())) FormOption {
	return func(f *Form) {
		f.schedule = schedule
	}
}

// NewForm creates an idle form bound to the client.
func NewForm(client *Client, opts ...FormOption) *Form {
	f := &Form{
		client:      client,
		values:      sanitize.RawFields{Reason: initialReason},
		fieldErrors: make(map[string]string),
		state:       StateIdle,
		schedule: func(d time.Duration, fn func()) {
			time.AfterFunc(d, fn)
		},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// SetName updates the field and clears its inline error, mirroring the
// on-change behavior of the form UI.
func (f *Form) SetName(v string) { f.set(&f.values.Name, "name", v) }

// SetEmail updates the field and clears its inline error.
func (f *Form) SetEmail(v string) { f.set(&f.values.Email, "email", v) }

// SetReason updates the selected reason.
func (f *Form) SetReason(v string) { f.set(&f.values.Reason, "reason", v) }

// SetMessage updates the field and clears its inline error.
func (f *Form) SetMessage(v string) { f.set(&f.values.Message, "message", v) }

func (f *Form) set(field *string, name, v string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	*field = v
	delete(f.fieldErrors, name)
}

// State returns the current submission state.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Feedback returns the current user feedback line, empty when idle.
func (f *Form) Feedback() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.feedback
}

// FieldErrors returns a copy of the inline validation errors.
func (f *Form) FieldErrors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	errs := make(map[string]string, len(f.fieldErrors))
	for k, v := range f.fieldErrors {
		errs[k] = v
	}
	return errs
}

// SubmitDisabled reports whether the submit control is disabled: true for
// the whole stretch from sending through sent/error until the auto-clear
// returns the form to idle.
func (f *Form) SubmitDisabled() bool {
	return f.State() != StateIdle
}

// Submit drives one submission attempt and returns the resulting state.
//
// Local validation failures keep the form idle, record inline field errors
// and never touch the network. Otherwise the form enters sending, POSTs the
// sanitized fields, lands in sent (values cleared, success feedback) or
// error (generic feedback), and either way schedules the auto-clear back to
// idle. Submitting while not idle is a no-op returning the current state.
func (f *Form) Submit(ctx context.Context) State {
	f.mu.Lock()
	if f.state != StateIdle {
		state := f.state
		f.mu.Unlock()
		return state
	}

	if errs := validate.Fields(sanitize.Apply(f.values)); len(errs) > 0 {
		f.fieldErrors = errs
		f.mu.Unlock()
		return StateIdle
	}

	f.state = StateSending
	f.feedback = ""
	raw := f.values
	f.mu.Unlock()

	err := f.client.Send(ctx, raw)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.state = StateError
		f.feedback = FeedbackError
	} else {
		f.state = StateSent
		f.feedback = FeedbackSent
		f.values = sanitize.RawFields{Reason: initialReason}
	}
	f.schedule(ClearDelay, f.reset)
	return f.state
}

func (f *Form) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = StateIdle
	f.feedback = ""
}
