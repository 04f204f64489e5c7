// Package wizard drives the pre-enrollment flow: a fixed sequence of form
// steps, each validated and then posted on its own.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/SamuelLeutner/pre-enrollment/config"
	"github.com/SamuelLeutner/pre-enrollment/forms"
)

type Step int

const (
	StepLogin Step = iota
	StepStudent
	StepMaternal
	StepPaternal
	StepObservations
	StepInfo
	StepLanding
)

// Steps lists the form steps in navigation order. StepLanding is not a
// form and is therefore absent.
var Steps = []Step{StepLogin, StepStudent, StepMaternal, StepPaternal, StepObservations, StepInfo}

func (s Step) String() string {
	switch s {
	case StepLogin:
		return "login"
	case StepStudent:
		return "aluno"
	case StepMaternal:
		return "materno"
	case StepPaternal:
		return "paterno"
	case StepObservations:
		return "observacoes"
	case StepInfo:
		return "info"
	case StepLanding:
		return "landing"
	}
	return fmt.Sprintf("Step(%d)", int(s))
}

func (s Step) schema() *forms.Schema {
	switch s {
	case StepLogin:
		return forms.LoginSchema()
	case StepStudent:
		return forms.StudentSchema()
	case StepMaternal:
		return forms.MaternalSchema()
	case StepPaternal:
		return forms.PaternalSchema()
	case StepObservations:
		return forms.ObservationsSchema()
	case StepInfo:
		return forms.InfoSchema()
	}
	return nil
}

const (
	MsgSubmitFailed = "Erro ao enviar os dados. Tente novamente."
	MsgCompleted    = "Cadastro realizado com sucesso!"
)

var (
	ErrInvalidStep = errors.New("current step has invalid fields")
	ErrFinished    = errors.New("wizard already finished")
)

// Submitter posts one step payload. *services.Client satisfies it.
type Submitter interface {
	Submit(ctx context.Context, endpoint string, payload map[string]string) error
}

// EndpointsFromConfig maps every posting step to its configured path.
// Login has no endpoint.
func EndpointsFromConfig(cfg *config.Config) map[Step]string {
	return map[Step]string{
		StepStudent:      cfg.Endpoints[config.EndpointStudents],
		StepMaternal:     cfg.Endpoints[config.EndpointMothers],
		StepPaternal:     cfg.Endpoints[config.EndpointFathers],
		StepObservations: cfg.Endpoints[config.EndpointObservations],
		StepInfo:         cfg.Endpoints[config.EndpointInfo],
	}
}

type Wizard struct {
	mu        sync.Mutex
	submitter Submitter
	endpoints map[Step]string
	forms     map[Step]*forms.Form
	current   Step
	message   string
	onLanding func()
}

type Option func(*wizardOptions)

type wizardOptions struct {
	formOpts  []forms.FormOption
	onLanding func()
}

// WithFormOptions is applied to every step form.
func WithFormOptions(opts ...forms.FormOption) Option {
	return func(o *wizardOptions) { o.formOpts = append(o.formOpts, opts...) }
}

// WithLandingHook runs once the last step has been accepted.
func WithLandingHook(fn func()) Option {
	return func(o *wizardOptions) { o.onLanding = fn }
}

func New(submitter Submitter, endpoints map[Step]string, opts ...Option) *Wizard {
	var o wizardOptions
	for _, opt := range opts {
		opt(&o)
	}

	w := &Wizard{
		submitter: submitter,
		endpoints: endpoints,
		forms:     make(map[Step]*forms.Form, len(Steps)),
		current:   StepLogin,
		onLanding: o.onLanding,
	}
	for _, s := range Steps {
		w.forms[s] = forms.New(s.schema(), o.formOpts...)
	}
	return w
}

func (w *Wizard) Current() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// Message is the last user-visible outcome, empty when there is none.
func (w *Wizard) Message() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.message
}

// Form returns the form of step s, or nil for StepLanding.
func (w *Wizard) Form(s Step) *forms.Form {
	return w.forms[s]
}

// Next validates the current step and, when it posts somewhere, submits
// it. Only a valid and accepted step advances. Steps already accepted
// are never rolled back when a later one fails.
func (w *Wizard) Next(ctx context.Context) error {
	w.mu.Lock()
	step := w.current
	w.mu.Unlock()

	if step == StepLanding {
		return ErrFinished
	}

	form := w.forms[step]
	if err := form.Validate(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidStep, step, err)
	}

	if endpoint, ok := w.endpoints[step]; ok && endpoint != "" {
		if err := form.BeginSubmit(); err != nil {
			return err
		}
		err := w.submitter.Submit(ctx, endpoint, form.Payload())
		form.EndSubmit()
		if err != nil {
			log.Printf("Step '%s' submission failed: %v", step, err)
			w.setMessage(MsgSubmitFailed)
			return fmt.Errorf("submitting step %s: %w", step, err)
		}
	}

	w.mu.Lock()
	if now := w.current; now != step {
		// the user navigated away while the request was outstanding
		w.mu.Unlock()
		log.Printf("Step '%s' accepted after navigation to '%s', not advancing", step, now)
		return nil
	}
	w.current = step + 1
	w.message = ""
	landed := w.current == StepLanding
	if landed {
		w.message = MsgCompleted
	}
	hook := w.onLanding
	w.mu.Unlock()

	log.Printf("Step '%s' completed, now at '%s'", step, step+1)
	if landed && hook != nil {
		hook()
	}
	return nil
}

// Back moves to the previous step keeping every entered value. It is a
// no-op on the first step and once the wizard has landed.
func (w *Wizard) Back() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.current == StepLogin || w.current == StepLanding {
		return
	}
	w.current--
	w.message = ""
}

// ToLogin sends the user back to the login step, e.g. after the backend
// rejected the session. Entered data is kept.
func (w *Wizard) ToLogin() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.current = StepLogin
}

func (w *Wizard) setMessage(msg string) {
	w.mu.Lock()
	w.message = msg
	w.mu.Unlock()
}
