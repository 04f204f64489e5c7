package wizard

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/SamuelLeutner/pre-enrollment/config"
	"github.com/SamuelLeutner/pre-enrollment/forms"
)

type call struct {
	endpoint string
	payload  map[string]string
}

type fakeSubmitter struct {
	calls []call
	err   error
}

func (s *fakeSubmitter) Submit(ctx context.Context, endpoint string, payload map[string]string) error {
	s.calls = append(s.calls, call{endpoint: endpoint, payload: payload})
	return s.err
}

var stepValues = map[Step]map[string]string{
	StepLogin: {"email": "secretaria@escola.com", "senha": "123"},
	StepStudent: {
		"nome": "Ana Souza", "sexo": "feminino", "cpf": "12345678909", "rg": "123456789",
		"anoLetivo": "2025", "turno": "manha", "tipoSanguineo": "O+",
	},
	StepMaternal: guardian("Mae"),
	StepPaternal: guardian("Pai"),
	StepObservations: {
		"matricula": forms.EnrollmentInitial, "irmaos": "nao",
		"temEspecialista": "nao", "temAlergias": "sim", "alergia": "Lactose", "temMedicamento": "nao",
	},
	StepInfo: {"reside": "Pais", "respNome": "Maria Souza", "respTelefone": "11987654321"},
}

func guardian(suffix string) map[string]string {
	return map[string]string{
		"nome" + suffix:       "Maria Souza",
		"cep" + suffix:        "01310100",
		"telefone" + suffix:   "11987654321",
		"nascimento" + suffix: "15041985",
		"cpf" + suffix:        "12345678909",
		"email" + suffix:      "maria@example.com",
		"rg" + suffix:         "123456789",
		"profissao" + suffix:  "Professora",
	}
}

func newTestWizard(t *testing.T, sub *fakeSubmitter, opts ...Option) *Wizard {
	t.Helper()
	opts = append([]Option{WithFormOptions(forms.WithDebounceDelay(time.Hour))}, opts...)
	return New(sub, EndpointsFromConfig(config.Default()), opts...)
}

func fill(t *testing.T, w *Wizard, s Step) {
	t.Helper()
	for k, v := range stepValues[s] {
		if err := w.Form(s).Set(k, v); err != nil {
			t.Fatal(err)
		}
	}
}

// advanceTo fills and submits every step before target.
func advanceTo(t *testing.T, w *Wizard, target Step) {
	t.Helper()
	for w.Current() != target {
		fill(t, w, w.Current())
		if err := w.Next(context.Background()); err != nil {
			t.Fatalf("Next() on %s = %v", w.Current(), err)
		}
	}
}

func TestNextRejectsInvalidStep(t *testing.T) {
	sub := &fakeSubmitter{}
	w := newTestWizard(t, sub)
	advanceTo(t, w, StepStudent)

	form := w.Form(StepStudent)
	_ = form.Set("nome", "Ana")
	if len(form.Errors()) != 0 {
		t.Fatalf("errors visible before the flush: %v", form.Errors())
	}

	err := w.Next(context.Background())
	if !errors.Is(err, ErrInvalidStep) {
		t.Fatalf("Next() = %v, want ErrInvalidStep", err)
	}
	var verr *forms.ValidationError
	if !errors.As(err, &verr) || len(verr.Fields) == 0 {
		t.Errorf("Next() error does not carry the field errors: %v", err)
	}
	if w.Current() != StepStudent {
		t.Errorf("Current() = %s, want aluno", w.Current())
	}
	if form.Errors()["cpf"] == "" {
		t.Error("flushed validation did not surface the empty cpf")
	}
	if len(sub.calls) != 0 {
		t.Errorf("invalid step was posted: %v", sub.calls)
	}
}

func TestLoginIsNeverPosted(t *testing.T) {
	sub := &fakeSubmitter{}
	w := newTestWizard(t, sub)

	_ = w.Form(StepLogin).Set("email", "not-an-email")
	_ = w.Form(StepLogin).Set("senha", "x")
	if err := w.Next(context.Background()); !errors.Is(err, ErrInvalidStep) {
		t.Fatalf("Next() = %v, want ErrInvalidStep", err)
	}

	fill(t, w, StepLogin)
	if err := w.Next(context.Background()); err != nil {
		t.Fatalf("Next() = %v", err)
	}
	if w.Current() != StepStudent {
		t.Errorf("Current() = %s, want aluno", w.Current())
	}
	if len(sub.calls) != 0 {
		t.Errorf("login was posted: %v", sub.calls)
	}
}

func TestMaternalStepPostsOnceAndAdvances(t *testing.T) {
	sub := &fakeSubmitter{}
	w := newTestWizard(t, sub)
	advanceTo(t, w, StepMaternal)
	sub.calls = nil

	fill(t, w, StepMaternal)
	if err := w.Next(context.Background()); err != nil {
		t.Fatalf("Next() = %v", err)
	}

	if len(sub.calls) != 1 {
		t.Fatalf("got %d posts, want 1", len(sub.calls))
	}
	got := sub.calls[0]
	if got.endpoint != "/maes" {
		t.Errorf("endpoint = %q, want /maes", got.endpoint)
	}
	if got.payload["cpfMae"] != "123.456.789-09" {
		t.Errorf("cpfMae = %q, want masked value", got.payload["cpfMae"])
	}
	if _, ok := got.payload["trabalhoMae"]; !ok {
		t.Error("payload misses the optional trabalhoMae key")
	}
	if w.Current() != StepPaternal {
		t.Errorf("Current() = %s, want paterno", w.Current())
	}
	if w.Message() != "" {
		t.Errorf("Message() = %q, want empty", w.Message())
	}
}

func TestMaternalStepFailureKeepsState(t *testing.T) {
	sub := &fakeSubmitter{}
	w := newTestWizard(t, sub)
	advanceTo(t, w, StepMaternal)

	fill(t, w, StepMaternal)
	before := w.Form(StepMaternal).Values()
	sub.err = errors.New("connection refused")
	sub.calls = nil

	if err := w.Next(context.Background()); err == nil {
		t.Fatal("Next() succeeded with a failing backend")
	}
	if w.Current() != StepMaternal {
		t.Errorf("Current() = %s, want materno", w.Current())
	}
	if w.Message() != MsgSubmitFailed {
		t.Errorf("Message() = %q", w.Message())
	}
	if !reflect.DeepEqual(w.Form(StepMaternal).Values(), before) {
		t.Error("form values changed after a failed submission")
	}
	if w.Form(StepMaternal).Submitting() {
		t.Error("submitting flag still raised")
	}
	if len(sub.calls) != 1 {
		t.Errorf("got %d posts, want exactly 1 (no retry)", len(sub.calls))
	}

	// a later attempt goes through and clears the message
	sub.err = nil
	if err := w.Next(context.Background()); err != nil {
		t.Fatalf("retry Next() = %v", err)
	}
	if w.Current() != StepPaternal || w.Message() != "" {
		t.Errorf("after retry: step %s, message %q", w.Current(), w.Message())
	}
}

func TestBackKeepsData(t *testing.T) {
	w := newTestWizard(t, &fakeSubmitter{})
	w.Back()
	if w.Current() != StepLogin {
		t.Fatalf("Back() on login moved to %s", w.Current())
	}

	advanceTo(t, w, StepPaternal)
	_ = w.Form(StepPaternal).Set("nomePai", "Carlos")

	w.Back()
	if w.Current() != StepMaternal {
		t.Fatalf("Current() = %s, want materno", w.Current())
	}
	if got := w.Form(StepMaternal).Value("nomeMae"); got != "Maria Souza" {
		t.Errorf("nomeMae = %q after Back", got)
	}
	if got := w.Form(StepPaternal).Value("nomePai"); got != "Carlos" {
		t.Errorf("nomePai = %q after Back", got)
	}
}

func TestWizardLands(t *testing.T) {
	sub := &fakeSubmitter{}
	landed := 0
	w := newTestWizard(t, sub, WithLandingHook(func() { landed++ }))

	advanceTo(t, w, StepLanding)

	var endpoints []string
	for _, c := range sub.calls {
		endpoints = append(endpoints, c.endpoint)
	}
	want := []string{"/alunos", "/maes", "/pais", "/observacoes", "/info"}
	if !reflect.DeepEqual(endpoints, want) {
		t.Errorf("posted to %v, want %v", endpoints, want)
	}
	if landed != 1 {
		t.Errorf("landing hook ran %d times, want 1", landed)
	}
	if w.Message() != MsgCompleted {
		t.Errorf("Message() = %q", w.Message())
	}
	if err := w.Next(context.Background()); !errors.Is(err, ErrFinished) {
		t.Errorf("Next() after landing = %v, want ErrFinished", err)
	}
	w.Back()
	if w.Current() != StepLanding {
		t.Errorf("Back() left the landing screen")
	}

	obs := sub.calls[3].payload
	if _, ok := obs["escola"]; !ok {
		t.Error("hidden escola missing from the observations payload")
	}
}

func TestToLogin(t *testing.T) {
	w := newTestWizard(t, &fakeSubmitter{})
	advanceTo(t, w, StepMaternal)
	w.ToLogin()
	if w.Current() != StepLogin {
		t.Errorf("Current() = %s, want login", w.Current())
	}
	if w.Form(StepStudent).Value("nome") != "Ana Souza" {
		t.Error("ToLogin dropped entered data")
	}
}

// blockingSubmitter holds every submission until release is closed.
type blockingSubmitter struct {
	started chan struct{}
	release chan struct{}
}

func (s *blockingSubmitter) Submit(ctx context.Context, endpoint string, payload map[string]string) error {
	s.started <- struct{}{}
	<-s.release
	return nil
}

func TestLateResponseDoesNotNavigate(t *testing.T) {
	tests := []struct {
		name  string
		leave func(w *Wizard)
		want  Step
	}{
		{"back", (*Wizard).Back, StepStudent},
		{"to login", (*Wizard).ToLogin, StepLogin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWizard(t, &fakeSubmitter{})
			advanceTo(t, w, StepMaternal)
			fill(t, w, StepMaternal)

			sub := &blockingSubmitter{started: make(chan struct{}, 1), release: make(chan struct{})}
			w.submitter = sub

			done := make(chan error, 1)
			go func() { done <- w.Next(context.Background()) }()

			<-sub.started
			tt.leave(w)
			close(sub.release)

			if err := <-done; err != nil {
				t.Fatalf("Next() = %v", err)
			}
			if got := w.Current(); got != tt.want {
				t.Errorf("Current() = %s after the late response, want %s", got, tt.want)
			}
		})
	}
}
