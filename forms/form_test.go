package forms

import (
	"errors"
	"testing"
)

func newTestForm(t *testing.T, schema *Schema) (*Form, *fakeClock, *[]map[string]string) {
	t.Helper()
	clock := &fakeClock{}
	var passes []map[string]string
	f := New(schema,
		WithScheduler(clock.schedule),
		WithSettleHook(func(errs map[string]string) { passes = append(passes, errs) }),
	)
	return f, clock, &passes
}

func TestFormSetPreservesOtherFields(t *testing.T) {
	f, _, _ := newTestForm(t, MaternalSchema())

	if err := f.Set("nomeMae", "Maria"); err != nil {
		t.Fatal(err)
	}
	if err := f.Set("cpfMae", "12345678909"); err != nil {
		t.Fatal(err)
	}

	if got := f.Value("nomeMae"); got != "Maria" {
		t.Errorf("nomeMae = %q, want Maria", got)
	}
	if got := f.Value("cpfMae"); got != "123.456.789-09" {
		t.Errorf("cpfMae = %q, want masked value", got)
	}
	if got := len(f.Values()); got != len(MaternalSchema().Fields) {
		t.Errorf("Values() has %d keys, want %d", got, len(MaternalSchema().Fields))
	}

	err := f.Set("nomePai", "João")
	if !errors.Is(err, ErrUnknownField) {
		t.Errorf("Set(unknown) error = %v, want ErrUnknownField", err)
	}
}

func TestFormDebouncedValidationSettlesOnce(t *testing.T) {
	f, clock, passes := newTestForm(t, MaternalSchema())

	for _, partial := range []string{"1", "12", "123.4", "123.456.789-0", "123.456.789-09"} {
		if err := f.Set("cpfMae", partial); err != nil {
			t.Fatal(err)
		}
	}
	if len(*passes) != 0 {
		t.Fatalf("validation ran on keystrokes: %v", *passes)
	}

	clock.advance()
	if len(*passes) != 1 {
		t.Fatalf("settled %d times, want 1", len(*passes))
	}
	if msg, ok := (*passes)[0]["cpfMae"]; ok {
		t.Errorf("settled pass saw an intermediate value: %q", msg)
	}

	if err := f.Set("cpfMae", "123"); err != nil {
		t.Fatal(err)
	}
	f.Flush()
	if got := f.Errors()["cpfMae"]; got != "CPF inválido" {
		t.Errorf("after Flush cpfMae error = %q, want CPF inválido", got)
	}
	if len(*passes) != 2 {
		t.Errorf("settled %d times, want 2", len(*passes))
	}
}

func TestFormValidateChecksUntouchedFields(t *testing.T) {
	f, _, _ := newTestForm(t, MaternalSchema())
	_ = f.Set("nomeMae", "Maria")

	err := f.Validate()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Validate() error = %v, want *ValidationError", err)
	}
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("Validate() error does not wrap ErrInvalid")
	}

	errs := f.Errors()
	for _, name := range []string{"cepMae", "telefoneMae", "cpfMae", "emailMae", "rgMae", "nascimentoMae", "profissaoMae"} {
		if errs[name] == "" {
			t.Errorf("missing error for %s", name)
		}
	}
	for _, name := range []string{"nomeMae", "trabalhoMae", "enderecoMae", "telefoneTrabalhoMae"} {
		if msg, ok := errs[name]; ok {
			t.Errorf("unexpected error for %s: %q", name, msg)
		}
	}
}

func TestFormValidatePasses(t *testing.T) {
	f, _, _ := newTestForm(t, MaternalSchema())
	for k, v := range validMaternal() {
		if err := f.Set(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if err := f.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if len(f.Errors()) != 0 {
		t.Errorf("Errors() = %v, want none", f.Errors())
	}
}

func TestFormConditionalFields(t *testing.T) {
	f, clock, _ := newTestForm(t, ObservationsSchema())

	set := func(k, v string) {
		t.Helper()
		if err := f.Set(k, v); err != nil {
			t.Fatal(err)
		}
	}
	set("matricula", EnrollmentInitial)
	set("irmaos", "nao")
	set("temEspecialista", "sim")
	set("temAlergias", "nao")
	set("temMedicamento", "nao")

	if f.Visible("escola") {
		t.Error("escola visible for an initial enrollment")
	}
	if !f.Visible("especialista") {
		t.Error("especialista hidden although temEspecialista is sim")
	}

	err := f.Validate()
	if err == nil {
		t.Fatal("Validate() passed with the visible especialista field empty")
	}
	errs := f.Errors()
	if _, ok := errs["escola"]; ok {
		t.Error("hidden field escola was validated")
	}
	if errs["especialista"] == "" {
		t.Error("visible field especialista was not validated")
	}

	// hiding the field drops its stale error
	set("temEspecialista", "nao")
	clock.advance()
	if _, ok := f.Errors()["especialista"]; ok {
		t.Error("hidden field kept its error")
	}
	if err := f.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}

	payload := f.Payload()
	for _, fld := range ObservationsSchema().Fields {
		if _, ok := payload[fld.Name]; !ok {
			t.Errorf("payload misses %s", fld.Name)
		}
	}
	if payload["escola"] != "" {
		t.Errorf("escola = %q, want empty", payload["escola"])
	}

	set("matricula", EnrollmentTransferPrivate)
	if !f.Visible("escola") {
		t.Error("escola hidden for a transfer")
	}
	var names []string
	for _, fld := range f.VisibleFields() {
		names = append(names, fld.Name)
	}
	if len(names) != 6 {
		t.Errorf("VisibleFields() = %v", names)
	}
}

func TestFormSubmittingFlag(t *testing.T) {
	f, _, _ := newTestForm(t, InfoSchema())
	if err := f.BeginSubmit(); err != nil {
		t.Fatal(err)
	}
	if !f.Submitting() {
		t.Error("Submitting() = false after BeginSubmit")
	}
	if err := f.BeginSubmit(); !errors.Is(err, ErrSubmitting) {
		t.Errorf("second BeginSubmit() = %v, want ErrSubmitting", err)
	}
	f.EndSubmit()
	if err := f.BeginSubmit(); err != nil {
		t.Errorf("BeginSubmit() after EndSubmit = %v", err)
	}
}

func validMaternal() map[string]string {
	return map[string]string{
		"nomeMae":       "Maria Souza",
		"cepMae":        "01310100",
		"telefoneMae":   "11987654321",
		"nascimentoMae": "15041985",
		"cpfMae":        "12345678909",
		"emailMae":      "maria@example.com",
		"rgMae":         "123456789",
		"profissaoMae":  "Professora",
	}
}
