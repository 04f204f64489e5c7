package forms

import (
	"fmt"
	"sync"
	"time"
)

const DefaultDebounceDelay = 300 * time.Millisecond

// Form holds the values and validation state of one wizard step.
type Form struct {
	mu         sync.Mutex
	schema     *Schema
	values     map[string]string
	errors     map[string]string
	dirty      map[string]struct{}
	submitting bool

	delay     time.Duration
	scheduler Scheduler
	onSettle  func(errs map[string]string)
	debouncer *Debouncer
}

type FormOption func(*Form)

func WithDebounceDelay(d time.Duration) FormOption {
	return func(f *Form) { f.delay = d }
}

// WithScheduler replaces the timer used to debounce validation.
func WithScheduler(s Scheduler) FormOption {
	return func(f *Form) { f.scheduler = s }
}

// WithSettleHook is called with the error map after every settled
// validation pass.
func WithSettleHook(fn func(errs map[string]string)) FormOption {
	return func(f *Form) { f.onSettle = fn }
}

func New(schema *Schema, opts ...FormOption) *Form {
	f := &Form{
		schema: schema,
		values: make(map[string]string, len(schema.Fields)),
		errors: make(map[string]string),
		dirty:  make(map[string]struct{}),
		delay:  DefaultDebounceDelay,
	}
	for _, opt := range opts {
		opt(f)
	}
	for _, fld := range schema.Fields {
		f.values[fld.Name] = ""
	}
	f.debouncer = NewDebouncer(f.delay, f.scheduler, f.settle)
	return f
}

func (f *Form) Schema() *Schema {
	return f.schema
}

// Set updates one field and leaves the others untouched. Masked kinds are
// formatted on the way in. Validation of the field is debounced.
func (f *Form) Set(field, value string) error {
	fld, ok := f.schema.Field(field)
	if !ok {
		return fmt.Errorf("%w: %q in form %q", ErrUnknownField, field, f.schema.Name)
	}
	if fld.Kind.Masked() {
		value = Mask(fld.Kind, value)
	}

	f.mu.Lock()
	f.values[field] = value
	f.dirty[field] = struct{}{}
	f.mu.Unlock()

	f.debouncer.Trigger()
	return nil
}

func (f *Form) Value(field string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[field]
}

// Values returns a copy of every field value.
func (f *Form) Values() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return copyMap(f.values)
}

// Payload is the body posted for this step. It always carries every
// schema field, visible or not.
func (f *Form) Payload() map[string]string {
	return f.Values()
}

// Errors returns a copy of the settled error map. A missing key means the
// field is currently valid.
func (f *Form) Errors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return copyMap(f.errors)
}

func (f *Form) Visible(field string) bool {
	fld, ok := f.schema.Field(field)
	if !ok {
		return false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return fld.Visible(f.values)
}

// VisibleFields lists the fields currently shown, in schema order.
func (f *Form) VisibleFields() []Field {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []Field
	for _, fld := range f.schema.Fields {
		if fld.Visible(f.values) {
			out = append(out, fld)
		}
	}
	return out
}

// Flush settles any pending validation immediately.
func (f *Form) Flush() {
	f.debouncer.Flush()
}

// Validate flushes pending edits and then checks every visible field,
// including ones never touched. It returns a *ValidationError when at
// least one field is invalid.
func (f *Form) Validate() error {
	f.Flush()

	f.mu.Lock()
	errs := make(map[string]string)
	var fields []FieldError
	for _, fld := range f.schema.Fields {
		if !fld.Visible(f.values) {
			continue
		}
		if msg := Check(fld, f.values[fld.Name]); msg != "" {
			errs[fld.Name] = msg
			fields = append(fields, FieldError{Field: fld.Name, Error: msg})
		}
	}
	f.errors = errs
	f.dirty = make(map[string]struct{})
	hook := f.onSettle
	f.mu.Unlock()

	if hook != nil {
		hook(copyMap(errs))
	}
	if len(fields) > 0 {
		return NewValidationError(ErrInvalid, fields...)
	}
	return nil
}

// BeginSubmit raises the submitting flag; it fails while a previous
// submission is still outstanding.
func (f *Form) BeginSubmit() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitting {
		return ErrSubmitting
	}
	f.submitting = true
	return nil
}

func (f *Form) EndSubmit() {
	f.mu.Lock()
	f.submitting = false
	f.mu.Unlock()
}

func (f *Form) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

// settle validates the fields edited since the last pass against their
// latest values.
func (f *Form) settle() {
	f.mu.Lock()
	for name := range f.dirty {
		fld, _ := f.schema.Field(name)
		msg := ""
		if fld.Visible(f.values) {
			msg = Check(fld, f.values[name])
		}
		if msg == "" {
			delete(f.errors, name)
		} else {
			f.errors[name] = msg
		}
	}
	// a field hidden by this edit must not keep a stale error
	for name := range f.errors {
		if fld, ok := f.schema.Field(name); ok && !fld.Visible(f.values) {
			delete(f.errors, name)
		}
	}
	f.dirty = make(map[string]struct{})
	errs := copyMap(f.errors)
	hook := f.onSettle
	f.mu.Unlock()

	if hook != nil {
		hook(errs)
	}
}

func copyMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
