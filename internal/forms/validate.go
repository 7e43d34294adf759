package forms

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"qrsecure/internal/errs"
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^\+?[1-9]\d{9,14}$`)
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates every failed field of one submission, in field
// declaration order. Validation never short-circuits: the client gets a single
// combined notification, not one per field.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", e.Combined())
}

// Combined joins the per-field messages the way the UI presents them.
func (e *ValidationError) Combined() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return strings.Join(msgs, " ")
}

// Validate checks raw input against the template's schema and returns the
// typed value set. The returned Values hold time.Time for dates, bool for
// checkboxes (absent defaults to false) and strings for everything else.
func Validate(templateID string, raw map[string]any) (Values, error) {
	tpl, ok := Lookup(templateID)
	if !ok {
		return Values{}, fmt.Errorf("validate %q: %w", templateID, errs.ErrUnknownTemplate)
	}

	values := Values{FormType: templateID, Data: make(map[string]any, len(tpl.Fields))}
	var fieldErrs []FieldError
	fail := func(f FieldSpec) {
		fieldErrs = append(fieldErrs, FieldError{Field: f.Name, Message: f.Message})
	}

	for _, f := range tpl.Fields {
		v := raw[f.Name]
		switch f.Kind {
		case KindText, KindTextarea, KindPassword:
			s, _ := v.(string)
			if utf8.RuneCountInString(s) < f.Min && (f.Required || s != "") {
				fail(f)
				continue
			}
			values.Data[f.Name] = s

		case KindEmail:
			s, _ := v.(string)
			if !emailRe.MatchString(s) {
				fail(f)
				continue
			}
			values.Data[f.Name] = s

		case KindTel:
			s, _ := v.(string)
			if !phoneRe.MatchString(s) {
				fail(f)
				continue
			}
			values.Data[f.Name] = s

		case KindDate:
			t, ok := parseDate(v)
			if !ok {
				fail(f)
				continue
			}
			values.Data[f.Name] = t

		case KindRadio:
			s, _ := v.(string)
			if !contains(f.Options, s) {
				fail(f)
				continue
			}
			values.Data[f.Name] = s

		case KindCheckbox:
			b, _ := v.(bool)
			values.Data[f.Name] = b
		}
	}

	if len(fieldErrs) > 0 {
		return Values{}, &ValidationError{Fields: fieldErrs}
	}
	return values, nil
}

func parseDate(v any) (time.Time, bool) {
	switch d := v.(type) {
	case time.Time:
		return d, true
	case string:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, d); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

func contains(options []string, s string) bool {
	for _, o := range options {
		if o == s {
			return true
		}
	}
	return false
}
