// Package serialize renders a validated submission into the canonical text
// block embedded in the QR payload. The output is deterministic: same values,
// byte-identical text.
package serialize

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"qrsecure/internal/forms"
)

// Text builds the payload text:
//
//	Password: <value>            (always, even when empty)
//	Form Type: <template label>
//	<blank>
//	<Label>: <value>             per remaining field, declaration order,
//	                             skipping nil and empty-string values
//
// Booleans render Yes/No (false is a value, not an omission), dates in long
// human form.
func Text(v forms.Values) string {
	var b strings.Builder

	if pw, ok := v.Data["password"]; ok {
		fmt.Fprintf(&b, "Password: %s\n", formatValue(pw))
	}
	fmt.Fprintf(&b, "Form Type: %s\n\n", forms.Label(v.FormType))

	tpl, ok := forms.Lookup(v.FormType)
	if !ok {
		return b.String()
	}
	for _, f := range tpl.Fields {
		if f.Name == "password" {
			continue
		}
		val, present := v.Data[f.Name]
		if !present || val == nil || val == "" {
			continue
		}
		fmt.Fprintf(&b, "%s: %s\n", FieldLabel(f.Name), formatValue(val))
	}
	return b.String()
}

// FieldLabel derives a display label from a camelCase field name: a space
// before each internal capital, first letter capitalized.
func FieldLabel(name string) string {
	var b strings.Builder
	for i, r := range name {
		if i == 0 {
			b.WriteRune(unicode.ToUpper(r))
			continue
		}
		if unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func formatValue(v any) string {
	switch val := v.(type) {
	case time.Time:
		return LongDate(val)
	case bool:
		if val {
			return "Yes"
		}
		return "No"
	default:
		return fmt.Sprintf("%v", val)
	}
}

// LongDate formats like "April 5th, 2024".
func LongDate(t time.Time) string {
	return fmt.Sprintf("%s %d%s, %d", t.Month(), t.Day(), ordinal(t.Day()), t.Year())
}

func ordinal(day int) string {
	if day >= 11 && day <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}
