package resources

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/frenchcert/frenchcert/pkg/lookup"
)

// Kind selects the input used for a form field.
type Kind string

const (
	KindText     Kind = "text"
	KindRichText Kind = "richtext"
	KindNumber   Kind = "number"
	KindDecimal  Kind = "decimal"
	KindDate     Kind = "date"
	KindCheckbox Kind = "checkbox"
	KindSelect   Kind = "select"
	KindMulti    Kind = "multiselect"
)

// Field describes one form input.
type Field struct {
	Name     string
	Label    string
	Kind     Kind
	Required bool
	// Source names the lookup slot holding the choices of a select.
	Source string
	// Choices are fixed select options used when Source is empty.
	Choices []lookup.Option
	Help    string
}

// Multiple reports whether the field holds a list of values.
func (f Field) Multiple() bool {
	return f.Kind == KindMulti
}

// Rich reports whether the field is edited as rich text.
func (f Field) Rich() bool {
	return f.Kind == KindRichText
}

// Parse converts raw input values into the field's value type. Blank
// numbers parse as zero so validation can report them.
func (f Field) Parse(raw []string) (any, error) {
	first := ""
	if len(raw) > 0 {
		first = strings.TrimSpace(raw[0])
	}

	switch f.Kind {
	case KindMulti:
		out := make([]string, 0, len(raw))
		for _, v := range raw {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
		return out, nil
	case KindNumber:
		if first == "" {
			return 0, nil
		}
		n, err := strconv.Atoi(first)
		if err != nil {
			return nil, fmt.Errorf("%s must be a whole number", f.Label)
		}
		return n, nil
	case KindDecimal:
		if first == "" {
			return 0.0, nil
		}
		n, err := strconv.ParseFloat(strings.ReplaceAll(first, ",", "."), 64)
		if err != nil {
			return nil, fmt.Errorf("%s must be a number", f.Label)
		}
		return n, nil
	case KindCheckbox:
		switch strings.ToLower(first) {
		case "", "0", "false", "off", "no":
			return false, nil
		default:
			return true, nil
		}
	case KindRichText:
		if len(raw) > 0 {
			return raw[0], nil
		}
		return "", nil
	default:
		return first, nil
	}
}

// Format renders a single value for an input element.
func (f Field) Format(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

// Selected returns the values of a multi-select or select field.
func (f Field) Selected(v any) []string {
	switch x := v.(type) {
	case []string:
		return x
	case []any:
		out := make([]string, 0, len(x))
		for _, item := range x {
			out = append(out, fmt.Sprint(item))
		}
		return out
	case string:
		if x == "" {
			return nil
		}
		return []string{x}
	default:
		return nil
	}
}

// Options returns the choices of a select from the loaded lookups.
func (f Field) Options(loaded map[string][]lookup.Option) []lookup.Option {
	if f.Source != "" {
		return loaded[f.Source]
	}
	return f.Choices
}

func choices(values ...string) []lookup.Option {
	out := make([]lookup.Option, 0, len(values))
	for _, v := range values {
		out = append(out, lookup.Option{Value: v, Label: strings.ToUpper(v[:1]) + v[1:]})
	}
	return out
}
