package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
)

// Options tunes a Validate call.
type Options struct {
	// Convert enables coercion: numeric strings become integers, date strings
	// and epoch milliseconds become time.Time, and Trim rules are applied.
	Convert bool
}

var DefaultOptions = Options{Convert: true}

// Violation is one failed rule. Path uses dots for fields and brackets for
// array positions, e.g. "work[1].endDate".
type Violation struct {
	Path    string
	Code    Code
	Message string
}

func (v *Violation) Error() string { return v.Message }

var formats = validator.New()

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Validate checks input against s. It returns the normalized document, with
// defaults applied and unknown fields removed at every level, or an error
// holding every violation found. It never stops at the first failure.
func Validate(input Document, s Schema, opts Options) (Document, error) {
	v := &validation{opts: opts}
	out := v.object("", input, s)
	if err := v.errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return out, nil
}

// ErrorMessages flattens a Validate error into its human-readable messages.
func ErrorMessages(err error) []string {
	if err == nil {
		return nil
	}
	var merr *multierror.Error
	if errors.As(err, &merr) {
		out := make([]string, 0, len(merr.Errors))
		for _, e := range merr.Errors {
			out = append(out, e.Error())
		}
		return out
	}
	return []string{err.Error()}
}

// Violations returns the structured violations carried by a Validate error.
func Violations(err error) []*Violation {
	var merr *multierror.Error
	if !errors.As(err, &merr) {
		return nil
	}
	out := make([]*Violation, 0, len(merr.Errors))
	for _, e := range merr.Errors {
		var vi *Violation
		if errors.As(e, &vi) {
			out = append(out, vi)
		}
	}
	return out
}

type validation struct {
	opts Options
	errs *multierror.Error
}

func (v *validation) count() int {
	if v.errs == nil {
		return 0
	}
	return len(v.errs.Errors)
}

func (v *validation) fail(path string, code Code, msgs Messages, fallback string) {
	msg, ok := msgs[code]
	if !ok {
		msg = fallback
	}
	v.errs = multierror.Append(v.errs, &Violation{Path: path, Code: code, Message: msg})
}

func (v *validation) object(path string, input Document, s Schema) Document {
	out := make(Document, len(s.Fields))
	present := 0

	for _, f := range s.Fields {
		child := join(path, f.Name)
		raw, ok := input[f.Name]
		if !ok {
			switch {
			case f.Rule.Default != nil:
				out[f.Name] = f.Rule.Default
			case f.Rule.Required:
				v.fail(child, CodeRequired, f.Rule.Messages, fmt.Sprintf("%q is required", child))
			}
			continue
		}
		present++
		// An explicit null is present but matches no type.
		if val, ok := v.value(child, raw, f.Rule); ok {
			out[f.Name] = val
		}
	}

	for _, f := range s.Fields {
		if f.Rule.Greater == "" {
			continue
		}
		after, ok1 := out[f.Name].(time.Time)
		before, ok2 := out[f.Rule.Greater].(time.Time)
		if ok1 && ok2 && !after.After(before) {
			child := join(path, f.Name)
			v.fail(child, CodeGreater, f.Rule.Messages,
				fmt.Sprintf("%q must be greater than %q", child, join(path, f.Rule.Greater)))
		}
	}

	label := path
	if label == "" {
		label = "value"
	}
	if s.MinKeys > 0 && present < s.MinKeys {
		v.fail(label, CodeMinKeys, s.Messages, fmt.Sprintf("%q must have at least %d keys", label, s.MinKeys))
	}
	if len(s.AnyOf) > 0 && !anyPresent(input, s.AnyOf) {
		v.fail(label, CodeAnyOf, s.Messages,
			fmt.Sprintf("%q must contain at least one of [%s]", label, strings.Join(s.AnyOf, ", ")))
	}
	return out
}

func (v *validation) value(path string, raw any, r Rule) (any, bool) {
	switch r.Type {
	case String:
		return v.str(path, raw, r)
	case Integer:
		return v.integer(path, raw, r)
	case Date:
		return v.date(path, raw, r)
	case Array:
		return v.array(path, raw, r)
	case Object:
		return v.nested(path, raw, r)
	default:
		v.fail(path, CodeType, r.Messages, fmt.Sprintf("%q has an unsupported type", path))
		return nil, false
	}
}

func (v *validation) str(path string, raw any, r Rule) (any, bool) {
	s, ok := raw.(string)
	if !ok {
		v.fail(path, CodeType, r.Messages, fmt.Sprintf("%q must be a string", path))
		return nil, false
	}
	if r.Trim && v.opts.Convert {
		s = strings.TrimSpace(s)
	}
	if s == "" {
		if r.AllowEmpty {
			return s, true
		}
		v.fail(path, CodeEmpty, r.Messages, fmt.Sprintf("%q is not allowed to be empty", path))
		return nil, false
	}

	before := v.count()
	n := utf8.RuneCountInString(s)
	if r.Min != nil && n < *r.Min {
		v.fail(path, CodeMin, r.Messages, fmt.Sprintf("%q length must be at least %d characters long", path, *r.Min))
	}
	if r.Max != nil && n > *r.Max {
		v.fail(path, CodeMax, r.Messages, fmt.Sprintf("%q length must be less than or equal to %d characters long", path, *r.Max))
	}
	if r.Pattern != nil && !r.Pattern.MatchString(s) {
		v.fail(path, CodePattern, r.Messages, fmt.Sprintf("%q fails to match the required pattern", path))
	}
	if r.Format != "" && formats.Var(s, string(r.Format)) != nil {
		v.fail(path, CodeFormat, r.Messages, fmt.Sprintf("%q must be a valid %s", path, r.Format))
	}
	return s, v.count() == before
}

func (v *validation) integer(path string, raw any, r Rule) (any, bool) {
	f, ok := v.number(raw)
	if !ok {
		v.fail(path, CodeType, r.Messages, fmt.Sprintf("%q must be a number", path))
		return nil, false
	}
	if f != math.Trunc(f) {
		v.fail(path, CodeInteger, r.Messages, fmt.Sprintf("%q must be an integer", path))
		return nil, false
	}
	if math.Abs(f) > MaxSafeInteger {
		v.fail(path, CodeUnsafe, r.Messages, fmt.Sprintf("%q must be a safe number", path))
		return nil, false
	}
	n := int(f)

	before := v.count()
	if r.Min != nil && n < *r.Min {
		v.fail(path, CodeMin, r.Messages, fmt.Sprintf("%q must be greater than or equal to %d", path, *r.Min))
	}
	if r.Max != nil && n > *r.Max {
		v.fail(path, CodeMax, r.Messages, fmt.Sprintf("%q must be less than or equal to %d", path, *r.Max))
	}
	return n, v.count() == before
}

func (v *validation) number(raw any) (float64, bool) {
	switch x := raw.(type) {
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case float64:
		return x, !math.IsNaN(x) && !math.IsInf(x, 0)
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case string:
		if !v.opts.Convert {
			return 0, false
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func (v *validation) date(path string, raw any, r Rule) (any, bool) {
	t, ok := v.toTime(raw)
	if !ok {
		v.fail(path, CodeType, r.Messages, fmt.Sprintf("%q must be a valid date", path))
		return nil, false
	}
	return t.UTC(), true
}

func (v *validation) toTime(raw any) (time.Time, bool) {
	switch x := raw.(type) {
	case time.Time:
		return x, true
	case *time.Time:
		if x == nil {
			return time.Time{}, false
		}
		return *x, true
	case string:
		if !v.opts.Convert {
			return time.Time{}, false
		}
		s := strings.TrimSpace(x)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	default:
		ms, ok := v.number(raw)
		if !ok {
			return time.Time{}, false
		}
		return time.UnixMilli(int64(ms)), true
	}
}

func (v *validation) array(path string, raw any, r Rule) (any, bool) {
	var items []any
	switch x := raw.(type) {
	case []any:
		items = x
	case []string:
		items = make([]any, len(x))
		for i, s := range x {
			items[i] = s
		}
	default:
		v.fail(path, CodeType, r.Messages, fmt.Sprintf("%q must be an array", path))
		return nil, false
	}

	before := v.count()
	if r.Min != nil && len(items) < *r.Min {
		v.fail(path, CodeMin, r.Messages, fmt.Sprintf("%q must contain at least %d items", path, *r.Min))
	}
	if r.Max != nil && len(items) > *r.Max {
		v.fail(path, CodeMax, r.Messages, fmt.Sprintf("%q must contain less than or equal to %d items", path, *r.Max))
	}

	out := make([]any, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for i, item := range items {
		child := fmt.Sprintf("%s[%d]", path, i)
		val := item
		if r.Items != nil {
			var ok bool
			if item == nil {
				v.fail(child, CodeType, r.Items.Messages, fmt.Sprintf("%q must not be null", child))
				continue
			}
			if val, ok = v.value(child, item, *r.Items); !ok {
				continue
			}
		}
		if r.Unique {
			key := fmt.Sprintf("%T:%v", val, val)
			if _, dup := seen[key]; dup {
				v.fail(child, CodeUnique, r.Messages, fmt.Sprintf("%q contains a duplicate value", child))
				continue
			}
			seen[key] = struct{}{}
		}
		out = append(out, val)
	}
	return out, v.count() == before
}

func (v *validation) nested(path string, raw any, r Rule) (any, bool) {
	m, ok := raw.(map[string]any)
	if !ok {
		v.fail(path, CodeType, r.Messages, fmt.Sprintf("%q must be an object", path))
		return nil, false
	}
	if r.Object == nil {
		return m, true
	}
	before := v.count()
	out := v.object(path, m, *r.Object)
	return out, v.count() == before
}

func anyPresent(input Document, names []string) bool {
	for _, n := range names {
		if _, ok := input[n]; ok {
			return true
		}
	}
	return false
}

func join(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}
