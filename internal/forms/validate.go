package forms

import (
	"errors"
	"reflect"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var phonePattern = regexp.MustCompile(`^\d{3}-\d{3}-\d{4}$`)

// showTimeLayouts are accepted for start_time, tried in order. Layouts
// without a zone are read in the configured location.
var showTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	time.RFC3339,
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	_ = v.RegisterValidation("genre", func(fl validator.FieldLevel) bool {
		return slices.Contains(Genres, fl.Field().String())
	})

	_ = v.RegisterValidation("us_state", func(fl validator.FieldLevel) bool {
		return slices.Contains(States, fl.Field().String())
	})

	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})

	_ = v.RegisterValidation("showtime", func(fl validator.FieldLevel) bool {
		_, err := parseShowTime(fl.Field().String(), time.UTC)
		return err == nil
	})

	return v
}

type FieldError struct {
	Field   string
	Message string
}

// Result is the outcome of validating one submitted form.
type Result struct {
	Errors []FieldError
}

func (r Result) OK() bool {
	return len(r.Errors) == 0
}

// Summary joins every error as "field: message" pairs, in report order.
func (r Result) Summary() string {
	parts := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		parts = append(parts, e.Field+": "+e.Message)
	}
	return strings.Join(parts, "; ")
}

// For returns the first message reported for field, or "".
func (r Result) For(field string) string {
	for _, e := range r.Errors {
		if e.Field == field {
			return e.Message
		}
	}
	return ""
}

func check(form any) Result {
	err := validate.Struct(form)
	if err == nil {
		return Result{}
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Result{Errors: []FieldError{{Field: "form", Message: err.Error()}}}
	}

	res := Result{Errors: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		res.Errors = append(res.Errors, FieldError{
			Field:   fieldName(fe),
			Message: message(fe),
		})
	}

	return res
}

// fieldName strips the slice index validator appends for dive errors.
func fieldName(fe validator.FieldError) string {
	name, _, _ := strings.Cut(fe.Field(), "[")
	return name
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "min":
		return "Choose at least " + fe.Param() + "."
	case "max":
		return "Must be at most " + fe.Param() + " characters."
	case "url":
		return "Invalid URL."
	case "number":
		return "Must be a numeric ID."
	case "genre", "us_state":
		return "Not a valid choice."
	case "phone":
		return "Phone must look like 123-456-7890."
	case "showtime":
		return "Not a valid datetime value."
	default:
		return "Invalid value."
	}
}

func parseShowTime(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)

	var lastErr error
	for _, layout := range showTimeLayouts {
		t, err := time.ParseInLocation(layout, raw, loc)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}

	return time.Time{}, lastErr
}

func truthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "on", "true", "1":
		return true
	default:
		return false
	}
}
