package shared

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MaxBodyBytes bounds request bodies. A full game history is well under 1 KiB.
const MaxBodyBytes = 64 << 10

// Validate is the shared validator instance, with the solver tags registered:
//
//	wordle_word      five ASCII letters, any case
//	wordle_feedback  five of b, y, g, any case
var Validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their JSON names so messages match the request body.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// ALLOW-PANIC: registration only fails on programmer error
	if err := v.RegisterValidation("wordle_word", validateWord); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("wordle_feedback", validateFeedback); err != nil {
		panic(err)
	}
	return v
}

func validateWord(fl validator.FieldLevel) bool {
	return matchesFive(fl.Field().String(), func(c byte) bool {
		return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
	})
}

func validateFeedback(fl validator.FieldLevel) bool {
	return matchesFive(strings.ToLower(fl.Field().String()), func(c byte) bool {
		return c == 'b' || c == 'y' || c == 'g'
	})
}

func matchesFive(s string, ok func(byte) bool) bool {
	s = strings.TrimSpace(s)
	if len(s) != 5 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !ok(s[i]) {
			return false
		}
	}
	return true
}

// ErrEmptyBody is returned by DecodeJSON for a request without a body.
var ErrEmptyBody = errors.New("request body is empty")

// DecodeJSON decodes the request body into the given struct. Unknown fields
// and trailing data are rejected.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	if r.Body == nil || r.Body == http.NoBody {
		return ErrEmptyBody
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}

// ValidateRequest validates the given struct using the validator package.
func ValidateRequest(v interface{}) error {
	// Check if the object implements the Validate interface
	if validator, ok := v.(interface{ Validate() error }); ok {
		return validator.Validate()
	}

	// Otherwise, use the struct validator
	return Validate.Struct(v)
}
