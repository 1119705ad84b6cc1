package helper

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ValidationError kumpulan pesan per field; dirender sebagai 422.
type ValidationError struct {
	Fields map[string][]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string][]string{}}
}

func (v *ValidationError) Add(field, format string, args ...interface{}) {
	v.Fields[field] = append(v.Fields[field], fmt.Sprintf(format, args...))
}

func (v *ValidationError) Empty() bool { return len(v.Fields) == 0 }

// Err nil kalau tidak ada pesan, supaya bisa langsung di-return.
func (v *ValidationError) Err() error {
	if v == nil || v.Empty() {
		return nil
	}
	return v
}

func (v *ValidationError) Error() string {
	keys := make([]string, 0, len(v.Fields))
	for k := range v.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(v.Fields[k], "; "))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

var validate = validator.New()

// ValidateStruct jalankan tag `validate` dan terjemahkan ke field map (nama dari tag json).
func ValidateStruct(s interface{}) *ValidationError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	out := NewValidationError()
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		out.Add("_", "%s", err.Error())
		return out
	}
	for _, fe := range ve {
		out.Add(fieldName(fe), "%s", messageFor(fe))
	}
	return out
}

// fieldName "SubmitAssessmentRequest.Session.Name" → "session.name" (pakai nama struct field lowercase snake).
func fieldName(fe validator.FieldError) string {
	ns := stripRoot(fe.Namespace())
	parts := strings.Split(ns, ".")
	for i, p := range parts {
		parts[i] = toSnake(p)
	}
	return strings.Join(parts, ".")
}

// stripRoot buang nama struct paling luar; nama generic bisa mengandung titik di dalam [].
func stripRoot(ns string) string {
	depth := 0
	for i, r := range ns {
		switch r {
		case '[':
			depth++
		case ']':
			depth--
		case '.':
			if depth == 0 {
				return ns[i+1:]
			}
		}
	}
	return ns
}

func toSnake(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && runes[i-1] != '[' && !(runes[i-1] >= 'A' && runes[i-1] <= 'Z') {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_without":
		return "wajib diisi"
	case "min":
		return "minimal " + fe.Param()
	case "max":
		return "maksimal " + fe.Param()
	case "gt":
		return "harus lebih besar dari " + fe.Param()
	case "datetime":
		return "format tanggal harus " + fe.Param()
	case "email":
		return "format email tidak valid"
	default:
		return "tidak valid (" + fe.Tag() + ")"
	}
}

// RespondError petakan error service ke envelope JSON standar.
func RespondError(c *fiber.Ctx, err error) error {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return JsonValidationError(c, ve.Fields)
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	log.Printf("[ERROR] %s %s: %v", c.Method(), c.Path(), err)
	return JsonError(c, fiber.StatusInternalServerError, err.Error())
}

// ErrorHandler fiber.Config.ErrorHandler: error yang lolos dari handler tetap pakai envelope standar.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return RespondError(c, err)
}
