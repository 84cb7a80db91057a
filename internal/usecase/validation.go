package usecase

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"trades_marketplace/internal/domain/entities"

	"github.com/go-playground/validator/v10"
)

var (
	validate      = newValidator()
	postcodeChars = regexp.MustCompile(`^[A-Z0-9 ]+$`)
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	RegisterValidations(v)
	return v
}

// RegisterValidations adds the marketplace tags (category, postcode) to v,
// so the HTTP binding engine applies the same rules as the use cases.
func RegisterValidations(v *validator.Validate) {
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return entities.ValidCategory(fl.Field().String())
	})
	_ = v.RegisterValidation("postcode", func(fl validator.FieldLevel) bool {
		return ValidPostcode(fl.Field().String())
	})
}

// NormalizePostcode upper-cases and collapses whitespace.
func NormalizePostcode(postcode string) string {
	return strings.ToUpper(strings.Join(strings.Fields(postcode), " "))
}

// ValidPostcode accepts 5 to 8 characters of letters, digits and spaces.
func ValidPostcode(postcode string) bool {
	p := NormalizePostcode(postcode)
	return len(p) >= 5 && len(p) <= 8 && postcodeChars.MatchString(p)
}

// validationError wraps base with a readable description of a validator failure.
func validationError(base error, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", base, err)
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		parts = append(parts, fmt.Sprintf("%s failed %s", toSnake(fe.Field()), rule))
	}
	return fmt.Errorf("%w: %s", base, strings.Join(parts, "; "))
}

func toSnake(s string) string {
	var b strings.Builder
	var prev rune
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			if prev >= 'a' && prev <= 'z' {
				b.WriteByte('_')
			}
			b.WriteRune(r + 'a' - 'A')
		} else {
			b.WriteRune(r)
		}
		prev = r
	}
	return b.String()
}
