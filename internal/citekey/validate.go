package citekey

import (
	"fmt"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/matsen/papers/internal/apperr"
)

// MaxLength bounds citekeys, which double as file name stems.
const MaxLength = 200

// keyPattern admits file-name-safe keys: no path separators, no whitespace.
var keyPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_:.+-]*$`)

// Validate reports whether key can be used as a citekey.
func Validate(key string) error {
	err := validation.Validate(key,
		validation.Required,
		validation.Length(1, MaxLength),
		validation.Match(keyPattern).Error("must start with a letter or digit and contain only letters, digits, '_', ':', '.', '+' or '-'"),
	)
	if err != nil {
		return fmt.Errorf("%w %q: %v", apperr.ErrInvalidCitekey, key, err)
	}
	return nil
}
