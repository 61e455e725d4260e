package validator

import (
	"errors"
	"regexp"
)

var (
	ScopeValidator  = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
	ErrInvalidInput = errors.New("invalid input")
	ErrMissingField = errors.New("missing required field")
	ErrInvalidScope = errors.New("invalid scope")
	ErrInvalidHint  = errors.New("invalid token type hint")
)

// ValidateScope checks a single OAuth2 scope name as Reddit spells them,
// e.g. "identity" or "modconfig".
func ValidateScope(scope string) error {
	if scope == "" {
		return ErrMissingField
	}
	if len(scope) > 64 {
		return ErrInvalidInput
	}
	if !ScopeValidator.MatchString(scope) {
		return ErrInvalidScope
	}
	return nil
}

func ValidateScopes(scopes []string) error {
	for _, s := range scopes {
		if err := ValidateScope(s); err != nil {
			return errors.Join(err, errors.New("scope: "+s))
		}
	}
	return nil
}

// ValidateTokenTypeHint accepts the RFC 7009 hints. Empty means no hint.
func ValidateTokenTypeHint(hint string) error {
	switch hint {
	case "", "access_token", "refresh_token":
		return nil
	}
	return ErrInvalidHint
}
