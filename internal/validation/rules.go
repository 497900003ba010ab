// Package validation implements the declarative per-field rule chains
// that run before a handler executes. A chain binds one request-body
// field to an ordered list of checks; evaluation never short-circuits,
// so a single bad request reports every violation at once. Rules are
// pure functions of the decoded body and never touch the store.
package validation

import (
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// FieldError is one failed check, keyed by the field it applies to.
type FieldError struct {
	Field   string
	Message string
}

type check func(value any) (ok bool, message string)

// Chain is the ordered rule list for one field. Checks only run when
// the field is present; Required additionally fails on absence and on
// values that are empty after trimming.
type Chain struct {
	field       string
	required    bool
	requiredMsg string
	checks      []check
}

// Field starts a rule chain for the named body field.
func Field(name string) *Chain {
	return &Chain{field: name}
}

// Required marks the field mandatory: absent values, non-strings left
// aside, and strings that trim to empty all fail with msg.
func (c *Chain) Required(msg string) *Chain {
	c.required = true
	c.requiredMsg = msg
	return c
}

// Length enforces an inclusive length range on a trimmed string.
func (c *Chain) Length(min, max int, msg string) *Chain {
	return c.add(func(v any) (bool, string) {
		s, ok := v.(string)
		if !ok {
			return false, msg
		}
		n := len(strings.TrimSpace(s))
		return n >= min && n <= max, msg
	})
}

// MinLength enforces a minimum length on a trimmed string.
func (c *Chain) MinLength(min int, msg string) *Chain {
	return c.add(func(v any) (bool, string) {
		s, ok := v.(string)
		if !ok {
			return false, msg
		}
		return len(strings.TrimSpace(s)) >= min, msg
	})
}

// MaxLength enforces a maximum length on a string.
func (c *Chain) MaxLength(max int, msg string) *Chain {
	return c.add(func(v any) (bool, string) {
		s, ok := v.(string)
		if !ok {
			return false, msg
		}
		return len(s) <= max, msg
	})
}

// IntRange enforces an integral JSON number within [min, max].
func (c *Chain) IntRange(min, max int, msg string) *Chain {
	return c.add(func(v any) (bool, string) {
		f, ok := v.(float64)
		if !ok || f != math.Trunc(f) {
			return false, msg
		}
		n := int(f)
		return n >= min && n <= max, msg
	})
}

// FloatMin enforces a JSON number >= min.
func (c *Chain) FloatMin(min float64, msg string) *Chain {
	return c.add(func(v any) (bool, string) {
		f, ok := v.(float64)
		return ok && f >= min, msg
	})
}

// ISODate accepts a plain calendar date or a full RFC 3339 timestamp.
func (c *Chain) ISODate(msg string) *Chain {
	return c.add(func(v any) (bool, string) {
		s, ok := v.(string)
		if !ok {
			return false, msg
		}
		for _, layout := range []string{"2006-01-02", time.RFC3339} {
			if _, err := time.Parse(layout, s); err == nil {
				return true, msg
			}
		}
		return false, msg
	})
}

// Email enforces email shape on a trimmed string.
func (c *Chain) Email(msg string) *Chain {
	return c.add(func(v any) (bool, string) {
		s, ok := v.(string)
		if !ok {
			return false, msg
		}
		return validate.Var(strings.TrimSpace(s), "email") == nil, msg
	})
}

// ObjectID enforces the store's identifier shape (24-char hex).
func (c *Chain) ObjectID(msg string) *Chain {
	return c.add(func(v any) (bool, string) {
		s, ok := v.(string)
		if !ok {
			return false, msg
		}
		return validate.Var(s, "mongodb") == nil, msg
	})
}

func (c *Chain) add(fn check) *Chain {
	c.checks = append(c.checks, fn)
	return c
}

// RuleSet is the full rule list for one route.
type RuleSet []*Chain

// Validate runs every chain against the decoded body and accumulates
// all failures. Optional fields whose value is absent skip their
// checks entirely.
func (rs RuleSet) Validate(body map[string]any) []FieldError {
	var errs []FieldError
	for _, c := range rs {
		value, present := body[c.field]
		if !present || value == nil {
			if c.required {
				errs = append(errs, FieldError{Field: c.field, Message: c.requiredMsg})
			}
			continue
		}
		if c.required {
			if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
				errs = append(errs, FieldError{Field: c.field, Message: c.requiredMsg})
				continue
			}
		}
		for _, fn := range c.checks {
			if ok, msg := fn(value); !ok {
				errs = append(errs, FieldError{Field: c.field, Message: msg})
			}
		}
	}
	return errs
}
