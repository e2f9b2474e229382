package model

import (
	"errors"
	"fmt"
)

// ErrModelIntegrity is wrapped by every structural model error.
var ErrModelIntegrity = errors.New("model integrity")

// MaxDescriptionLength is the longest error description the string pool can
// hold; each entry's length is stored in a single byte.
const MaxDescriptionLength = 255

// Validate checks the structural integrity of the model.
// It does not mutate the model.
func Validate(m *ConfigModel) error {
	if m == nil {
		return fmt.Errorf("%w: nil model", ErrModelIntegrity)
	}
	if m.RCIErrors.Len() == 0 {
		return fmt.Errorf("%w: no protocol errors defined", ErrModelIntegrity)
	}
	if err := validateErrorMap("rci_errors", m.RCIErrors); err != nil {
		return err
	}
	if err := validateErrorMap("global_errors", m.GlobalErrors); err != nil {
		return err
	}
	// Group error enumerations repeat the protocol and global keys, so a key
	// may appear in only one tier.
	reserved := make(map[string]string)
	for _, e := range m.RCIErrors {
		reserved[e.Key] = "rci_errors"
	}
	for _, e := range m.GlobalErrors {
		if tier, ok := reserved[e.Key]; ok {
			return fmt.Errorf("%w: global_errors: key %q already defined in %s", ErrModelIntegrity, e.Key, tier)
		}
		reserved[e.Key] = "global_errors"
	}

	for _, kind := range AllCategories() {
		seen := make(map[string]bool)
		for _, g := range m.Groups(kind) {
			where := fmt.Sprintf("%s group %q", kind, g.Name)
			if !IsIdentifier(g.Name) {
				return fmt.Errorf("%w: %s: invalid group name", ErrModelIntegrity, where)
			}
			if seen[g.Name] {
				return fmt.Errorf("%w: %s: duplicate group", ErrModelIntegrity, where)
			}
			seen[g.Name] = true

			if g.Instances < 1 {
				return fmt.Errorf("%w: %s: instances must be at least 1, got %d", ErrModelIntegrity, where, g.Instances)
			}
			if err := validateElements(where, g.Elements); err != nil {
				return err
			}
			if err := validateErrorMap(where+" errors", g.Errors); err != nil {
				return err
			}
			for _, e := range g.Errors {
				if tier, ok := reserved[e.Key]; ok {
					return fmt.Errorf("%w: %s errors: key %q already defined in %s", ErrModelIntegrity, where, e.Key, tier)
				}
			}
		}
	}
	return nil
}

func validateElements(where string, elements []Element) error {
	seen := make(map[string]bool)
	for _, e := range elements {
		if !IsIdentifier(e.Name) {
			return fmt.Errorf("%w: %s: invalid element name %q", ErrModelIntegrity, where, e.Name)
		}
		if seen[e.Name] {
			return fmt.Errorf("%w: %s: duplicate element %q", ErrModelIntegrity, where, e.Name)
		}
		seen[e.Name] = true

		if !e.Type.Valid() {
			return fmt.Errorf("%w: %s element %q: unknown type %d", ErrModelIntegrity, where, e.Name, e.Type)
		}
		if e.Access != AccessReadOnly && e.Access != AccessReadWrite {
			return fmt.Errorf("%w: %s element %q: unknown access mode %d", ErrModelIntegrity, where, e.Name, e.Access)
		}

		if e.Type != TypeEnum {
			if len(e.Values) > 0 {
				return fmt.Errorf("%w: %s element %q: values given for %s element", ErrModelIntegrity, where, e.Name, e.Type)
			}
			continue
		}

		named := make(map[string]bool)
		for _, v := range e.Values {
			if v.Name == "" {
				continue
			}
			sym := SanitizeIdentifier(v.Name)
			if named[sym] {
				return fmt.Errorf("%w: %s element %q: duplicate enum value %q", ErrModelIntegrity, where, e.Name, v.Name)
			}
			named[sym] = true
		}
		if len(named) == 0 {
			return fmt.Errorf("%w: %s element %q: enum without values", ErrModelIntegrity, where, e.Name)
		}
	}
	return nil
}

func validateErrorMap(where string, errs ErrorMap) error {
	seen := make(map[string]bool)
	for _, e := range errs {
		if !IsIdentifier(e.Key) {
			return fmt.Errorf("%w: %s: invalid error key %q", ErrModelIntegrity, where, e.Key)
		}
		if seen[e.Key] {
			return fmt.Errorf("%w: %s: duplicate error key %q", ErrModelIntegrity, where, e.Key)
		}
		seen[e.Key] = true

		if e.Description != nil && len(*e.Description) > MaxDescriptionLength {
			return fmt.Errorf("%w: %s: description of %q is %d bytes, limit %d",
				ErrModelIntegrity, where, e.Key, len(*e.Description), MaxDescriptionLength)
		}
	}
	return nil
}

// IsIdentifier reports whether s is a valid C identifier.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// SanitizeIdentifier replaces every byte that may not appear in a C
// identifier with an underscore. Enum value names use it, so "9600 baud"
// becomes "9600_baud".
func SanitizeIdentifier(s string) string {
	b := []byte(s)
	for i, c := range b {
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		default:
			b[i] = '_'
		}
	}
	return string(b)
}
