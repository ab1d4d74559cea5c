package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidatePerson checks a person against its struct constraints plus
// the enum fields the tag syntax cannot express.
func ValidatePerson(p *Person) error {
	if p == nil {
		return errors.New("person cannot be nil")
	}
	if err := validate.Struct(p); err != nil {
		return formatValidationError("person", err)
	}
	if !p.CommPreference.IsValid() {
		return fmt.Errorf("person: unknown communication preference %q", p.CommPreference)
	}
	return nil
}

// ValidateRelationship checks field constraints, the kind enumeration
// and the self-loop invariant.
func ValidateRelationship(r *Relationship) error {
	if r == nil {
		return errors.New("relationship cannot be nil")
	}
	if err := validate.Struct(r); err != nil {
		return formatValidationError("relationship", err)
	}
	if !r.Kind.IsValid() {
		return fmt.Errorf("relationship: unknown kind %q", r.Kind)
	}
	if r.FromID == r.ToID {
		return fmt.Errorf("relationship: self-loop on person %s rejected", r.FromID)
	}
	return nil
}

// ValidateInteraction checks field constraints and the kind enumeration.
func ValidateInteraction(i *Interaction) error {
	if i == nil {
		return errors.New("interaction cannot be nil")
	}
	if err := validate.Struct(i); err != nil {
		return formatValidationError("interaction", err)
	}
	if !i.Kind.IsValid() {
		return fmt.Errorf("interaction: unknown kind %q", i.Kind)
	}
	return nil
}

// formatValidationError flattens validator output into a single
// readable message naming each offending field.
func formatValidationError(entity string, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%s: %w", entity, err)
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("%s: invalid fields: %s", entity, strings.Join(parts, ", "))
}
