package models

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidLead is wrapped by every lead validation failure
var ErrInvalidLead = errors.New("invalid lead")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the field-level contracts of a lead: required contact
// fields, enumerated source and status, score range, and catalog membership
// of the multi-valued product and tag fields.
func (l *Lead) Validate() error {
	l.Title = strings.TrimSpace(l.Title)
	l.Name = strings.TrimSpace(l.Name)
	l.Email = strings.TrimSpace(l.Email)
	l.Phone = strings.TrimSpace(l.Phone)

	if err := validate.Struct(l); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("%w: %s failed %q", ErrInvalidLead, strings.ToLower(fe.Field()), fe.Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalidLead, err)
	}

	for _, p := range l.InterestedProducts {
		if !slices.Contains(ProductCatalog, p) {
			return fmt.Errorf("%w: unknown product %q", ErrInvalidLead, p)
		}
	}
	for _, t := range l.Tags {
		if !slices.Contains(TagCatalog, t) {
			return fmt.Errorf("%w: unknown tag %q", ErrInvalidLead, t)
		}
	}
	return nil
}
