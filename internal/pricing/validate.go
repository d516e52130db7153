package pricing

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/inkhouse/tattoo-booking-backend/internal/pkg/apperror"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateRules checks field ranges and that names and ids are unique within each list,
// since names are the lookup key for a selection.
func ValidateRules(r *RuleSet) error {
	if r == nil {
		return ErrInvalidRules
	}
	if err := validate.Struct(r); err != nil {
		return apperror.WithCause(ErrInvalidRules, err)
	}

	checks := []struct {
		list string
		keys func() (ids, names []string)
	}{
		{"sizes", func() (ids, names []string) {
			for _, s := range r.Sizes {
				ids, names = append(ids, s.ID), append(names, s.Name)
			}
			return
		}},
		{"styles", func() (ids, names []string) {
			for _, s := range r.Styles {
				ids, names = append(ids, s.ID), append(names, s.Name)
			}
			return
		}},
		{"placements", func() (ids, names []string) {
			for _, p := range r.Placements {
				ids, names = append(ids, p.ID), append(names, p.Name)
			}
			return
		}},
		{"specialOffers", func() (ids, names []string) {
			for _, o := range r.SpecialOffers {
				ids, names = append(ids, o.ID), append(names, o.Name)
			}
			return
		}},
	}

	for _, c := range checks {
		ids, names := c.keys()
		if dup, ok := firstDuplicate(ids); ok {
			return apperror.WithCause(ErrInvalidRules, fmt.Errorf("%s: duplicate id %q", c.list, dup))
		}
		if dup, ok := firstDuplicate(names); ok {
			return apperror.WithCause(ErrInvalidRules, fmt.Errorf("%s: duplicate name %q", c.list, dup))
		}
	}
	return nil
}

func firstDuplicate(values []string) (string, bool) {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			return v, true
		}
		seen[v] = struct{}{}
	}
	return "", false
}
