package catalog

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/drstein77/lismarket/internal/models"
	"go.uber.org/multierr"
)

// ErrInvalidProduct is wrapped by every violation reported by Validate.
var ErrInvalidProduct = errors.New("invalid product")

// Mismatch describes a product whose authored discount label differs from its prices.
type Mismatch struct {
	ID      int
	Label   string
	Derived string
}

// Validate checks the record invariants and returns all violations combined.
// Discount labels are not checked; see Audit.
func Validate(list []models.Product) error {
	var err error
	seen := make(map[int]struct{}, len(list))

	for _, p := range list {
		if p.ID <= 0 {
			err = multierr.Append(err, invalid(p.ID, "id must be positive"))
		}
		if _, dup := seen[p.ID]; dup {
			err = multierr.Append(err, invalid(p.ID, "duplicate id"))
		}
		seen[p.ID] = struct{}{}

		if strings.TrimSpace(p.Name) == "" {
			err = multierr.Append(err, invalid(p.ID, "name is empty"))
		}
		if strings.TrimSpace(p.Description) == "" {
			err = multierr.Append(err, invalid(p.ID, "description is empty"))
		}
		if p.Price < 0 {
			err = multierr.Append(err, invalid(p.ID, "price is negative"))
		}
		if p.OldPrice < p.Price {
			err = multierr.Append(err, invalid(p.ID, fmt.Sprintf("old price %d is below price %d", p.OldPrice, p.Price)))
		}
		if p.Image == "" {
			err = multierr.Append(err, invalid(p.ID, "image is empty"))
		} else if u, parseErr := url.Parse(p.Image); parseErr != nil || u.Scheme == "" || u.Host == "" {
			err = multierr.Append(err, invalid(p.ID, "image is not an absolute URL"))
		}
	}

	return err
}

// Audit lists the products whose discount label disagrees with the derived percentage.
func Audit(list []models.Product) []Mismatch {
	var out []Mismatch
	for _, p := range list {
		if derived := p.DerivedDiscountLabel(); derived != p.Discount {
			out = append(out, Mismatch{ID: p.ID, Label: p.Discount, Derived: derived})
		}
	}
	return out
}

func invalid(id int, reason string) error {
	return fmt.Errorf("%w %d: %s", ErrInvalidProduct, id, reason)
}
