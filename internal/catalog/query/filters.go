package query

import (
	"fmt"

	e "github.com/gartstein/catalog/internal/catalog/errors"
	"github.com/gartstein/catalog/internal/catalog/models"
)

// Record is anything addressable by id.
type Record interface {
	RecordID() models.ID
}

// Owned is a record that points back to the company publishing it.
type Owned interface {
	BusinessID() models.ID
}

// Filter returns the items for which keep reports true, in their original order.
// The result is never nil.
func Filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// OfType matches companies of the given business type. The comparison is exact.
func OfType(businessType string) func(models.Company) bool {
	return func(c models.Company) bool {
		return c.CompanyDetails.BusinessType == businessType
	}
}

// InCity matches companies with at least one location in city.
func InCity(city string) func(models.Company) bool {
	return anyLocation(city, func(a models.Address) string { return a.City })
}

// InCounty matches companies with at least one location in county.
func InCounty(county string) func(models.Company) bool {
	return anyLocation(county, func(a models.Address) string { return a.County })
}

func anyLocation(want string, field func(models.Address) string) func(models.Company) bool {
	want = Normalize(want)
	return func(c models.Company) bool {
		for _, loc := range c.Locations {
			if Normalize(field(loc.Address)) == want {
				return true
			}
		}
		return false
	}
}

// OwnedBy matches moments or drops published by the given company.
func OwnedBy[T Owned](businessID models.ID) func(T) bool {
	return func(item T) bool {
		return item.BusinessID() == businessID
	}
}

// FindCompany returns the first company with the given slug.
func FindCompany(companies []models.Company, slug string) (models.Company, error) {
	for _, c := range companies {
		if c.Slug == slug {
			return c, nil
		}
	}
	return models.Company{}, fmt.Errorf("%w: company %q", e.ErrNotFound, slug)
}

// FindByID returns the first record with the given id.
func FindByID[T Record](items []T, id models.ID) (T, error) {
	for _, item := range items {
		if item.RecordID() == id {
			return item, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%w: id %q", e.ErrNotFound, id)
}
