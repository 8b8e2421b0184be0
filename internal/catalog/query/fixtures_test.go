package query

import (
	"github.com/gartstein/catalog/internal/catalog/models"
)

func company(id, slug, businessType, name string, locs ...models.Location) models.Company {
	return models.Company{
		ID:             models.ID(id),
		Slug:           slug,
		CompanyDetails: models.CompanyDetails{BusinessType: businessType, Name: name},
		Locations:      locs,
	}
}

func location(city, county, image string) models.Location {
	return models.Location{
		Address:       models.Address{City: city, County: county},
		FeaturedImage: image,
	}
}

func ids[T Record](items []T) []models.ID {
	out := make([]models.ID, 0, len(items))
	for _, item := range items {
		out = append(out, item.RecordID())
	}
	return out
}

func slugs(companies []models.Company) []string {
	out := make([]string, 0, len(companies))
	for _, c := range companies {
		out = append(out, c.Slug)
	}
	return out
}
