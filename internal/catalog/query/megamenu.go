package query

import (
	"github.com/gartstein/catalog/internal/catalog/models"
)

// MegamenuItems is how many companies each megamenu section features.
const MegamenuItems = 2

// SectionSpec declares one megamenu section and the business type feeding it.
type SectionSpec struct {
	Key           string
	BusinessType  string
	Title         string
	Label         string
	URL           string
	FallbackImage string
}

// MenuSections is the megamenu layout. The first section is the default active one.
var MenuSections = []SectionSpec{
	{
		Key:           "cafenele",
		BusinessType:  "cafenea",
		Title:         "Cafenele populare",
		Label:         "Cafenele",
		URL:           "/cafenele",
		FallbackImage: "/assets/images/cafenea1.webp",
	},
	{
		Key:           "patiserii",
		BusinessType:  "patiserie",
		Title:         "Patiserii recomandate",
		Label:         "Patiserii",
		URL:           "/patiserii",
		FallbackImage: "/assets/images/patiserie1.jpg",
	},
	{
		Key:           "restaurante",
		BusinessType:  "restaurant",
		Title:         "Restaurante populare",
		Label:         "Restaurante",
		URL:           "/restaurante",
		FallbackImage: "/assets/images/cafenea1.webp",
	},
	{
		Key:           "servicii",
		BusinessType:  "servicii",
		Title:         "Servicii recomandate",
		Label:         "Servicii",
		URL:           "/servicii",
		FallbackImage: "/assets/images/cafenea1.webp",
	},
	{
		Key:           "magazine",
		BusinessType:  "magazin",
		Title:         "Magazine populare",
		Label:         "Magazine",
		URL:           "/magazine",
		FallbackImage: "/assets/images/cafenea1.webp",
	},
}

// GroupByType buckets companies by business type, keeping their relative order.
// Companies without a type are left out.
func GroupByType(companies []models.Company) map[string][]models.Company {
	groups := make(map[string][]models.Company)
	for _, c := range companies {
		t := c.CompanyDetails.BusinessType
		if t == "" {
			continue
		}
		groups[t] = append(groups[t], c)
	}
	return groups
}

// BuildMegamenu projects the company collection onto the given sections,
// featuring at most perSection companies in each.
func BuildMegamenu(companies []models.Company, sections []SectionSpec, perSection int) models.Megamenu {
	groups := GroupByType(companies)

	menu := models.Megamenu{Sections: make([]models.MenuSection, 0, len(sections))}
	if len(sections) > 0 {
		menu.DefaultActive = sections[0].Key
	}

	for _, section := range sections {
		group := groups[section.BusinessType]
		items := make([]models.MenuItem, 0, head(perSection, len(group)))
		for _, c := range group[:head(perSection, len(group))] {
			items = append(items, menuItem(c, section.FallbackImage))
		}
		menu.Sections = append(menu.Sections, models.MenuSection{
			Key:   section.Key,
			Title: section.Title,
			Label: section.Label,
			URL:   section.URL,
			Items: items,
		})
	}
	return menu
}

func menuItem(c models.Company, fallbackImage string) models.MenuItem {
	image := c.FirstImage()
	if image == "" {
		image = fallbackImage
	}
	return models.MenuItem{
		ID:    c.ID,
		Title: c.CompanyDetails.Name,
		Image: image,
		URL:   "/" + c.Slug,
	}
}
