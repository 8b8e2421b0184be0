// Package models defines the catalog records (Company, Moment, Drop) as they are
// read from storage, and the response envelopes the query engine produces.
package models

import (
	"encoding/json"
)

// Collection names one of the stored record sets.
type Collection string

const (
	Companies Collection = "companies"
	Moments   Collection = "moments"
	Drops     Collection = "drops"
)

// FileName is the snapshot file backing the collection.
func (c Collection) FileName() string {
	return string(c) + ".json"
}

// Address is the postal part of a company location.
type Address struct {
	City   string `json:"city"`
	County string `json:"county"`
}

// Location is one physical site of a company.
type Location struct {
	Address Address `json:"address"`
	// FeaturedImage is optional; empty when the location has no image.
	FeaturedImage string `json:"featuredImage"`
}

// CompanyDetails carries the descriptive fields of a company.
type CompanyDetails struct {
	// BusinessType is the category key, e.g. "cafenea" or "restaurant".
	BusinessType string `json:"businessType"`
	Name         string `json:"name"`
}

// Company is a business listed in the catalog.
type Company struct {
	ID ID `json:"id"`
	// Slug is the unique URL-safe identifier of the company.
	Slug           string         `json:"slug"`
	CompanyDetails CompanyDetails `json:"companyDetails"`
	Locations      []Location     `json:"locations"`

	raw json.RawMessage
}

type company Company

// UnmarshalJSON decodes the fields the engine reads and keeps the full record.
func (c *Company) UnmarshalJSON(data []byte) error {
	var v company
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*c = Company(v)
	c.raw = keepRaw(data)
	return nil
}

// MarshalJSON re-emits the stored record unchanged when there is one.
func (c Company) MarshalJSON() ([]byte, error) {
	if len(c.raw) > 0 {
		return c.raw, nil
	}
	return json.Marshal(company(c))
}

// FirstImage returns the featured image of the first location, if any.
func (c Company) FirstImage() string {
	if len(c.Locations) == 0 {
		return ""
	}
	return c.Locations[0].FeaturedImage
}

func keepRaw(data []byte) json.RawMessage {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	return append(json.RawMessage(nil), data...)
}
