package domain

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
)

type Gender string

const (
	GenderPutra  Gender = "Putra"  // male tenants
	GenderPutri  Gender = "Putri"  // female tenants
	GenderCampur Gender = "Campur" // mixed
)

// Genders lists the accepted gender categories in display order
var Genders = []Gender{GenderPutra, GenderPutri, GenderCampur}

// Valid returns true if g is one of the fixed categories
func (g Gender) Valid() bool {
	return slices.Contains(Genders, g)
}

// ParseGender matches s case-insensitively against the known categories
func ParseGender(s string) (Gender, error) {
	for _, g := range Genders {
		if strings.EqualFold(string(g), strings.TrimSpace(s)) {
			return g, nil
		}
	}
	return "", fmt.Errorf("unknown gender %q (want Putra, Putri or Campur)", s)
}

// Kost is a boarding-house listing
type Kost struct {
	ID             string   `json:"id" yaml:"id"`
	Name           string   `json:"name" yaml:"name" validate:"required"`
	Area           string   `json:"area" yaml:"area" validate:"required"`
	Address        string   `json:"address" yaml:"address" validate:"required"`
	PricePerMonth  int64    `json:"pricePerMonth" yaml:"price_per_month" validate:"gte=0"`
	Rating         float64  `json:"rating" yaml:"rating" validate:"gte=0,lte=5"`
	ImageURLs      []string `json:"imageUrls" yaml:"image_urls" validate:"dive,url"`
	Description    string   `json:"description" yaml:"description"`
	Facilities     []string `json:"facilities" yaml:"facilities"`
	NearbyCampuses []string `json:"nearbyCampuses" yaml:"nearby_campuses"`
	ContactLink    string   `json:"contactLink,omitempty" yaml:"contact_link" validate:"omitempty,url"`
	IsArchived     bool     `json:"isArchived,omitempty" yaml:"is_archived"`
	Gender         Gender   `json:"gender" yaml:"gender" validate:"oneof=Putra Putri Campur"`
}

// NewID returns a fresh time-ordered identifier. Ids are never reused.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Normalize trims free-text fields and drops blank tags
func (k *Kost) Normalize() {
	k.Name = strings.TrimSpace(k.Name)
	k.Area = strings.TrimSpace(k.Area)
	k.Address = strings.TrimSpace(k.Address)
	k.Description = strings.TrimSpace(k.Description)
	k.ContactLink = strings.TrimSpace(k.ContactLink)
	k.ImageURLs = compactTags(k.ImageURLs)
	k.Facilities = compactTags(k.Facilities)
	k.NearbyCampuses = compactTags(k.NearbyCampuses)
}

// Validate returns an error if the kost is invalid
func (k *Kost) Validate() error {
	return validateStruct(k)
}

// Clone returns a deep copy so snapshots never alias live slices
func (k Kost) Clone() Kost {
	k.ImageURLs = slices.Clone(k.ImageURLs)
	k.Facilities = slices.Clone(k.Facilities)
	k.NearbyCampuses = slices.Clone(k.NearbyCampuses)
	return k
}

// Equal reports whether every stored field of k and o matches
func (k Kost) Equal(o Kost) bool {
	return k.ID == o.ID &&
		k.Name == o.Name &&
		k.Area == o.Area &&
		k.Address == o.Address &&
		k.PricePerMonth == o.PricePerMonth &&
		k.Rating == o.Rating &&
		k.Description == o.Description &&
		k.ContactLink == o.ContactLink &&
		k.IsArchived == o.IsArchived &&
		k.Gender == o.Gender &&
		slices.Equal(k.ImageURLs, o.ImageURLs) &&
		slices.Equal(k.Facilities, o.Facilities) &&
		slices.Equal(k.NearbyCampuses, o.NearbyCampuses)
}

// HasFacility reports whether the kost lists the given facility
func (k *Kost) HasFacility(f string) bool {
	return slices.Contains(k.Facilities, f)
}

// NearCampus reports whether the kost lists the given campus
func (k *Kost) NearCampus(c string) bool {
	return slices.Contains(k.NearbyCampuses, c)
}

func compactTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || slices.Contains(out, t) {
			continue
		}
		out = append(out, t)
	}
	return out
}
