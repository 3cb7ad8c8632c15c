package domain

import "strings"

// GenderAny disables the gender filter
const GenderAny Gender = "Semua"

// DefaultMaxPrice is the price ceiling of a fresh filter, in rupiah
const DefaultMaxPrice int64 = 3_000_000

// FilterState describes what the public listing is narrowed to
type FilterState struct {
	Area       string   `json:"area"`
	Campuses   []string `json:"campuses"`   // any one must match
	Facilities []string `json:"facilities"` // all must be present
	MaxPrice   int64    `json:"maxPrice"`   // inclusive; <= 0 means no ceiling
	Gender     Gender   `json:"gender"`
}

// NewFilterState returns the filter a new visitor starts with
func NewFilterState(maxPrice int64) FilterState {
	if maxPrice <= 0 {
		maxPrice = DefaultMaxPrice
	}
	return FilterState{
		MaxPrice: maxPrice,
		Gender:   GenderAny,
	}
}

// LookupKind names one of the managed option lists
type LookupKind string

const (
	LookupCampuses   LookupKind = "campuses"
	LookupFacilities LookupKind = "facilities"
)

// Valid returns true for a known lookup list
func (k LookupKind) Valid() bool {
	return k == LookupCampuses || k == LookupFacilities
}

// SocialLinks are the site-wide contact channels shown in the footer
type SocialLinks struct {
	Instagram string `json:"instagram" yaml:"instagram" validate:"omitempty,url"`
	TikTok    string `json:"tiktok" yaml:"tiktok" validate:"omitempty,url"`
	Facebook  string `json:"facebook" yaml:"facebook" validate:"omitempty,url"`
	WhatsApp  string `json:"whatsapp" yaml:"whatsapp" validate:"omitempty,url"`
}

// Normalize trims every link
func (l *SocialLinks) Normalize() {
	l.Instagram = strings.TrimSpace(l.Instagram)
	l.TikTok = strings.TrimSpace(l.TikTok)
	l.Facebook = strings.TrimSpace(l.Facebook)
	l.WhatsApp = strings.TrimSpace(l.WhatsApp)
}

// Validate returns an error if a link is set but not a URL
func (l *SocialLinks) Validate() error {
	return validateStruct(l)
}
