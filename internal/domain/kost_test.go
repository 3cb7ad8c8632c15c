package domain

import (
	"strings"
	"testing"
)

func validKost() Kost {
	return Kost{
		ID:            NewID(),
		Name:          "Kost Melati",
		Area:          "Lowokwaru",
		Address:       "Jl. Kertosariro 12",
		PricePerMonth: 700000,
		Rating:        4.5,
		ImageURLs:     []string{"https://img.example/1.jpg"},
		Gender:        GenderPutra,
	}
}

func TestKost_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(k *Kost)
		wantErr string
	}{
		{name: "valid", mutate: func(k *Kost) {}},
		{name: "missing name", mutate: func(k *Kost) { k.Name = "" }, wantErr: "name"},
		{name: "negative price", mutate: func(k *Kost) { k.PricePerMonth = -1 }, wantErr: "pricePerMonth"},
		{name: "rating too high", mutate: func(k *Kost) { k.Rating = 5.5 }, wantErr: "rating"},
		{name: "bad gender", mutate: func(k *Kost) { k.Gender = "Semua" }, wantErr: "gender"},
		{name: "bad image url", mutate: func(k *Kost) { k.ImageURLs = []string{"not a url"} }, wantErr: "imageUrls"},
		{name: "bad contact link", mutate: func(k *Kost) { k.ContactLink = "wa" }, wantErr: "contactLink"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := validKost()
			tt.mutate(&k)
			err := k.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error mentioning %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestKost_Normalize(t *testing.T) {
	k := Kost{
		Name:       "  Kost Melati ",
		Facilities: []string{"WiFi", " ", "WiFi", " AC "},
	}
	k.Normalize()

	if k.Name != "Kost Melati" {
		t.Errorf("expected trimmed name, got %q", k.Name)
	}
	if len(k.Facilities) != 2 || k.Facilities[0] != "WiFi" || k.Facilities[1] != "AC" {
		t.Errorf("unexpected facilities: %v", k.Facilities)
	}
	if k.ImageURLs != nil {
		t.Errorf("expected nil images to stay nil")
	}
}

func TestKost_Clone(t *testing.T) {
	k := validKost()
	c := k.Clone()
	c.ImageURLs[0] = "changed"

	if k.ImageURLs[0] == "changed" {
		t.Error("clone shares image slice with original")
	}
}

func TestKost_Equal(t *testing.T) {
	base := validKost()
	if !base.Equal(base.Clone()) {
		t.Fatal("a clone must be equal")
	}

	withNil := base
	withNil.Facilities = nil
	withEmpty := base
	withEmpty.Facilities = []string{}
	if !withNil.Equal(withEmpty) {
		t.Error("nil and empty tag lists are equal")
	}

	changes := map[string]func(k *Kost){
		"contact link": func(k *Kost) { k.ContactLink = "https://wa.me/628123456789" },
		"archived":     func(k *Kost) { k.IsArchived = true },
		"image order":  func(k *Kost) { k.ImageURLs = append(k.ImageURLs, "https://img.example/2.jpg") },
		"rating":       func(k *Kost) { k.Rating = 4 },
	}
	for name, mutate := range changes {
		t.Run(name, func(t *testing.T) {
			k := base.Clone()
			mutate(&k)
			if base.Equal(k) {
				t.Errorf("expected %s change to be detected", name)
			}
		})
	}
}

func TestParseGender(t *testing.T) {
	g, err := ParseGender(" putri ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g != GenderPutri {
		t.Errorf("expected Putri, got %q", g)
	}
	if _, err := ParseGender("Semua"); err == nil {
		t.Error("expected error for filter-only value")
	}
}

func TestNewID_Unique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := NewID()
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
}

func TestAccount_Validate(t *testing.T) {
	if err := NewAccount(" dewi ", "rahasia").Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := NewAccount("ab", "rahasia").Validate(); err == nil {
		t.Error("expected short username to fail")
	}
	if err := NewAccount("dewi", "12345").Validate(); err == nil {
		t.Error("expected short password to fail")
	}
}

func TestLogEntry_CanRestore(t *testing.T) {
	e := LogEntry{Action: ActionDelete}
	if !e.CanRestore() {
		t.Error("expected delete entry to be restorable")
	}
	e.IsRestored = true
	if e.CanRestore() {
		t.Error("expected restored entry to be final")
	}
	r := LogEntry{Action: ActionRestore}
	if r.CanRestore() {
		t.Error("expected restore entry to be final")
	}
}
