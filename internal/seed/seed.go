// Package seed holds the listings and lookup lists a fresh install starts with.
package seed

import (
	_ "embed"
	"fmt"
	"slices"
	"sync"

	"github.com/dewakost/dewakost/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var raw []byte

// Data is the initial content of every collection
type Data struct {
	Kosts       []domain.Kost      `yaml:"kosts"`
	Campuses    []string           `yaml:"campuses"`
	Facilities  []string           `yaml:"facilities"`
	SocialLinks domain.SocialLinks `yaml:"social_links"`
}

var (
	once   sync.Once
	parsed Data
	err    error
)

// Load parses the embedded seed file. Callers get their own copy.
func Load() (Data, error) {
	once.Do(func() {
		err = yaml.Unmarshal(raw, &parsed)
		if err != nil {
			err = fmt.Errorf("failed to parse seed data: %w", err)
			return
		}
		for i := range parsed.Kosts {
			if verr := parsed.Kosts[i].Validate(); verr != nil {
				err = fmt.Errorf("invalid seed kost %q: %w", parsed.Kosts[i].Name, verr)
				return
			}
		}
	})
	if err != nil {
		return Data{}, err
	}

	d := Data{
		Kosts:       make([]domain.Kost, len(parsed.Kosts)),
		Campuses:    slices.Clone(parsed.Campuses),
		Facilities:  slices.Clone(parsed.Facilities),
		SocialLinks: parsed.SocialLinks,
	}
	for i, k := range parsed.Kosts {
		d.Kosts[i] = k.Clone()
	}
	return d, nil
}

// MustLoad is Load for the embedded file, which is checked by tests
func MustLoad() Data {
	d, err := Load()
	if err != nil {
		panic(err)
	}
	return d
}
