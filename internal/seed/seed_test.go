package seed

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	d, err := Load()
	require.NoError(t, err)

	assert.NotEmpty(t, d.Kosts)
	assert.True(t, slices.IsSorted(d.Campuses))
	assert.True(t, slices.IsSorted(d.Facilities))
	assert.NotEmpty(t, d.SocialLinks.WhatsApp)

	ids := map[string]bool{}
	for _, k := range d.Kosts {
		assert.False(t, ids[k.ID], "duplicate id %s", k.ID)
		ids[k.ID] = true

		for _, f := range k.Facilities {
			assert.Contains(t, d.Facilities, f, "kost %s", k.Name)
		}
		for _, c := range k.NearbyCampuses {
			assert.Contains(t, d.Campuses, c, "kost %s", k.Name)
		}
	}
}

func TestLoad_ReturnsCopies(t *testing.T) {
	a := MustLoad()
	a.Kosts[0].Name = "changed"
	a.Campuses[0] = "changed"

	b := MustLoad()
	assert.NotEqual(t, "changed", b.Kosts[0].Name)
	assert.NotEqual(t, "changed", b.Campuses[0])
}
