package history

import (
	"testing"
	"time"

	"github.com/dewakost/dewakost/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuery(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)
	day1 := time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC) // 15 March in WIB
	day2 := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	log := []domain.LogEntry{
		{ID: "3", KostName: "Kost Melati", Details: "Updated price.", Timestamp: day1, Username: "admin"},
		{ID: "2", KostName: "Kost Anggrek", Details: "Added a new property.", Timestamp: day2, Username: "dewi"},
		{ID: "1", KostName: "Griya Mawar", Timestamp: day2},
	}

	ids := func(entries []domain.LogEntry) []string {
		out := make([]string, 0, len(entries))
		for _, e := range entries {
			out = append(out, e.ID)
		}
		return out
	}

	assert.Equal(t, []string{"3", "2", "1"}, ids(Query(log, Filter{})))
	assert.Equal(t, []string{"3"}, ids(Query(log, Filter{Term: "melati"})))
	assert.Equal(t, []string{"2"}, ids(Query(log, Filter{Term: "DEWI"})))
	assert.Equal(t, []string{"2"}, ids(Query(log, Filter{Term: "new property"})))

	day, err := ParseDay("2026-03-15", jakarta)
	require.NoError(t, err)
	assert.Equal(t, []string{"3"}, ids(Query(log, Filter{Date: day, Location: jakarta})))

	day, err = ParseDay("2026-03-14", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "2", "1"}, ids(Query(log, Filter{Date: day, Location: time.UTC})))
	assert.Empty(t, Query(log, Filter{Term: "anggrek", Date: day.AddDate(0, 0, 1), Location: time.UTC}))
}

func TestParseDay(t *testing.T) {
	d, err := ParseDay("  ", time.UTC)
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	_, err = ParseDay("14/03/2026", time.UTC)
	assert.Error(t, err)
}

func TestTimeAgo(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		ago  time.Duration
		want string
	}{
		{10 * time.Second, "10 seconds ago"},
		{1 * time.Second, "1 second ago"},
		{5 * time.Minute, "5 minutes ago"},
		{3 * time.Hour, "3 hours ago"},
		{48 * time.Hour, "2 days ago"},
		{10 * 24 * time.Hour, "March 4, 2026 12:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TimeAgo(now.Add(-tt.ago), now))
	}
}
