package mailer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListingEventEmail(t *testing.T) {
	ev := ListingEvent{
		Type:       ListingDeleted,
		ListingID:  "10006546",
		Name:       "Ribeira Charming Duplex",
		Actor:      "admin",
		OccurredAt: time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC),
	}

	job, err := ListingEventEmail(ev, "ops@example.com", "airbnb")
	require.NoError(t, err)
	assert.Equal(t, "ops@example.com", job.To)
	assert.Equal(t, "[airbnb] Listing deleted: Ribeira Charming Duplex", job.Subject)
	assert.Contains(t, job.Text, "Listing 10006546 (\"Ribeira Charming Duplex\") was deleted.")
	assert.Contains(t, job.Text, "01 March 2024, 10:30 UTC")
	assert.Contains(t, job.HTML, "<strong>10006546</strong>")
}

func TestListingEventEmail_Defaults(t *testing.T) {
	job, err := ListingEventEmail(ListingEvent{Type: ListingCreated, ListingID: "x1"}, "a@b.c", "")
	require.NoError(t, err)
	assert.Equal(t, "[Airbnb] Listing created: x1", job.Subject)
	assert.Contains(t, job.Text, "By:   unknown")
}
