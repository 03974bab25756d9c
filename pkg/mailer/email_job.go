package mailer

import "time"

// Listing event types carried on the notification queue
const (
	ListingCreated = "listing.created"
	ListingUpdated = "listing.updated"
	ListingDeleted = "listing.deleted"
)

// ListingEvent is the JSON payload put on the RabbitMQ queue after a listing mutation.
type ListingEvent struct {
	Type       string    `json:"type"`
	ListingID  string    `json:"listing_id"`
	Name       string    `json:"name,omitempty"`
	Actor      string    `json:"actor,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EmailJob is a rendered message ready for delivery
type EmailJob struct {
	To      string
	Subject string
	Text    string
	HTML    string
}
