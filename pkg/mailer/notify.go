package mailer

import (
	"strings"

	mailtpl "github.com/oksasatya/airbnb-listing-service/pkg/mailer/templates"
)

// ListingEventEmail renders ev into a message addressed to to
func ListingEventEmail(ev ListingEvent, to, appName string) (EmailJob, error) {
	action := strings.TrimPrefix(ev.Type, "listing.")
	subject, text, html, err := mailtpl.Render(mailtpl.ListingEvent, mailtpl.ListingEventData{
		AppName:    appName,
		Action:     action,
		ListingID:  ev.ListingID,
		Name:       ev.Name,
		Actor:      ev.Actor,
		OccurredAt: ev.OccurredAt,
	})
	if err != nil {
		return EmailJob{}, err
	}
	return EmailJob{To: to, Subject: subject, Text: text, HTML: html}, nil
}
