// Package calendar renders an iCalendar (.ics) invite for a home match,
// attached to every drafted invitation so the opposing captain can add the
// game to their calendar in one click.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/spartaxi/matchday/internal/fixture"
)

// GenerateICS renders an all-day VEVENT for the game. The match itself has
// no fixed start time on the fixtures page, so the event spans the whole
// game day.
func GenerateICS(game *fixture.GameRecord, ownTeam, mapLink string) string {
	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//matchday//matchday//EN\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")
	ics.WriteString("BEGIN:VEVENT\r\n")

	ics.WriteString(fmt.Sprintf("UID:%s@matchday\r\n", eventUID(game)))
	ics.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", formatICSTime(time.Now().UTC())))

	start := game.Date
	end := start.AddDate(0, 0, 1)
	ics.WriteString(fmt.Sprintf("DTSTART;VALUE=DATE:%s\r\n", start.Format("20060102")))
	ics.WriteString(fmt.Sprintf("DTEND;VALUE=DATE:%s\r\n", end.Format("20060102")))

	summary := fmt.Sprintf("%s vs %s", ownTeam, game.Opponent)
	ics.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(summary)))

	description := fmt.Sprintf("Home match against %s on %s.", game.Opponent, game.DisplayDate())
	if mapLink != "" {
		description += fmt.Sprintf("\nGround directions: %s", mapLink)
	}
	ics.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICS(description)))

	if mapLink != "" {
		ics.WriteString(fmt.Sprintf("URL:%s\r\n", mapLink))
	}

	ics.WriteString("STATUS:CONFIRMED\r\n")
	ics.WriteString("SEQUENCE:0\r\n")
	ics.WriteString("TRANSP:OPAQUE\r\n")

	ics.WriteString("END:VEVENT\r\n")
	ics.WriteString("END:VCALENDAR\r\n")

	return ics.String()
}

// eventUID builds a stable identifier from the opponent and game date.
func eventUID(game *fixture.GameRecord) string {
	slug := strings.ToLower(strings.TrimSpace(game.Opponent))
	slug = strings.ReplaceAll(slug, " ", "-")
	return fmt.Sprintf("%s-%s", slug, game.Date.Format("20060102"))
}

// formatICSTime formats a time.Time as an iCalendar datetime string.
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// escapeICS escapes special characters per RFC 5545.
func escapeICS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
