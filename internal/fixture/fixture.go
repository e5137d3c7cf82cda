package fixture

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// GameRecord represents a single fixture extracted from the league
// schedule page. Records are immutable after construction and discarded
// once the invitation for them has been drafted.
type GameRecord struct {
	Opponent        string    `json:"opponent"`
	Date            time.Time `json:"date"` // date only, local midnight
	OpponentLogoURL string    `json:"opponent_logo_url,omitempty"`
	TeamLogoURL     string    `json:"team_logo_url,omitempty"`
}

var monthsByAbbr = map[string]time.Month{
	"Jan": time.January, "Feb": time.February, "Mar": time.March,
	"Apr": time.April, "May": time.May, "Jun": time.June,
	"Jul": time.July, "Aug": time.August, "Sep": time.September,
	"Oct": time.October, "Nov": time.November, "Dec": time.December,
}

// ParseCardDate reconstructs a calendar date from the three parts of a
// fixture card's date block: a weekday name ("Sunday"), a day of month
// ("27"), and a month-abbreviation-plus-year ("Jul 2025"). The weekday of
// the reconstructed date must match the card's weekday label; a mismatch
// means the card is self-inconsistent and is an error.
func ParseCardDate(weekday, day, monthYear string) (time.Time, error) {
	weekday = strings.TrimSpace(weekday)
	day = strings.TrimSpace(day)

	parts := strings.Fields(monthYear)
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("malformed month-year %q", monthYear)
	}

	month, ok := monthsByAbbr[parts[0]]
	if !ok {
		return time.Time{}, fmt.Errorf("unknown month abbreviation %q", parts[0])
	}

	year, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing year %q: %w", parts[1], err)
	}

	d, err := strconv.Atoi(day)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing day %q: %w", day, err)
	}

	date := time.Date(year, month, d, 0, 0, 0, 0, time.Local)
	if date.Day() != d || date.Month() != month {
		// time.Date normalizes out-of-range days (e.g. Feb 30)
		return time.Time{}, fmt.Errorf("day %d does not exist in %s %d", d, parts[0], year)
	}

	if !strings.EqualFold(date.Weekday().String(), weekday) {
		return time.Time{}, fmt.Errorf("weekday mismatch: card says %s, %s is a %s",
			weekday, date.Format("2006-01-02"), date.Weekday())
	}

	return date, nil
}

// IsFuture reports whether the game date falls strictly after the date
// part of now.
func (g *GameRecord) IsFuture(now time.Time) bool {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, g.Date.Location())
	return g.Date.After(today)
}

// IsSunday reports whether the game falls on a Sunday.
func (g *GameRecord) IsSunday() bool {
	return g.Date.Weekday() == time.Sunday
}

// DisplayDate formats the game date for the invitation body, e.g.
// "Sunday, July 27".
func (g *GameRecord) DisplayDate() string {
	return g.Date.Format("Monday, January 2")
}

// Subject renders the invitation subject line from a format string with
// an {OPPONENT_TEAM} placeholder.
func (g *GameRecord) Subject(format string) string {
	return strings.ReplaceAll(format, "{OPPONENT_TEAM}", g.Opponent)
}
