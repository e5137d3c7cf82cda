package contacts

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// ErrNotFound is returned when no contact exists for a team. A lookup
// either succeeds with at least one valid email or fails with this error;
// it never returns an empty list.
var ErrNotFound = errors.New("no contact found for team")

// Directory resolves a team name to its contact email addresses.
type Directory interface {
	Lookup(teamName string) ([]string, error)
}

const titleLine = "Team Contacts"

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)

// ValidEmail reports whether s looks like an email address. Used as a
// filter on parsed contact data, never as a hard error.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

type entry struct {
	team   string
	emails []string
}

// FileDirectory is the primary Directory implementation, backed by a
// tab-separated contacts file loaded once at construction. Entries keep
// their file order so fuzzy matches resolve deterministically.
type FileDirectory struct {
	entries []entry
}

// LoadFile reads and parses the contacts file at path.
func LoadFile(path string) (*FileDirectory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading contacts file: %w", err)
	}
	return Parse(string(data))
}

// Parse builds a FileDirectory from raw contacts file content. The format
// is an optional "Team Contacts" title line, a tab-separated header row
// naming at least a "Team" column (and optionally "Captain Email" and
// "Vice Captain Email"), then one data row per team. Rows without a team
// name or without any valid email are skipped.
func Parse(content string) (*FileDirectory, error) {
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")

	if len(lines) > 0 && strings.TrimSpace(lines[0]) == titleLine {
		lines = lines[1:]
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("contacts file has no header row")
	}

	headers := strings.Split(strings.TrimSpace(lines[0]), "\t")
	teamIdx, captainIdx, viceIdx := -1, -1, -1
	for i, h := range headers {
		switch strings.TrimSpace(h) {
		case "Team":
			teamIdx = i
		case "Captain Email":
			captainIdx = i
		case "Vice Captain Email":
			viceIdx = i
		}
	}
	if teamIdx == -1 {
		return nil, fmt.Errorf("contacts file header has no Team column")
	}

	d := &FileDirectory{}
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) <= teamIdx {
			continue
		}
		team := strings.TrimSpace(fields[teamIdx])
		if team == "" {
			continue
		}

		var emails []string
		for _, idx := range []int{captainIdx, viceIdx} {
			if idx == -1 || len(fields) <= idx {
				continue
			}
			addr := strings.TrimSpace(fields[idx])
			if addr != "" && ValidEmail(addr) {
				emails = append(emails, addr)
			}
		}
		if len(emails) == 0 {
			continue
		}
		d.entries = append(d.entries, entry{team: team, emails: emails})
	}

	return d, nil
}

// Lookup returns the contact emails for a team. An exact name match wins;
// otherwise the first entry (in file order) whose name contains the query
// or is contained by it, case-insensitively, is used.
func (d *FileDirectory) Lookup(teamName string) ([]string, error) {
	for _, e := range d.entries {
		if e.team == teamName {
			return e.emails, nil
		}
	}

	query := strings.ToLower(teamName)
	for _, e := range d.entries {
		stored := strings.ToLower(e.team)
		if strings.Contains(stored, query) || strings.Contains(query, stored) {
			return e.emails, nil
		}
	}

	return nil, ErrNotFound
}

// AllContacts returns the full team-to-emails table.
func (d *FileDirectory) AllContacts() map[string][]string {
	out := make(map[string][]string, len(d.entries))
	for _, e := range d.entries {
		out[e.team] = e.emails
	}
	return out
}

// Teams lists the team names in file order.
func (d *FileDirectory) Teams() []string {
	names := make([]string, 0, len(d.entries))
	for _, e := range d.entries {
		names = append(names, e.team)
	}
	return names
}
