package contacts

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spartaxi/matchday/internal/logger"
)

// Generator produces a text completion for a prompt. Satisfied by
// *ollama.Client.
type Generator interface {
	Generate(prompt string) (string, error)
}

// LLMDirectory is the best-effort fallback Directory: it hands the raw
// contacts file to a local language model and parses the free-text reply.
// The model output is untrusted; anything unparseable resolves to
// ErrNotFound rather than an escalated failure.
type LLMDirectory struct {
	gen          Generator
	contactsFile string
}

// NewLLMDirectory creates a fallback directory reading the contacts file
// at each lookup (the file is small and the model call dominates).
func NewLLMDirectory(gen Generator, contactsFile string) *LLMDirectory {
	return &LLMDirectory{
		gen:          gen,
		contactsFile: contactsFile,
	}
}

// Lookup asks the model for the team's emails. The reply is either the
// literal NOT_FOUND sentinel or a comma-separated email list; everything
// else is filtered through ValidEmail.
func (d *LLMDirectory) Lookup(teamName string) ([]string, error) {
	content, err := os.ReadFile(d.contactsFile)
	if err != nil {
		return nil, fmt.Errorf("reading contacts file: %w", err)
	}

	reply, err := d.gen.Generate(extractionPrompt(teamName, string(content)))
	if err != nil {
		return nil, fmt.Errorf("asking model for %q: %w", teamName, err)
	}

	emails := parseEmailList(reply)
	if len(emails) == 0 {
		return nil, ErrNotFound
	}
	return emails, nil
}

// AllContacts asks the model to extract the entire table. The reply is
// expected as JSON; if that fails, a line-oriented "Name: email, email"
// heuristic is tried before giving up with an empty table.
func (d *LLMDirectory) AllContacts() (map[string][]string, error) {
	content, err := os.ReadFile(d.contactsFile)
	if err != nil {
		return nil, fmt.Errorf("reading contacts file: %w", err)
	}

	reply, err := d.gen.Generate(allContactsPrompt(string(content)))
	if err != nil {
		return nil, fmt.Errorf("asking model for all contacts: %w", err)
	}

	var raw map[string][]string
	if err := json.Unmarshal([]byte(reply), &raw); err == nil {
		out := make(map[string][]string, len(raw))
		for team, emails := range raw {
			var valid []string
			for _, e := range emails {
				if ValidEmail(strings.TrimSpace(e)) {
					valid = append(valid, strings.TrimSpace(e))
				}
			}
			if len(valid) > 0 {
				out[team] = valid
			}
		}
		return out, nil
	}

	logger.Warn("model reply is not JSON, trying line-oriented parse", nil)
	return parseContactLines(reply), nil
}

func extractionPrompt(teamName, contactsContent string) string {
	return fmt.Sprintf(`You are a helpful assistant that extracts email addresses from contact information.

Given the following contacts file content, find ALL email addresses for the team %q.

Contacts file content:
%s

Instructions:
1. Look for the team name %q (case-insensitive, partial matches are okay)
2. Extract ALL email addresses associated with that team
3. Return the emails as a comma-separated list, nothing else
4. If no emails are found, return "NOT_FOUND"

Example output:
email1@example.com,email2@example.com,captain@example.com

Please extract ALL emails for team %q:`, teamName, contactsContent, teamName, teamName)
}

func allContactsPrompt(contactsContent string) string {
	return fmt.Sprintf(`You are a helpful assistant that extracts team names and their email addresses from contact information.

Given the following contacts file content, extract all team names and their associated email addresses.

Contacts file content:
%s

Instructions:
1. Identify all team names in the content
2. For each team, find ALL their associated email addresses
3. Return the results in JSON format like this:
{
    "Team Name 1": ["email1@example.com", "email2@example.com"],
    "Team Name 2": ["captain@example.com", "manager@example.com"]
}

Please extract all team contacts:`, contactsContent)
}

// parseEmailList parses a model reply expected to be either the NOT_FOUND
// sentinel or a comma-separated email list.
func parseEmailList(reply string) []string {
	reply = strings.TrimSpace(reply)
	if strings.EqualFold(reply, "NOT_FOUND") {
		return nil
	}

	var emails []string
	for _, part := range strings.Split(reply, ",") {
		part = strings.TrimSpace(part)
		if ValidEmail(part) {
			emails = append(emails, part)
		}
	}
	return emails
}

// parseContactLines extracts a contacts table from free-form model output,
// looking for "Team Name: email, email" lines. Lines whose left side looks
// like an email, or is too short to be a team name, extend the previous
// team instead of starting a new one.
func parseContactLines(reply string) map[string][]string {
	contacts := make(map[string][]string)

	var currentTeam string
	var currentEmails []string

	flush := func() {
		if currentTeam != "" && len(currentEmails) > 0 {
			contacts[currentTeam] = currentEmails
		}
	}

	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(line)
		idx := strings.Index(line, ":")
		if idx < 0 {
			continue
		}

		left := strings.TrimSpace(line[:idx])
		right := strings.TrimSpace(line[idx+1:])

		startsNewTeam := !strings.Contains(left, "@") && len(left) > 3
		if startsNewTeam {
			flush()
			currentTeam = left
			currentEmails = nil
		}

		for _, e := range strings.Split(right, ",") {
			e = strings.TrimSpace(e)
			if ValidEmail(e) {
				currentEmails = append(currentEmails, e)
			}
		}
	}
	flush()

	return contacts
}
