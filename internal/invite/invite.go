package invite

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spartaxi/matchday/internal/calendar"
	"github.com/spartaxi/matchday/internal/config"
	"github.com/spartaxi/matchday/internal/fixture"
	"github.com/spartaxi/matchday/internal/gmail"
	"github.com/spartaxi/matchday/internal/logger"
)

// Template placeholders for the two team logos. Date, opponent, and map
// link use {DATE}, {OPPONENT_TEAM}, and {MAP_LINK}.
const (
	teamLogoPlaceholder     = "{TEAM_LOGO}"
	opponentLogoPlaceholder = "{OPPONENT_LOGO}"
)

const logoFetchTimeout = 10 * time.Second

// Drafter renders the invitation email for a game and stores it as a
// Gmail draft. Nothing is ever sent; a human reviews and sends the draft.
type Drafter struct {
	cfg        *config.Config
	creator    gmail.DraftCreator
	httpClient *http.Client
}

// NewDrafter creates a Drafter backed by the given draft store.
func NewDrafter(cfg *config.Config, creator gmail.DraftCreator) *Drafter {
	return &Drafter{
		cfg:     cfg,
		creator: creator,
		httpClient: &http.Client{
			Timeout: logoFetchTimeout,
		},
	}
}

// Draft renders and stores one invitation draft for the game. Any failure
// applies to this game only; the caller continues with the rest.
func (d *Drafter) Draft(game *fixture.GameRecord, recipients []string) error {
	tmpl, err := os.ReadFile(d.cfg.TemplateFile)
	if err != nil {
		return fmt.Errorf("loading email template: %w", err)
	}

	html := renderTemplate(string(tmpl), game.DisplayDate(), game.Opponent, d.cfg.MapLink)
	html = d.embedLogo(html, teamLogoPlaceholder, game.TeamLogoURL)
	html = d.embedLogo(html, opponentLogoPlaceholder, game.OpponentLogoURL)
	html = d.embedMapImage(html)

	// Reference only: the draft is created now, sending stays manual
	sendAt := SendTime(game.Date, d.cfg.SendWeekday(), d.cfg.SendHour)
	logger.Info("intended send time for invitation", logger.Fields{
		"opponent": game.Opponent,
		"game":     game.Date.Format("2006-01-02"),
		"send_at":  sendAt.Format(time.RFC3339),
	})

	ics := calendar.GenerateICS(game, d.cfg.TeamName, d.cfg.MapLink)
	raw, err := BuildMessage(recipients, d.cfg.CCList(), game.Subject(d.cfg.SubjectFormat), html, ics)
	if err != nil {
		return fmt.Errorf("building message: %w", err)
	}

	draftID, err := d.creator.CreateDraft(base64.URLEncoding.EncodeToString(raw))
	if err != nil {
		return fmt.Errorf("saving draft: %w", err)
	}

	logger.Info("invitation saved as draft", logger.Fields{
		"draft_id":   draftID,
		"opponent":   game.Opponent,
		"recipients": strings.Join(recipients, ", "),
	})
	logger.IncrCounter("drafts.created")
	return nil
}

// renderTemplate substitutes the textual placeholders.
func renderTemplate(tmpl, displayDate, opponent, mapLink string) string {
	out := strings.ReplaceAll(tmpl, "{DATE}", displayDate)
	out = strings.ReplaceAll(out, "{OPPONENT_TEAM}", opponent)
	out = strings.ReplaceAll(out, "{MAP_LINK}", mapLink)
	return out
}

// embedLogo replaces a logo src placeholder with the fetched image inlined
// as a base64 data URI. If the fetch fails the remote URL is substituted
// unchanged, so the email still shows the logo for clients that load
// remote images.
func (d *Drafter) embedLogo(html, placeholder, logoURL string) string {
	target := fmt.Sprintf("src=%q", placeholder)
	if logoURL == "" {
		logger.Warn("no logo URL for placeholder", logger.Fields{"placeholder": placeholder})
		return html
	}

	data, mimeType, err := d.fetchImage(logoURL)
	if err != nil {
		logger.Warn("falling back to remote logo URL", logger.Fields{
			"url":    logoURL,
			"reason": err.Error(),
		})
		return strings.Replace(html, target, fmt.Sprintf("src=%q", logoURL), 1)
	}

	dataURI := fmt.Sprintf("src=\"data:%s;base64,%s\"",
		mimeType, base64.StdEncoding.EncodeToString(data))
	return strings.Replace(html, target, dataURI, 1)
}

// embedMapImage inlines the local ground-map image if it exists on disk;
// otherwise the template's reference is left as-is.
func (d *Drafter) embedMapImage(html string) string {
	if d.cfg.MapImagePath == "" {
		return html
	}

	data, err := os.ReadFile(d.cfg.MapImagePath)
	if err != nil {
		logger.Warn("map image not embedded", logger.Fields{
			"path":   d.cfg.MapImagePath,
			"reason": err.Error(),
		})
		return html
	}

	target := fmt.Sprintf("src=%q", d.cfg.MapImagePath)
	dataURI := fmt.Sprintf("src=\"data:%s;base64,%s\"",
		mimeTypeForPath(d.cfg.MapImagePath), base64.StdEncoding.EncodeToString(data))
	return strings.Replace(html, target, dataURI, 1)
}

func (d *Drafter) fetchImage(url string) ([]byte, string, error) {
	resp, err := d.httpClient.Get(url)
	if err != nil {
		return nil, "", fmt.Errorf("fetching image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("reading image: %w", err)
	}

	return data, mimeTypeForPath(url), nil
}

func mimeTypeForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	default:
		return "image/jpeg"
	}
}

// SendTime returns the intended send moment for an invitation: the given
// weekday strictly before the game date, at hour o'clock local time. For a
// Sunday game and a Tuesday send day that is the Tuesday five days earlier.
func SendTime(gameDate time.Time, day time.Weekday, hour int) time.Time {
	daysBefore := (int(gameDate.Weekday()-day) + 7) % 7
	if daysBefore == 0 {
		daysBefore = 7
	}
	d := gameDate.AddDate(0, 0, -daysBefore)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, time.Local)
}
