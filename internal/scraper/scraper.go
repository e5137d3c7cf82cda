package scraper

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/spartaxi/matchday/internal/config"
	"github.com/spartaxi/matchday/internal/fixture"
	"github.com/spartaxi/matchday/internal/logger"
)

const (
	landmarkText = "UPCOMING MATCHES"
	// How many ancestors to climb from the landmark while looking for the
	// container that holds the fixture cards.
	maxAncestorDepth = 10
)

// Placeholder tokens that appear between the two team links in a card.
var placeholderTokens = map[string]bool{
	"v":      true,
	"vs":     true,
	"versus": true,
}

// Scraper fetches the league fixtures page and extracts upcoming home games.
type Scraper struct {
	client    *http.Client
	url       string
	teamName  string
	userAgent string
	now       func() time.Time
}

// New creates a Scraper from the run configuration.
func New(cfg *config.Config) *Scraper {
	return &Scraper{
		client: &http.Client{
			Timeout: cfg.RequestTimeout(),
		},
		url:       cfg.FixturesURL,
		teamName:  cfg.TeamName,
		userAgent: cfg.UserAgent,
		now:       time.Now,
	}
}

// FetchFixtures fetches the fixtures page and returns the future Sunday
// home games found in the upcoming-matches section.
func (s *Scraper) FetchFixtures() ([]*fixture.GameRecord, error) {
	req, err := http.NewRequest("GET", s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching fixtures page: %w", err)
	}
	defer resp.Body.Close()
	logger.RecordTiming("scrape.fetch", time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return s.parseFixtures(resp.Body)
}

// parseFixtures extracts game records from the fixtures page HTML.
//
// The upcoming-matches section is located by its landmark label; a missing
// landmark means "no games found", not an error. Individual cards that fail
// to parse are logged and skipped so one broken card never aborts the rest.
func (s *Scraper) parseFixtures(r io.Reader) ([]*fixture.GameRecord, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	section := findUpcomingSection(doc)
	if section == nil {
		logger.Warn("could not locate upcoming matches section", nil)
		return []*fixture.GameRecord{}, nil
	}

	now := s.now()
	games := make([]*fixture.GameRecord, 0)

	section.Find("div.schedule-all").Each(func(i int, card *goquery.Selection) {
		rec, err := s.parseCard(card)
		if err != nil {
			logger.Warn("skipping fixture card", logger.Fields{
				"card":   i + 1,
				"reason": err.Error(),
			})
			return
		}

		if !rec.IsSunday() || !rec.IsFuture(now) {
			logger.Debug("fixture is not an upcoming Sunday game", logger.Fields{
				"opponent": rec.Opponent,
				"date":     rec.Date.Format("2006-01-02"),
				"weekday":  rec.Date.Weekday().String(),
			})
			return
		}

		games = append(games, rec)
		logger.IncrCounter("fixtures.extracted")
	})

	logger.Info("extracted upcoming Sunday games", logger.Fields{
		"count": len(games),
		"team":  s.teamName,
	})
	return games, nil
}

// findUpcomingSection locates the landmark label and climbs the containment
// hierarchy until it reaches an ancestor that also holds fixture cards.
func findUpcomingSection(doc *goquery.Document) *goquery.Selection {
	var section *goquery.Selection

	doc.Find("span").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if !strings.Contains(strings.ToUpper(sel.Text()), landmarkText) {
			return true
		}

		container := sel
		for depth := 0; depth < maxAncestorDepth; depth++ {
			container = container.Parent()
			if container.Length() == 0 {
				break
			}
			if container.Find("div.schedule-all").Length() > 0 {
				section = container
				return false
			}
		}
		return true
	})

	return section
}

// parseCard extracts one game record from a fixture card.
func (s *Scraper) parseCard(card *goquery.Selection) (*fixture.GameRecord, error) {
	date, err := parseCardDate(card)
	if err != nil {
		return nil, err
	}

	names, logos, err := parseCardTeams(card)
	if err != nil {
		return nil, err
	}

	// Decide which side is ours; the other link is the opponent. Logos
	// follow the team links in positional order.
	var opponent, opponentLogo, teamLogo string
	for i, name := range names {
		var logo string
		if i < len(logos) {
			logo = logos[i]
		}
		if strings.EqualFold(name, s.teamName) {
			teamLogo = logo
		} else {
			opponent = name
			opponentLogo = logo
		}
	}

	if opponent == "" {
		return nil, fmt.Errorf("no opponent found among teams %v", names)
	}
	if teamLogo == "" && !containsFold(names, s.teamName) {
		return nil, fmt.Errorf("own team %q not in card (teams %v)", s.teamName, names)
	}

	return &fixture.GameRecord{
		Opponent:        opponent,
		Date:            date,
		OpponentLogoURL: opponentLogo,
		TeamLogoURL:     teamLogo,
	}, nil
}

// parseCardDate reads the card's date block: h4 weekday, h2 day of month,
// h5 "Mon YYYY".
func parseCardDate(card *goquery.Selection) (time.Time, error) {
	timeDiv := card.Find("div.sch-time").First()
	if timeDiv.Length() == 0 {
		return time.Time{}, fmt.Errorf("card has no sch-time block")
	}

	weekday := strings.TrimSpace(timeDiv.Find("h4").First().Text())
	day := strings.TrimSpace(timeDiv.Find("h2").First().Text())
	monthYear := strings.TrimSpace(timeDiv.Find("h5").First().Text())

	if weekday == "" || day == "" || monthYear == "" {
		return time.Time{}, fmt.Errorf("incomplete date block: weekday=%q day=%q monthYear=%q",
			weekday, day, monthYear)
	}

	return fixture.ParseCardDate(weekday, day, monthYear)
}

// parseCardTeams reads the team links and logo images from a card,
// discarding placeholder tokens like "vs". Exactly two real team names are
// required; logos are optional and associated positionally.
func parseCardTeams(card *goquery.Selection) (names []string, logos []string, err error) {
	textDiv := card.Find("div.schedule-text h3").First()
	if textDiv.Length() == 0 {
		return nil, nil, fmt.Errorf("card has no schedule-text heading")
	}

	textDiv.Find("a").Each(func(_ int, link *goquery.Selection) {
		name := strings.TrimSpace(link.Text())
		if name == "" || placeholderTokens[strings.ToLower(name)] {
			return
		}
		names = append(names, name)
	})

	if len(names) != 2 {
		return nil, nil, fmt.Errorf("expected 2 team names, got %d (%v)", len(names), names)
	}

	card.Find("div.schedule-logo img").Each(func(_ int, img *goquery.Selection) {
		src, _ := img.Attr("src")
		logos = append(logos, src)
	})

	return names, logos, nil
}

func containsFold(names []string, target string) bool {
	for _, n := range names {
		if strings.EqualFold(n, target) {
			return true
		}
	}
	return false
}
