package scraper

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/spartaxi/matchday/internal/config"
)

func testScraper(t *testing.T) *Scraper {
	t.Helper()
	cfg := config.Default()
	s := New(cfg)
	// Pin "today" so the sample fixtures stay in the future
	s.now = func() time.Time {
		return time.Date(2025, time.July, 20, 12, 0, 0, 0, time.Local)
	}
	return s
}

func TestParseFixtures(t *testing.T) {
	data, err := os.ReadFile("../../testdata/fixtures/sample_fixtures.html")
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}

	s := testScraper(t)
	games, err := s.parseFixtures(strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("parseFixtures failed: %v", err)
	}

	// The sample page holds six cards in the upcoming section: two valid
	// future Sundays, one Saturday, one past Sunday, one weekday-mismatch
	// card, and one card with a single team link.
	if len(games) != 2 {
		t.Fatalf("expected 2 games, got %d: %+v", len(games), games)
	}

	first := games[0]
	if first.Opponent != "Rivals CC" {
		t.Errorf("opponent = %q, want %q", first.Opponent, "Rivals CC")
	}
	wantDate := time.Date(2025, time.July, 27, 0, 0, 0, 0, time.Local)
	if !first.Date.Equal(wantDate) {
		t.Errorf("date = %v, want %v", first.Date, wantDate)
	}
	if first.OpponentLogoURL != "https://media.example.com/logos/rivals.jpg" {
		t.Errorf("opponent logo = %q", first.OpponentLogoURL)
	}
	if first.TeamLogoURL != "https://media.example.com/logos/sparta.jpg" {
		t.Errorf("team logo = %q", first.TeamLogoURL)
	}

	// Second card lists the opponent first; the positional logo
	// association must follow the link order, not a fixed side.
	second := games[1]
	if second.Opponent != "Falcons CC" {
		t.Errorf("opponent = %q, want %q", second.Opponent, "Falcons CC")
	}
	if second.OpponentLogoURL != "https://media.example.com/logos/falcons.png" {
		t.Errorf("opponent logo = %q", second.OpponentLogoURL)
	}
	if second.TeamLogoURL != "https://media.example.com/logos/sparta.jpg" {
		t.Errorf("team logo = %q", second.TeamLogoURL)
	}

	// Every surviving record is a future Sunday
	for _, g := range games {
		if !g.IsSunday() {
			t.Errorf("non-Sunday record survived filtering: %+v", g)
		}
		if !g.IsFuture(s.now()) {
			t.Errorf("past record survived filtering: %+v", g)
		}
	}
}

func TestParseFixturesMissingLandmark(t *testing.T) {
	html := `<html><body>
		<div class="schedule-all">
			<div class="sch-time"><h4>Sunday</h4><h2>27</h2><h5>Jul 2025</h5></div>
			<div class="schedule-text"><h3><a>SPARTA XI</a><a>vs</a><a>Rivals CC</a></h3></div>
		</div>
	</body></html>`

	s := testScraper(t)
	games, err := s.parseFixtures(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parseFixtures failed: %v", err)
	}
	if len(games) != 0 {
		t.Errorf("expected no games without a landmark section, got %d", len(games))
	}
}

func TestParseFixturesSkipsMalformedCards(t *testing.T) {
	// The landmark is present but every card is broken in a different way
	html := `<html><body><div class="panel">
		<span>Upcoming Matches</span>
		<div class="schedule-all">
			<div class="schedule-text"><h3><a>SPARTA XI</a><a>vs</a><a>Rivals CC</a></h3></div>
		</div>
		<div class="schedule-all">
			<div class="sch-time"><h4>Sunday</h4><h2>27</h2><h5>Jul 2025</h5></div>
		</div>
		<div class="schedule-all">
			<div class="sch-time"><h4>Sunday</h4><h2>27</h2><h5>Jul 2025</h5></div>
			<div class="schedule-text"><h3><a>Other A</a><a>vs</a><a>Other B</a></h3></div>
		</div>
	</div></body></html>`

	s := testScraper(t)
	games, err := s.parseFixtures(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parseFixtures failed: %v", err)
	}
	if len(games) != 0 {
		t.Errorf("expected all malformed cards to be skipped, got %d games", len(games))
	}
}

func TestParseFixturesCardWithoutLogos(t *testing.T) {
	// Logos are optional; a card without them still yields a record
	html := `<html><body><div class="panel">
		<span>UPCOMING MATCHES</span>
		<div class="schedule-all">
			<div class="sch-time"><h4>Sunday</h4><h2>27</h2><h5>Jul 2025</h5></div>
			<div class="schedule-text"><h3><a>SPARTA XI</a><a>vs</a><a>Rivals CC</a></h3></div>
		</div>
	</div></body></html>`

	s := testScraper(t)
	games, err := s.parseFixtures(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parseFixtures failed: %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("expected 1 game, got %d", len(games))
	}
	if games[0].OpponentLogoURL != "" || games[0].TeamLogoURL != "" {
		t.Errorf("expected empty logo URLs, got %q / %q",
			games[0].OpponentLogoURL, games[0].TeamLogoURL)
	}
}

func TestFetchFixtures(t *testing.T) {
	data, err := os.ReadFile("../../testdata/fixtures/sample_fixtures.html")
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}

	var gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Write(data) // nolint:errcheck
	}))
	defer server.Close()

	s := testScraper(t)
	s.url = server.URL

	games, err := s.FetchFixtures()
	if err != nil {
		t.Fatalf("FetchFixtures failed: %v", err)
	}
	if len(games) != 2 {
		t.Errorf("expected 2 games, got %d", len(games))
	}
	if gotUserAgent != config.Default().UserAgent {
		t.Errorf("User-Agent = %q, want configured agent", gotUserAgent)
	}
}

func TestFetchFixturesServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	s := testScraper(t)
	s.url = server.URL

	if _, err := s.FetchFixtures(); err == nil {
		t.Fatal("expected error on HTTP 503")
	}
}
