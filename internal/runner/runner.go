// Package runner drives one end-to-end pass: fetch the fixtures page,
// resolve opponent contacts, and draft one invitation per upcoming Sunday
// home game. Per-game failures are isolated so one bad game never stops
// the rest of the run.
package runner

import (
	"errors"
	"fmt"
	"time"

	"github.com/spartaxi/matchday/internal/contacts"
	"github.com/spartaxi/matchday/internal/fixture"
	"github.com/spartaxi/matchday/internal/logger"
)

// FixtureSource produces the candidate games for a run.
type FixtureSource interface {
	FetchFixtures() ([]*fixture.GameRecord, error)
}

// InvitationDrafter stores one invitation draft for a game.
type InvitationDrafter interface {
	Draft(game *fixture.GameRecord, recipients []string) error
}

// Runner wires the components for a single pass.
type Runner struct {
	source   FixtureSource
	primary  contacts.Directory
	fallback contacts.Directory // optional, may be nil
	drafter  InvitationDrafter
	awayDay  time.Weekday
}

// Summary reports what happened to each candidate game.
type Summary struct {
	Candidates int
	Drafted    int
	Skipped    int
	Failed     int
}

// New creates a Runner. fallback may be nil to disable the LLM path.
func New(source FixtureSource, primary, fallback contacts.Directory, drafter InvitationDrafter, awayDay time.Weekday) *Runner {
	return &Runner{
		source:   source,
		primary:  primary,
		fallback: fallback,
		drafter:  drafter,
		awayDay:  awayDay,
	}
}

// Run executes one pass. The run succeeds when at least one candidate game
// was handled (drafted, or skipped as an away game), or trivially when
// there were no candidates at all.
func (r *Runner) Run() (Summary, error) {
	games, err := r.source.FetchFixtures()
	if err != nil {
		return Summary{}, fmt.Errorf("fetching fixtures: %w", err)
	}

	if len(games) == 0 {
		logger.Info("no upcoming home games found", nil)
		return Summary{}, nil
	}

	sum := Summary{Candidates: len(games)}
	for _, game := range games {
		if game.Date.Weekday() == r.awayDay {
			sum.Skipped++
			logger.Info("skipping away-day game", logger.Fields{
				"opponent": game.Opponent,
				"date":     game.Date.Format("2006-01-02"),
			})
			continue
		}

		emails, err := r.lookupContacts(game.Opponent)
		if err != nil {
			sum.Failed++
			logger.Error("no contacts resolved for opponent", logger.Fields{
				"opponent": game.Opponent,
			}, err)
			continue
		}

		if err := r.drafter.Draft(game, emails); err != nil {
			sum.Failed++
			logger.Error("drafting invitation failed", logger.Fields{
				"opponent": game.Opponent,
				"date":     game.Date.Format("2006-01-02"),
			}, err)
			continue
		}
		sum.Drafted++
	}

	logger.Info("run complete", logger.Fields{
		"candidates": sum.Candidates,
		"drafted":    sum.Drafted,
		"skipped":    sum.Skipped,
		"failed":     sum.Failed,
	})

	if sum.Drafted+sum.Skipped == 0 {
		return sum, fmt.Errorf("no invitations drafted for %d candidate games", sum.Candidates)
	}
	return sum, nil
}

// lookupContacts resolves opponent emails through the primary directory,
// falling back to the LLM extractor (when configured) on a miss.
func (r *Runner) lookupContacts(opponent string) ([]string, error) {
	emails, err := r.primary.Lookup(opponent)
	if err == nil {
		return emails, nil
	}

	if r.fallback == nil {
		return nil, err
	}

	if !errors.Is(err, contacts.ErrNotFound) {
		logger.Warn("primary contact lookup failed, trying LLM fallback", logger.Fields{
			"opponent": opponent,
			"reason":   err.Error(),
		})
	}

	emails, ferr := r.fallback.Lookup(opponent)
	if ferr != nil {
		return nil, fmt.Errorf("primary: %w (fallback: %v)", err, ferr)
	}
	logger.Info("contacts resolved via LLM fallback", logger.Fields{"opponent": opponent})
	return emails, nil
}
