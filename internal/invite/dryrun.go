package invite

import (
	"fmt"
	"strings"

	"github.com/spartaxi/matchday/internal/config"
	"github.com/spartaxi/matchday/internal/fixture"
)

// DryRunDrafter prints what would be drafted without touching the mail
// account.
type DryRunDrafter struct {
	cfg *config.Config
}

// NewDryRunDrafter creates a new dry-run drafter.
func NewDryRunDrafter(cfg *config.Config) *DryRunDrafter {
	return &DryRunDrafter{cfg: cfg}
}

// Draft prints the invitation that would be saved as a draft.
func (d *DryRunDrafter) Draft(game *fixture.GameRecord, recipients []string) error {
	fmt.Println("--- Draft (dry run) ---")
	fmt.Printf("Subject: %s\n", game.Subject(d.cfg.SubjectFormat))
	fmt.Printf("To:      %s\n", strings.Join(recipients, ", "))
	if cc := d.cfg.CCList(); len(cc) > 0 {
		fmt.Printf("Cc:      %s\n", strings.Join(cc, ", "))
	}
	fmt.Printf("Game:    %s vs %s on %s\n", d.cfg.TeamName, game.Opponent, game.DisplayDate())
	sendAt := SendTime(game.Date, d.cfg.SendWeekday(), d.cfg.SendHour)
	fmt.Printf("Intended send time: %s\n\n", sendAt.Format("Monday, January 2 at 3:04 PM"))
	return nil
}
