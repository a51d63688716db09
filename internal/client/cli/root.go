package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ecopoints/ecopoints/internal/common"
	"github.com/ecopoints/ecopoints/internal/events"
)

// getStatus renders the prompt status: username and points when a session
// is active, empty otherwise.
func (a *App) getStatus() string {
	if a.profile != nil {
		return fmt.Sprintf("(%s %dpts)", a.profile.Username, a.profile.Points)
	}
	if a.session != nil {
		return "(logged in)"
	}
	return ""
}

// Root restores a persisted session if one exists, subscribes the status
// line to the points-changed signal and runs the command loop.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to EcoPoints CLI (type 'help' for commands)")

	sess, err := a.authService.Restore(ctx)
	if err == nil {
		a.session = sess
		a.refreshStatus(ctx)
		printlnFn("Session restored.")
	} else if !errors.Is(err, common.ErrSessionMissing) {
		a.log.Warn(ctx, "session restore failed", "err", err)
	}

	// Other commands (redeem, collect) move points; keep the prompt honest.
	sub := a.bus.Subscribe(events.TopicPointsChanged, func() {
		a.refreshStatus(ctx)
	})
	defer sub.Unsubscribe()

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
