package cli

import (
	"context"
	"fmt"

	"github.com/ecopoints/ecopoints/internal/client/models"
)

// Statement prints the transaction history, newest first.
func (a *App) Statement(ctx context.Context) error {
	entries, err := a.storeService.Statement(ctx)
	if err != nil {
		a.reportError(err)
		return err
	}

	if len(entries) == 0 {
		printlnFn("No transactions yet.")
		return nil
	}

	for _, e := range entries {
		when := "unknown date"
		if e.DateKnown {
			when = e.When.Format("02/01/2006 15:04")
		}
		printlnFn(fmt.Sprintf("%s  %+4d pts  %s", when, e.Log.Points, e.Description))
	}
	return nil
}

// Pending lists redemptions awaiting collection, with their pickup codes.
func (a *App) Pending(ctx context.Context) error {
	logs, err := a.storeService.PendingRedemptions(ctx)
	if err != nil {
		a.reportError(err)
		return err
	}

	if len(logs) == 0 {
		printlnFn("Nothing waiting for collection.")
		return nil
	}

	for _, l := range logs {
		printlnFn(fmt.Sprintf("%s  code %s  %s", l.ID, l.Code, redemptionName(l)))
	}
	return nil
}

// Collected lists redemptions already handed over.
func (a *App) Collected(ctx context.Context) error {
	logs, err := a.storeService.CollectedRedemptions(ctx)
	if err != nil {
		a.reportError(err)
		return err
	}

	if len(logs) == 0 {
		printlnFn("No collected redemptions.")
		return nil
	}

	for _, l := range logs {
		printlnFn(fmt.Sprintf("%s  %s", l.ID, redemptionName(l)))
	}
	return nil
}

// Collect marks the pending redemption named by the first argument as
// handed over.
func (a *App) Collect(ctx context.Context, args []string) error {
	entry, err := a.storeService.MarkCollected(ctx, args[0])
	if err != nil {
		a.reportError(err)
		return err
	}

	printlnFn("Marked as collected:", redemptionName(*entry))
	return nil
}

func redemptionName(l models.LogEntry) string {
	if l.Product.Product != nil && l.Product.Product.Name != "" {
		return l.Product.Product.Name
	}
	if l.Product.ID != "" {
		return l.Product.ID
	}
	return "(unknown product)"
}
