package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/ecopoints/ecopoints/internal/client/models"
	"github.com/ecopoints/ecopoints/internal/validation"
)

// Profile fetches and prints the profile and points balance.
func (a *App) Profile(ctx context.Context) error {
	user, err := a.accountService.Profile(ctx)
	if err != nil {
		a.reportError(err)
		return err
	}
	a.profile = user

	printlnFn("Username:", user.Username)
	printlnFn("Email:   ", user.Email)
	printlnFn("CPF:     ", validation.FormatCPF(user.CPF))
	printlnFn("Points:  ", user.Points)
	printlnFn(fmt.Sprintf("Recycled: %d plastic, %d metal", user.PlasticDiscarded, user.MetalDiscarded))
	return nil
}

// EditProfile prompts for new values; empty input keeps the current one.
// Only changed fields are sent to the backend.
func (a *App) EditProfile(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "New email (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	username, err := getSimpleText(a.reader, "New username (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout, "New password (empty to keep)")
	if err != nil {
		return err
	}

	update := models.UserUpdate{}
	if email != "" {
		update.Email = &email
	}
	if username != "" {
		update.Username = &username
	}
	if password != "" {
		update.Password = &password
	}
	if update.Email == nil && update.Username == nil && update.Password == nil {
		printlnFn("Nothing to update.")
		return nil
	}

	user, err := a.accountService.Update(ctx, update)
	if err != nil {
		a.reportError(err)
		return err
	}
	a.profile = user
	printlnFn("Profile updated.")
	return nil
}

// DeleteAccount removes the account after a typed confirmation.
func (a *App) DeleteAccount(ctx context.Context) error {
	ok, err := GetConfirmation(a.reader, "This permanently removes your account and points.", "delete", os.Stdout)
	if err != nil {
		return err
	}
	if !ok {
		printlnFn("Aborted.")
		return nil
	}

	if err := a.accountService.Delete(ctx); err != nil {
		a.reportError(err)
		return err
	}

	a.session = nil
	a.profile = nil
	printlnFn("Account deleted.")
	return nil
}
