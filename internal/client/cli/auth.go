package cli

import (
	"context"
	"os"

	"github.com/ecopoints/ecopoints/internal/client/models"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for the registration form and creates an account. On
// success the service logs the new user in, so the session is ready
// immediately.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	cpf, err := getSimpleText(a.reader, "Enter CPF", os.Stdout)
	if err != nil {
		return err
	}
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout, "Enter password")
	if err != nil {
		return err
	}
	confirm, err := getPassword(os.Stdout, "Confirm password")
	if err != nil {
		return err
	}

	reg := models.Registration{Email: email, CPF: cpf, Username: username, Password: password}
	sess, err := a.authService.Register(ctx, reg, confirm)
	if err != nil {
		a.reportError(err)
		return err
	}

	a.session = sess
	a.refreshStatus(ctx)
	printlnFn("Welcome to EcoPoints,", username+"!")
	return nil
}

// Login prompts for credentials and runs the session-establishment flow.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout, "Enter password")
	if err != nil {
		return err
	}

	sess, err := a.authService.Login(ctx, email, password)
	if err != nil {
		a.reportError(err)
		return err
	}

	a.session = sess
	a.refreshStatus(ctx)
	printlnFn("Logged in.")
	return nil
}

// Logout clears the persisted session and the in-memory identity.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		a.reportError(err)
		return err
	}
	a.session = nil
	a.profile = nil
	printlnFn("Logged out.")
	return nil
}

// refreshStatus loads the cached profile for the status line, falling back
// to a network fetch when no snapshot exists yet.
func (a *App) refreshStatus(ctx context.Context) {
	user, err := a.accountService.CachedProfile(ctx)
	if err != nil {
		a.refreshProfile(ctx)
		return
	}
	a.profile = user
}
