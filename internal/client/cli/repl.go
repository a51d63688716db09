package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Profile(ctx context.Context) error
	EditProfile(ctx context.Context) error
	DeleteAccount(ctx context.Context) error
	Products(ctx context.Context) error
	Redeem(ctx context.Context, args []string) error
	Statement(ctx context.Context) error
	Pending(ctx context.Context) error
	Collected(ctx context.Context) error
	Collect(ctx context.Context, args []string) error
}

// runREPL starts a simple read–eval–print loop for the EcoPoints CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help           — show available commands
//	  - register       — create an account
//	  - login          — authenticate
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - help           — show available commands
//	  - profile        — show the profile and points balance
//	  - edit           — edit profile fields
//	  - products       — list the store catalog
//	  - redeem <id>    — exchange points for a product
//	  - statement      — list the transaction history
//	  - pending        — list redemptions awaiting collection
//	  - collected      — list collected redemptions
//	  - collect <id>   — mark a pending redemption as collected
//	  - delete-account — remove the account (asks for confirmation)
//	  - logout         — log out
//	  - exit | quit    — leave the program
//
// Command handlers report their own errors to the user; the loop only
// routes input.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("eco %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: profile, edit, (p)roducts, redeem <id>, statement, pending, collected, collect <id>, delete-account, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "profile":
			_ = a.Profile(ctx)

		case "edit":
			_ = a.EditProfile(ctx)

		case "delete-account":
			_ = a.DeleteAccount(ctx)

		case "p", "products":
			_ = a.Products(ctx)

		case "redeem":
			if len(args) == 0 {
				printlnFn("Usage: redeem <product-id>")
				continue
			}
			_ = a.Redeem(ctx, args)

		case "statement":
			_ = a.Statement(ctx)

		case "pending":
			_ = a.Pending(ctx)

		case "collected":
			_ = a.Collected(ctx)

		case "collect":
			if len(args) == 0 {
				printlnFn("Usage: collect <log-id>")
				continue
			}
			_ = a.Collect(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
