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
	Refresh(ctx context.Context) error
	Logout(ctx context.Context) error
	Profile(ctx context.Context) error
	UpdateProfile(ctx context.Context) error
	DeleteProfile(ctx context.Context) error
	Users(ctx context.Context) error
	User(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the profilehub CLI.
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
//	  - users | user   — browse the public directory
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - help           — show available commands
//	  - profile        — show your profile
//	  - update         — edit your profile
//	  - refresh        — refresh the access token
//	  - delete         — delete your account
//	  - users | user   — browse the public directory
//	  - logout         — log out
//	  - exit | quit    — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("ph> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: profile, update, refresh, delete, users, user, logout, exit")
			} else {
				printlnFn("Available commands: register, login, users, user, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "refresh":
			_ = a.Refresh(ctx)

		case "profile":
			_ = a.Profile(ctx)

		case "update":
			_ = a.UpdateProfile(ctx)

		case "delete":
			_ = a.DeleteProfile(ctx)

		case "users":
			_ = a.Users(ctx)

		case "user":
			_ = a.User(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
