package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for prompt output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Navigate(ctx context.Context, view string) error
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Send(ctx context.Context, text string) error
	Retry(ctx context.Context) error
	RefreshProfile(ctx context.Context) error
	Rename(ctx context.Context, username string) error
	Whoami(ctx context.Context) error
	enforceGuard(ctx context.Context)
}

// runREPL reads commands line by line and dispatches them to a. The first
// token is the command, the rest of the line its argument. The loop exits on
// EOF or when the user types "exit" or "quit".
//
//	Always:
//	  - help             show available commands
//	  - go <view>        open home, login, register, chat or profile
//	  - exit | quit      leave the program
//
//	Not logged in:
//	  - register         create an account
//	  - login            authenticate
//
//	Logged in:
//	  - send [text]      post a message (prompts when text is omitted)
//	  - retry            re-fetch the feed after an error
//	  - refresh          reload the profile from the server
//	  - rename [name]    change the username
//	  - whoami           show the signed-in user
//	  - logout           end the session
//
// Errors returned by command handlers are ignored here; handlers report
// their own errors to the user.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("corpchat (%s)> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
		arg = strings.TrimSpace(arg)
		if cmd == "" {
			continue
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: go <view>, send [text], retry, refresh, rename [name], whoami, logout, exit")
			} else {
				printlnFn("Available commands: go <view>, register, login, exit")
			}

		case "go", "open":
			if arg == "" {
				printlnFn("Usage: go <home|login|register|chat|profile>")
				continue
			}
			_ = a.Navigate(ctx, arg)

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "send", "s":
			_ = a.Send(ctx, arg)

		case "retry":
			_ = a.Retry(ctx)

		case "refresh":
			_ = a.RefreshProfile(ctx)

		case "rename":
			_ = a.Rename(ctx, arg)

		case "whoami":
			_ = a.Whoami(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		a.enforceGuard(ctx)
	}
}
