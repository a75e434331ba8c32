package cli

import (
	"context"
	"fmt"
	"strings"
)

// printFn and printlnFn are test seams for REPL output.
var (
	printFn   = fmt.Print
	printlnFn = fmt.Println
)

// execIface is the command surface the REPL dispatches to. App satisfies
// it; tests use a stub.
type execIface interface {
	isSignedIn() bool
	SignIn(ctx context.Context) error
	SignOut(ctx context.Context) error
	List(ctx context.Context) error
	Refresh(ctx context.Context) error
	Share(ctx context.Context) error
	Delete(ctx context.Context, ref string) error
	Copy(ctx context.Context, ref string) error
	Retry(ctx context.Context) error
}

// runREPL reads one command per line and dispatches it to a. It returns on
// end of input, on "exit" or "quit", or when ctx is done.
//
// Errors from handlers are ignored; handlers report them to the user.
func runREPL(ctx context.Context, a execIface, statusFn func() string, readLine func() (string, bool)) {
	for {
		if ctx.Err() != nil {
			return
		}
		printFn(fmt.Sprintf("cc %s> ", statusFn()))
		line, ok := readLine()
		if !ok {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isSignedIn() {
				printlnFn("Available commands: (l)ist, refresh, share, copy <n|id>, delete <n|id>, retry, signout, exit")
			} else {
				printlnFn("Available commands: signin, exit")
			}

		case "signin":
			_ = a.SignIn(ctx)

		case "signout":
			_ = a.SignOut(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "refresh":
			_ = a.Refresh(ctx)

		case "share":
			_ = a.Share(ctx)

		case "delete":
			if len(args) == 0 {
				printlnFn("Usage: delete <n|id>")
				continue
			}
			_ = a.Delete(ctx, args[0])

		case "copy":
			if len(args) == 0 {
				printlnFn("Usage: copy <n|id>")
				continue
			}
			_ = a.Copy(ctx, args[0])

		case "retry":
			_ = a.Retry(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
