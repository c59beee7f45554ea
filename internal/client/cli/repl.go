package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
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
	WhoAmI(ctx context.Context) error
	List(ctx context.Context, query string) error
	Search(ctx context.Context, query string) error
	Select(ctx context.Context, paths []string) error
	Drop(ctx context.Context, paths []string) error
	Pending(ctx context.Context) error
	Remove(ctx context.Context, n string) error
	Upload(ctx context.Context) error
	CancelUpload(ctx context.Context) error
	Download(ctx context.Context, ref string) error
	Share(ctx context.Context, ref string) error
	Open(ctx context.Context, ref string) error
}

const (
	helpGuest = "Available commands: register, login, open <token|link>, exit"
	helpUser  = "Available commands: (l)ist [query], search <query>, select <paths...>, drop <paths...>, " +
		"pending, remove <n>, upload, cancel, download <n|id>, share <n|id>, open <token|link>, whoami, logout, exit"
)

// runREPL starts a simple read–eval–print loop for the CloudDrive CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Commands that need a session are refused
// while logged out. The loop exits on EOF or when the user types "exit" or
// "quit".
//
// Errors returned by command handlers are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("cd (%s)> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := splitArgs(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]
		rest := strings.Join(args, " ")

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpUser)
			} else {
				printlnFn(helpGuest)
			}
			continue

		case "register":
			report(a.Register(ctx))
			continue

		case "login":
			report(a.Login(ctx))
			continue

		case "open":
			report(a.Open(ctx, rest))
			continue

		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		if !knownUserCommand(cmd) {
			printlnFn("Unknown command:", cmd)
			continue
		}
		if !a.isLoggedIn() {
			printlnFn("Please log in first (login or register)")
			continue
		}

		switch cmd {
		case "l", "list", "ls":
			report(a.List(ctx, rest))
		case "search":
			report(a.Search(ctx, rest))
		case "select":
			report(a.Select(ctx, args))
		case "drop":
			report(a.Drop(ctx, args))
		case "pending":
			report(a.Pending(ctx))
		case "remove":
			report(a.Remove(ctx, rest))
		case "upload":
			report(a.Upload(ctx))
		case "cancel":
			report(a.CancelUpload(ctx))
		case "download":
			report(a.Download(ctx, rest))
		case "share":
			report(a.Share(ctx, rest))
		case "whoami":
			report(a.WhoAmI(ctx))
		case "logout":
			report(a.Logout(ctx))
		}
	}
}

func knownUserCommand(cmd string) bool {
	switch cmd {
	case "l", "list", "ls", "search", "select", "drop", "pending", "remove",
		"upload", "cancel", "download", "share", "whoami", "logout":
		return true
	}
	return false
}

func report(err error) {
	if err != nil {
		printlnFn("Error:", err)
	}
}

// readLine reads one line without its line ending. A final line without a
// newline is returned before io.EOF.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// splitArgs splits a command line on whitespace; double quotes group words
// so paths with spaces can be given.
func splitArgs(line string) []string {
	var (
		args    []string
		cur     strings.Builder
		quoted  bool
		pending bool
	)
	for _, r := range line {
		switch {
		case r == '"':
			quoted = !quoted
			pending = true
		case !quoted && (r == ' ' || r == '\t'):
			if pending {
				args = append(args, cur.String())
				cur.Reset()
				pending = false
			}
		default:
			cur.WriteRune(r)
			pending = true
		}
	}
	if pending {
		args = append(args, cur.String())
	}
	return args
}
