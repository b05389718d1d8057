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
	List(ctx context.Context, args []string) error
	Archived(ctx context.Context, args []string) error
	Starred(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Export(ctx context.Context, args []string) error
	Add(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Archive(ctx context.Context, args []string, archived bool) error
	Star(ctx context.Context, args []string, starred bool) error
	Tags(ctx context.Context) error
	Sync(ctx context.Context) error
	Status(ctx context.Context) error
	Token(ctx context.Context) error
	Forget(ctx context.Context) error
}

const helpText = `Available commands:
  (l)ist [tag]        unread entries from the cache
  archived [tag]      archived entries from the cache
  starred [tag]       starred entries from the cache
  show <id>           one entry with its content
  export <id> <file>  save an entry as an HTML file
  add <url> [tags]    save a url, tags comma separated
  delete <id>         delete an entry
  archive <id>        mark as read (unarchive to undo)
  star <id>           star an entry (unstar to undo)
  tags                tags on the server
  sync                refresh the cache from the server
  status              connection and cache state
  token               enter a new access token
  forget              forget the remembered token
  exit | quit         leave the program`

// runREPL starts a simple read-eval-print loop for the wallabag CLI.
//
// It reads a line from reader, parses the first token as the command and
// passes the remaining tokens to the matching method on 'a'. Unknown
// commands and handler errors are reported back to the user. The loop exits
// on EOF or when the user types "exit" or "quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("wb %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printlnFn(helpText)
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		if err := dispatch(ctx, a, cmd, args); err != nil {
			printlnFn("Error:", err)
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "l", "list":
		return a.List(ctx, args)
	case "archived":
		return a.Archived(ctx, args)
	case "starred":
		return a.Starred(ctx, args)
	case "show":
		return a.Show(ctx, args)
	case "export":
		return a.Export(ctx, args)
	case "add":
		return a.Add(ctx, args)
	case "delete":
		return a.Delete(ctx, args)
	case "archive", "unarchive":
		return a.Archive(ctx, args, cmd == "archive")
	case "star", "unstar":
		return a.Star(ctx, args, cmd == "star")
	case "tags":
		return a.Tags(ctx)
	case "sync":
		return a.Sync(ctx)
	case "status":
		return a.Status(ctx)
	case "token":
		return a.Token(ctx)
	case "forget":
		return a.Forget(ctx)
	default:
		return fmt.Errorf("unknown command: %s", cmd)
	}
}
