package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/blindcalc/internal/client/client"
	"github.com/dmitrijs2005/blindcalc/internal/client/services"
	"github.com/dmitrijs2005/blindcalc/internal/common"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Keygen(ctx context.Context, args []string) error
	Submit(ctx context.Context, args []string) error
	Average(ctx context.Context, args []string) error
	Member(ctx context.Context, args []string) error
	Send(ctx context.Context, args []string) error
	Search(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
}

const helpText = `Available commands:
  keygen                            generate a new key pair (replaces the old one)
  submit <session> [value]          add an encrypted value to a session
  average <session>                 decrypt a session's sum and average
  member <label>                    check whether label is in the evaluator's roster
  send <conversation> [text...]     store a sealed, searchable record
  search <conversation> <keyword>   find records by keyword
  delete <record-id>                delete one of your records
  help                              show this help
  exit | quit                       leave the program`

// runREPL starts a simple read–eval–print loop for the blindcalc CLI.
//
// It reads a line from reader, parses the first token as the
// command, and dispatches to methods on 'a' with the remaining tokens.
// Unknown commands are reported back to the user. The loop exits on
// EOF, when ctx is done, or when the user types "exit" or "quit".
//
// Errors returned by command handlers are printed and the loop continues.
// Handlers that prompt for more input read from the same reader, so no
// input is buffered away from them.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("bc %s> ", statusFn()))
		line, readErr := reader.ReadString('\n')
		if readErr != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			printlnFn(helpText)
		case "keygen":
			err = a.Keygen(ctx, args)
		case "submit":
			err = a.Submit(ctx, args)
		case "average", "avg":
			err = a.Average(ctx, args)
		case "member":
			err = a.Member(ctx, args)
		case "send":
			err = a.Send(ctx, args)
		case "search":
			err = a.Search(ctx, args)
		case "delete":
			err = a.Delete(ctx, args)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", describeError(err))
		}
	}
}

// describeError adds a hint for the conditions a user can fix.
func describeError(err error) string {
	switch {
	case errors.Is(err, services.ErrNoKeyPair):
		return "no key pair yet, run keygen first"
	case errors.Is(err, client.ErrUnauthorized):
		return "unauthorized, check the access token (-t)"
	case errors.Is(err, client.ErrUnavailable):
		return "evaluator unavailable, try again later"
	case errors.Is(err, common.ErrKeyMismatch):
		return "this session was started under a different key pair"
	case errors.Is(err, common.ErrEmptySession):
		return "no values were submitted to this session"
	default:
		return err.Error()
	}
}
