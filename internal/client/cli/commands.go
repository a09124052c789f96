package cli

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/dmitrijs2005/blindcalc/internal/common"
)

var errUsage = errors.New("usage")

func usage(format string) error {
	return fmt.Errorf("%w: %s", errUsage, format)
}

func (a *App) Keygen(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return usage("keygen")
	}

	fmt.Fprintf(a.out, "Generating a %d-bit key pair...\n", a.config.KeyBits)
	start := time.Now()

	kp, err := a.keys.Generate(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Key pair ready (n has %d bits, took %s). Sessions started under the previous key can no longer be averaged here.\n",
		kp.Public.N.BitLen(), time.Since(start).Round(time.Millisecond))
	return nil
}

func (a *App) Submit(ctx context.Context, args []string) error {
	var (
		v   *big.Int
		err error
	)
	switch len(args) {
	case 1:
		v, err = GetInteger(a.reader, "Enter value to submit", a.out)
	case 2:
		v, err = ParseInteger(args[1])
	default:
		return usage("submit <session> [value]")
	}
	if err != nil {
		return err
	}

	count, err := a.compute.SubmitValue(ctx, args[0], v)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Submitted. Session %s now holds %d value(s).\n", args[0], count)
	return nil
}

func (a *App) Average(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("average <session>")
	}

	agg, err := a.compute.Average(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Session %s: sum=%s count=%d average=%s (%s)\n",
		agg.SessionID, agg.Sum, agg.Count, agg.Average.FloatString(6), agg.Average.RatString())
	return nil
}

// Member accepts a label with spaces; a missing label is prompted for.
func (a *App) Member(ctx context.Context, args []string) error {
	label := strings.Join(args, " ")
	if label == "" {
		var err error
		label, err = GetSimpleText(a.reader, "Enter label to check", a.out)
		if err != nil {
			return err
		}
	}

	found, err := a.compute.CheckMembership(ctx, label)
	if err != nil {
		return err
	}

	if found {
		fmt.Fprintf(a.out, "%s is in the domain.\n", label)
	} else {
		fmt.Fprintf(a.out, "%s is not in the domain.\n", label)
	}
	return nil
}

// Send takes the text from the command line or, when absent, as multiline
// input.
func (a *App) Send(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usage("send <conversation> [text...]")
	}
	conversation := args[0]

	text := strings.Join(args[1:], " ")
	if text == "" {
		var err error
		text, err = GetMultiline(a.reader, "Enter message text", a.out)
		if err != nil {
			return err
		}
	}

	passphrase, err := GetPassword(a.out, "Conversation passphrase")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(passphrase)

	id, err := a.search.Send(ctx, conversation, passphrase, text)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Stored record %s\n", id)
	return nil
}

func (a *App) Search(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usage("search <conversation> <keyword>")
	}

	passphrase, err := GetPassword(a.out, "Conversation passphrase")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(passphrase)

	messages, err := a.search.Search(ctx, args[0], passphrase, args[1])
	if err != nil {
		return err
	}

	if len(messages) == 0 {
		fmt.Fprintln(a.out, "No matches.")
		return nil
	}
	for _, m := range messages {
		fmt.Fprintf(a.out, "[%s] %s %s: %s\n", m.ID, m.CreatedAt.Local().Format(time.DateTime), m.SenderID, m.Text)
	}
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	var id string
	switch len(args) {
	case 0:
		var err error
		id, err = GetSimpleText(a.reader, "Enter record id to delete", a.out)
		if err != nil {
			return err
		}
	case 1:
		id = args[0]
	default:
		return usage("delete <record-id>")
	}

	if err := a.search.Delete(ctx, id); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Deleted record %s\n", id)
	return nil
}
