package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dalemusser/npoconnect/internal/app/system/generation"
	"github.com/dalemusser/npoconnect/internal/app/system/timeouts"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the NPO assistant",
	Long: `Chat opens a conversation with the NPO assistant. Replies stream as they
arrive. The conversation is forgotten when you leave (/quit or Ctrl-D).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		defer logger.Sync()

		gen, err := newOrchestrator(cmd.Context(), logger)
		if err != nil {
			return err
		}

		ctx, cancel := timeouts.WithTimeout(cmd.Context(), timeouts.Short(), logger, "chat init")
		sess := gen.NewChatSession(ctx)
		cancel()

		return runChat(cmd.Context(), sess, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

// runChat prints the opening message, then sends each input line and streams
// the reply deltas to out.
func runChat(ctx context.Context, sess *generation.ChatSession, in io.Reader, out io.Writer) error {
	for _, m := range sess.Transcript() {
		fmt.Fprintf(out, "assistant> %s\n", m.Text)
	}
	if !sess.Ready() {
		return generation.ErrChatUnavailable
	}

	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "you> ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		switch line {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		}

		if err := streamReply(ctx, sess, line, out); err != nil {
			return err
		}
	}
}

func streamReply(ctx context.Context, sess *generation.ChatSession, msg string, out io.Writer) error {
	turnCtx, cancel := context.WithTimeout(ctx, timeouts.Chat())
	defer cancel()

	fmt.Fprint(out, "assistant> ")
	printed := false
	for u, err := range sess.Send(turnCtx, msg) {
		var streamErr *generation.StreamError
		switch {
		case errors.As(err, &streamErr):
			if printed {
				fmt.Fprintln(out)
			}
			fmt.Fprintln(out, generation.StreamErrorMessage)
			return nil
		case err != nil:
			fmt.Fprintln(out)
			return err
		case u.Done:
			fmt.Fprintln(out)
		default:
			fmt.Fprint(out, u.Delta)
			printed = true
		}
	}
	return nil
}
