package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/evcraddock/date-invite/internal/invite"
	"github.com/evcraddock/date-invite/internal/submission"
)

// Terminal cells are mapped to a pixel-like grid so the evasion works in
// the same units as a rendered card.
const (
	cellWidth  = 8
	cellHeight = 16
)

// noButton is the size of the rendered NO control.
var noButton = invite.Size{Width: 6 * cellWidth, Height: 3 * cellHeight}

func newInviteCmd() *cobra.Command {
	var width, height int

	cmd := &cobra.Command{
		Use:   "invite",
		Short: "Walk through the date invitation",
		Long:  "Ask the question, pick activities, a day and a phone number, then send the answer to the server.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			viewport := terminalViewport(cmd.OutOrStdout(), width, height)
			return runInvite(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), viewport)
		},
	}

	cmd.Flags().IntVar(&width, "width", 0, "screen width in columns (default: detect)")
	cmd.Flags().IntVar(&height, "height", 0, "screen height in rows (default: detect)")

	return cmd
}

// terminalViewport returns the screen size in grid units. Explicit sizes
// win; otherwise the terminal is measured, falling back to 80x24.
func terminalViewport(out io.Writer, cols, rows int) invite.Size {
	if cols <= 0 || rows <= 0 {
		dc, dr := 80, 24
		if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			if w, h, err := term.GetSize(int(f.Fd())); err == nil {
				dc, dr = w, h
			}
		}
		if cols <= 0 {
			cols = dc
		}
		if rows <= 0 {
			rows = dr
		}
	}
	return invite.Size{Width: cols * cellWidth, Height: rows * cellHeight}
}

// inviter drives an invite.Session from line-based input.
type inviter struct {
	sess     *invite.Session
	in       *bufio.Scanner
	out      io.Writer
	viewport invite.Size
	results  chan error
}

func runInvite(ctx context.Context, in io.Reader, out io.Writer, viewport invite.Size) error {
	results := make(chan error, 1)
	sess := invite.NewSession(newAPIClient(), invite.WithObserver(func(_ *submission.Submission, err error) {
		results <- err
	}))

	iv := &inviter{
		sess:     sess,
		in:       bufio.NewScanner(in),
		out:      out,
		viewport: viewport,
		results:  results,
	}
	return iv.run(ctx)
}

func (iv *inviter) run(ctx context.Context) error {
	fmt.Fprintln(iv.out, "Will you go on a date with me? ❤️")
	for {
		var (
			done bool
			err  error
		)
		switch iv.sess.Step() {
		case invite.StepInitial:
			done, err = iv.askQuestion()
		case invite.StepActivity:
			done, err = iv.askActivities()
		case invite.StepDate:
			done, err = iv.askDate()
		case invite.StepPhone:
			done, err = iv.askPhone(ctx)
		case invite.StepSubmitted:
			return iv.finish(ctx)
		}
		if err != nil || done {
			return err
		}
	}
}

// readLine prompts and returns the trimmed reply. ok is false at end of
// input or when the user quits.
func (iv *inviter) readLine(prompt string) (line string, ok bool, err error) {
	fmt.Fprint(iv.out, prompt)
	if !iv.in.Scan() {
		fmt.Fprintln(iv.out)
		if err := iv.in.Err(); err != nil {
			return "", false, fmt.Errorf("reading input: %w", err)
		}
		return "", false, nil
	}
	line = strings.TrimSpace(iv.in.Text())
	if strings.EqualFold(line, "quit") {
		return "", false, nil
	}
	return line, true, nil
}

func (iv *inviter) askQuestion() (bool, error) {
	line, ok, err := iv.readLine("[yes/no] > ")
	if !ok {
		return true, err
	}

	switch strings.ToLower(line) {
	case "yes", "y":
		if err := iv.sess.Yes(); err != nil {
			return true, err
		}
		fmt.Fprintln(iv.out, "Yay! 🥰 What should we do?")
	case "no", "n":
		current := iv.sess.NoPlacement().Point
		if !iv.sess.NoPlacement().Floating {
			current = invite.Point{
				Left: (iv.viewport.Width - noButton.Width) / 2,
				Top:  (iv.viewport.Height - noButton.Height) / 2,
			}
		}
		frames, err := iv.sess.No(iv.viewport, current, noButton)
		if err != nil {
			return true, err
		}
		to := frames[len(frames)-1]
		fmt.Fprintf(iv.out, "The NO button ran away to column %d, row %d. Try again?\n",
			to.Left/cellWidth+1, to.Top/cellHeight+1)
	default:
		fmt.Fprintln(iv.out, "Just say yes or no.")
	}
	return false, nil
}

func (iv *inviter) printActivities() {
	for i, a := range invite.Catalog {
		mark := " "
		if iv.sess.IsSelected(a.ID) {
			mark = "x"
		}
		fmt.Fprintf(iv.out, "  [%s] %2d. %s\n", mark, i+1, a.Label)
	}
	if iv.sess.IsSelected(invite.OtherID) && iv.sess.CustomActivity() != "" {
		fmt.Fprintf(iv.out, "       Other idea: %s\n", iv.sess.CustomActivity())
	}
}

func (iv *inviter) askActivities() (bool, error) {
	iv.printActivities()
	line, ok, err := iv.readLine("Toggle by number or name, 'next' when done > ")
	if !ok {
		return true, err
	}
	if line == "" {
		return false, nil
	}

	if strings.EqualFold(line, "next") {
		switch err := iv.sess.Next(); {
		case errors.Is(err, invite.ErrNoActivity):
			fmt.Fprintln(iv.out, "Pick at least one thing first.")
		case err != nil:
			return true, err
		default:
			fmt.Fprintln(iv.out, "Perfect. When are you free?")
		}
		return false, nil
	}

	id := line
	if n, err := strconv.Atoi(line); err == nil {
		if n < 1 || n > len(invite.Catalog) {
			fmt.Fprintf(iv.out, "Pick a number between 1 and %d.\n", len(invite.Catalog))
			return false, nil
		}
		id = invite.Catalog[n-1].ID
	}

	switch err := iv.sess.ToggleActivity(id); {
	case errors.Is(err, invite.ErrUnknownActivity):
		fmt.Fprintf(iv.out, "I don't know %q.\n", line)
		return false, nil
	case err != nil:
		return true, err
	}

	if id == invite.OtherID && iv.sess.IsSelected(invite.OtherID) {
		text, ok, err := iv.readLine("What would you like to do? > ")
		if !ok {
			return true, err
		}
		if err := iv.sess.SetCustomActivity(text); err != nil {
			return true, err
		}
	}
	return false, nil
}

func (iv *inviter) askDate() (bool, error) {
	line, ok, err := iv.readLine("Date (YYYY-MM-DD) > ")
	if !ok {
		return true, err
	}

	d, err := time.ParseInLocation(time.DateOnly, line, time.Local)
	if err != nil {
		fmt.Fprintln(iv.out, "That doesn't look like a date. Try 2025-06-01.")
		return false, nil
	}

	switch err := iv.sess.SelectDate(d); {
	case errors.Is(err, invite.ErrDateInPast):
		fmt.Fprintln(iv.out, "That day has already passed. Pick today or later.")
	case err != nil:
		return true, err
	default:
		fmt.Fprintf(iv.out, "%s it is! How do I reach you?\n", d.Format("Monday, January 2"))
	}
	return false, nil
}

func (iv *inviter) askPhone(ctx context.Context) (bool, error) {
	line, ok, err := iv.readLine("Phone number > ")
	if !ok {
		return true, err
	}

	shown, err := iv.sess.SetPhone(line)
	if err != nil {
		return true, err
	}
	if shown != "" {
		fmt.Fprintf(iv.out, "  %s\n", shown)
	}

	switch err := iv.sess.Submit(ctx); {
	case errors.Is(err, invite.ErrInvalidPhone):
		fmt.Fprintln(iv.out, iv.sess.PhoneError())
	case err != nil:
		return true, err
	}
	return false, nil
}

// finish shows the confirmation, then waits for the pending save so the
// process does not exit with the request still in flight.
func (iv *inviter) finish(ctx context.Context) error {
	fmt.Fprintln(iv.out, "It's a date! 💕 I'll text you soon.")
	if _, _, err := iv.readLine("Press Enter to close "); err != nil {
		return err
	}
	if err := iv.sess.Acknowledge(); err != nil {
		return err
	}

	select {
	case err := <-iv.results:
		if err != nil {
			return fmt.Errorf("saving date: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
