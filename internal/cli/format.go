package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/evcraddock/date-invite/internal/submission"
)

// printJSON marshals v as indented JSON and writes it to w.
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printSubmission prints a single submission in text format.
func printSubmission(w io.Writer, s *submission.Submission) {
	fmt.Fprintf(w, "Date #%d\n", s.ID)
	fmt.Fprintf(w, "  Date:       %s\n", s.SelectedDate)
	fmt.Fprintf(w, "  Phone:      %s\n", formatPhone(s.PhoneNumber))
	if len(s.Activities) > 0 {
		fmt.Fprintf(w, "  Activities: %s\n", s.ActivityDescription)
	} else {
		fmt.Fprintln(w, "  Activities: -")
	}
	fmt.Fprintf(w, "  Created:    %s\n", s.CreatedAt.Local().Format("2006-01-02 15:04"))
}

// printSubmissionTable prints submissions as a formatted table.
func printSubmissionTable(w io.Writer, subs []*submission.Submission) error {
	if len(subs) == 0 {
		fmt.Fprintln(w, "No dates yet.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "ID\tDATE\tPHONE\tACTIVITIES\tCREATED"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(tw, "--\t----\t-----\t----------\t-------"); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}

	for _, s := range subs {
		activities := "-"
		if s.ActivityDescription != "" {
			activities = truncate(s.ActivityDescription, 40)
		}
		if _, err := fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			s.ID, s.SelectedDate, formatPhone(s.PhoneNumber), activities,
			s.CreatedAt.Local().Format("2006-01-02 15:04")); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	fmt.Fprintf(w, "\nTotal: %d dates\n", len(subs))
	return nil
}

// formatPhone groups a stored nine-digit number as "123 456 789".
// Anything else is returned unchanged.
func formatPhone(digits string) string {
	if !submission.ValidPhone(digits) {
		return digits
	}
	return digits[:3] + " " + digits[3:6] + " " + digits[6:]
}

// truncate shortens a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return strings.TrimSpace(string(r[:maxLen-3])) + "..."
}
