package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/templui/medtrack/internal/schedule"
)

func NextCmd() *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "next HH:mm",
		Short: "Print when a reminder for HH:mm would fire",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			if from != "" {
				var err error
				now, err = time.ParseInLocation(time.DateTime, from, time.Local)
				if err != nil {
					return fmt.Errorf("invalid --from %q: %w", from, err)
				}
			}

			at, err := nextReminder(now, args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s (in %s)\n", at.Format(time.RFC1123), at.Sub(now).Round(time.Minute))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", `reference time as "2006-01-02 15:04:05" (default now)`)
	return cmd
}

func nextReminder(now time.Time, clock string) (time.Time, error) {
	hour, minute, err := schedule.ParseClock(clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q: %w", clock, err)
	}
	return schedule.Next(now, hour, minute), nil
}
