package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
)

// Layouts accepted by --at, tried in order. Zone-less layouts are read in
// the business timezone.
var atLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02 15:04"}

func NewReconcileCommand(rootOpts *RootOptions) *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Close elapsed shifts once, as the scheduled job does",
		Long: `Run one reconciliation sweep. Shifts whose check-in window has
passed without a check-in are marked missing, open records past the
check-out window are closed at the shift end.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnvironment(rootOpts)
			if err != nil {
				return err
			}
			defer env.close()

			when := env.clock.Now()
			if at != "" {
				if when, err = parseAt(at, env.clock.Location()); err != nil {
					return err
				}
			}

			report, err := env.services.Attendance.Reconcile(cmd.Context(), when)
			if err != nil {
				return err
			}
			return rootOpts.output(cmd.OutOrStdout(), report, func(w io.Writer) {
				fmt.Fprintf(w, "reconciled at %s: employees=%d missing=%d forced_out=%d failed=%d\n",
					when.Format(time.RFC3339), report.Employees, report.Missing, report.ForcedOut, report.Failed)
			})
		},
	}
	cmd.Flags().StringVar(&at, "at", "", "instant to reconcile as of (RFC3339 or YYYY-MM-DD HH:MM), default now")

	return cmd
}

func parseAt(value string, loc *time.Location) (time.Time, error) {
	for _, layout := range atLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t.In(loc), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid --at %q: use RFC3339 or YYYY-MM-DD HH:MM", value)
}
