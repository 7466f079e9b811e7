package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Summarize everything at a glance",
		Args:  cobra.NoArgs,
		Run:   runDashboard,
	}

	RootCmd.AddCommand(cmd)
}

func runDashboard(cmd *cobra.Command, args []string) {
	s := openApp(cmd)
	defer s.Close()

	d := s.app.Dashboard()
	emit(cmd, d, func(w io.Writer) {
		row := func(label string, n int) { fmt.Fprintf(w, "%-18s %d\n", label, n) }
		heading.Fprintln(w, "Dashboard")
		row("conversations", d.Conversations)
		row("messages", d.Messages)
		row("health readings", d.HealthReadings)
		row("spiritual entries", d.SpiritualEntries)
		row("media", d.MediaItems)
		fmt.Fprintf(w, "%-18s %d (%d active)\n", "tasks", d.Tasks.Total, d.Tasks.Active)
		row("notes", d.Notes)
		row("memories", d.Memories)
		row("reminders", d.Reminders)
		row("folders", d.Folders)
		if d.ActiveTrip {
			warn.Fprintln(w, "trip running")
		}
		if len(d.Unsaved) > 0 {
			warn.Fprintf(w, "unsaved: %s\n", strings.Join(d.Unsaved, ", "))
		}
	})
}
