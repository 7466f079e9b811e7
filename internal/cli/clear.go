package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all stored data",
		Long:  "Delete every collection, settings and API keys. Seed data returns on the next run.",
		Args:  cobra.NoArgs,
		Run:   runClear,
	}

	RootCmd.AddCommand(cmd)
}

func runClear(cmd *cobra.Command, args []string) {
	s := openApp(cmd)
	defer s.Close()

	if !confirm(cmd, "Delete ALL data, including API keys? This cannot be undone.") {
		warn.Fprintln(cmd.ErrOrStderr(), "aborted")
		return
	}
	if err := s.app.ClearAll(cmd.Context()); err != nil {
		exitErr("clear", err)
	}
	ok(cmd, "all")
}
