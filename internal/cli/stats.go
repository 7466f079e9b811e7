package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show database statistics",
		Args:  cobra.NoArgs,
		Run:   runStats,
	}

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	s := openApp(cmd)
	defer s.Close()

	stats, err := s.kv.Stats(cmd.Context())
	if err != nil {
		exitErr("stats", err)
	}

	emit(cmd, stats, func(w io.Writer) {
		fmt.Fprintf(w, "%s  %d bytes on disk, %d keys, %d bytes of data\n",
			heading.Sprint(stats.DBPath), stats.DBSizeBytes, stats.TotalKeys, stats.TotalBytes)
		for _, k := range stats.Keys {
			fmt.Fprintf(w, "  %-20s %8d  %s\n", k.Key, k.Bytes, faint.Sprint(k.UpdatedAt))
		}
	})
}
