package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import collections from an export",
		Long:  "Import collections from JSON (file or stdin). Each key present replaces its whole collection. Keys from older backups are accepted.",
		Args:  cobra.MaximumNArgs(1),
		Run:   runImport,
	}

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	var (
		data []byte
		err  error
	)
	if len(args) == 1 {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		exitErr("read import", err)
	}

	s := openApp(cmd)
	defer s.Close()

	report, err := s.app.Import(cmd.Context(), data)
	emit(cmd, report, func(w io.Writer) {
		fmt.Fprintf(w, "restored %s\n", strings.Join(report.Restored, ", "))
		if len(report.Unknown) > 0 {
			warn.Fprintf(w, "unknown %s\n", strings.Join(report.Unknown, ", "))
		}
		if len(report.Skipped) > 0 {
			warn.Fprintf(w, "skipped null %s\n", strings.Join(report.Skipped, ", "))
		}
	})
	if err != nil {
		exitErr("import", err)
	}
}
