package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every collection as JSON",
		Long:  "Export every stored collection as one JSON object keyed by storage key. Writes to stdout unless -o is given.",
		Args:  cobra.NoArgs,
		Run:   runExport,
	}

	cmd.Flags().StringP("out", "o", "", "Write to this file")

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	out, _ := cmd.Flags().GetString("out")

	s := openApp(cmd)
	defer s.Close()

	b, err := s.app.Export(cmd.Context())
	if err != nil {
		exitErr("export", err)
	}

	if out == "" {
		fmt.Fprintln(cmd.OutOrStdout(), string(b))
		return
	}
	if err := os.WriteFile(out, append(b, '\n'), 0o600); err != nil {
		exitErr("export", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"path":%q,"bytes":%d}`+"\n", out, len(b))
}
