package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rcliao/companion/internal/model"
)

func init() {
	vaultCmd := &cobra.Command{
		Use:   "vault",
		Short: "API keys for external providers",
	}
	vaultCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Show stored keys, masked",
		Args:  cobra.NoArgs,
		Run:   runVaultList,
	})
	vaultCmd.AddCommand(&cobra.Command{
		Use:   "set <gemini|googleCloud|openai|claude|grok> [key]",
		Short: "Store a key",
		Long:  "Store a key for a provider. The key can be positional or piped via stdin. An empty key clears the slot.",
		Args:  cobra.RangeArgs(1, 2),
		Run:   runVaultSet,
	})
	vaultCmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every stored key",
		Args:  cobra.NoArgs,
		Run:   runVaultClear,
	})
	vaultCmd.AddCommand(&cobra.Command{
		Use:   "test <provider>",
		Short: "Check a stored key against its provider",
		Args:  cobra.ExactArgs(1),
		Run:   runVaultTest,
	})
	RootCmd.AddCommand(vaultCmd)
}

func runVaultList(cmd *cobra.Command, args []string) {
	s := openApp(cmd)
	defer s.Close()

	masked := s.app.ProviderKeys().Masked()
	emit(cmd, masked, func(w io.Writer) {
		for _, p := range model.Providers {
			key, _ := masked.Get(p)
			if key == "" {
				key = faint.Sprint("not set")
			}
			fmt.Fprintf(w, "%-12s %s\n", p, key)
		}
	})
}

func runVaultSet(cmd *cobra.Command, args []string) {
	key := ""
	if len(args) == 2 {
		key = args[1]
	} else {
		key = readStdin()
	}

	s := openApp(cmd)
	defer s.Close()

	if err := s.app.SetProviderKey(cmd.Context(), model.Provider(args[0]), key); err != nil {
		exitErr("set key", err)
	}
	ok(cmd, args[0])
}

func runVaultClear(cmd *cobra.Command, args []string) {
	s := openApp(cmd)
	defer s.Close()

	if !confirm(cmd, "Remove every stored API key?") {
		warn.Fprintln(cmd.ErrOrStderr(), "aborted")
		return
	}
	if err := s.app.ClearProviderKeys(cmd.Context()); err != nil {
		exitErr("clear keys", err)
	}
	ok(cmd, "vault")
}

func runVaultTest(cmd *cobra.Command, args []string) {
	s := openApp(cmd)
	defer s.Close()

	if err := s.app.ProbeProvider(cmd.Context(), model.Provider(args[0])); err != nil {
		exitErr("test "+args[0], err)
	}
	emit(cmd, map[string]any{"ok": true, "provider": args[0]}, func(w io.Writer) {
		fmt.Fprintf(w, "%s %s key accepted\n", heading.Sprint("ok"), args[0])
	})
}
