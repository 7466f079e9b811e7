// Package cli implements the companion CLI commands.
package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/rcliao/companion/internal/companion"
	"github.com/rcliao/companion/internal/config"
	"github.com/rcliao/companion/internal/gateway"
	"github.com/rcliao/companion/internal/logging"
	"github.com/rcliao/companion/internal/model"
	"github.com/rcliao/companion/internal/store"
)

var (
	dbPath     string
	configPath string
	formatFlag string
	assumeYes  bool

	// current is the session opened by the running command, closed by exitErr.
	current *session
	osExit  = os.Exit
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "companion",
	Short: "A personal companion kept in one local store",
	Long:  "Chat, health, journal, tasks and notes for one person. Everything lives in a single SQLite file.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $COMPANION_DB or ~/.companion/companion.db)")
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: $COMPANION_CONFIG or ~/.companion/config.toml)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "json", "Output format: json or text")
	RootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "Skip confirmation prompts")
}

func getConfigPath() string {
	if configPath != "" {
		return configPath
	}
	if env := os.Getenv(config.EnvConfig); env != "" {
		return env
	}
	return config.DefaultPath()
}

func loadConfig() *config.Config {
	cfg, err := config.Load(getConfigPath())
	if err != nil {
		exitErr("load config", err)
	}
	if dbPath != "" {
		cfg.Data.DBPath = dbPath
	}
	return cfg
}

// session is an open store and the app loaded from it.
type session struct {
	cfg *config.Config
	log *slog.Logger
	kv  *store.SQLiteStore
	app *companion.App
}

// openApp opens the store and loads every collection. Collections that fail
// to load are reported and left empty; the command still runs.
func openApp(cmd *cobra.Command) *session {
	cfg := loadConfig()
	log := logging.New(cfg.Logging, os.Stderr)

	kv, err := store.NewSQLiteStore(cfg.Data.DBPath)
	if err != nil {
		exitErr("open store", err)
	}
	app := companion.New(kv, companion.WithLogger(log))
	if err := app.Load(cmd.Context()); err != nil {
		log.Warn("loaded with errors", "error", err)
	}
	current = &session{cfg: cfg, log: log, kv: kv, app: app}
	return current
}

// connectGateway builds the chat gateway from config, falling back to the
// vault key for the configured provider. Without a usable key the app keeps
// answering with the fallback reply.
func (s *session) connectGateway(cmd *cobra.Command) {
	chat := s.cfg.Chat
	if chat.APIKey == "" {
		if key, err := s.app.ProviderKeys().Get(model.Provider(chat.Provider)); err == nil {
			chat.APIKey = key
		}
	}
	g, err := gateway.New(cmd.Context(), chat)
	if err != nil {
		s.log.Warn("chat gateway unavailable", "provider", chat.Provider, "error", err)
		return
	}
	s.app.SetGateway(g)
}

func (s *session) Close() {
	if s.kv == nil {
		return
	}
	if err := s.app.Close(); err != nil {
		s.log.Warn("close gateway", "error", err)
	}
	s.kv.Close()
	s.kv = nil
	if current == s {
		current = nil
	}
}

// exitErr reports err and exits 1. Deferred calls do not run on exit, so the
// open session is closed here.
func exitErr(msg string, err error) {
	if current != nil {
		current.Close()
	}
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	osExit(1)
}

func textOutput() bool {
	return formatFlag == "text"
}

// emit prints v as indented JSON, or through text when --format=text.
func emit(cmd *cobra.Command, v any, text func(w io.Writer)) {
	w := cmd.OutOrStdout()
	if textOutput() && text != nil {
		text(w)
		return
	}
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(w, string(b))
}

func ok(cmd *cobra.Command, id string) {
	emit(cmd, map[string]any{"ok": true, "id": id}, func(w io.Writer) {
		fmt.Fprintf(w, "%s %s\n", color.GreenString("ok"), id)
	})
}

// confirm asks before destructive commands unless --yes was given.
func confirm(cmd *cobra.Command, prompt string) bool {
	if assumeYes {
		return true
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s [y/N] ", prompt)
	line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

var (
	heading = color.New(color.FgCyan, color.Bold)
	faint   = color.New(color.FgHiBlack)
	warn    = color.New(color.FgYellow)
)

func stamp(m model.Millis) string {
	return m.Time().Local().Format("2006-01-02 15:04")
}

// parseTime accepts RFC 3339 or a local "2006-01-02 15:04".
func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: want RFC 3339 or YYYY-MM-DD HH:MM", s)
	}
	return t, nil
}

// readStdin returns piped input, or "" when stdin is a terminal.
func readStdin() string {
	stat, _ := os.Stdin.Stat()
	if (stat.Mode() & os.ModeCharDevice) != 0 {
		return ""
	}
	b, err := io.ReadAll(os.Stdin)
	if err != nil {
		exitErr("read stdin", err)
	}
	return string(b)
}
