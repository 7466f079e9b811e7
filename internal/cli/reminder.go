package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rcliao/companion/internal/model"
)

func init() {
	reminderCmd := &cobra.Command{
		Use:   "reminder",
		Short: "Reminders (stored only; nothing fires them)",
	}
	add := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a reminder",
		Args:  cobra.MinimumNArgs(1),
		Run:   runReminderAdd,
	}
	add.Flags().String("due", "", `Due time, RFC 3339 or "YYYY-MM-DD HH:MM" (required)`)
	add.Flags().String("repeat", model.RepeatOnce, "once, daily or weekly")
	add.MarkFlagRequired("due")
	reminderCmd.AddCommand(add)

	edit := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a reminder",
		Args:  cobra.ExactArgs(1),
		Run:   runReminderEdit,
	}
	edit.Flags().String("title", "", "New title")
	edit.Flags().String("due", "", "New due time")
	edit.Flags().String("repeat", "", "once, daily or weekly")
	reminderCmd.AddCommand(edit)

	reminderCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List reminders, soonest first",
		Args:  cobra.NoArgs,
		Run:   runReminderList,
	})
	reminderCmd.AddCommand(&cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a reminder",
		Args:  cobra.ExactArgs(1),
		Run:   runReminderRm,
	})
	RootCmd.AddCommand(reminderCmd)
}

func printReminders(w io.Writer, rs []model.Reminder) {
	now := time.Now()
	for _, r := range rs {
		next := r.Next(now)
		fmt.Fprintf(w, "%s  %s  %-6s %s\n", faint.Sprint(r.ID), next.Local().Format("2006-01-02 15:04"), r.Repeat, r.Title)
	}
}

func runReminderAdd(cmd *cobra.Command, args []string) {
	dueStr, _ := cmd.Flags().GetString("due")
	repeat, _ := cmd.Flags().GetString("repeat")
	due, err := parseTime(dueStr)
	if err != nil {
		exitErr("add reminder", err)
	}

	s := openApp(cmd)
	defer s.Close()

	r, err := s.app.AddReminder(cmd.Context(), strings.Join(args, " "), due, repeat)
	if err != nil {
		exitErr("add reminder", err)
	}
	emit(cmd, r, func(w io.Writer) { printReminders(w, []model.Reminder{r}) })
}

func runReminderEdit(cmd *cobra.Command, args []string) {
	s := openApp(cmd)
	defer s.Close()

	var current model.Reminder
	for _, r := range s.app.Reminders() {
		if r.ID == args[0] {
			current = r
		}
	}
	title, due, repeat := current.Title, current.Timestamp.Time(), current.Repeat
	if cmd.Flags().Changed("title") {
		title, _ = cmd.Flags().GetString("title")
	}
	if cmd.Flags().Changed("repeat") {
		repeat, _ = cmd.Flags().GetString("repeat")
	}
	if cmd.Flags().Changed("due") {
		dueStr, _ := cmd.Flags().GetString("due")
		t, err := parseTime(dueStr)
		if err != nil {
			exitErr("edit reminder", err)
		}
		due = t
	}

	r, err := s.app.UpdateReminder(cmd.Context(), args[0], title, due, repeat)
	if err != nil {
		exitErr("edit reminder", err)
	}
	emit(cmd, r, func(w io.Writer) { printReminders(w, []model.Reminder{r}) })
}

func runReminderList(cmd *cobra.Command, args []string) {
	s := openApp(cmd)
	defer s.Close()

	rs := s.app.Reminders()
	emit(cmd, rs, func(w io.Writer) { printReminders(w, rs) })
}

func runReminderRm(cmd *cobra.Command, args []string) {
	s := openApp(cmd)
	defer s.Close()

	if err := s.app.DeleteReminder(cmd.Context(), args[0]); err != nil {
		exitErr("delete reminder", err)
	}
	ok(cmd, args[0])
}
