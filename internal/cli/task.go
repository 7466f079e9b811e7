package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/companion/internal/companion"
	"github.com/rcliao/companion/internal/model"
)

func init() {
	taskCmd := &cobra.Command{
		Use:   "task",
		Short: "Tasks",
	}
	add := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		Run:   runTaskAdd,
	}
	add.Flags().StringP("priority", "p", model.DefaultPriority, "Priority: low, med, high")
	taskCmd.AddCommand(add)

	list := &cobra.Command{
		Use:   "list",
		Short: "List tasks, newest first",
		Args:  cobra.NoArgs,
		Run:   runTaskList,
	}
	list.Flags().String("filter", companion.FilterAll, "all, active or completed")
	taskCmd.AddCommand(list)

	taskCmd.AddCommand(&cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip a task between active and completed",
		Args:  cobra.ExactArgs(1),
		Run:   runTaskToggle,
	})
	taskCmd.AddCommand(&cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		Run:   runTaskRm,
	})
	taskCmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Count tasks by state",
		Args:  cobra.NoArgs,
		Run:   runTaskStats,
	})

	RootCmd.AddCommand(taskCmd)
}

func printTasks(w io.Writer, tasks []model.Task) {
	for _, t := range tasks {
		box := "[ ]"
		if t.Completed {
			box = "[x]"
		}
		fmt.Fprintf(w, "%s %s %-4s %s\n", faint.Sprint(t.ID), box, t.Priority, t.Title)
	}
}

func runTaskAdd(cmd *cobra.Command, args []string) {
	priority, _ := cmd.Flags().GetString("priority")

	s := openApp(cmd)
	defer s.Close()

	t, err := s.app.AddTask(cmd.Context(), strings.Join(args, " "), priority)
	if err != nil {
		exitErr("add task", err)
	}
	emit(cmd, t, func(w io.Writer) { printTasks(w, []model.Task{t}) })
}

func runTaskList(cmd *cobra.Command, args []string) {
	filter, _ := cmd.Flags().GetString("filter")

	s := openApp(cmd)
	defer s.Close()

	tasks, err := s.app.FilterTasks(filter)
	if err != nil {
		exitErr("list tasks", err)
	}
	emit(cmd, tasks, func(w io.Writer) { printTasks(w, tasks) })
}

func runTaskToggle(cmd *cobra.Command, args []string) {
	s := openApp(cmd)
	defer s.Close()

	t, err := s.app.ToggleTask(cmd.Context(), args[0])
	if err != nil {
		exitErr("toggle task", err)
	}
	emit(cmd, t, func(w io.Writer) { printTasks(w, []model.Task{t}) })
}

func runTaskRm(cmd *cobra.Command, args []string) {
	s := openApp(cmd)
	defer s.Close()

	if err := s.app.DeleteTask(cmd.Context(), args[0]); err != nil {
		exitErr("delete task", err)
	}
	ok(cmd, args[0])
}

func runTaskStats(cmd *cobra.Command, args []string) {
	s := openApp(cmd)
	defer s.Close()

	st := s.app.TaskStats()
	emit(cmd, st, func(w io.Writer) {
		fmt.Fprintf(w, "%d total, %d active, %d completed\n", st.Total, st.Active, st.Completed)
	})
}
