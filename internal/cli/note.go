package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/companion/internal/model"
)

func init() {
	noteCmd := &cobra.Command{
		Use:   "note",
		Short: "Notes",
	}
	create := &cobra.Command{
		Use:   "new [content]",
		Short: "Create a note",
		Long:  "Create a note. Content can be positional or piped via stdin.",
		Run:   runNoteNew,
	}
	create.Flags().StringP("title", "t", "", "Title (default: New Note)")
	noteCmd.AddCommand(create)

	edit := &cobra.Command{
		Use:   "edit <id>",
		Short: "Replace a note's title or content",
		Args:  cobra.ExactArgs(1),
		Run:   runNoteEdit,
	}
	edit.Flags().StringP("title", "t", "", "New title")
	edit.Flags().String("content", "", "New content")
	noteCmd.AddCommand(edit)

	noteCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List notes, newest first",
		Args:  cobra.NoArgs,
		Run:   runNoteList,
	})
	noteCmd.AddCommand(&cobra.Command{
		Use:   "search <query>",
		Short: "Search notes",
		Args:  cobra.MinimumNArgs(1),
		Run:   runNoteSearch,
	})
	noteCmd.AddCommand(&cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		Run:   runNoteRm,
	})
	RootCmd.AddCommand(noteCmd)

	memoryCmd := &cobra.Command{
		Use:   "memory",
		Short: "Standing instructions for the assistant",
	}
	memoryCmd.AddCommand(&cobra.Command{
		Use:   "add <title> <instructions>",
		Short: "Add a memory",
		Args:  cobra.MinimumNArgs(2),
		Run:   runMemoryAdd,
	})
	memoryCmd.AddCommand(&cobra.Command{
		Use:   "edit <id> <title> <instructions>",
		Short: "Replace a memory",
		Args:  cobra.MinimumNArgs(3),
		Run:   runMemoryEdit,
	})
	memoryCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List memories",
		Args:  cobra.NoArgs,
		Run:   runMemoryList,
	})
	memoryCmd.AddCommand(&cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a memory",
		Args:  cobra.ExactArgs(1),
		Run:   runMemoryRm,
	})
	RootCmd.AddCommand(memoryCmd)
}

func printNotes(w io.Writer, notes []model.Note) {
	for _, n := range notes {
		fmt.Fprintf(w, "%s  %s  %s\n", faint.Sprint(n.ID), stamp(n.Timestamp), heading.Sprint(n.Title))
		if n.Content != "" {
			fmt.Fprintf(w, "    %s\n", strings.ReplaceAll(n.Content, "\n", "\n    "))
		}
	}
}

func runNoteNew(cmd *cobra.Command, args []string) {
	title, _ := cmd.Flags().GetString("title")
	content := strings.Join(args, " ")
	if content == "" {
		content = strings.TrimSpace(readStdin())
	}

	s := openApp(cmd)
	defer s.Close()

	n, err := s.app.CreateNote(cmd.Context(), title, content)
	if err != nil {
		exitErr("create note", err)
	}
	emit(cmd, n, func(w io.Writer) { printNotes(w, []model.Note{n}) })
}

func runNoteEdit(cmd *cobra.Command, args []string) {
	s := openApp(cmd)
	defer s.Close()

	var current model.Note
	for _, n := range s.app.Notes() {
		if n.ID == args[0] {
			current = n
		}
	}
	title, content := current.Title, current.Content
	if cmd.Flags().Changed("title") {
		title, _ = cmd.Flags().GetString("title")
	}
	if cmd.Flags().Changed("content") {
		content, _ = cmd.Flags().GetString("content")
	}

	n, err := s.app.EditNote(cmd.Context(), args[0], title, content)
	if err != nil {
		exitErr("edit note", err)
	}
	emit(cmd, n, func(w io.Writer) { printNotes(w, []model.Note{n}) })
}

func runNoteList(cmd *cobra.Command, args []string) {
	s := openApp(cmd)
	defer s.Close()

	notes := s.app.Notes()
	emit(cmd, notes, func(w io.Writer) { printNotes(w, notes) })
}

func runNoteSearch(cmd *cobra.Command, args []string) {
	s := openApp(cmd)
	defer s.Close()

	notes := s.app.SearchNotes(strings.Join(args, " "))
	emit(cmd, notes, func(w io.Writer) { printNotes(w, notes) })
}

func runNoteRm(cmd *cobra.Command, args []string) {
	s := openApp(cmd)
	defer s.Close()

	if err := s.app.DeleteNote(cmd.Context(), args[0]); err != nil {
		exitErr("delete note", err)
	}
	ok(cmd, args[0])
}

func printMemories(w io.Writer, mems []model.NeuralMemory) {
	for _, m := range mems {
		fmt.Fprintf(w, "%s  %s: %s\n", faint.Sprint(m.ID), heading.Sprint(m.Title), m.Instructions)
	}
}

func runMemoryAdd(cmd *cobra.Command, args []string) {
	s := openApp(cmd)
	defer s.Close()

	m, err := s.app.AddMemory(cmd.Context(), args[0], strings.Join(args[1:], " "))
	if err != nil {
		exitErr("add memory", err)
	}
	emit(cmd, m, func(w io.Writer) { printMemories(w, []model.NeuralMemory{m}) })
}

func runMemoryEdit(cmd *cobra.Command, args []string) {
	s := openApp(cmd)
	defer s.Close()

	m, err := s.app.UpdateMemory(cmd.Context(), args[0], args[1], strings.Join(args[2:], " "))
	if err != nil {
		exitErr("edit memory", err)
	}
	emit(cmd, m, func(w io.Writer) { printMemories(w, []model.NeuralMemory{m}) })
}

func runMemoryList(cmd *cobra.Command, args []string) {
	s := openApp(cmd)
	defer s.Close()

	mems := s.app.Memories()
	emit(cmd, mems, func(w io.Writer) { printMemories(w, mems) })
}

func runMemoryRm(cmd *cobra.Command, args []string) {
	s := openApp(cmd)
	defer s.Close()

	if err := s.app.DeleteMemory(cmd.Context(), args[0]); err != nil {
		exitErr("delete memory", err)
	}
	ok(cmd, args[0])
}
