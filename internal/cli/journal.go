package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/companion/internal/model"
)

func init() {
	spiritualCmd := &cobra.Command{
		Use:   "spiritual",
		Short: "Reflections, prayers and gratitude",
	}
	add := &cobra.Command{
		Use:   "add <reflection|prayer|gratitude> <content>",
		Short: "Add an entry",
		Args:  cobra.MinimumNArgs(2),
		Run:   runSpiritualAdd,
	}
	add.Flags().StringP("scripture", "s", "", "Scripture reference")
	spiritualCmd.AddCommand(add)
	list := &cobra.Command{
		Use:   "list",
		Short: "List entries, newest first",
		Args:  cobra.NoArgs,
		Run:   runSpiritualList,
	}
	list.Flags().StringP("type", "t", "", "Only entries of this type")
	spiritualCmd.AddCommand(list)
	RootCmd.AddCommand(spiritualCmd)

	mediaCmd := &cobra.Command{
		Use:   "media",
		Short: "Books, films, music and podcasts",
	}
	mediaAdd := &cobra.Command{
		Use:   "add <book|film|music|podcast> <title>",
		Short: "Log a media item",
		Args:  cobra.MinimumNArgs(2),
		Run:   runMediaAdd,
	}
	mediaAdd.Flags().String("creator", "", "Author, director or artist (required)")
	mediaAdd.Flags().IntP("rating", "r", 0, "Rating from 1 to 10 (required)")
	mediaAdd.Flags().String("reflection", "", "Reflection")
	mediaAdd.MarkFlagRequired("creator")
	mediaAdd.MarkFlagRequired("rating")
	mediaCmd.AddCommand(mediaAdd)
	mediaList := &cobra.Command{
		Use:   "list",
		Short: "List media, newest first",
		Args:  cobra.NoArgs,
		Run:   runMediaList,
	}
	mediaList.Flags().StringP("type", "t", "", "Only items of this type")
	mediaCmd.AddCommand(mediaList)
	RootCmd.AddCommand(mediaCmd)
}

func printSpiritual(w io.Writer, entries []model.SpiritualEntry) {
	for _, e := range entries {
		ref := ""
		if e.ScriptureReference != "" {
			ref = " " + faint.Sprintf("(%s)", e.ScriptureReference)
		}
		fmt.Fprintf(w, "%s  %s  %s%s\n", faint.Sprint(stamp(e.Timestamp)), heading.Sprint(e.Type), e.Content, ref)
	}
}

func runSpiritualAdd(cmd *cobra.Command, args []string) {
	scripture, _ := cmd.Flags().GetString("scripture")

	s := openApp(cmd)
	defer s.Close()

	e, err := s.app.AddSpiritualEntry(cmd.Context(), args[0], strings.Join(args[1:], " "), scripture)
	if err != nil {
		exitErr("add entry", err)
	}
	emit(cmd, e, func(w io.Writer) { printSpiritual(w, []model.SpiritualEntry{e}) })
}

func runSpiritualList(cmd *cobra.Command, args []string) {
	kind, _ := cmd.Flags().GetString("type")

	s := openApp(cmd)
	defer s.Close()

	entries := s.app.SpiritualEntries(kind)
	emit(cmd, entries, func(w io.Writer) { printSpiritual(w, entries) })
}

func printMedia(w io.Writer, entries []model.MediaEntry) {
	for _, e := range entries {
		fmt.Fprintf(w, "%s  %-7s %s by %s  %d/10\n", faint.Sprint(stamp(e.Timestamp)), e.Type, heading.Sprint(e.Title), e.Creator, e.Rating)
	}
}

func runMediaAdd(cmd *cobra.Command, args []string) {
	creator, _ := cmd.Flags().GetString("creator")
	rating, _ := cmd.Flags().GetInt("rating")
	reflection, _ := cmd.Flags().GetString("reflection")

	s := openApp(cmd)
	defer s.Close()

	e, err := s.app.AddMediaEntry(cmd.Context(), args[0], strings.Join(args[1:], " "), creator, rating, reflection)
	if err != nil {
		exitErr("add media", err)
	}
	emit(cmd, e, func(w io.Writer) { printMedia(w, []model.MediaEntry{e}) })
}

func runMediaList(cmd *cobra.Command, args []string) {
	kind, _ := cmd.Flags().GetString("type")

	s := openApp(cmd)
	defer s.Close()

	entries := s.app.MediaEntries(kind)
	avg := s.app.MediaAverageRating(kind)
	emit(cmd, map[string]any{"items": entries, "averageRating": avg}, func(w io.Writer) {
		printMedia(w, entries)
		if len(entries) > 0 {
			faint.Fprintf(w, "average %.1f/10 over %d\n", avg, len(entries))
		}
	})
}
