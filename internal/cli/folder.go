package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rcliao/companion/internal/model"
)

func init() {
	folderCmd := &cobra.Command{
		Use:   "folder",
		Short: "Folders of conversations and files",
	}

	folderCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List folders",
		Args:  cobra.NoArgs,
		Run:   runFolderList,
	})

	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a folder",
		Args:  cobra.ExactArgs(1),
		Run:   runFolderCreate,
	}
	create.Flags().String("access", "open", "Default file access: open or sealed")
	folderCmd.AddCommand(create)

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Rename a folder or change its default access",
		Args:  cobra.ExactArgs(1),
		Run:   runFolderUpdate,
	}
	update.Flags().String("name", "", "New name")
	update.Flags().String("access", "", "Default file access: open or sealed")
	update.Flags().Bool("collapsed", false, "Show the folder collapsed")
	folderCmd.AddCommand(update)

	folderCmd.AddCommand(&cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a folder and its files (conversations are kept)",
		Args:  cobra.ExactArgs(1),
		Run:   runFolderRm,
	})
	folderCmd.AddCommand(&cobra.Command{
		Use:   "attach <folder-id> <conversation-id>",
		Short: "Add a conversation to a folder",
		Args:  cobra.ExactArgs(2),
		Run:   runFolderAttach,
	})
	folderCmd.AddCommand(&cobra.Command{
		Use:   "detach <folder-id> <conversation-id>",
		Short: "Remove a conversation from a folder",
		Args:  cobra.ExactArgs(2),
		Run:   runFolderDetach,
	})

	fileCmd := &cobra.Command{
		Use:   "file",
		Short: "Files owned by a folder",
	}
	add := &cobra.Command{
		Use:   "add <folder-id> <name>",
		Short: "Add a file record",
		Args:  cobra.ExactArgs(2),
		Run:   runFileAdd,
	}
	add.Flags().String("mime", "application/octet-stream", "MIME type")
	add.Flags().String("data", "", "Payload placeholder")
	fileCmd.AddCommand(add)
	fileCmd.AddCommand(&cobra.Command{
		Use:   "rm <folder-id> <file-id>",
		Short: "Delete a file",
		Args:  cobra.ExactArgs(2),
		Run:   runFileRm,
	})
	fileCmd.AddCommand(&cobra.Command{
		Use:   "access <folder-id> <file-id> [open|sealed|inherit]",
		Short: "Show or set a file's access",
		Long:  "Without a level, prints the file's effective access. With one, sets the file override.",
		Args:  cobra.RangeArgs(2, 3),
		Run:   runFileAccess,
	})
	folderCmd.AddCommand(fileCmd)

	RootCmd.AddCommand(folderCmd)
}

func runFolderList(cmd *cobra.Command, args []string) {
	s := openApp(cmd)
	defer s.Close()

	folders := s.app.Folders()
	emit(cmd, folders, func(w io.Writer) {
		for _, f := range folders {
			fmt.Fprintf(w, "%s  %s [%s] %d conversations, %d files\n",
				faint.Sprint(f.ID), heading.Sprint(f.Name), f.ThreadAccess, len(f.ConversationIDs), len(f.Files))
			for _, file := range f.Files {
				fmt.Fprintf(w, "    %s  %s (%s)\n", faint.Sprint(file.ID), file.Name, model.EffectiveAccess(file, f))
			}
		}
	})
}

func runFolderCreate(cmd *cobra.Command, args []string) {
	access, _ := cmd.Flags().GetString("access")

	s := openApp(cmd)
	defer s.Close()

	f, err := s.app.CreateFolder(cmd.Context(), args[0], model.ThreadAccess(access))
	if err != nil {
		exitErr("create folder", err)
	}
	emit(cmd, f, nil)
}

func runFolderUpdate(cmd *cobra.Command, args []string) {
	name, _ := cmd.Flags().GetString("name")
	access, _ := cmd.Flags().GetString("access")

	s := openApp(cmd)
	defer s.Close()

	f, err := s.app.UpdateFolder(cmd.Context(), args[0], name, model.ThreadAccess(access))
	if err != nil {
		exitErr("update folder", err)
	}
	if cmd.Flags().Changed("collapsed") {
		collapsed, _ := cmd.Flags().GetBool("collapsed")
		if f, err = s.app.SetFolderCollapsed(cmd.Context(), f.ID, collapsed); err != nil {
			exitErr("update folder", err)
		}
	}
	emit(cmd, f, nil)
}

func runFolderRm(cmd *cobra.Command, args []string) {
	s := openApp(cmd)
	defer s.Close()

	f, err := s.app.Folder(args[0])
	if err != nil {
		exitErr("delete folder", err)
	}
	if !confirm(cmd, fmt.Sprintf("Delete folder %q and its %d files?", f.Name, len(f.Files))) {
		warn.Fprintln(cmd.ErrOrStderr(), "aborted")
		return
	}
	if err := s.app.DeleteFolder(cmd.Context(), f.ID); err != nil {
		exitErr("delete folder", err)
	}
	ok(cmd, f.ID)
}

func runFolderAttach(cmd *cobra.Command, args []string) {
	s := openApp(cmd)
	defer s.Close()

	f, err := s.app.AttachConversation(cmd.Context(), args[0], args[1])
	if err != nil {
		exitErr("attach conversation", err)
	}
	emit(cmd, f, nil)
}

func runFolderDetach(cmd *cobra.Command, args []string) {
	s := openApp(cmd)
	defer s.Close()

	f, err := s.app.DetachConversation(cmd.Context(), args[0], args[1])
	if err != nil {
		exitErr("detach conversation", err)
	}
	emit(cmd, f, nil)
}

func runFileAdd(cmd *cobra.Command, args []string) {
	mime, _ := cmd.Flags().GetString("mime")
	data, _ := cmd.Flags().GetString("data")

	s := openApp(cmd)
	defer s.Close()

	file, err := s.app.AddFile(cmd.Context(), args[0], args[1], mime, data)
	if err != nil {
		exitErr("add file", err)
	}
	emit(cmd, file, nil)
}

func runFileRm(cmd *cobra.Command, args []string) {
	s := openApp(cmd)
	defer s.Close()

	if err := s.app.DeleteFile(cmd.Context(), args[0], args[1]); err != nil {
		exitErr("delete file", err)
	}
	ok(cmd, args[1])
}

func runFileAccess(cmd *cobra.Command, args []string) {
	s := openApp(cmd)
	defer s.Close()

	if len(args) == 3 {
		if _, err := s.app.SetFileAccess(cmd.Context(), args[0], args[1], model.ThreadAccess(args[2])); err != nil {
			exitErr("set file access", err)
		}
	}
	access, err := s.app.FileAccess(args[0], args[1])
	if err != nil {
		exitErr("file access", err)
	}
	emit(cmd, map[string]any{"id": args[1], "access": access}, func(w io.Writer) {
		fmt.Fprintln(w, access)
	})
}
