package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/companion/internal/model"
	"github.com/rcliao/companion/internal/transcript"
)

func init() {
	chatCmd := &cobra.Command{
		Use:   "chat",
		Short: "Conversations with the assistant",
	}

	chatCmd.AddCommand(&cobra.Command{
		Use:   "new",
		Short: "Start a conversation",
		Args:  cobra.NoArgs,
		Run:   runChatNew,
	})
	chatCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List conversations, most recent first",
		Args:  cobra.NoArgs,
		Run:   runChatList,
	})

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a conversation",
		Args:  cobra.ExactArgs(1),
		Run:   runChatShow,
	}
	show.Flags().Bool("html", false, "Render the transcript as HTML")
	show.Flags().Bool("md", false, "Render the transcript as Markdown")
	chatCmd.AddCommand(show)

	chatCmd.AddCommand(&cobra.Command{
		Use:   "send <id> [message]",
		Short: "Send a message and print the reply",
		Long:  "Send a message to a conversation. The message can be positional or piped via stdin.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runChatSend,
	})
	chatCmd.AddCommand(&cobra.Command{
		Use:   "rename <id> <title>",
		Short: "Rename a conversation",
		Args:  cobra.MinimumNArgs(2),
		Run:   runChatRename,
	})
	chatCmd.AddCommand(&cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a conversation",
		Args:  cobra.ExactArgs(1),
		Run:   runChatRm,
	})
	chatCmd.AddCommand(&cobra.Command{
		Use:   "search <query>",
		Short: "Search titles and messages",
		Args:  cobra.MinimumNArgs(1),
		Run:   runChatSearch,
	})
	chatCmd.AddCommand(&cobra.Command{
		Use:   "mode <id> <mode>",
		Short: "Set a conversation's chat mode",
		Args:  cobra.ExactArgs(2),
		Run:   runChatMode,
	})
	chatCmd.AddCommand(&cobra.Command{
		Use:   "agent <id> <agent-id>",
		Short: "Assign a conversation to an agent",
		Args:  cobra.ExactArgs(2),
		Run:   runChatAgent,
	})

	RootCmd.AddCommand(chatCmd)
}

func printConversations(w io.Writer, convs []model.Conversation) {
	for _, c := range convs {
		fmt.Fprintf(w, "%s  %s  %s (%d)\n", faint.Sprint(c.ID), stamp(c.LastUpdate), c.Title, len(c.Messages))
	}
}

func printMessages(w io.Writer, c model.Conversation, assistant string) {
	heading.Fprintln(w, c.Title)
	for _, m := range c.Messages {
		who := "You"
		if m.Role == model.RoleAssistant {
			who = assistant
		}
		fmt.Fprintf(w, "%s %s\n%s\n\n", heading.Sprint(who), faint.Sprint(stamp(m.Timestamp)), m.Content)
	}
}

func runChatNew(cmd *cobra.Command, args []string) {
	s := openApp(cmd)
	defer s.Close()

	c, err := s.app.NewConversation(cmd.Context())
	if err != nil {
		exitErr("new conversation", err)
	}
	emit(cmd, c, func(w io.Writer) { printConversations(w, []model.Conversation{c}) })
}

func runChatList(cmd *cobra.Command, args []string) {
	s := openApp(cmd)
	defer s.Close()

	convs := s.app.Conversations()
	emit(cmd, convs, func(w io.Writer) { printConversations(w, convs) })
}

func agentName(s *session, id string) string {
	if ag, err := s.app.Agent(id); err == nil {
		return ag.Name
	}
	return "FREDO"
}

func runChatShow(cmd *cobra.Command, args []string) {
	asHTML, _ := cmd.Flags().GetBool("html")
	asMD, _ := cmd.Flags().GetBool("md")

	s := openApp(cmd)
	defer s.Close()

	c, err := s.app.Conversation(args[0])
	if err != nil {
		exitErr("show conversation", err)
	}
	name := agentName(s, c.AgentID)

	switch {
	case asHTML:
		out, err := transcript.HTML(c, name, nil)
		if err != nil {
			exitErr("show conversation", err)
		}
		cmd.OutOrStdout().Write(out)
	case asMD:
		fmt.Fprint(cmd.OutOrStdout(), transcript.Markdown(c, name, nil))
	default:
		emit(cmd, c, func(w io.Writer) { printMessages(w, c, name) })
	}
}

func runChatSend(cmd *cobra.Command, args []string) {
	text := strings.Join(args[1:], " ")
	if text == "" {
		text = readStdin()
	}

	s := openApp(cmd)
	defer s.Close()
	s.connectGateway(cmd)

	c, err := s.app.Send(cmd.Context(), args[0], text)
	if err != nil {
		exitErr("send", err)
	}
	last := c.Messages[len(c.Messages)-1]
	emit(cmd, last, func(w io.Writer) {
		fmt.Fprintf(w, "%s %s\n", heading.Sprint(agentName(s, c.AgentID)), last.Content)
	})
}

func runChatRename(cmd *cobra.Command, args []string) {
	s := openApp(cmd)
	defer s.Close()

	c, err := s.app.RenameConversation(cmd.Context(), args[0], strings.Join(args[1:], " "))
	if err != nil {
		exitErr("rename conversation", err)
	}
	ok(cmd, c.ID)
}

func runChatRm(cmd *cobra.Command, args []string) {
	s := openApp(cmd)
	defer s.Close()

	if err := s.app.DeleteConversation(cmd.Context(), args[0]); err != nil {
		exitErr("delete conversation", err)
	}
	ok(cmd, args[0])
}

func runChatSearch(cmd *cobra.Command, args []string) {
	s := openApp(cmd)
	defer s.Close()

	convs := s.app.SearchConversations(strings.Join(args, " "))
	emit(cmd, convs, func(w io.Writer) { printConversations(w, convs) })
}

func runChatMode(cmd *cobra.Command, args []string) {
	s := openApp(cmd)
	defer s.Close()

	c, err := s.app.SetConversationMode(cmd.Context(), args[0], args[1])
	if err != nil {
		exitErr("set mode", err)
	}
	ok(cmd, c.ID)
}

func runChatAgent(cmd *cobra.Command, args []string) {
	s := openApp(cmd)
	defer s.Close()

	c, err := s.app.SetConversationAgent(cmd.Context(), args[0], args[1])
	if err != nil {
		exitErr("set agent", err)
	}
	ok(cmd, c.ID)
}
