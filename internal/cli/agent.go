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
	agentCmd := &cobra.Command{
		Use:   "agent",
		Short: "Council agents the assistant can speak as",
	}
	agentCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List agents",
		Args:  cobra.NoArgs,
		Run:   runAgentList,
	})

	create := &cobra.Command{
		Use:   "create <name> <purpose>",
		Short: "Create an agent from a name and purpose",
		Args:  cobra.MinimumNArgs(2),
		Run:   runAgentCreate,
	}
	create.Flags().String("voice", model.DefaultVoicePreset, "Voice preset: "+strings.Join(model.VoicePresets, ", "))
	agentCmd.AddCommand(create)

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Change an agent",
		Args:  cobra.ExactArgs(1),
		Run:   runAgentUpdate,
	}
	update.Flags().String("name", "", "Name")
	update.Flags().String("instructions", "", "Instructions")
	update.Flags().String("voice", "", "Voice preset")
	update.Flags().Float64("speed", 1, "Voice speed, 0.5 to 2.0")
	update.Flags().Float64("pitch", 1, "Voice pitch, 0.5 to 1.5")
	agentCmd.AddCommand(update)

	agentCmd.AddCommand(&cobra.Command{
		Use:   "default <id>",
		Short: "Make an agent the default for new conversations",
		Args:  cobra.ExactArgs(1),
		Run:   runAgentDefault,
	})
	agentCmd.AddCommand(&cobra.Command{
		Use:   "rm <id>",
		Short: "Delete an agent",
		Args:  cobra.ExactArgs(1),
		Run:   runAgentRm,
	})

	sourceCmd := &cobra.Command{
		Use:   "source",
		Short: "Knowledge sources attached to an agent",
	}
	sourceCmd.AddCommand(&cobra.Command{
		Use:   "add <agent-id> <url|file> <value>",
		Short: "Attach a knowledge source",
		Args:  cobra.ExactArgs(3),
		Run:   runSourceAdd,
	})
	sourceCmd.AddCommand(&cobra.Command{
		Use:   "rm <agent-id> <source-id>",
		Short: "Detach a knowledge source",
		Args:  cobra.ExactArgs(2),
		Run:   runSourceRm,
	})
	agentCmd.AddCommand(sourceCmd)

	RootCmd.AddCommand(agentCmd)
}

func printAgents(w io.Writer, agents []model.Agent) {
	for _, a := range agents {
		mark := ""
		if a.IsDefault {
			mark = " " + warn.Sprint("(default)")
		}
		fmt.Fprintf(w, "%s  %s%s  voice %s x%.1f pitch %.1f, %d sources\n",
			faint.Sprint(a.ID), heading.Sprint(a.Name), mark, a.VoicePreset, a.VoiceSpeed, a.Pitch, len(a.KnowledgeSources))
	}
}

func runAgentList(cmd *cobra.Command, args []string) {
	s := openApp(cmd)
	defer s.Close()

	agents := s.app.Agents()
	emit(cmd, agents, func(w io.Writer) { printAgents(w, agents) })
}

func runAgentCreate(cmd *cobra.Command, args []string) {
	voice, _ := cmd.Flags().GetString("voice")

	s := openApp(cmd)
	defer s.Close()

	a, err := s.app.CreateAgent(cmd.Context(), args[0], strings.Join(args[1:], " "), voice)
	if err != nil {
		exitErr("create agent", err)
	}
	emit(cmd, a, func(w io.Writer) { printAgents(w, []model.Agent{a}) })
}

func runAgentUpdate(cmd *cobra.Command, args []string) {
	var patch companion.AgentPatch
	flags := cmd.Flags()
	if flags.Changed("name") {
		v, _ := flags.GetString("name")
		patch.Name = &v
	}
	if flags.Changed("instructions") {
		v, _ := flags.GetString("instructions")
		patch.Instructions = &v
	}
	if flags.Changed("voice") {
		v, _ := flags.GetString("voice")
		patch.VoicePreset = &v
	}
	if flags.Changed("speed") {
		v, _ := flags.GetFloat64("speed")
		patch.VoiceSpeed = &v
	}
	if flags.Changed("pitch") {
		v, _ := flags.GetFloat64("pitch")
		patch.Pitch = &v
	}

	s := openApp(cmd)
	defer s.Close()

	a, err := s.app.UpdateAgent(cmd.Context(), args[0], patch)
	if err != nil {
		exitErr("update agent", err)
	}
	emit(cmd, a, func(w io.Writer) { printAgents(w, []model.Agent{a}) })
}

func runAgentDefault(cmd *cobra.Command, args []string) {
	s := openApp(cmd)
	defer s.Close()

	a, err := s.app.SetDefaultAgent(cmd.Context(), args[0])
	if err != nil {
		exitErr("set default agent", err)
	}
	ok(cmd, a.ID)
}

func runAgentRm(cmd *cobra.Command, args []string) {
	s := openApp(cmd)
	defer s.Close()

	if err := s.app.DeleteAgent(cmd.Context(), args[0]); err != nil {
		exitErr("delete agent", err)
	}
	if n := len(s.app.ConversationsByAgent(args[0])); n > 0 {
		s.log.Info("conversations fall back to the default persona", "agent", args[0], "conversations", n)
	}
	ok(cmd, args[0])
}

func runSourceAdd(cmd *cobra.Command, args []string) {
	s := openApp(cmd)
	defer s.Close()

	src, err := s.app.AddKnowledgeSource(cmd.Context(), args[0], args[1], args[2])
	if err != nil {
		exitErr("add knowledge source", err)
	}
	emit(cmd, src, nil)
}

func runSourceRm(cmd *cobra.Command, args []string) {
	s := openApp(cmd)
	defer s.Close()

	if err := s.app.RemoveKnowledgeSource(cmd.Context(), args[0], args[1]); err != nil {
		exitErr("remove knowledge source", err)
	}
	ok(cmd, args[1])
}
