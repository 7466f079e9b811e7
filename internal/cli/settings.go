package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/rcliao/companion/internal/model"
)

func init() {
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change app settings",
		Long:  "Without flags, prints the app settings. Any flag given is saved.",
		Args:  cobra.NoArgs,
		Run:   runSettings,
	}
	f := settingsCmd.Flags()
	f.Float64("font-size", 1, "Font scale")
	f.Bool("voice-replies", true, "Speak replies")
	f.Bool("auto-play", true, "Auto-play audio")
	f.String("nickname", "", "What the assistant calls you")
	f.String("occupation", "", "Occupation")
	f.String("tone", "", "Tone: default, professional, friendly, candid, quirky, efficient, nerdy, clinical")
	RootCmd.AddCommand(settingsCmd)

	advancedCmd := &cobra.Command{
		Use:   "advanced",
		Short: "Show or change generation and device settings",
		Args:  cobra.NoArgs,
		Run:   runAdvanced,
	}
	af := advancedCmd.Flags()
	af.Float64("temperature", 0.7, "Sampling temperature, 0 to 2")
	af.Int("max-tokens", 2048, "Reply token limit")
	af.Float64("top-p", 0.9, "Nucleus sampling, 0 to 1")
	af.Float64("frequency-penalty", 0, "Frequency penalty")
	af.Float64("presence-penalty", 0, "Presence penalty")
	af.Bool("save-conversations", true, "Keep conversation history")
	af.Bool("experimental", false, "Experimental mode")
	af.Bool("beta", false, "Beta features")
	af.Bool("debug", false, "Debug mode")
	advancedCmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Restore the factory advanced settings",
		Args:  cobra.NoArgs,
		Run:   runAdvancedReset,
	})
	RootCmd.AddCommand(advancedCmd)
}

// localChanged reports whether any flag declared on cmd itself was given.
func localChanged(cmd *cobra.Command) bool {
	changed := false
	cmd.LocalFlags().VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			changed = true
		}
	})
	return changed
}

func setFloat(f *pflag.FlagSet, name string, dst *float64) {
	if f.Changed(name) {
		*dst, _ = f.GetFloat64(name)
	}
}

func setBool(f *pflag.FlagSet, name string, dst *bool) {
	if f.Changed(name) {
		*dst, _ = f.GetBool(name)
	}
}

func setString(f *pflag.FlagSet, name string, dst *string) {
	if f.Changed(name) {
		*dst, _ = f.GetString(name)
	}
}

func runSettings(cmd *cobra.Command, args []string) {
	f := cmd.Flags()

	s := openApp(cmd)
	defer s.Close()

	settings := s.app.Settings()
	if localChanged(cmd) {
		var err error
		settings, err = s.app.UpdateSettings(cmd.Context(), func(st *model.AppSettings) {
			setFloat(f, "font-size", &st.FontSize)
			setBool(f, "voice-replies", &st.VoiceReplies)
			setBool(f, "auto-play", &st.AutoPlayAudio)
			setString(f, "nickname", &st.Nickname)
			setString(f, "occupation", &st.Occupation)
			setString(f, "tone", &st.ToneStyle)
		})
		if err != nil {
			exitErr("update settings", err)
		}
	}
	emit(cmd, settings, func(w io.Writer) {
		fmt.Fprintf(w, "nickname    %s\noccupation  %s\ntone        %s\nfont size   %.2f\nvoice       %t\nauto-play   %t\n",
			settings.Nickname, settings.Occupation, settings.ToneStyle, settings.FontSize, settings.VoiceReplies, settings.AutoPlayAudio)
	})
}

func printAdvanced(w io.Writer, a model.AdvancedSettings) {
	fmt.Fprintf(w, "temperature  %.2f\nmax tokens   %d\ntop-p        %.2f\ndebug        %t\n",
		a.Temperature, a.MaxTokens, a.TopP, a.DebugMode)
}

func runAdvanced(cmd *cobra.Command, args []string) {
	f := cmd.Flags()

	s := openApp(cmd)
	defer s.Close()

	adv := s.app.Advanced()
	if localChanged(cmd) {
		var err error
		adv, err = s.app.UpdateAdvanced(cmd.Context(), func(a *model.AdvancedSettings) {
			setFloat(f, "temperature", &a.Temperature)
			if f.Changed("max-tokens") {
				a.MaxTokens, _ = f.GetInt("max-tokens")
			}
			setFloat(f, "top-p", &a.TopP)
			setFloat(f, "frequency-penalty", &a.FrequencyPenalty)
			setFloat(f, "presence-penalty", &a.PresencePenalty)
			setBool(f, "save-conversations", &a.SaveConversations)
			setBool(f, "experimental", &a.ExperimentalMode)
			setBool(f, "beta", &a.BetaFeatures)
			setBool(f, "debug", &a.DebugMode)
		})
		if err != nil {
			exitErr("update advanced settings", err)
		}
	}
	emit(cmd, adv, func(w io.Writer) { printAdvanced(w, adv) })
}

func runAdvancedReset(cmd *cobra.Command, args []string) {
	s := openApp(cmd)
	defer s.Close()

	adv, err := s.app.ResetAdvanced(cmd.Context())
	if err != nil {
		exitErr("reset advanced settings", err)
	}
	emit(cmd, adv, func(w io.Writer) { printAdvanced(w, adv) })
}
