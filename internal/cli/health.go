package cli

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/rcliao/companion/internal/companion"
	"github.com/rcliao/companion/internal/model"
)

func init() {
	healthCmd := &cobra.Command{
		Use:   "health",
		Short: "Health readings",
	}
	healthCmd.AddCommand(&cobra.Command{
		Use:   "log <glucose|weight|systolic|diastolic> <value>",
		Short: "Log a reading",
		Args:  cobra.ExactArgs(2),
		Run:   runHealthLog,
	})
	list := &cobra.Command{
		Use:   "list",
		Short: "List readings, newest first",
		Args:  cobra.NoArgs,
		Run:   runHealthList,
	}
	list.Flags().StringP("type", "t", "", "Only readings of this type")
	healthCmd.AddCommand(list)
	healthCmd.AddCommand(&cobra.Command{
		Use:   "latest <type>",
		Short: "Show the most recent reading of a type",
		Args:  cobra.ExactArgs(1),
		Run:   runHealthLatest,
	})
	RootCmd.AddCommand(healthCmd)

	medCmd := &cobra.Command{
		Use:   "med",
		Short: "Medications and care protocols",
	}
	medCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List medications",
		Args:  cobra.NoArgs,
		Run:   runMedList,
	})
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Track a medication",
		Args:  cobra.ExactArgs(1),
		Run:   runMedAdd,
	}
	add.Flags().String("dosage", "", "Dosage")
	add.Flags().String("frequency", "", "Frequency")
	medCmd.AddCommand(add)
	medCmd.AddCommand(&cobra.Command{
		Use:   "take <id>",
		Short: "Mark a medication taken now",
		Args:  cobra.ExactArgs(1),
		Run:   runMedTake,
	})
	medCmd.AddCommand(&cobra.Command{
		Use:   "reminder <id> <on|off>",
		Short: "Turn a medication reminder on or off",
		Args:  cobra.ExactArgs(2),
		Run:   runMedReminder,
	})
	medCmd.AddCommand(&cobra.Command{
		Use:   "rm <id>",
		Short: "Stop tracking a medication",
		Args:  cobra.ExactArgs(1),
		Run:   runMedRm,
	})
	RootCmd.AddCommand(medCmd)

	tripCmd := &cobra.Command{
		Use:   "trip",
		Short: "Trip timer",
	}
	tripCmd.AddCommand(&cobra.Command{
		Use:   "start",
		Short: "Start the trip timer",
		Args:  cobra.NoArgs,
		Run:   runTripStart,
	})
	tripCmd.AddCommand(&cobra.Command{
		Use:   "end",
		Short: "Stop the running trip",
		Args:  cobra.NoArgs,
		Run:   runTripEnd,
	})
	tripCmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the running trip",
		Args:  cobra.NoArgs,
		Run:   runTripStatus,
	})
	tripCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List trips, newest first",
		Args:  cobra.NoArgs,
		Run:   runTripList,
	})
	RootCmd.AddCommand(tripCmd)
}

func printReadings(w io.Writer, readings []model.HealthReading) {
	for _, r := range readings {
		fmt.Fprintf(w, "%s  %-9s %g\n", faint.Sprint(stamp(r.Timestamp)), r.Type, r.Value)
	}
}

func runHealthLog(cmd *cobra.Command, args []string) {
	value, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		exitErr("log reading", fmt.Errorf("%w: value %q is not a number", companion.ErrInvalid, args[1]))
	}

	s := openApp(cmd)
	defer s.Close()

	r, err := s.app.LogReading(cmd.Context(), args[0], value)
	if err != nil {
		exitErr("log reading", err)
	}
	emit(cmd, r, func(w io.Writer) { printReadings(w, []model.HealthReading{r}) })
}

func runHealthList(cmd *cobra.Command, args []string) {
	kind, _ := cmd.Flags().GetString("type")

	s := openApp(cmd)
	defer s.Close()

	readings := s.app.Readings(kind)
	emit(cmd, readings, func(w io.Writer) { printReadings(w, readings) })
}

func runHealthLatest(cmd *cobra.Command, args []string) {
	s := openApp(cmd)
	defer s.Close()

	r, found := s.app.LatestReading(args[0])
	if !found {
		exitErr("latest reading", fmt.Errorf("%w: no %s readings", companion.ErrNotFound, args[0]))
	}
	emit(cmd, r, func(w io.Writer) { printReadings(w, []model.HealthReading{r}) })
}

func printMedications(w io.Writer, meds []model.Medication) {
	for _, m := range meds {
		last := "never"
		if m.LastTaken != nil {
			last = stamp(*m.LastTaken)
		}
		reminder := "off"
		if m.ReminderEnabled {
			reminder = "on"
		}
		fmt.Fprintf(w, "%s  %s %s, %s (taken %s, reminder %s)\n",
			faint.Sprint(m.ID), heading.Sprint(m.Name), m.Dosage, m.Frequency, last, reminder)
	}
}

func runMedList(cmd *cobra.Command, args []string) {
	s := openApp(cmd)
	defer s.Close()

	meds := s.app.Medications()
	emit(cmd, meds, func(w io.Writer) { printMedications(w, meds) })
}

func runMedAdd(cmd *cobra.Command, args []string) {
	dosage, _ := cmd.Flags().GetString("dosage")
	frequency, _ := cmd.Flags().GetString("frequency")

	s := openApp(cmd)
	defer s.Close()

	m, err := s.app.AddMedication(cmd.Context(), args[0], dosage, frequency)
	if err != nil {
		exitErr("add medication", err)
	}
	emit(cmd, m, func(w io.Writer) { printMedications(w, []model.Medication{m}) })
}

func runMedTake(cmd *cobra.Command, args []string) {
	s := openApp(cmd)
	defer s.Close()

	m, err := s.app.MarkMedicationTaken(cmd.Context(), args[0])
	if err != nil {
		exitErr("mark taken", err)
	}
	emit(cmd, m, func(w io.Writer) { printMedications(w, []model.Medication{m}) })
}

func runMedReminder(cmd *cobra.Command, args []string) {
	var enabled bool
	switch args[1] {
	case "on":
		enabled = true
	case "off":
	default:
		exitErr("set reminder", fmt.Errorf("%w: want on or off, got %q", companion.ErrInvalid, args[1]))
	}

	s := openApp(cmd)
	defer s.Close()

	m, err := s.app.SetMedicationReminder(cmd.Context(), args[0], enabled)
	if err != nil {
		exitErr("set reminder", err)
	}
	emit(cmd, m, func(w io.Writer) { printMedications(w, []model.Medication{m}) })
}

func runMedRm(cmd *cobra.Command, args []string) {
	s := openApp(cmd)
	defer s.Close()

	if err := s.app.DeleteMedication(cmd.Context(), args[0]); err != nil {
		exitErr("delete medication", err)
	}
	ok(cmd, args[0])
}

// tripView adds the elapsed time for display.
type tripView struct {
	model.Trip
	Elapsed string `json:"elapsed"`
}

func viewTrip(t model.Trip) tripView {
	return tripView{Trip: t, Elapsed: t.Duration(time.Now()).Truncate(time.Second).String()}
}

func printTrips(w io.Writer, trips []tripView) {
	for _, t := range trips {
		state := "done"
		if t.IsActive {
			state = "running"
		}
		fmt.Fprintf(w, "%s  %s  %s (%s)\n", faint.Sprint(t.ID), stamp(t.StartTime), t.Elapsed, state)
	}
}

func runTripStart(cmd *cobra.Command, args []string) {
	s := openApp(cmd)
	defer s.Close()

	t, err := s.app.StartTrip(cmd.Context())
	if err != nil {
		exitErr("start trip", err)
	}
	v := viewTrip(t)
	emit(cmd, v, func(w io.Writer) { printTrips(w, []tripView{v}) })
}

func runTripEnd(cmd *cobra.Command, args []string) {
	s := openApp(cmd)
	defer s.Close()

	t, err := s.app.EndTrip(cmd.Context())
	if err != nil {
		exitErr("end trip", err)
	}
	v := viewTrip(t)
	emit(cmd, v, func(w io.Writer) { printTrips(w, []tripView{v}) })
}

func runTripStatus(cmd *cobra.Command, args []string) {
	s := openApp(cmd)
	defer s.Close()

	t, active := s.app.ActiveTrip()
	if !active {
		emit(cmd, map[string]any{"active": false}, func(w io.Writer) { fmt.Fprintln(w, "no trip running") })
		return
	}
	v := viewTrip(t)
	emit(cmd, v, func(w io.Writer) { printTrips(w, []tripView{v}) })
}

func runTripList(cmd *cobra.Command, args []string) {
	s := openApp(cmd)
	defer s.Close()

	trips := s.app.Trips()
	views := make([]tripView, len(trips))
	for i, t := range trips {
		views[i] = viewTrip(t)
	}
	emit(cmd, views, func(w io.Writer) { printTrips(w, views) })
}
