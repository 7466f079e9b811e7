// Package companion holds one session of the personal companion: a store
// object per collection, loaded once, and every operation on them.
package companion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rcliao/companion/internal/gateway"
	"github.com/rcliao/companion/internal/model"
	"github.com/rcliao/companion/internal/record"
	"github.com/rcliao/companion/internal/store"
)

var (
	// ErrInvalid marks rejected input. Nothing is mutated.
	ErrInvalid = errors.New("invalid input")

	// ErrNotFound marks an unknown record id.
	ErrNotFound = errors.New("not found")

	// ErrTripActive is returned when starting a trip while another is running.
	ErrTripActive = errors.New("a trip is already active")
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
}

// App is a companion session.
type App struct {
	kv      store.Store
	log     *slog.Logger
	clock   record.Clock
	ids     *record.IDs
	gateway gateway.Gateway
	prober  *gateway.Prober

	conversations *record.Collection[model.Conversation]
	folders       *record.Collection[model.Folder]
	readings      *record.Collection[model.HealthReading]
	medications   *record.Collection[model.Medication]
	trips         *record.Collection[model.Trip]
	spiritual     *record.Collection[model.SpiritualEntry]
	media         *record.Collection[model.MediaEntry]
	tasks         *record.Collection[model.Task]
	notes         *record.Collection[model.Note]
	memories      *record.Collection[model.NeuralMemory]
	reminders     *record.Collection[model.Reminder]
	agents        *record.Collection[model.Agent]

	settings *record.Singleton[model.AppSettings]
	advanced *record.Singleton[model.AdvancedSettings]
	keys     *record.Singleton[model.ProviderKeys]
}

// Option configures an App.
type Option func(*App)

func WithLogger(l *slog.Logger) Option {
	return func(a *App) { a.log = l }
}

// WithClock replaces the wall clock used for timestamps and ids.
func WithClock(c record.Clock) Option {
	return func(a *App) { a.clock = c }
}

// WithGateway sets the chat gateway. Without one every send gets the fallback reply.
func WithGateway(g gateway.Gateway) Option {
	return func(a *App) { a.gateway = g }
}

func WithProber(p *gateway.Prober) Option {
	return func(a *App) { a.prober = p }
}

// New builds an App over kv. Call Load before use.
func New(kv store.Store, opts ...Option) *App {
	a := &App{
		kv:     kv,
		log:    slog.New(slog.DiscardHandler),
		clock:  record.SystemClock,
		prober: gateway.NewProber(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.ids = record.NewIDs(a.clock)

	a.conversations = record.NewCollection[model.Conversation](kv, KeyConversations, a.log).WithSeed(a.seedConversations)
	a.folders = record.NewCollection[model.Folder](kv, KeyFolders, a.log)
	a.readings = record.NewCollection[model.HealthReading](kv, KeyHealthReadings, a.log)
	a.medications = record.NewCollection[model.Medication](kv, KeyMedications, a.log).WithSeed(seedMedications)
	a.trips = record.NewCollection[model.Trip](kv, KeyTrips, a.log)
	a.spiritual = record.NewCollection[model.SpiritualEntry](kv, KeySpiritualEntries, a.log)
	a.media = record.NewCollection[model.MediaEntry](kv, KeyMediaEntries, a.log)
	a.tasks = record.NewCollection[model.Task](kv, KeyTasks, a.log)
	a.notes = record.NewCollection[model.Note](kv, KeyNotes, a.log)
	a.memories = record.NewCollection[model.NeuralMemory](kv, KeyNeuralMemories, a.log)
	a.reminders = record.NewCollection[model.Reminder](kv, KeyReminders, a.log)
	a.agents = record.NewCollection[model.Agent](kv, KeyAgents, a.log).WithSeed(seedAgents)

	a.settings = record.NewSingleton(kv, KeyAppSettings, a.log, model.DefaultAppSettings)
	a.advanced = record.NewSingleton(kv, KeyAdvancedSettings, a.log, model.DefaultAdvancedSettings)
	a.keys = record.NewSingleton[model.ProviderKeys](kv, KeyAPIKeys, a.log, nil)
	return a
}

// persisted is the part of a collection or singleton the session manages as a whole.
type persisted interface {
	Key() string
	Load(ctx context.Context) error
	Restore(ctx context.Context, raw []byte) error
	Reset()
	Unsaved() bool
}

// stores lists every store object in storage key order.
func (a *App) stores() []persisted {
	return []persisted{
		a.conversations,
		a.folders,
		a.readings,
		a.medications,
		a.trips,
		a.spiritual,
		a.media,
		a.tasks,
		a.notes,
		a.memories,
		a.reminders,
		a.agents,
		a.settings,
		a.advanced,
		a.keys,
	}
}

func (a *App) store(key string) (persisted, bool) {
	for _, s := range a.stores() {
		if s.Key() == key {
			return s, true
		}
	}
	return nil, false
}

// Load reads every collection once. A failing collection is logged and left
// at its previous state; the rest still load. All failures are returned joined.
func (a *App) Load(ctx context.Context) error {
	var errs []error
	for _, s := range a.stores() {
		if err := s.Load(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		a.log.Warn("some collections failed to load", "failed", len(errs))
	}
	return errors.Join(errs...)
}

// Unsaved lists the storage keys whose last write failed.
func (a *App) Unsaved() []string {
	var keys []string
	for _, s := range a.stores() {
		if s.Unsaved() {
			keys = append(keys, s.Key())
		}
	}
	return keys
}

// SetGateway swaps the chat gateway after Load, once the vault can supply a key.
func (a *App) SetGateway(g gateway.Gateway) {
	a.gateway = g
}

// Close releases the gateway if it holds resources.
func (a *App) Close() error {
	if c, ok := a.gateway.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

func (a *App) now() time.Time {
	return a.clock()
}

func (a *App) nowMillis() model.Millis {
	return model.MillisOf(a.clock())
}
