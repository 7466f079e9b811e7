package companion

import (
	"context"
	"math"
	"slices"
	"strings"

	"github.com/rcliao/companion/internal/model"
)

// LogReading prepends a health reading.
func (a *App) LogReading(ctx context.Context, kind string, value float64) (model.HealthReading, error) {
	if !model.ValidReadingTypes[kind] {
		return model.HealthReading{}, invalid("unknown reading type %q", kind)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return model.HealthReading{}, invalid("reading value must be a number")
	}
	r := model.HealthReading{
		ID:        a.ids.New(),
		Type:      kind,
		Value:     value,
		Timestamp: a.nowMillis(),
	}
	err := a.readings.Mutate(ctx, func(items []model.HealthReading) ([]model.HealthReading, error) {
		return append([]model.HealthReading{r}, items...), nil
	})
	if err != nil {
		return model.HealthReading{}, err
	}
	return r, nil
}

// Readings returns readings of one type, or all when kind is empty.
func (a *App) Readings(kind string) []model.HealthReading {
	all := a.readings.All()
	if kind == "" {
		return all
	}
	return slices.DeleteFunc(all, func(r model.HealthReading) bool { return r.Type != kind })
}

// LatestReading returns the most recent reading of a type.
func (a *App) LatestReading(kind string) (model.HealthReading, bool) {
	return a.readings.Find(func(r model.HealthReading) bool { return r.Type == kind })
}

func (a *App) Medications() []model.Medication {
	return a.medications.All()
}

// AddMedication appends a tracked medication with reminders on.
func (a *App) AddMedication(ctx context.Context, name, dosage, frequency string) (model.Medication, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Medication{}, invalid("medication name is required")
	}
	m := model.Medication{
		ID:              a.ids.New(),
		Name:            name,
		Dosage:          strings.TrimSpace(dosage),
		Frequency:       strings.TrimSpace(frequency),
		ReminderEnabled: true,
	}
	err := a.medications.Mutate(ctx, func(items []model.Medication) ([]model.Medication, error) {
		return append(items, m), nil
	})
	if err != nil {
		return model.Medication{}, err
	}
	return m, nil
}

func (a *App) updateMedication(ctx context.Context, id string, fn func(*model.Medication)) (model.Medication, error) {
	var updated model.Medication
	err := a.medications.Mutate(ctx, func(items []model.Medication) ([]model.Medication, error) {
		i := slices.IndexFunc(items, func(m model.Medication) bool { return m.ID == id })
		if i < 0 {
			return nil, notFound("medication", id)
		}
		fn(&items[i])
		updated = items[i]
		return items, nil
	})
	return updated, err
}

// MarkMedicationTaken stamps lastTaken with the current time.
func (a *App) MarkMedicationTaken(ctx context.Context, id string) (model.Medication, error) {
	now := a.nowMillis()
	return a.updateMedication(ctx, id, func(m *model.Medication) {
		m.LastTaken = now.Ptr()
	})
}

func (a *App) SetMedicationReminder(ctx context.Context, id string, enabled bool) (model.Medication, error) {
	return a.updateMedication(ctx, id, func(m *model.Medication) {
		m.ReminderEnabled = enabled
	})
}

func (a *App) DeleteMedication(ctx context.Context, id string) error {
	return a.medications.Mutate(ctx, func(items []model.Medication) ([]model.Medication, error) {
		i := slices.IndexFunc(items, func(m model.Medication) bool { return m.ID == id })
		if i < 0 {
			return nil, notFound("medication", id)
		}
		return slices.Delete(items, i, i+1), nil
	})
}
