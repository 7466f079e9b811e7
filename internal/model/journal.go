package model

import "time"

// HealthReading is one logged measurement.
type HealthReading struct {
	ID        string  `json:"id"`
	Type      string  `json:"type"`
	Value     float64 `json:"value"`
	Timestamp Millis  `json:"timestamp"`
}

// ValidReadingTypes are the allowed health reading types.
var ValidReadingTypes = map[string]bool{
	"glucose":   true,
	"weight":    true,
	"systolic":  true,
	"diastolic": true,
}

// Medication is a tracked medication or care protocol.
type Medication struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Dosage          string  `json:"dosage"`
	Frequency       string  `json:"frequency"`
	LastTaken       *Millis `json:"lastTaken,omitempty"`
	ReminderEnabled bool    `json:"reminderEnabled"`
}

// Trip is one timed session of the trip timer.
type Trip struct {
	ID        string  `json:"id"`
	StartTime Millis  `json:"startTime"`
	EndTime   *Millis `json:"endTime,omitempty"`
	IsActive  bool    `json:"isActive"`
}

// Duration is the elapsed time of the trip, measured to now while it is active.
func (t Trip) Duration(now time.Time) time.Duration {
	end := now
	if t.EndTime != nil {
		end = t.EndTime.Time()
	}
	d := end.Sub(t.StartTime.Time())
	if d < 0 {
		return 0
	}
	return d
}

// SpiritualEntry is a reflection, prayer or gratitude note.
type SpiritualEntry struct {
	ID                 string `json:"id"`
	Type               string `json:"type"`
	Content            string `json:"content"`
	Timestamp          Millis `json:"timestamp"`
	ScriptureReference string `json:"scriptureReference,omitempty"`
}

// ValidSpiritualTypes are the allowed spiritual entry types.
var ValidSpiritualTypes = map[string]bool{
	"reflection": true,
	"prayer":     true,
	"gratitude":  true,
}

// MediaEntry logs a book, film, album or podcast with a rating.
type MediaEntry struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Creator    string `json:"creator"`
	Type       string `json:"type"`
	Rating     int    `json:"rating"`
	Reflection string `json:"reflection"`
	Timestamp  Millis `json:"timestamp"`
}

// ValidMediaTypes are the allowed media entry types.
var ValidMediaTypes = map[string]bool{
	"book":    true,
	"film":    true,
	"music":   true,
	"podcast": true,
}

const (
	MinRating = 1
	MaxRating = 10
)
