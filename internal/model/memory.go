package model

import "time"

// Task is a to-do item.
type Task struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	Priority  string `json:"priority"`
	Timestamp Millis `json:"timestamp"`
}

// DefaultPriority is used when a task is created without one.
const DefaultPriority = "med"

// ValidPriorities are the allowed task priorities.
var ValidPriorities = map[string]bool{
	"low":  true,
	"med":  true,
	"high": true,
}

// Normalize fills defaults on a decoded task.
func (t *Task) Normalize() {
	if t.Priority == "" {
		t.Priority = DefaultPriority
	}
}

// Note is a titled free-text note.
type Note struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Timestamp Millis `json:"timestamp"`
}

// NeuralMemory is a standing instruction handed to the assistant.
type NeuralMemory struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Instructions string `json:"instructions"`
	Timestamp    Millis `json:"timestamp"`
}

// Reminder is a stored reminder. Nothing fires it; it is display-only.
type Reminder struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Timestamp Millis `json:"timestamp"`
	Repeat    string `json:"repeat"`
}

const (
	RepeatOnce   = "once"
	RepeatDaily  = "daily"
	RepeatWeekly = "weekly"
)

// ValidRepeats are the allowed reminder cadences.
var ValidRepeats = map[string]bool{
	RepeatOnce:   true,
	RepeatDaily:  true,
	RepeatWeekly: true,
}

// Normalize fills defaults on a decoded reminder.
func (r *Reminder) Normalize() {
	if r.Repeat == "" {
		r.Repeat = RepeatOnce
	}
}

// Next returns the first due time strictly after after. One-off reminders
// always return their stored time, even when it has passed.
func (r Reminder) Next(after time.Time) time.Time {
	due := r.Timestamp.Time()
	var step int
	switch r.Repeat {
	case RepeatDaily:
		step = 1
	case RepeatWeekly:
		step = 7
	default:
		return due
	}
	if due.After(after) {
		return due
	}
	days := int(after.Sub(due).Hours()/24) / step * step
	t := due.AddDate(0, 0, days)
	for !t.After(after) {
		t = t.AddDate(0, 0, step)
	}
	return t
}
