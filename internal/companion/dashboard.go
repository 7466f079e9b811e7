package companion

// Dashboard summarizes the session's collections.
type Dashboard struct {
	Conversations    int       `json:"conversations"`
	Messages         int       `json:"messages"`
	HealthReadings   int       `json:"healthReadings"`
	SpiritualEntries int       `json:"spiritualEntries"`
	MediaItems       int       `json:"mediaItems"`
	Tasks            TaskStats `json:"tasks"`
	Notes            int       `json:"notes"`
	Memories         int       `json:"memories"`
	Reminders        int       `json:"reminders"`
	Folders          int       `json:"folders"`
	ActiveTrip       bool      `json:"activeTrip"`
	Unsaved          []string  `json:"unsaved,omitempty"`
}

func (a *App) Dashboard() Dashboard {
	d := Dashboard{
		HealthReadings:   a.readings.Len(),
		SpiritualEntries: a.spiritual.Len(),
		MediaItems:       a.media.Len(),
		Tasks:            a.TaskStats(),
		Notes:            a.notes.Len(),
		Memories:         a.memories.Len(),
		Reminders:        a.reminders.Len(),
		Folders:          a.folders.Len(),
		Unsaved:          a.Unsaved(),
	}
	for _, c := range a.conversations.All() {
		d.Conversations++
		d.Messages += len(c.Messages)
	}
	_, d.ActiveTrip = a.ActiveTrip()
	return d
}
