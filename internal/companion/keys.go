package companion

// Storage keys, one JSON blob each.
const (
	KeyConversations    = "conversations"
	KeyFolders          = "folders"
	KeyHealthReadings   = "health_readings"
	KeyMedications      = "medications"
	KeyTrips            = "trips"
	KeySpiritualEntries = "spiritual_entries"
	KeyMediaEntries     = "media_entries"
	KeyTasks            = "tasks"
	KeyNotes            = "notes"
	KeyNeuralMemories   = "neural_memories"
	KeyReminders        = "reminders"
	KeyAgents           = "agents"
	KeyAppSettings      = "app_settings"
	KeyAdvancedSettings = "advanced_settings"
	KeyAPIKeys          = "api_keys"
)

// keyAliases maps key names found in older backups to current keys.
var keyAliases = map[string]string{
	"fredo_conversations":      KeyConversations,
	"@fredo_folders":           KeyFolders,
	"@fredo_reminders":         KeyReminders,
	"@fredo_advanced_settings": KeyAdvancedSettings,
	"@fredo_api_keys":          KeyAPIKeys,
}

// canonicalKey resolves an alias. ok is false for keys no collection owns.
func (a *App) canonicalKey(key string) (string, bool) {
	if alias, ok := keyAliases[key]; ok {
		key = alias
	}
	_, ok := a.store(key)
	return key, ok
}

// Keys lists every storage key in storage order.
func (a *App) Keys() []string {
	stores := a.stores()
	keys := make([]string, len(stores))
	for i, s := range stores {
		keys[i] = s.Key()
	}
	return keys
}
