package model

// ThreadAccess controls whether a file may be referenced by conversations
// outside its own folder.
type ThreadAccess string

const (
	AccessOpen    ThreadAccess = "open"
	AccessSealed  ThreadAccess = "sealed"
	AccessInherit ThreadAccess = "inherit"
)

// ValidFolderAccess are the levels a folder may default to.
var ValidFolderAccess = map[ThreadAccess]bool{
	AccessOpen:   true,
	AccessSealed: true,
}

// ValidFileAccess are the levels a file override may take.
var ValidFileAccess = map[ThreadAccess]bool{
	AccessOpen:    true,
	AccessSealed:  true,
	AccessInherit: true,
}

// ProjectFile is a file owned by exactly one folder. Data is a placeholder
// payload; uploads are not implemented.
type ProjectFile struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Data         string       `json:"data"`
	MimeType     string       `json:"mimeType"`
	Timestamp    Millis       `json:"timestamp"`
	ThreadAccess ThreadAccess `json:"threadAccess,omitempty"`
}

// Folder groups conversations by weak reference and owns files.
type Folder struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	ConversationIDs []string      `json:"conversationIds"`
	Files           []ProjectFile `json:"files"`
	IsCollapsed     bool          `json:"isCollapsed,omitempty"`
	ThreadAccess    ThreadAccess  `json:"threadAccess,omitempty"`
}

// Normalize fills defaults on a decoded folder.
func (f *Folder) Normalize() {
	if f.ConversationIDs == nil {
		f.ConversationIDs = []string{}
	}
	if f.Files == nil {
		f.Files = []ProjectFile{}
	}
	if f.ThreadAccess == "" {
		f.ThreadAccess = AccessOpen
	}
	for i := range f.Files {
		if f.Files[i].ThreadAccess == "" {
			f.Files[i].ThreadAccess = AccessInherit
		}
	}
}

// EffectiveAccess resolves the access level of file within folder. A missing
// or inherit override falls back to the folder default, which itself
// defaults to open.
func EffectiveAccess(file ProjectFile, folder Folder) ThreadAccess {
	if file.ThreadAccess != "" && file.ThreadAccess != AccessInherit {
		return file.ThreadAccess
	}
	if folder.ThreadAccess == "" || folder.ThreadAccess == AccessInherit {
		return AccessOpen
	}
	return folder.ThreadAccess
}

// HasConversation reports whether id is referenced by the folder.
func (f Folder) HasConversation(id string) bool {
	for _, c := range f.ConversationIDs {
		if c == id {
			return true
		}
	}
	return false
}
