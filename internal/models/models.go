package models

// Snapshot bundles every extracted legacy table for one migration run.
type Snapshot struct {
	Users             []LegacyUser            `json:"users"`
	Accounts          []LegacyAccount         `json:"accounts"`
	Settings          []LegacyUserSettings    `json:"settings"`
	Boards            []LegacyBoard           `json:"boards"`
	Tasks             []LegacyTask            `json:"tasks"`
	Notifications     []LegacyNotification    `json:"notifications"`
	DictionaryEntries []LegacyDictionaryEntry `json:"dictionaryEntries"`
	Notepads          []LegacyNotepad         `json:"notepads"`
	SharedNotes       []LegacySharedNote      `json:"sharedNotes"`
}

// LegacyUser is one row of the legacy users table.
type LegacyUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
}

// LegacyAccount is one row of the legacy accounts table.
// Accounts link a user to a third-party auth provider.
type LegacyAccount struct {
	ID                string `json:"id"`
	UserID            string `json:"userId"`
	Provider          string `json:"provider"`
	ProviderAccountID string `json:"providerAccountId"`
	CreatedAt         string `json:"createdAt"`
}

// LegacyUserSettings is one row of the legacy user_settings table.
type LegacyUserSettings struct {
	ID                   string `json:"id"`
	UserID               string `json:"userId"`
	Theme                string `json:"theme"`
	Language             string `json:"language"`
	StartOfWeek          int    `json:"startOfWeek"`
	SubstitutionsEnabled bool   `json:"substitutionsEnabled"`
}

// LegacyBoard is one row of the legacy boards table.
type LegacyBoard struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	Title     string `json:"title"`
	Position  int    `json:"position"`
	CreatedAt string `json:"createdAt"`
}

// LegacyTask is one row of the legacy tasks table. Tasks reference both a
// board and a user.
type LegacyTask struct {
	ID          string  `json:"id"`
	BoardID     string  `json:"boardId"`
	UserID      string  `json:"userId"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Column      string  `json:"column"`
	Position    int     `json:"position"`
	DueDate     *string `json:"dueDate,omitempty"`
	CreatedAt   string  `json:"createdAt"`
}

// LegacyNotification is one row of the legacy notifications table.
type LegacyNotification struct {
	ID             string  `json:"id"`
	UserID         string  `json:"userId"`
	Title          string  `json:"title"`
	Body           *string `json:"body,omitempty"`
	NotifyAt       string  `json:"notifyAt"`
	RepeatInterval *string `json:"repeatInterval,omitempty"`
	Sent           bool    `json:"sent"`
}

// LegacyDictionaryEntry is one row of the legacy dictionary_entries table
// (text substitution patterns).
type LegacyDictionaryEntry struct {
	ID          string `json:"id"`
	UserID      string `json:"userId"`
	Pattern     string `json:"pattern"`
	Replacement string `json:"replacement"`
	Enabled     bool   `json:"enabled"`
}

// LegacyNotepad is one row of the legacy notepads table. A notepad with a nil
// ParentID is a root; folders can nest arbitrarily deep.
type LegacyNotepad struct {
	ID        string  `json:"id"`
	UserID    string  `json:"userId"`
	ParentID  *string `json:"parentId,omitempty"`
	Title     string  `json:"title"`
	Content   *string `json:"content,omitempty"`
	IsFolder  bool    `json:"isFolder"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

// LegacySharedNote is one row of the legacy shared_notes table. Shared notes
// reference the notepad they expose.
type LegacySharedNote struct {
	ID         string  `json:"id"`
	NotepadID  string  `json:"notepadId"`
	ShareToken string  `json:"shareToken"`
	CreatedAt  string  `json:"createdAt"`
	ExpiresAt  *string `json:"expiresAt,omitempty"`
}
