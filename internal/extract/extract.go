package extract

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/paperlift/paperlift/internal/models"
)

// TableMapping pairs a legacy table with its target document table.
type TableMapping struct {
	Legacy string
	Target string
}

// Tables lists every table pair, in migration order.
var Tables = []TableMapping{
	{Legacy: "users", Target: "users"},
	{Legacy: "accounts", Target: "accounts"},
	{Legacy: "user_settings", Target: "userSettings"},
	{Legacy: "boards", Target: "boards"},
	{Legacy: "tasks", Target: "tasks"},
	{Legacy: "notifications", Target: "notifications"},
	{Legacy: "dictionary_entries", Target: "dictionaryEntries"},
	{Legacy: "notepads", Target: "notepads"},
	{Legacy: "shared_notes", Target: "sharedNotes"},
}

// Extractor reads legacy rows from an open relational database.
type Extractor struct {
	db *sql.DB
}

// NewExtractor creates an Extractor over the given database connection.
func NewExtractor(db *sql.DB) *Extractor {
	return &Extractor{db: db}
}

// All runs every extractor and assembles a full snapshot of the legacy store.
func (e *Extractor) All() (*models.Snapshot, error) {
	snapshot := &models.Snapshot{}
	var err error

	if snapshot.Users, err = e.Users(); err != nil {
		return nil, err
	}
	if snapshot.Accounts, err = e.Accounts(); err != nil {
		return nil, err
	}
	if snapshot.Settings, err = e.Settings(); err != nil {
		return nil, err
	}
	if snapshot.Boards, err = e.Boards(); err != nil {
		return nil, err
	}
	if snapshot.Tasks, err = e.Tasks(); err != nil {
		return nil, err
	}
	if snapshot.Notifications, err = e.Notifications(); err != nil {
		return nil, err
	}
	if snapshot.DictionaryEntries, err = e.DictionaryEntries(); err != nil {
		return nil, err
	}
	if snapshot.Notepads, err = e.Notepads(); err != nil {
		return nil, err
	}
	if snapshot.SharedNotes, err = e.SharedNotes(); err != nil {
		return nil, err
	}

	return snapshot, nil
}

// Counts returns the row count of every legacy table, keyed by table name.
func (e *Extractor) Counts() (map[string]int, error) {
	counts := make(map[string]int, len(Tables))

	for _, table := range Tables {
		var count int
		err := e.db.QueryRow("SELECT COUNT(*) FROM " + table.Legacy).Scan(&count)
		if err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", table.Legacy, err)
		}
		counts[table.Legacy] = count
	}

	return counts, nil
}

// Users extracts every row of the legacy users table.
func (e *Extractor) Users() ([]models.LegacyUser, error) {
	rows, err := e.db.Query("SELECT id, email, name, created_at FROM users ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []models.LegacyUser
	for rows.Next() {
		var (
			id        int64
			email     string
			name      string
			createdAt time.Time
		)
		if err := rows.Scan(&id, &email, &name, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}

		users = append(users, models.LegacyUser{
			ID:        formatID(id),
			Email:     email,
			Name:      name,
			CreatedAt: formatTime(createdAt),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return users, nil
}

// Accounts extracts every row of the legacy accounts table.
func (e *Extractor) Accounts() ([]models.LegacyAccount, error) {
	rows, err := e.db.Query("SELECT id, user_id, provider, provider_account_id, created_at FROM accounts ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []models.LegacyAccount
	for rows.Next() {
		var (
			id                int64
			userID            int64
			provider          string
			providerAccountID string
			createdAt         time.Time
		)
		if err := rows.Scan(&id, &userID, &provider, &providerAccountID, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}

		accounts = append(accounts, models.LegacyAccount{
			ID:                formatID(id),
			UserID:            formatID(userID),
			Provider:          provider,
			ProviderAccountID: providerAccountID,
			CreatedAt:         formatTime(createdAt),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return accounts, nil
}

// Settings extracts every row of the legacy user_settings table.
func (e *Extractor) Settings() ([]models.LegacyUserSettings, error) {
	rows, err := e.db.Query("SELECT id, user_id, theme, language, start_of_week, substitutions_enabled FROM user_settings ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query user settings: %w", err)
	}
	defer rows.Close()

	var settings []models.LegacyUserSettings
	for rows.Next() {
		var (
			id          int64
			userID      int64
			theme       string
			language    string
			startOfWeek int
			enabled     bool
		)
		if err := rows.Scan(&id, &userID, &theme, &language, &startOfWeek, &enabled); err != nil {
			return nil, fmt.Errorf("failed to scan user settings: %w", err)
		}

		settings = append(settings, models.LegacyUserSettings{
			ID:                   formatID(id),
			UserID:               formatID(userID),
			Theme:                theme,
			Language:             language,
			StartOfWeek:          startOfWeek,
			SubstitutionsEnabled: enabled,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return settings, nil
}

// Boards extracts every row of the legacy boards table.
func (e *Extractor) Boards() ([]models.LegacyBoard, error) {
	rows, err := e.db.Query("SELECT id, user_id, title, position, created_at FROM boards ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query boards: %w", err)
	}
	defer rows.Close()

	var boards []models.LegacyBoard
	for rows.Next() {
		var (
			id        int64
			userID    int64
			title     string
			position  int
			createdAt time.Time
		)
		if err := rows.Scan(&id, &userID, &title, &position, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan board: %w", err)
		}

		boards = append(boards, models.LegacyBoard{
			ID:        formatID(id),
			UserID:    formatID(userID),
			Title:     title,
			Position:  position,
			CreatedAt: formatTime(createdAt),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return boards, nil
}

// Tasks extracts every row of the legacy tasks table.
func (e *Extractor) Tasks() ([]models.LegacyTask, error) {
	rows, err := e.db.Query("SELECT id, board_id, user_id, title, description, column_name, position, due_date, created_at FROM tasks ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.LegacyTask
	for rows.Next() {
		var (
			id          int64
			boardID     int64
			userID      int64
			title       string
			description sql.NullString
			column      string
			position    int
			dueDate     sql.NullTime
			createdAt   time.Time
		)
		if err := rows.Scan(&id, &boardID, &userID, &title, &description, &column, &position, &dueDate, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}

		tasks = append(tasks, models.LegacyTask{
			ID:          formatID(id),
			BoardID:     formatID(boardID),
			UserID:      formatID(userID),
			Title:       title,
			Description: optionalString(description),
			Column:      column,
			Position:    position,
			DueDate:     optionalTime(dueDate),
			CreatedAt:   formatTime(createdAt),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return tasks, nil
}

// Notifications extracts every row of the legacy notifications table.
func (e *Extractor) Notifications() ([]models.LegacyNotification, error) {
	rows, err := e.db.Query("SELECT id, user_id, title, body, notify_at, repeat_interval, sent FROM notifications ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []models.LegacyNotification
	for rows.Next() {
		var (
			id             int64
			userID         int64
			title          string
			body           sql.NullString
			notifyAt       time.Time
			repeatInterval sql.NullString
			sent           bool
		)
		if err := rows.Scan(&id, &userID, &title, &body, &notifyAt, &repeatInterval, &sent); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}

		notifications = append(notifications, models.LegacyNotification{
			ID:             formatID(id),
			UserID:         formatID(userID),
			Title:          title,
			Body:           optionalString(body),
			NotifyAt:       formatTime(notifyAt),
			RepeatInterval: optionalString(repeatInterval),
			Sent:           sent,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return notifications, nil
}

// DictionaryEntries extracts every row of the legacy dictionary_entries table.
func (e *Extractor) DictionaryEntries() ([]models.LegacyDictionaryEntry, error) {
	rows, err := e.db.Query("SELECT id, user_id, pattern, replacement, enabled FROM dictionary_entries ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query dictionary entries: %w", err)
	}
	defer rows.Close()

	var entries []models.LegacyDictionaryEntry
	for rows.Next() {
		var (
			id          int64
			userID      int64
			pattern     string
			replacement string
			enabled     bool
		)
		if err := rows.Scan(&id, &userID, &pattern, &replacement, &enabled); err != nil {
			return nil, fmt.Errorf("failed to scan dictionary entry: %w", err)
		}

		entries = append(entries, models.LegacyDictionaryEntry{
			ID:          formatID(id),
			UserID:      formatID(userID),
			Pattern:     pattern,
			Replacement: replacement,
			Enabled:     enabled,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return entries, nil
}

// Notepads extracts every row of the legacy notepads table.
func (e *Extractor) Notepads() ([]models.LegacyNotepad, error) {
	rows, err := e.db.Query("SELECT id, user_id, parent_id, title, content, is_folder, created_at, updated_at FROM notepads ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query notepads: %w", err)
	}
	defer rows.Close()

	var notepads []models.LegacyNotepad
	for rows.Next() {
		var (
			id        int64
			userID    int64
			parentID  sql.NullInt64
			title     string
			content   sql.NullString
			isFolder  bool
			createdAt time.Time
			updatedAt time.Time
		)
		if err := rows.Scan(&id, &userID, &parentID, &title, &content, &isFolder, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notepad: %w", err)
		}

		notepads = append(notepads, models.LegacyNotepad{
			ID:        formatID(id),
			UserID:    formatID(userID),
			ParentID:  optionalID(parentID),
			Title:     title,
			Content:   optionalString(content),
			IsFolder:  isFolder,
			CreatedAt: formatTime(createdAt),
			UpdatedAt: formatTime(updatedAt),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return notepads, nil
}

// SharedNotes extracts every row of the legacy shared_notes table.
func (e *Extractor) SharedNotes() ([]models.LegacySharedNote, error) {
	rows, err := e.db.Query("SELECT id, notepad_id, share_token, created_at, expires_at FROM shared_notes ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query shared notes: %w", err)
	}
	defer rows.Close()

	var notes []models.LegacySharedNote
	for rows.Next() {
		var (
			id         int64
			notepadID  int64
			shareToken string
			createdAt  time.Time
			expiresAt  sql.NullTime
		)
		if err := rows.Scan(&id, &notepadID, &shareToken, &createdAt, &expiresAt); err != nil {
			return nil, fmt.Errorf("failed to scan shared note: %w", err)
		}

		notes = append(notes, models.LegacySharedNote{
			ID:         formatID(id),
			NotepadID:  formatID(notepadID),
			ShareToken: shareToken,
			CreatedAt:  formatTime(createdAt),
			ExpiresAt:  optionalTime(expiresAt),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return notes, nil
}

// formatID normalizes a legacy integer primary key to its decimal string form.
func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// formatTime serializes a timestamp to RFC3339 in UTC.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func optionalString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func optionalTime(t sql.NullTime) *string {
	if !t.Valid {
		return nil
	}
	v := formatTime(t.Time)
	return &v
}

func optionalID(n sql.NullInt64) *string {
	if !n.Valid {
		return nil
	}
	v := formatID(n.Int64)
	return &v
}
