// Package domain contains core domain types for the Burme Mark application.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Chat message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is a single turn in the chat log.
type ChatMessage struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Role      string    `json:"role"`
	Timestamp time.Time `json:"timestamp"`

	// IsTyping marks the transient placeholder bubble shown while a reply
	// is pending. Never persisted.
	IsTyping bool `json:"-"`
}

// GeneratedImage is one successful image generation. Immutable once created.
type GeneratedImage struct {
	ID        string    `json:"id"`
	Prompt    string    `json:"prompt"`
	URL       string    `json:"url"`
	Timestamp time.Time `json:"timestamp"`
}

// CodeProject is a scratchpad project in the code editor.
type CodeProject struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Language  string    `json:"language"`
	Code      string    `json:"code"`
	Output    string    `json:"output"`
	Timestamp time.Time `json:"timestamp"`
}

// ProjectPatch carries the mutable fields of a CodeProject for updates.
// Nil fields are left unchanged.
type ProjectPatch struct {
	Name     *string `json:"name,omitempty"`
	Language *string `json:"language,omitempty"`
	Code     *string `json:"code,omitempty"`
	Output   *string `json:"output,omitempty"`
}

// Theme values for Preferences.
const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"
)

// Language values for Preferences.
const (
	LangMyanmar = "my"
	LangEnglish = "en"
)

// Preferences is the singleton user settings record, overwritten wholesale
// on any change.
type Preferences struct {
	SoundEnabled bool   `json:"soundEnabled"`
	Language     string `json:"language"`
	Theme        string `json:"theme"`
}

// DefaultPreferences returns the settings applied on first use.
func DefaultPreferences() Preferences {
	return Preferences{
		SoundEnabled: true,
		Language:     LangMyanmar,
		Theme:        ThemeSystem,
	}
}

// History item kinds.
const (
	KindChat  = "chat"
	KindImage = "image"
	KindCode  = "code"
	KindAll   = "all"
)

// HistoryItem is a derived, read-only projection of one record for the
// unified history view. Reconstructed on demand, never stored.
type HistoryItem struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Preview   string    `json:"preview,omitempty"`
}

// NewID returns a collision-resistant record identifier. Ids are random
// rather than clock-derived so rapid double-submission cannot collide.
func NewID() string {
	return uuid.NewString()
}
