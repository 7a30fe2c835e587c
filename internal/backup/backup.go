// Package backup implements the export/import codec for the single backup
// document aggregating all persisted state.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/athuyarain/burme-mark/internal/domain"
	"github.com/athuyarain/burme-mark/internal/records"
)

// Snapshot is the backup document. All four data fields are optional on
// import; absent fields leave the corresponding store untouched.
type Snapshot struct {
	Chats       *[]domain.ChatMessage    `json:"chats,omitempty"`
	Images      *[]domain.GeneratedImage `json:"images,omitempty"`
	Codes       *[]domain.CodeProject    `json:"codes,omitempty"`
	Preferences *domain.Preferences      `json:"preferences,omitempty"`
	ExportDate  string                   `json:"exportDate"`
}

// Codec reads and writes snapshots over the record stores.
type Codec struct {
	chats       *records.Chats
	images      *records.Images
	projects    *records.Projects
	preferences *records.Preferences
}

// New returns a codec over the given stores.
func New(chats *records.Chats, images *records.Images, projects *records.Projects, preferences *records.Preferences) *Codec {
	return &Codec{chats: chats, images: images, projects: projects, preferences: preferences}
}

// Export reads all record stores plus preferences into one snapshot stamped
// with the export time. No store is mutated.
func (c *Codec) Export(ctx context.Context) Snapshot {
	chats := c.chats.Load(ctx)
	if chats == nil {
		chats = []domain.ChatMessage{}
	}
	images := c.images.Load(ctx)
	if images == nil {
		images = []domain.GeneratedImage{}
	}
	codes := c.projects.All(ctx)
	if codes == nil {
		codes = []domain.CodeProject{}
	}
	prefs := c.preferences.Load(ctx)
	return Snapshot{
		Chats:       &chats,
		Images:      &images,
		Codes:       &codes,
		Preferences: &prefs,
		ExportDate:  time.Now().UTC().Format(time.RFC3339),
	}
}

// Import decodes the raw backup document and overwrites each store whose
// field is present; absent fields are untouched (partial restore). A document
// that fails to parse or is not an object yields domain.ErrInvalidSnapshot
// before any store is written.
func (c *Codec) Import(ctx context.Context, raw []byte) error {
	var probe any
	if err := json.Unmarshal(raw, &probe); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidSnapshot, err)
	}
	if _, ok := probe.(map[string]any); !ok {
		return fmt.Errorf("%w: document is not an object", domain.ErrInvalidSnapshot)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidSnapshot, err)
	}

	if snapshot.Chats != nil {
		if err := c.chats.SaveAll(ctx, *snapshot.Chats); err != nil {
			return fmt.Errorf("restore chats: %w", err)
		}
	}
	if snapshot.Images != nil {
		if err := c.images.SaveAll(ctx, *snapshot.Images); err != nil {
			return fmt.Errorf("restore images: %w", err)
		}
	}
	if snapshot.Codes != nil {
		if err := c.projects.SaveAll(ctx, *snapshot.Codes); err != nil {
			return fmt.Errorf("restore code projects: %w", err)
		}
	}
	if snapshot.Preferences != nil {
		if err := c.preferences.Save(ctx, *snapshot.Preferences); err != nil {
			return fmt.Errorf("restore preferences: %w", err)
		}
	}
	return nil
}

// ClearHistory bulk-clears the chat log and image gallery and resets the
// project list to a fresh default.
func (c *Codec) ClearHistory(ctx context.Context) error {
	if err := c.chats.Clear(ctx); err != nil {
		return fmt.Errorf("clear chats: %w", err)
	}
	if err := c.images.Clear(ctx); err != nil {
		return fmt.Errorf("clear images: %w", err)
	}
	if err := c.projects.Clear(ctx); err != nil {
		return fmt.Errorf("clear code projects: %w", err)
	}
	return nil
}
