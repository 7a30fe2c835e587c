// Package records implements the persisted record stores: chat log, image
// gallery, code projects, and preferences.
//
// Each store is one ordered list (or a singleton record) serialized as a
// whole JSON document under a fixed key on every mutation. Reads fail soft:
// corrupt or absent data is logged and replaced by an empty default, never
// surfaced as a failure.
package records

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/athuyarain/burme-mark/internal/domain"
	"github.com/athuyarain/burme-mark/internal/store"
)

// loadList reads and decodes the whole list stored under key. Absent or
// unparsable data yields an empty list.
func loadList[T any](ctx context.Context, kv store.KV, key string) []T {
	raw, err := kv.Get(ctx, key)
	if err != nil {
		slog.Error("read record store", "key", key, "error", err)
		return nil
	}
	if len(raw) == 0 {
		return nil
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		slog.Warn("corrupt record store, starting empty", "key", key, "error", err)
		return nil
	}
	return items
}

// saveList serializes the full ordered list and overwrites the store.
func saveList[T any](ctx context.Context, kv store.KV, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode record store %q: %w", key, err)
	}
	if err := kv.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("write record store %q: %w", key, err)
	}
	return nil
}

// Chats is the ordered chat log, oldest first.
type Chats struct {
	kv store.KV
}

// NewChats returns a chat log store over the given persistence port.
func NewChats(kv store.KV) *Chats {
	return &Chats{kv: kv}
}

// Load returns all persisted chat messages, oldest first.
func (c *Chats) Load(ctx context.Context) []domain.ChatMessage {
	return loadList[domain.ChatMessage](ctx, c.kv, store.KeyChats)
}

// SaveAll overwrites the chat log with the given messages. Transient typing
// placeholders are dropped before serialization.
func (c *Chats) SaveAll(ctx context.Context, messages []domain.ChatMessage) error {
	persisted := make([]domain.ChatMessage, 0, len(messages))
	for _, m := range messages {
		if m.IsTyping {
			continue
		}
		persisted = append(persisted, m)
	}
	return saveList(ctx, c.kv, store.KeyChats, persisted)
}

// Append adds one message to the end of the log and persists the whole list.
func (c *Chats) Append(ctx context.Context, message domain.ChatMessage) error {
	return c.SaveAll(ctx, append(c.Load(ctx), message))
}

// Clear removes the whole chat log. Messages are never deleted individually.
func (c *Chats) Clear(ctx context.Context) error {
	return c.kv.Delete(ctx, store.KeyChats)
}

// Images is the generated image gallery, most recent first.
type Images struct {
	kv store.KV
}

// NewImages returns an image gallery store over the given persistence port.
func NewImages(kv store.KV) *Images {
	return &Images{kv: kv}
}

// Load returns all persisted images, most recent first.
func (g *Images) Load(ctx context.Context) []domain.GeneratedImage {
	return loadList[domain.GeneratedImage](ctx, g.kv, store.KeyImages)
}

// SaveAll overwrites the gallery with the given images.
func (g *Images) SaveAll(ctx context.Context, images []domain.GeneratedImage) error {
	return saveList(ctx, g.kv, store.KeyImages, images)
}

// Prepend adds one image to the front of the gallery and persists the whole
// list. Called only after a successful generation.
func (g *Images) Prepend(ctx context.Context, image domain.GeneratedImage) error {
	return g.SaveAll(ctx, append([]domain.GeneratedImage{image}, g.Load(ctx)...))
}

// Clear empties the gallery.
func (g *Images) Clear(ctx context.Context) error {
	return g.kv.Delete(ctx, store.KeyImages)
}
