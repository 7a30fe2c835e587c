// Package history builds the unified activity view over the chat, image, and
// code record stores.
package history

import (
	"context"
	"sort"
	"strings"

	"github.com/athuyarain/burme-mark/internal/domain"
	"github.com/athuyarain/burme-mark/internal/records"
)

const (
	titleLimit   = 50
	previewLimit = 100
)

// Aggregator reads the three record stores and projects them into history
// items.
type Aggregator struct {
	chats    *records.Chats
	images   *records.Images
	projects *records.Projects
}

// New returns an aggregator over the given stores.
func New(chats *records.Chats, images *records.Images, projects *records.Projects) *Aggregator {
	return &Aggregator{chats: chats, images: images, projects: projects}
}

// Build reads all three stores and returns one list of history items sorted
// by timestamp descending. Assistant chat turns are excluded: only what the
// user authored counts as activity.
func (a *Aggregator) Build(ctx context.Context) []domain.HistoryItem {
	var items []domain.HistoryItem

	for _, msg := range a.chats.Load(ctx) {
		if msg.Role != domain.RoleUser {
			continue
		}
		items = append(items, domain.HistoryItem{
			ID:        "chat-" + msg.ID,
			Kind:      domain.KindChat,
			Title:     Truncate(msg.Content, titleLimit),
			Content:   msg.Content,
			Timestamp: msg.Timestamp,
			Preview:   msg.Content,
		})
	}

	for _, img := range a.images.Load(ctx) {
		items = append(items, domain.HistoryItem{
			ID:        "image-" + img.ID,
			Kind:      domain.KindImage,
			Title:     Truncate(img.Prompt, titleLimit),
			Content:   img.Prompt,
			Timestamp: img.Timestamp,
			Preview:   img.URL,
		})
	}

	for _, project := range a.projects.All(ctx) {
		items = append(items, domain.HistoryItem{
			ID:        "code-" + project.ID,
			Kind:      domain.KindCode,
			Title:     project.Name,
			Content:   project.Code,
			Timestamp: project.Timestamp,
			Preview:   Truncate(project.Code, previewLimit),
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Timestamp.After(items[j].Timestamp)
	})
	return items
}

// Filter keeps items whose title or content contains query (case-insensitive
// substring match) and whose kind matches kind ("all" or empty matches
// everything). Pure function over the input slice.
func Filter(items []domain.HistoryItem, query, kind string) []domain.HistoryItem {
	query = strings.ToLower(query)
	filtered := make([]domain.HistoryItem, 0, len(items))
	for _, item := range items {
		if kind != "" && kind != domain.KindAll && item.Kind != kind {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(item.Title), query) &&
			!strings.Contains(strings.ToLower(item.Content), query) {
			continue
		}
		filtered = append(filtered, item)
	}
	return filtered
}

// Stats counts items per kind for the history summary cards.
func Stats(items []domain.HistoryItem) map[string]int {
	stats := map[string]int{
		domain.KindChat:  0,
		domain.KindImage: 0,
		domain.KindCode:  0,
	}
	for _, item := range items {
		stats[item.Kind]++
	}
	stats["total"] = len(items)
	return stats
}

// Truncate shortens s to at most limit runes, appending an ellipsis when
// anything was cut. Rune-aware so Myanmar text is never split mid-character.
func Truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
