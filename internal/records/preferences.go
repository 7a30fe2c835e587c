package records

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/athuyarain/burme-mark/internal/domain"
	"github.com/athuyarain/burme-mark/internal/store"
)

// Preferences is the singleton settings store.
type Preferences struct {
	kv store.KV
}

// NewPreferences returns a preferences store over the given persistence port.
func NewPreferences(kv store.KV) *Preferences {
	return &Preferences{kv: kv}
}

// Load returns the persisted preferences, falling back to defaults when the
// record is absent or corrupt.
func (p *Preferences) Load(ctx context.Context) domain.Preferences {
	prefs := domain.DefaultPreferences()
	raw, err := p.kv.Get(ctx, store.KeyPreferences)
	if err != nil {
		slog.Error("read preferences", "error", err)
		return prefs
	}
	if len(raw) == 0 {
		return prefs
	}
	if err := json.Unmarshal(raw, &prefs); err != nil {
		slog.Warn("corrupt preferences, using defaults", "error", err)
		return domain.DefaultPreferences()
	}
	return prefs
}

// Save overwrites the preferences record wholesale and mirrors the language
// choice under its own bare-string key so it can be read without decoding
// the full preferences document.
func (p *Preferences) Save(ctx context.Context, prefs domain.Preferences) error {
	raw, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	if err := p.kv.Set(ctx, store.KeyPreferences, raw); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	if prefs.Language != "" {
		if err := p.kv.Set(ctx, store.KeyLanguage, []byte(prefs.Language)); err != nil {
			return fmt.Errorf("write language: %w", err)
		}
	}
	return nil
}

// Language returns the persisted UI language, defaulting to Myanmar.
func (p *Preferences) Language(ctx context.Context) string {
	raw, err := p.kv.Get(ctx, store.KeyLanguage)
	if err != nil || len(raw) == 0 {
		return domain.LangMyanmar
	}
	lang := string(raw)
	if lang != domain.LangMyanmar && lang != domain.LangEnglish {
		return domain.LangMyanmar
	}
	return lang
}

// SetLanguage persists the UI language under the bare-string key.
func (p *Preferences) SetLanguage(ctx context.Context, lang string) error {
	if lang != domain.LangMyanmar && lang != domain.LangEnglish {
		return fmt.Errorf("unsupported language %q", lang)
	}
	if err := p.kv.Set(ctx, store.KeyLanguage, []byte(lang)); err != nil {
		return fmt.Errorf("write language: %w", err)
	}
	return nil
}
