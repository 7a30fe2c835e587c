package records

import (
	"context"
	"testing"

	"github.com/athuyarain/burme-mark/internal/domain"
	"github.com/athuyarain/burme-mark/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferencesDefaults(t *testing.T) {
	t.Parallel()

	prefs := NewPreferences(store.NewMemory()).Load(context.Background())
	assert.True(t, prefs.SoundEnabled)
	assert.Equal(t, domain.LangMyanmar, prefs.Language)
	assert.Equal(t, domain.ThemeSystem, prefs.Theme)
}

func TestPreferencesSaveIsWholesale(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := store.NewMemory()
	prefs := NewPreferences(kv)

	require.NoError(t, prefs.Save(ctx, domain.Preferences{
		SoundEnabled: false,
		Language:     domain.LangEnglish,
		Theme:        domain.ThemeDark,
	}))

	loaded := prefs.Load(ctx)
	assert.False(t, loaded.SoundEnabled)
	assert.Equal(t, domain.LangEnglish, loaded.Language)
	assert.Equal(t, domain.ThemeDark, loaded.Theme)

	// The language choice is mirrored under its own bare-string key.
	raw, err := kv.Get(ctx, store.KeyLanguage)
	require.NoError(t, err)
	assert.Equal(t, "en", string(raw))
	assert.Equal(t, domain.LangEnglish, prefs.Language(ctx))
}

func TestPreferencesCorruptFallsBackToDefaults(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := store.NewMemory()
	require.NoError(t, kv.Set(ctx, store.KeyPreferences, []byte("[]")))

	prefs := NewPreferences(kv).Load(ctx)
	assert.Equal(t, domain.DefaultPreferences(), prefs)
}

func TestSetLanguageRejectsUnknown(t *testing.T) {
	t.Parallel()

	prefs := NewPreferences(store.NewMemory())
	assert.Error(t, prefs.SetLanguage(context.Background(), "fr"))
}
