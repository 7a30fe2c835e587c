package backup

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/athuyarain/burme-mark/internal/domain"
	"github.com/athuyarain/burme-mark/internal/records"
	"github.com/athuyarain/burme-mark/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCodec(kv store.KV) *Codec {
	return New(
		records.NewChats(kv),
		records.NewImages(kv),
		records.NewProjects(kv),
		records.NewPreferences(kv),
	)
}

func seed(t *testing.T, ctx context.Context, kv store.KV) {
	t.Helper()
	require.NoError(t, records.NewChats(kv).Append(ctx, domain.ChatMessage{
		ID: "c1", Content: "မင်္ဂလာပါ", Role: domain.RoleUser, Timestamp: time.Now().Truncate(time.Second),
	}))
	require.NoError(t, records.NewImages(kv).Prepend(ctx, domain.GeneratedImage{
		ID: "i1", Prompt: "ပန်းခြံ", URL: "https://img/1.png", Timestamp: time.Now().Truncate(time.Second),
	}))
	require.NoError(t, records.NewPreferences(kv).Save(ctx, domain.Preferences{
		SoundEnabled: false, Language: domain.LangEnglish, Theme: domain.ThemeDark,
	}))
}

func TestExportImportRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	source := store.NewMemory()
	seed(t, ctx, source)
	snapshot := newCodec(source).Export(ctx)

	raw, err := json.Marshal(snapshot)
	require.NoError(t, err)

	// Parsed form of what was exported; comparing parsed-to-parsed keeps
	// time.Time equality free of monotonic-clock noise.
	var want Snapshot
	require.NoError(t, json.Unmarshal(raw, &want))

	// Restore into a fresh, empty set of stores.
	target := store.NewMemory()
	codec := newCodec(target)
	require.NoError(t, codec.Import(ctx, raw))

	restored := codec.Export(ctx)
	assert.Equal(t, want.Chats, restored.Chats)
	assert.Equal(t, want.Images, restored.Images)
	assert.Equal(t, want.Codes, restored.Codes)
	assert.Equal(t, want.Preferences, restored.Preferences)
}

func TestExportDoesNotMutateStores(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := store.NewMemory()
	seed(t, ctx, kv)

	before, err := kv.Get(ctx, store.KeyChats)
	require.NoError(t, err)

	newCodec(kv).Export(ctx)

	after, err := kv.Get(ctx, store.KeyChats)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestExportOnFreshStoreWritesNothing(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := store.NewMemory()

	snapshot := newCodec(kv).Export(ctx)

	// Export on an empty store must not seed anything, in particular not
	// the default code project.
	for _, key := range []string{store.KeyChats, store.KeyImages, store.KeyProjects, store.KeyPreferences} {
		raw, err := kv.Get(ctx, key)
		require.NoError(t, err)
		assert.Nil(t, raw, "export wrote %q", key)
	}

	// The snapshot still carries empty lists, not nulls.
	require.NotNil(t, snapshot.Chats)
	assert.Empty(t, *snapshot.Chats)
	require.NotNil(t, snapshot.Codes)
	assert.Empty(t, *snapshot.Codes)
}

func TestImportPartialDocumentLeavesOtherStoresUntouched(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := store.NewMemory()
	seed(t, ctx, kv)
	codec := newCodec(kv)

	chatsBefore, err := kv.Get(ctx, store.KeyChats)
	require.NoError(t, err)
	codesBefore, err := kv.Get(ctx, store.KeyProjects)
	require.NoError(t, err)

	doc := `{"images": [{"id": "x", "prompt": "new", "url": "https://img/x.png", "timestamp": "2026-01-01T00:00:00Z"}]}`
	require.NoError(t, codec.Import(ctx, []byte(doc)))

	chatsAfter, err := kv.Get(ctx, store.KeyChats)
	require.NoError(t, err)
	codesAfter, err := kv.Get(ctx, store.KeyProjects)
	require.NoError(t, err)
	assert.Equal(t, chatsBefore, chatsAfter)
	assert.Equal(t, codesBefore, codesAfter)

	images := records.NewImages(kv).Load(ctx)
	require.Len(t, images, 1)
	assert.Equal(t, "x", images[0].ID)
}

func TestImportMalformedDocumentTouchesNothing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
	}{
		{"not json", "{broken"},
		{"not an object", `[1, 2, 3]`},
		{"bare string", `"hello"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			kv := store.NewMemory()
			seed(t, ctx, kv)
			codec := newCodec(kv)

			before, err := kv.Get(ctx, store.KeyChats)
			require.NoError(t, err)

			err = codec.Import(ctx, []byte(tt.doc))
			assert.ErrorIs(t, err, domain.ErrInvalidSnapshot)

			after, getErr := kv.Get(ctx, store.KeyChats)
			require.NoError(t, getErr)
			assert.Equal(t, before, after)
		})
	}
}

func TestClearHistoryResetsAllThreeStores(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := store.NewMemory()
	seed(t, ctx, kv)
	codec := newCodec(kv)

	require.NoError(t, codec.ClearHistory(ctx))

	assert.Empty(t, records.NewChats(kv).Load(ctx))
	assert.Empty(t, records.NewImages(kv).Load(ctx))
	projects := records.NewProjects(kv).Load(ctx)
	require.Len(t, projects, 1)
	assert.Equal(t, "Project 1", projects[0].Name)
}
