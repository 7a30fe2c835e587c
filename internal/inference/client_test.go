package inference

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/athuyarain/burme-mark/internal/domain"
)

func TestChatSendsSystemPromptAndHistory(t *testing.T) {
	var captured completionRequest
	var capturedHeader http.Header

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedHeader = r.Header.Clone()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"reply text"}}]}`))
	}))
	defer srv.Close()

	client := New(Options{
		BaseURL:    srv.URL,
		CustomerID: "cust-1",
		AuthToken:  "token-1",
		ChatModel:  "openrouter/anthropic/claude-3.5-sonnet",
		Timeout:    5 * time.Second,
	})

	history := []domain.ChatMessage{
		{Role: domain.RoleUser, Content: "first"},
		{Role: domain.RoleAssistant, Content: "second"},
		{Role: domain.RoleAssistant, Content: "typing", IsTyping: true},
	}
	reply, err := client.Chat(context.Background(), history, "third")
	require.NoError(t, err)
	assert.Equal(t, "reply text", reply)

	assert.Equal(t, "cust-1", capturedHeader.Get("customerId"))
	assert.Equal(t, "Bearer token-1", capturedHeader.Get("Authorization"))
	assert.Equal(t, "application/json", capturedHeader.Get("Content-Type"))

	assert.Equal(t, "openrouter/anthropic/claude-3.5-sonnet", captured.Model)
	require.Len(t, captured.Messages, 4)
	assert.Equal(t, wireMessage{Role: "system", Content: SystemPrompt}, captured.Messages[0])
	assert.Equal(t, wireMessage{Role: domain.RoleUser, Content: "first"}, captured.Messages[1])
	assert.Equal(t, wireMessage{Role: domain.RoleAssistant, Content: "second"}, captured.Messages[2])
	assert.Equal(t, wireMessage{Role: domain.RoleUser, Content: "third"}, captured.Messages[3])
}

func TestChatOmitsAuthHeadersWhenUnset(t *testing.T) {
	var capturedHeader http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedHeader = r.Header.Clone()
		w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer srv.Close()

	client := New(Options{BaseURL: srv.URL})
	_, err := client.Chat(context.Background(), nil, "hello")
	require.NoError(t, err)

	_, hasCustomer := capturedHeader["Customerid"]
	assert.False(t, hasCustomer)
	assert.Empty(t, capturedHeader.Get("Authorization"))
}

func TestGenerateImage(t *testing.T) {
	var captured completionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Write([]byte(`{"choices":[{"message":{"content":"https://img.example/out.png"}}]}`))
	}))
	defer srv.Close()

	client := New(Options{BaseURL: srv.URL, ImageModel: "replicate/black-forest-labs/flux-1.1-pro"})
	url, err := client.GenerateImage(context.Background(), "a golden pagoda at sunset")
	require.NoError(t, err)
	assert.Equal(t, "https://img.example/out.png", url)

	assert.Equal(t, "replicate/black-forest-labs/flux-1.1-pro", captured.Model)
	require.Len(t, captured.Messages, 1)
	assert.Equal(t, wireMessage{Role: domain.RoleUser, Content: "a golden pagoda at sunset"}, captured.Messages[0])
}

func TestGenerateImageEmptyURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[{"message":{"content":""}}]}`))
	}))
	defer srv.Close()

	client := New(Options{BaseURL: srv.URL})
	_, err := client.GenerateImage(context.Background(), "prompt")
	assert.ErrorContains(t, err, "no image URL")
}

func TestCompleteErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{
			name:    "server error status",
			status:  http.StatusBadGateway,
			body:    `{"error":"upstream down"}`,
			wantErr: "status 502",
		},
		{
			name:    "missing content field",
			status:  http.StatusOK,
			body:    `{"choices":[{"message":{}}]}`,
			wantErr: "missing choices.0.message.content",
		},
		{
			name:    "empty choices",
			status:  http.StatusOK,
			body:    `{"choices":[]}`,
			wantErr: "missing choices.0.message.content",
		},
		{
			name:    "not json",
			status:  http.StatusOK,
			body:    `<html>oops</html>`,
			wantErr: "missing choices.0.message.content",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			client := New(Options{BaseURL: srv.URL})
			_, err := client.Chat(context.Background(), nil, "hello")
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestChatUnreachableEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := New(Options{BaseURL: srv.URL, Timeout: time.Second})
	_, err := client.Chat(context.Background(), nil, "hello")
	assert.ErrorContains(t, err, "call completion endpoint")
}
