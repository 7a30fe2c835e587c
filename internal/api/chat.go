package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/athuyarain/burme-mark/internal/activity"
	"github.com/athuyarain/burme-mark/internal/domain"
)

// Localized chat strings.
const (
	welcomeMessage = "မင်္ဂလာပါ! ကျွန်တော် Burme Mark ပါ။ ဘယ်လိုကူညီပေးရမလဲ?"
	apologyMessage = "တောင်းပန်ပါတယ်၊ အင်တာနက်ချိတ်ဆက်မှုတွင် ပြသနာရှိနေပါတယ်။ ကြိုးစားကြည့်ပါ။"
)

type chatListResponse struct {
	Messages []domain.ChatMessage `json:"messages"`
}

type sendChatRequest struct {
	Message string `json:"message"`
}

type sendChatResponse struct {
	Reply domain.ChatMessage `json:"reply"`
	// Failed marks a transient apology reply that was not persisted; the
	// client shows it and keeps the draft so the user can resend.
	Failed bool `json:"failed,omitempty"`
}

// ListChat returns the persisted chat log. An empty log yields a transient
// welcome turn so the conversation never opens blank; the greeting is not
// persisted.
func (h *Handler) ListChat(w http.ResponseWriter, r *http.Request) {
	messages := h.chats.Load(r.Context())
	if len(messages) == 0 {
		messages = []domain.ChatMessage{{
			ID:        "welcome",
			Content:   welcomeMessage,
			Role:      domain.RoleAssistant,
			Timestamp: time.Now(),
		}}
	}
	JSON(w, http.StatusOK, chatListResponse{Messages: messages})
}

// SendChat persists the user's turn, asks the inference endpoint for a reply,
// and persists the assistant turn on success. On failure the user's turn
// stays, no assistant record is written, and a localized apology is returned
// as a transient reply.
func (h *Handler) SendChat(w http.ResponseWriter, r *http.Request) {
	var req sendChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		Error(w, http.StatusBadRequest, "message cannot be empty")
		return
	}

	ctx := r.Context()
	previous := h.chats.Load(ctx)

	userTurn := domain.ChatMessage{
		ID:        domain.NewID(),
		Content:   req.Message,
		Role:      domain.RoleUser,
		Timestamp: time.Now(),
	}
	if err := h.chats.Append(ctx, userTurn); err != nil {
		Error(w, http.StatusInternalServerError, "failed to save message")
		return
	}
	h.activity.Log(activity.Event{Kind: activity.KindChatUser, Content: req.Message})

	replyText, err := h.ai.Chat(ctx, previous, req.Message)
	if err != nil {
		slog.Warn("chat completion failed", "error", err)
		h.activity.Log(activity.Event{Kind: activity.KindChatFailure, Detail: err.Error()})
		JSON(w, http.StatusOK, sendChatResponse{
			Reply: domain.ChatMessage{
				ID:        domain.NewID(),
				Content:   apologyMessage,
				Role:      domain.RoleAssistant,
				Timestamp: time.Now(),
			},
			Failed: true,
		})
		return
	}

	assistantTurn := domain.ChatMessage{
		ID:        domain.NewID(),
		Content:   replyText,
		Role:      domain.RoleAssistant,
		Timestamp: time.Now(),
	}
	if err := h.chats.Append(ctx, assistantTurn); err != nil {
		Error(w, http.StatusInternalServerError, "failed to save reply")
		return
	}
	h.activity.Log(activity.Event{Kind: activity.KindChatAssistant, Content: replyText})

	JSON(w, http.StatusOK, sendChatResponse{Reply: assistantTurn})
}

// ClearChat bulk-clears the chat log.
func (h *Handler) ClearChat(w http.ResponseWriter, r *http.Request) {
	if err := h.chats.Clear(r.Context()); err != nil {
		Error(w, http.StatusInternalServerError, "failed to clear chat")
		return
	}
	JSON(w, http.StatusOK, map[string]bool{"cleared": true})
}
