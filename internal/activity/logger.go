// Package activity provides an optional NDJSON log of assistant activity:
// chat exchanges, image generations, and code runs. Writes happen on a
// background goroutine behind a bounded queue so logging never blocks a
// request; events are dropped when the queue is full.
package activity

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Event kinds.
const (
	KindChatUser      = "chat_user_message"
	KindChatAssistant = "chat_assistant_reply"
	KindChatFailure   = "chat_failure"
	KindImageSuccess  = "image_generated"
	KindImageFailure  = "image_failure"
	KindCodeRun       = "code_run"
	KindImport        = "backup_import"
	KindExport        = "backup_export"
)

// Event is one logged activity line.
type Event struct {
	Timestamp string `json:"ts"`
	Kind      string `json:"kind"`
	Content   string `json:"content,omitempty"`
	Detail    string `json:"detail,omitempty"`
}

// Config controls the activity log.
type Config struct {
	Enabled   bool
	Path      string
	QueueSize int
}

// Logger records activity events.
type Logger interface {
	Log(event Event)
	Close() error
}

// NewLogger returns an async NDJSON logger writing to cfg.Path, or a no-op
// logger when disabled.
func NewLogger(cfg Config, log *slog.Logger) (Logger, error) {
	if !cfg.Enabled {
		return noopLogger{}, nil
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 256
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
		return nil, fmt.Errorf("create activity log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open activity log: %w", err)
	}

	l := &asyncLogger{
		file:  f,
		queue: make(chan Event, cfg.QueueSize),
		done:  make(chan struct{}),
		log:   log,
	}
	go l.writeLoop()
	return l, nil
}

type asyncLogger struct {
	file      *os.File
	queue     chan Event
	done      chan struct{}
	log       *slog.Logger
	closeOnce sync.Once
}

// Log enqueues the event, stamping it if needed. Drops when the queue is
// full rather than blocking the caller.
func (l *asyncLogger) Log(event Event) {
	if event.Timestamp == "" {
		event.Timestamp = time.Now().UTC().Format(time.RFC3339Nano)
	}
	select {
	case l.queue <- event:
	default:
		l.log.Warn("activity log queue full, dropping event", "kind", event.Kind)
	}
}

func (l *asyncLogger) writeLoop() {
	defer close(l.done)
	for event := range l.queue {
		line, err := json.Marshal(event)
		if err != nil {
			l.log.Warn("encode activity event", "error", err)
			continue
		}
		if _, err := l.file.Write(append(line, '\n')); err != nil {
			l.log.Warn("write activity event", "error", err)
		}
	}
}

// Close drains the queue and closes the log file.
func (l *asyncLogger) Close() error {
	var err error
	l.closeOnce.Do(func() {
		close(l.queue)
		<-l.done
		err = l.file.Close()
	})
	return err
}

type noopLogger struct{}

func (noopLogger) Log(Event) {}

func (noopLogger) Close() error { return nil }
