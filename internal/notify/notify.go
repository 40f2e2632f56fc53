// Package notify raises user-facing toasts with a fixed presentation.
package notify

import (
	"fmt"
	"io"
	"sync"
	"time"

	"catalog-admin/internal/logger"

	"go.uber.org/zap"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

type Options struct {
	Position        string
	AutoClose       time.Duration
	HideProgressBar bool
	CloseOnClick    bool
	PauseOnHover    bool
	Draggable       bool
	Theme           string
	Transition      string
}

// DefaultOptions is applied to every toast.
var DefaultOptions = Options{
	Position:        "top-center",
	AutoClose:       5 * time.Second,
	HideProgressBar: false,
	CloseOnClick:    false,
	PauseOnHover:    true,
	Draggable:       true,
	Theme:           "light",
	Transition:      "slide",
}

type Toast struct {
	Level   Level
	Message string
	Options Options
}

// Sink displays toasts.
type Sink interface {
	Show(Toast)
}

type Toaster struct {
	sink     Sink
	position string
}

func NewToaster(sink Sink) *Toaster {
	return &Toaster{sink: sink, position: DefaultOptions.Position}
}

// WithPosition returns a copy of t that places toasts at position.
func (t *Toaster) WithPosition(position string) *Toaster {
	cp := *t
	cp.position = position
	return &cp
}

func (t *Toaster) Success(message string) { t.show(LevelSuccess, message) }
func (t *Toaster) Warning(message string) { t.show(LevelWarning, message) }
func (t *Toaster) Error(message string)   { t.show(LevelError, message) }
func (t *Toaster) Info(message string)    { t.show(LevelInfo, message) }

func (t *Toaster) show(level Level, message string) {
	if t == nil || t.sink == nil {
		return
	}
	opts := DefaultOptions
	opts.Position = t.position
	t.sink.Show(Toast{Level: level, Message: message, Options: opts})
}

// LogSink writes toasts to the structured logger.
type LogSink struct{}

func (LogSink) Show(toast Toast) {
	log := logger.L().With(zap.String("toast", string(toast.Level)))
	switch toast.Level {
	case LevelError:
		log.Error(toast.Message)
	case LevelWarning:
		log.Warn(toast.Message)
	default:
		log.Info(toast.Message)
	}
}

var levelMarks = map[Level]string{
	LevelSuccess: "✔",
	LevelWarning: "!",
	LevelError:   "✖",
	LevelInfo:    "i",
}

// WriterSink prints one line per toast, used by the CLI.
type WriterSink struct {
	mu sync.Mutex
	W  io.Writer
}

func (s *WriterSink) Show(toast Toast) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.W, "[%s] %s\n", levelMarks[toast.Level], toast.Message)
}

// Recorder keeps every toast in memory.
type Recorder struct {
	mu     sync.Mutex
	toasts []Toast
}

func (r *Recorder) Show(toast Toast) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, toast)
}

func (r *Recorder) Toasts() []Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Toast(nil), r.toasts...)
}

// Last returns the most recent toast and whether there was one.
func (r *Recorder) Last() (Toast, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.toasts) == 0 {
		return Toast{}, false
	}
	return r.toasts[len(r.toasts)-1], true
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = nil
}
