// test/helpers/interaction.go
package helpers

import (
	"context"
	"sync"

	"github.com/ammerola/stockdesk/internal/core/ports"
)

// Notice is one recorded notification
type Notice struct {
	Kind    string
	Title   string
	Message string
}

// RecordingNotifier keeps every notice it receives
type RecordingNotifier struct {
	mu      sync.Mutex
	notices []Notice
}

var _ ports.Notifier = (*RecordingNotifier)(nil)

// NewRecordingNotifier creates an empty recorder
func NewRecordingNotifier() *RecordingNotifier {
	return &RecordingNotifier{}
}

func (n *RecordingNotifier) Success(_ context.Context, title, message string) {
	n.record("success", title, message)
}

func (n *RecordingNotifier) Error(_ context.Context, title, message string) {
	n.record("error", title, message)
}

func (n *RecordingNotifier) record(kind, title, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, Notice{Kind: kind, Title: title, Message: message})
}

// Notices returns every recorded notice in order
func (n *RecordingNotifier) Notices() []Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Notice(nil), n.notices...)
}

// Successes returns the messages of success notices, nil if none
func (n *RecordingNotifier) Successes() []string {
	return n.messages("success")
}

// Errors returns the messages of error notices, nil if none
func (n *RecordingNotifier) Errors() []string {
	return n.messages("error")
}

func (n *RecordingNotifier) messages(kind string) []string {
	n.mu.Lock()
	defer n.mu.Unlock()

	var out []string
	for _, notice := range n.notices {
		if notice.Kind == kind {
			out = append(out, notice.Message)
		}
	}
	return out
}

// StaticConfirmer answers every prompt the same way
type StaticConfirmer struct {
	Answer bool
	Err    error

	mu    sync.Mutex
	asked []ports.Prompt
}

var _ ports.Confirmer = (*StaticConfirmer)(nil)

// NewStaticConfirmer creates a confirmer that always answers answer
func NewStaticConfirmer(answer bool) *StaticConfirmer {
	return &StaticConfirmer{Answer: answer}
}

func (c *StaticConfirmer) Confirm(_ context.Context, prompt ports.Prompt) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.asked = append(c.asked, prompt)
	if c.Err != nil {
		return false, c.Err
	}
	return c.Answer, nil
}

// Asked returns how many prompts were shown
func (c *StaticConfirmer) Asked() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.asked)
}
