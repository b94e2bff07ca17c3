// Package conversation holds the ordered, append-only transcript of a chat.
// The transport re-sends the full history each turn, so this state is the
// single source of truth for conversation order.
package conversation

import (
	"context"
	"sync"
	"time"

	"frauddetect/internal/domain"
)

// Conversation grows monotonically: turns are appended, never edited or
// removed individually. Reset discards the whole transcript.
type Conversation struct {
	mu     sync.Mutex
	sendMu sync.Mutex
	turns  []domain.ConversationMessage
}

func New() *Conversation {
	return &Conversation{}
}

// Append records one completed turn at the end of the transcript.
func (c *Conversation) Append(role, content string) {
	c.AppendMessage(domain.ConversationMessage{
		Role:      role,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	})
}

func (c *Conversation) AppendMessage(m domain.ConversationMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.turns = append(c.turns, m)
}

// History returns a copy of the transcript in conversation order.
func (c *Conversation) History() []domain.ConversationMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.ConversationMessage, len(c.turns))
	copy(out, c.turns)
	return out
}

func (c *Conversation) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.turns)
}

// Reset discards all turns.
func (c *Conversation) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.turns = nil
}

// SendFunc performs the remote call for one turn given the prior history.
type SendFunc func(ctx context.Context, history []domain.ConversationMessage, message string) (string, error)

// Exchange runs one turn through send. Sends against the same conversation
// are serialized: each send's history must include all previously completed
// turns, so a second concurrent send queues behind the first. The user and
// assistant turns are appended only after a successful reply; a failed or
// cancelled call leaves the transcript untouched.
func (c *Conversation) Exchange(ctx context.Context, message string, send SendFunc) (string, error) {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	reply, err := send(ctx, c.History(), message)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	c.mu.Lock()
	c.turns = append(c.turns,
		domain.ConversationMessage{Role: domain.RoleUser, Content: message, CreatedAt: now},
		domain.ConversationMessage{Role: domain.RoleAssistant, Content: reply, CreatedAt: now},
	)
	c.mu.Unlock()

	return reply, nil
}

// Registry maps chat IDs to their conversation state.
type Registry struct {
	mu    sync.Mutex
	convs map[int64]*Conversation
}

func NewRegistry() *Registry {
	return &Registry{convs: make(map[int64]*Conversation)}
}

// Get returns the conversation for chatID, creating it on first use.
func (r *Registry) Get(chatID int64) *Conversation {
	r.mu.Lock()
	defer r.mu.Unlock()
	conv, ok := r.convs[chatID]
	if !ok {
		conv = New()
		r.convs[chatID] = conv
	}
	return conv
}

// Peek returns the conversation for chatID without creating one.
func (r *Registry) Peek(chatID int64) *Conversation {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.convs[chatID]
}

func (r *Registry) Remove(chatID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.convs, chatID)
}
