// internal/app/system/generation/chat.go
package generation

import (
	"context"
	"errors"
	"iter"
	"strings"
	"sync"

	"github.com/dalemusser/npoconnect/internal/app/system/aiclient"
	"go.uber.org/zap"
)

var (
	ErrEmptyMessage    = errors.New("message is empty")
	ErrChatUnavailable = errors.New("chat assistant is not available")
	errEmptyStream     = errors.New("stream ended without text")
)

// Role is the author of a transcript message.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Message is one transcript entry.
type Message struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Update reports progress of a chat turn. Text is the reply accumulated so
// far and only ever grows; Delta is the chunk that was just applied.
type Update struct {
	Turn   int    `json:"turn"`
	Text   string `json:"text"`
	Delta  string `json:"delta,omitempty"`
	Done   bool   `json:"done"`
	Failed bool   `json:"failed"`
}

// ChatSession is one assistant conversation. Its transcript lives as long as
// the session and is never persisted.
type ChatSession struct {
	chat aiclient.Chat
	log  *zap.Logger

	mu         sync.Mutex
	transcript []Message
	busy       bool
}

// NewChatSession opens a chat seeded with ChatSystemInstruction. It never
// fails: when the chat cannot be created the transcript holds
// InitErrorMessage and every Send reports ErrChatUnavailable.
func (o *Orchestrator) NewChatSession(ctx context.Context) *ChatSession {
	s := &ChatSession{log: zap.NewNop()}
	if !o.Configured() {
		s.transcript = []Message{{Role: RoleModel, Text: InitErrorMessage}}
		return s
	}
	s.log = o.log

	chat, err := o.client.NewChat(ctx, aiclient.ChatConfig{
		Model:             o.model,
		SystemInstruction: ChatSystemInstruction,
	})
	if err != nil {
		o.log.Error("failed to initialize chat", zap.Error(err))
		s.transcript = []Message{{Role: RoleModel, Text: InitErrorMessage}}
		return s
	}
	s.chat = chat
	s.transcript = []Message{{Role: RoleModel, Text: GreetingMessage}}
	return s
}

// Ready reports whether messages can be sent.
func (s *ChatSession) Ready() bool { return s.chat != nil }

// Busy reports whether a turn is in flight.
func (s *ChatSession) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// Transcript returns a copy of the conversation so far.
func (s *ChatSession) Transcript() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// Send sends msg and yields an Update per applied chunk, then a final Update
// with Done set. Nothing happens until the sequence is ranged over.
//
// The user message and an empty reply placeholder are appended first; each
// chunk replaces the placeholder with the longer accumulated text. If the
// stream fails, the placeholder (or, when text already arrived, a new
// message) carries StreamErrorMessage and the last yield pairs a Failed
// update with a *StreamError. The session stays usable afterwards.
func (s *ChatSession) Send(ctx context.Context, msg string) iter.Seq2[Update, error] {
	return func(yield func(Update, error) bool) {
		if strings.TrimSpace(msg) == "" {
			yield(Update{}, ErrEmptyMessage)
			return
		}
		if s.chat == nil {
			yield(Update{}, ErrChatUnavailable)
			return
		}

		s.mu.Lock()
		if s.busy {
			s.mu.Unlock()
			yield(Update{}, ErrBusy)
			return
		}
		s.busy = true
		s.transcript = append(s.transcript,
			Message{Role: RoleUser, Text: msg},
			Message{Role: RoleModel},
		)
		turn := len(s.transcript) - 1
		s.mu.Unlock()

		defer func() {
			s.mu.Lock()
			s.busy = false
			s.mu.Unlock()
		}()

		var acc strings.Builder
		for chunk, err := range s.chat.SendStream(ctx, msg) {
			if err != nil {
				s.fail(turn, err, yield)
				return
			}
			if chunk == "" {
				continue
			}
			acc.WriteString(chunk)
			text := acc.String()

			s.mu.Lock()
			s.transcript[turn].Text = text
			s.mu.Unlock()

			if !yield(Update{Turn: turn, Text: text, Delta: chunk}, nil) {
				return
			}
		}

		if acc.Len() == 0 {
			s.fail(turn, errEmptyStream, yield)
			return
		}
		yield(Update{Turn: turn, Text: acc.String(), Done: true}, nil)
	}
}

func (s *ChatSession) fail(turn int, cause error, yield func(Update, error) bool) {
	s.log.Warn("chat stream failed", zap.Error(cause))

	s.mu.Lock()
	if s.transcript[turn].Role == RoleModel && s.transcript[turn].Text == "" {
		s.transcript[turn].Text = StreamErrorMessage
	} else {
		s.transcript = append(s.transcript, Message{Role: RoleModel, Text: StreamErrorMessage})
		turn = len(s.transcript) - 1
	}
	s.mu.Unlock()

	yield(Update{Turn: turn, Text: StreamErrorMessage, Done: true, Failed: true}, &StreamError{Cause: cause})
}
