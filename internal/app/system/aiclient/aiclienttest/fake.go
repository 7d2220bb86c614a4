// Package aiclienttest provides a scripted aiclient.Client for tests.
package aiclienttest

import (
	"context"
	"iter"
	"sync"

	"github.com/dalemusser/npoconnect/internal/app/system/aiclient"
)

// Client is a scripted aiclient.Client. Requests are recorded.
type Client struct {
	mu sync.Mutex

	Response aiclient.Response
	Err      error

	// Chunks are streamed by every chat turn; StreamErr, when set, is
	// yielded after them.
	Chunks    []string
	StreamErr error
	ChatErr   error

	Requests []aiclient.Request
	Chats    []aiclient.ChatConfig
	Messages []string
}

// Complete implements aiclient.Client.
func (c *Client) Complete(_ context.Context, req aiclient.Request) (aiclient.Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Requests = append(c.Requests, req)
	if c.Err != nil {
		return aiclient.Response{}, c.Err
	}
	return c.Response, nil
}

// NewChat implements aiclient.Client.
func (c *Client) NewChat(_ context.Context, cfg aiclient.ChatConfig) (aiclient.Chat, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Chats = append(c.Chats, cfg)
	if c.ChatErr != nil {
		return nil, c.ChatErr
	}
	return &chat{c: c}, nil
}

// SetStream replaces the scripted chat stream. Use it once chats are live.
func (c *Client) SetStream(chunks []string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Chunks = chunks
	c.StreamErr = err
}

// LastRequest returns the most recent completion request.
func (c *Client) LastRequest() aiclient.Request {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.Requests) == 0 {
		return aiclient.Request{}
	}
	return c.Requests[len(c.Requests)-1]
}

type chat struct {
	c *Client
}

func (ch *chat) SendStream(ctx context.Context, msg string) iter.Seq2[string, error] {
	ch.c.mu.Lock()
	ch.c.Messages = append(ch.c.Messages, msg)
	chunks := append([]string(nil), ch.c.Chunks...)
	streamErr := ch.c.StreamErr
	ch.c.mu.Unlock()

	return func(yield func(string, error) bool) {
		for _, s := range chunks {
			if err := ctx.Err(); err != nil {
				yield("", err)
				return
			}
			if !yield(s, nil) {
				return
			}
		}
		if streamErr != nil {
			yield("", streamErr)
		}
	}
}
