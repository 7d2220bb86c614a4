// internal/app/system/session/session.go
package session

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const (
	DefaultName = "npoconnect-session"

	chatIDKey = "chat_id"
)

// Manager keeps the caller's chat id in a signed cookie.
type Manager struct {
	store *sessions.CookieStore
	name  string
	log   *zap.Logger
}

// NewManager builds a cookie store signed with key.
//
// An empty key is replaced with a random one, so cookies stop validating
// when the process restarts. Secure cookies use SameSite=None so a front end
// on another origin can send them; otherwise Lax.
func NewManager(key, name string, secure bool, logger *zap.Logger) (*Manager, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if name == "" {
		name = DefaultName
	}

	secret := []byte(key)
	if key == "" {
		secret = securecookie.GenerateRandomKey(32)
		if secret == nil {
			return nil, errors.New("generating session key failed")
		}
		logger.Warn("session_key not set; using a random key, chat sessions will not survive a restart")
	} else if len(key) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(key)))
	}

	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if secure {
		store.Options.SameSite = http.SameSiteNoneMode
	}

	logger.Info("session store initialized",
		zap.String("name", name),
		zap.Bool("secure", secure))

	return &Manager{store: store, name: name, log: logger}, nil
}

// Name returns the cookie name.
func (m *Manager) Name() string { return m.name }

// ChatID returns the chat id stored for the caller, if any.
func (m *Manager) ChatID(r *http.Request) (string, bool) {
	sess, err := m.store.Get(r, m.name)
	if err != nil {
		// A cookie signed with another key decodes as a fresh session.
		m.log.Debug("discarding invalid session cookie", zap.Error(err))
	}
	id, ok := sess.Values[chatIDKey].(string)
	return id, ok && id != ""
}

// SetChatID stores id in the caller's cookie.
func (m *Manager) SetChatID(w http.ResponseWriter, r *http.Request, id string) error {
	sess, _ := m.store.Get(r, m.name)
	sess.Values[chatIDKey] = id
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// ClearChatID removes the chat id from the caller's cookie.
func (m *Manager) ClearChatID(w http.ResponseWriter, r *http.Request) error {
	sess, _ := m.store.Get(r, m.name)
	delete(sess.Values, chatIDKey)
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}
