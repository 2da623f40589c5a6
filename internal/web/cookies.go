package web

import (
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	log "github.com/sirupsen/logrus"
)

const (
	cookieName    = "workout-tracker"
	loginTokenKey = "login-token"
)

// CookieStore keeps the login token and flash messages in a signed browser cookie.
type CookieStore struct {
	store *sessions.CookieStore
}

func NewCookieStore(secret []byte, secure bool, maxAge time.Duration) *CookieStore {
	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &CookieStore{
		store: store,
	}
}

func (c *CookieStore) session(r *http.Request) *sessions.Session {
	// a tampered or stale cookie yields a fresh, empty session
	session, err := c.store.Get(r, cookieName)
	if err != nil {
		log.Debugf("cookie store: discarding invalid cookie: %s", err)
	}
	return session
}

// LoginToken returns the login token carried by the request cookie, or "".
func (c *CookieStore) LoginToken(r *http.Request) string {
	token, _ := c.session(r).Values[loginTokenKey].(string)
	return token
}

func (c *CookieStore) SetLoginToken(w http.ResponseWriter, r *http.Request, token string) error {
	session := c.session(r)
	session.Values[loginTokenKey] = token
	return session.Save(r, w)
}

func (c *CookieStore) ClearLoginToken(w http.ResponseWriter, r *http.Request) error {
	session := c.session(r)
	delete(session.Values, loginTokenKey)
	return session.Save(r, w)
}

func (c *CookieStore) AddFlash(w http.ResponseWriter, r *http.Request, message string) {
	session := c.session(r)
	session.AddFlash(message)
	if err := session.Save(r, w); err != nil {
		log.Errorf("cookie store: save flash [%s]: %s", message, err)
	}
}

// Flashes pops the pending flash messages.
func (c *CookieStore) Flashes(w http.ResponseWriter, r *http.Request) []string {
	session := c.session(r)
	flashes := session.Flashes()
	if len(flashes) == 0 {
		return nil
	}
	if err := session.Save(r, w); err != nil {
		log.Errorf("cookie store: save after reading flashes: %s", err)
	}

	messages := make([]string, 0, len(flashes))
	for _, f := range flashes {
		if msg, ok := f.(string); ok {
			messages = append(messages, msg)
		}
	}
	return messages
}
