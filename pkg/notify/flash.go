package notify

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
)

// FlashCookie is the cookie carrying notifications across a redirect.
const FlashCookie = "flash"

// Flash is a request-scoped Notifier that stores notifications in a cookie
// so they survive the redirect that follows a form post. Enqueue must be
// called before the response header is written.
type Flash struct {
	w     http.ResponseWriter
	path  string
	items []Notification
}

// NewFlash creates a Flash writing its cookie for path.
func NewFlash(w http.ResponseWriter, path string) *Flash {
	if path == "" {
		path = "/"
	}
	return &Flash{w: w, path: path}
}

// Enqueue adds a notification and rewrites the flash cookie.
func (f *Flash) Enqueue(kind Kind, message string) {
	f.items = append(f.items, New(kind, message))

	data, err := json.Marshal(f.items)
	if err != nil {
		return
	}

	header := f.w.Header()
	cookies := header.Values("Set-Cookie")
	header.Del("Set-Cookie")
	for _, c := range cookies {
		if !strings.HasPrefix(c, FlashCookie+"=") {
			header.Add("Set-Cookie", c)
		}
	}

	http.SetCookie(f.w, &http.Cookie{
		Name:     FlashCookie,
		Value:    base64.RawURLEncoding.EncodeToString(data),
		Path:     f.path,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Items returns the notifications enqueued on this Flash.
func (f *Flash) Items() []Notification {
	return append([]Notification(nil), f.items...)
}

// ReadFlash returns the notifications carried by the request and clears the
// cookie on the response.
func ReadFlash(w http.ResponseWriter, r *http.Request, path string) []Notification {
	c, err := r.Cookie(FlashCookie)
	if err != nil {
		return nil
	}

	if path == "" {
		path = "/"
	}
	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookie,
		Value:    "",
		Path:     path,
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	data, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return nil
	}

	var items []Notification
	if err := json.Unmarshal(data, &items); err != nil {
		return nil
	}
	return items
}
