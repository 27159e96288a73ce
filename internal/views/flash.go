package views

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"careconnect_web/pkg/contextkeys"
)

const (
	FlashSuccess = "success"
	FlashError   = "error"

	flashCookie = "careconnect_flash"
	flashMaxAge = 60 // seconds
)

type Flash struct {
	Kind    string `json:"k"`
	Message string `json:"m"`
}

// AddFlash queues a message for the next rendered page, in this request
// or after a redirect.
func AddFlash(c *gin.Context, kind, message string) {
	pending := append(pendingFlashes(c), Flash{Kind: kind, Message: message})
	c.Set(string(contextkeys.FlashContextKey), pending)

	b, err := json.Marshal(pending)
	if err != nil {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, base64.RawURLEncoding.EncodeToString(b), flashMaxAge, "/", "", false, true)
}

func Success(c *gin.Context, message string) {
	AddFlash(c, FlashSuccess, message)
}

func Error(c *gin.Context, message string) {
	AddFlash(c, FlashError, message)
}

// TakeFlashes returns the queued messages and clears the cookie.
func TakeFlashes(c *gin.Context) []Flash {
	flashes := pendingFlashes(c)
	c.Set(string(contextkeys.FlashContextKey), []Flash{})

	if _, err := c.Cookie(flashCookie); err == nil || len(flashes) > 0 {
		c.SetCookie(flashCookie, "", -1, "/", "", false, true)
	}
	return flashes
}

// pendingFlashes is what this request has queued so far, starting from the
// cookie the browser sent.
func pendingFlashes(c *gin.Context) []Flash {
	if v, ok := c.Get(string(contextkeys.FlashContextKey)); ok {
		flashes, _ := v.([]Flash)
		return flashes
	}
	flashes := readFlashCookie(c)
	c.Set(string(contextkeys.FlashContextKey), flashes)
	return flashes
}

func readFlashCookie(c *gin.Context) []Flash {
	raw, err := c.Cookie(flashCookie)
	if err != nil || raw == "" {
		return nil
	}
	b, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}
	var flashes []Flash
	if err := json.Unmarshal(b, &flashes); err != nil {
		return nil
	}
	return flashes
}
