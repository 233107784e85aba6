package util

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

const flashCookie = "newel_flash"

// Flash is a one-shot status message shown on the next rendered page.
type Flash struct {
	Category string `json:"c"`
	Message  string `json:"m"`
}

const flashesConsumedKey = "flashesConsumed"

// ReadFlashes decodes the flash cookie without clearing it. Messages survive
// redirects until a page is actually rendered.
func ReadFlashes(c *gin.Context) []Flash {
	value, err := c.Cookie(flashCookie)
	if err != nil || value == "" {
		return nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil
	}
	var flashes []Flash
	if err := json.Unmarshal(raw, &flashes); err != nil {
		return nil
	}
	return flashes
}

// SetFlash queues a message for the next rendered page, keeping any messages
// that have not been shown yet.
func SetFlash(c *gin.Context, category, message string) {
	var pending []Flash
	if !c.GetBool(flashesConsumedKey) {
		if v, ok := c.Get(ContextFlashesKey); ok {
			pending, _ = v.([]Flash)
		}
	}
	pending = append(pending, Flash{Category: category, Message: message})
	c.Set(ContextFlashesKey, pending)
	c.Set(flashesConsumedKey, false)

	raw, err := json.Marshal(pending)
	if err != nil {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, base64.RawURLEncoding.EncodeToString(raw), 60, "/", "", false, true)
}

// ConsumeFlashes returns the messages for the page being rendered and clears the cookie.
func ConsumeFlashes(c *gin.Context) []Flash {
	v, ok := c.Get(ContextFlashesKey)
	if !ok || c.GetBool(flashesConsumedKey) {
		return nil
	}
	flashes, _ := v.([]Flash)
	c.Set(flashesConsumedKey, true)
	if len(flashes) > 0 {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(flashCookie, "", -1, "/", "", false, true)
	}
	return flashes
}
