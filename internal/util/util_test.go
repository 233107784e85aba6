package util

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"newel_classroom/internal/model"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestJWTRoundTrip(t *testing.T) {
	user := &model.User{Role: model.Student}
	user.ID = 42

	token, err := GenerateJWT(user, "sid-1", "secret", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	claims, err := ParseJWT(token, "secret")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != 42 || claims.Role != model.Student || claims.ID != "sid-1" {
		t.Fatalf("unexpected claims %+v", claims)
	}

	if _, err := ParseJWT(token, "other-secret"); err == nil {
		t.Fatalf("expected wrong secret to fail")
	}
}

func TestJWTExpired(t *testing.T) {
	user := &model.User{Role: model.Teacher}
	token, err := GenerateJWT(user, "sid", "secret", -time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ParseJWT(token, "secret"); err == nil {
		t.Fatalf("expected expired token to fail")
	}
}

func TestAppErrorKinds(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewForbiddenError("nope"))
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected forbidden kind")
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatalf("forbidden must not match not found")
	}
	if Message(err, "fallback") != "nope" {
		t.Fatalf("expected user message, got %q", Message(err, "fallback"))
	}
	if Message(errors.New("db down"), "fallback") != "fallback" {
		t.Fatalf("expected fallback for plain errors")
	}
	if !IsHandled(err) || IsHandled(errors.New("db down")) {
		t.Fatalf("IsHandled misclassified errors")
	}
}

func TestParseID(t *testing.T) {
	cases := map[string]bool{"1": true, "42": true, "0": false, "-3": false, "abc": false, "": false, "1.5": false}
	for in, ok := range cases {
		if _, got := ParseID(in); got != ok {
			t.Fatalf("ParseID(%q) ok = %v, want %v", in, got, ok)
		}
	}
}

func TestFlashSurvivesRedirectUntilRendered(t *testing.T) {
	r := gin.New()
	r.GET("/set", func(c *gin.Context) {
		RedirectWithFlash(c, "/hop", FlashSuccess, "Saved.")
	})
	r.GET("/hop", func(c *gin.Context) {
		Redirect(c, "/show")
	})
	r.GET("/show", func(c *gin.Context) {
		c.Set(ContextFlashesKey, ReadFlashes(c))
		flashes := ConsumeFlashes(c)
		if len(flashes) != 1 || flashes[0].Message != "Saved." {
			c.String(http.StatusInternalServerError, "missing flash")
			return
		}
		c.String(http.StatusOK, flashes[0].Category)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/set", nil))
	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != flashCookie {
		t.Fatalf("expected flash cookie, got %v", cookies)
	}

	req := httptest.NewRequest(http.MethodGet, "/hop", nil)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if len(w.Result().Cookies()) != 0 {
		t.Fatalf("redirect without rendering must not touch the flash cookie")
	}

	req = httptest.NewRequest(http.MethodGet, "/show", nil)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || w.Body.String() != FlashSuccess {
		t.Fatalf("expected flash on render, got %d %q", w.Code, w.Body.String())
	}
	cleared := w.Result().Cookies()
	if len(cleared) != 1 || cleared[0].MaxAge >= 0 {
		t.Fatalf("expected flash cookie to be cleared, got %v", cleared)
	}
}
