package http

import (
	"net/http"
	"time"
)

const sessionCookieName = "access_token"

func (h *Handler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.settings.SessionTTL / time.Second),
		HttpOnly: true,
		Secure:   h.settings.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.settings.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
