package http

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strings"
)

const sessionCookieName = "sc_session"

// cookieCodec signs session tokens the way express-session signs its
// cookie, so a tampered cookie is rejected before the store is asked.
type cookieCodec struct {
	secret []byte
}

func newCookieCodec(secret string) cookieCodec {
	return cookieCodec{secret: []byte(secret)}
}

func (c cookieCodec) sign(token string) string {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(token))
	return token + "." + base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// verify returns the embedded token, or "" when the value is malformed
// or the signature does not match.
func (c cookieCodec) verify(value string) string {
	token, sig, ok := strings.Cut(value, ".")
	if !ok || token == "" {
		return ""
	}

	got, err := base64.RawURLEncoding.DecodeString(sig)
	if err != nil {
		return ""
	}

	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(token))
	if !hmac.Equal(got, mac.Sum(nil)) {
		return ""
	}
	return token
}

func (c cookieCodec) tokenFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return ""
	}
	return c.verify(cookie.Value)
}

func (c cookieCodec) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    c.sign(token),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
