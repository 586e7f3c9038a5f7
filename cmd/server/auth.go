package main

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"net/http"
	"strconv"
	"strings"
)

const (
	sessionCookieName  = "solida_session"
	attemptsCookieName = "solida_attempts"
	sessionSubject     = "anbud"
)

type authService struct {
	password      []byte
	sessionSecret []byte
	maxAttempts   int
}

func newAuthService(password, sessionSecret string, maxAttempts int) *authService {
	return &authService{
		password:      []byte(password),
		sessionSecret: []byte(sessionSecret),
		maxAttempts:   maxAttempts,
	}
}

// checkPassword compares in constant time. An unset password admits nobody.
func (a *authService) checkPassword(password string) bool {
	if len(a.password) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare(a.password, []byte(password)) == 1
}

func (a *authService) sign(value string) string {
	payload := base64.RawURLEncoding.EncodeToString([]byte(value))
	mac := hmac.New(sha256.New, a.sessionSecret)
	_, _ = mac.Write([]byte(payload))
	signature := hex.EncodeToString(mac.Sum(nil))
	return payload + "." + signature
}

func (a *authService) verify(value string) (string, bool) {
	payload, signature, ok := strings.Cut(value, ".")
	if !ok || strings.Contains(signature, ".") {
		return "", false
	}

	mac := hmac.New(sha256.New, a.sessionSecret)
	_, _ = mac.Write([]byte(payload))
	expected := mac.Sum(nil)

	provided, err := hex.DecodeString(signature)
	if err != nil {
		return "", false
	}
	if !hmac.Equal(provided, expected) {
		return "", false
	}

	decoded, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil || len(decoded) == 0 {
		return "", false
	}
	return string(decoded), true
}

func (a *authService) isAuthenticated(r *http.Request) bool {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return false
	}
	subject, ok := a.verify(cookie.Value)
	return ok && subject == sessionSubject
}

func (a *authService) setSessionCookie(w http.ResponseWriter) {
	setCookie(w, sessionCookieName, a.sign(sessionSubject), 0)
}

func (a *authService) clearSessionCookie(w http.ResponseWriter) {
	setCookie(w, sessionCookieName, "", -1)
}

// attempts returns the failed-login count carried by the request. A missing
// or tampered cookie counts as zero.
func (a *authService) attempts(r *http.Request) int {
	cookie, err := r.Cookie(attemptsCookieName)
	if err != nil {
		return 0
	}
	raw, ok := a.verify(cookie.Value)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func (a *authService) locked(r *http.Request) bool {
	return a.attempts(r) >= a.maxAttempts
}

func (a *authService) setAttempts(w http.ResponseWriter, n int) {
	setCookie(w, attemptsCookieName, a.sign(strconv.Itoa(n)), 0)
}

func (a *authService) clearAttempts(w http.ResponseWriter) {
	setCookie(w, attemptsCookieName, "", -1)
}

func setCookie(w http.ResponseWriter, name, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
