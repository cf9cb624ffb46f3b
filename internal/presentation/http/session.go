package httppresentation

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
)

const sessionCookie = "storefront_customer"

// SessionManager signs the customer id into a cookie with the process-wide
// secret key. No session library is pulled in for a single signed value.
type SessionManager struct {
	secret []byte
}

func NewSessionManager(secretKey string) *SessionManager {
	return &SessionManager{secret: []byte(secretKey)}
}

func (m *SessionManager) sign(value string) string {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(value))
	return hex.EncodeToString(mac.Sum(nil))
}

// Set writes the signed customer cookie.
func (m *SessionManager) Set(w http.ResponseWriter, customerID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    customerID + "." + m.sign(customerID),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Get returns the customer id from the cookie when the signature verifies.
func (m *SessionManager) Get(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		return "", false
	}
	idx := strings.LastIndexByte(cookie.Value, '.')
	if idx <= 0 {
		return "", false
	}
	customerID, sig := cookie.Value[:idx], cookie.Value[idx+1:]
	if !hmac.Equal([]byte(sig), []byte(m.sign(customerID))) {
		return "", false
	}
	return customerID, true
}
