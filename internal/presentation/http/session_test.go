package httppresentation

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRoundTrip(t *testing.T) {
	sessions := NewSessionManager("test-secret")

	rec := httptest.NewRecorder()
	sessions.Set(rec, "c1")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, sessionCookie, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.AddCookie(cookies[0])

	customerID, ok := sessions.Get(req)
	require.True(t, ok)
	assert.Equal(t, "c1", customerID)
}

func TestSessionRejectsTamperedCookie(t *testing.T) {
	sessions := NewSessionManager("test-secret")

	rec := httptest.NewRecorder()
	sessions.Set(rec, "c1")
	cookie := rec.Result().Cookies()[0]

	// Swap the customer id while keeping the original signature.
	tampered := &http.Cookie{Name: cookie.Name, Value: "c2" + cookie.Value[2:]}
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.AddCookie(tampered)

	_, ok := sessions.Get(req)
	assert.False(t, ok)
}

func TestSessionRejectsForeignSecret(t *testing.T) {
	signer := NewSessionManager("secret-a")
	verifier := NewSessionManager("secret-b")

	rec := httptest.NewRecorder()
	signer.Set(rec, "c1")
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.AddCookie(rec.Result().Cookies()[0])

	_, ok := verifier.Get(req)
	assert.False(t, ok)
}

func TestSessionMissingCookie(t *testing.T) {
	sessions := NewSessionManager("test-secret")
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)

	_, ok := sessions.Get(req)
	assert.False(t, ok)
}
