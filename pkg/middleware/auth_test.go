package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func upgradeRequest(target string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, target, nil)
	r.Header.Set("Connection", "Upgrade")
	r.Header.Set("Upgrade", "websocket")
	return r
}

func TestUpgradeToken(t *testing.T) {
	assert.Equal(t, "abc", upgradeToken(upgradeRequest("/ws?access_token=abc")))

	r := upgradeRequest("/ws")
	r.Header.Set("Sec-WebSocket-Protocol", "Bearer, abc")
	assert.Equal(t, "abc", upgradeToken(r))

	r = upgradeRequest("/ws")
	r.Header.Set("Sec-WebSocket-Protocol", "bearer")
	assert.Empty(t, upgradeToken(r))

	assert.Empty(t, upgradeToken(upgradeRequest("/ws?token=abc")))
}

func TestRedactQuery(t *testing.T) {
	got := redactQuery(url.Values{"access_token": {"abc"}, "page": {"2"}})
	assert.Equal(t, "access_token=REDACTED&page=2", got)
	assert.Equal(t, "page=2", redactQuery(url.Values{"page": {"2"}}))
}
