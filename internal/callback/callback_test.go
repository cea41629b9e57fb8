package callback

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcmarket/mcmarket-client/internal/config"
	"github.com/mcmarket/mcmarket-client/internal/logger"
)

func newTestListener(t *testing.T) Listener {
	t.Helper()
	l := NewListener(config.Callback{Address: "127.0.0.1:0"}, logger.Nop())
	t.Cleanup(l.Stop)
	return l
}

func TestListen_ReturnURLCarriesState(t *testing.T) {
	l := newTestListener(t)

	returnURL, _, err := l.Listen(context.Background(), "nonce-123")
	require.NoError(t, err)

	parsed, err := url.Parse(returnURL)
	require.NoError(t, err)
	assert.Equal(t, returnPath, parsed.Path)
	assert.Equal(t, "nonce-123", parsed.Query().Get("state"))
}

func TestListen_DeliversSuccessResult(t *testing.T) {
	l := newTestListener(t)

	returnURL, done, err := l.Listen(context.Background(), "nonce-123")
	require.NoError(t, err)

	resp, err := http.Get(returnURL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	select {
	case result := <-done:
		assert.True(t, result.OK)
		assert.Empty(t, result.Reason)
	case <-time.After(2 * time.Second):
		t.Fatal("no result delivered")
	}
}

func TestListen_DeliversFailureResult(t *testing.T) {
	l := newTestListener(t)

	returnURL, done, err := l.Listen(context.Background(), "nonce-123")
	require.NoError(t, err)

	resp, err := http.Get(returnURL + "&status=failed")
	require.NoError(t, err)
	defer resp.Body.Close()

	select {
	case result := <-done:
		assert.False(t, result.OK)
		assert.Equal(t, "failed", result.Reason)
	case <-time.After(2 * time.Second):
		t.Fatal("no result delivered")
	}
}

func TestListen_RejectsWrongState(t *testing.T) {
	l := newTestListener(t)

	returnURL, done, err := l.Listen(context.Background(), "nonce-123")
	require.NoError(t, err)

	wrong := strings.Replace(returnURL, "nonce-123", "evil-nonce", 1)
	resp, err := http.Get(wrong)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	select {
	case <-done:
		t.Fatal("result must not be delivered for a wrong state nonce")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestListen_EmptyState(t *testing.T) {
	l := newTestListener(t)

	_, _, err := l.Listen(context.Background(), "")
	require.Error(t, err)
}
