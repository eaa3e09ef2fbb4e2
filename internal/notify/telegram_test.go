package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTelegramCollaborator(t *testing.T, handler http.HandlerFunc) (*TelegramCollaborator, func()) {
	t.Helper()
	server := httptest.NewServer(handler)
	c := NewTelegramCollaborator("test-token", 2*time.Second, testLogger())
	c.baseURL = server.URL
	return c, server.Close
}

func TestTelegramCollaborator_Send_Success(t *testing.T) {
	c, closeFn := newTestTelegramCollaborator(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bottest-token/sendMessage", r.URL.Path)
		w.Write([]byte(`{"ok":true,"result":{"message_id":42}}`))
	})
	defer closeFn()

	outcome, _, externalID, err := c.Send(context.Background(), "12345", "hello")
	require.NoError(t, err)
	assert.Equal(t, OutcomeOK, outcome)
	assert.Equal(t, "42", externalID)
}

func TestTelegramCollaborator_Send_Forbidden_UserBlocked(t *testing.T) {
	c, closeFn := newTestTelegramCollaborator(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"ok":false,"error_code":403,"description":"Forbidden: bot was blocked by the user"}`))
	})
	defer closeFn()

	outcome, _, _, err := c.Send(context.Background(), "12345", "hello")
	require.Error(t, err)
	assert.Equal(t, OutcomeUserBlocked, outcome)
}

func TestTelegramCollaborator_Send_BadRequest_BadRecipient(t *testing.T) {
	c, closeFn := newTestTelegramCollaborator(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`))
	})
	defer closeFn()

	outcome, _, _, err := c.Send(context.Background(), "bad-chat", "hello")
	require.Error(t, err)
	assert.Equal(t, OutcomeBadRecipient, outcome)
}

func TestTelegramCollaborator_Send_TooManyRequests_RateLimited(t *testing.T) {
	c, closeFn := newTestTelegramCollaborator(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"ok":false,"error_code":429,"description":"Too Many Requests","parameters":{"retry_after":7}}`))
	})
	defer closeFn()

	outcome, retryAfter, _, err := c.Send(context.Background(), "12345", "hello")
	require.Error(t, err)
	assert.Equal(t, OutcomeRateLimited, outcome)
	assert.Equal(t, 7*time.Second, retryAfter)
}

func TestTelegramCollaborator_Send_ServerError_Transient(t *testing.T) {
	c, closeFn := newTestTelegramCollaborator(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"ok":false,"error_code":500,"description":"Internal Server Error"}`))
	})
	defer closeFn()

	outcome, _, _, err := c.Send(context.Background(), "12345", "hello")
	require.Error(t, err)
	assert.Equal(t, OutcomeTransient, outcome)
}
