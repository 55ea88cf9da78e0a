package conversation_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"bfmr_bot/internal/domain/entity"
	"bfmr_bot/internal/domain/value"
)

func TestSetupValidCredentials(t *testing.T) {
	rq := require.New(t)
	h := newHarness(t)

	rq.NoError(h.controller.Setup(h.ctx, input(1)))
	rq.True(h.responder.last().msg.ForceReply)
	rq.Contains(h.responder.last().msg.Text, "Public Key")

	draft, ok, err := h.store.SetupDraft(h.ctx, userID)
	rq.NoError(err)
	rq.True(ok)
	rq.Equal(value.SetupAwaitingKey, draft.State)

	rq.NoError(h.controller.Text(h.ctx, input(2), " "+apiKey+" "))
	rq.Contains(h.responder.last().msg.Text, "API Secret")

	draft, _, err = h.store.SetupDraft(h.ctx, userID)
	rq.NoError(err)
	rq.Equal(value.SetupAwaitingSecret, draft.State)
	rq.Equal(apiKey, draft.APIKey)

	rq.NoError(h.controller.Text(h.ctx, input(3), apiSecret))
	rq.Contains(h.responder.last().msg.Text, "verified and saved")

	creds, ok, err := h.store.Credentials(h.ctx, userID)
	rq.NoError(err)
	rq.True(ok)
	rq.Equal(apiKey, creds.APIKey)
	rq.Equal(apiSecret, creds.APISecret)
	rq.True(setupTime.Equal(creds.SetupDate))

	_, ok, err = h.store.SetupDraft(h.ctx, userID)
	rq.NoError(err)
	rq.False(ok)

	// оба сообщения с ключами удалены из чата
	deleted := h.responder.ofKind("delete")
	rq.Len(deleted, 2)
	rq.Equal(2, deleted[0].ref.MessageID)
	rq.Equal(3, deleted[1].ref.MessageID)

	requests := h.fake.DealsRequests()
	rq.Len(requests, 1)
	rq.Equal("1", requests[0].Get("page_size"))
}

func TestSetupRejectedCredentials(t *testing.T) {
	testCases := []struct {
		name        string
		status      int
		body        string
		secret      string
		wantMessage string
	}{
		{
			name:        "unauthorized",
			status:      http.StatusOK,
			body:        `{"deals":[]}`,
			secret:      "wrong-secret",
			wantMessage: "Invalid API credentials",
		},
		{
			name:        "api unavailable",
			status:      http.StatusInternalServerError,
			body:        `{}`,
			secret:      apiSecret,
			wantMessage: "Failed to verify API credentials.\nError: BFMR API returned 500",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)
			h := newHarness(t)
			h.fake.SetDealsBody(tc.status, tc.body)

			rq.NoError(h.controller.Setup(h.ctx, input(1)))
			rq.NoError(h.controller.Text(h.ctx, input(2), apiKey))
			rq.NoError(h.controller.Text(h.ctx, input(3), tc.secret))

			rq.Contains(h.responder.last().msg.Text, tc.wantMessage)

			_, ok, err := h.store.Credentials(h.ctx, userID)
			rq.NoError(err)
			rq.False(ok)

			_, ok, err = h.store.SetupDraft(h.ctx, userID)
			rq.NoError(err)
			rq.False(ok)
		})
	}
}

func TestSetupCancel(t *testing.T) {
	testCases := []struct {
		name   string
		inputs []string
	}{
		{name: "awaiting key", inputs: nil},
		{name: "awaiting secret", inputs: []string{apiKey}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)
			h := newHarness(t)

			rq.NoError(h.controller.Setup(h.ctx, input(1)))

			for i, text := range tc.inputs {
				rq.NoError(h.controller.Text(h.ctx, input(2+i), text))
			}

			rq.NoError(h.controller.Cancel(h.ctx, input(10)))
			rq.Contains(h.responder.last().msg.Text, "Setup cancelled")

			_, ok, err := h.store.SetupDraft(h.ctx, userID)
			rq.NoError(err)
			rq.False(ok)

			_, ok, err = h.store.Credentials(h.ctx, userID)
			rq.NoError(err)
			rq.False(ok)

			// после отмены текст больше не считается ключом
			h.responder.reset()
			rq.NoError(h.controller.Text(h.ctx, input(11), apiSecret))
			rq.Empty(h.responder.all())
			rq.Empty(h.fake.DealsRequests())
		})
	}
}

func TestSetupRestart(t *testing.T) {
	rq := require.New(t)
	h := newHarness(t)

	rq.NoError(h.controller.Setup(h.ctx, input(1)))
	rq.NoError(h.controller.Text(h.ctx, input(2), "old-key"))
	rq.NoError(h.controller.Setup(h.ctx, input(3)))

	draft, ok, err := h.store.SetupDraft(h.ctx, userID)
	rq.NoError(err)
	rq.True(ok)
	rq.Equal(value.SetupAwaitingKey, draft.State)
	rq.Empty(draft.APIKey)
}

func TestCancelWithoutDialog(t *testing.T) {
	rq := require.New(t)
	h := newHarness(t)

	rq.NoError(h.controller.Cancel(h.ctx, input(1)))
	rq.Equal("Nothing to cancel.", h.responder.last().msg.Text)
}

func TestTextWhileValidating(t *testing.T) {
	rq := require.New(t)
	h := newHarness(t)

	rq.NoError(h.store.SetSetupDraft(h.ctx, userID, entity.SetupDraft{State: value.SetupValidating, APIKey: apiKey}))

	rq.NoError(h.controller.Text(h.ctx, input(5), "hello"))
	rq.Empty(h.responder.ofKind("delete"))
	rq.Empty(h.responder.all())

	draft, ok, err := h.store.SetupDraft(h.ctx, userID)
	rq.NoError(err)
	rq.True(ok)
	rq.Equal(value.SetupValidating, draft.State)
}
