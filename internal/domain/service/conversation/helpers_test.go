package conversation_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"bfmr_bot/internal/domain/entity"
	"bfmr_bot/internal/domain/service/conversation"
	"bfmr_bot/internal/domain/service/deals"
	"bfmr_bot/internal/infrastructure/bfmr"
	"bfmr_bot/internal/infrastructure/session"
	"bfmr_bot/pkg/tests"
)

const (
	apiKey    = "public-key"
	apiSecret = "secret-key"

	userID int64 = 42
	chatID int64 = 4242
)

//nolint:gochecknoglobals
var setupTime = time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

type op struct {
	kind string
	ref  conversation.MessageRef
	msg  conversation.Message
}

// recorder запоминает всё, что контроллер отправил пользователю.
type recorder struct {
	mu     sync.Mutex
	nextID int
	ops    []op
}

func (r *recorder) Send(_ context.Context, chatID int64, msg conversation.Message) (conversation.MessageRef, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	ref := conversation.MessageRef{ChatID: chatID, MessageID: 1000 + r.nextID}
	r.ops = append(r.ops, op{kind: "send", ref: ref, msg: msg})

	return ref, nil
}

func (r *recorder) Edit(_ context.Context, ref conversation.MessageRef, msg conversation.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ops = append(r.ops, op{kind: "edit", ref: ref, msg: msg})

	return nil
}

func (r *recorder) Delete(_ context.Context, ref conversation.MessageRef) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ops = append(r.ops, op{kind: "delete", ref: ref})

	return nil
}

func (r *recorder) all() []op {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]op(nil), r.ops...)
}

func (r *recorder) last() op {
	ops := r.all()
	if len(ops) == 0 {
		return op{}
	}

	return ops[len(ops)-1]
}

func (r *recorder) ofKind(kind string) []op {
	var result []op

	for _, o := range r.all() {
		if o.kind == kind {
			result = append(result, o)
		}
	}

	return result
}

func (r *recorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ops = nil
}

type harness struct {
	ctx        context.Context
	fake       *tests.FakeBFMR
	store      *session.Store
	responder  *recorder
	controller *conversation.Controller
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	fake := tests.NewFakeBFMR(t, apiKey, apiSecret)
	client := bfmr.NewClient(fake.URL(), 5*time.Second, nil)
	store := session.NewStore(session.NewMemoryKV())
	responder := &recorder{}

	controller := conversation.NewController(deals.NewService(client), client, store, responder).
		WithPromoURL("https://promo.example.com").
		WithClock(func() time.Time { return setupTime })

	return &harness{
		ctx:        context.Background(),
		fake:       fake,
		store:      store,
		responder:  responder,
		controller: controller,
	}
}

// configure сохраняет рабочие ключи, минуя диалог /setup.
func (h *harness) configure(t *testing.T) {
	t.Helper()

	require.NoError(t, h.store.SaveCredentials(h.ctx, userID, entity.Credentials{
		APIKey:    apiKey,
		APISecret: apiSecret,
		SetupDate: setupTime,
	}))
}

func input(messageID int) conversation.Input {
	return conversation.Input{UserID: userID, ChatID: chatID, MessageID: messageID}
}
