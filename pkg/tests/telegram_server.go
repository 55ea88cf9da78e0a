package tests

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

// BotToken проходит проверку формата telego.
const BotToken = "123456:AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

// BotCall — один вызов метода Bot API.
type BotCall struct {
	Method string
	Params map[string]any
}

type botError struct {
	code        int
	description string
}

// FakeTelegram — in-process заглушка Bot API. Запоминает вызовы и отвечает
// минимально достаточными объектами.
type FakeTelegram struct {
	server *httptest.Server

	mu            sync.Mutex
	calls         []BotCall
	errors        map[string]botError
	nextMessageID int
}

func NewFakeTelegram(t testing.TB) *FakeTelegram {
	t.Helper()

	f := &FakeTelegram{
		errors:        make(map[string]botError),
		nextMessageID: 100,
	}

	r := chi.NewRouter()
	r.Post("/bot"+BotToken+"/{method}", f.handle)

	f.server = httptest.NewServer(r)
	t.Cleanup(f.server.Close)

	return f
}

func (f *FakeTelegram) URL() string {
	return f.server.URL
}

// SetError заставляет метод отвечать ошибкой Bot API.
func (f *FakeTelegram) SetError(method string, code int, description string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.errors[method] = botError{code: code, description: description}
}

func (f *FakeTelegram) Calls() []BotCall {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]BotCall(nil), f.calls...)
}

// CallsOf возвращает вызовы одного метода в порядке поступления.
func (f *FakeTelegram) CallsOf(method string) []BotCall {
	f.mu.Lock()
	defer f.mu.Unlock()

	var res []BotCall

	for _, c := range f.calls {
		if c.Method == method {
			res = append(res, c)
		}
	}

	return res
}

func (f *FakeTelegram) handle(w http.ResponseWriter, r *http.Request) {
	method := chi.URLParam(r, "method")

	params := make(map[string]any)

	body, err := io.ReadAll(r.Body)
	if err == nil && len(body) > 0 {
		json.Unmarshal(body, &params) //nolint:errcheck
	}

	f.mu.Lock()
	f.calls = append(f.calls, BotCall{Method: method, Params: params})
	apiErr, failed := f.errors[method]
	f.nextMessageID++
	messageID := f.nextMessageID
	f.mu.Unlock()

	if failed {
		writeBotResponse(w, map[string]any{
			"ok":          false,
			"error_code":  apiErr.code,
			"description": apiErr.description,
		})

		return
	}

	var result any

	switch strings.ToLower(method) {
	case "sendmessage", "editmessagetext":
		result = map[string]any{
			"message_id": messageID,
			"date":       0,
			"chat":       map[string]any{"id": params["chat_id"], "type": "private"},
		}
	case "getme":
		result = map[string]any{"id": 1, "is_bot": true, "first_name": "BFMR", "username": "bfmr_bot"}
	case "getupdates":
		result = []any{}
	default:
		result = true
	}

	writeBotResponse(w, map[string]any{"ok": true, "result": result})
}

func writeBotResponse(w http.ResponseWriter, resp map[string]any) {
	body, _ := json.Marshal(resp) //nolint:errcheck,errchkjson

	writeJSON(w, http.StatusOK, body)
}
