package tests

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

// FakeBFMR — in-process заглушка BFMR API: /api/v2/deals и
// /api/v2/deals/reserve с проверкой заголовков API-KEY/API-SECRET.
type FakeBFMR struct {
	server *httptest.Server

	apiKey    string
	apiSecret string

	mu            sync.Mutex
	dealsBody     []byte
	dealsStatus   int
	reserveStatus int
	reserveBody   []byte
	dealsRequests []url.Values
	reservations  []url.Values
}

func NewFakeBFMR(t testing.TB, apiKey, apiSecret string) *FakeBFMR {
	t.Helper()

	f := &FakeBFMR{
		apiKey:        apiKey,
		apiSecret:     apiSecret,
		dealsBody:     []byte(`{"deals":[]}`),
		dealsStatus:   http.StatusOK,
		reserveStatus: http.StatusOK,
		reserveBody:   []byte(`{"message":"ok"}`),
	}

	r := chi.NewRouter()
	r.Get("/api/v2/deals", f.handleDeals)
	r.Post("/api/v2/deals/reserve", f.handleReserve)

	f.server = httptest.NewServer(r)
	t.Cleanup(f.server.Close)

	return f
}

func (f *FakeBFMR) URL() string {
	return f.server.URL
}

// SetDeals отдаёт сделки массивом в поле deals.
func (f *FakeBFMR) SetDeals(deals ...map[string]any) {
	body, _ := json.Marshal(map[string]any{"deals": deals}) //nolint:errcheck,errchkjson

	f.SetDealsBody(http.StatusOK, string(body))
}

// SetDealsBody задаёт ответ /deals целиком.
func (f *FakeBFMR) SetDealsBody(status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.dealsStatus = status
	f.dealsBody = []byte(body)
}

// SetReserveResponse задаёт ответ /deals/reserve.
func (f *FakeBFMR) SetReserveResponse(status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.reserveStatus = status
	f.reserveBody = []byte(body)
}

func (f *FakeBFMR) DealsRequests() []url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]url.Values(nil), f.dealsRequests...)
}

func (f *FakeBFMR) Reservations() []url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]url.Values(nil), f.reservations...)
}

func (f *FakeBFMR) authorized(r *http.Request) bool {
	return r.Header.Get("API-KEY") == f.apiKey && r.Header.Get("API-SECRET") == f.apiSecret
}

func (f *FakeBFMR) handleDeals(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.dealsRequests = append(f.dealsRequests, r.URL.Query())
	status, body := f.dealsStatus, f.dealsBody
	f.mu.Unlock()

	if !f.authorized(r) {
		writeJSON(w, http.StatusUnauthorized, []byte(`{"message":"Invalid API key or secret"}`))
		return
	}

	writeJSON(w, status, body)
}

func (f *FakeBFMR) handleReserve(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, []byte(`{"message":"bad form"}`))
		return
	}

	f.mu.Lock()
	f.reservations = append(f.reservations, r.PostForm)
	status, body := f.reserveStatus, f.reserveBody
	f.mu.Unlock()

	if !f.authorized(r) {
		writeJSON(w, http.StatusUnauthorized, []byte(`{"message":"Invalid API key or secret"}`))
		return
	}

	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body) //nolint:errcheck
}
