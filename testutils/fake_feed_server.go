package testutils

import (
	"embed"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
)

const (
	FeedAPIKey       = "fake-feed-key"
	FeedClientID     = "fakeClientID"
	FeedClientSecret = "fakeClientSecret"
	feedAccessToken  = "fake-access-token"
)

//go:embed feeddata
var feeddata embed.FS

// FakeFeedServer serves canned player and score data. Requests must carry
// either the API key or a bearer token from its token endpoint.
type FakeFeedServer struct {
	s       *httptest.Server
	failing atomic.Bool
}

func NewFakeFeedServer() *FakeFeedServer {
	f := &FakeFeedServer{}

	r := chi.NewRouter()
	r.Post("/oauth/token", tokenHandler)
	r.Route("/v1", func(r chi.Router) {
		r.Use(f.authorize)
		r.Get("/players", f.fileHandler("players.json"))
		r.Get("/scores", f.fileHandler("scores.json"))
	})

	f.s = httptest.NewServer(r)
	return f
}

func (f *FakeFeedServer) Close() {
	f.s.Close()
}

func (f *FakeFeedServer) URL() string {
	return f.s.URL
}

func (f *FakeFeedServer) TokenURL() string {
	return f.s.URL + "/oauth/token"
}

// SetFailing makes the data endpoints answer 503 until it is called with false.
func (f *FakeFeedServer) SetFailing(failing bool) {
	f.failing.Store(failing)
}

func (f *FakeFeedServer) authorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Auth-Token") != FeedAPIKey && r.Header.Get("Authorization") != "Bearer "+feedAccessToken {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (f *FakeFeedServer) fileHandler(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if f.failing.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		serveFile(w, name)
	}
}

func tokenHandler(w http.ResponseWriter, r *http.Request) {
	id, secret, ok := r.BasicAuth()
	if !ok {
		if err := r.ParseForm(); err == nil {
			id, secret = r.PostForm.Get("client_id"), r.PostForm.Get("client_secret")
		}
	}
	if id != FeedClientID || secret != FeedClientSecret {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"access_token": "%s", "token_type": "bearer", "expires_in": 3600}`, feedAccessToken)
}

func serveFile(w http.ResponseWriter, name string) {
	b, err := feeddata.ReadFile(fmt.Sprintf("feeddata/%s", name))
	if err != nil {
		log.Printf("error reading feeddata/%s: %v", name, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
