// Package reddittest runs an in-process fake of the Reddit endpoints the
// reddit package calls.
package reddittest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/aussiebroadwan/contentdeck/pkg/reddit"
)

const (
	ClientID     = "test-client"
	ClientSecret = "test-secret"
)

type Server struct {
	*httptest.Server

	mu       sync.Mutex
	accounts map[string]string // refresh token -> username
	codes    map[string]string // authorization code -> refresh token
	posts    map[string]*reddit.Post
	order    int
	calls    map[string]int
	failures map[string][]int // path -> queued status codes
}

func NewServer() *Server {
	s := &Server{
		accounts: make(map[string]string),
		codes:    make(map[string]string),
		posts:    make(map[string]*reddit.Post),
		calls:    make(map[string]int),
		failures: make(map[string][]int),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/access_token", s.handleToken)
	mux.HandleFunc("GET /api/v1/me", s.authed(s.handleMe))
	mux.HandleFunc("POST /api/submit", s.authed(s.handleSubmit))
	mux.HandleFunc("GET /by_id/{name}", s.authed(s.handleByID))
	mux.HandleFunc("POST /api/editusertext", s.authed(s.handleEdit))
	mux.HandleFunc("POST /api/del", s.authed(s.handleDelete))

	s.Server = httptest.NewServer(s.record(mux))
	return s
}

// Config points a reddit client at the fake.
func (s *Server) Config() reddit.Config {
	return reddit.Config{
		ClientID:     ClientID,
		ClientSecret: ClientSecret,
		RedirectURI:  "http://localhost/reddit/callback",
		UserAgent:    "contentdeck-test",
		APIURL:       s.URL,
		AuthURL:      s.URL + "/api/v1/authorize",
		TokenURL:     s.URL + "/api/v1/access_token",
	}
}

// AddAccount registers a user and returns their refresh token.
func (s *Server) AddAccount(username string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	rt := "rt-" + username
	s.accounts[rt] = username
	return rt
}

// AddCode makes code exchangeable for the account's refresh token.
func (s *Server) AddCode(code, username string) {
	rt := s.AddAccount(username)
	s.mu.Lock()
	s.codes[code] = rt
	s.mu.Unlock()
}

// RevokeAccount makes the refresh token unusable.
func (s *Server) RevokeAccount(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.accounts, "rt-"+username)
}

// PutPost inserts or replaces a post.
func (s *Server) PutPost(p reddit.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := p
	s.posts[p.Fullname] = &cp
}

// Post returns the stored post.
func (s *Server) Post(fullname string) (reddit.Post, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[fullname]
	if !ok {
		return reddit.Post{}, false
	}
	return *p, true
}

// Posts returns the number of posts currently listed.
func (s *Server) Posts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.posts)
}

// Tombstone marks a post as deleted by its author, the way Reddit keeps
// deleted posts in listings.
func (s *Server) Tombstone(fullname string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.posts[fullname]; ok {
		p.Author = reddit.DeletedAuthor
		p.Body = reddit.DeletedAuthor
	}
}

// Purge drops a post from the listing entirely.
func (s *Server) Purge(fullname string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.posts, fullname)
}

// SetRemote changes a post's body and counters as if edited on Reddit.
func (s *Server) SetRemote(fullname, body string, ups, comments int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.posts[fullname]; ok {
		p.Body = body
		p.Upvotes = ups
		p.Comments = comments
	}
}

// FailNext makes the next request to path answer with status.
func (s *Server) FailNext(path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[path] = append(s.failures[path], status)
}

// Calls reports how many requests hit path.
func (s *Server) Calls(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[path]
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.calls[r.URL.Path]++
		var fail int
		if q := s.failures[r.URL.Path]; len(q) > 0 {
			fail, s.failures[r.URL.Path] = q[0], q[1:]
		}
		s.mu.Unlock()

		if fail != 0 {
			writeJSON(w, fail, map[string]any{"message": http.StatusText(fail), "error": fail})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	id, secret, ok := r.BasicAuth()
	if !ok || id != ClientID || secret != ClientSecret {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid_client"})
		return
	}
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_request"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var rt string
	switch r.PostForm.Get("grant_type") {
	case "authorization_code":
		rt = s.codes[r.PostForm.Get("code")]
	case "refresh_token":
		rt = r.PostForm.Get("refresh_token")
	}
	if _, ok := s.accounts[rt]; !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_grant"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"access_token":  "at-" + rt,
		"token_type":    "bearer",
		"expires_in":    3600,
		"scope":         strings.Join(reddit.Scopes, " "),
		"refresh_token": rt,
	})
}

type authedHandler func(w http.ResponseWriter, r *http.Request, username string)

func (s *Server) authed(h authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		at, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		s.mu.Lock()
		name, known := s.accounts[strings.TrimPrefix(at, "at-")]
		s.mu.Unlock()
		if !ok || !known {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Unauthorized", "error": 401})
			return
		}
		h(w, r, name)
	}
}

func (s *Server) handleMe(w http.ResponseWriter, _ *http.Request, username string) {
	writeJSON(w, http.StatusOK, reddit.Account{Name: username, ID: "id-" + username})
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request, username string) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "bad form"})
		return
	}
	if r.PostForm.Get("sr") != reddit.ProfileSubreddit(username) {
		writeEnvelope(w, []any{"SUBREDDIT_NOTALLOWED", "you aren't allowed to post there.", "sr"}, "")
		return
	}

	s.mu.Lock()
	s.order++
	id := fmt.Sprintf("p%d", s.order)
	p := &reddit.Post{
		Fullname: "t3_" + id,
		ID:       id,
		Title:    r.PostForm.Get("title"),
		Body:     r.PostForm.Get("text"),
		Author:   username,
		URL:      s.URL + "/user/" + username + "/comments/" + id,
	}
	s.posts[p.Fullname] = p
	s.mu.Unlock()

	writeEnvelope(w, nil, p.Fullname)
}

func (s *Server) handleByID(w http.ResponseWriter, r *http.Request, _ string) {
	name := strings.TrimSuffix(r.PathValue("name"), ".json")

	s.mu.Lock()
	var children []map[string]any
	if p, ok := s.posts[name]; ok {
		children = append(children, map[string]any{"kind": "t3", "data": *p})
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"kind": "Listing",
		"data": map[string]any{"children": children},
	})
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request, username string) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "bad form"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[r.PostForm.Get("thing_id")]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "Not Found", "error": 404})
		return
	}
	if p.Author != username {
		writeJSON(w, http.StatusForbidden, map[string]any{"message": "Forbidden", "error": 403})
		return
	}
	p.Body = r.PostForm.Get("text")
	writeEnvelope(w, nil, p.Fullname)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request, username string) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "bad form"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.posts[r.PostForm.Get("id")]; ok && p.Author == username {
		p.Author = reddit.DeletedAuthor
		p.Body = reddit.DeletedAuthor
	}
	writeJSON(w, http.StatusOK, map[string]any{})
}

func writeEnvelope(w http.ResponseWriter, errs []any, name string) {
	list := [][]any{}
	if errs != nil {
		list = append(list, errs)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"json": map[string]any{
			"errors": list,
			"data":   map[string]any{"name": name},
		},
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
