package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != defaultBaseURL {
		t.Fatalf("url = %q, want %q", u.String(), defaultBaseURL)
	}

	u, err = parseBaseURL("example.com:1234/api/?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" || u.Host != "example.com:1234" {
		t.Fatalf("url = %q, want http://example.com:1234", u.String())
	}
	if u.Path != "/api" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}

	if _, err := parseBaseURL("http://"); err == nil {
		t.Fatalf("parseBaseURL(http://) returned nil error, want missing host")
	}
}

func TestClient_CallsEndpoints(t *testing.T) {
	t.Parallel()

	var gotCreate NewRepository
	var gotContentType, gotUserAgent, gotRequestID, gotLikePath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/repositories":
			gotRequestID = r.Header.Get(RequestIDHeader)
			_, _ = io.WriteString(w, `[{"id":1,"title":"A","url":"u","techs":["go"],"likes":0},{"id":"b2","title":"B","url":"v","techs":[],"likes":3}]`)
		case r.Method == http.MethodPost && r.URL.Path == "/repositories":
			gotContentType = r.Header.Get("Content-Type")
			_ = json.NewDecoder(r.Body).Decode(&gotCreate)
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(Repository{ID: "7", Title: gotCreate.Title, URL: gotCreate.URL, Techs: gotCreate.Techs})
		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/like"):
			gotLikePath = r.URL.EscapedPath()
			_ = json.NewEncoder(w).Encode(Repository{ID: "a/b", Title: "A", Likes: 1})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, WithUserAgent("repolist-test/1"), WithTimeout(2*time.Second))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, rid := WithRequestID(context.Background())
	repos, err := c.ListRepositories(ctx)
	if err != nil {
		t.Fatalf("ListRepositories returned error: %v", err)
	}
	if len(repos) != 2 || repos[0].ID != "1" || repos[1].ID != "b2" {
		t.Fatalf("ListRepositories = %#v, want ids 1 and b2", repos)
	}
	if repos[0].Techs[0] != "go" || repos[1].Likes != 3 {
		t.Fatalf("ListRepositories decoded fields wrong: %#v", repos)
	}
	if gotRequestID != rid {
		t.Fatalf("X-Request-ID = %q, want %q", gotRequestID, rid)
	}

	created, err := c.CreateRepository(context.Background(), NewRepository{Title: "New repo", URL: "u"})
	if err != nil {
		t.Fatalf("CreateRepository returned error: %v", err)
	}
	if created.ID != "7" || created.Title != "New repo" {
		t.Fatalf("CreateRepository = %#v, want id 7", created)
	}
	if gotCreate.Techs == nil || len(gotCreate.Techs) != 0 {
		t.Fatalf("create payload techs = %#v, want empty array", gotCreate.Techs)
	}
	if gotContentType != "application/json" {
		t.Fatalf("Content-Type = %q, want application/json", gotContentType)
	}

	liked, err := c.LikeRepository(context.Background(), "a/b")
	if err != nil {
		t.Fatalf("LikeRepository returned error: %v", err)
	}
	if liked.Likes != 1 {
		t.Fatalf("LikeRepository likes = %d, want 1", liked.Likes)
	}
	if gotLikePath != "/repositories/a%2Fb/like" {
		t.Fatalf("like path = %q, want escaped id", gotLikePath)
	}
	if gotUserAgent != "repolist-test/1" {
		t.Fatalf("User-Agent = %q, want repolist-test/1", gotUserAgent)
	}
}

func TestClient_HTTPErrorAndDecodeError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repositories":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{not-json"))
		default:
			http.Error(w, "nope", http.StatusInternalServerError)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.ListRepositories(context.Background())
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("ListRepositories error = %v, want decode response error", err)
	}

	_, err = c.LikeRepository(context.Background(), "9")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("LikeRepository error = %v, want *StatusError 500", err)
	}
	if !strings.Contains(err.Error(), "returned status 500") {
		t.Fatalf("LikeRepository error = %q, want status in message", err.Error())
	}
}

func TestClient_RequiresID(t *testing.T) {
	c, err := NewClient("127.0.0.1:1")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.LikeRepository(context.Background(), " "); err == nil {
		t.Fatalf("LikeRepository returned nil error, want error")
	}
}

func TestClient_NilReceiver(t *testing.T) {
	var c *Client
	if _, err := c.ListRepositories(context.Background()); !errors.Is(err, ErrNilClient) {
		t.Fatalf("ListRepositories on nil = %v, want ErrNilClient", err)
	}
}

func TestID_UnmarshalAcceptsNumbersAndStrings(t *testing.T) {
	cases := map[string]ID{
		`"abc"`: "abc",
		`42`:    "42",
		`null`:  "",
	}
	for in, want := range cases {
		var got ID
		if err := json.Unmarshal([]byte(in), &got); err != nil {
			t.Fatalf("Unmarshal(%s) returned error: %v", in, err)
		}
		if got != want {
			t.Fatalf("Unmarshal(%s) = %q, want %q", in, got, want)
		}
	}
	var bad ID
	if err := json.Unmarshal([]byte(`{}`), &bad); err == nil {
		t.Fatalf("Unmarshal({}) returned nil error")
	}
}

func TestRepository_CloneDoesNotShareTechs(t *testing.T) {
	orig := Repository{ID: "1", Techs: []string{"go", "js"}}
	dup := orig.Clone()
	dup.Techs[0] = "rust"
	if orig.Techs[0] != "go" {
		t.Fatalf("Clone shares techs slice")
	}
	if !orig.Equal(orig.Clone()) {
		t.Fatalf("Equal(Clone) = false")
	}
}
