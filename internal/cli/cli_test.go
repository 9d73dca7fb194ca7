package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/repolist/internal/api"
	"github.com/five82/repolist/internal/devserver"
)

type env struct {
	server     *httptest.Server
	configPath string
	logPath    string
}

func newEnv(t *testing.T, seed ...api.Repository) *env {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)

	n := 100
	srv := devserver.New(devserver.Options{
		Seed: seed,
		NewID: func() api.ID {
			n++
			return api.ID(fmt.Sprint(n))
		},
	})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	e := &env{
		server:     ts,
		configPath: filepath.Join(home, "config.toml"),
		logPath:    filepath.Join(home, "repolist.log"),
	}
	e.writeConfig(t, ts.URL)
	return e
}

func (e *env) writeConfig(t *testing.T, apiURL string) {
	t.Helper()
	body := fmt.Sprintf("api_url = %q\nnew_repo_url = \"https://github.com/example\"\nlog_file = %q\n", apiURL, e.logPath)
	require.NoError(t, os.WriteFile(e.configPath, []byte(body), 0o644))
}

func (e *env) run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	return e.runContext(t, context.Background(), args...)
}

func (e *env) runContext(t *testing.T, ctx context.Context, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Execute(ctx, append([]string{"--config", e.configPath}, args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func seedRepos() []api.Repository {
	return []api.Repository{
		{ID: "1", Title: "Alpha", URL: "https://example.com/a", Techs: []string{"Go"}, Likes: 1},
		{ID: "2", Title: "Beta", URL: "https://example.com/b", Techs: []string{}, Likes: 0},
	}
}

func TestList_PrintsTable(t *testing.T) {
	e := newEnv(t, seedRepos()...)

	code, out, errOut := e.run(t, "list")
	require.Equal(t, 0, code, errOut)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "TITLE")
	assert.Contains(t, lines[1], "Alpha")
	assert.Contains(t, lines[1], "1 like")
	assert.NotContains(t, lines[1], "1 likes")
	assert.Contains(t, lines[2], "Beta")
	assert.Contains(t, lines[2], "0 likes")
}

func TestList_JSON(t *testing.T) {
	e := newEnv(t, seedRepos()...)

	code, out, errOut := e.run(t, "list", "--json")
	require.Equal(t, 0, code, errOut)

	var got []api.Repository
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, api.ID("1"), got[0].ID)
	assert.Equal(t, []string{}, got[1].Techs)
}

func TestList_EmptyServerPrintsEmptyArray(t *testing.T) {
	e := newEnv(t)

	code, out, _ := e.run(t, "list", "--json")
	require.Equal(t, 0, code)
	assert.Equal(t, "[]", strings.TrimSpace(out))
}

func TestAdd_WithFlags(t *testing.T) {
	e := newEnv(t)

	code, out, errOut := e.run(t, "add", "--title", "Desafio", "--url", "https://x.dev", "--tech", "Go,React", "--tech", " ", "--json")
	require.Equal(t, 0, code, errOut)

	var got []api.Repository
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, api.ID("101"), got[0].ID)
	assert.Equal(t, "Desafio", got[0].Title)
	assert.Equal(t, []string{"Go", "React"}, got[0].Techs)
	assert.Equal(t, 0, got[0].Likes)
}

func TestAdd_Defaults(t *testing.T) {
	e := newEnv(t)

	code, out, errOut := e.run(t, "add", "--json")
	require.Equal(t, 0, code, errOut)

	var got []api.Repository
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Regexp(t, regexp.MustCompile(`^New repo \d+$`), got[0].Title)
	assert.Equal(t, "https://github.com/example", got[0].URL)
	assert.Equal(t, []string{}, got[0].Techs)
}

func TestLike_PrintsUpdatedRecord(t *testing.T) {
	e := newEnv(t, seedRepos()...)

	code, out, errOut := e.run(t, "like", "1")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "Alpha")
	assert.Contains(t, out, "2 likes")

	_, out, _ = e.run(t, "list")
	assert.Contains(t, out, "2 likes")
}

func TestLike_UnknownIDFails(t *testing.T) {
	e := newEnv(t, seedRepos()...)

	code, _, errOut := e.run(t, "like", "missing")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "returned status 404")
}

func TestLike_RequiresID(t *testing.T) {
	e := newEnv(t)

	code, _, errOut := e.run(t, "like")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "accepts 1 arg")
}

func TestAPIURLFlagOverridesConfig(t *testing.T) {
	e := newEnv(t, seedRepos()...)
	e.writeConfig(t, "http://127.0.0.1:1")

	code, out, errOut := e.run(t, "--api-url", e.server.URL, "list")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "Alpha")
}

func TestUnreachableAPIFails(t *testing.T) {
	e := newEnv(t)
	e.writeConfig(t, "http://127.0.0.1:1")

	code, _, errOut := e.run(t, "list")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "load repositories")
}

func TestBadConfigFails(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, os.WriteFile(e.configPath, []byte("not valid toml {{{"), 0o644))

	code, _, errOut := e.run(t, "list")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "load config")
}

func TestLogs_TailAndLevel(t *testing.T) {
	e := newEnv(t)
	records := []string{
		`time=2024-01-01T10:00:00Z level=INFO msg=loaded op=load_all`,
		`time=2024-01-01T10:00:01Z level=WARN msg="like response matched no repository" id=9`,
		`time=2024-01-01T10:00:02Z level=INFO msg=created op=add`,
	}
	require.NoError(t, os.WriteFile(e.logPath, []byte(strings.Join(records, "\n")+"\n"), 0o644))

	code, out, errOut := e.run(t, "logs", "-n", "1")
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, records[2], strings.TrimSpace(out))

	code, out, errOut = e.run(t, "logs", "--level", "warn")
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, records[1], strings.TrimSpace(out))

	code, _, errOut = e.run(t, "logs", "--level", "loud")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "invalid --level")
}

func TestLogs_MissingFilePrintsNothing(t *testing.T) {
	e := newEnv(t)

	code, out, _ := e.run(t, "logs")
	assert.Equal(t, 0, code)
	assert.Empty(t, out)
}

func TestServe_StopsWhenContextCancelled(t *testing.T) {
	e := newEnv(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	code, _, errOut := e.runContext(t, ctx, "serve", "--listen", "127.0.0.1:0", "--demo")
	assert.Equal(t, 0, code, errOut)
}

func TestVerboseLogsRequests(t *testing.T) {
	e := newEnv(t, seedRepos()...)

	code, _, errOut := e.run(t, "--verbose", "list")
	require.Equal(t, 0, code)
	assert.Contains(t, errOut, "op=load_all")
	assert.Contains(t, errOut, "request_id=")
}
