package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"elo-tracker/internal/riot"
	"elo-tracker/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubElo records calls and replays canned answers.
type stubElo struct {
	summary    string
	confirm    string
	err        error
	calls      []string
	identifier string
	account    string
}

func (s *stubElo) Summary(_ context.Context, identifier string) (string, error) {
	s.calls = append(s.calls, "summary")
	s.identifier = identifier
	return s.summary, s.err
}

func (s *stubElo) Add(_ context.Context, identifier, account string) (string, error) {
	s.calls = append(s.calls, "add")
	s.identifier = identifier
	s.account = account
	return s.confirm, s.err
}

func (s *stubElo) Remove(_ context.Context, identifier, account string) (string, error) {
	s.calls = append(s.calls, "remove")
	s.identifier = identifier
	s.account = account
	return s.confirm, s.err
}

func doGet(t *testing.T, stub *stubElo, path string) (int, string) {
	t.Helper()
	srv := NewEloServer(stub, zerolog.Nop())
	ts := httptest.NewServer(srv.Routes())
	defer ts.Close()

	resp, err := http.Get(ts.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestRootLiveness(t *testing.T) {
	status, body := doGet(t, &stubElo{}, "/")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Elo Tracker API está ON!", body)
}

func TestSummaryRoute(t *testing.T) {
	stub := &stubElo{summary: "the summary"}
	status, body := doGet(t, stub, "/streamer")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "the summary", body)
	assert.Equal(t, []string{"summary"}, stub.calls)
	assert.Equal(t, "streamer", stub.identifier)
}

func TestCommandAdd(t *testing.T) {
	stub := &stubElo{confirm: "A conta Player#NA1(na1) foi adicionada!"}
	status, body := doGet(t, stub, "/streamer/add+Player%23NA1(na1)")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "A conta Player#NA1(na1) foi adicionada!", body)
	assert.Equal(t, []string{"add"}, stub.calls)
	assert.Equal(t, "Player#NA1(na1)", stub.account)
}

func TestCommandRemoveAliases(t *testing.T) {
	for _, alias := range []string{"remove", "del", "delete"} {
		stub := &stubElo{confirm: "ok"}
		status, _ := doGet(t, stub, "/streamer/"+alias+"+Player%23NA1")

		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, []string{"remove"}, stub.calls, "alias %q", alias)
	}
}

func TestCommandWithoutArgsFallsBackToSummary(t *testing.T) {
	stub := &stubElo{summary: "the summary"}
	status, body := doGet(t, stub, "/streamer/add")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "the summary", body)
	assert.Equal(t, []string{"summary"}, stub.calls)
}

func TestUnknownCommandFallsBackToSummary(t *testing.T) {
	stub := &stubElo{summary: "the summary"}
	status, body := doGet(t, stub, "/streamer/whatever+Player%23NA1")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "the summary", body)
	assert.Equal(t, []string{"summary"}, stub.calls)
}

func TestMalformedInputMapsTo400(t *testing.T) {
	stub := &stubElo{err: &service.MalformedAccountError{Input: "junk"}}
	status, body := doGet(t, stub, "/streamer/add+junk")

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Use o formato GameName#Tag para adicionar uma conta.", body)
}

func TestLookupFailureMapsTo502(t *testing.T) {
	stub := &stubElo{err: &riot.LookupError{StatusCode: http.StatusForbidden, Status: "403 Forbidden"}}
	status, body := doGet(t, stub, "/streamer/add+Player%23NA1(na1)")

	assert.Equal(t, http.StatusBadGateway, status)
	assert.Contains(t, body, "403 Forbidden")
}
