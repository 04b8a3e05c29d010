package rest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/homemade/notebook-inject/inject"
	"github.com/stretchr/testify/require"
)

type mockNotebook struct {
	notes map[string]*mockNote
	err   error
}

func (m *mockNotebook) Note(_ context.Context, noteID string) (Note, bool, error) {
	if m.err != nil {
		return nil, false, m.err
	}
	n, found := m.notes[noteID]
	if !found {
		return nil, false, nil
	}
	return n, true, nil
}

type mockNote struct {
	paragraphs map[string]*mockParagraph
}

func (m *mockNote) Paragraph(paragraphID string) (Paragraph, bool) {
	p, found := m.paragraphs[paragraphID]
	if !found {
		return nil, false
	}
	return p, true
}

type mockParagraph struct {
	text         string
	interpreters []inject.Interpreter
	process      *mockProcess
	recovered    int
	recoverErr   error
}

func (m *mockParagraph) Text() string { return m.text }

func (m *mockParagraph) Interpreters(context.Context) ([]inject.Interpreter, error) {
	return m.interpreters, nil
}

func (m *mockParagraph) RemoteProcess(context.Context) (RemoteProcess, error) {
	if m.process == nil {
		return nil, nil
	}
	return m.process, nil
}

func (m *mockParagraph) Recover(context.Context) error {
	m.recovered++
	return m.recoverErr
}

type mockProcess struct {
	reconnects int
	ok         bool
}

func (m *mockProcess) Reconnect(context.Context) bool {
	m.reconnects++
	return m.ok
}

type mockAuthorizer struct {
	allowed map[string]bool
	seen    []string
}

func (m *mockAuthorizer) HasReadPermission(_ context.Context, userAndRoles []string, noteID string) bool {
	m.seen = userAndRoles
	for _, u := range userAndRoles {
		if m.allowed[u] {
			return true
		}
	}
	return false
}

type headerAuthenticator struct{}

func (headerAuthenticator) Principal(r *http.Request) string { return r.Header.Get("X-User") }

func (headerAuthenticator) Roles(r *http.Request) []string {
	if roles := r.Header.Get("X-Roles"); roles != "" {
		return strings.Split(roles, ",")
	}
	return nil
}

var errBoom = errors.New("boom")

func newTestServer(t *testing.T, deps Deps) *Server {
	t.Helper()
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	srv := NewServer(deps)
	require.NotNil(t, srv)
	return srv
}

func serve(srv *Server, method, target string, body io.Reader, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}
