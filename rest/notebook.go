package rest

import (
	"context"
	"errors"
	"net/http"

	"github.com/homemade/notebook-inject/inject"
)

var (
	ErrNoteNotFound      = errors.New("note not found")
	ErrParagraphNotFound = errors.New("paragraph not found")
	ErrForbidden         = errors.New("insufficient privileges you cannot get this paragraph")
)

// Notebook looks notes up by id. A missing note is reported with found == false.
type Notebook interface {
	Note(ctx context.Context, noteID string) (note Note, found bool, err error)
}

type Note interface {
	Paragraph(paragraphID string) (Paragraph, bool)
}

// Paragraph is the host's paragraph as seen by the analysis and reconnect endpoints.
type Paragraph interface {
	Text() string
	// Interpreters returns every interpreter of the group the paragraph is bound to.
	Interpreters(ctx context.Context) ([]inject.Interpreter, error)
	// RemoteProcess returns the process running the bound interpreter, or nil when the
	// interpreter is not run in a managed remote process.
	RemoteProcess(ctx context.Context) (RemoteProcess, error)
	Recover(ctx context.Context) error
}

type RemoteProcess interface {
	Reconnect(ctx context.Context) bool
}

type Authorizer interface {
	HasReadPermission(ctx context.Context, userAndRoles []string, noteID string) bool
}

// Authenticator resolves the caller of a request.
type Authenticator interface {
	Principal(r *http.Request) string
	Roles(r *http.Request) []string
}
