package server

import (
	"io"
	"log/slog"
	"strings"
	"testing"
)

// newTestServer builds a Server with just enough wiring for handler tests
// that don't touch the database.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	return &Server{
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func strBody(s string) io.Reader {
	return strings.NewReader(s)
}
