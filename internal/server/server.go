package server

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"elo-tracker/internal/riot"
	"elo-tracker/internal/service"

	"github.com/rs/zerolog"
)

const livenessMessage = "Elo Tracker API está ON!"

// EloAPI is the slice of the elo service the HTTP layer consumes.
type EloAPI interface {
	Summary(ctx context.Context, identifier string) (string, error)
	Add(ctx context.Context, identifier, account string) (string, error)
	Remove(ctx context.Context, identifier, account string) (string, error)
}

type EloServer struct {
	elo    EloAPI
	logger zerolog.Logger
}

func NewEloServer(elo EloAPI, logger zerolog.Logger) *EloServer {
	return &EloServer{elo: elo, logger: logger}
}

func (s *EloServer) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /{id}", s.handleSummary)
	mux.HandleFunc("GET /{id}/{command}", s.handleCommand)
	return mux
}

func (s *EloServer) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.writeText(w, http.StatusOK, livenessMessage)
}

func (s *EloServer) handleSummary(w http.ResponseWriter, r *http.Request) {
	identifier := r.PathValue("id")

	out, err := s.elo.Summary(r.Context(), identifier)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeText(w, http.StatusOK, out)
}

// handleCommand dispatches "{command}" strings of the form
// "<sub-command> <account string>". Chat integrations send them with '+'
// for spaces, so those are folded back before splitting. Anything that is
// not a recognized mutation falls back to the rank summary.
func (s *EloServer) handleCommand(w http.ResponseWriter, r *http.Request) {
	identifier := r.PathValue("id")
	command := strings.ReplaceAll(r.PathValue("command"), "+", " ")

	sub, args, _ := strings.Cut(strings.TrimSpace(command), " ")
	sub = strings.ToLower(sub)
	args = strings.TrimSpace(args)

	var out string
	var err error
	switch {
	case args == "":
		out, err = s.elo.Summary(r.Context(), identifier)
	case sub == "set" || sub == "add":
		out, err = s.elo.Add(r.Context(), identifier, args)
	case sub == "remove" || sub == "del" || sub == "delete":
		out, err = s.elo.Remove(r.Context(), identifier, args)
	default:
		out, err = s.elo.Summary(r.Context(), identifier)
	}

	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeText(w, http.StatusOK, out)
}

func (s *EloServer) writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(body))
}

// writeError maps the error taxonomy onto HTTP statuses. Failures are
// never masked as a successful summary.
func (s *EloServer) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError

	var malformed *service.MalformedAccountError
	var lookup *riot.LookupError
	switch {
	case errors.As(err, &malformed):
		status = http.StatusBadRequest
	case errors.As(err, &lookup):
		status = http.StatusBadGateway
	}

	zerolog.Ctx(r.Context()).Error().
		Err(err).
		Int("status", status).
		Str("path", r.URL.Path).
		Msg("request failed")

	s.writeText(w, status, err.Error())
}
