package transport

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"seabattle/internal/middleware"
	"seabattle/internal/server"
)

// maxRequestBytes caps an RPC body; the largest legal request is a field
// submission of well under a kilobyte.
const maxRequestBytes = 4096

// NewHTTPHandler builds the HTTP carrier for the protocol: one POST
// endpoint whose raw body is the request payload and whose response body is
// the reply payload.
func NewHTTPHandler(broker *server.Broker, logger *slog.Logger) http.Handler {
	httpLogger := logger.With(slog.String("component", "http"))

	r := mux.NewRouter()
	r.Use(middleware.Logging(httpLogger))
	r.Use(middleware.Recovery(httpLogger))

	r.HandleFunc("/healthz", handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/rpc", handleRPC(broker)).Methods(http.MethodPost)

	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleRPC(broker *server.Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBytes))
		if err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		reply, err := broker.Submit(r.Context(), payload)
		if err != nil {
			http.Error(w, "server shutting down", http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write(reply)
	}
}
