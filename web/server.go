//go:build !test

/* server.go
 * Contains the HTTP server Start function that listens for incoming
 * connections. Excluded from test coverage as it blocks and requires real
 * network binding.
 */

package web

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Start initializes and starts the HTTP server with the given configuration
func Start(cfg Config) error {
	s := NewServer(cfg)

	mux := http.NewServeMux()
	mux.HandleFunc("/functions/migrateGuestToMember", s.authenticate(s.throttle(s.MigrateGuestHandler)))
	mux.HandleFunc("/functions/joinGroup", s.authenticate(s.throttle(s.JoinGroupHandler)))

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	cfg.Log.Info("HTTP server listening", zap.String("addr", cfg.Addr))
	return srv.ListenAndServe()
}
