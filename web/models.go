package web

import (
	"go.uber.org/zap"

	"matchroom/api/api"
)

// Config holds the configuration for the web server
type Config struct {
	Addr      string
	JWTSecret string
	API       *api.API
	Log       *zap.Logger
}

// Server is the HTTP server that exposes the callable operations
type Server struct {
	api       *api.API
	log       *zap.Logger
	jwtSecret string
	limiters  *callerLimiters
}

// NewServer builds a Server from its configuration
func NewServer(cfg Config) *Server {
	return &Server{
		api:       cfg.API,
		log:       cfg.Log,
		jwtSecret: cfg.JWTSecret,
		limiters:  newCallerLimiters(),
	}
}
