package web

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	EnvListenAddr = "SPLASH_LISTEN"
	EnvDevMode    = "SPLASH_DEV"
	EnvOrigin     = "SPLASH_ORIGIN"
)

// ServerConfig contains settings for running the HTTP server.
//
// The intended defaults differ per binary:
// - device:    :80
// - simulator: :8080
type ServerConfig struct {
	ListenAddr string
	DevMode    bool
	// Origin is the site origin used for link tagging, e.g.
	// "https://example.com". Empty means derive it per request.
	Origin string
}

func DefaultServerConfigFromEnv(defaultListenAddr string) (ServerConfig, error) {
	listenAddr := os.Getenv(EnvListenAddr)
	if listenAddr == "" {
		listenAddr = defaultListenAddr
	}

	devMode := false
	if raw := os.Getenv(EnvDevMode); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return ServerConfig{}, fmt.Errorf("%s must be a boolean (got %q): %w", EnvDevMode, raw, err)
		}
		devMode = parsed
	}

	origin := strings.TrimSpace(os.Getenv(EnvOrigin))
	if origin != "" && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
		return ServerConfig{}, fmt.Errorf("%s must start with http:// or https:// (got %q)", EnvOrigin, origin)
	}

	return ServerConfig{ListenAddr: listenAddr, DevMode: devMode, Origin: origin}, nil
}
