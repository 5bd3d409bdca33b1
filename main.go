package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/splashpage/splash/internal/app"
	"github.com/splashpage/splash/internal/buttons"
	"github.com/splashpage/splash/internal/render"
	"github.com/splashpage/splash/internal/state"
	"github.com/splashpage/splash/internal/system"
	"github.com/splashpage/splash/internal/web"
)

func main() {
	fmt.Println("splash starting")

	defaults, err := web.DefaultServerConfigFromEnv(":80")
	if err != nil {
		fmt.Println("server config error:", err)
		os.Exit(2)
	}

	// Flags
	debug := flag.Bool("debug", false, "enable debug logging to ./splash-debug.log")
	noBackground := flag.Bool("no-background", false, "disable the animated dot field")
	stdioLog := flag.String("stdio-log", "", "redirect stdout+stderr (including panics) to this file; also configurable via SPLASH_STDIO_LOG")
	title := flag.String("title", "splash", "caption drawn over the dot field")
	siteURL := flag.String("url", "", "URL shown as caption and QR code; empty means http://<local address>")
	listenAddr := flag.String("listen", defaults.ListenAddr, "http listen address; also configurable via "+web.EnvListenAddr)
	devMode := flag.Bool("dev", defaults.DevMode, "enable dev mode; also configurable via "+web.EnvDevMode)
	origin := flag.String("origin", defaults.Origin, "site origin for link tagging; empty derives it per request; also configurable via "+web.EnvOrigin)
	staticDir := flag.String("static-dir", "", "serve the site from this directory instead of the embedded one")
	fbDevice := flag.String("fb", "/dev/fb0", "framebuffer device")
	flag.Parse()

	// Best-effort: redirect all stdout/stderr output (including panic stack traces)
	// to a file so crashes are diagnosable even when the console is left in graphics mode.
	logPath := *stdioLog
	if logPath == "" {
		logPath = os.Getenv("SPLASH_STDIO_LOG")
	}
	if logPath != "" {
		if err := redirectStdIO(logPath); err != nil {
			fmt.Println("stdio log redirect error:", err)
		}
	}

	// Local file logger when debug enabled
	var logger app.Logger = app.NoopLogger{}
	if *debug {
		f, err := os.OpenFile("./splash-debug.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			defer f.Close()
			logger = app.NewFileLogger(f)
			logger.Infof("main", "debug logging enabled")
		} else {
			fmt.Println("debug log open error:", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := state.NewStore()
	if ip, err := system.PrimaryIPv4(); err == nil {
		store.UpdateNetwork(state.NetworkInfo{URL: system.SiteURL(ip, *listenAddr)})
	} else {
		logger.Errorf("main", "no network address: %v", err)
	}

	renderer := render.NewFBRenderer()
	renderer.Device = *fbDevice

	server := web.NewHTTPServer(web.ServerConfig{ListenAddr: *listenAddr, DevMode: *devMode, Origin: *origin})
	server.StaticDir = *staticDir
	server.Store = store
	server.Logger = logger

	input := buttons.NewEvdev()
	input.Logger = logger

	a := app.New(store, renderer, server, input)
	a.Logger = logger
	a.Title = *title
	a.URL = *siteURL
	a.NoBackground = *noBackground
	a.ManageConsole = true
	a.Debug = *debug
	server.Field = a

	if err := a.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Println("app error:", err)
		os.Exit(1)
	}
}
