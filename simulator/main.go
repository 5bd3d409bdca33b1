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
	"github.com/splashpage/splash/internal/dots"
	"github.com/splashpage/splash/internal/page"
	"github.com/splashpage/splash/internal/render"
	"github.com/splashpage/splash/internal/sim"
	"github.com/splashpage/splash/internal/web"
)

func main() {
	defaults, err := web.DefaultServerConfigFromEnv(":8080")
	if err != nil {
		fmt.Println("server config error:", err)
		os.Exit(2)
	}

	listenAddr := flag.String("listen", defaults.ListenAddr, "http listen address; also configurable via "+web.EnvListenAddr)
	devMode := flag.Bool("dev", defaults.DevMode, "enable dev mode; also configurable via "+web.EnvDevMode)
	origin := flag.String("origin", defaults.Origin, "site origin for link tagging; also configurable via "+web.EnvOrigin)
	staticDir := flag.String("static-dir", "", "serve the site from this directory (optional); when empty, the embedded site is served")
	width := flag.Int("width", 1280, "initial viewport width")
	height := flag.Int("height", 720, "initial viewport height")
	headless := flag.Bool("headless", false, "run without a window")
	ticks := flag.Uint64("ticks", 0, "headless: stop after this many refreshes (0 runs until interrupted)")
	hz := flag.Int("hz", 60, "headless: refresh rate")
	pngOut := flag.String("png", "", "headless: write the last frame to this PNG file")
	debug := flag.Bool("debug", false, "log to stderr")
	flag.Parse()

	var logger app.Logger = app.NoopLogger{}
	if *debug {
		logger = app.NewFileLogger(os.Stderr)
	}

	processCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p := page.New(*width, *height)
	var window *windowHost
	if *headless {
		p.AddContainer(dots.MountID, func() dots.Surface { return render.NewCanvasSurface(0, 0) })
	} else {
		window = newWindowHost(p)
		p.AddContainer(dots.MountID, window.newSurface)
	}

	control := sim.NewControl(p, dots.NewAnimator())
	control.Logger = logger
	control.Start()

	server := web.NewHTTPServer(web.ServerConfig{ListenAddr: *listenAddr, DevMode: *devMode, Origin: *origin})
	server.StaticDir = *staticDir
	server.Field = control
	server.Logger = logger
	mux := web.NewDefaultMux(server.StaticDir, web.APIV1Config{Field: control}, server.Origin)
	control.RegisterEndpoints(mux)
	server.Handler = mux

	if err := server.Start(processCtx); err != nil {
		fmt.Println("server start error:", err)
		os.Exit(1)
	}
	fmt.Println("splash simulator listening on", server.Addr)
	fmt.Println("API: " + siteURL(server.Addr) + "/api/v1/")

	if window != nil {
		err = window.Run(processCtx, control)
	} else {
		err = runHeadless(processCtx, p, control, page.RunConfig{Hz: *hz, Ticks: *ticks}, *pngOut)
	}
	control.Stop()
	_ = server.Stop()
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Println("simulator error:", err)
		os.Exit(1)
	}
}

func runHeadless(ctx context.Context, p *page.Page, control *sim.Control, cfg page.RunConfig, pngOut string) error {
	if err := p.Run(ctx, cfg); err != nil {
		return err
	}
	if pngOut == "" {
		return nil
	}
	snap, ok := control.Snapshot()
	if !ok {
		return errors.New("no frame to write")
	}
	f, err := os.Create(pngOut)
	if err != nil {
		return err
	}
	if err := render.WritePNG(f, snap); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func siteURL(addr string) string {
	// Best-effort for display; don't attempt full URL parsing here.
	if len(addr) > 0 && addr[0] == ':' {
		return "http://127.0.0.1" + addr
	}
	return "http://" + addr
}
