package app

import (
	"context"
	"errors"
	"image"
	"sync"
	"sync/atomic"

	"github.com/splashpage/splash/internal/app/screens"
	"github.com/splashpage/splash/internal/buttons"
	"github.com/splashpage/splash/internal/dots"
	"github.com/splashpage/splash/internal/page"
	"github.com/splashpage/splash/internal/render"
	"github.com/splashpage/splash/internal/state"
	"github.com/splashpage/splash/internal/system"
	"github.com/splashpage/splash/internal/web"
)

type App struct {
	Store    *state.Store
	Render   render.Renderer
	Web      web.Server
	Buttons  buttons.Buttons
	Animator *dots.Animator
	Logger   Logger

	Title        string
	URL          string
	NoBackground bool
	// ManageConsole switches the VT to graphics mode for the lifetime of Start.
	ManageConsole bool
	Debug         bool

	page          *page.Page
	anim          atomic.Pointer[dots.Animation]
	currentScreen render.Screen

	exitOnce atomic.Bool
	exitCh   chan error
}

func New(store *state.Store, renderer render.Renderer, webServer web.Server, buttonDriver buttons.Buttons) *App {
	return &App{Store: store, Render: renderer, Web: webServer, Buttons: buttonDriver, Logger: NoopLogger{}, exitCh: make(chan error, 1)}
}

// Exit requests the app to stop running.
// Any screen or button can call this to terminate the process via the generic codepath.
func (app *App) Exit(err error) {
	if app.exitCh == nil {
		return
	}
	if !app.exitOnce.CompareAndSwap(false, true) {
		return
	}
	select {
	case app.exitCh <- err:
	default:
	}
}

func (app *App) Start(ctx context.Context) error {
	if app.exitCh == nil {
		app.exitCh = make(chan error, 1)
	}
	if app.Logger == nil {
		app.Logger = NoopLogger{}
	}
	app.exitOnce.Store(false)

	app.Store.SetPhase(state.BOOTING)
	if app.Render == nil {
		app.Render = render.NewFBRenderer()
	}
	if fb, ok := app.Render.(*render.FBRenderer); ok {
		fb.Logger = app.Logger
		fb.Debug = app.Debug
	}
	if err := app.Render.Start(ctx); err != nil {
		app.Logger.Errorf("app", "renderer start error: %v", err)
		app.Store.Fail(err)
		return err
	}
	defer app.Render.Stop()

	if app.ManageConsole {
		restore := system.EnterGraphics(app.Logger)
		defer restore()
	}

	app.page = page.New(render.CanvasWidth, render.CanvasHeight)
	app.Store.UpdateViewport(state.Viewport{Width: render.CanvasWidth, Height: render.CanvasHeight})
	if !app.NoBackground {
		app.page.AddContainer(dots.MountID, func() dots.Surface { return render.NewCanvasSurface(0, 0) })
	}
	app.startAnimation()
	defer func() {
		if anim := app.anim.Load(); anim != nil {
			anim.Stop()
		}
	}()

	splash := screens.NewSplashScreen(app.Title, app.URL, app.layer, app.Logger)
	if err := app.setScreen(ctx, splash); err != nil {
		return err
	}

	if app.Web != nil {
		if err := app.Web.Start(ctx); err != nil {
			app.Logger.Errorf("web", "server start error: %v", err)
		}
		defer func() { _ = app.Web.Stop() }()
	}

	if app.Buttons != nil {
		if err := app.Buttons.Start(ctx); err != nil {
			app.Logger.Errorf("input", "buttons start error: %v", err)
		}
		defer func() { _ = app.Buttons.Stop() }()
		go app.watchButtons(ctx)
	}

	app.Store.SetPhase(state.RUNNING)
	app.Render.RedrawWithState(app.Store.Snapshot())

	loopCtx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		app.Render.RunLoop(loopCtx, app.Store, app.page)
	}()

	var err error
	select {
	case <-ctx.Done():
		err = ctx.Err()
	case err = <-app.exitCh:
	}
	cancel()
	wg.Wait()

	if err != nil && !errors.Is(err, context.Canceled) {
		app.Store.Fail(err)
	} else {
		app.Store.SetPhase(state.STOPPED)
	}
	if serr := app.setScreen(context.Background(), screens.MessageScreen{Text: "stopping"}); serr == nil {
		app.Render.RedrawWithState(app.Store.Snapshot())
	}
	return err
}

// startAnimation mounts a fresh dot field on the page, replacing any running one.
func (app *App) startAnimation() {
	animator := app.Animator
	if animator == nil {
		animator = dots.NewAnimator()
	}
	animator.Logger = app.Logger
	if old := app.anim.Swap(animator.Start(app.page)); old != nil {
		old.Stop()
	}
}

func (app *App) watchButtons(ctx context.Context) {
	events := app.Buttons.Events()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			app.Logger.Infof("input", "button event: %s", ev)
			switch ev {
			case buttons.Exit, buttons.Shutdown:
				app.Exit(nil)
				return
			case buttons.Reset:
				app.page.Post(app.startAnimation)
			}
		}
	}
}

// layer returns the current dot field frame for the splash screen.
func (app *App) layer() image.Image {
	anim := app.anim.Load()
	if anim == nil {
		return nil
	}
	if surface, ok := anim.Surface().(*render.CanvasSurface); ok {
		return surface.Image()
	}
	return nil
}

// Snapshot reports the running dot field, if one is mounted. It backs the
// web API.
func (app *App) Snapshot() (dots.Snapshot, bool) {
	anim := app.anim.Load()
	if anim == nil || !anim.Mounted() {
		return dots.Snapshot{}, false
	}
	return anim.Snapshot(), true
}

func (app *App) setScreen(ctx context.Context, screen render.Screen) error {
	if app.currentScreen != nil {
		_ = app.currentScreen.Stop()
	}
	app.currentScreen = screen
	app.Render.SetScreen(screen)
	return screen.Start(ctx)
}

func (app *App) Stop() error {
	app.Exit(nil)
	return nil
}
