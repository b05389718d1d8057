package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/wallabag/internal/client/client"
	"github.com/dmitrijs2005/wallabag/internal/client/config"
	"github.com/dmitrijs2005/wallabag/internal/client/services"
	"github.com/dmitrijs2005/wallabag/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config         *config.Config
	sessionService services.SessionService
	entryService   services.EntryService
	logger         logging.Logger
	reader         *bufio.Reader
	out            io.Writer

	hasToken bool

	mu   sync.RWMutex
	mode Mode
}

func NewApp(c *config.Config, ss services.SessionService, es services.EntryService, logger logging.Logger) *App {
	return &App{
		config:         c,
		sessionService: ss,
		entryService:   es,
		logger:         logger,
		reader:         bufio.NewReader(os.Stdin),
		out:            os.Stdout,
	}
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.logger.Info(ctx, "switched mode", "mode", string(mode))
	}
}

func (a *App) currentMode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *App) Run(ctx context.Context) {
	defer a.sessionService.Close(ctx)
	a.Root(ctx)
}

// checkOnline pings the server and updates the mode.
func (a *App) checkOnline(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	err := a.sessionService.Ping(pingCtx)
	cancel()

	if err != nil {
		a.setMode(ctx, ModeOffline)
		return
	}
	a.setMode(ctx, ModeOnline)
}

// noteErr switches to offline mode when err says the server is gone, and
// returns err unchanged.
func (a *App) noteErr(ctx context.Context, err error) error {
	if errors.Is(err, client.ErrUnavailable) {
		a.setMode(ctx, ModeOffline)
	}
	return err
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}
