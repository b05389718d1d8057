package cli

import (
	"context"
	"fmt"
	"strings"
)

func (a *App) getStatus() string {
	var parts []string
	if m := a.currentMode(); m != "" {
		parts = append(parts, string(m))
	}
	if !a.hasToken {
		parts = append(parts, "no token")
	}
	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, ", "))
}

// Root greets the user, selects a token and runs the REPL until exit.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to wallabag CLI (type 'help' for commands)")

	if err := a.Authenticate(ctx); err != nil {
		a.logger.Warn(ctx, "no access token, requests will be anonymous", "error", err)
	}
	a.checkOnline(ctx)

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}
