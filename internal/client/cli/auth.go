package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// getSimpleText and getSecret are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getSecret = GetSecret

// Authenticate selects the access token for this session: the configured
// one, else a remembered one, else one typed by the user.
func (a *App) Authenticate(ctx context.Context) error {
	if a.config.AccessToken != "" {
		if err := a.sessionService.UseToken(ctx, a.config.AccessToken, false); err != nil {
			return err
		}
		a.hasToken = true
		return nil
	}

	saved, err := a.sessionService.SavedToken(ctx)
	if err != nil {
		a.logger.Warn(ctx, "cannot read remembered token", "error", err)
	}
	if saved != "" {
		if err := a.sessionService.UseToken(ctx, saved, false); err != nil {
			return err
		}
		a.hasToken = true
		return nil
	}

	return a.Token(ctx)
}

// Token prompts for an access token and optionally remembers it in the
// local cache.
func (a *App) Token(ctx context.Context) error {
	token, err := getSecret(a.out, "Enter access token")
	if err != nil {
		return err
	}
	if token == "" {
		return errors.New("access token is empty")
	}

	answer, err := getSimpleText(a.reader, "Remember token on this machine? (y/N)", a.out)
	if err != nil {
		return err
	}
	remember := strings.EqualFold(answer, "y") || strings.EqualFold(answer, "yes")

	if err := a.sessionService.UseToken(ctx, token, remember); err != nil {
		return err
	}
	a.hasToken = true
	fmt.Fprintln(a.out, "Token set")
	return nil
}

// Forget drops the remembered token and stops authenticating requests.
func (a *App) Forget(ctx context.Context) error {
	if err := a.sessionService.Forget(ctx); err != nil {
		return err
	}
	a.hasToken = false
	fmt.Fprintln(a.out, "Token forgotten")
	return nil
}
