// Package services contains application services for the wallabag client.
// This file defines the session service: server liveness, the access token
// in use and an optional remembered copy of it in the local cache.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/wallabag/internal/client/client"
	"github.com/dmitrijs2005/wallabag/internal/client/repositories/metadata"
)

// KeyAccessToken is the metadata key of a remembered token.
const KeyAccessToken = "access_token"

// SessionService defines connection-level operations for the CLI.
//
// Contract:
//   - UseToken: switch the client to a token, optionally remembering it.
//   - SavedToken: the remembered token, or "" when there is none.
//   - Forget: drop the remembered token and stop sending any token.
//   - Ping: check server liveness.
//   - Close: release underlying client resources.
type SessionService interface {
	UseToken(ctx context.Context, token string, remember bool) error
	SavedToken(ctx context.Context) (string, error)
	Forget(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type sessionService struct {
	client   client.Client
	metadata metadata.Repository
}

// NewSessionService constructs a SessionService bound to the given API
// client and metadata store.
func NewSessionService(c client.Client, md metadata.Repository) SessionService {
	return &sessionService{client: c, metadata: md}
}

func (s *sessionService) UseToken(ctx context.Context, token string, remember bool) error {
	s.client.SetToken(token)
	if !remember {
		return nil
	}
	if err := s.metadata.Set(ctx, KeyAccessToken, []byte(token)); err != nil {
		return fmt.Errorf("remember token: %w", err)
	}
	return nil
}

func (s *sessionService) SavedToken(ctx context.Context) (string, error) {
	v, err := s.metadata.Get(ctx, KeyAccessToken)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func (s *sessionService) Forget(ctx context.Context) error {
	s.client.SetToken("")
	return s.metadata.Delete(ctx, KeyAccessToken)
}

// Ping proxies a liveness check to the underlying client.
func (s *sessionService) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

// Close releases resources held by the underlying client.
func (s *sessionService) Close(ctx context.Context) error {
	return s.client.Close()
}
