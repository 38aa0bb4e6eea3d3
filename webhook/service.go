package webhook

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

/* Service represents the business logic layer
 * Uses pointer semantics as it's an API, not data
 */

// UseCase defines the operations offered to the scheduler and the dashboard
type UseCase interface {
	TriggerPrimary(ctx context.Context) Response
	TriggerSecondary(ctx context.Context) Response
	History(ctx context.Context) ([]Response, error)
	Latest(ctx context.Context) (Response, bool, error)
	ClearHistory(ctx context.Context) error
	Targets() (primary Target, secondary Target)
}

type Service struct {
	Repo      Repository
	invoker   *Invoker
	primary   Target
	secondary Target
	logger    zerolog.Logger
}

// NewService creates a new webhook service with dependency injection
func NewService(repo Repository, invoker *Invoker, primary, secondary Target, logger zerolog.Logger) *Service {
	logger.Info().
		Str("primary_url", primary.URL).
		Bool("secondary_configured", secondary.Configured()).
		Msg("webhook service initialized")
	return &Service{
		Repo:      repo,
		invoker:   invoker,
		primary:   primary,
		secondary: secondary,
		logger:    logger,
	}
}

// TriggerPrimary invokes the primary target
func (s *Service) TriggerPrimary(ctx context.Context) Response {
	return s.invoker.Invoke(ctx, s.primary)
}

// TriggerSecondary invokes the secondary target, recording a configuration
// error without any network call when it has no URL
func (s *Service) TriggerSecondary(ctx context.Context) Response {
	return s.invoker.Invoke(ctx, s.secondary)
}

// History returns the recorded responses, oldest first
func (s *Service) History(ctx context.Context) ([]Response, error) {
	history, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	return history, nil
}

// Latest returns the most recent response
func (s *Service) Latest(ctx context.Context) (Response, bool, error) {
	latest, ok, err := s.Repo.Latest(ctx)
	if err != nil {
		return Response{}, false, fmt.Errorf("getting latest response: %w", err)
	}
	return latest, ok, nil
}

// ClearHistory drops every recorded response
func (s *Service) ClearHistory(ctx context.Context) error {
	s.logger.Info().Msg("clearing webhook history")
	if err := s.Repo.Clear(ctx); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	return nil
}

// Targets returns the configured targets
func (s *Service) Targets() (Target, Target) {
	return s.primary, s.secondary
}
