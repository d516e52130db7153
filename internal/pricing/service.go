package pricing

import (
	"context"
	"errors"
	"log/slog"

	"github.com/inkhouse/tattoo-booking-backend/internal/pkg/apperror"
)

type Service interface {
	// GetRules returns the current rule set, falling back to DefaultRules when none
	// has been saved yet. The result is a copy the caller may keep.
	GetRules(ctx context.Context) (*RuleSet, error)
	SaveRules(ctx context.Context, rules *RuleSet) (*RuleSet, error)
	Quote(ctx context.Context, req QuoteRequest) (*Quote, error)
}

type service struct {
	repo   Repository
	cache  Cache
	logger *slog.Logger
}

func NewService(repo Repository, cache Cache, logger *slog.Logger) Service {
	if cache == nil {
		cache = NopCache{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		repo:   repo,
		cache:  cache,
		logger: logger.With("component", "pricing"),
	}
}

func (s *service) GetRules(ctx context.Context) (*RuleSet, error) {
	cached, err := s.cache.Get(ctx)
	switch {
	case err == nil:
		return cached.Clone(), nil
	case !errors.Is(err, ErrCacheMiss):
		s.logger.WarnContext(ctx, "pricing cache read failed, reading from storage", "error", err)
	}

	rules, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, ErrRulesNotFound) {
			s.logger.DebugContext(ctx, "no pricing rules saved, using defaults")
			return DefaultRules(), nil
		}
		return nil, wrapUpstream(err)
	}

	if err := s.cache.Set(ctx, rules); err != nil {
		s.logger.WarnContext(ctx, "pricing cache write failed", "error", err)
	}
	return rules.Clone(), nil
}

func (s *service) SaveRules(ctx context.Context, rules *RuleSet) (*RuleSet, error) {
	if err := ValidateRules(rules); err != nil {
		return nil, err
	}

	saved := rules.Clone()
	if err := s.repo.Save(ctx, saved); err != nil {
		return nil, wrapUpstream(err)
	}

	// A stale cache would keep quoting old prices until the TTL ran out.
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.ErrorContext(ctx, "pricing cache invalidation failed", "error", err)
	}

	s.logger.InfoContext(ctx, "pricing rules saved",
		"sizes", len(saved.Sizes), "styles", len(saved.Styles),
		"placements", len(saved.Placements), "offers", len(saved.SpecialOffers))
	return saved.Clone(), nil
}

func (s *service) Quote(ctx context.Context, req QuoteRequest) (*Quote, error) {
	rules, err := s.GetRules(ctx)
	if err != nil {
		return nil, err
	}
	return NewQuote(req, rules)
}

func wrapUpstream(err error) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperror.WithCause(ErrRulesUnavailable, err)
}
