// Package services – RecommendationService
//
// This file implements RecommendationService, the application-level component
// that turns a completed survey into a ranked supplement selection. It
// normalizes and validates the answers, resolves a product snapshot from the
// configured catalog provider, runs the selected scoring strategy, derives
// synergy pairings for the winning products, and records the run in the
// recommendation history.
//
// Observability: public methods are OpenTelemetry-instrumented; spans include
// the strategy name and result counts.
package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/go-vitamins-backend/internal/catalog"
	"github.com/tbourn/go-vitamins-backend/internal/domain"
	"github.com/tbourn/go-vitamins-backend/internal/history"
	"github.com/tbourn/go-vitamins-backend/internal/recommend"
	"github.com/tbourn/go-vitamins-backend/internal/survey"
)

// Strategy names accepted by Recommend.
const (
	StrategyRules    = "rules"
	StrategyKeywords = "keywords"
)

// RecommendationResult is the full outcome of one scoring run.
type RecommendationResult struct {
	Strategy        string                  `json:"strategy"`
	Recommendations []domain.Recommendation `json:"recommendations"`
	Synergies       []domain.Synergy        `json:"synergies"`
	HistoryID       int64                   `json:"history_id,omitempty"`
}

// RecommendationService coordinates survey validation, catalog resolution,
// scoring, and history persistence.
type RecommendationService struct {
	// Catalog supplies the product snapshot to score.
	Catalog catalog.Provider

	// Rules and Keywords are the two scoring strategies. Rules is the
	// default when a request names no strategy.
	Rules    recommend.ScoringStrategy
	Keywords recommend.ScoringStrategy

	// History records each run; nil disables recording.
	History *history.Store
}

// NewRecommendationService constructs a service with the default strategies.
func NewRecommendationService(provider catalog.Provider, hist *history.Store) *RecommendationService {
	return &RecommendationService{
		Catalog:  provider,
		Rules:    &recommend.RuleBasedStrategy{Rules: recommend.DefaultRules()},
		Keywords: &recommend.KeywordStrategy{},
		History:  hist,
	}
}

// Recommend runs one scoring pass over the current catalog snapshot.
// strategyName selects the strategy ("rules" when empty). Invalid answers are
// reported as ErrInvalidSurvey joined with the underlying survey error.
//
// History recording is best effort: a failure to persist the run is logged
// and never fails the request.
func (s *RecommendationService) Recommend(ctx context.Context, answers domain.SurveyAnswers, strategyName string) (*RecommendationResult, error) {
	tr := otel.Tracer("services/RecommendationService")
	ctx, span := tr.Start(ctx, "Recommend",
		trace.WithAttributes(attribute.String("strategy", strategyName)),
	)
	defer span.End()

	strategy, name, err := s.strategy(strategyName)
	if err != nil {
		return nil, err
	}

	answers = survey.Normalize(answers)
	if err := survey.Validate(answers); err != nil {
		return nil, errors.Join(ErrInvalidSurvey, err)
	}

	// An empty snapshot is not an error: it scores to zero recommendations.
	products, err := s.Catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	recs := strategy.Score(answers, products)
	span.SetAttributes(attribute.Int("recommendations", len(recs)))

	names := make([]string, 0, len(recs))
	for _, r := range recs {
		names = append(names, r.Product.Name)
	}

	result := &RecommendationResult{
		Strategy:        name,
		Recommendations: recs,
		Synergies:       recommend.Synergies(names),
	}

	if s.History != nil {
		entry, err := s.History.Save(ctx, answers, recs)
		if err != nil {
			log.Warn().Err(err).Msg("recommendation history save failed")
		} else {
			result.HistoryID = entry.ID
		}
	}
	return result, nil
}

// Strategies returns the names Recommend accepts, default first.
func (s *RecommendationService) Strategies() []string {
	return []string{StrategyRules, StrategyKeywords}
}

// History access, delegated to the store. ListHistory returns entries newest
// first; an unset store yields an empty list.
func (s *RecommendationService) ListHistory(ctx context.Context) []domain.HistoryEntry {
	if s.History == nil {
		return []domain.HistoryEntry{}
	}
	return s.History.List(ctx)
}

// DeleteHistory removes one history entry by id.
func (s *RecommendationService) DeleteHistory(ctx context.Context, id int64) error {
	if s.History == nil {
		return nil
	}
	return s.History.Delete(ctx, id)
}

// ClearHistory drops all history entries.
func (s *RecommendationService) ClearHistory(ctx context.Context) error {
	if s.History == nil {
		return nil
	}
	return s.History.Clear(ctx)
}

func (s *RecommendationService) strategy(name string) (recommend.ScoringStrategy, string, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", StrategyRules:
		return s.Rules, StrategyRules, nil
	case StrategyKeywords:
		return s.Keywords, StrategyKeywords, nil
	default:
		return nil, "", ErrUnknownStrategy
	}
}
