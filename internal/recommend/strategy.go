// Package recommend implements the recommendation scoring engine: the logic
// that maps a user's survey answers to a ranked, explained list of catalog
// products. It is intentionally small and dependency-free, but engineered
// with production-grade ergonomics:
//
//   - No logging in the library (callers decide how/what to log)
//   - Pure, synchronous computation over in-memory inputs; no network access
//   - Deterministic scoring and sorting (stable order for ties)
//   - Fresh, independent output on every call; no shared mutable state
//
// Two independent strategies exist behind the ScoringStrategy interface:
//
//   - RuleBasedStrategy scores against a curated table of weighted rules
//     keyed by stable product identity (closed world: products without rules
//     are never recommended by it).
//   - KeywordStrategy scores by substring-matching per-dimension keyword
//     sets against product free text, so it works on an arbitrary catalog.
//
// The two strategies can legitimately disagree on which products are "best"
// for identical input; callers choose one explicitly.
package recommend

import "github.com/tbourn/go-vitamins-backend/internal/domain"

// ScoringStrategy ranks catalog products against a set of survey answers.
//
// Implementations must be deterministic for identical inputs, must exclude
// zero-score products, must return results ordered by score descending, and
// must be safe for concurrent use (no per-call shared state).
type ScoringStrategy interface {
	// Name identifies the strategy ("rules" or "keywords").
	Name() string

	// Score returns the ranked recommendations for the given answers and
	// product snapshot. Empty answers or an empty snapshot yield an empty,
	// non-nil slice; neither is an error.
	Score(answers domain.SurveyAnswers, products []domain.Product) []domain.Recommendation
}
