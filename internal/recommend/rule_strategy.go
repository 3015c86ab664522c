package recommend

import (
	"sort"

	"github.com/tbourn/go-vitamins-backend/internal/domain"
)

const (
	// healthIssueWeight boosts health-issue matches over aspirational goals:
	// a diagnosed condition is stronger evidence than a wish.
	healthIssueWeight = 1.2

	// genderWeight slightly discounts gender matches relative to the other
	// single-value predicates.
	genderWeight = 0.8

	// ruleTopN caps the rule strategy output.
	ruleTopN = 6
)

// RuleBasedStrategy scores products against the curated rule table. Only
// products whose Key appears in the table can ever be recommended (closed
// world); everything else is skipped silently.
//
// Equal total scores keep catalog traversal order (stable sort, no secondary
// key), which makes repeated calls with identical inputs return identical
// ordered results.
type RuleBasedStrategy struct {
	// Rules is the table to score against. DefaultRules() when nil.
	Rules RuleTable

	// TopN caps the output length. Values <= 0 default to 6.
	TopN int
}

// Name implements ScoringStrategy.
func (s *RuleBasedStrategy) Name() string { return "rules" }

// Score implements ScoringStrategy with the curated-rule semantics:
// set-valued predicates contribute (match count × priority), single-valued
// predicates contribute the full priority on membership, health issues are
// weighted ×1.2 and gender ×0.8. The displayed reason belongs to the matched
// rule with the highest priority (strict comparison, so the first rule in
// declaration order wins ties).
func (s *RuleBasedStrategy) Score(answers domain.SurveyAnswers, products []domain.Product) []domain.Recommendation {
	table := s.Rules
	if table == nil {
		table = DefaultRules()
	}

	out := make([]domain.Recommendation, 0, len(products))
	for _, p := range products {
		rules, ok := table[p.Key]
		if !ok {
			continue
		}

		var (
			total           float64
			bestReason      string
			highestPriority float64
		)

		for _, r := range rules {
			ruleScore, matches := scoreRule(r, answers)
			if matches > 0 && r.Priority > highestPriority {
				highestPriority = r.Priority
				bestReason = r.Reason
			}
			total += ruleScore
		}

		if total > 0 {
			out = append(out, domain.Recommendation{
				Product: p,
				Reason:  bestReason,
				Score:   total,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })

	topN := s.TopN
	if topN <= 0 {
		topN = ruleTopN
	}
	if len(out) > topN {
		out = out[:topN]
	}
	return out
}

// scoreRule computes one rule's contribution and how many of its predicate
// values matched. Undefined (nil) predicate fields never match.
func scoreRule(r Rule, a domain.SurveyAnswers) (score float64, matches int) {
	if n := countIntersect(r.Goals, a.Goals); n > 0 {
		score += float64(n) * r.Priority
		matches += n
	}
	if n := countIntersect(r.HealthIssues, a.HealthIssues); n > 0 {
		score += float64(n) * r.Priority * healthIssueWeight
		matches += n
	}
	if contains(r.Activity, a.Activity) {
		score += r.Priority
		matches++
	}
	if contains(r.Diet, a.Diet) {
		score += r.Priority
		matches++
	}
	if n := countIntersect(r.Habits, a.Habits); n > 0 {
		score += float64(n) * r.Priority
		matches += n
	}
	if contains(r.WorkType, a.WorkType) {
		score += r.Priority
		matches++
	}
	if contains(r.Gender, a.Gender) {
		score += r.Priority * genderWeight
		matches++
	}
	return score, matches
}

// countIntersect returns how many values of the rule predicate appear in the
// survey field. Exact string matching; both sides are small.
func countIntersect(predicate, selected []string) int {
	if len(predicate) == 0 || len(selected) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(selected))
	for _, v := range selected {
		set[v] = struct{}{}
	}
	n := 0
	for _, v := range predicate {
		if _, ok := set[v]; ok {
			n++
		}
	}
	return n
}

// contains reports whether the single survey value is a member of the rule
// predicate. An empty survey value never matches.
func contains(predicate []string, value string) bool {
	if len(predicate) == 0 || value == "" {
		return false
	}
	for _, v := range predicate {
		if v == value {
			return true
		}
	}
	return false
}
