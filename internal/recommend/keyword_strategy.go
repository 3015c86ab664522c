package recommend

import (
	"math"
	"sort"
	"strings"

	"github.com/tbourn/go-vitamins-backend/internal/domain"
)

// Point values per dimension category. A health issue outweighs a goal, a
// diet deficiency sits between them, and gender hints are the weakest signal.
const (
	goalPoints         = 15
	issuePoints        = 20
	activityHighPoints = 12
	activityBasePoints = 8
	dietPoints         = 18
	lowFishPoints      = 15
	lowMeatPoints      = 12
	lowDairyPoints     = 10
	habitPoints        = 14
	workTypePoints     = 10

	keywordTopN = 5

	// priorityDivisor converts a raw score into the display-only 1–5 band.
	priorityDivisor = 20
	maxPriority     = 5

	// maxReasonParts caps how many accumulated reasons join the display text.
	maxReasonParts = 2
)

// KeywordStrategy scores an arbitrary, unmodeled catalog by substring
// matching per-dimension keyword sets against each product's free text. It
// needs no curated rules, which makes it the fallback path when the catalog
// outgrows the rule table.
type KeywordStrategy struct {
	// TopN caps the output length. Values <= 0 default to 5.
	TopN int
}

// Name implements ScoringStrategy.
func (s *KeywordStrategy) Name() string { return "keywords" }

// productScore is the per-run accumulator for one product. Reasons are
// deduplicated: a reason string is appended at most once per product no
// matter how many keywords triggered it.
type productScore struct {
	score   float64
	reasons []string
}

func (ps *productScore) add(points float64, reason string) {
	ps.score += points
	if reason == "" {
		return
	}
	for _, r := range ps.reasons {
		if r == reason {
			return
		}
	}
	ps.reasons = append(ps.reasons, reason)
}

// Score implements ScoringStrategy. The accumulator is function-local state
// keyed by product id; scoring runs stay independent and the traversal order
// of the products slice makes the output deterministic.
func (s *KeywordStrategy) Score(answers domain.SurveyAnswers, products []domain.Product) []domain.Recommendation {
	scores := make(map[int]*productScore, len(products))
	haystacks := make([]string, len(products))
	for i, p := range products {
		scores[p.ID] = &productScore{}
		haystacks[i] = strings.ToLower(p.Name + " " + p.Description + " " + p.Category)
	}

	scoreGoals(answers.Goals, products, haystacks, scores)
	scoreHealthIssues(answers.HealthIssues, products, haystacks, scores)
	scoreActivity(answers.Activity, products, haystacks, scores)
	scoreDiet(answers.Diet, answers.FoodCategories, products, scores)
	scoreHabits(answers.Habits, products, haystacks, scores)
	scoreWorkType(answers.WorkType, products, haystacks, scores)
	scoreGender(answers.Gender, products, scores)

	out := make([]domain.Recommendation, 0, len(products))
	for _, p := range products {
		ps := scores[p.ID]
		if ps.score <= 0 {
			continue
		}
		priority := int(math.Ceil(ps.score / priorityDivisor))
		if priority > maxPriority {
			priority = maxPriority
		}
		parts := ps.reasons
		if len(parts) > maxReasonParts {
			parts = parts[:maxReasonParts]
		}
		out = append(out, domain.Recommendation{
			Product:  p,
			Reason:   strings.Join(parts, ". ") + ".",
			Score:    ps.score,
			Priority: priority,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })

	topN := s.TopN
	if topN <= 0 {
		topN = keywordTopN
	}
	if len(out) > topN {
		out = out[:topN]
	}
	return out
}

func scoreGoals(goals []string, products []domain.Product, haystacks []string, scores map[int]*productScore) {
	for _, goal := range goals {
		keywords := goalKeywords[goal]
		for i, p := range products {
			for _, kw := range keywords {
				if strings.Contains(haystacks[i], kw) {
					scores[p.ID].add(goalPoints, "Помогает достичь цели: "+goal)
				}
			}
		}
	}
}

func scoreHealthIssues(issues []string, products []domain.Product, haystacks []string, scores map[int]*productScore) {
	for _, issue := range issues {
		if issue == "Нет особенностей" {
			continue
		}
		keywords := issueKeywords[issue]
		for i, p := range products {
			for _, kw := range keywords {
				if strings.Contains(haystacks[i], kw) {
					scores[p.ID].add(issuePoints, "Помогает при: "+issue)
				}
			}
		}
	}
}

func scoreActivity(activity string, products []domain.Product, haystacks []string, scores map[int]*productScore) {
	keywords := activityKeywords[activity]
	points := float64(activityBasePoints)
	if activity == "Высокая" || activity == "Профессиональная" {
		points = activityHighPoints
	}
	for i, p := range products {
		for _, kw := range keywords {
			if strings.Contains(haystacks[i], kw) {
				scores[p.ID].add(points, "Подходит для вашего уровня активности")
			}
		}
	}
}

// scoreDiet combines two signals: known deficiencies of a named diet, and
// food categories missing from the daily ration (no fish → omega-3, little
// meat → iron/B12, no dairy → calcium/vitamin D). The ration checks scan
// name+description only; category is deliberately excluded there.
func scoreDiet(diet string, foodCategories []string, products []domain.Product, scores map[int]*productScore) {
	if def, ok := dietDeficiencies[diet]; ok {
		for _, p := range products {
			text := strings.ToLower(p.Name + " " + p.Description + " " + p.Category)
			for _, kw := range def.keywords {
				if strings.Contains(text, kw) {
					scores[p.ID].add(dietPoints, def.reason)
				}
			}
		}
	}

	eats := make(map[string]struct{}, len(foodCategories))
	for _, c := range foodCategories {
		eats[c] = struct{}{}
	}
	_, hasFish := eats["Рыба"]
	_, hasMeat := eats["Мясо и птица"]
	_, hasDairy := eats["Молочные продукты"]

	for _, p := range products {
		text := strings.ToLower(p.Name + " " + p.Description)
		if !hasFish && (strings.Contains(text, "омега") || strings.Contains(text, "рыбий жир")) {
			scores[p.ID].add(lowFishPoints, "В рационе мало рыбы - источника Омега-3")
		}
		if !hasMeat && (strings.Contains(text, "железо") || strings.Contains(text, "b12")) {
			scores[p.ID].add(lowMeatPoints, "Восполняет дефицит при малом употреблении мяса")
		}
		if !hasDairy && (strings.Contains(text, "кальций") || strings.Contains(text, "витамин d")) {
			scores[p.ID].add(lowDairyPoints, "Восполняет дефицит кальция и витамина D")
		}
	}
}

func scoreHabits(habits []string, products []domain.Product, haystacks []string, scores map[int]*productScore) {
	for _, habit := range habits {
		if habit == "Нет вредных привычек" {
			continue
		}
		remedy, ok := habitRemedies[habit]
		if !ok {
			continue
		}
		for i, p := range products {
			for _, kw := range remedy.keywords {
				if strings.Contains(haystacks[i], kw) {
					scores[p.ID].add(habitPoints, remedy.reason)
				}
			}
		}
	}
}

func scoreWorkType(workType string, products []domain.Product, haystacks []string, scores map[int]*productScore) {
	keywords := workTypeKeywords[workType]
	for i, p := range products {
		for _, kw := range keywords {
			if strings.Contains(haystacks[i], kw) {
				scores[p.ID].add(workTypePoints, "Поддерживает организм при "+strings.ToLower(workType))
			}
		}
	}
}

func scoreGender(gender string, products []domain.Product, scores map[int]*productScore) {
	switch gender {
	case "Женский":
		for _, p := range products {
			text := strings.ToLower(p.Name + " " + p.Description)
			if strings.Contains(text, "железо") {
				scores[p.ID].add(8, "Важно для женского здоровья")
			}
			if strings.Contains(text, "фолиевая") || strings.Contains(text, "фолат") {
				scores[p.ID].add(8, "Поддержка женского здоровья")
			}
			if strings.Contains(text, "кальций") {
				scores[p.ID].add(7, "Профилактика остеопороза")
			}
		}
	case "Мужской":
		for _, p := range products {
			text := strings.ToLower(p.Name + " " + p.Description)
			if strings.Contains(text, "цинк") {
				scores[p.ID].add(8, "Поддержка мужского здоровья")
			}
			if strings.Contains(text, "магний") {
				scores[p.ID].add(7, "Важен для мужского организма")
			}
		}
	}
}
