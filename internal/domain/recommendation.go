package domain

// SurveyAnswers is the immutable value produced by the survey flow and
// consumed by the scoring strategies. All fields are always present; empty
// slices are valid and simply contribute no score. The engine never assumes
// non-empty sets.
type SurveyAnswers struct {
	Goals          []string `json:"goals"`
	Diet           string   `json:"diet"`
	Allergies      []string `json:"allergies"`
	FoodCategories []string `json:"foodCategories"`
	Activity       string   `json:"activity"`
	Gender         string   `json:"gender"`
	HealthIssues   []string `json:"healthIssues"`
	Habits         []string `json:"habits"`
	WorkType       string   `json:"workType"`
}

// Recommendation is one ranked engine result. Score is the accumulated
// numeric evidence (always > 0 in engine output; zero-score products are
// excluded). Priority is a display-only 1–5 band derived by the keyword
// strategy and left 0 by the rule strategy.
type Recommendation struct {
	Product  Product `json:"product"`
	Reason   string  `json:"reason"`
	Score    float64 `json:"score"`
	Priority int     `json:"priority,omitempty"`
}

// Synergy is a documented beneficial interaction between two recommended
// products, surfaced for explanatory display only.
type Synergy struct {
	Combo  string `json:"combo"`
	Effect string `json:"effect"`
}

// HistoryEntry is one persisted recommendation run: the survey snapshot and
// the resulting recommendations, keyed by an anonymous per-browser user id.
// ID is derived from the creation timestamp and unique within the store.
type HistoryEntry struct {
	ID              int64            `json:"id"`
	UserID          string           `json:"user_id"`
	SurveyAnswers   SurveyAnswers    `json:"survey_data"`
	Recommendations []Recommendation `json:"recommendations"`
	CreatedAt       string           `json:"created_at"`
	IsActive        bool             `json:"is_active"`
}
