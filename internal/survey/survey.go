// Package survey defines the fixed intake flow: the ordered steps, their
// question types and option vocabularies, and the validation that turns raw
// input into a domain.SurveyAnswers value. The scoring engine stays agnostic
// to these constraints; everything cardinality-related is enforced here.
package survey

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tbourn/go-vitamins-backend/internal/domain"
)

// Question types supported by the flow. The admin-managed extended survey
// (domain.SurveyQuestion) uses the same vocabulary.
const (
	TypeText         = "text"
	TypeTextarea     = "textarea"
	TypeNumber       = "number"
	TypeSingleChoice = "single_choice"
	TypeMultiChoice  = "multiple_choice"
)

// GoalCount is the exact number of goals a respondent must select. The
// earlier flow left this unbounded; the current flow requires exactly three,
// and that is the invariant enforced here.
const GoalCount = 3

// Validation errors.
var (
	ErrGoalCount    = fmt.Errorf("exactly %d goals must be selected", GoalCount)
	ErrUnknownValue = errors.New("value is not in the question's option list")
)

// Step is one screen of the fixed flow, bound to a SurveyAnswers field.
type Step struct {
	Field    string   `json:"field"`
	Title    string   `json:"title"`
	Type     string   `json:"type"`
	Options  []string `json:"options,omitempty"`
	Required bool     `json:"required"`
}

// Option vocabularies of the fixed flow.
var (
	Goals = []string{
		"Улучшить энергию и бодрость",
		"Укрепить иммунитет",
		"Поддержать здоровье кожи и волос",
		"Снизить стресс",
		"Улучшить сон",
		"Поддержать здоровье сердца",
	}
	Genders = []string{"Мужской", "Женский", "Предпочитаю не указывать"}
	Diets   = []string{
		"Нет, обычное питание", "Вегетарианство", "Веганство",
		"Кето-диета", "Безглютеновая", "Средиземноморская",
	}
	Allergies = []string{
		"Нет аллергий", "Молочные продукты", "Глютен",
		"Орехи", "Рыба и морепродукты", "Соя",
	}
	FoodCategories = []string{
		"Мясо и птица", "Рыба", "Овощи и зелень", "Фрукты",
		"Молочные продукты", "Крупы и злаки", "Бобовые", "Орехи и семена",
	}
	Activities = []string{"Минимальная", "Легкая", "Умеренная", "Высокая", "Профессиональная"}
	HealthIssues = []string{
		"Нет особенностей", "Проблемы с ЖКТ", "Гормональный дисбаланс",
		"Частые простуды", "Хроническая усталость", "Проблемы со сном",
		"Стресс и тревожность",
	}
	Habits = []string{
		"Нет вредных привычек", "Курение", "Алкоголь регулярно",
		"Много кофе", "Недостаток сна",
	}
	WorkTypes = []string{
		"Офисная работа", "Физический труд", "Работа на ногах",
		"Удаленная работа", "Ночные смены", "Ненормированный график",
	}
)

// Steps returns the fixed nine-step flow in presentation order.
func Steps() []Step {
	return []Step{
		{Field: "goals", Title: "Каковы ваши основные цели?", Type: TypeMultiChoice, Options: Goals, Required: true},
		{Field: "gender", Title: "Ваш пол?", Type: TypeSingleChoice, Options: Genders, Required: true},
		{Field: "diet", Title: "Следуете ли вы какой-то диете?", Type: TypeSingleChoice, Options: Diets, Required: true},
		{Field: "allergies", Title: "Есть ли у вас аллергии?", Type: TypeMultiChoice, Options: Allergies},
		{Field: "foodCategories", Title: "Какие категории продуктов в вашем рационе?", Type: TypeMultiChoice, Options: FoodCategories},
		{Field: "activity", Title: "Ваш уровень физической активности?", Type: TypeSingleChoice, Options: Activities, Required: true},
		{Field: "healthIssues", Title: "Есть ли особенности здоровья?", Type: TypeMultiChoice, Options: HealthIssues},
		{Field: "habits", Title: "Есть ли вредные привычки?", Type: TypeMultiChoice, Options: Habits},
		{Field: "workType", Title: "Тип вашей работы?", Type: TypeSingleChoice, Options: WorkTypes, Required: true},
	}
}

// Normalize trims whitespace and drops empty strings and duplicates from the
// set-valued fields, returning a cleaned copy. It never mutates its input.
func Normalize(a domain.SurveyAnswers) domain.SurveyAnswers {
	a.Goals = cleanSet(a.Goals)
	a.Allergies = cleanSet(a.Allergies)
	a.FoodCategories = cleanSet(a.FoodCategories)
	a.HealthIssues = cleanSet(a.HealthIssues)
	a.Habits = cleanSet(a.Habits)
	a.Diet = strings.TrimSpace(a.Diet)
	a.Activity = strings.TrimSpace(a.Activity)
	a.Gender = strings.TrimSpace(a.Gender)
	a.WorkType = strings.TrimSpace(a.WorkType)
	return a
}

// Validate checks a normalized answer set against the fixed flow: exactly
// GoalCount goals, and every provided value must belong to its step's option
// list. Empty optional fields are fine. The first violation is returned.
func Validate(a domain.SurveyAnswers) error {
	if len(a.Goals) != GoalCount {
		return ErrGoalCount
	}
	checks := []struct {
		field  string
		values []string
		vocab  []string
	}{
		{"goals", a.Goals, Goals},
		{"allergies", a.Allergies, Allergies},
		{"foodCategories", a.FoodCategories, FoodCategories},
		{"healthIssues", a.HealthIssues, HealthIssues},
		{"habits", a.Habits, Habits},
	}
	for _, c := range checks {
		for _, v := range c.values {
			if !member(c.vocab, v) {
				return fmt.Errorf("%s: %q: %w", c.field, v, ErrUnknownValue)
			}
		}
	}
	singles := []struct {
		field string
		value string
		vocab []string
	}{
		{"diet", a.Diet, Diets},
		{"activity", a.Activity, Activities},
		{"gender", a.Gender, Genders},
		{"workType", a.WorkType, WorkTypes},
	}
	for _, s := range singles {
		if s.value != "" && !member(s.vocab, s.value) {
			return fmt.Errorf("%s: %q: %w", s.field, s.value, ErrUnknownValue)
		}
	}
	return nil
}

func member(vocab []string, v string) bool {
	for _, o := range vocab {
		if o == v {
			return true
		}
	}
	return false
}

func cleanSet(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
