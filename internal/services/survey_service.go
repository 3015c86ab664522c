// Package services – SurveyService
//
// This file implements SurveyService, which serves the fixed intake flow to
// clients and manages the admin-curated extended question bank. The fixed
// flow is code-defined (see internal/survey); only the extended questions
// live in the database.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-vitamins-backend/internal/domain"
	"github.com/tbourn/go-vitamins-backend/internal/repo"
	"github.com/tbourn/go-vitamins-backend/internal/survey"
)

// questionTypes are the admissible QuestionType values for admin-managed
// questions, shared with the fixed flow's vocabulary.
var questionTypes = map[string]struct{}{
	survey.TypeText:         {},
	survey.TypeTextarea:     {},
	survey.TypeNumber:       {},
	survey.TypeSingleChoice: {},
	survey.TypeMultiChoice:  {},
}

// SurveyService provides survey flow and question bank operations.
type SurveyService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// Steps returns the fixed intake flow in presentation order.
func (s *SurveyService) Steps() []survey.Step {
	return survey.Steps()
}

// Questions returns the admin-managed questions, optionally filtered by
// category, in presentation order.
func (s *SurveyService) Questions(ctx context.Context, category string) ([]domain.SurveyQuestion, error) {
	return repo.ListSurveyQuestions(ctx, s.DB, category)
}

// CreateQuestion validates and inserts a new question.
func (s *SurveyService) CreateQuestion(ctx context.Context, q *domain.SurveyQuestion) (*domain.SurveyQuestion, error) {
	q.QuestionText = strings.TrimSpace(q.QuestionText)
	if q.QuestionText == "" {
		return nil, ErrInvalidQuestion
	}
	if _, ok := questionTypes[q.QuestionType]; !ok {
		return nil, ErrInvalidQuestion
	}
	return repo.CreateSurveyQuestion(ctx, s.DB, q)
}

// UpdateQuestion applies a partial column update to a question.
func (s *SurveyService) UpdateQuestion(ctx context.Context, id int, fields map[string]any) error {
	if text, ok := fields["question_text"].(string); ok && strings.TrimSpace(text) == "" {
		return ErrInvalidQuestion
	}
	if qt, ok := fields["question_type"].(string); ok {
		if _, known := questionTypes[qt]; !known {
			return ErrInvalidQuestion
		}
	}
	err := repo.UpdateSurveyQuestion(ctx, s.DB, id, fields)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrQuestionNotFound
	}
	return err
}

// DeleteQuestion soft-deletes a question.
func (s *SurveyService) DeleteQuestion(ctx context.Context, id int) error {
	err := repo.DeleteSurveyQuestion(ctx, s.DB, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrQuestionNotFound
	}
	return err
}

// QuestionsStats exposes question bank aggregate metadata for conditional
// responses.
func (s *SurveyService) QuestionsStats(ctx context.Context) (int64, *time.Time, error) {
	return repo.SurveyQuestionsStats(ctx, s.DB)
}
