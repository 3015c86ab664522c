package services

import (
	"context"
	"errors"
	"testing"

	"github.com/tbourn/go-vitamins-backend/internal/domain"
)

func TestSurveyService_Steps(t *testing.T) {
	svc := &SurveyService{}
	steps := svc.Steps()
	if len(steps) != 9 {
		t.Fatalf("expected the fixed nine-step flow, got %d", len(steps))
	}
}

func TestSurveyService_QuestionCRUD(t *testing.T) {
	svc := &SurveyService{DB: newServiceDB(t, &domain.SurveyQuestion{})}
	ctx := context.Background()

	q, err := svc.CreateQuestion(ctx, &domain.SurveyQuestion{
		Category:     "lifestyle",
		QuestionText: "Сколько часов вы спите?",
		QuestionType: "number",
		Options:      `{"min":3,"max":12,"unit":"часов"}`,
		SortOrder:    1,
	})
	if err != nil {
		t.Fatalf("CreateQuestion: %v", err)
	}
	if q.ID == 0 {
		t.Fatalf("expected assigned ID")
	}

	all, err := svc.Questions(ctx, "")
	if err != nil || len(all) != 1 {
		t.Fatalf("Questions = %d, %v", len(all), err)
	}
	byCat, err := svc.Questions(ctx, "lifestyle")
	if err != nil || len(byCat) != 1 {
		t.Fatalf("Questions by category = %d, %v", len(byCat), err)
	}

	if err := svc.UpdateQuestion(ctx, q.ID, map[string]any{"sort_order": 3}); err != nil {
		t.Fatalf("UpdateQuestion: %v", err)
	}

	if err := svc.DeleteQuestion(ctx, q.ID); err != nil {
		t.Fatalf("DeleteQuestion: %v", err)
	}
	if err := svc.DeleteQuestion(ctx, q.ID); !errors.Is(err, ErrQuestionNotFound) {
		t.Fatalf("double delete: err = %v", err)
	}
}

func TestSurveyService_QuestionValidation(t *testing.T) {
	svc := &SurveyService{DB: newServiceDB(t, &domain.SurveyQuestion{})}
	ctx := context.Background()

	if _, err := svc.CreateQuestion(ctx, &domain.SurveyQuestion{QuestionText: " ", QuestionType: "text"}); !errors.Is(err, ErrInvalidQuestion) {
		t.Fatalf("blank text: err = %v", err)
	}
	if _, err := svc.CreateQuestion(ctx, &domain.SurveyQuestion{QuestionText: "q", QuestionType: "slider"}); !errors.Is(err, ErrInvalidQuestion) {
		t.Fatalf("unknown type: err = %v", err)
	}

	q, _ := svc.CreateQuestion(ctx, &domain.SurveyQuestion{QuestionText: "q", QuestionType: "text"})
	if err := svc.UpdateQuestion(ctx, q.ID, map[string]any{"question_type": "slider"}); !errors.Is(err, ErrInvalidQuestion) {
		t.Fatalf("unknown type update: err = %v", err)
	}
	if err := svc.UpdateQuestion(ctx, 9999, map[string]any{"sort_order": 1}); !errors.Is(err, ErrQuestionNotFound) {
		t.Fatalf("missing question: err = %v", err)
	}
}
