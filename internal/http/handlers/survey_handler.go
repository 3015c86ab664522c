// Survey HTTP handlers.
//
// This file exposes REST endpoints for the intake flow and the admin-managed
// question bank:
//   - GET    /survey/steps          (fixed nine-step flow)
//   - GET    /survey/questions      (extended questions, ETag support)
//   - POST   /survey/questions      (admin create)
//   - PATCH  /survey/questions/{id} (admin partial update)
//   - DELETE /survey/questions/{id} (admin delete)
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-vitamins-backend/internal/domain"
	"github.com/tbourn/go-vitamins-backend/internal/services"
	"github.com/tbourn/go-vitamins-backend/internal/survey"
	"github.com/tbourn/go-vitamins-backend/internal/utils"
)

// SurveyService defines survey operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type SurveyService interface {
	// Steps returns the fixed intake flow.
	Steps() []survey.Step
	// Questions returns the admin-managed questions.
	Questions(ctx context.Context, category string) ([]domain.SurveyQuestion, error)
	// CreateQuestion validates and inserts a new question.
	CreateQuestion(ctx context.Context, q *domain.SurveyQuestion) (*domain.SurveyQuestion, error)
	// UpdateQuestion applies a partial column update.
	UpdateQuestion(ctx context.Context, id int, fields map[string]any) error
	// DeleteQuestion removes a question.
	DeleteQuestion(ctx context.Context, id int) error
	// QuestionsStats exposes aggregate metadata for conditional responses.
	QuestionsStats(ctx context.Context) (int64, *time.Time, error)
}

// UpdateQuestionRequest is the JSON payload for partial question updates.
type UpdateQuestionRequest struct {
	Category     *string `json:"category,omitempty"`
	QuestionText *string `json:"question_text,omitempty"`
	QuestionType *string `json:"question_type,omitempty"`
	Options      *string `json:"options,omitempty"`
	SortOrder    *int    `json:"sort_order,omitempty"`
	Required     *bool   `json:"required,omitempty"`
}

func (r UpdateQuestionRequest) fields() map[string]any {
	out := map[string]any{}
	if r.Category != nil {
		out["category"] = *r.Category
	}
	if r.QuestionText != nil {
		out["question_text"] = *r.QuestionText
	}
	if r.QuestionType != nil {
		out["question_type"] = *r.QuestionType
	}
	if r.Options != nil {
		out["options"] = *r.Options
	}
	if r.SortOrder != nil {
		out["sort_order"] = *r.SortOrder
	}
	if r.Required != nil {
		out["required"] = *r.Required
	}
	return out
}

// ListSurveySteps godoc
// @ID          listSurveySteps
// @Summary     List the fixed intake flow
// @Description Returns the ordered nine-step survey with option vocabularies.
// @Tags        Survey
// @Produce     json
//
// @Success     200  {object} map[string][]survey.Step
// @Router      /survey/steps [get]
func (h *Handlers) ListSurveySteps(c *gin.Context) {
	ok(c, http.StatusOK, gin.H{"steps": h.surveySvc.Steps()})
}

// ListSurveyQuestions godoc
// @ID          listSurveyQuestions
// @Summary     List extended survey questions
// @Description Returns the admin-managed question bank in presentation order. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Survey
// @Produce     json
//
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"
// @Param       category       query   string  false "Filter by category"
//
// @Success     200  {object} map[string][]domain.SurveyQuestion
// @Header      200  {string} ETag "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /survey/questions [get]
func (h *Handlers) ListSurveyQuestions(c *gin.Context) {
	ctx := c.Request.Context()

	// ETag pre-check (best effort).
	if count, maxTS, err := h.surveySvc.QuestionsStats(ctx); err == nil {
		var ts int64
		if maxTS != nil {
			ts = maxTS.Unix()
		}
		etag := fmt.Sprintf(`W/"survey:%d:%d"`, count, ts)
		c.Header("ETag", etag)
		if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
			c.Status(http.StatusNotModified)
			return
		}
	}

	items, err := h.surveySvc.Questions(ctx, c.Query("category"))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, gin.H{"questions": items})
}

// CreateSurveyQuestion godoc
// @ID          createSurveyQuestion
// @Summary     Create a survey question (admin)
// @Tags        Survey
// @Accept      json
// @Produce     json
//
// @Param       X-Admin-Token  header  string  true  "Admin token"
// @Param       body           body    domain.SurveyQuestion  true  "Question payload"
//
// @Success     201  {object} domain.SurveyQuestion
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Unauthorized"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /survey/questions [post]
func (h *Handlers) CreateSurveyQuestion(c *gin.Context) {
	var q domain.SurveyQuestion
	if err := c.ShouldBindJSON(&q); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	created, err := h.surveySvc.CreateQuestion(c.Request.Context(), &q)
	switch {
	case err == nil:
		ok(c, http.StatusCreated, created)
	case errors.Is(err, services.ErrInvalidQuestion):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "question needs text and a known question type")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
	}
}

// UpdateSurveyQuestion godoc
// @ID          updateSurveyQuestion
// @Summary     Update a survey question (admin)
// @Tags        Survey
// @Accept      json
//
// @Param       X-Admin-Token  header  string  true  "Admin token"
// @Param       id             path    int     true  "Question ID"
// @Param       body           body    handlers.UpdateQuestionRequest  true  "Fields to update"
//
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Unauthorized"
// @Failure     404  {object} handlers.ErrorResponse "Question not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /survey/questions/{id} [patch]
func (h *Handlers) UpdateSurveyQuestion(c *gin.Context) {
	id := utils.AtoiDefault(c.Param("id"), 0)
	if id <= 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "question id must be a positive integer")
		return
	}
	var req UpdateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	fields := req.fields()
	if len(fields) == 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "no fields to update")
		return
	}
	err := h.surveySvc.UpdateQuestion(c.Request.Context(), id, fields)
	switch {
	case err == nil:
		noContent(c)
	case errors.Is(err, services.ErrInvalidQuestion):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid field values")
	case errors.Is(err, services.ErrQuestionNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "question not found")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}

// DeleteSurveyQuestion godoc
// @ID          deleteSurveyQuestion
// @Summary     Delete a survey question (admin)
// @Tags        Survey
//
// @Param       X-Admin-Token  header  string  true  "Admin token"
// @Param       id             path    int     true  "Question ID"
//
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Unauthorized"
// @Failure     404  {object} handlers.ErrorResponse "Question not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /survey/questions/{id} [delete]
func (h *Handlers) DeleteSurveyQuestion(c *gin.Context) {
	id := utils.AtoiDefault(c.Param("id"), 0)
	if id <= 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "question id must be a positive integer")
		return
	}
	err := h.surveySvc.DeleteQuestion(c.Request.Context(), id)
	switch {
	case err == nil:
		noContent(c)
	case errors.Is(err, services.ErrQuestionNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "question not found")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}
