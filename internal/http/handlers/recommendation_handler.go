// Recommendation HTTP handlers.
//
// This file exposes REST endpoints for the recommendation engine:
//   - POST   /recommendations                 (score a completed survey)
//   - GET    /recommendations/strategies      (list accepted strategies)
//   - GET    /recommendations/history         (recent runs, newest first)
//   - DELETE /recommendations/history/{id}    (remove one run)
//   - DELETE /recommendations/history         (clear)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"

	"github.com/tbourn/go-vitamins-backend/internal/domain"
	"github.com/tbourn/go-vitamins-backend/internal/history"
	"github.com/tbourn/go-vitamins-backend/internal/services"
)

// localeMatcher negotiates the display locale for history timestamps.
// Russian is first because it is the storefront default.
var localeMatcher = language.NewMatcher([]language.Tag{language.Russian, language.English})

//
// Service contracts (context-aware)
//

// RecommendationService defines the scoring operations consumed by HTTP
// handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type RecommendationService interface {
	// Recommend scores a survey with the named strategy ("rules" when empty).
	Recommend(ctx context.Context, answers domain.SurveyAnswers, strategy string) (*services.RecommendationResult, error)
	// Strategies lists the accepted strategy names, default first.
	Strategies() []string
	// ListHistory returns recent runs, newest first.
	ListHistory(ctx context.Context) []domain.HistoryEntry
	// DeleteHistory removes one run by id.
	DeleteHistory(ctx context.Context, id int64) error
	// ClearHistory drops all recorded runs.
	ClearHistory(ctx context.Context) error
}

//
// DTOs
//

// RecommendRequest is the JSON payload for a scoring run. Strategy is
// optional and defaults to the rule table.
type RecommendRequest struct {
	Survey   domain.SurveyAnswers `json:"survey"`
	Strategy string               `json:"strategy,omitempty" example:"rules"`
}

// HistoryItem is one recorded run plus a display-ready timestamp label
// ("Только что", "2 ч назад", "10 июн", ...).
type HistoryItem struct {
	domain.HistoryEntry
	CreatedLabel string `json:"created_label"`
}

// HistoryResponse wraps the recorded runs.
type HistoryResponse struct {
	History []HistoryItem `json:"history"`
}

//
// Handlers
//

// Recommend godoc
// @ID          recommend
// @Summary     Score a completed survey
// @Description Runs the selected scoring strategy over the current catalog and returns ranked recommendations with synergy pairings.
// @Tags        Recommendations
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       body       body    handlers.RecommendRequest  true  "Survey answers and optional strategy"
//
// @Success     200  {object}  services.RecommendationResult
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid survey or unknown strategy"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /recommendations [post]
func (h *Handlers) Recommend(c *gin.Context) {
	var req RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	res, err := h.recSvc.Recommend(c.Request.Context(), req.Survey, req.Strategy)
	switch {
	case err == nil:
		ok(c, http.StatusOK, res)
	case errors.Is(err, services.ErrInvalidSurvey):
		fail(c, http.StatusBadRequest, ErrCodeInvalidSurvey, err.Error())
	case errors.Is(err, services.ErrUnknownStrategy):
		fail(c, http.StatusBadRequest, ErrCodeUnknownStrategy, "strategy must be one of: "+strings.Join(h.recSvc.Strategies(), ", "))
	default:
		fail(c, http.StatusInternalServerError, ErrCodeRecommendFailed, err.Error())
	}
}

// ListStrategies godoc
// @ID          listStrategies
// @Summary     List scoring strategies
// @Description Returns the strategy names accepted by the recommendation endpoint, default first.
// @Tags        Recommendations
// @Produce     json
//
// @Success     200  {object}  map[string][]string
// @Router      /recommendations/strategies [get]
func (h *Handlers) ListStrategies(c *gin.Context) {
	ok(c, http.StatusOK, gin.H{"strategies": h.recSvc.Strategies()})
}

// ListHistory godoc
// @ID          listHistory
// @Summary     List recommendation history
// @Description Returns the most recent scoring runs (capped at 10), newest first. Timestamp labels follow the locale query param or Accept-Language (ru default).
// @Tags        Recommendations
// @Produce     json
//
// @Param       locale  query  string  false "Display locale for timestamps"  Enums(ru, en)
//
// @Success     200  {object}  handlers.HistoryResponse
// @Router      /recommendations/history [get]
func (h *Handlers) ListHistory(c *gin.Context) {
	tag, _ := language.MatchStrings(localeMatcher, c.Query("locale"), c.GetHeader("Accept-Language"))
	f := history.Formatter{Locale: tag}

	entries := h.recSvc.ListHistory(c.Request.Context())
	items := make([]HistoryItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, HistoryItem{HistoryEntry: e, CreatedLabel: f.Format(e.CreatedAt)})
	}
	ok(c, http.StatusOK, HistoryResponse{History: items})
}

// DeleteHistoryEntry godoc
// @ID          deleteHistoryEntry
// @Summary     Delete one history entry
// @Description Removes a recorded scoring run by id. Deleting an absent id succeeds.
// @Tags        Recommendations
//
// @Param       id  path  int  true  "History entry ID"
//
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /recommendations/history/{id} [delete]
func (h *Handlers) DeleteHistoryEntry(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "history id must be an integer")
		return
	}
	if err := h.recSvc.DeleteHistory(c.Request.Context(), id); err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	noContent(c)
}

// ClearHistory godoc
// @ID          clearHistory
// @Summary     Clear recommendation history
// @Description Removes all recorded scoring runs.
// @Tags        Recommendations
//
// @Success     204  {string} string "No Content"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /recommendations/history [delete]
func (h *Handlers) ClearHistory(c *gin.Context) {
	if err := h.recSvc.ClearHistory(c.Request.Context()); err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	noContent(c)
}
