// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// admin-managed SurveyQuestion model.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-vitamins-backend/internal/domain"
)

// ListSurveyQuestions returns survey questions in presentation order
// (category, then sort order, then ID for a stable tiebreak). An empty
// category matches everything.
func ListSurveyQuestions(ctx context.Context, db *gorm.DB, category string) ([]domain.SurveyQuestion, error) {
	q := db.WithContext(ctx).Model(&domain.SurveyQuestion{})
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var out []domain.SurveyQuestion
	err := q.Order("category asc, sort_order asc, id asc").Find(&out).Error
	return out, err
}

// GetSurveyQuestion fetches a single question by ID, or ErrNotFound if missing.
func GetSurveyQuestion(ctx context.Context, db *gorm.DB, id int) (*domain.SurveyQuestion, error) {
	var sq domain.SurveyQuestion
	if err := db.WithContext(ctx).First(&sq, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &sq, nil
}

// CreateSurveyQuestion inserts a new question. The persisted row (with its
// assigned ID) is returned.
func CreateSurveyQuestion(ctx context.Context, db *gorm.DB, sq *domain.SurveyQuestion) (*domain.SurveyQuestion, error) {
	if err := db.WithContext(ctx).Create(sq).Error; err != nil {
		return nil, err
	}
	return sq, nil
}

// UpdateSurveyQuestion applies a partial update to the question identified by
// id. The fields map uses column names. If no rows are affected, it returns
// ErrNotFound.
func UpdateSurveyQuestion(ctx context.Context, db *gorm.DB, id int, fields map[string]any) error {
	res := db.WithContext(ctx).
		Model(&domain.SurveyQuestion{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteSurveyQuestion soft-deletes the question identified by id. If no rows
// are affected, it returns ErrNotFound.
func DeleteSurveyQuestion(ctx context.Context, db *gorm.DB, id int) error {
	res := db.WithContext(ctx).Delete(&domain.SurveyQuestion{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
