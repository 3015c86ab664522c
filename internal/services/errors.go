// Package services defines the business logic for recommendations, the
// product catalog, orders, and the admin-managed survey. This file
// centralizes common service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer and translation
// into user-facing messages or HTTP status codes should be performed at the
// handler/controller layer.
package services

import "errors"

var (
	// ErrInvalidSurvey is returned when submitted survey answers fail
	// validation (wrong goal count, values outside the option lists).
	// The underlying survey error is joined for detail.
	ErrInvalidSurvey = errors.New("invalid survey answers")

	// ErrUnknownStrategy is returned when a recommendation request names a
	// scoring strategy that does not exist.
	ErrUnknownStrategy = errors.New("unknown scoring strategy")

	// ErrProductNotFound indicates that the requested product does not exist.
	ErrProductNotFound = errors.New("product not found")

	// ErrInvalidProduct is returned when a product payload fails validation
	// (blank name, negative price).
	ErrInvalidProduct = errors.New("invalid product")

	// ErrOrderNotFound indicates that the requested order does not exist.
	ErrOrderNotFound = errors.New("order not found")

	// ErrEmptyOrder is returned when a checkout request contains no items.
	ErrEmptyOrder = errors.New("order has no items")

	// ErrInvalidOrder is returned when a checkout request fails validation
	// (missing customer fields, bad email, non-positive quantities).
	ErrInvalidOrder = errors.New("invalid order")

	// ErrInvalidStatus is returned when an order status update names a value
	// outside the allowed lifecycle.
	ErrInvalidStatus = errors.New("invalid order status")

	// ErrQuestionNotFound indicates that the requested survey question does
	// not exist.
	ErrQuestionNotFound = errors.New("survey question not found")

	// ErrInvalidQuestion is returned when a survey question payload fails
	// validation (blank text, unknown question type).
	ErrInvalidQuestion = errors.New("invalid survey question")
)
