package services

import "mukbang-backend/internal/models"

// Custom errors
type ValidationError struct{ Message string }

func (e *ValidationError) Error() string { return e.Message }

type ConflictError struct{ Message string }

func (e *ConflictError) Error() string { return e.Message }

type NotFoundError struct{ Message string }

func (e *NotFoundError) Error() string { return e.Message }

type UnauthorizedError struct{ Message string }

func (e *UnauthorizedError) Error() string { return e.Message }

type ForbiddenError struct{ Message string }

func (e *ForbiddenError) Error() string { return e.Message }

// QuotaExceededError carries the usage snapshot so handlers can show the
// user how much of today's allowance is gone.
type QuotaExceededError struct {
	Message string
	Usage   models.UsageInfo
}

func (e *QuotaExceededError) Error() string { return e.Message }
