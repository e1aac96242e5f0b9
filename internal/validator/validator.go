// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"personalfinance/internal/models"
)

// DateOnly is the layout of a plain calendar date.
const DateOnly = "2006-01-02"

// dateLayouts are the accepted formats for transaction dates.
var dateLayouts = []string{time.RFC3339, DateOnly}

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("transaction_type", validateTransactionType)
		_ = v.RegisterValidation("not_blank", validateNotBlank)
		_ = v.RegisterValidation("flexible_date", validateFlexibleDate)
	}
}

// ParseDate parses an RFC3339 timestamp or a plain YYYY-MM-DD date and
// returns it in UTC. Stored dates compare as text on sqlite, so every date
// must share one offset.
func ParseDate(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// ParseEndDate parses an upper date bound. A plain YYYY-MM-DD date covers
// the whole day, so it resolves to the last instant of that day.
func ParseEndDate(s string) (time.Time, error) {
	if t, err := time.Parse(DateOnly, s); err == nil {
		return t.Add(24*time.Hour - time.Microsecond), nil
	}
	return ParseDate(s)
}

func validateTransactionType(fl validator.FieldLevel) bool {
	return models.TransactionType(fl.Field().String()).IsValid()
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func validateFlexibleDate(fl validator.FieldLevel) bool {
	_, err := ParseDate(fl.Field().String())
	return err == nil
}
