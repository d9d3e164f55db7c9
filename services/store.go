package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"freelance-backend/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Clock is the time source used for every stored timestamp.
type Clock func() time.Time

func systemClock() time.Time {
	return time.Now()
}

// stamp truncates to the precision every supported store keeps.
func stamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// advance returns a timestamp strictly after prev.
func advance(now, prev time.Time) time.Time {
	now = stamp(now)
	if !now.After(prev) {
		return stamp(prev).Add(time.Microsecond)
	}
	return now
}

// uniqueColumns maps a column name, as it appears in driver messages, to the
// JSON field reported to callers.
var uniqueColumns = []struct{ column, field string }{
	{"number_order", "numberOrder"},
	{"client_id", "clientId"},
	{"user_id", "userId"},
	{"email", "email"},
	{"id", "id"},
}

// translateStoreError maps driver and gorm failures onto the error taxonomy so
// store specific shapes never reach callers.
func translateStoreError(err error, entity string) error {
	if err == nil {
		return nil
	}

	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		return err
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return utils.NewNotFoundError(fmt.Sprintf("%s not found", capitalize(entity)))
	case errors.Is(err, gorm.ErrDuplicatedKey), isUniqueViolation(err):
		return utils.NewConflictError(fmt.Sprintf("A %s with this %s already exists", entity, duplicateField(err)))
	}

	logrus.WithError(err).WithField("entity", entity).Error("store operation failed")
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return utils.NewStoreUnavailableError("The store did not respond in time", err)
	}
	return utils.NewStoreUnavailableError(fmt.Sprintf("Failed to access %s store", entity), err)
}

func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "duplicate entry")
}

func duplicateField(err error) string {
	msg := strings.ToLower(err.Error())
	for _, c := range uniqueColumns {
		if strings.Contains(msg, c.column) {
			return c.field
		}
	}
	return "value"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// exists reports whether a row matches query in model's table.
func exists(ctx context.Context, db *gorm.DB, model interface{}, query string, args ...interface{}) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).Model(model).Where(query, args...).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// validationErrors merges struct rule failures with hand written checks.
func validationErrors(rulesErr error, extra []utils.FieldError) error {
	var fields []utils.FieldError
	if rulesErr != nil {
		var appErr *utils.AppError
		if !errors.As(rulesErr, &appErr) {
			return rulesErr
		}
		fields = append(fields, appErr.Fields...)
	}
	fields = append(fields, extra...)
	if len(fields) == 0 {
		return nil
	}
	return utils.NewValidationError(fields...)
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
