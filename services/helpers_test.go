package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"freelance-backend/config"
	"freelance-backend/utils"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var baseTime = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, config.Migrate(db))
	return db
}

// stepClock advances one second on every read.
type stepClock struct {
	now time.Time
}

func newStepClock() *stepClock {
	return &stepClock{now: baseTime}
}

func (c *stepClock) Now() time.Time {
	c.now = c.now.Add(time.Second)
	return c.now
}

func fixedCodes(prefix string, min, max int, values ...int) *utils.CodeGenerator {
	i := 0
	return &utils.CodeGenerator{
		Prefix:      prefix,
		Digits:      5,
		Min:         min,
		Max:         max,
		MaxAttempts: 10,
		Intn: func(int) int {
			v := values[i%len(values)]
			i++
			return v
		},
	}
}

func ptr[T any](v T) *T {
	return &v
}

func validProject(name string) ProjectInput {
	return ProjectInput{
		ProjectName: name,
		ClientName:  "Acme Studio",
		ClientPhone: "+15550001",
		Deadline:    "2026-04-01",
		Price:       ptr(150.0),
	}
}

func fieldNames(t *testing.T, err error) []string {
	t.Helper()
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	names := make([]string, 0, len(appErr.Fields))
	for _, f := range appErr.Fields {
		names = append(names, f.Field)
	}
	return names
}

var ctx = context.Background()
