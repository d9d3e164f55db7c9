package services

import (
	"testing"

	"freelance-backend/models"
	"freelance-backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProjectService(t *testing.T) (*ProjectService, *stepClock) {
	clock := newStepClock()
	return NewProjectService(newTestDB(t), "FM").WithClock(clock.Now), clock
}

func TestProjectCreateDefaults(t *testing.T) {
	svc, _ := newProjectService(t)

	p, err := svc.Create(ctx, validProject("Logo"))
	require.NoError(t, err)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "FM-150326-001", p.NumberOrder)
	assert.Equal(t, models.StatusToDo, p.Status)
	assert.Equal(t, 1, p.Quantity)
	assert.Equal(t, 150.0, p.TotalPrice)
	assert.Empty(t, p.Comments)
	assert.Equal(t, p.CreatedAt, p.UpdatedAt)

	stored, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.NumberOrder, stored.NumberOrder)
	assert.Equal(t, "2026-04-01", stored.Deadline.UTC().Format("2006-01-02"))
}

func TestProjectCreateNumbersSequentially(t *testing.T) {
	svc, _ := newProjectService(t)

	first, err := svc.Create(ctx, validProject("One"))
	require.NoError(t, err)
	second, err := svc.Create(ctx, validProject("Two"))
	require.NoError(t, err)

	assert.Equal(t, "FM-150326-001", first.NumberOrder)
	assert.Equal(t, "FM-150326-002", second.NumberOrder)

	next, err := svc.NextOrderNumber(ctx, "fm")
	require.NoError(t, err)
	assert.Equal(t, "FM-150326-003", next)

	other, err := svc.NextOrderNumber(ctx, "WEB")
	require.NoError(t, err)
	assert.Equal(t, "WEB-150326-001", other)
}

func TestProjectCreateComputesTotal(t *testing.T) {
	svc, _ := newProjectService(t)

	input := validProject("Banner")
	input.Price = ptr(100.0)
	input.Quantity = ptr(3)
	input.Discount = ptr(50.0)
	p, err := svc.Create(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, utils.ComputeTotalPrice(100, 3, 50), p.TotalPrice)

	input = validProject("Free")
	input.Discount = ptr(1000.0)
	p, err = svc.Create(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, 0.0, p.TotalPrice)
}

func TestProjectCreateDuplicateNumberOrder(t *testing.T) {
	svc, _ := newProjectService(t)

	input := validProject("One")
	input.NumberOrder = "FM-010126-001"
	_, err := svc.Create(ctx, input)
	require.NoError(t, err)

	input.ProjectName = "Two"
	_, err = svc.Create(ctx, input)
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.KindConflict))
	assert.Contains(t, err.Error(), "numberOrder")

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestProjectCreateDuplicateID(t *testing.T) {
	svc, _ := newProjectService(t)

	input := validProject("One")
	input.ID = "p-1"
	_, err := svc.Create(ctx, input)
	require.NoError(t, err)

	_, err = svc.Create(ctx, input)
	assert.True(t, utils.IsKind(err, utils.KindConflict))
}

func TestProjectCreateValidation(t *testing.T) {
	svc, _ := newProjectService(t)

	_, err := svc.Create(ctx, ProjectInput{Status: "paused", Deliverables: "not a url"})
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.KindValidationFailed))
	assert.ElementsMatch(t,
		[]string{"deadline", "status", "projectName", "clientName", "deliverables", "price"},
		fieldNames(t, err))

	input := validProject("Bad quantity")
	input.Quantity = ptr(0)
	input.Price = ptr(-1.0)
	_, err = svc.Create(ctx, input)
	assert.ElementsMatch(t, []string{"price", "quantity"}, fieldNames(t, err))

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestProjectUpdate(t *testing.T) {
	svc, _ := newProjectService(t)
	created, err := svc.Create(ctx, validProject("Logo"))
	require.NoError(t, err)

	update := ProjectUpdate{Quantity: ptr(2), Status: ptr(models.StatusInProgress)}
	updated, err := svc.Update(ctx, created.ID, update)
	require.NoError(t, err)

	assert.Equal(t, 2, updated.Quantity)
	assert.Equal(t, 300.0, updated.TotalPrice)
	assert.Equal(t, models.StatusInProgress, updated.Status)
	assert.Equal(t, created.NumberOrder, updated.NumberOrder)
	assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	again, err := svc.Update(ctx, created.ID, update)
	require.NoError(t, err)
	assert.Equal(t, updated.Quantity, again.Quantity)
	assert.Equal(t, updated.TotalPrice, again.TotalPrice)
	assert.Equal(t, updated.Status, again.Status)
	assert.True(t, again.UpdatedAt.After(updated.UpdatedAt))
}

func TestProjectUpdateKeepsComments(t *testing.T) {
	db := newTestDB(t)
	clock := newStepClock()
	projects := NewProjectService(db, "FM").WithClock(clock.Now)
	comments := NewCommentService(db).WithClock(clock.Now)

	p, err := projects.Create(ctx, validProject("Logo"))
	require.NoError(t, err)
	_, _, err = comments.Append(ctx, p.ID, CommentInput{Content: "hi", AuthorName: "Op", AuthorEmail: "op@example.com"})
	require.NoError(t, err)

	updated, err := projects.Update(ctx, p.ID, ProjectUpdate{Brief: ptr("new brief")})
	require.NoError(t, err)
	assert.Len(t, updated.Comments, 1)
	assert.Equal(t, "new brief", updated.Brief)
}

func TestProjectUpdateConflictsAndMissing(t *testing.T) {
	svc, _ := newProjectService(t)
	first, err := svc.Create(ctx, validProject("One"))
	require.NoError(t, err)
	second, err := svc.Create(ctx, validProject("Two"))
	require.NoError(t, err)

	_, err = svc.Update(ctx, second.ID, ProjectUpdate{NumberOrder: ptr(first.NumberOrder)})
	assert.True(t, utils.IsKind(err, utils.KindConflict))

	_, err = svc.Update(ctx, second.ID, ProjectUpdate{NumberOrder: ptr(second.NumberOrder)})
	assert.NoError(t, err)

	_, err = svc.Update(ctx, "missing", ProjectUpdate{ProjectName: ptr("x")})
	assert.True(t, utils.IsKind(err, utils.KindNotFound))

	_, err = svc.Update(ctx, first.ID, ProjectUpdate{Deadline: ptr("soon")})
	assert.Equal(t, []string{"deadline"}, fieldNames(t, err))
}

func TestProjectDelete(t *testing.T) {
	svc, _ := newProjectService(t)
	p, err := svc.Create(ctx, validProject("Logo"))
	require.NoError(t, err)

	removed, err := svc.Delete(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, removed.ID)
	assert.Equal(t, p.NumberOrder, removed.NumberOrder)

	_, err = svc.Get(ctx, p.ID)
	assert.True(t, utils.IsKind(err, utils.KindNotFound))
	_, err = svc.Delete(ctx, p.ID)
	assert.True(t, utils.IsKind(err, utils.KindNotFound))
}

func TestProjectListNewestFirst(t *testing.T) {
	svc, _ := newProjectService(t)
	for _, name := range []string{"A", "B", "C"} {
		_, err := svc.Create(ctx, validProject(name))
		require.NoError(t, err)
	}

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "C", all[0].ProjectName)
	assert.Equal(t, "A", all[2].ProjectName)
}

func TestProjectDashboardStats(t *testing.T) {
	svc, _ := newProjectService(t)
	for i, status := range []string{models.StatusToDo, models.StatusDone, models.StatusRevision, models.StatusDone} {
		input := validProject("P")
		input.Price = ptr(float64(100 * (i + 1)))
		input.Status = status
		_, err := svc.Create(ctx, input)
		require.NoError(t, err)
	}

	stats, err := svc.DashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, DashboardStats{
		Total:            4,
		Ongoing:          2,
		Completed:        2,
		OngoingRevenue:   400,
		CompletedRevenue: 600,
	}, stats)
}
