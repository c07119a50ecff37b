package contact

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shifa-care/shifa_api/internal/apperr"
	"github.com/shifa-care/shifa_api/internal/logging"
	"github.com/shifa-care/shifa_api/internal/notification"
)

func testContactService() *Service {
	return NewService(NewMemoryRepository(), notification.NewLoggerNotifier(logging.Discard()))
}

func TestSubmitStartsAsNew(t *testing.T) {
	svc := testContactService()
	ctx := context.Background()

	created, err := svc.Submit(ctx, Message{
		Name:    "Amina Diallo",
		Email:   "amina@example.com",
		Subject: "Opening hours",
		Body:    "Is the eye clinic open on Saturdays?",
	})
	require.NoError(t, err)

	assert.NotZero(t, created.ID)
	assert.Equal(t, StatusNew, created.Status)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestTriageTransitions(t *testing.T) {
	svc := testContactService()
	ctx := context.Background()

	created, err := svc.Submit(ctx, Message{Name: "A", Email: "a@example.com", Body: "hello"})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, created.ID, "archived")
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.KindValidation, appErr.Kind)

	updated, err := svc.UpdateStatus(ctx, created.ID, StatusRead)
	require.NoError(t, err)
	assert.Equal(t, StatusRead, updated.Status)

	updated, err = svc.UpdateStatus(ctx, created.ID, StatusResolved)
	require.NoError(t, err)
	assert.Equal(t, StatusResolved, updated.Status)
}

func TestListFiltersByStatus(t *testing.T) {
	svc := testContactService()
	ctx := context.Background()

	first, err := svc.Submit(ctx, Message{Name: "A", Email: "a@example.com", Body: "one"})
	require.NoError(t, err)
	_, err = svc.Submit(ctx, Message{Name: "B", Email: "b@example.com", Body: "two"})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, first.ID, StatusResolved)
	require.NoError(t, err)

	items, total, err := svc.List(ctx, Filter{Status: StatusNew, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "two", items[0].Body)
}

func TestDeleteRemovesMessage(t *testing.T) {
	svc := testContactService()
	ctx := context.Background()

	created, err := svc.Submit(ctx, Message{Name: "A", Email: "a@example.com", Body: "one"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.KindNotFound, appErr.Kind)
}
