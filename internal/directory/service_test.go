package directory

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shifa-care/shifa_api/internal/apperr"
	"github.com/shifa-care/shifa_api/internal/cache"
)

func testDirectoryService(t *testing.T) *Service {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	return NewService(NewMemoryRepository(), cache.New(rdb, time.Minute))
}

func TestDepartmentLifecycle(t *testing.T) {
	svc := testDirectoryService(t)
	ctx := context.Background()

	created, err := svc.CreateDepartment(ctx, Department{Name: "Cardiology", IsActive: true})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	_, err = svc.CreateDepartment(ctx, Department{Name: "cardiology"})
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.KindConflict, appErr.Kind)

	created.Description = "Heart care"
	updated, err := svc.UpdateDepartment(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, "Heart care", updated.Description)

	require.NoError(t, svc.DeleteDepartment(ctx, created.ID))
	_, err = svc.GetDepartment(ctx, created.ID)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.KindNotFound, appErr.Kind)
}

func TestActiveDepartmentListingInvalidatedOnWrite(t *testing.T) {
	svc := testDirectoryService(t)
	ctx := context.Background()

	first, err := svc.CreateDepartment(ctx, Department{Name: "Cardiology", IsActive: true})
	require.NoError(t, err)

	// Prime the cache.
	listed, err := svc.ListDepartments(ctx, true)
	require.NoError(t, err)
	require.Len(t, listed, 1)

	// A write must not leave the stale listing behind.
	_, err = svc.CreateDepartment(ctx, Department{Name: "Neurology", IsActive: true})
	require.NoError(t, err)

	listed, err = svc.ListDepartments(ctx, true)
	require.NoError(t, err)
	assert.Len(t, listed, 2)

	// Inactive departments stay out of the active listing.
	first.IsActive = false
	_, err = svc.UpdateDepartment(ctx, first)
	require.NoError(t, err)

	listed, err = svc.ListDepartments(ctx, true)
	require.NoError(t, err)
	assert.Len(t, listed, 1)

	all, err := svc.ListDepartments(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCreateDoctorRequiresDepartment(t *testing.T) {
	svc := testDirectoryService(t)
	ctx := context.Background()

	_, err := svc.CreateDoctor(ctx, Doctor{UserID: 1, Specialty: "Cardiologist", DepartmentID: 42})
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.KindNotFound, appErr.Kind)

	dept, err := svc.CreateDepartment(ctx, Department{Name: "Cardiology", IsActive: true})
	require.NoError(t, err)

	doctor, err := svc.CreateDoctor(ctx, Doctor{UserID: 1, Specialty: "Cardiologist", DepartmentID: dept.ID, IsAvailable: true})
	require.NoError(t, err)
	require.NotZero(t, doctor.ID)

	// One profile per identity.
	_, err = svc.CreateDoctor(ctx, Doctor{UserID: 1, Specialty: "Surgeon", DepartmentID: dept.ID})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.KindConflict, appErr.Kind)

	listed, err := svc.ListDoctors(ctx, DoctorFilter{DepartmentID: dept.ID})
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}
