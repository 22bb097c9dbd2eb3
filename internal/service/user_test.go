package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/internal/apperr"
	"github.com/taskdeck/taskdeck/internal/model"
	"github.com/taskdeck/taskdeck/internal/repository/memstore"
)

func seedUser(t *testing.T, store *memstore.Store, name, email string) int64 {
	t.Helper()
	user := &model.User{Name: name, Email: email}
	require.NoError(t, store.CreateUser(context.Background(), user))
	return user.ID
}

func seedTask(t *testing.T, store *memstore.Store, ownerID int64, status model.TaskStatus, dueAt time.Time) int64 {
	t.Helper()
	task := &model.Task{
		Title:     "seeded task",
		CreatedAt: time.Now().UTC(),
		DueAt:     dueAt,
		Status:    status,
		OwnerID:   ownerID,
	}
	require.NoError(t, store.CreateTask(context.Background(), task))
	return task.ID
}

func TestUserService_CreateUser(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		input     CreateUserInput
		seed      func(t *testing.T, store *memstore.Store)
		assertErr func(t *testing.T, err error)
	}{
		{
			name:  "valid user",
			input: CreateUserInput{Name: "Ana Torres", Email: "ana@example.com"},
		},
		{
			name:  "invalid email format",
			input: CreateUserInput{Name: "Ana", Email: "not-an-email"},
			assertErr: func(t *testing.T, err error) {
				assert.True(t, apperr.IsInvalid(err))
				assert.EqualError(t, err, "invalid email format")
			},
		},
		{
			name:  "empty name",
			input: CreateUserInput{Name: "   ", Email: "ana@example.com"},
			assertErr: func(t *testing.T, err error) {
				assert.True(t, apperr.IsInvalid(err))
				assert.EqualError(t, err, "name is required")
			},
		},
		{
			name:  "duplicate email",
			input: CreateUserInput{Name: "Ana", Email: "taken@example.com"},
			seed: func(t *testing.T, store *memstore.Store) {
				seedUser(t, store, "First", "taken@example.com")
			},
			assertErr: func(t *testing.T, err error) {
				assert.True(t, apperr.IsConflict(err))
				assert.EqualError(t, err, "email already in use")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memstore.New()
			svc := NewUserService(store)
			if tt.seed != nil {
				tt.seed(t, store)
			}

			view, err := svc.CreateUser(ctx, tt.input)

			if tt.assertErr != nil {
				tt.assertErr(t, err)
				assert.Nil(t, view)
				return
			}

			require.NoError(t, err)
			assert.NotZero(t, view.ID)
			assert.Equal(t, tt.input.Name, view.Name)
			assert.Equal(t, tt.input.Email, view.Email)

			// The returned ID must be usable in GetUser.
			got, err := svc.GetUser(ctx, view.ID)
			require.NoError(t, err)
			assert.Equal(t, view, got)
		})
	}
}

func TestUserService_GetUser_NotFound(t *testing.T) {
	svc := NewUserService(memstore.New())

	_, err := svc.GetUser(context.Background(), 42)

	assert.True(t, apperr.IsNotFound(err))
	assert.EqualError(t, err, "user 42 not found")
}

func TestUserService_ListUsers(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	svc := NewUserService(store)

	seedUser(t, store, "Ana", "ana@example.com")
	seedUser(t, store, "Bruno", "bruno@example.com")

	users, err := svc.ListUsers(ctx)

	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Ana", users[0].Name)
	assert.Equal(t, "Bruno", users[1].Name)
}

func TestUserService_UpdateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		svc := NewUserService(memstore.New())

		err := svc.UpdateUser(ctx, 7, CreateUserInput{Name: "Ana", Email: "ana@example.com"})

		assert.True(t, apperr.IsNotFound(err))
		assert.EqualError(t, err, "user 7 not found")
	})

	t.Run("email held by another user", func(t *testing.T) {
		store := memstore.New()
		svc := NewUserService(store)
		seedUser(t, store, "Ana", "ana@example.com")
		id := seedUser(t, store, "Bruno", "bruno@example.com")

		err := svc.UpdateUser(ctx, id, CreateUserInput{Name: "Bruno", Email: "ana@example.com"})

		assert.True(t, apperr.IsConflict(err))
		assert.EqualError(t, err, "email already in use")
	})

	t.Run("keeping own email is not a conflict", func(t *testing.T) {
		store := memstore.New()
		svc := NewUserService(store)
		id := seedUser(t, store, "Ana", "ana@example.com")

		err := svc.UpdateUser(ctx, id, CreateUserInput{Name: "Ana Torres", Email: "ana@example.com"})

		require.NoError(t, err)
		got, err := svc.GetUser(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Ana Torres", got.Name)
	})
}

func TestUserService_DeleteUser(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		svc := NewUserService(memstore.New())

		err := svc.DeleteUser(ctx, 9)

		assert.True(t, apperr.IsNotFound(err))
	})

	t.Run("blocked while owning tasks of any status", func(t *testing.T) {
		store := memstore.New()
		svc := NewUserService(store)
		id := seedUser(t, store, "Ana", "ana@example.com")
		seedTask(t, store, id, model.StatusCompleted, time.Now().Add(-time.Hour))

		err := svc.DeleteUser(ctx, id)

		assert.True(t, apperr.IsConflict(err))
		assert.EqualError(t, err, "user has assigned tasks")
	})

	t.Run("removes user with zero tasks", func(t *testing.T) {
		store := memstore.New()
		svc := NewUserService(store)
		id := seedUser(t, store, "Ana", "ana@example.com")

		require.NoError(t, svc.DeleteUser(ctx, id))

		_, err := svc.GetUser(ctx, id)
		assert.True(t, apperr.IsNotFound(err))
	})
}

func TestUserService_GetUserStatistics(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		svc := NewUserService(memstore.New())

		_, err := svc.GetUserStatistics(ctx, 5)

		assert.True(t, apperr.IsNotFound(err))
	})

	t.Run("zero tasks yields zero percentage", func(t *testing.T) {
		store := memstore.New()
		svc := NewUserService(store)
		id := seedUser(t, store, "Ana", "ana@example.com")

		stats, err := svc.GetUserStatistics(ctx, id)

		require.NoError(t, err)
		assert.Equal(t, 0, stats.TotalTasks)
		assert.Equal(t, 0, stats.CompletedTasks)
		assert.Zero(t, stats.CompletionPercentage)
	})

	t.Run("rounds to two decimals", func(t *testing.T) {
		store := memstore.New()
		svc := NewUserService(store)
		id := seedUser(t, store, "Ana", "ana@example.com")

		due := time.Now().Add(time.Hour)
		seedTask(t, store, id, model.StatusCompleted, due)
		seedTask(t, store, id, model.StatusPending, due)
		seedTask(t, store, id, model.StatusInProgress, due)

		stats, err := svc.GetUserStatistics(ctx, id)

		require.NoError(t, err)
		assert.Equal(t, 3, stats.TotalTasks)
		assert.Equal(t, 1, stats.CompletedTasks)
		assert.InDelta(t, 33.33, stats.CompletionPercentage, 1e-9)
	})

	t.Run("half rounds to even", func(t *testing.T) {
		store := memstore.New()
		svc := NewUserService(store)
		id := seedUser(t, store, "Ana", "ana@example.com")

		// 1/32 = 3.125%; half-to-even at two decimals gives 3.12.
		due := time.Now().Add(time.Hour)
		seedTask(t, store, id, model.StatusCompleted, due)
		for i := 0; i < 31; i++ {
			seedTask(t, store, id, model.StatusInProgress, due)
		}

		stats, err := svc.GetUserStatistics(ctx, id)

		require.NoError(t, err)
		assert.InDelta(t, 3.12, stats.CompletionPercentage, 1e-9)
	})
}

func TestRoundTwoDecimals(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{100, 100},
		{33.333333, 33.33},
		{66.666666, 66.67},
		{3.125, 3.12},
		{3.375, 3.38},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v", tt.in), func(t *testing.T) {
			assert.InDelta(t, tt.want, roundTwoDecimals(tt.in), 1e-9)
		})
	}
}
