package user

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	byID   map[string]*User
	nextID int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: make(map[string]*User)}
}

func (f *fakeRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (*User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeRepo) Create(ctx context.Context, u *User) error {
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return ErrEmailAlreadyUsed
		}
		if existing.Profile.StudentID == u.Profile.StudentID {
			return ErrStudentIDTaken
		}
	}
	f.nextID++
	u.ID = fmt.Sprintf("user-%d", f.nextID)
	u.CreatedAt = time.Now()
	cp := *u
	f.byID[u.ID] = &cp
	return nil
}

func (f *fakeRepo) UpdateLastLogin(ctx context.Context, id string, t time.Time) error {
	u, ok := f.byID[id]
	if !ok {
		return ErrNotFound
	}
	u.LastLoginAt = &t
	return nil
}

func (f *fakeRepo) UpdateProfile(ctx context.Context, id string, p Profile) error {
	u, ok := f.byID[id]
	if !ok {
		return ErrNotFound
	}
	u.Profile = p
	return nil
}

func (f *fakeRepo) List(ctx context.Context, filter Filter) ([]*User, int, error) {
	var result []*User
	for _, u := range f.byID {
		cp := *u
		result = append(result, &cp)
	}
	return result, len(result), nil
}

func (f *fakeRepo) Update(ctx context.Context, u *User) error {
	stored, ok := f.byID[u.ID]
	if !ok {
		return ErrNotFound
	}
	*stored = *u
	return nil
}

func (f *fakeRepo) Deactivate(ctx context.Context, id string) error {
	u, ok := f.byID[id]
	if !ok {
		return ErrNotFound
	}
	u.IsActive = false
	return nil
}

func (f *fakeRepo) Count(ctx context.Context) (int, error) {
	return len(f.byID), nil
}

// plainHasher avoids bcrypt cost in unit tests.
type plainHasher struct{}

func (plainHasher) Hash(plain string) (string, error) {
	return "hashed:" + plain, nil
}

func (plainHasher) Compare(hash, plain string) error {
	if hash != "hashed:"+plain {
		return fmt.Errorf("mismatch")
	}
	return nil
}

func newTestService() (Service, *fakeRepo) {
	repo := newFakeRepo()
	return NewService(repo, plainHasher{}), repo
}

func validRegistration() RegisterRequest {
	return RegisterRequest{
		Email:       "alice@example.edu",
		Password:    "correct horse",
		DisplayName: "Alice",
		StudentID:   "B10901001",
		Phone:       "0912345678",
		Department:  "Chemistry",
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user with profile", func(t *testing.T) {
		svc, _ := newTestService()

		u, err := svc.Register(ctx, validRegistration())
		require.NoError(t, err)
		require.True(t, u.IsActive)
		require.False(t, u.IsStaff)
		require.Equal(t, "alice@example.edu", u.Email)
		require.Equal(t, "B10901001", u.Profile.StudentID)
		require.NotEqual(t, "correct horse", u.PasswordHash)
	})

	t.Run("email is normalized", func(t *testing.T) {
		svc, _ := newTestService()

		req := validRegistration()
		req.Email = "  Alice@Example.EDU "
		u, err := svc.Register(ctx, req)
		require.NoError(t, err)
		require.Equal(t, "alice@example.edu", u.Email)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.Register(ctx, validRegistration())
		require.NoError(t, err)

		req := validRegistration()
		req.StudentID = "B10901002"
		_, err = svc.Register(ctx, req)
		require.ErrorIs(t, err, ErrEmailAlreadyUsed)
	})

	t.Run("duplicate student id rejected", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.Register(ctx, validRegistration())
		require.NoError(t, err)

		req := validRegistration()
		req.Email = "bob@example.edu"
		_, err = svc.Register(ctx, req)
		require.ErrorIs(t, err, ErrStudentIDTaken)
	})

	t.Run("short password rejected", func(t *testing.T) {
		svc, _ := newTestService()

		req := validRegistration()
		req.Password = "short"
		_, err := svc.Register(ctx, req)
		require.Error(t, err)
	})

	t.Run("student id required", func(t *testing.T) {
		svc, _ := newTestService()

		req := validRegistration()
		req.StudentID = "   "
		_, err := svc.Register(ctx, req)
		require.Error(t, err)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (Service, *User) {
		t.Helper()
		svc, _ := newTestService()
		u, err := svc.Register(ctx, validRegistration())
		require.NoError(t, err)
		return svc, u
	}

	t.Run("valid credentials", func(t *testing.T) {
		svc, _ := setup(t)

		u, err := svc.Login(ctx, "alice@example.edu", "correct horse")
		require.NoError(t, err)
		require.Equal(t, "alice@example.edu", u.Email)
	})

	t.Run("login records last login time", func(t *testing.T) {
		svc, registered := setup(t)

		_, err := svc.Login(ctx, "alice@example.edu", "correct horse")
		require.NoError(t, err)

		refreshed, err := svc.GetByID(ctx, registered.ID)
		require.NoError(t, err)
		require.NotNil(t, refreshed.LastLoginAt)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, _ := setup(t)

		_, err := svc.Login(ctx, "alice@example.edu", "wrong")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		svc, _ := setup(t)

		_, err := svc.Login(ctx, "nobody@example.edu", "correct horse")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("inactive account", func(t *testing.T) {
		svc, u := setup(t)

		require.NoError(t, svc.Deactivate(ctx, u.ID))

		_, err := svc.Login(ctx, "alice@example.edu", "correct horse")
		require.ErrorIs(t, err, ErrInactiveUser)
	})
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	u, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(ctx, u.ID, Profile{
		StudentID:  u.Profile.StudentID,
		Phone:      "0987654321",
		Department: "Physics",
	})
	require.NoError(t, err)
	require.Equal(t, "0987654321", updated.Profile.Phone)
	require.Equal(t, "Physics", updated.Profile.Department)
	require.Equal(t, "B10901001", updated.Profile.StudentID)
}

func TestAdminUpdate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	u, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)

	t.Run("grant staff", func(t *testing.T) {
		staff := true
		updated, err := svc.Update(ctx, u.ID, UpdateRequest{IsStaff: &staff})
		require.NoError(t, err)
		require.True(t, updated.IsStaff)
	})

	t.Run("blank display name clears it", func(t *testing.T) {
		blank := " "
		updated, err := svc.Update(ctx, u.ID, UpdateRequest{DisplayName: &blank})
		require.NoError(t, err)
		require.Nil(t, updated.DisplayName)
	})

	t.Run("unknown user", func(t *testing.T) {
		staff := true
		_, err := svc.Update(ctx, "missing", UpdateRequest{IsStaff: &staff})
		require.ErrorIs(t, err, ErrNotFound)
	})
}
