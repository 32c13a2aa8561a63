package repository

import (
	"testing"

	"github.com/4ndreams/GPS-sub000/internal/app/model"
	"github.com/4ndreams/GPS-sub000/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupUserTest(t *testing.T) (*gorm.DB, UserRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	return testDB, NewUserRepository(testDB)
}

func newTestUser(email, rut string) *model.User {
	return &model.User{
		Email:        email,
		PasswordHash: "hashedpassword",
		Name:         "Camila Rojas",
		RUT:          rut,
		Phone:        "+56 9 1234 5678",
		Role:         model.RoleUser,
	}
}

func TestUserRepository_Create(t *testing.T) {
	_, repo := setupUserTest(t)

	tests := []struct {
		name    string
		user    *model.User
		wantErr bool
	}{
		{
			name:    "Valid user",
			user:    newTestUser("camila@example.com", "12.345.678-5"),
			wantErr: false,
		},
		{
			name:    "Duplicate email",
			user:    newTestUser("camila@example.com", "18.765.432-7"),
			wantErr: true,
		},
		{
			name:    "Duplicate RUT",
			user:    newTestUser("otra@example.com", "12.345.678-5"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.Create(tt.user)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.NotZero(t, tt.user.ID)
			}
		})
	}
}

func TestUserRepository_FindByRUT(t *testing.T) {
	_, repo := setupUserTest(t)

	user := newTestUser("camila@example.com", "76.354.771-K")
	require.NoError(t, repo.Create(user))

	tests := []struct {
		name    string
		rut     string
		wantErr bool
	}{
		{name: "Canonical form", rut: "76.354.771-K", wantErr: false},
		{name: "Unknown RUT", rut: "12.345.678-5", wantErr: true},
		{name: "Non canonical form is not matched", rut: "76354771-K", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, err := repo.FindByRUT(tt.rut)

			if tt.wantErr {
				assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
				assert.Nil(t, found)
			} else {
				require.NoError(t, err)
				assert.Equal(t, user.ID, found.ID)
			}
		})
	}
}

func TestUserRepository_FindByEmail(t *testing.T) {
	_, repo := setupUserTest(t)

	user := newTestUser("camila@example.com", "12.345.678-5")
	require.NoError(t, repo.Create(user))

	found, err := repo.FindByEmail("camila@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.RUT, found.RUT)

	_, err = repo.FindByEmail("nadie@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepository_Search(t *testing.T) {
	_, repo := setupUserTest(t)

	a := newTestUser("camila@example.com", "12.345.678-5")
	b := newTestUser("pedro@example.com", "18.765.432-7")
	b.Name = "Pedro Soto"
	admin := newTestUser("admin@example.com", "9.876.543-3")
	admin.Role = model.RoleAdmin
	for _, u := range []*model.User{a, b, admin} {
		require.NoError(t, repo.Create(u))
	}

	tests := []struct {
		name      string
		filter    UserFilter
		wantTotal int64
	}{
		{name: "No filter", filter: UserFilter{}, wantTotal: 3},
		{name: "By RUT", filter: UserFilter{RUT: "18.765.432-7"}, wantTotal: 1},
		{name: "By name", filter: UserFilter{Query: "soto"}, wantTotal: 1},
		{name: "By email", filter: UserFilter{Query: "CAMILA@"}, wantTotal: 1},
		{name: "By role", filter: UserFilter{Role: model.RoleAdmin}, wantTotal: 1},
		{name: "Page size", filter: UserFilter{PageSize: 2}, wantTotal: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users, total, err := repo.Search(tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, total)
			if tt.filter.PageSize > 0 {
				assert.LessOrEqual(t, len(users), tt.filter.PageSize)
			} else {
				assert.Len(t, users, int(tt.wantTotal))
			}
		})
	}
}

func TestUserRepository_UpdateAndDelete(t *testing.T) {
	_, repo := setupUserTest(t)

	user := newTestUser("camila@example.com", "12.345.678-5")
	require.NoError(t, repo.Create(user))

	user.Name = "Camila Rojas Pérez"
	user.RUT = "20.123.456-5"
	require.NoError(t, repo.Update(user))

	updated, err := repo.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Camila Rojas Pérez", updated.Name)
	assert.Equal(t, "20.123.456-5", updated.RUT)

	require.NoError(t, repo.Delete(user.ID))
	_, err = repo.FindByID(user.ID)
	assert.Error(t, err)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Zero(t, count)
}
