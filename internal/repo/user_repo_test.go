package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talx-hub/gopher-graph/internal/model/user"
	"github.com/talx-hub/gopher-graph/internal/serviceerrs"
)

func TestUserRepository_Create(t *testing.T) {
	repo, ctx, cancel, _ := setupRepo(t, NewUserRepository)
	defer cancel()

	created, err := repo.Create(ctx, &user.User{
		Name:     "alice",
		Email:    "alice@x.com",
		Password: "hash-1",
		Role:     "user",
	})
	require.NoError(t, err)
	assert.Positive(t, created.ID)
	assert.Equal(t, "alice@x.com", created.Email)
	assert.Equal(t, "hash-1", created.Password)

	_, err = repo.Create(ctx, &user.User{
		Name:     "alice again",
		Email:    "alice@x.com",
		Password: "hash-2",
		Role:     "user",
	})
	require.Error(t, err)
	assert.Equal(t, serviceerrs.KindConflict, serviceerrs.KindOf(err))
}

func TestUserRepository_FindByEmail(t *testing.T) {
	repo, ctx, cancel, pool := setupRepo(t, NewUserRepository)
	defer cancel()
	id := insertTestUser(t, ctx, pool, "bob", "bob@x.com")

	u, err := repo.FindByEmail(ctx, "bob@x.com")
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)
	assert.Equal(t, "bob", u.Name)

	_, err = repo.FindByEmail(ctx, "nobody@x.com")
	require.Error(t, err)
	assert.Equal(t, serviceerrs.KindNotFound, serviceerrs.KindOf(err))
}

func TestUserRepository_FindByID(t *testing.T) {
	repo, ctx, cancel, pool := setupRepo(t, NewUserRepository)
	defer cancel()
	id := insertTestUser(t, ctx, pool, "bob", "bob@x.com")

	u, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "bob@x.com", u.Email)

	_, err = repo.FindByID(ctx, 100500)
	require.Error(t, err)
	assert.Equal(t, serviceerrs.KindNotFound, serviceerrs.KindOf(err))
}

func TestUserRepository_List(t *testing.T) {
	repo, ctx, cancel, pool := setupRepo(t, NewUserRepository)
	defer cancel()
	insertTestUser(t, ctx, pool, "alice", "alice@x.com")
	insertTestUser(t, ctx, pool, "bob", "bob@x.com")
	insertTestUser(t, ctx, pool, "Alicia", "alicia@x.com")

	tests := []struct {
		name       string
		page       uint64
		pageSize   uint64
		filter     string
		wantPeople []string
	}{
		{"all on one page", 1, 10, "", []string{"alice", "bob", "Alicia"}},
		{"filter is case-insensitive", 1, 10, "ali", []string{"alice", "Alicia"}},
		{"first page", 1, 2, "", []string{"alice", "bob"}},
		{"second page", 2, 2, "", []string{"Alicia"}},
		{"page beyond data", 5, 10, "", nil},
		{"no match", 1, 10, "zzz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users, err := repo.List(ctx, tt.page, tt.pageSize, tt.filter)
			require.NoError(t, err)

			var names []string
			for _, u := range users {
				names = append(names, u.Name)
			}
			assert.Equal(t, tt.wantPeople, names)
		})
	}
}

func TestUserRepository_Update(t *testing.T) {
	repo, ctx, cancel, pool := setupRepo(t, NewUserRepository)
	defer cancel()
	id := insertTestUser(t, ctx, pool, "alice", "alice@x.com")

	newName := "alicia"
	updated, err := repo.Update(ctx, id, &newName, nil)
	require.NoError(t, err)
	assert.Equal(t, "alicia", updated.Name)
	assert.Equal(t, "alice@x.com", updated.Email, "nil email must not change")

	newEmail := "alicia@x.com"
	updated, err = repo.Update(ctx, id, nil, &newEmail)
	require.NoError(t, err)
	assert.Equal(t, "alicia", updated.Name)
	assert.Equal(t, "alicia@x.com", updated.Email)

	_, err = repo.Update(ctx, 100500, &newName, nil)
	require.Error(t, err)
	assert.Equal(t, serviceerrs.KindNotFound, serviceerrs.KindOf(err))
}

func TestUserRepository_Delete(t *testing.T) {
	repo, ctx, cancel, pool := setupRepo(t, NewUserRepository)
	defer cancel()
	id := insertTestUser(t, ctx, pool, "alice", "alice@x.com")

	deleted, err := repo.Delete(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "alice@x.com", deleted.Email, "delete returns the prior row")

	_, err = repo.FindByID(ctx, id)
	require.Error(t, err)
	assert.Equal(t, serviceerrs.KindNotFound, serviceerrs.KindOf(err))

	name := "x"
	_, err = repo.Update(ctx, id, &name, nil)
	require.Error(t, err)
	assert.Equal(t, serviceerrs.KindNotFound, serviceerrs.KindOf(err))
}
