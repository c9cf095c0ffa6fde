package graph

import (
	"context"
	"strings"
	"sync"

	"github.com/talx-hub/gopher-graph/internal/model/post"
	"github.com/talx-hub/gopher-graph/internal/model/user"
	"github.com/talx-hub/gopher-graph/internal/serviceerrs"
)

// fakeUserRepo mimics the Postgres-backed repository, including the
// error kinds the real one produces.
type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]user.User
	// failWith, when set, is returned by every call.
	failWith error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		nextID: 1,
		users:  make(map[int64]user.User),
	}
}

func (f *fakeUserRepo) sorted() []user.User {
	users := make([]user.User, 0, len(f.users))
	for id := int64(1); id < f.nextID; id++ {
		if u, ok := f.users[id]; ok {
			users = append(users, u)
		}
	}
	return users
}

func (f *fakeUserRepo) List(_ context.Context, page, pageSize uint64, nameFilter string,
) ([]user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}

	var matched []user.User
	for _, u := range f.sorted() {
		if strings.Contains(strings.ToLower(u.Name), strings.ToLower(nameFilter)) {
			matched = append(matched, u)
		}
	}

	start := (page - 1) * pageSize
	if start >= uint64(len(matched)) {
		return nil, nil
	}
	end := start + pageSize
	if end > uint64(len(matched)) {
		end = uint64(len(matched))
	}
	return matched[start:end], nil
}

func (f *fakeUserRepo) ListAll(_ context.Context) ([]user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.sorted(), nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id int64) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return user.User{}, f.failWith
	}

	u, ok := f.users[id]
	if !ok {
		return user.User{}, serviceerrs.New(serviceerrs.KindNotFound, "findUser", "not found")
	}
	return u, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return user.User{}, f.failWith
	}

	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, serviceerrs.New(serviceerrs.KindNotFound, "findUser", "not found")
}

func (f *fakeUserRepo) Create(_ context.Context, u *user.User) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return user.User{}, f.failWith
	}

	for _, existing := range f.users {
		if existing.Email == u.Email {
			return user.User{}, serviceerrs.New(
				serviceerrs.KindConflict, "createUser", "already exists")
		}
	}

	created := *u
	created.ID = f.nextID
	f.nextID++
	f.users[created.ID] = created
	return created, nil
}

func (f *fakeUserRepo) Update(_ context.Context, id int64, name, email *string,
) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return user.User{}, f.failWith
	}

	u, ok := f.users[id]
	if !ok {
		return user.User{}, serviceerrs.New(serviceerrs.KindNotFound, "updateUser", "not found")
	}
	if name != nil {
		u.Name = *name
	}
	if email != nil {
		u.Email = *email
	}
	f.users[id] = u
	return u, nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id int64) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return user.User{}, f.failWith
	}

	u, ok := f.users[id]
	if !ok {
		return user.User{}, serviceerrs.New(serviceerrs.KindNotFound, "deleteUser", "not found")
	}
	delete(f.users, id)
	return u, nil
}

type fakePostRepo struct {
	mu     sync.Mutex
	nextID int64
	posts  map[int64]post.Post
	users  *fakeUserRepo
}

func newFakePostRepo(users *fakeUserRepo) *fakePostRepo {
	return &fakePostRepo{
		nextID: 1,
		posts:  make(map[int64]post.Post),
		users:  users,
	}
}

func (f *fakePostRepo) Create(_ context.Context, p *post.Post) (post.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.users.mu.Lock()
	_, ownerExists := f.users.users[p.UserID]
	f.users.mu.Unlock()
	if !ownerExists {
		return post.Post{}, serviceerrs.New(
			serviceerrs.KindNotFound, "createPost", "referenced record not found")
	}

	created := *p
	created.ID = f.nextID
	f.nextID++
	f.posts[created.ID] = created
	return created, nil
}

func (f *fakePostRepo) ListByUser(_ context.Context, userID int64) ([]post.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var posts []post.Post
	for id := int64(1); id < f.nextID; id++ {
		if p, ok := f.posts[id]; ok && p.UserID == userID {
			posts = append(posts, p)
		}
	}
	return posts, nil
}
