package user

import "context"

// User is the identity record. Password always holds the bcrypt hash;
// plaintext never leaves the resolver/hasher boundary.
type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"-"`
	Role     string `json:"role"`
}

type Repository interface {
	List(ctx context.Context, page, pageSize uint64, nameFilter string) ([]User, error)
	ListAll(ctx context.Context) ([]User, error)
	FindByID(ctx context.Context, id int64) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	Create(ctx context.Context, u *User) (User, error)
	Update(ctx context.Context, id int64, name, email *string) (User, error)
	Delete(ctx context.Context, id int64) (User, error)
}
