package graph

import (
	"context"

	"github.com/talx-hub/gopher-graph/internal/model/user"
)

type userResolver struct {
	u    user.User
	root *Resolver
}

func (r *userResolver) ID() int32 {
	return int32(r.u.ID)
}

func (r *userResolver) Name() string {
	return r.u.Name
}

func (r *userResolver) Email() string {
	return r.u.Email
}

// Password returns the stored bcrypt hash; plaintext is never held past
// the hasher boundary.
func (r *userResolver) Password() string {
	return r.u.Password
}

func (r *userResolver) Role() string {
	return r.u.Role
}

func (r *userResolver) Posts(ctx context.Context) ([]*postResolver, error) {
	posts, err := r.root.posts.ListByUser(ctx, r.u.ID)
	if err != nil {
		return nil, err
	}

	resolvers := make([]*postResolver, 0, len(posts))
	for _, p := range posts {
		resolvers = append(resolvers, r.root.wrapPost(p))
	}
	return resolvers, nil
}

type authPayloadResolver struct {
	token string
	user  *userResolver
}

func (r *authPayloadResolver) Token() string {
	return r.token
}

func (r *authPayloadResolver) User() *userResolver {
	return r.user
}
