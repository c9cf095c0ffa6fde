package graph

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	passwordvalidator "github.com/wagslane/go-password-validator"

	"github.com/talx-hub/gopher-graph/internal/model"
	"github.com/talx-hub/gopher-graph/internal/model/post"
	"github.com/talx-hub/gopher-graph/internal/model/user"
	"github.com/talx-hub/gopher-graph/internal/pubsub"
	"github.com/talx-hub/gopher-graph/internal/serviceerrs"
	"github.com/talx-hub/gopher-graph/internal/utils/auth"
)

// Resolver is the root of the schema. Every collaborator is injected;
// the package keeps no process-wide state.
type Resolver struct {
	users              user.Repository
	posts              post.Repository
	jwt                *auth.JWT
	broker             *pubsub.Broker
	minPasswordEntropy float64
	log                *slog.Logger
}

func NewResolver(
	users user.Repository,
	posts post.Repository,
	jwt *auth.JWT,
	broker *pubsub.Broker,
	minPasswordEntropy float64,
	log *slog.Logger,
) *Resolver {
	return &Resolver{
		users:              users,
		posts:              posts,
		jwt:                jwt,
		broker:             broker,
		minPasswordEntropy: minPasswordEntropy,
		log:                log,
	}
}

type usersArgs struct {
	Page        int32
	PageSize    int32
	FilterValue string
}

func (r *Resolver) Users(ctx context.Context, args usersArgs) ([]*userResolver, error) {
	const op = "users"

	if args.Page < 1 {
		return nil, serviceerrs.New(serviceerrs.KindValidation, op, "page must be >= 1")
	}
	if args.PageSize < 1 {
		return nil, serviceerrs.New(serviceerrs.KindValidation, op, "pageSize must be >= 1")
	}

	users, err := r.users.List(ctx,
		uint64(args.Page), uint64(args.PageSize), args.FilterValue)
	if err != nil {
		return nil, r.fail(ctx, op, err)
	}
	return r.wrapUsers(users), nil
}

func (r *Resolver) Posts(ctx context.Context) ([]*userResolver, error) {
	const op = "posts"

	users, err := r.users.ListAll(ctx)
	if err != nil {
		return nil, r.fail(ctx, op, err)
	}
	return r.wrapUsers(users), nil
}

type createUserArgs struct {
	Name     string
	Email    string
	Password string
	Role     string
}

func (r *Resolver) CreateUser(ctx context.Context, args createUserArgs) (*userResolver, error) {
	const op = "createUser"

	required := map[string]string{
		"name":     args.Name,
		"email":    args.Email,
		"password": args.Password,
		"role":     args.Role,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			return nil, serviceerrs.New(serviceerrs.KindValidation, op, field+" is required")
		}
	}
	if r.minPasswordEntropy > 0 {
		if err := passwordvalidator.Validate(args.Password, r.minPasswordEntropy); err != nil {
			return nil, serviceerrs.Wrap(serviceerrs.KindValidation, op, err.Error(), err)
		}
	}

	hashed, err := auth.HashPassword(args.Password)
	if err != nil {
		return nil, serviceerrs.Wrap(serviceerrs.KindValidation, op, "unusable password", err)
	}

	created, err := r.users.Create(ctx, &user.User{
		Name:     args.Name,
		Email:    args.Email,
		Password: hashed,
		Role:     args.Role,
	})
	if err != nil {
		return nil, r.fail(ctx, op, err)
	}

	r.broker.Publish(pubsub.TopicUserCreated, created)
	return r.wrapUser(created), nil
}

type updateUserArgs struct {
	ID    int32
	Name  *string
	Email *string
}

func (r *Resolver) UpdateUser(ctx context.Context, args updateUserArgs) (*userResolver, error) {
	const op = "updateUser"

	updated, err := r.users.Update(ctx, int64(args.ID), args.Name, args.Email)
	if err != nil {
		return nil, r.fail(ctx, op, err)
	}
	return r.wrapUser(updated), nil
}

type deleteUserArgs struct {
	ID int32
}

func (r *Resolver) DeleteUser(ctx context.Context, args deleteUserArgs) (*userResolver, error) {
	const op = "deleteUser"

	deleted, err := r.users.Delete(ctx, int64(args.ID))
	if err != nil {
		return nil, r.fail(ctx, op, err)
	}
	return r.wrapUser(deleted), nil
}

type signInArgs struct {
	Email    string
	Password string
}

func (r *Resolver) SignIn(ctx context.Context, args signInArgs) (*authPayloadResolver, error) {
	const op = "signIn"

	u, err := r.users.FindByEmail(ctx, args.Email)
	if err != nil {
		if serviceerrs.KindOf(err) == serviceerrs.KindNotFound {
			return nil, serviceerrs.New(serviceerrs.KindAuth, op, "no such user found")
		}
		return nil, r.fail(ctx, op, err)
	}

	if !auth.VerifyPassword(args.Password, u.Password) {
		return nil, serviceerrs.New(serviceerrs.KindAuth, op, "invalid password")
	}

	token, err := r.jwt.Issue(u)
	if err != nil {
		return nil, r.fail(ctx, op, err)
	}

	return &authPayloadResolver{
		token: token,
		user:  r.wrapUser(u),
	}, nil
}

type createPostArgs struct {
	Title   string
	Content *string
	UserID  int32
}

func (r *Resolver) CreatePost(ctx context.Context, args createPostArgs) (*postResolver, error) {
	const op = "createPost"

	if strings.TrimSpace(args.Title) == "" {
		return nil, serviceerrs.New(serviceerrs.KindValidation, op, "title is required")
	}

	created, err := r.posts.Create(ctx, &post.Post{
		Title:   args.Title,
		Content: args.Content,
		UserID:  int64(args.UserID),
	})
	if err != nil {
		return nil, r.fail(ctx, op, err)
	}
	return r.wrapPost(created), nil
}

// UserCreated streams every user created after the subscription starts.
// The stream stays open until the client disconnects.
func (r *Resolver) UserCreated(ctx context.Context) <-chan *userResolver {
	events := r.broker.Subscribe(ctx, pubsub.TopicUserCreated)
	out := make(chan *userResolver)

	go func() {
		defer close(out)
		for u := range events {
			select {
			case out <- r.wrapUser(u):
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

// fail keeps an already classified error as-is and tags anything else
// as an internal failure, so no error leaves the resolver untyped.
func (r *Resolver) fail(ctx context.Context, op string, err error) error {
	var tagged *serviceerrs.Error
	if errors.As(err, &tagged) {
		if tagged.Kind == serviceerrs.KindInternal {
			r.log.LogAttrs(ctx, slog.LevelError, "resolver failure",
				slog.String("op", op),
				slog.Any(model.KeyLoggerError, err),
			)
		}
		return err
	}

	r.log.LogAttrs(ctx, slog.LevelError, "resolver failure",
		slog.String("op", op),
		slog.Any(model.KeyLoggerError, err),
	)
	return serviceerrs.Wrap(serviceerrs.KindInternal, op, "internal failure", err)
}

func (r *Resolver) wrapUser(u user.User) *userResolver {
	return &userResolver{u: u, root: r}
}

func (r *Resolver) wrapUsers(users []user.User) []*userResolver {
	resolvers := make([]*userResolver, 0, len(users))
	for _, u := range users {
		resolvers = append(resolvers, r.wrapUser(u))
	}
	return resolvers
}

func (r *Resolver) wrapPost(p post.Post) *postResolver {
	return &postResolver{p: p, root: r}
}
