package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/talx-hub/gopher-graph/internal/model/user"
	"github.com/talx-hub/gopher-graph/internal/serviceerrs"
)

const TokenExpire = 7 * 24 * time.Hour

// Claims deliberately carry only the user ID and role. The token is
// readable by anyone who base64-decodes it, so nothing secret-adjacent
// (password hash included) belongs in the payload.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64  `json:"uid"`
	Role   string `json:"role"`
}

type JWT struct {
	secret []byte
	now    func() time.Time
}

func NewJWT(secret []byte) *JWT {
	return &JWT{
		secret: secret,
		now:    time.Now,
	}
}

func (j *JWT) Issue(u user.User) (string, error) {
	issuedAt := j.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256,
		Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				IssuedAt:  jwt.NewNumericDate(issuedAt),
				ExpiresAt: jwt.NewNumericDate(issuedAt.Add(TokenExpire)),
			},
			UserID: u.ID,
			Role:   u.Role,
		},
	)
	tokenString, err := token.SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("JWT signing: %w", err)
	}
	return tokenString, nil
}

func (j *JWT) Verify(tokenString string) (Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(
		tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			return j.secret, nil
		},
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return Claims{}, fmt.Errorf("failed to parse token %w", err)
	}
	tokenExpired := claims.ExpiresAt.Before(j.now())
	if tokenExpired {
		return Claims{}, serviceerrs.ErrTokenExpired
	}

	return *claims, nil
}
