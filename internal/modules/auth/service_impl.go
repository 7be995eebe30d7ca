package auth

import (
	"context"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/georgemunganga/printa-retail/internal/apperror"
	"github.com/georgemunganga/printa-retail/internal/modules/user"
	"github.com/pkg/errors"
)

type claims struct {
	Role string `json:"role"`
	jwt.StandardClaims
}

type service struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewService signs tokens with secret (HS256); tokens expire after ttl.
func NewService(secret string, ttl time.Duration) Service {
	return &service{key: []byte(secret), ttl: ttl, now: time.Now}
}

func (s *service) IssueToken(_ context.Context, username, role string) (string, error) {
	u, err := user.New(username, role)
	if err != nil {
		return "", err
	}
	if u.Username == "" {
		return "", errors.Wrap(apperror.ErrInvalidArgument, "username is required")
	}
	now := s.now()
	c := &claims{
		Role: string(u.Role),
		StandardClaims: jwt.StandardClaims{
			Subject:   u.Username,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(s.ttl).Unix(),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.key)
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}
	return token, nil
}

func (s *service) ParseToken(_ context.Context, token string) (user.User, error) {
	c := &claims{}
	_, err := jwt.ParseWithClaims(token, c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.key, nil
	})
	if err != nil {
		return user.User{}, errors.Wrapf(apperror.ErrPermissionDenied, "invalid session token: %v", err)
	}
	return user.New(c.Subject, c.Role)
}
