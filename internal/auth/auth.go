// Package auth implements signup, login and session-token verification.
//
// Sessions are stateless: a login mints an HMAC-signed token carrying the
// account id, transported in the Authorization cookie as "Bearer <token>".
// There is no server-side session table.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/openbbs/bulletin/internal/model"
	"github.com/openbbs/bulletin/internal/store"
)

const (
	// CookieName is the cookie carrying the session token.
	CookieName = "Authorization"

	bearerScheme = "Bearer"
)

var (
	// ErrInvalidCredentials covers both an unknown nickname and a wrong
	// password; callers must not be able to tell the two apart.
	ErrInvalidCredentials = errors.New("nickname or password is incorrect")

	// ErrUnauthenticated covers every session failure: missing cookie, wrong
	// scheme, bad signature, expired token, deleted account. One message for
	// all of them.
	ErrUnauthenticated = errors.New("login required")
)

// Identity is the resolved account behind an authenticated request.
type Identity struct {
	UserID   int64
	Nickname string
}

type sessionClaims struct {
	UserID int64 `json:"userId"`
	jwt.RegisteredClaims
}

type Service struct {
	store      store.Store
	secret     []byte
	tokenTTL   time.Duration
	bcryptCost int
}

// NewService creates the auth service. A tokenTTL <= 0 issues tokens
// without an expiry claim.
func NewService(st store.Store, secret string, tokenTTL time.Duration, bcryptCost int) *Service {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		store:      st,
		secret:     []byte(secret),
		tokenTTL:   tokenTTL,
		bcryptCost: bcryptCost,
	}
}

// Signup hashes the password and creates the account. A taken nickname
// surfaces store.ErrDuplicateNickname.
func (s *Service) Signup(ctx context.Context, nickname, password string) (model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return model.User{}, err
	}
	user := model.User{
		Nickname:     nickname,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	id, err := s.store.CreateUser(ctx, &user)
	if err != nil {
		return model.User{}, err
	}
	user.ID = id
	return user, nil
}

// Authenticate checks the credentials and mints a session token on success.
func (s *Service) Authenticate(ctx context.Context, nickname, password string) (string, error) {
	user, err := s.store.FindUserByNickname(ctx, nickname)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}
	return s.mintToken(user)
}

func (s *Service) mintToken(user model.User) (string, error) {
	claims := sessionClaims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	if s.tokenTTL > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(s.tokenTTL))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// CookieValue formats a freshly issued token for the Authorization cookie.
func CookieValue(token string) string {
	return bearerScheme + " " + token
}

// Resolve establishes the caller identity from the request's Authorization
// cookie. Any failure before the account lookup maps to ErrUnauthenticated;
// the internal cause is logged, never returned.
func (s *Service) Resolve(ctx context.Context, r *http.Request) (Identity, error) {
	raw := ""
	if c, err := r.Cookie(CookieName); err == nil {
		raw = c.Value
	}

	scheme, token, _ := strings.Cut(raw, " ")
	if scheme != bearerScheme || token == "" {
		return Identity{}, ErrUnauthenticated
	}

	claims, err := s.parseToken(token)
	if err != nil {
		log.Debug().Err(err).Msg("session token rejected")
		return Identity{}, ErrUnauthenticated
	}

	user, err := s.store.GetUser(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Identity{}, ErrUnauthenticated
		}
		return Identity{}, err
	}

	return Identity{UserID: user.ID, Nickname: user.Nickname}, nil
}

func (s *Service) parseToken(tokenStr string) (*sessionClaims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	token, err := parser.ParseWithClaims(tokenStr, &sessionClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
