package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	types "github.com/investfolio/investfolio-backend/internal/domain"
	userrepo "github.com/investfolio/investfolio-backend/internal/data/repos/user"
	"github.com/investfolio/investfolio-backend/internal/platform/ctxutil"
	"github.com/investfolio/investfolio-backend/internal/platform/dbctx"
	"github.com/investfolio/investfolio-backend/internal/platform/logger"
)

var (
	// ErrInvalidCredentials covers both unknown username and wrong password,
	// so login responses never reveal which half failed.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already registered")
	ErrInvalidToken       = errors.New("invalid or malformed token")
)

// TokenClaims is the session token payload. Subject carries the user id.
type TokenClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Register(ctx context.Context, username, password string) (*types.User, error)
	Login(ctx context.Context, username, password string) (string, *types.User, error)
	VerifyToken(tokenString string) (*TokenClaims, error)
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
}

type authService struct {
	log          *logger.Logger
	userRepo     userrepo.UserRepo
	jwtSecretKey []byte
	accessTTL    time.Duration
}

func NewAuthService(
	log *logger.Logger,
	userRepo userrepo.UserRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{
		log:          serviceLog,
		userRepo:     userRepo,
		jwtSecretKey: []byte(jwtSecretKey),
		accessTTL:    accessTTL,
	}
}

func (as *authService) Register(ctx context.Context, username, password string) (*types.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if password == "" {
		return nil, fmt.Errorf("password is required")
	}

	taken, teErr := as.userRepo.UsernameExists(dbctx.Context{Ctx: ctx}, username)
	if teErr != nil {
		return nil, fmt.Errorf("failed to check username: %w", teErr)
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	hash, hErr := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if hErr != nil {
		return nil, fmt.Errorf("failed to hash password: %w", hErr)
	}

	user := &types.User{
		ID:       uuid.New(),
		Username: username,
		Password: string(hash),
	}
	created, cErr := as.userRepo.Create(dbctx.Context{Ctx: ctx}, []*types.User{user})
	if cErr != nil {
		return nil, fmt.Errorf("failed to create user: %w", cErr)
	}
	as.log.Info("user registered", "username", username)
	return created[0], nil
}

func (as *authService) Login(ctx context.Context, username, password string) (string, *types.User, error) {
	username = strings.TrimSpace(username)
	users, gErr := as.userRepo.GetByUsernames(dbctx.Context{Ctx: ctx}, []string{username})
	if gErr != nil {
		return "", nil, fmt.Errorf("failed to fetch user: %w", gErr)
	}
	if len(users) == 0 {
		return "", nil, ErrInvalidCredentials
	}

	user := users[0]
	if cErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); cErr != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, tErr := as.generateAccessToken(user)
	if tErr != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", tErr)
	}
	as.log.Info("user logged in", "username", username)
	return token, user, nil
}

// generateAccessToken mints an HS256 token. A zero accessTTL produces a
// token without an expiry claim.
func (as *authService) generateAccessToken(user *types.User) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  user.ID.String(),
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if as.accessTTL > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(as.accessTTL))
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(as.jwtSecretKey)
}

func (as *authService) VerifyToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return as.jwtSecretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	claims, vErr := as.VerifyToken(tokenString)
	if vErr != nil {
		return ctx, vErr
	}
	userID, pErr := uuid.Parse(claims.Subject)
	if pErr != nil {
		return ctx, fmt.Errorf("%w: bad subject claim", ErrInvalidToken)
	}
	return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{
		UserID:      userID,
		Username:    claims.Username,
		TokenString: tokenString,
	}), nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.accessTTL
}
