package accounts

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/userhub/userhub/pkg/config"
	apperrors "github.com/userhub/userhub/pkg/errors"
)

const tokenIssuer = "userhub"

// AuthService provides registration, login and token verification. The
// signing secret is injected so tests can run with distinct secrets.
type AuthService struct {
	repo        *Repository
	secret      []byte
	tokenExpiry time.Duration
	bcryptCost  int
}

// NewAuthService creates a new authentication service
func NewAuthService(repo *Repository, cfg *config.AuthConfig) *AuthService {
	return &AuthService{
		repo:        repo,
		secret:      []byte(cfg.JWTSecret),
		tokenExpiry: cfg.TokenExpiry,
		bcryptCost:  cfg.BcryptCost,
	}
}

// TokenClaims represents the JWT claims issued on login
type TokenClaims struct {
	AccountID uint   `json:"account_id"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}

// Register creates a new account with a bcrypt-hashed password
func (as *AuthService) Register(email, password string) (*Account, error) {
	if email == "" {
		return nil, apperrors.NewMissingFieldError("email")
	}
	if password == "" {
		return nil, apperrors.NewMissingFieldError("password")
	}

	// Fast path; concurrent registrations still race at the store and
	// surface the unique-constraint conflict from Create.
	if _, err := as.repo.GetByEmail(email); err == nil {
		return nil, apperrors.NewConflictError("email already registered")
	} else if !apperrors.IsCode(err, apperrors.ErrCodeNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), as.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &Account{
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := as.repo.Create(account); err != nil {
		return nil, err
	}

	return account, nil
}

// Login verifies the credentials and issues a signed token. Unknown email and
// wrong password return the identical error so neither case leaks.
func (as *AuthService) Login(email, password string) (string, error) {
	if email == "" {
		return "", apperrors.NewMissingFieldError("email")
	}
	if password == "" {
		return "", apperrors.NewMissingFieldError("password")
	}

	account, err := as.repo.GetByEmail(email)
	if err != nil {
		if apperrors.IsCode(err, apperrors.ErrCodeNotFound) {
			return "", apperrors.NewUnauthorizedError("invalid email or password")
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return "", apperrors.NewUnauthorizedError("invalid email or password")
	}

	return as.issueToken(account)
}

// issueToken signs a time-limited token binding the account's id and email
func (as *AuthService) issueToken(account *Account) (string, error) {
	now := time.Now()
	claims := &TokenClaims{
		AccountID: account.ID,
		Email:     account.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(account.ID), 10),
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(as.tokenExpiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(as.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken verifies signature and expiry and returns the caller identity
func (as *AuthService) ValidateToken(tokenString string) (*Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return as.secret, nil
	})
	if err != nil {
		return nil, apperrors.NewInvalidTokenError()
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, apperrors.NewInvalidTokenError()
	}

	return &Identity{ID: claims.AccountID, Email: claims.Email}, nil
}
