package services

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/hackhub/hackhub/internal/logging"
	"github.com/hackhub/hackhub/internal/models"
	"github.com/hackhub/hackhub/internal/store"
)

var jwtSecret = os.Getenv("JWT_SECRET")

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingFields      = errors.New("name, email and password are required")
)

const tokenTTL = 4 * time.Hour

// AuthService handles registration, login and session tokens.
type AuthService struct {
	store   store.Store
	revoked *TokenBlacklist
}

func NewAuthService(st store.Store, revoked *TokenBlacklist) *AuthService {
	return &AuthService{store: st, revoked: revoked}
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

// VerifyPassword compares a plain password with a hashed password
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateJWT generates a JWT token with user ID and role
func GenerateJWT(userID string, role string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}

// Register creates a new user with role "user" and returns it together with
// a session token, so registration doubles as login. Emails are normalized
// to lower case before the uniqueness check.
func (a *AuthService) Register(ctx context.Context, name, email, password string) (models.User, string, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return models.User{}, "", ErrMissingFields
	}

	hashedPassword, err := HashPassword(password)
	if err != nil {
		return models.User{}, "", err
	}

	user := models.User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Password:  hashedPassword,
		Role:      models.RoleUser,
		CreatedAt: time.Now(),
	}

	if err := a.store.InsertUser(ctx, user); err != nil {
		return models.User{}, "", err
	}

	token, err := GenerateJWT(user.ID, user.Role)
	if err != nil {
		return models.User{}, "", err
	}

	logging.Logger.Infof("Registered user %s", user.Email)
	return user.WithoutPassword(), token, nil
}

// Login authenticates a user and returns the credential-free user plus a JWT.
func (a *AuthService) Login(ctx context.Context, email, password string) (models.User, string, error) {
	user, err := a.store.FindUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		// Do not reveal whether the email exists
		return models.User{}, "", ErrInvalidCredentials
	}

	if !VerifyPassword(password, user.Password) {
		return models.User{}, "", ErrInvalidCredentials
	}

	token, err := GenerateJWT(user.ID, user.Role)
	if err != nil {
		return models.User{}, "", err
	}

	logging.Logger.Infof("User %s logged in", user.Email)
	return user.WithoutPassword(), token, nil
}

// Logout revokes the given token until its natural expiry.
func (a *AuthService) Logout(token string) {
	until := time.Now().Add(tokenTTL)
	if parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{}); err == nil {
		if exp, err := parsed.Claims.GetExpirationTime(); err == nil && exp != nil {
			until = exp.Time
		}
	}
	a.revoked.Revoke(token, until)
}

// CurrentUser resolves the session identity for an authenticated request.
func (a *AuthService) CurrentUser(ctx context.Context, userID string) (models.User, error) {
	user, err := a.store.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, err
	}
	return user.WithoutPassword(), nil
}

// EnsureAdmin creates the bootstrap admin account if it does not exist yet.
// No-op when email or password is empty.
func (a *AuthService) EnsureAdmin(ctx context.Context, name, email, password string) error {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil
	}

	if _, err := a.store.FindUserByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, store.ErrUserNotFound) {
		return err
	}

	hashedPassword, err := HashPassword(password)
	if err != nil {
		return err
	}

	admin := models.User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Password:  hashedPassword,
		Role:      models.RoleAdmin,
		CreatedAt: time.Now(),
	}

	if err := a.store.InsertUser(ctx, admin); err != nil {
		return err
	}
	logging.Logger.Infof("Created bootstrap admin %s", admin.Email)
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
