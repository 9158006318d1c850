package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/clienttrack/clienttrack/internal/db/models"
	"github.com/clienttrack/clienttrack/internal/db/repos"
)

// Identity errors
var (
	// ErrEmailExists indicates a registration against an email that already has an account
	ErrEmailExists = errors.New("email already registered")
	// ErrInvalidLogin indicates an unknown email or a wrong password
	ErrInvalidLogin = errors.New("invalid login credentials")
	// ErrWeakPassword indicates the password is shorter than MinPasswordLength
	ErrWeakPassword = errors.New("password must be at least 6 characters")
	// ErrMissingFields indicates a required registration field is empty
	ErrMissingFields = errors.New("missing required fields")
	// ErrInvalidToken indicates a session token that failed validation
	ErrInvalidToken = errors.New("invalid session token")
)

const (
	// MinPasswordLength is the minimum accepted password length
	MinPasswordLength = 6
	// SessionTTL is how long a minted session token stays valid
	SessionTTL = 24 * time.Hour
)

// Principal is the signed-in identity resolved once per request
type Principal struct {
	UserID uint
	Email  string
	Role   string
}

// RegisterRequest carries the fields of a signup
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Company  string `json:"company"`
	Phone    string `json:"phone,omitempty"`
}

// Auth provides email/password identity and session tokens
type Auth struct {
	users  *repos.UserRepository
	secret []byte
}

// NewAuthService creates a new identity service signing sessions with secret
func NewAuthService(users *repos.UserRepository, secret string) *Auth {
	return &Auth{
		users:  users,
		secret: []byte(secret),
	}
}

// Register creates a new client account
func (s *Auth) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	if req.Email == "" || req.Password == "" || req.Name == "" || req.Company == "" {
		return nil, ErrMissingFields
	}
	if len(req.Password) < MinPasswordLength {
		return nil, ErrWeakPassword
	}

	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		Company:      req.Company,
		Phone:        req.Phone,
		Role:         models.DefaultRole,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies an email/password pair and mints a session token
func (s *Auth) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", ErrInvalidLogin
	}
	if err != nil {
		return nil, "", err
	}

	if user.PasswordHash == "" {
		return nil, "", ErrInvalidLogin
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidLogin
	}

	token, err := s.mintToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// EnsureProfile returns the profile for an externally-authenticated email,
// creating it when absent. Name falls back to the email's local part and
// company to "Unknown", matching first-sign-in behavior.
func (s *Auth) EnsureProfile(ctx context.Context, email, name, company, phone string) (*models.User, error) {
	if email == "" {
		return nil, ErrMissingFields
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}
	if company == "" {
		company = "Unknown"
	}

	user := &models.User{
		Name:    name,
		Email:   email,
		Company: company,
		Phone:   phone,
		Role:    models.DefaultRole,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ParseToken validates a session token and returns its principal
func (s *Auth) ParseToken(tokenStr string) (*Principal, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sub, ok := claims["sub"].(float64)
	if !ok {
		return nil, ErrInvalidToken
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	return &Principal{
		UserID: uint(sub),
		Email:  email,
		Role:   role,
	}, nil
}

func (s *Auth) mintToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   float64(user.ID),
		"email": user.Email,
		"role":  user.Role,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(SessionTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}
