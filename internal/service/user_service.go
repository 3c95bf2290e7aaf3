// Package service implements the business rules of the portfolio API.
// Every operation that requires authentication takes the caller
// identity as an explicit parameter instead of reading ambient
// request state.
package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"portfolio/internal/models"
	"portfolio/internal/repository"
	"portfolio/internal/validation"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// TokenTTL is the validity window of issued bearer tokens.
const TokenTTL = 7 * 24 * time.Hour

// bcryptCost matches the cost factor the admin provisioning script uses.
const bcryptCost = 12

type UserService struct {
	userRepo  repository.UserRepository
	jwtSecret string
}

func NewUserService(userRepo repository.UserRepository, jwtSecret string) *UserService {
	return &UserService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
	}
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateProfileInput struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// Register creates a new user. Self-registration is not supported:
// only an authenticated caller may invoke this.
func (s *UserService) Register(ctx context.Context, caller *models.Caller, in RegisterInput) (*models.User, error) {
	if caller == nil {
		return nil, models.NewUnauthorizedError("Authentication required")
	}

	var fields []models.FieldError
	if err := validation.ValidateRequiredString("name", in.Name, validation.MaxNameLength); err != nil {
		fields = append(fields, models.FieldError{Field: "name", Message: err.Error()})
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		fields = append(fields, models.FieldError{Field: "email", Message: err.Error()})
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		fields = append(fields, models.FieldError{Field: "password", Message: err.Error()})
	}
	role := in.Role
	if role == "" {
		role = models.RoleUser
	}
	if err := validation.ValidateRole(role); err != nil {
		fields = append(fields, models.FieldError{Field: "role", Message: err.Error()})
	}
	if len(fields) > 0 {
		return nil, models.NewFieldValidationError(fields...)
	}

	email := validation.NormalizeEmail(in.Email)
	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("User with this email already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Name:     strings.TrimSpace(in.Name),
		Email:    email,
		Password: string(hashed),
		Role:     role,
		IsActive: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates by email and password and issues a bearer token.
// Unknown email and wrong password produce the same error so accounts
// cannot be enumerated.
func (s *UserService) Login(ctx context.Context, in LoginInput) (string, *models.User, error) {
	var fields []models.FieldError
	if err := validation.ValidateEmail(in.Email); err != nil {
		fields = append(fields, models.FieldError{Field: "email", Message: err.Error()})
	}
	if in.Password == "" {
		fields = append(fields, models.FieldError{Field: "password", Message: "password is required"})
	}
	if len(fields) > 0 {
		return "", nil, models.NewFieldValidationError(fields...)
	}

	user, err := s.userRepo.GetActiveByEmail(ctx, validation.NormalizeEmail(in.Email))
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, models.NewUnauthorizedError("Invalid credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)) != nil {
		return "", nil, models.NewUnauthorizedError("Invalid credentials")
	}

	now := time.Now().UTC()
	user.LastLogin = &now
	if err := s.userRepo.Update(ctx, user); err != nil {
		return "", nil, err
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, models.NewInternalError(err)
	}
	return token, user, nil
}

// VerifyToken parses and validates a bearer token and returns the
// embedded caller identity. Expired tokens are reported distinctly for
// client messaging; authorization treats both cases the same.
func (s *UserService) VerifyToken(tokenString string) (*models.Caller, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, models.NewUnauthorizedError("Token expired.")
		}
		return nil, models.NewUnauthorizedError("Invalid token.")
	}
	if !token.Valid {
		return nil, models.NewUnauthorizedError("Invalid token.")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, models.NewUnauthorizedError("Invalid token.")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, models.NewUnauthorizedError("Invalid token.")
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return nil, models.NewUnauthorizedError("Invalid token.")
	}

	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	return &models.Caller{
		UserID: uint(userID),
		Email:  email,
		Role:   role,
	}, nil
}

// GetProfile returns the caller's own user record.
func (s *UserService) GetProfile(ctx context.Context, caller *models.Caller) (*models.User, error) {
	if caller == nil {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	return s.userRepo.GetByID(ctx, caller.UserID)
}

// UpdateProfile applies a partial update to the caller's own record.
func (s *UserService) UpdateProfile(ctx context.Context, caller *models.Caller, in UpdateProfileInput) (*models.User, error) {
	if caller == nil {
		return nil, models.NewUnauthorizedError("Authentication required")
	}

	var fields []models.FieldError
	if in.Name != nil {
		if err := validation.ValidateRequiredString("name", *in.Name, validation.MaxNameLength); err != nil {
			fields = append(fields, models.FieldError{Field: "name", Message: err.Error()})
		}
	}
	if in.Email != nil {
		if err := validation.ValidateEmail(*in.Email); err != nil {
			fields = append(fields, models.FieldError{Field: "email", Message: err.Error()})
		}
	}
	if len(fields) > 0 {
		return nil, models.NewFieldValidationError(fields...)
	}

	user, err := s.userRepo.GetByID(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		user.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		user.Email = validation.NormalizeEmail(*in.Email)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword rotates the caller's password after checking the
// current one.
func (s *UserService) ChangePassword(ctx context.Context, caller *models.Caller, currentPassword, newPassword string) error {
	if caller == nil {
		return models.NewUnauthorizedError("Authentication required")
	}
	if currentPassword == "" {
		return models.NewFieldValidationError(models.FieldError{
			Field: "currentPassword", Message: "current password is required",
		})
	}
	if err := validation.ValidatePassword(newPassword); err != nil {
		return models.NewFieldValidationError(models.FieldError{
			Field: "newPassword", Message: err.Error(),
		})
	}

	user, err := s.userRepo.GetByID(ctx, caller.UserID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)) != nil {
		return models.NewUnauthorizedError("Current password is incorrect")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return models.NewInternalError(err)
	}
	user.Password = string(hashed)

	return s.userRepo.Update(ctx, user)
}

// generateToken creates a signed JWT embedding the user's identity.
func (s *UserService) generateToken(user *models.User) (string, error) {
	if s.jwtSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   strconv.FormatUint(uint64(user.ID), 10),
		"email": user.Email,
		"role":  user.Role,
		"iss":   "portfolio-api",
		"exp":   now.Add(TokenTTL).Unix(),
		"iat":   now.Unix(),
		"nbf":   now.Unix(),
		"jti":   fmt.Sprintf("%d-%s", now.Unix(), uuid.New().String()[:8]),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
