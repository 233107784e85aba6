package service

import (
	"context"
	"errors"
	"fmt"
	"newel_classroom/internal/config"
	"newel_classroom/internal/model"
	"newel_classroom/internal/repository"
	"newel_classroom/internal/session"
	"newel_classroom/internal/util"
	"newel_classroom/pkg/monitoring"
	"newel_classroom/pkg/tracing"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	Sessions session.Store
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, sessions session.Store, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Sessions: sessions,
		Cfg:      cfg,
	}
}

// RegisterInput is the raw registration form.
type RegisterInput struct {
	Name      string
	Password  string
	UserType  string
	YearLevel string
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	ctx, span := tracing.Start(ctx, "auth.register")
	defer span.End()

	name := strings.TrimSpace(in.Name)
	if name == "" || in.Password == "" || in.UserType == "" {
		return nil, util.NewValidationError("Name, password and user type are required.")
	}
	role := model.UserRole(in.UserType)
	if !role.Valid() {
		return nil, util.NewValidationError("User type must be Teacher or Student.")
	}

	var yearLevel *int
	if role == model.Student {
		raw := strings.TrimSpace(in.YearLevel)
		if raw == "" {
			return nil, util.NewValidationError("Year level is required for students.")
		}
		year, err := strconv.Atoi(raw)
		if err != nil {
			return nil, util.NewValidationError("Year level must be a whole number.")
		}
		yearLevel = &year
	}

	_, err := s.UserRepo.FindByName(ctx, name)
	if err == nil {
		return nil, duplicateName()
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         name,
		PasswordHash: string(hashedPassword),
		Role:         role,
		YearLevel:    yearLevel,
	}
	if err := s.UserRepo.Create(ctx, user); err != nil {
		// 并发注册同名用户时由唯一索引兜底
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, duplicateName()
		}
		return nil, err
	}
	return user, nil
}

func duplicateName() error {
	return &util.AppError{Kind: util.ErrDuplicateName, Message: "Username already exists. Choose another."}
}

// Authenticate never says which of name or password was wrong.
func (s *AuthService) Authenticate(ctx context.Context, name, password string) (*model.User, error) {
	invalid := &util.AppError{Kind: util.ErrInvalidCredentials, Message: "Invalid username or password."}

	user, err := s.UserRepo.FindByName(ctx, strings.TrimSpace(name))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invalid
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, invalid
	}
	return user, nil
}

// Login authenticates and opens a server-side session. The returned token
// goes into the session cookie.
func (s *AuthService) Login(ctx context.Context, name, password string) (*model.User, string, error) {
	ctx, span := tracing.Start(ctx, "auth.login")
	defer span.End()

	user, err := s.Authenticate(ctx, name, password)
	if err != nil {
		monitoring.LoginAttempts.WithLabelValues("failure").Inc()
		return nil, "", err
	}

	sessionID, err := s.Sessions.Create(ctx, user.ID, s.Cfg.Session.TTL)
	if err != nil {
		return nil, "", fmt.Errorf("create session: %w", err)
	}

	token, err := util.GenerateJWT(user, sessionID, s.Cfg.Session.Secret, s.Cfg.Session.TTL)
	if err != nil {
		_ = s.Sessions.Destroy(ctx, sessionID)
		return nil, "", err
	}

	monitoring.LoginAttempts.WithLabelValues("success").Inc()
	return user, token, nil
}

func (s *AuthService) Logout(ctx context.Context, claims *util.Claims) error {
	if claims == nil || claims.ID == "" {
		return nil
	}
	return s.Sessions.Destroy(ctx, claims.ID)
}

// CurrentUser resolves a session token to its user. Bad signatures, expired
// tokens, revoked sessions and deleted users all yield ErrNotAuthenticated.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*model.User, *util.Claims, error) {
	if token == "" {
		return nil, nil, ErrNotAuthenticated
	}

	claims, err := util.ParseJWT(token, s.Cfg.Session.Secret)
	if err != nil {
		return nil, nil, ErrNotAuthenticated
	}

	userID, err := s.Sessions.Lookup(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return nil, nil, ErrNotAuthenticated
		}
		return nil, nil, err
	}
	if userID != claims.UserID {
		return nil, nil, ErrNotAuthenticated
	}

	user, err := s.UserRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = s.Sessions.Destroy(ctx, claims.ID)
			return nil, nil, ErrNotAuthenticated
		}
		return nil, nil, err
	}
	return user, claims, nil
}
