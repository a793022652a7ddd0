package services

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/orydia-app/orydia_api/dto"
	"github.com/orydia-app/orydia_api/model"
	"github.com/orydia-app/orydia_api/shared"
)

type AuthService struct {
	context.DefaultService

	postgres *PostgresService
	jwt      *JWTService
}

const AUTH_SVC = "auth_svc"

func (svc AuthService) Id() string {
	return AUTH_SVC
}

func (svc *AuthService) Start() error {
	svc.postgres = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.jwt = svc.Service(JWT_SVC).(*JWTService)
	return nil
}

// Register creates the account plus its empty stats row.
func (svc *AuthService) Register(req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	if _, err := svc.postgres.GetUserByEmail(req.Email); err == nil {
		return nil, shared.NewConflictError(nil, "email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.NewInternalError(err, "failed to check email")
	}

	if _, err := svc.postgres.GetUserByUsername(req.Username); err == nil {
		return nil, shared.NewConflictError(nil, "username already taken")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.NewInternalError(err, "failed to check username")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, shared.NewInternalError(err, "failed to hash password")
	}

	user := model.User{
		ID:           newID(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         model.RoleUser,
		IsActive:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := svc.postgres.CreateUser(&user); err != nil {
		return nil, shared.NewInternalError(svc.postgres.HandleError(err), "failed to create user")
	}

	emptyList, _ := json.Marshal([]string{})
	stats := model.UserStats{
		ID:            newID(),
		UserID:        user.ID,
		BooksRead:     emptyList,
		TutorialsSeen: emptyList,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if err := svc.postgres.CreateUserStats(&stats); err != nil {
		return nil, shared.NewInternalError(svc.postgres.HandleError(err), "failed to initialize user stats")
	}

	log.WithFields(log.Fields{"user_id": user.ID, "username": user.Username}).Info("User registered")

	return &dto.RegisterResponse{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	}, nil
}

// Login verifies credentials and issues an access token. The error message is
// the same whether the email or the password is wrong.
func (svc *AuthService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := svc.postgres.GetUserByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewUnauthorizedError(nil, "invalid credentials")
		}
		return nil, shared.NewInternalError(err, "failed to look up user")
	}

	if !user.IsActive {
		return nil, shared.NewForbiddenError(nil, "account is disabled")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, shared.NewUnauthorizedError(nil, "invalid credentials")
	}

	token, expiresIn, err := svc.jwt.ToJWT(user.ID, user.Role)
	if err != nil {
		return nil, shared.NewInternalError(err, "failed to sign token")
	}

	now := time.Now()
	_ = svc.postgres.UpdateUser(user.ID, map[string]interface{}{"last_login_at": &now})

	return &dto.LoginResponse{
		UserID:   user.ID,
		Username: user.Username,
		Tokens: dto.TokenPair{
			AccessToken: token,
			ExpiresIn:   expiresIn,
		},
	}, nil
}

// RequiredAuth gates a route behind a valid Bearer token and stashes the
// caller's identity in the request locals.
func (svc *AuthService) RequiredAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := svc.jwt.ExtractTokenFromHeader(c.Get("Authorization"))
		if err != nil {
			return shared.NewUnauthorizedError(err, "missing or malformed token")
		}

		claims, err := svc.jwt.VerifyJWTToken(tokenString)
		if err != nil {
			return shared.NewUnauthorizedError(err, "invalid or expired token")
		}

		c.Locals(shared.UserID, claims.UserID)
		c.Locals(shared.UserRole, claims.Role)
		return c.Next()
	}
}

// RequireRole gates a route behind a role set by RequiredAuth.
func (svc *AuthService) RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		current, _ := c.Locals(shared.UserRole).(string)
		if current != role {
			return shared.NewForbiddenError(nil, "insufficient permissions")
		}
		return c.Next()
	}
}
