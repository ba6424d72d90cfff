package service

import (
	"context"
	"time"

	"blog-admin-be/internal/dto"
	"blog-admin-be/internal/pkg/logger"
	"blog-admin-be/internal/pkg/serverutils"
	"blog-admin-be/internal/repository/specification"
	"blog-admin-be/internal/repository/unitofwork"
	"blog-admin-be/pkg/events"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Me(ctx context.Context, userId uuid.UUID) (*dto.UserResponse, error)
}

type authService struct {
	uowFactory     unitofwork.RepositoryFactory
	tokenTTL       time.Duration
	eventPublisher events.Publisher
	logger         logger.ILogger
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, tokenTTL time.Duration, eventPublisher events.Publisher, log logger.ILogger) IAuthService {
	return &authService{
		uowFactory:     uowFactory,
		tokenTTL:       tokenTTL,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("AUTH", "Failed login attempt", map[string]interface{}{"email": req.Email})
		return nil, ErrInvalidCredentials
	}

	token, err := serverutils.SignToken(user.Id, string(user.Role), s.tokenTTL)
	if err != nil {
		return nil, err
	}

	s.logger.Info("AUTH", "User logged in", map[string]interface{}{"user_id": user.Id.String()})
	publishEvent(ctx, s.eventPublisher, s.logger, events.UserLogin, map[string]interface{}{
		"user_id": user.Id.String(),
		"name":    user.FullName(),
	})

	return &dto.LoginResponse{
		AccessToken: token,
		User:        *toUserResponse(user),
	}, nil
}

func (s *authService) Me(ctx context.Context, userId uuid.UUID) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return toUserResponse(user), nil
}
