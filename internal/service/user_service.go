package service

import (
	"context"
	"strings"
	"time"

	"blog-admin-be/internal/dto"
	"blog-admin-be/internal/entity"
	"blog-admin-be/internal/pkg/logger"
	"blog-admin-be/internal/pkg/mailer"
	"blog-admin-be/internal/repository/specification"
	"blog-admin-be/internal/repository/unitofwork"
	"blog-admin-be/pkg/events"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var userSortColumns = map[string]string{
	"name":       "name",
	"surname":    "surname",
	"email":      "email",
	"city":       "city",
	"country":    "country",
	"role":       "role",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

type IUserService interface {
	List(ctx context.Context, query dto.UserListQuery) (*dto.PageResponse[dto.UserResponse], error)
	Show(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error)
	Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	Update(ctx context.Context, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	Delete(ctx context.Context, actor entity.Actor, id uuid.UUID) error
}

type userService struct {
	uowFactory     unitofwork.RepositoryFactory
	emailService   mailer.IEmailService
	eventPublisher events.Publisher
	logger         logger.ILogger
}

func NewUserService(
	uowFactory unitofwork.RepositoryFactory,
	emailService mailer.IEmailService,
	eventPublisher events.Publisher,
	log logger.ILogger,
) IUserService {
	return &userService{
		uowFactory:     uowFactory,
		emailService:   emailService,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (s *userService) List(ctx context.Context, query dto.UserListQuery) (*dto.PageResponse[dto.UserResponse], error) {
	page, pageSize := pageBounds(query.Page, query.PageSize)

	filters := []specification.Specification{}
	if q := strings.TrimSpace(query.Q); q != "" {
		filters = append(filters, specification.UserSearch(q))
	}
	if query.Role != "" {
		filters = append(filters, specification.UserByRole{Role: query.Role})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	total, err := uow.UserRepository().Count(ctx, filters...)
	if err != nil {
		return nil, err
	}

	specs := append([]specification.Specification{}, filters...)
	if column, ok := userSortColumns[query.Sort]; ok {
		specs = append(specs, specification.OrderBy{Field: column, Desc: query.Desc})
	} else {
		specs = append(specs, specification.NewestFirst{})
	}
	specs = append(specs, specification.Pagination{Limit: pageSize, Offset: (page - 1) * pageSize})

	users, err := uow.UserRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	items := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, *toUserResponse(u))
	}
	return &dto.PageResponse[dto.UserResponse]{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *userService) Show(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return toUserResponse(user), nil
}

func (s *userService) Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := entity.UserRole(req.Role)
	if role == "" {
		role = entity.UserRoleUser
	}
	now := time.Now()
	user := &entity.User{
		Id:           uuid.New(),
		Name:         req.Name,
		Surname:      req.Surname,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		Address:      req.Address,
		City:         req.City,
		ZipCode:      req.ZipCode,
		Country:      req.Country,
		Province:     req.Province,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: user.Email})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}
	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("USER", "User created", map[string]interface{}{
		"user_id": user.Id.String(),
		"role":    string(user.Role),
	})

	if s.emailService != nil {
		if err := s.emailService.SendWelcome(user.Email, user.FullName()); err != nil {
			s.logger.Warn("USER", "Failed to send welcome email", map[string]interface{}{
				"user_id": user.Id.String(),
				"error":   err.Error(),
			})
		}
	}

	publishEvent(ctx, s.eventPublisher, s.logger, events.UserCreated, map[string]interface{}{
		"user_id": user.Id.String(),
		"name":    user.FullName(),
	})

	return toUserResponse(user), nil
}

func (s *userService) Update(ctx context.Context, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	var hash *string
	if req.Password != nil {
		h, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		hs := string(h)
		hash = &hs
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	repo := uow.UserRepository()
	user, err := repo.FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email != user.Email {
			existing, err := repo.FindOne(ctx, specification.ByEmail{Email: email})
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, ErrEmailExists
			}
			user.Email = email
		}
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Surname != nil {
		user.Surname = *req.Surname
	}
	if req.Address != nil {
		user.Address = *req.Address
	}
	if req.City != nil {
		user.City = *req.City
	}
	if req.ZipCode != nil {
		user.ZipCode = *req.ZipCode
	}
	if req.Country != nil {
		user.Country = *req.Country
	}
	if req.Province != nil {
		user.Province = *req.Province
	}
	if req.Role != nil {
		user.Role = entity.UserRole(*req.Role)
	}
	if hash != nil {
		user.PasswordHash = *hash
	}
	user.UpdatedAt = time.Now()

	if err := repo.Update(ctx, user); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	publishEvent(ctx, s.eventPublisher, s.logger, events.UserUpdated, map[string]interface{}{
		"user_id": user.Id.String(),
		"name":    user.FullName(),
	})

	return toUserResponse(user), nil
}

func (s *userService) Delete(ctx context.Context, actor entity.Actor, id uuid.UUID) error {
	if actor.Id == id {
		return ErrCannotDeleteSelf
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if err := uow.UserRepository().Delete(ctx, id); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.logger.Info("USER", "User deleted", map[string]interface{}{
		"user_id":    id.String(),
		"deleted_by": actor.Id.String(),
	})
	publishEvent(ctx, s.eventPublisher, s.logger, events.UserDeleted, map[string]interface{}{
		"user_id": id.String(),
		"name":    user.FullName(),
	})
	return nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	resp := &dto.UserResponse{
		Id:        u.Id,
		Name:      u.Name,
		Surname:   u.Surname,
		Email:     u.Email,
		Address:   u.Address,
		City:      u.City,
		ZipCode:   u.ZipCode,
		Country:   u.Country,
		Province:  u.Province,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
	if !u.UpdatedAt.IsZero() {
		updatedAt := u.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}
