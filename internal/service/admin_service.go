package service

import (
	"context"

	"blog-admin-be/internal/dto"
	"blog-admin-be/internal/entity"
	"blog-admin-be/internal/pkg/logger"
	"blog-admin-be/internal/repository/specification"
	"blog-admin-be/internal/repository/unitofwork"
)

const (
	defaultLogLimit = 50
	maxLogLimit     = 500
)

type IAdminService interface {
	Stats(ctx context.Context) (*dto.DashboardStatsResponse, error)
	GetSystemLogs(ctx context.Context, query dto.LogListQuery) ([]logger.LogEntry, error)
	GetLogDetail(ctx context.Context, logId string) (*logger.LogEntry, error)
}

type adminService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewAdminService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IAdminService {
	return &adminService{
		uowFactory: uowFactory,
		logger:     log,
	}
}

func (s *adminService) Stats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	stats := &dto.DashboardStatsResponse{}
	var err error

	if stats.TotalUsers, err = uow.UserRepository().Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalAdmins, err = uow.UserRepository().Count(ctx, specification.UserByRole{Role: string(entity.UserRoleAdmin)}); err != nil {
		return nil, err
	}
	if stats.TotalPosts, err = uow.PostRepository().Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalComments, err = uow.CommentRepository().Count(ctx); err != nil {
		return nil, err
	}

	byStatus, err := uow.PostRepository().CountBy(ctx, "status")
	if err != nil {
		return nil, err
	}
	stats.PublishedPosts = byStatus[string(entity.PostStatusPublished)]
	stats.DraftPosts = byStatus[string(entity.PostStatusDraft)]

	byCategory, err := uow.PostRepository().CountBy(ctx, "category")
	if err != nil {
		return nil, err
	}
	stats.PostsByCategory = make(map[string]int64, len(entity.PostCategories))
	for _, c := range entity.PostCategories {
		stats.PostsByCategory[string(c)] = byCategory[string(c)]
	}

	return stats, nil
}

func (s *adminService) GetSystemLogs(ctx context.Context, query dto.LogListQuery) ([]logger.LogEntry, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = defaultLogLimit
	}
	if limit > maxLogLimit {
		limit = maxLogLimit
	}
	return s.logger.GetLogs(query.Level, limit, query.Offset)
}

func (s *adminService) GetLogDetail(ctx context.Context, logId string) (*logger.LogEntry, error) {
	return s.logger.GetLogById(logId)
}
