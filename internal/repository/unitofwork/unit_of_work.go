package unitofwork

import (
	"context"

	"blog-admin-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	PostRepository() contract.PostRepository
	CommentRepository() contract.CommentRepository
}
