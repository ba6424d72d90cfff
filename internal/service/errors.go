package service

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailExists        = errors.New("email already registered")
	ErrCannotDeleteSelf   = errors.New("cannot delete your own account")

	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrForbidden       = errors.New("not allowed to modify this resource")

	ErrUnsupportedFormat = errors.New("unsupported content format")
	ErrInvalidFilter     = errors.New("invalid filter")

	ErrSessionNotFound = errors.New("editor session not found")
	ErrSessionLimit    = errors.New("too many open editor sessions")
	ErrSessionUnbound  = errors.New("editor session is not attached to a post")
	ErrUnknownFormat   = errors.New("unknown mark, block or alignment")
)
