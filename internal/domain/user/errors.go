package user

import "errors"

var (
	ErrCallerMissing           = errors.New("authenticated caller is missing")
	ErrAdminPrivilegeRequired  = errors.New("admin privilege required")
	ErrManagerAccessRequired   = errors.New("manager access required")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
	ErrOutOfScope              = errors.New("target is outside the caller's department scope")
)
