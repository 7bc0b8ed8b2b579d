package user

import "errors"

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrOldPasswordMismatch    = errors.New("old password does not match")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
)
