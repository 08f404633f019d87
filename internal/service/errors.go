package service

import "errors"

// 服务层哨兵错误，由 handler 层通过 errors.Is 映射为响应码。
var (
	ErrUnauthorized      = errors.New("unauthorized")
	ErrUserBlocked       = errors.New("user is blocked")
	ErrNoValidItems      = errors.New("no valid items in order")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrPaymentFailed     = errors.New("payment failed")
	ErrOrderCreateFailed = errors.New("order create failed")
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidOrderState = errors.New("invalid order status")

	ErrProductNotFound     = errors.New("product not found")
	ErrProductInvalid      = errors.New("invalid product data")
	ErrProductCreateFailed = errors.New("product create failed")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrAdminNotFound      = errors.New("admin not found")
	ErrEmailExists        = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidUserStatus  = errors.New("invalid user status")
	ErrWeakPassword       = errors.New("password too short")

	ErrEmailDisabled = errors.New("email service disabled")
)
