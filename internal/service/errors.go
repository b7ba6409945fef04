package service

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound             = errors.New("not found")
	ErrEmailTaken           = errors.New("user already exists with this email")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrPrescriptionRequired = errors.New("prescription image is required for prescription medicines")
	ErrAlreadyReviewed      = errors.New("medicine already reviewed by this user")
	ErrAlreadyProcessed     = errors.New("prescription has already been reviewed")
	ErrForbidden            = errors.New("forbidden")
	ErrInvalidInput         = errors.New("invalid input")
)

func isNotFound(err error) bool { return errors.Is(err, gorm.ErrRecordNotFound) }
