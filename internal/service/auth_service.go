package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Khursands/Online-Pharmacy/internal/model"
	"github.com/Khursands/Online-Pharmacy/internal/repository"
	"github.com/Khursands/Online-Pharmacy/pkg/jwt"
)

const bcryptCost = 10

// 用于未知邮箱时执行一次等价的哈希比较，避免通过耗时区分账号是否存在
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcryptCost)

type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Phone    string
	Address  string
}

type ProfileInput struct {
	Name    *string
	Phone   *string
	Address *string
}

// AuthResult 注册/登录返回
type AuthResult struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// AuthService 账号与身份
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	GetProfile(ctx context.Context, userID string) (*model.User, error)
	UpdateProfile(ctx context.Context, userID string, in ProfileInput) error
}

type authService struct {
	users  repository.UserRepository
	secret string
	expire time.Duration
}

func NewAuthService(users repository.UserRepository, secret string, expire time.Duration) AuthService {
	return &authService{users: users, secret: secret, expire: expire}
}

func normalizeEmail(e string) string { return strings.ToLower(strings.TrimSpace(e)) }

func (s *authService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	email := normalizeEmail(in.Email)
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !isNotFound(err) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, err
	}
	u := &model.User{
		ID:         uuid.New().String(),
		Email:      email,
		Password:   string(hash),
		Name:       strings.TrimSpace(in.Name),
		Phone:      strings.TrimSpace(in.Phone),
		Address:    strings.TrimSpace(in.Address),
		Role:       model.RoleCustomer,
		IsVerified: true,
	}
	if err := s.users.Create(ctx, u); err != nil {
		// 并发注册时由唯一索引兜底
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return s.issue(u)
}

func (s *authService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if isNotFound(err) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issue(u)
}

func (s *authService) issue(u *model.User) (*AuthResult, error) {
	token, err := jwt.GenerateToken(s.secret, s.expire, u.ID, u.Email, string(u.Role))
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: u}, nil
}

func (s *authService) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if isNotFound(err) {
		return nil, fmt.Errorf("user %w", ErrNotFound)
	}
	return u, err
}

func (s *authService) UpdateProfile(ctx context.Context, userID string, in ProfileInput) error {
	fields := make(map[string]interface{}, 3)
	if in.Name != nil {
		fields["name"] = strings.TrimSpace(*in.Name)
	}
	if in.Phone != nil {
		fields["phone"] = strings.TrimSpace(*in.Phone)
	}
	if in.Address != nil {
		fields["address"] = strings.TrimSpace(*in.Address)
	}
	if len(fields) == 0 {
		return nil
	}
	err := s.users.UpdateProfile(ctx, userID, fields)
	if isNotFound(err) {
		return fmt.Errorf("user %w", ErrNotFound)
	}
	return err
}
