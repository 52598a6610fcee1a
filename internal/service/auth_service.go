package service

import (
	"context"
	"errors"
	"time"

	"ai-producer-be/internal/dto"
	"ai-producer-be/internal/entity"
	"ai-producer-be/internal/repository/unitofwork"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type IAuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

type authService struct {
	uowFactory  unitofwork.RepositoryFactory
	jwtSecret   string
	tokenExpiry time.Duration
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, jwtSecret string, tokenExpiryHours int) IAuthService {
	if jwtSecret == "" {
		jwtSecret = "default_secret"
	}
	if tokenExpiryHours <= 0 {
		tokenExpiryHours = 24
	}
	return &authService{
		uowFactory:  uowFactory,
		jwtSecret:   jwtSecret,
		tokenExpiry: time.Duration(tokenExpiryHours) * time.Hour,
	}
}

// Login finds or creates the user by username and issues a JWT. There is no
// password step: identity here only scopes threads and strategy data.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if req.Username == "" {
		return nil, errors.New("username is required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.UserRepository()

	user, err := repo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		user = &entity.User{
			Id:           uuid.New(),
			Username:     req.Username,
			SessionToken: uuid.New().String(),
			Persona:      req.Persona,
			LastActiveAt: time.Now(),
		}
		if err := repo.Create(ctx, user); err != nil {
			return nil, err
		}
	} else {
		if req.Persona != "" && req.Persona != user.Persona {
			user.Persona = req.Persona
			if err := repo.Update(ctx, user); err != nil {
				return nil, err
			}
		}
		if err := repo.TouchLastActive(ctx, user.Id); err != nil {
			return nil, err
		}
	}

	token, err := s.signToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		UserId:      user.Id.String(),
		Username:    user.Username,
		Persona:     user.Persona,
		AccessToken: token,
	}, nil
}

func (s *authService) signToken(user *entity.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.Id.String(),
		"username": user.Username,
		"exp":      time.Now().Add(s.tokenExpiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
