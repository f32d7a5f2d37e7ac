package services

import (
	"context"
	"errors"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"mariageBack/internal/models"
	"mariageBack/internal/repositories"
	"mariageBack/utils"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 30 * 24 * time.Hour
)

type UserService struct {
	UserRepo   *repositories.UserRepository
	Ambassador *AmbassadorService
	Tokens     *utils.Manager
}

func (s *UserService) SignUp(ctx context.Context, req models.SignUpRequest) (models.User, models.Tokens, error) {
	if req.Role != models.RoleCouple && req.Role != models.RolePrestataire {
		return models.User{}, models.Tokens{}, errors.New("role must be couple or prestataire")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, models.Tokens{}, err
	}

	user, err := s.UserRepo.CreateUser(ctx, models.User{
		Name:     req.Name,
		Surname:  req.Surname,
		Phone:    req.Phone,
		Email:    req.Email,
		Password: string(hash),
		Role:     req.Role,
		City:     req.City,
	})
	if err != nil {
		return models.User{}, models.Tokens{}, err
	}

	// Referral recording must not block the signup itself.
	if req.ReferralCode != "" {
		if err := s.Ambassador.RecordReferredSignup(ctx, req.ReferralCode, user.ID); err != nil {
			log.Printf("signup: referral code %q not applied for user %d: %v", req.ReferralCode, user.ID, err)
		}
	}

	tokens, err := s.issueTokens(ctx, user)
	return user, tokens, err
}

func (s *UserService) SignIn(ctx context.Context, req models.SignInRequest) (models.User, models.Tokens, error) {
	user, err := s.UserRepo.GetUserByLogin(ctx, req.Email, req.Phone)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return models.User{}, models.Tokens{}, models.ErrInvalidCredentials
		}
		return models.User{}, models.Tokens{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return models.User{}, models.Tokens{}, models.ErrInvalidCredentials
	}
	user.Password = ""

	tokens, err := s.issueTokens(ctx, user)
	return user, tokens, err
}

func (s *UserService) issueTokens(ctx context.Context, user models.User) (models.Tokens, error) {
	access, err := s.Tokens.NewAccessToken(user.ID, user.Role, accessTokenTTL)
	if err != nil {
		return models.Tokens{}, err
	}
	refresh, err := s.Tokens.NewRefreshToken()
	if err != nil {
		return models.Tokens{}, err
	}
	err = s.UserRepo.CreateSession(ctx, models.Session{
		UserID:       user.ID,
		Role:         user.Role,
		RefreshToken: refresh,
		ExpiresAt:    time.Now().Add(refreshTokenTTL),
	})
	if err != nil {
		return models.Tokens{}, err
	}
	return models.Tokens{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id int) (models.User, error) {
	return s.UserRepo.GetUserByID(ctx, id)
}

func (s *UserService) ChangePassword(ctx context.Context, req models.UpdatePasswordRequest) error {
	hash, err := s.UserRepo.GetPasswordHash(ctx, req.UserID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.OldPassword)) != nil {
		return models.ErrInvalidPassword
	}
	newHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.UserRepo.UpdatePassword(ctx, req.UserID, string(newHash))
}

func (s *UserService) SignOut(ctx context.Context, userID int) error {
	return s.UserRepo.DeleteSession(ctx, userID)
}

func (s *UserService) SaveDeviceToken(ctx context.Context, userID int, token string) error {
	return s.UserRepo.SaveDeviceToken(ctx, userID, token)
}
