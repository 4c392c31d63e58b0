package league

import (
	"context"
	"errors"

	"leaguemanager/apperrors"
	"leaguemanager/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Email     string
	FirstName string
	LastName  string
	Password1 string
	Password2 string
}

// RegisterUser creates a user and their generated team as one atomic
// unit. A registration that fails team generation leaves no user.
func (s *Service) RegisterUser(ctx context.Context, req RegisterRequest) (*models.User, error) {
	if req.Email == "" {
		return nil, apperrors.InvalidArgument("email is required")
	}
	if req.Password1 != req.Password2 {
		return nil, apperrors.InvalidArgument("password1 and password2 do not match")
	}
	if len(req.Password1) < 8 {
		return nil, apperrors.InvalidArgument("password must be atleast 8 characters in length")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password1), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: string(hash),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperrors.InvalidArgument("user with provided email already exists")
		}

		if err := tx.Create(user).Error; err != nil {
			if isUniqueViolation(err) {
				return apperrors.InvalidArgument("user with provided email already exists")
			}
			return err
		}

		team, err := s.GenerateTeam(tx, user)
		if err != nil {
			return err
		}
		user.Team = team
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(map[string]interface{}{
		"user_id": user.ID,
		"team_id": user.Team.ID,
	}).Info("user registered with generated team")

	return user, nil
}

// AuthenticateUser checks the credentials and returns the user.
func (s *Service) AuthenticateUser(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.InvalidArgument("invalid email or password")
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, apperrors.InvalidArgument("invalid email or password")
	}
	return &user, nil
}
