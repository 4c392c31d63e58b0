package league

import (
	"context"
	"errors"

	"leaguemanager/apperrors"
	"leaguemanager/models"

	"gorm.io/gorm"
)

type TeamUpdate struct {
	Name    *string
	Country *string
}

type PlayerUpdate struct {
	FirstName *string
	LastName  *string
	Country   *string
}

// UpdateTeam edits a team's name and country. Budget and owner are not
// editable through this path.
func (s *Service) UpdateTeam(ctx context.Context, teamID uint, update TeamUpdate, actingUser *models.User) (*models.Team, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var team models.Team
		if err := tx.First(&team, teamID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("team not found")
			}
			return err
		}

		if team.OwnerID != actingUser.ID {
			return apperrors.Forbidden("only team owner can update team details")
		}

		if update.Name != nil && *update.Name != "" {
			var count int64
			err := tx.Model(&models.Team{}).
				Where("LOWER(name) = LOWER(?) AND id <> ?", *update.Name, team.ID).
				Count(&count).Error
			if err != nil {
				return err
			}
			if count > 0 {
				return apperrors.InvalidArgument("a team already exists with that name, choose another")
			}
			team.Name = *update.Name
		}
		if update.Country != nil && *update.Country != "" {
			country, err := models.NormalizeCountry(*update.Country)
			if err != nil {
				return apperrors.InvalidArgument("invalid country code")
			}
			team.Country = country
		}

		return tx.Save(&team).Error
	})
	if err != nil {
		return nil, err
	}

	return s.TeamByID(ctx, teamID)
}

// UpdatePlayer edits a player's profile fields. Value, team, position
// and age only change through the transfer market and generation paths.
func (s *Service) UpdatePlayer(ctx context.Context, playerID uint, update PlayerUpdate, actingUser *models.User) (*models.Player, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var player models.Player
		if err := tx.Preload("Team").First(&player, playerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("player not found")
			}
			return err
		}

		if player.Team == nil || player.Team.OwnerID != actingUser.ID {
			return apperrors.Forbidden("only team owner of team player belongs to can update player details")
		}

		if update.FirstName != nil && *update.FirstName != "" {
			player.FirstName = *update.FirstName
		}
		if update.LastName != nil && *update.LastName != "" {
			player.LastName = *update.LastName
		}
		if update.Country != nil && *update.Country != "" {
			country, err := models.NormalizeCountry(*update.Country)
			if err != nil {
				return apperrors.InvalidArgument("invalid country code")
			}
			player.Country = country
		}

		player.Team = nil
		return tx.Save(&player).Error
	})
	if err != nil {
		return nil, err
	}

	return s.PlayerByID(ctx, playerID)
}
