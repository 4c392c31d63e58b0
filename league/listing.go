package league

import (
	"context"
	"errors"

	"leaguemanager/apperrors"
	"leaguemanager/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CreateListing puts a player on the transfer market as a pending
// transfer. Only the owner of the player's team may list, a player can
// carry at most one pending transfer, and the asking price must be
// positive.
func (s *Service) CreateListing(ctx context.Context, playerID uint, price decimal.Decimal, actingUser *models.User) (*models.Transfer, error) {
	var transfer *models.Transfer

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var player models.Player
		if err := tx.Preload("Team").First(&player, playerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("player not found")
			}
			return err
		}

		if player.Team == nil || player.Team.OwnerID != actingUser.ID {
			return apperrors.Forbidden("only the owner of the player's team can transfer the player")
		}

		var pending int64
		err := tx.Model(&models.Transfer{}).
			Where("player_id = ? AND status = ?", player.ID, models.TransferPending).
			Count(&pending).Error
		if err != nil {
			return err
		}
		if pending > 0 {
			return apperrors.Conflict("player is already on the transfer list")
		}

		if !price.IsPositive() {
			return apperrors.InvalidArgument("price must be greater than zero")
		}

		t := &models.Transfer{
			PlayerID: &player.ID,
			SellerID: &player.TeamID,
			Price:    price,
			Status:   models.TransferPending,
		}
		if err := tx.Create(t).Error; err != nil {
			// A concurrent listing slipped between the check and the
			// insert; the partial unique index turns it into a conflict.
			if isUniqueViolation(err) {
				return apperrors.Conflict("player is already on the transfer list")
			}
			return err
		}

		transfer = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(map[string]interface{}{
		"transfer_id": transfer.ID,
		"player_id":   playerID,
		"seller_id":   transfer.SellerID,
		"price":       price.String(),
	}).Info("player listed for transfer")

	return s.transferByID(ctx, transfer.ID)
}

// transferByID reloads a transfer with its player and teams resolved.
func (s *Service) transferByID(ctx context.Context, id uint) (*models.Transfer, error) {
	var transfer models.Transfer
	err := s.db.WithContext(ctx).
		Preload("Player").Preload("Seller").Preload("Buyer").
		First(&transfer, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("transfer not found")
		}
		return nil, err
	}
	return &transfer, nil
}
