package league

import (
	"context"
	"errors"

	"leaguemanager/apperrors"
	"leaguemanager/models"

	"gorm.io/gorm"
)

// BuyTransfer completes the identified transfer on behalf of the
// buying user's team. Validation order: the buyer must own a team, the
// transfer must exist and be pending, the buyer cannot be the seller,
// and the price must fit the buyer's budget. The debit, credit, player
// reassignment and status flip commit as one transaction or not at all.
func (s *Service) BuyTransfer(ctx context.Context, transferID uint, buyingUser *models.User) (*models.Transfer, error) {
	var completedID uint

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		buyer, err := buyerTeam(tx, buyingUser)
		if err != nil {
			return err
		}

		var transfer models.Transfer
		if err := tx.First(&transfer, transferID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("transfer not found")
			}
			return err
		}
		if transfer.Status == models.TransferComplete {
			return apperrors.Conflict("provided transfer has already been completed")
		}

		completedID = transfer.ID
		return s.completeTransfer(tx, &transfer, buyer)
	})
	if err != nil {
		return nil, err
	}

	return s.finishBuy(ctx, completedID, buyingUser)
}

// BuyPlayer resolves the player's pending transfer and completes it.
// It runs the identical checks as BuyTransfer once the transfer is
// resolved.
func (s *Service) BuyPlayer(ctx context.Context, playerID uint, buyingUser *models.User) (*models.Transfer, error) {
	var completedID uint

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		buyer, err := buyerTeam(tx, buyingUser)
		if err != nil {
			return err
		}

		transfer, err := pendingTransferByPlayer(tx, playerID)
		if err != nil {
			return err
		}

		completedID = transfer.ID
		return s.completeTransfer(tx, transfer, buyer)
	})
	if err != nil {
		return nil, err
	}

	return s.finishBuy(ctx, completedID, buyingUser)
}

// buyerTeam resolves the acting user's team inside the transaction.
func buyerTeam(tx *gorm.DB, user *models.User) (*models.Team, error) {
	var team models.Team
	if err := tx.Where("owner_id = ?", user.ID).First(&team).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Forbidden("only users who own a team can buy a player")
		}
		return nil, err
	}
	return &team, nil
}

// pendingTransferByPlayer finds the single pending transfer for a
// player. Zero rows means no active listing; more than one means the
// store holds inconsistent data, which is surfaced rather than picked
// from arbitrarily.
func pendingTransferByPlayer(tx *gorm.DB, playerID uint) (*models.Transfer, error) {
	var transfers []models.Transfer
	err := tx.Where("player_id = ? AND status = ?", playerID, models.TransferPending).
		Limit(2).Find(&transfers).Error
	if err != nil {
		return nil, err
	}
	switch len(transfers) {
	case 0:
		return nil, apperrors.NotFound("player not found on transfer market")
	case 1:
		return &transfers[0], nil
	default:
		return nil, apperrors.Conflict("player has multiple pending transfers on market, contact admin for further assistance")
	}
}

// completeTransfer applies the purchase inside tx. The status flip is
// a compare-and-swap on (id, status=pending) and the buyer debit is
// guarded by budget >= price, so concurrent buys of the same transfer
// or concurrent spends of the same budget resolve to exactly one
// winner; the loser's transaction rolls back untouched.
func (s *Service) completeTransfer(tx *gorm.DB, transfer *models.Transfer, buyer *models.Team) error {
	if transfer.PlayerID == nil || transfer.SellerID == nil {
		return apperrors.NotFound("transfer no longer references a player and a selling team")
	}

	var player models.Player
	if err := tx.First(&player, *transfer.PlayerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("transferred player not found")
		}
		return err
	}

	if *transfer.SellerID == buyer.ID {
		return apperrors.Forbidden("team selling a player cannot buy its own player")
	}

	if transfer.Price.GreaterThan(buyer.Budget) {
		return apperrors.InvalidArgument("you do not have enough funds to buy this player")
	}

	res := tx.Model(&models.Transfer{}).
		Where("id = ? AND status = ?", transfer.ID, models.TransferPending).
		Updates(map[string]interface{}{
			"status":   models.TransferComplete,
			"buyer_id": buyer.ID,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.Conflict("provided transfer has already been completed")
	}

	res = tx.Model(&models.Team{}).
		Where("id = ? AND budget >= ?", buyer.ID, transfer.Price).
		Update("budget", gorm.Expr("budget - ?", transfer.Price))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Lost a concurrent spend race since the budget check above.
		return apperrors.InvalidArgument("you do not have enough funds to buy this player")
	}

	err := tx.Model(&models.Team{}).
		Where("id = ?", *transfer.SellerID).
		Update("budget", gorm.Expr("budget + ?", transfer.Price)).Error
	if err != nil {
		return err
	}

	return tx.Model(&models.Player{}).
		Where("id = ?", player.ID).
		Updates(map[string]interface{}{
			"value":   NextValue(player.Value),
			"team_id": buyer.ID,
		}).Error
}

func (s *Service) finishBuy(ctx context.Context, transferID uint, buyingUser *models.User) (*models.Transfer, error) {
	transfer, err := s.transferByID(ctx, transferID)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(map[string]interface{}{
		"transfer_id": transfer.ID,
		"buyer_id":    transfer.BuyerID,
		"seller_id":   transfer.SellerID,
		"price":       transfer.Price.String(),
		"user_id":     buyingUser.ID,
	}).Info("transfer completed")

	return transfer, nil
}
