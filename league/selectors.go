package league

import (
	"context"
	"errors"

	"leaguemanager/apperrors"
	"leaguemanager/models"

	"gorm.io/gorm"
)

const (
	defaultPageSize = 50
	maxPageSize     = 100
)

type TeamFilters struct {
	Country string
	Limit   int
	Offset  int
}

type PlayerFilters struct {
	Position string
	TeamID   uint
	Country  string
	SortBy   string
	Limit    int
	Offset   int
}

type TransferFilters struct {
	Position string
	SellerID uint
	PlayerID uint
	SortBy   string
	Limit    int
	Offset   int
}

// Sort keys are allowlisted; anything else falls back to id order.
var playerSortColumns = map[string]string{
	"id":    "players.id",
	"value": "players.value",
	"age":   "players.age",
}

var transferSortColumns = map[string]string{
	"id":    "transfers.id",
	"price": "transfers.price",
}

// TeamByOwner returns the team owned by the user, players resolved.
func (s *Service) TeamByOwner(ctx context.Context, userID uint) (*models.Team, error) {
	var team models.Team
	err := s.db.WithContext(ctx).
		Preload("Players").Preload("Owner").
		Where("owner_id = ?", userID).
		First(&team).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("you do not own a team")
		}
		return nil, err
	}
	return &team, nil
}

func (s *Service) TeamByID(ctx context.Context, teamID uint) (*models.Team, error) {
	var team models.Team
	err := s.db.WithContext(ctx).
		Preload("Players").Preload("Owner").
		First(&team, teamID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("team not found")
		}
		return nil, err
	}
	return &team, nil
}

func (s *Service) Teams(ctx context.Context, filters TeamFilters) ([]models.Team, error) {
	query := s.db.WithContext(ctx).Model(&models.Team{}).Preload("Players")
	if filters.Country != "" {
		query = query.Where("country = ?", filters.Country)
	}

	var teams []models.Team
	err := query.Order("teams.id").
		Limit(pageSize(filters.Limit)).Offset(max(filters.Offset, 0)).
		Find(&teams).Error
	return teams, err
}

// TeamPlayers lists a team's players; the team must exist.
func (s *Service) TeamPlayers(ctx context.Context, teamID uint, filters PlayerFilters) ([]models.Player, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Team{}).Where("id = ?", teamID).Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, apperrors.NotFound("team not found")
	}

	filters.TeamID = teamID
	return s.Players(ctx, filters)
}

func (s *Service) Players(ctx context.Context, filters PlayerFilters) ([]models.Player, error) {
	query := s.db.WithContext(ctx).Model(&models.Player{}).Preload("Team")
	if filters.Position != "" {
		query = query.Where("position = ?", filters.Position)
	}
	if filters.TeamID != 0 {
		query = query.Where("team_id = ?", filters.TeamID)
	}
	if filters.Country != "" {
		query = query.Where("players.country = ?", filters.Country)
	}

	var players []models.Player
	err := query.Order(sortColumn(playerSortColumns, filters.SortBy, "players.id")).
		Limit(pageSize(filters.Limit)).Offset(max(filters.Offset, 0)).
		Find(&players).Error
	return players, err
}

func (s *Service) PlayerByID(ctx context.Context, playerID uint) (*models.Player, error) {
	var player models.Player
	err := s.db.WithContext(ctx).Preload("Team").First(&player, playerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("player not found")
		}
		return nil, err
	}
	return &player, nil
}

// ActiveListings returns pending transfers, filterable by the listed
// player's position, the selling team, or the player.
func (s *Service) ActiveListings(ctx context.Context, filters TransferFilters) ([]models.Transfer, error) {
	query := s.db.WithContext(ctx).Model(&models.Transfer{}).
		Preload("Player").Preload("Seller").
		Where("transfers.status = ?", models.TransferPending)

	if filters.Position != "" {
		query = query.Joins("JOIN players ON players.id = transfers.player_id").
			Where("players.position = ?", filters.Position)
	}
	if filters.SellerID != 0 {
		query = query.Where("transfers.seller_id = ?", filters.SellerID)
	}
	if filters.PlayerID != 0 {
		query = query.Where("transfers.player_id = ?", filters.PlayerID)
	}

	var transfers []models.Transfer
	err := query.Order(sortColumn(transferSortColumns, filters.SortBy, "transfers.id")).
		Limit(pageSize(filters.Limit)).Offset(max(filters.Offset, 0)).
		Find(&transfers).Error
	return transfers, err
}

// PendingTransferByPlayer resolves the player's single active listing.
func (s *Service) PendingTransferByPlayer(ctx context.Context, playerID uint) (*models.Transfer, error) {
	var transfer *models.Transfer
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		t, err := pendingTransferByPlayer(tx, playerID)
		if err != nil {
			return err
		}
		transfer = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.transferByID(ctx, transfer.ID)
}

func sortColumn(allowed map[string]string, key, fallback string) string {
	if column, ok := allowed[key]; ok {
		return column
	}
	return fallback
}

func pageSize(limit int) int {
	if limit <= 0 {
		return defaultPageSize
	}
	if limit > maxPageSize {
		return maxPageSize
	}
	return limit
}
