package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TransferStatus string

const (
	TransferPending  TransferStatus = "pending"
	TransferComplete TransferStatus = "complete"
)

// Transfer records a player listed on the market and, once complete,
// the historical record of the trade. References to the player and the
// teams are weak: deleting a referent nulls the column.
type Transfer struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	PlayerID  *uint           `gorm:"index" json:"player_id"`
	Player    *Player         `gorm:"foreignKey:PlayerID;constraint:OnDelete:SET NULL" json:"player,omitempty"`
	SellerID  *uint           `json:"seller_id"`
	Seller    *Team           `gorm:"foreignKey:SellerID;constraint:OnDelete:SET NULL" json:"seller,omitempty"`
	BuyerID   *uint           `json:"buyer_id"`
	Buyer     *Team           `gorm:"foreignKey:BuyerID;constraint:OnDelete:SET NULL" json:"buyer,omitempty"`
	Price     decimal.Decimal `gorm:"type:decimal(65,2);not null" json:"price"`
	Status    TransferStatus  `gorm:"not null;size:8;default:'pending';index" json:"status"`
}

// BeforeSave keeps a pending transfer consistent with the player's
// current ownership: buyer stays null and seller tracks the team that
// owns the player at save time. Completed transfers are frozen.
func (t *Transfer) BeforeSave(tx *gorm.DB) error {
	if t.Status != TransferPending {
		return nil
	}
	t.BuyerID = nil
	t.Buyer = nil
	if t.PlayerID == nil {
		return nil
	}
	var player Player
	if err := tx.Select("team_id").First(&player, *t.PlayerID).Error; err != nil {
		return err
	}
	t.SellerID = &player.TeamID
	return nil
}
