package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Team struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	OwnerID   uint            `gorm:"uniqueIndex;not null" json:"owner_id"`
	Owner     *User           `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Name      string          `gorm:"not null;size:100" json:"name"`
	Country   string          `gorm:"not null;size:2" json:"country"`
	Budget    decimal.Decimal `gorm:"type:decimal(65,2);not null" json:"budget"`
	Players   []Player        `gorm:"foreignKey:TeamID" json:"players,omitempty"`
}

// Value is the sum of the current values of the team's players.
// It is derived on demand and never persisted.
func (t *Team) Value() decimal.Decimal {
	return TeamValue(t.Players)
}

func TeamValue(players []Player) decimal.Decimal {
	total := decimal.Zero
	for _, p := range players {
		total = total.Add(p.Value)
	}
	return total
}
