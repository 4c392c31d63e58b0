package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Position string

const (
	PositionGoalkeeper Position = "goalkeeper"
	PositionDefender   Position = "defender"
	PositionMidfielder Position = "midfielder"
	PositionAttacker   Position = "attacker"
)

func ParsePosition(s string) (Position, error) {
	switch Position(s) {
	case PositionGoalkeeper, PositionDefender, PositionMidfielder, PositionAttacker:
		return Position(s), nil
	}
	return "", fmt.Errorf("unknown position %q", s)
}

type Player struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	FirstName string          `gorm:"not null;size:50" json:"first_name"`
	LastName  string          `gorm:"not null;size:50" json:"last_name"`
	Position  Position        `gorm:"not null;size:10" json:"position"`
	Age       int             `gorm:"not null" json:"age"`
	Country   string          `gorm:"not null;size:2" json:"country"`
	TeamID    uint            `gorm:"not null;index" json:"team_id"`
	Team      *Team           `gorm:"foreignKey:TeamID" json:"team,omitempty"`
	Value     decimal.Decimal `gorm:"type:decimal(65,2);not null" json:"value"`
}
