package league

import (
	"strings"

	"leaguemanager/config"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Service holds the league's business logic: the transfer market
// engine plus the team/player read and update paths around it.
type Service struct {
	db  *gorm.DB
	cfg config.League
	log *logrus.Logger
}

func NewService(db *gorm.DB, cfg config.League, log *logrus.Logger) *Service {
	return &Service{
		db:  db,
		cfg: cfg,
		log: log,
	}
}

// isUniqueViolation matches the duplicate-key errors of the postgres
// and sqlite drivers without depending on either driver's error types.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}
