package league

import (
	"context"
	"fmt"
	"io"
	"testing"

	"leaguemanager/config"
	"leaguemanager/database"
	"leaguemanager/models"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testLeagueConfig() config.League {
	return config.League{
		InitialPlayerValue: decimal.NewFromInt(1000000),
		InitialTeamBudget:  decimal.NewFromInt(5000000),
		DefaultCountry:     "KE",
		SquadSize:          20,
	}
}

func newTestService(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A :memory: database exists per connection; pin the pool to one.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	log := logrus.New()
	log.SetOutput(io.Discard)

	return NewService(db, testLeagueConfig(), log)
}

var userSeq int

// seedUserWithTeam creates a user owning a team with the given budget
// and no players.
func seedUserWithTeam(t *testing.T, s *Service, budget int64) (*models.User, *models.Team) {
	t.Helper()
	userSeq++

	user := &models.User{
		Email:        fmt.Sprintf("owner%d@example.com", userSeq),
		FirstName:    "Test",
		LastName:     fmt.Sprintf("Owner%d", userSeq),
		PasswordHash: "x",
	}
	require.NoError(t, s.db.Create(user).Error)

	team := &models.Team{
		OwnerID: user.ID,
		Name:    fmt.Sprintf("Test United %d", userSeq),
		Country: "KE",
		Budget:  decimal.NewFromInt(budget),
	}
	require.NoError(t, s.db.Create(team).Error)

	return user, team
}

func seedUserWithoutTeam(t *testing.T, s *Service) *models.User {
	t.Helper()
	userSeq++

	user := &models.User{
		Email:        fmt.Sprintf("teamless%d@example.com", userSeq),
		PasswordHash: "x",
	}
	require.NoError(t, s.db.Create(user).Error)
	return user
}

func seedPlayer(t *testing.T, s *Service, team *models.Team, value int64) *models.Player {
	t.Helper()

	player := &models.Player{
		FirstName: "Pele",
		LastName:  "Testerson",
		Position:  models.PositionAttacker,
		Age:       25,
		Country:   "KE",
		TeamID:    team.ID,
		Value:     decimal.NewFromInt(value),
	}
	require.NoError(t, s.db.Create(player).Error)
	return player
}

func reloadTeam(t *testing.T, s *Service, id uint) *models.Team {
	t.Helper()
	var team models.Team
	require.NoError(t, s.db.First(&team, id).Error)
	return &team
}

func reloadPlayer(t *testing.T, s *Service, id uint) *models.Player {
	t.Helper()
	var player models.Player
	require.NoError(t, s.db.First(&player, id).Error)
	return &player
}

func reloadTransfer(t *testing.T, s *Service, id uint) *models.Transfer {
	t.Helper()
	var transfer models.Transfer
	require.NoError(t, s.db.First(&transfer, id).Error)
	return &transfer
}

func testCtx() context.Context {
	return context.Background()
}
