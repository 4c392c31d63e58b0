package league

import (
	"fmt"
	"math/rand"

	"leaguemanager/models"

	"gorm.io/gorm"
)

var squadPlan = []struct {
	Position models.Position
	Count    int
}{
	{models.PositionGoalkeeper, 3},
	{models.PositionDefender, 6},
	{models.PositionMidfielder, 6},
	{models.PositionAttacker, 5},
}

var teamNameParts = struct {
	Adjectives []string
	Nouns      []string
}{
	Adjectives: []string{"Mighty", "Royal", "Golden", "Crimson", "Silver", "Thunder", "Coastal", "Northern", "Flying", "Iron"},
	Nouns:      []string{"Lions", "Eagles", "Wanderers", "Rovers", "United", "Rangers", "Hotspurs", "Warriors", "Strikers", "Titans"},
}

var playerFirstNames = []string{
	"James", "Victor", "Samuel", "David", "Brian", "Dennis", "Michael",
	"Kelvin", "Collins", "Eric", "Felix", "George", "Ian", "Joseph",
}

var playerLastNames = []string{
	"Omondi", "Wanjiru", "Kipchoge", "Otieno", "Mwangi", "Kamau",
	"Njoroge", "Ochieng", "Korir", "Mutua", "Wekesa", "Barasa",
}

const (
	minPlayerAge = 18
	maxPlayerAge = 40
)

// GenerateTeam creates a team for the user with a full generated squad,
// funded with the configured initial budget. It runs inside tx so a
// caller can make registration and team generation one atomic unit.
func (s *Service) GenerateTeam(tx *gorm.DB, user *models.User) (*models.Team, error) {
	name, err := uniqueTeamName(tx)
	if err != nil {
		return nil, err
	}

	team := &models.Team{
		OwnerID: user.ID,
		Name:    name,
		Country: s.cfg.DefaultCountry,
		Budget:  s.cfg.InitialTeamBudget,
	}
	if err := tx.Create(team).Error; err != nil {
		return nil, fmt.Errorf("create team: %w", err)
	}

	players := make([]models.Player, 0, s.cfg.SquadSize)
	for _, slot := range squadPlan {
		for i := 0; i < slot.Count; i++ {
			players = append(players, models.Player{
				FirstName: playerFirstNames[rand.Intn(len(playerFirstNames))],
				LastName:  playerLastNames[rand.Intn(len(playerLastNames))],
				Position:  slot.Position,
				Age:       minPlayerAge + rand.Intn(maxPlayerAge-minPlayerAge+1),
				Country:   s.cfg.DefaultCountry,
				TeamID:    team.ID,
				Value:     s.cfg.InitialPlayerValue,
			})
		}
	}
	if err := tx.Create(&players).Error; err != nil {
		return nil, fmt.Errorf("create squad: %w", err)
	}

	team.Players = players
	return team, nil
}

// uniqueTeamName draws a name that no existing team holds, comparing
// case-insensitively. Collisions get a numeric suffix.
func uniqueTeamName(tx *gorm.DB) (string, error) {
	base := fmt.Sprintf("%s %s FC",
		teamNameParts.Adjectives[rand.Intn(len(teamNameParts.Adjectives))],
		teamNameParts.Nouns[rand.Intn(len(teamNameParts.Nouns))],
	)

	name := base
	for attempt := 0; attempt < 100; attempt++ {
		taken, err := teamNameTaken(tx, name)
		if err != nil {
			return "", err
		}
		if !taken {
			return name, nil
		}
		name = fmt.Sprintf("%s %d", base, rand.Intn(9000)+1000)
	}
	return "", fmt.Errorf("could not find a free team name for %q", base)
}

func teamNameTaken(tx *gorm.DB, name string) (bool, error) {
	var count int64
	err := tx.Model(&models.Team{}).
		Where("LOWER(name) = LOWER(?)", name).
		Count(&count).Error
	return count > 0, err
}
