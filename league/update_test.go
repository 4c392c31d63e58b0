package league

import (
	"testing"

	"leaguemanager/apperrors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestUpdateTeam(t *testing.T) {
	s := newTestService(t)
	owner, team := seedUserWithTeam(t, s, 5000000)

	updated, err := s.UpdateTeam(testCtx(), team.ID, TeamUpdate{
		Name:    strPtr("Renamed Rovers"),
		Country: strPtr("gb"),
	}, owner)
	require.NoError(t, err)
	assert.Equal(t, "Renamed Rovers", updated.Name)
	assert.Equal(t, "GB", updated.Country)
	assert.True(t, updated.Budget.Equal(decimal.NewFromInt(5000000)))
}

func TestUpdateTeamNotOwner(t *testing.T) {
	s := newTestService(t)
	_, team := seedUserWithTeam(t, s, 5000000)
	other, _ := seedUserWithTeam(t, s, 5000000)

	_, err := s.UpdateTeam(testCtx(), team.ID, TeamUpdate{Name: strPtr("Hijacked")}, other)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))
}

func TestUpdateTeamNameTakenCaseInsensitive(t *testing.T) {
	s := newTestService(t)
	owner, team := seedUserWithTeam(t, s, 5000000)
	_, other := seedUserWithTeam(t, s, 5000000)

	_, err := s.UpdateTeam(testCtx(), team.ID, TeamUpdate{Name: strPtr(other.Name)}, owner)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInvalidArgument, apperrors.KindOf(err))

	upper := []byte(other.Name)
	for i, c := range upper {
		if c >= 'a' && c <= 'z' {
			upper[i] = c - 32
		}
	}
	_, err = s.UpdateTeam(testCtx(), team.ID, TeamUpdate{Name: strPtr(string(upper))}, owner)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInvalidArgument, apperrors.KindOf(err))
}

func TestUpdateTeamInvalidCountry(t *testing.T) {
	s := newTestService(t)
	owner, team := seedUserWithTeam(t, s, 5000000)

	_, err := s.UpdateTeam(testCtx(), team.ID, TeamUpdate{Country: strPtr("Kenya")}, owner)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInvalidArgument, apperrors.KindOf(err))
}

func TestUpdatePlayer(t *testing.T) {
	s := newTestService(t)
	owner, team := seedUserWithTeam(t, s, 5000000)
	player := seedPlayer(t, s, team, 1000000)

	updated, err := s.UpdatePlayer(testCtx(), player.ID, PlayerUpdate{
		FirstName: strPtr("Dennis"),
		LastName:  strPtr("Oliech"),
		Country:   strPtr("ke"),
	}, owner)
	require.NoError(t, err)
	assert.Equal(t, "Dennis", updated.FirstName)
	assert.Equal(t, "Oliech", updated.LastName)
	assert.Equal(t, "KE", updated.Country)
	// Value and team are not editable here.
	assert.True(t, updated.Value.Equal(decimal.NewFromInt(1000000)))
	assert.Equal(t, team.ID, updated.TeamID)
}

func TestUpdatePlayerNotOwner(t *testing.T) {
	s := newTestService(t)
	_, team := seedUserWithTeam(t, s, 5000000)
	player := seedPlayer(t, s, team, 1000000)
	other, _ := seedUserWithTeam(t, s, 5000000)

	_, err := s.UpdatePlayer(testCtx(), player.ID, PlayerUpdate{FirstName: strPtr("Nope")}, other)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))
}
