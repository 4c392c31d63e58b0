package league

import (
	"testing"

	"leaguemanager/apperrors"
	"leaguemanager/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// marketFixture wires the standard scenario: seller team X with a
// listed player, buyer team Y.
type marketFixture struct {
	seller       *models.User
	sellerTeam   *models.Team
	buyer        *models.User
	buyerTeam    *models.Team
	player       *models.Player
	transfer     *models.Transfer
	price        decimal.Decimal
	playerValue  decimal.Decimal
	sellerBudget decimal.Decimal
	buyerBudget  decimal.Decimal
}

func newMarketFixture(t *testing.T, s *Service, sellerBudget, buyerBudget, playerValue, price int64) *marketFixture {
	t.Helper()

	sellerUser, sellerTeam := seedUserWithTeam(t, s, sellerBudget)
	buyerUser, buyerTeam := seedUserWithTeam(t, s, buyerBudget)
	player := seedPlayer(t, s, sellerTeam, playerValue)

	transfer, err := s.CreateListing(testCtx(), player.ID, decimal.NewFromInt(price), sellerUser)
	require.NoError(t, err)

	return &marketFixture{
		seller:       sellerUser,
		sellerTeam:   sellerTeam,
		buyer:        buyerUser,
		buyerTeam:    buyerTeam,
		player:       player,
		transfer:     transfer,
		price:        decimal.NewFromInt(price),
		playerValue:  decimal.NewFromInt(playerValue),
		sellerBudget: decimal.NewFromInt(sellerBudget),
		buyerBudget:  decimal.NewFromInt(buyerBudget),
	}
}

// assertUnchanged verifies a failed buy left no trace.
func (f *marketFixture) assertUnchanged(t *testing.T, s *Service) {
	t.Helper()

	seller := reloadTeam(t, s, f.sellerTeam.ID)
	buyer := reloadTeam(t, s, f.buyerTeam.ID)
	player := reloadPlayer(t, s, f.player.ID)
	transfer := reloadTransfer(t, s, f.transfer.ID)

	assert.True(t, seller.Budget.Equal(f.sellerBudget), "seller budget changed: %s", seller.Budget)
	assert.True(t, buyer.Budget.Equal(f.buyerBudget), "buyer budget changed: %s", buyer.Budget)
	assert.Equal(t, f.sellerTeam.ID, player.TeamID, "player changed teams")
	assert.True(t, player.Value.Equal(f.playerValue), "player value changed: %s", player.Value)
	assert.Equal(t, models.TransferPending, transfer.Status)
	assert.Nil(t, transfer.BuyerID)
}

func TestBuyTransferCompletes(t *testing.T) {
	s := newTestService(t)
	f := newMarketFixture(t, s, 5000000, 5000000, 1000000, 2000000)

	transfer, err := s.BuyTransfer(testCtx(), f.transfer.ID, f.buyer)
	require.NoError(t, err)

	assert.Equal(t, models.TransferComplete, transfer.Status)
	require.NotNil(t, transfer.BuyerID)
	assert.Equal(t, f.buyerTeam.ID, *transfer.BuyerID)
	require.NotNil(t, transfer.SellerID)
	assert.Equal(t, f.sellerTeam.ID, *transfer.SellerID)

	seller := reloadTeam(t, s, f.sellerTeam.ID)
	buyer := reloadTeam(t, s, f.buyerTeam.ID)
	assert.True(t, seller.Budget.Equal(decimal.NewFromInt(7000000)), "seller budget %s", seller.Budget)
	assert.True(t, buyer.Budget.Equal(decimal.NewFromInt(3000000)), "buyer budget %s", buyer.Budget)

	player := reloadPlayer(t, s, f.player.ID)
	assert.Equal(t, f.buyerTeam.ID, player.TeamID)
	assert.True(t, player.Value.GreaterThanOrEqual(decimal.NewFromInt(1100000)), "player value %s", player.Value)
	assert.True(t, player.Value.LessThanOrEqual(decimal.NewFromInt(2000000)), "player value %s", player.Value)
}

func TestBuyConservesMoney(t *testing.T) {
	s := newTestService(t)
	f := newMarketFixture(t, s, 1234567, 8765432, 500000, 750000)

	before := f.sellerBudget.Add(f.buyerBudget)

	_, err := s.BuyTransfer(testCtx(), f.transfer.ID, f.buyer)
	require.NoError(t, err)

	seller := reloadTeam(t, s, f.sellerTeam.ID)
	buyer := reloadTeam(t, s, f.buyerTeam.ID)
	assert.True(t, seller.Budget.Equal(f.sellerBudget.Add(f.price)))
	assert.True(t, buyer.Budget.Equal(f.buyerBudget.Sub(f.price)))
	assert.True(t, seller.Budget.Add(buyer.Budget).Equal(before), "total budget not conserved")
}

func TestBuyOwnPlayerForbidden(t *testing.T) {
	s := newTestService(t)
	f := newMarketFixture(t, s, 5000000, 5000000, 1000000, 2000000)

	_, err := s.BuyTransfer(testCtx(), f.transfer.ID, f.seller)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))
	f.assertUnchanged(t, s)
}

func TestBuyInsufficientFunds(t *testing.T) {
	s := newTestService(t)
	f := newMarketFixture(t, s, 5000000, 100000, 1000000, 2000000)

	_, err := s.BuyTransfer(testCtx(), f.transfer.ID, f.buyer)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInvalidArgument, apperrors.KindOf(err))
	f.assertUnchanged(t, s)
}

func TestBuyWithoutTeamForbidden(t *testing.T) {
	s := newTestService(t)
	f := newMarketFixture(t, s, 5000000, 5000000, 1000000, 2000000)
	teamless := seedUserWithoutTeam(t, s)

	_, err := s.BuyTransfer(testCtx(), f.transfer.ID, teamless)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))
	f.assertUnchanged(t, s)
}

func TestBuyUnknownTransferNotFound(t *testing.T) {
	s := newTestService(t)
	buyer, _ := seedUserWithTeam(t, s, 5000000)

	_, err := s.BuyTransfer(testCtx(), 424242, buyer)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestBuyCompletedTransferConflict(t *testing.T) {
	s := newTestService(t)
	f := newMarketFixture(t, s, 5000000, 5000000, 1000000, 2000000)

	_, err := s.BuyTransfer(testCtx(), f.transfer.ID, f.buyer)
	require.NoError(t, err)

	sellerAfter := reloadTeam(t, s, f.sellerTeam.ID).Budget
	buyerAfter := reloadTeam(t, s, f.buyerTeam.ID).Budget
	valueAfter := reloadPlayer(t, s, f.player.ID).Value

	secondBuyer, _ := seedUserWithTeam(t, s, 5000000)
	_, err = s.BuyTransfer(testCtx(), f.transfer.ID, secondBuyer)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))

	// Nothing moved on the failed second attempt.
	assert.True(t, reloadTeam(t, s, f.sellerTeam.ID).Budget.Equal(sellerAfter))
	assert.True(t, reloadTeam(t, s, f.buyerTeam.ID).Budget.Equal(buyerAfter))
	assert.True(t, reloadPlayer(t, s, f.player.ID).Value.Equal(valueAfter))
	assert.Equal(t, f.buyerTeam.ID, reloadPlayer(t, s, f.player.ID).TeamID)
}

func TestBuyPlayerEntryPoint(t *testing.T) {
	s := newTestService(t)
	f := newMarketFixture(t, s, 5000000, 5000000, 1000000, 2000000)

	transfer, err := s.BuyPlayer(testCtx(), f.player.ID, f.buyer)
	require.NoError(t, err)

	assert.Equal(t, f.transfer.ID, transfer.ID)
	assert.Equal(t, models.TransferComplete, transfer.Status)
	assert.Equal(t, f.buyerTeam.ID, reloadPlayer(t, s, f.player.ID).TeamID)
}

func TestBuyPlayerNoActiveListing(t *testing.T) {
	s := newTestService(t)
	_, team := seedUserWithTeam(t, s, 5000000)
	player := seedPlayer(t, s, team, 1000000)
	buyer, _ := seedUserWithTeam(t, s, 5000000)

	_, err := s.BuyPlayer(testCtx(), player.ID, buyer)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

// A store already holding several pending transfers for one player is
// a data anomaly the engine refuses to resolve silently.
func TestBuyPlayerMultiplePendingAnomaly(t *testing.T) {
	s := newTestService(t)
	f := newMarketFixture(t, s, 5000000, 5000000, 1000000, 2000000)

	// The partial unique index guards this path in normal operation;
	// simulate a legacy store without it.
	require.NoError(t, s.db.Exec("DROP INDEX idx_transfers_pending_player").Error)
	require.NoError(t, s.db.Create(&models.Transfer{
		PlayerID: &f.player.ID,
		SellerID: &f.sellerTeam.ID,
		Price:    decimal.NewFromInt(3000000),
		Status:   models.TransferPending,
	}).Error)

	_, err := s.BuyPlayer(testCtx(), f.player.ID, f.buyer)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
}

func TestBuyerBudgetGuardBlocksDoubleSpend(t *testing.T) {
	s := newTestService(t)

	sellerUser, sellerTeam := seedUserWithTeam(t, s, 0)
	buyerUser, buyerTeam := seedUserWithTeam(t, s, 2500000)
	first := seedPlayer(t, s, sellerTeam, 1000000)
	second := seedPlayer(t, s, sellerTeam, 1000000)

	firstTransfer, err := s.CreateListing(testCtx(), first.ID, decimal.NewFromInt(2000000), sellerUser)
	require.NoError(t, err)
	secondTransfer, err := s.CreateListing(testCtx(), second.ID, decimal.NewFromInt(2000000), sellerUser)
	require.NoError(t, err)

	_, err = s.BuyTransfer(testCtx(), firstTransfer.ID, buyerUser)
	require.NoError(t, err)

	// The second buy exceeds what is left of the budget.
	_, err = s.BuyTransfer(testCtx(), secondTransfer.ID, buyerUser)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInvalidArgument, apperrors.KindOf(err))

	buyer := reloadTeam(t, s, buyerTeam.ID)
	assert.True(t, buyer.Budget.Equal(decimal.NewFromInt(500000)), "buyer budget %s", buyer.Budget)
	assert.Equal(t, models.TransferPending, reloadTransfer(t, s, secondTransfer.ID).Status)
}
