package utils

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tee-elite/circle-wallet/config"
	"github.com/tee-elite/circle-wallet/models"
	"gorm.io/gorm"
)

const testStartingPoints = 100

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(t.TempDir()+"/wallet.db"), &gorm.Config{})
	require.NoError(t, err)

	// Single connection: racing transactions queue instead of hitting
	// sqlite busy errors.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	config.MigrateDB(db)
	return db
}

func capOf(n int) *int {
	return &n
}

func seedItem(t *testing.T, db *gorm.DB, id string, points int, cap *int) {
	t.Helper()
	item := models.WalletItem{
		ID:           id,
		Name:         "Test " + id,
		Tagline:      "tagline",
		Points:       points,
		Cap:          cap,
		AvailableNow: true,
		Active:       true,
		SortOrder:    1,
	}
	require.NoError(t, db.Create(&item).Error)
}

func openPolicy() ActivationPolicy {
	return ActivationPolicy{
		ActivationDate: time.Now().Add(-time.Hour),
		ExpiryDays:     30,
	}
}

func memberBalance(t *testing.T, db *gorm.DB, memberID uint) int {
	t.Helper()
	var wallet models.Wallet
	require.NoError(t, db.Where("member_id = ?", memberID).First(&wallet).Error)
	return wallet.PointsBalance
}

func TestGetOrCreateWalletSeedsStartingPoints(t *testing.T) {
	db := newTestDB(t)

	wallet, err := GetOrCreateWallet(db, 1, testStartingPoints)
	require.NoError(t, err)
	assert.Equal(t, testStartingPoints, wallet.PointsBalance)

	// Second call must return the same wallet, not reseed it.
	require.NoError(t, db.Model(&models.Wallet{}).
		Where("member_id = ?", uint(1)).
		Update("points_balance", 40).Error)

	again, err := GetOrCreateWallet(db, 1, testStartingPoints)
	require.NoError(t, err)
	assert.Equal(t, wallet.ID, again.ID)
	assert.Equal(t, 40, again.PointsBalance)
}

func TestGetActiveItemRejectsUnknownAndInactive(t *testing.T) {
	db := newTestDB(t)
	seedItem(t, db, "vault", 25, nil)

	item, err := GetActiveItem(db, "vault")
	require.NoError(t, err)
	assert.Equal(t, 25, item.Points)

	_, err = GetActiveItem(db, "missing")
	assert.ErrorIs(t, err, ErrInvalidItem)

	require.NoError(t, db.Model(&models.WalletItem{}).
		Where("id = ?", "vault").
		Update("active", false).Error)
	_, err = GetActiveItem(db, "vault")
	assert.ErrorIs(t, err, ErrInvalidItem)
}

func TestGetActiveItemsOrdersBySortOrder(t *testing.T) {
	db := newTestDB(t)
	first := models.WalletItem{ID: "b-item", Name: "B", Points: 10, Active: true, SortOrder: 2}
	second := models.WalletItem{ID: "a-item", Name: "A", Points: 10, Active: true, SortOrder: 1}
	require.NoError(t, db.Create(&first).Error)
	require.NoError(t, db.Create(&second).Error)

	items, err := GetActiveItems(db)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "a-item", items[0].ID)
	assert.Equal(t, "b-item", items[1].ID)
}

func TestToggleWishlistEscrowsAndReleases(t *testing.T) {
	db := newTestDB(t)
	seedItem(t, db, "ray", 30, capOf(12))

	balance, held, err := ToggleWishlist(db, 1, "ray", testStartingPoints)
	require.NoError(t, err)
	assert.True(t, held)
	assert.Equal(t, 70, balance)

	var count int64
	require.NoError(t, db.Model(&models.WishlistEntry{}).
		Where("member_id = ? AND item_id = ?", uint(1), "ray").
		Count(&count).Error)
	assert.Equal(t, int64(1), count)

	balance, held, err = ToggleWishlist(db, 1, "ray", testStartingPoints)
	require.NoError(t, err)
	assert.False(t, held)
	assert.Equal(t, testStartingPoints, balance)

	require.NoError(t, db.Model(&models.WishlistEntry{}).
		Where("member_id = ? AND item_id = ?", uint(1), "ray").
		Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestToggleWishlistInsufficientPointsRollsBack(t *testing.T) {
	db := newTestDB(t)
	seedItem(t, db, "sprint", 75, capOf(8))
	seedItem(t, db, "roundtable", 60, capOf(12))

	_, _, err := ToggleWishlist(db, 1, "sprint", testStartingPoints)
	require.NoError(t, err)

	_, _, err = ToggleWishlist(db, 1, "roundtable", testStartingPoints)
	assert.ErrorIs(t, err, ErrInsufficientPoints)

	// The failed hold must not survive the rollback.
	var count int64
	require.NoError(t, db.Model(&models.WishlistEntry{}).
		Where("member_id = ? AND item_id = ?", uint(1), "roundtable").
		Count(&count).Error)
	assert.Equal(t, int64(0), count)
	assert.Equal(t, 25, memberBalance(t, db, 1))
}

func TestToggleWishlistUnknownItem(t *testing.T) {
	db := newTestDB(t)

	_, _, err := ToggleWishlist(db, 1, "nope", testStartingPoints)
	assert.ErrorIs(t, err, ErrInvalidItem)
}

func TestRedeemItemDebitsAndRecords(t *testing.T) {
	db := newTestDB(t)
	seedItem(t, db, "vault", 25, nil)

	now := time.Now()
	balance, err := RedeemItem(db, openPolicy(), now, 1, "vault", testStartingPoints)
	require.NoError(t, err)
	assert.Equal(t, 75, balance)

	var redemption models.Redemption
	require.NoError(t, db.Where("member_id = ? AND item_id = ?", uint(1), "vault").
		First(&redemption).Error)
	assert.Equal(t, 25, redemption.PointsSpent)
	assert.WithinDuration(t, now, redemption.RedeemedAt, time.Second)
}

func TestRedeemItemIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	seedItem(t, db, "vault", 25, nil)

	_, err := RedeemItem(db, openPolicy(), time.Now(), 1, "vault", testStartingPoints)
	require.NoError(t, err)

	_, err = RedeemItem(db, openPolicy(), time.Now(), 1, "vault", testStartingPoints)
	assert.ErrorIs(t, err, ErrAlreadyRedeemed)

	assert.Equal(t, 75, memberBalance(t, db, 1))

	var count int64
	require.NoError(t, db.Model(&models.Redemption{}).
		Where("member_id = ?", uint(1)).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRedeemItemConvertsWishlistHold(t *testing.T) {
	db := newTestDB(t)
	seedItem(t, db, "ray", 30, capOf(12))

	balance, _, err := ToggleWishlist(db, 1, "ray", testStartingPoints)
	require.NoError(t, err)
	require.Equal(t, 70, balance)

	// The escrowed hold converts; the cost is not charged a second time.
	balance, err = RedeemItem(db, openPolicy(), time.Now(), 1, "ray", testStartingPoints)
	require.NoError(t, err)
	assert.Equal(t, 70, balance)

	var count int64
	require.NoError(t, db.Model(&models.WishlistEntry{}).
		Where("member_id = ? AND item_id = ?", uint(1), "ray").
		Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestRedeemItemInsufficientPoints(t *testing.T) {
	db := newTestDB(t)
	seedItem(t, db, "sprint", 75, capOf(8))
	seedItem(t, db, "roundtable", 60, capOf(12))

	_, err := RedeemItem(db, openPolicy(), time.Now(), 1, "sprint", testStartingPoints)
	require.NoError(t, err)

	_, err = RedeemItem(db, openPolicy(), time.Now(), 1, "roundtable", testStartingPoints)
	assert.ErrorIs(t, err, ErrInsufficientPoints)
	assert.Equal(t, 25, memberBalance(t, db, 1))
}

func TestRedeemItemCapSellsOut(t *testing.T) {
	db := newTestDB(t)
	seedItem(t, db, "dinner", 10, capOf(1))

	_, err := RedeemItem(db, openPolicy(), time.Now(), 1, "dinner", testStartingPoints)
	require.NoError(t, err)

	_, err = RedeemItem(db, openPolicy(), time.Now(), 2, "dinner", testStartingPoints)
	assert.ErrorIs(t, err, ErrSoldOut)

	// The losing member's debit must roll back with the transaction.
	assert.Equal(t, testStartingPoints, memberBalance(t, db, 2))

	var count int64
	require.NoError(t, db.Model(&models.Redemption{}).
		Where("item_id = ?", "dinner").
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRedeemItemBeforeActivation(t *testing.T) {
	db := newTestDB(t)
	seedItem(t, db, "vault", 25, nil)

	closed := ActivationPolicy{
		ActivationDate: time.Now().Add(24 * time.Hour),
		ExpiryDays:     30,
	}
	_, err := RedeemItem(db, closed, time.Now(), 1, "vault", testStartingPoints)
	assert.ErrorIs(t, err, ErrWalletNotActive)

	var count int64
	require.NoError(t, db.Model(&models.Redemption{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestRedeemItemUnknownItem(t *testing.T) {
	db := newTestDB(t)

	_, err := RedeemItem(db, openPolicy(), time.Now(), 1, "nope", testStartingPoints)
	assert.ErrorIs(t, err, ErrInvalidItem)
}

func TestCreateHoldTreatsExistingRowAsConcurrentAdd(t *testing.T) {
	db := newTestDB(t)
	seedItem(t, db, "ray", 30, capOf(12))
	require.NoError(t, db.Create(&models.WishlistEntry{MemberID: 1, ItemID: "ray"}).Error)

	err := db.Transaction(func(tx *gorm.DB) error {
		inserted, err := createHold(tx, 1, "ray")
		require.NoError(t, err)
		assert.False(t, inserted)

		// The transaction must stay usable after the conflicting insert.
		var item models.WalletItem
		return tx.First(&item, "id = ?", "ray").Error
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.WishlistEntry{}).
		Where("member_id = ? AND item_id = ?", uint(1), "ray").
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestConcurrentToggleSamePair(t *testing.T) {
	db := newTestDB(t)
	seedItem(t, db, "ray", 30, capOf(12))

	var wg sync.WaitGroup
	heldValues := make([]bool, 2)
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, heldValues[i], errs[i] = ToggleWishlist(db, 1, "ray", testStartingPoints)
		}(i)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	// One toggle added the hold, the other released it.
	assert.NotEqual(t, heldValues[0], heldValues[1])
	assert.Equal(t, testStartingPoints, memberBalance(t, db, 1))

	var count int64
	require.NoError(t, db.Model(&models.WishlistEntry{}).
		Where("member_id = ?", uint(1)).
		Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestConcurrentRedeemSamePair(t *testing.T) {
	db := newTestDB(t)
	seedItem(t, db, "vault", 25, nil)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = RedeemItem(db, openPolicy(), time.Now(), 1, "vault", testStartingPoints)
		}(i)
	}
	wg.Wait()

	var succeeded, refused int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrAlreadyRedeemed):
			refused++
		default:
			t.Fatalf("unexpected redeem error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, refused)

	assert.Equal(t, 75, memberBalance(t, db, 1))

	var count int64
	require.NoError(t, db.Model(&models.Redemption{}).
		Where("member_id = ? AND item_id = ?", uint(1), "vault").
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestConcurrentRedeemRespectsCap(t *testing.T) {
	db := newTestDB(t)
	seedItem(t, db, "dinner", 10, capOf(1))

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			memberID := uint(i + 1)
			_, errs[i] = RedeemItem(db, openPolicy(), time.Now(), memberID, "dinner", testStartingPoints)
		}(i)
	}
	wg.Wait()

	var succeeded, soldOut int
	winners := []uint{}
	for i, err := range errs {
		switch {
		case err == nil:
			succeeded++
			winners = append(winners, uint(i+1))
		case errors.Is(err, ErrSoldOut):
			soldOut++
		default:
			t.Fatalf("unexpected redeem error: %v", err)
		}
	}
	require.Equal(t, 1, succeeded)
	require.Equal(t, 1, soldOut)

	var count int64
	require.NoError(t, db.Model(&models.Redemption{}).
		Where("item_id = ?", "dinner").
		Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// Only the winner pays; the loser's debit rolls back.
	assert.Equal(t, 90, memberBalance(t, db, winners[0]))
	loser := uint(3) - winners[0]
	assert.Equal(t, testStartingPoints, memberBalance(t, db, loser))
}

func TestIsDuplicateKeyRecognisesConstraintViolation(t *testing.T) {
	db := newTestDB(t)

	first := models.WishlistEntry{MemberID: 1, ItemID: "ray"}
	require.NoError(t, db.Create(&first).Error)

	second := models.WishlistEntry{MemberID: 1, ItemID: "ray"}
	err := db.Create(&second).Error
	require.Error(t, err)
	assert.True(t, isDuplicateKey(err))

	assert.False(t, isDuplicateKey(nil))
	assert.False(t, isDuplicateKey(errors.New("connection reset")))
}

func TestIsWalletActionError(t *testing.T) {
	for _, err := range []error{
		ErrInvalidItem,
		ErrInsufficientPoints,
		ErrAlreadyRedeemed,
		ErrSoldOut,
		ErrWalletNotActive,
		ErrUnknownAction,
	} {
		assert.True(t, IsWalletActionError(err), err.Error())
	}
	assert.False(t, IsWalletActionError(errors.New("disk full")))
	assert.False(t, IsWalletActionError(nil))
}

func TestWalletErrorCode(t *testing.T) {
	assert.Equal(t, "invalid_item", WalletErrorCode(ErrInvalidItem))
	assert.Equal(t, "insufficient_points", WalletErrorCode(ErrInsufficientPoints))
	assert.Equal(t, "already_redeemed", WalletErrorCode(ErrAlreadyRedeemed))
	assert.Equal(t, "sold_out", WalletErrorCode(ErrSoldOut))
	assert.Equal(t, "wallet_not_active", WalletErrorCode(ErrWalletNotActive))
	assert.Equal(t, "unknown_action", WalletErrorCode(ErrUnknownAction))
	assert.Equal(t, "internal", WalletErrorCode(errors.New("disk full")))
}
