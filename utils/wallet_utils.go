package utils

import (
	"errors"
	"time"

	gosqlite "github.com/glebarez/go-sqlite"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/tee-elite/circle-wallet/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Expected business outcomes of wallet actions. Handlers translate these to
// 4xx responses with stable codes; anything else is a storage failure.
var (
	ErrInvalidItem        = errors.New("invalid item")
	ErrInsufficientPoints = errors.New("insufficient points")
	ErrAlreadyRedeemed    = errors.New("already redeemed")
	ErrSoldOut            = errors.New("sold out")
	ErrWalletNotActive    = errors.New("wallet not yet active")
	ErrUnknownAction      = errors.New("unknown action")
)

const (
	pgUniqueViolationCode = "23505"
	sqliteConstraintCode  = 19
)

// isDuplicateKey reports whether err is a unique-constraint violation on
// either backing database. Uniqueness violations are the idempotency guard
// for wishlist adds and redemptions, so they must be recognised, not retried.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolationCode
	}
	var sqliteErr *gosqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code()&0xFF == sqliteConstraintCode
	}
	return false
}

// lockForUpdate takes a row lock where the database supports one. sqlite has
// no FOR UPDATE; its single-writer transactions already serialize.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// GetOrCreateWallet returns the member's wallet, creating it seeded with
// startingPoints on first access. Insert-or-ignore keeps concurrent first
// requests from failing on the unique member index.
func GetOrCreateWallet(db *gorm.DB, memberID uint, startingPoints int) (*models.Wallet, error) {
	wallet := models.Wallet{
		MemberID:      memberID,
		PointsBalance: startingPoints,
	}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "member_id"}},
		DoNothing: true,
	}).Create(&wallet).Error
	if err != nil && !isDuplicateKey(err) {
		return nil, err
	}

	var existing models.Wallet
	if err := db.Where("member_id = ?", memberID).First(&existing).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

// GetActiveItem fetches one catalog item; cost and cap must always come from
// here at action time, never from the client.
func GetActiveItem(db *gorm.DB, itemID string) (*models.WalletItem, error) {
	var item models.WalletItem
	err := db.Where("id = ? AND active = ?", itemID, true).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidItem
		}
		return nil, err
	}
	return &item, nil
}

// GetActiveItems lists the catalog in display order.
func GetActiveItems(db *gorm.DB) ([]models.WalletItem, error) {
	var items []models.WalletItem
	err := db.Where("active = ?", true).
		Order("sort_order ASC, created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// creditPoints adds amount back to the member's balance.
func creditPoints(tx *gorm.DB, memberID uint, amount int) error {
	return tx.Model(&models.Wallet{}).
		Where("member_id = ?", memberID).
		Update("points_balance", gorm.Expr("points_balance + ?", amount)).Error
}

// debitPoints subtracts amount, guarded so the balance can never go negative.
// The guard lives in the UPDATE itself; a read-then-write would lose races
// between near-simultaneous requests for the same member.
func debitPoints(tx *gorm.DB, memberID uint, amount int) error {
	result := tx.Model(&models.Wallet{}).
		Where("member_id = ? AND points_balance >= ?", memberID, amount).
		Update("points_balance", gorm.Expr("points_balance - ?", amount))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInsufficientPoints
	}
	return nil
}

// createHold inserts the wishlist row, reporting false when a concurrent
// toggle already added and paid for it. Insert-or-ignore because a raw unique
// violation aborts the surrounding transaction on postgres.
func createHold(tx *gorm.DB, memberID uint, itemID string) (bool, error) {
	entry := models.WishlistEntry{
		MemberID: memberID,
		ItemID:   itemID,
	}
	result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&entry)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ToggleWishlist flips the (member, item) hold. Adding escrows the item's
// cost against the balance; removing releases it. The whole toggle runs in
// one transaction so a failed debit rolls the entry back out.
func ToggleWishlist(db *gorm.DB, memberID uint, itemID string, startingPoints int) (int, bool, error) {
	var balance int
	var held bool

	err := db.Transaction(func(tx *gorm.DB) error {
		item, err := GetActiveItem(tx, itemID)
		if err != nil {
			return err
		}
		if _, err := GetOrCreateWallet(tx, memberID, startingPoints); err != nil {
			return err
		}

		result := tx.Where("member_id = ? AND item_id = ?", memberID, itemID).
			Delete(&models.WishlistEntry{})
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected > 0 {
			held = false
			if err := creditPoints(tx, memberID, item.Points); err != nil {
				return err
			}
		} else {
			inserted, err := createHold(tx, memberID, itemID)
			if err != nil {
				return err
			}
			held = true
			if inserted {
				if err := debitPoints(tx, memberID, item.Points); err != nil {
					return err
				}
			}
		}

		return readBalance(tx, memberID, &balance)
	})
	if err != nil {
		return 0, false, err
	}
	return balance, held, nil
}

// RedeemItem finalizes a reward claim: debits the cost, consumes capacity,
// and appends the permanent redemption record. A standing wishlist hold for
// the same item is converted rather than charged twice.
func RedeemItem(db *gorm.DB, policy ActivationPolicy, now time.Time, memberID uint, itemID string, startingPoints int) (int, error) {
	if !policy.Open(now) {
		return 0, ErrWalletNotActive
	}

	var balance int
	err := db.Transaction(func(tx *gorm.DB) error {
		// Locking the catalog row serializes capacity checks per item.
		var item models.WalletItem
		err := lockForUpdate(tx).
			Where("id = ? AND active = ?", itemID, true).
			First(&item).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidItem
			}
			return err
		}

		if _, err := GetOrCreateWallet(tx, memberID, startingPoints); err != nil {
			return err
		}

		var already int64
		err = tx.Model(&models.Redemption{}).
			Where("member_id = ? AND item_id = ?", memberID, itemID).
			Count(&already).Error
		if err != nil {
			return err
		}
		if already > 0 {
			return ErrAlreadyRedeemed
		}

		// Release any hold for this item so its cost is not counted twice.
		result := tx.Where("member_id = ? AND item_id = ?", memberID, itemID).
			Delete(&models.WishlistEntry{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			if err := creditPoints(tx, memberID, item.Points); err != nil {
				return err
			}
		}

		if err := debitPoints(tx, memberID, item.Points); err != nil {
			return err
		}

		if item.Cap != nil {
			var redeemed int64
			err := tx.Model(&models.Redemption{}).
				Where("item_id = ?", itemID).
				Count(&redeemed).Error
			if err != nil {
				return err
			}
			if redeemed >= int64(*item.Cap) {
				return ErrSoldOut
			}
		}

		redemption := models.Redemption{
			MemberID:    memberID,
			ItemID:      itemID,
			PointsSpent: item.Points,
			RedeemedAt:  now,
		}
		if err := tx.Create(&redemption).Error; err != nil {
			if isDuplicateKey(err) {
				return ErrAlreadyRedeemed
			}
			return err
		}

		return readBalance(tx, memberID, &balance)
	})
	if err != nil {
		return 0, err
	}
	return balance, nil
}

func readBalance(tx *gorm.DB, memberID uint, out *int) error {
	var wallet models.Wallet
	if err := tx.Where("member_id = ?", memberID).First(&wallet).Error; err != nil {
		return err
	}
	*out = wallet.PointsBalance
	return nil
}

// IsWalletActionError reports whether err is one of the expected business
// outcomes rather than a storage failure.
func IsWalletActionError(err error) bool {
	return errors.Is(err, ErrInvalidItem) ||
		errors.Is(err, ErrInsufficientPoints) ||
		errors.Is(err, ErrAlreadyRedeemed) ||
		errors.Is(err, ErrSoldOut) ||
		errors.Is(err, ErrWalletNotActive) ||
		errors.Is(err, ErrUnknownAction)
}

// WalletErrorCode maps a business error to its stable API code.
func WalletErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidItem):
		return "invalid_item"
	case errors.Is(err, ErrInsufficientPoints):
		return "insufficient_points"
	case errors.Is(err, ErrAlreadyRedeemed):
		return "already_redeemed"
	case errors.Is(err, ErrSoldOut):
		return "sold_out"
	case errors.Is(err, ErrWalletNotActive):
		return "wallet_not_active"
	case errors.Is(err, ErrUnknownAction):
		return "unknown_action"
	default:
		return "internal"
	}
}
