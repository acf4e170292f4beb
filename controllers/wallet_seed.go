package controllers

import (
	"github.com/tee-elite/circle-wallet/config"
	"github.com/tee-elite/circle-wallet/models"
	"github.com/tee-elite/circle-wallet/utils"
	"gorm.io/gorm/clause"
)

// CreateDefaultWalletItems seeds the reward catalog on first boot. Existing
// rows are never touched; admins own the catalog once it is populated.
func CreateDefaultWalletItems() error {
	var count int64
	if err := config.DB.Model(&models.WalletItem{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	utils.LogInfo("No wallet items found, seeding default catalog")
	return config.DB.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.DefaultWalletItems).Error
}
