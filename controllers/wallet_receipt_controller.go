package controllers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/tee-elite/circle-wallet/config"
	"github.com/tee-elite/circle-wallet/middleware"
	"github.com/tee-elite/circle-wallet/models"
	"github.com/tee-elite/circle-wallet/utils"
	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"gorm.io/gorm"
)

// DownloadRedemptionReceipt generates a PDF receipt for one of the member's
// finalized redemptions. Holds have no receipt; only permanent claims do.
func DownloadRedemptionReceipt(c *gin.Context) {
	member, ok := middleware.MemberFromContext(c)
	if !ok {
		utils.Unauthorized(c, "Please login for access")
		return
	}

	itemID := c.Param("itemId")
	var redemption models.Redemption
	err := config.DB.Where("member_id = ? AND item_id = ?", member.ID, itemID).
		First(&redemption).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Redemption not found")
			return
		}
		utils.LogError("Failed to load redemption for receipt: %v", err)
		utils.InternalServerError(c, "Failed to generate receipt", nil)
		return
	}

	var item models.WalletItem
	itemName := redemption.ItemID
	if err := config.DB.First(&item, "id = ?", redemption.ItemID).Error; err == nil {
		itemName = item.Name
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(100, 10, "The Tee Elite Circle")
	pdf.SetFont("Arial", "", 12)
	pdf.Ln(8)
	pdf.Cell(100, 8, "Member Rewards Wallet")
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(100, 10, "REDEMPTION RECEIPT")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(60, 8, "Member: "+member.Name)
	pdf.Ln(6)
	pdf.Cell(60, 8, "Email: "+member.Email)
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(100, 8, "Reward")
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(100, 8, itemName)
	pdf.Ln(6)
	pdf.Cell(100, 8, fmt.Sprintf("Points spent: %d", redemption.PointsSpent))
	pdf.Ln(6)
	pdf.Cell(100, 8, "Redeemed at: "+redemption.RedeemedAt.Format("2006-01-02 15:04:05"))
	pdf.Ln(12)

	pdf.SetFont("Arial", "I", 10)
	pdf.Cell(100, 8, "Redemptions are final and non-transferable.")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.LogError("Failed to generate receipt PDF: %v", err)
		utils.InternalServerError(c, "Failed to generate receipt", nil)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=receipt_%s.pdf", redemption.ItemID))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
