package controllers

import (
	"fmt"
	"time"

	"github.com/tealeg/xlsx"

	"github.com/tee-elite/circle-wallet/config"
	"github.com/tee-elite/circle-wallet/models"
	"github.com/tee-elite/circle-wallet/utils"
	"github.com/gin-gonic/gin"
)

// DownloadWalletReportExcel exports the redemption ledger as an Excel
// workbook for fulfilment planning.
func DownloadWalletReportExcel(c *gin.Context) {
	utils.LogInfo("DownloadWalletReportExcel called")

	var rows []struct {
		Name        string
		Email       string
		ItemID      string
		ItemName    string
		PointsSpent int
		RedeemedAt  time.Time
	}
	err := config.DB.Model(&models.Redemption{}).
		Select("members.name, members.email, redemptions.item_id, COALESCE(wallet_items.name, redemptions.item_id) as item_name, redemptions.points_spent, redemptions.redeemed_at").
		Joins("JOIN members ON members.id = redemptions.member_id").
		Joins("LEFT JOIN wallet_items ON wallet_items.id = redemptions.item_id").
		Order("redemptions.redeemed_at ASC").
		Scan(&rows).Error
	if err != nil {
		utils.LogError("Failed to load redemptions for export: %v", err)
		utils.InternalServerError(c, "Failed to export report", nil)
		return
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Redemptions")
	if err != nil {
		utils.LogError("Failed to create Excel sheet: %v", err)
		utils.InternalServerError(c, "Failed to export report", nil)
		return
	}

	titleRow := sheet.AddRow()
	titleRow.AddCell().SetString("TEE ELITE CIRCLE - Rewards Redemption Report")
	generatedRow := sheet.AddRow()
	generatedRow.AddCell().SetString("Generated: " + time.Now().Format("2006-01-02 15:04"))
	sheet.AddRow() // spacing

	headers := []string{"Member", "Email", "Item ID", "Item Name", "Points Spent", "Redeemed At"}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		cell := headerRow.AddCell()
		cell.SetString(h)
		style := xlsx.NewStyle()
		font := xlsx.DefaultFont()
		font.Bold = true
		style.Font = *font
		cell.SetStyle(style)
	}

	totalPoints := 0
	for _, row := range rows {
		excelRow := sheet.AddRow()
		excelRow.AddCell().SetString(row.Name)
		excelRow.AddCell().SetString(row.Email)
		excelRow.AddCell().SetString(row.ItemID)
		excelRow.AddCell().SetString(row.ItemName)
		excelRow.AddCell().SetInt(row.PointsSpent)
		excelRow.AddCell().SetString(row.RedeemedAt.Format("2006-01-02 15:04"))
		totalPoints += row.PointsSpent
	}

	sheet.AddRow() // spacing
	summaryRow := sheet.AddRow()
	summaryRow.AddCell().SetString("Total redemptions")
	summaryRow.AddCell().SetInt(len(rows))
	summaryRow = sheet.AddRow()
	summaryRow.AddCell().SetString("Total points collected")
	summaryRow.AddCell().SetInt(totalPoints)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=wallet_redemptions_%s.xlsx", time.Now().Format("2006-01-02")))
	if err := file.Write(c.Writer); err != nil {
		utils.LogError("Failed to write Excel file: %v", err)
		utils.InternalServerError(c, "Failed to export report", nil)
		return
	}
	utils.LogInfo("Successfully exported %d redemptions", len(rows))
}
