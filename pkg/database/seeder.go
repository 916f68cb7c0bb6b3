package database

import (
	"log"

	"gorm.io/gorm"

	"github.com/yavrumyan/B2BPortal/config"
	"github.com/yavrumyan/B2BPortal/internal/models"
	"github.com/yavrumyan/B2BPortal/internal/utils"
)

// SeedAdminAndSettings creates the admin account and the settings row when the
// database is empty. Safe to run on every startup.
func SeedAdminAndSettings() {
	// Settings row (single row, defaults 10/10)
	var settings models.Settings
	if err := DB.First(&settings).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			settings = models.Settings{
				CorporateMarkupPercentage:  10,
				GovernmentMarkupPercentage: 10,
			}
			if err := DB.Create(&settings).Error; err != nil {
				log.Printf("Failed to seed settings: %v", err)
			}
		}
	}

	adminEmail := config.AppConfig.Defaults.AdminEmail
	if adminEmail == "" {
		return
	}

	var admin models.Customer
	if err := DB.Where("email = ?", adminEmail).First(&admin).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			hashedPassword, hashErr := utils.HashPassword(config.AppConfig.Defaults.AdminPassword)
			if hashErr != nil {
				log.Printf("Failed to hash admin password: %v", hashErr)
				return
			}
			admin = models.Customer{
				CompanyName:        config.AppConfig.Defaults.CompanyName,
				TaxID:              "00000000",
				DeliveryAddress:    "-",
				RepresentativeName: "Administrator",
				Email:              adminEmail,
				PasswordHash:       hashedPassword,
				Role:               models.RoleAdmin,
				Status:             models.StatusApproved,
				CustomerType:       models.TypeReseller,
			}
			if err := DB.Create(&admin).Error; err != nil {
				log.Printf("Failed to seed admin account: %v", err)
			} else {
				log.Println("Admin account seeded successfully.")
			}
		}
	}
}
