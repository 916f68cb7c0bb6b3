package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yavrumyan/B2BPortal/internal/models"
	"github.com/yavrumyan/B2BPortal/pkg/database"
)

type SettingsHandler struct{}

// loadSettings returns the single settings row, creating it with the default
// markups on first access.
func loadSettings(db *gorm.DB) (models.Settings, error) {
	var settings models.Settings
	err := db.First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.Settings{
			CorporateMarkupPercentage:  10,
			GovernmentMarkupPercentage: 10,
		}
		err = db.Create(&settings).Error
	}
	return settings, err
}

func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := loadSettings(database.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get settings"})
		return
	}
	c.JSON(http.StatusOK, settings)
}

type UpdateSettingsRequest struct {
	CorporateMarkupPercentage  *int `json:"corporate_markup_percentage"`
	GovernmentMarkupPercentage *int `json:"government_markup_percentage"`
}

func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Markups are validated here, at the settings edge; the pricing calculator
	// itself computes whatever it is given.
	if req.CorporateMarkupPercentage != nil && (*req.CorporateMarkupPercentage < 0 || *req.CorporateMarkupPercentage > 100) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Corporate markup percentage must be between 0 and 100"})
		return
	}
	if req.GovernmentMarkupPercentage != nil && (*req.GovernmentMarkupPercentage < 0 || *req.GovernmentMarkupPercentage > 100) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Government markup percentage must be between 0 and 100"})
		return
	}

	settings, err := loadSettings(database.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get settings"})
		return
	}

	updates := map[string]interface{}{}
	if req.CorporateMarkupPercentage != nil {
		updates["corporate_markup_percentage"] = *req.CorporateMarkupPercentage
	}
	if req.GovernmentMarkupPercentage != nil {
		updates["government_markup_percentage"] = *req.GovernmentMarkupPercentage
	}
	if len(updates) > 0 {
		if err := database.DB.Model(&settings).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update settings"})
			return
		}
	}

	settings, err = loadSettings(database.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get settings"})
		return
	}
	c.JSON(http.StatusOK, settings)
}
