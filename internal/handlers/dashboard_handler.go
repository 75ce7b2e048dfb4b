package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/calebwray/community-events/internal/helpers"
	"github.com/calebwray/community-events/internal/models"
)

// DashboardSummary returns event/tag counts and the next upcoming events.
func DashboardSummary(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var eventCount int64
	if err := gormDB.Model(&models.Event{}).Count(&eventCount).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	var tagCount int64
	if err := gormDB.Model(&models.Tag{}).Count(&tagCount).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	var upcoming []models.Event
	today := time.Now().UTC().Truncate(24 * time.Hour)
	if err := gormDB.Preload("Tags").Where("event_date >= ?", today).
		Order("event_date asc").Limit(5).Find(&upcoming).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events":   eventCount,
		"tags":     tagCount,
		"upcoming": upcoming,
	})
}
