package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/calebwray/community-events/internal/helpers"
	"github.com/calebwray/community-events/internal/models"
)

type CreateEventRequest struct {
	EventName   string   `json:"eventName"`
	EventDate   string   `json:"eventDate"`
	StartTime   string   `json:"startTime"`
	EndTime     string   `json:"endTime"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Tags        []string `json:"tags"`
}

func CreateEvent(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Please provide all the required fields")
		return
	}

	if req.EventName == "" || req.EventDate == "" || req.StartTime == "" || req.EndTime == "" ||
		req.Description == "" || req.Location == "" || len(req.Tags) == 0 {
		helpers.RespondWithError(c, http.StatusBadRequest, "Please provide all the required fields")
		return
	}
	for _, tagName := range req.Tags {
		if helpers.NormalizeTagValue(tagName) == "" {
			helpers.RespondWithError(c, http.StatusBadRequest, "Please provide all the required fields")
			return
		}
	}

	if err := helpers.ValidateEventName(req.EventName); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := helpers.ValidateTime(req.StartTime); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := helpers.ValidateTime(req.EndTime); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	eventDate, err := helpers.ParseEventDate(req.EventDate)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid date format (use RFC3339 or YYYY-MM-DD)")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var existing models.Event
	if err := gormDB.Where("event_name = ?", req.EventName).First(&existing).Error; err == nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Event already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		helpers.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	event := models.Event{
		EventName:   req.EventName,
		EventDate:   eventDate,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Description: req.Description,
		Location:    req.Location,
	}

	// Resolve tags and create the event with its join rows in one
	// transaction, so tag rows from a failed submission don't stick around.
	err = gormDB.Transaction(func(tx *gorm.DB) error {
		var eventTags []models.Tag
		for _, tagName := range req.Tags {
			var tag models.Tag
			if err := tx.Where("name = ?", tagName).
				FirstOrCreate(&tag, models.Tag{Value: helpers.NormalizeTagValue(tagName), Name: tagName}).Error; err != nil {
				return err
			}
			eventTags = append(eventTags, tag)
		}

		event.Tags = eventTags
		return tx.Create(&event).Error
	})
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, event)
}

func ListEvents(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var events []models.Event
	if err := gormDB.Preload("Tags").Order("event_date asc").Find(&events).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, events)
}
