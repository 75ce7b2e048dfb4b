package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/calebwray/community-events/internal/middleware"
	"github.com/calebwray/community-events/internal/models"
	"github.com/calebwray/community-events/internal/testutils"
)

func newTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if db != nil {
		r.Use(middleware.DatabaseMiddleware(db))
	}

	r.GET("/api/auth/login", Login)
	r.GET("/api/auth/callback", Callback)
	r.POST("/api/auth/logout", Logout)
	r.POST("/api/data/event/create-event", CreateEvent)
	r.GET("/api/data/event/get-event", ListEvents)
	r.GET("/api/data/dashboard/summary", DashboardSummary)

	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func validEventBody(name string, tags ...string) string {
	quoted := make([]string, len(tags))
	for i, tag := range tags {
		quoted[i] = fmt.Sprintf("%q", tag)
	}
	return fmt.Sprintf(`{"eventName":%q,"eventDate":"2025-01-01","startTime":"18:00","endTime":"20:00","description":"Weekly meetup","location":"83 Ryans Rd","tags":[%s]}`,
		name, strings.Join(quoted, ","))
}

func TestCreateEventRejectsMissingFields(t *testing.T) {
	// Validation runs before any storage access, so no database is wired.
	r := newTestRouter(nil)

	tests := []struct {
		name string
		body string
	}{
		{"empty body", `{}`},
		{"not json", `not json`},
		{"missing name", `{"eventDate":"2025-01-01","startTime":"18:00","endTime":"20:00","description":"d","location":"l","tags":["a"]}`},
		{"missing date", `{"eventName":"Youth Group","startTime":"18:00","endTime":"20:00","description":"d","location":"l","tags":["a"]}`},
		{"missing description", `{"eventName":"Youth Group","eventDate":"2025-01-01","startTime":"18:00","endTime":"20:00","location":"l","tags":["a"]}`},
		{"missing location", `{"eventName":"Youth Group","eventDate":"2025-01-01","startTime":"18:00","endTime":"20:00","description":"d","tags":["a"]}`},
		{"empty tags", `{"eventName":"Youth Group","eventDate":"2025-01-01","startTime":"18:00","endTime":"20:00","description":"d","location":"l","tags":[]}`},
		{"blank tag entry", `{"eventName":"Youth Group","eventDate":"2025-01-01","startTime":"18:00","endTime":"20:00","description":"d","location":"l","tags":["  "]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(r, "/api/data/event/create-event", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "Please provide all the required fields")
		})
	}
}

func TestCreateEventRejectsInvalidValues(t *testing.T) {
	r := newTestRouter(nil)

	tests := []struct {
		name string
		body string
	}{
		{"bad start time", `{"eventName":"Youth Group","eventDate":"2025-01-01","startTime":"25:00","endTime":"20:00","description":"d","location":"l","tags":["a"]}`},
		{"bad end time", `{"eventName":"Youth Group","eventDate":"2025-01-01","startTime":"18:00","endTime":"20:61","description":"d","location":"l","tags":["a"]}`},
		{"short name", `{"eventName":"Y","eventDate":"2025-01-01","startTime":"18:00","endTime":"20:00","description":"d","location":"l","tags":["a"]}`},
		{"punctuated name", `{"eventName":"Youth Group!","eventDate":"2025-01-01","startTime":"18:00","endTime":"20:00","description":"d","location":"l","tags":["a"]}`},
		{"bad date", `{"eventName":"Youth Group","eventDate":"soon","startTime":"18:00","endTime":"20:00","description":"d","location":"l","tags":["a"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(r, "/api/data/event/create-event", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(model).Count(&count).Error)
	return count
}

func TestCreateEventPersistsTagsAndJoins(t *testing.T) {
	db := testutils.SetupTestDB(t)
	r := newTestRouter(db)

	eventsBefore := countRows(t, db, &models.Event{})
	tagsBefore := countRows(t, db, &models.Tag{})
	joinsBefore := countRows(t, db, &models.EventTag{})

	w := postJSON(r, "/api/data/event/create-event", validEventBody("Youth Group", "Youth", "Social"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var created models.Event
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Youth Group", created.EventName)
	assert.Len(t, created.Tags, 2)

	assert.Equal(t, eventsBefore+1, countRows(t, db, &models.Event{}))
	assert.Equal(t, tagsBefore+2, countRows(t, db, &models.Tag{}))
	assert.Equal(t, joinsBefore+2, countRows(t, db, &models.EventTag{}))

	var youth models.Tag
	require.NoError(t, db.Where("name = ?", "Youth").First(&youth).Error)
	assert.Equal(t, "youth", youth.Value)
}

func TestCreateEventRejectsDuplicateName(t *testing.T) {
	db := testutils.SetupTestDB(t)
	r := newTestRouter(db)

	w := postJSON(r, "/api/data/event/create-event", validEventBody("Youth Group", "Youth", "Social"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	eventsBefore := countRows(t, db, &models.Event{})
	tagsBefore := countRows(t, db, &models.Tag{})
	joinsBefore := countRows(t, db, &models.EventTag{})

	w = postJSON(r, "/api/data/event/create-event", validEventBody("Youth Group", "Youth", "Social"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Event already exists")

	assert.Equal(t, eventsBefore, countRows(t, db, &models.Event{}))
	assert.Equal(t, tagsBefore, countRows(t, db, &models.Tag{}))
	assert.Equal(t, joinsBefore, countRows(t, db, &models.EventTag{}))
}

func TestCreateEventReusesExistingTags(t *testing.T) {
	db := testutils.SetupTestDB(t)
	r := newTestRouter(db)

	existing := models.Tag{Value: "youth", Name: "Youth"}
	require.NoError(t, db.Create(&existing).Error)
	tagsBefore := countRows(t, db, &models.Tag{})

	w := postJSON(r, "/api/data/event/create-event", validEventBody("Board Games", "Youth", "Games"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Only "Games" is new; "Youth" resolves to the seeded row.
	assert.Equal(t, tagsBefore+1, countRows(t, db, &models.Tag{}))

	var created models.Event
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	ids := make(map[uint]bool)
	for _, tag := range created.Tags {
		ids[tag.ID] = true
	}
	assert.True(t, ids[existing.ID])
}

func TestGetEventIdempotent(t *testing.T) {
	db := testutils.SetupTestDB(t)
	r := newTestRouter(db)

	w := postJSON(r, "/api/data/event/create-event", validEventBody("Youth Group", "Youth"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = postJSON(r, "/api/data/event/create-event", validEventBody("Board Games", "Games"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/data/event/get-event", nil))
	require.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/api/data/event/get-event", nil))
	require.Equal(t, http.StatusOK, second.Code)

	assert.JSONEq(t, first.Body.String(), second.Body.String())

	var events []models.Event
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &events))
	assert.GreaterOrEqual(t, len(events), 2)
}
