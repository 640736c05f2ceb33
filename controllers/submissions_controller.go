package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/wingsengineering/wingsweb/database"
	"github.com/wingsengineering/wingsweb/dto"
	"github.com/wingsengineering/wingsweb/models"
	"github.com/wingsengineering/wingsweb/utils"
)

const defaultAdminLimit = 20

// ====== ListSubmissions (admin) ==================================================
// GET /admin/submissions?page=1&limit=20&kind=quote&status=NEW&q=...
func (a *App) ListSubmissions() gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := utils.ClampPage(
			utils.ParseIntDefault(c.Query("page"), 1),
			utils.ParseIntDefault(c.Query("limit"), defaultAdminLimit),
			a.MaxPageSize,
		)

		filter := database.SubmissionFilter{
			Kind:   strings.TrimSpace(c.Query("kind")),
			Status: strings.TrimSpace(c.Query("status")),
			Q:      strings.TrimSpace(c.Query("q")),
			Page:   page,
			Limit:  limit,
		}
		if filter.Status != "" && !models.ValidSubmissionStatus(filter.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status value"})
			return
		}
		open, err := utils.ParseBoolQuery(c.Query("open"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid open value, expected true or false"})
			return
		}
		filter.Open = open

		items, total, err := a.Archive.List(c.Request.Context(), filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"items": items,
			"page":  page,
			"limit": limit,
			"total": total,
		})
	}
}

// ====== GetSubmission (admin) ====================================================
// GET /admin/submissions/:id
func (a *App) GetSubmission() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid submission id"})
			return
		}

		s, err := a.Archive.Get(c.Request.Context(), id)
		if errors.Is(err, database.ErrSubmissionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "submission not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, s)
	}
}

// ====== UpdateSubmissionStatus (admin) ===========================================
// PATCH /admin/submissions/:id/status
// Body: { "status": "IN_PROGRESS" }
func (a *App) UpdateSubmissionStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid submission id"})
			return
		}

		var body dto.UpdateSubmissionStatusDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid status value",
				"allowed": []string{"NEW", "IN_PROGRESS", "QUOTED", "REJECTED", "CLOSED"},
			})
			return
		}

		err = a.Archive.UpdateStatus(c.Request.Context(), id, models.SubmissionStatus(body.Status))
		if errors.Is(err, database.ErrSubmissionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "submission not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// ====== AddSubmissionNote (admin) ================================================
// POST /admin/submissions/:id/notes
// Body: { "content": "..." }
func (a *App) AddSubmissionNote() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid submission id"})
			return
		}

		var body dto.CreateSubmissionNoteDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		body.Content = strings.TrimSpace(body.Content)
		if body.Content == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "content is required"})
			return
		}

		authorID, _ := bson.ObjectIDFromHex(c.GetString("userID"))
		note := models.SubmissionNote{
			ID:          bson.NewObjectID(),
			AuthorID:    authorID,
			AuthorEmail: c.GetString("email"),
			Content:     body.Content,
			CreatedAt:   a.now(),
		}

		err = a.Archive.AddNote(c.Request.Context(), id, note)
		if errors.Is(err, database.ErrSubmissionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "submission not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, note)
	}
}

// ====== RefreshCatalog (admin) ===================================================
// POST /admin/catalog/refresh
func (a *App) RefreshCatalog() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := a.Snapshot.Refresh(c.Request.Context()); err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"source":    a.Snapshot.SourceName(),
			"items":     len(a.Snapshot.Items()),
			"fetchedAt": a.Snapshot.FetchedAt(),
		})
	}
}
