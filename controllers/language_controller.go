package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wingsengineering/wingsweb/dto"
	"github.com/wingsengineering/wingsweb/localization"
	"github.com/wingsengineering/wingsweb/middleware"
)

// GET /api/translations
func (a *App) Translations() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, loc, ok := visitor(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"language": loc.Language(),
			"messages": loc.Table(),
		})
	}
}

// POST /api/language
// Body: { "language": "sw" }
func (a *App) SetLanguage() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, loc, ok := visitor(c)
		if !ok {
			return
		}
		var body dto.SetLanguageDTO
		if err := c.ShouldBind(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := loc.SetLanguage(localization.Language(body.Language)); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		middleware.SetLanguageCookie(c, a.Cookies, loc.Language())

		c.JSON(http.StatusOK, gin.H{
			"language": loc.Language(),
			"messages": loc.Table(),
		})
	}
}
