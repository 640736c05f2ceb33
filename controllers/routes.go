package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Register mounts the site routes. visitorMW must attach the session and
// localizer; authMW guards the admin group, which is only mounted when
// the archive and accounts are available.
func (a *App) Register(r *gin.Engine, visitorMW, authMW gin.HandlerFunc) {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	site := r.Group("/", visitorMW)
	site.GET("/", a.Landing())

	api := site.Group("/api")
	{
		api.GET("/parts", a.ListParts())
		api.GET("/parts/:id", a.GetPart())
		api.GET("/compatibility", a.Compatibility())
		api.GET("/translations", a.Translations())
		api.POST("/language", a.SetLanguage())
		api.GET("/whatsapp", a.WhatsAppLink())

		api.GET("/cart", a.GetCart())
		api.POST("/cart/items", a.AddCartItem())
		api.PATCH("/cart/items/:id", a.SetCartQuantity())
		api.DELETE("/cart/items/:id", a.RemoveCartItem())
		api.DELETE("/cart", a.ClearCart())

		api.POST("/contact", a.SubmitContact())
		api.POST("/quote", a.SubmitQuote())
		api.POST("/booking", a.SubmitBooking())
	}

	if a.Archive == nil || a.Accounts == nil {
		return
	}

	r.POST("/auth/login", a.Login())
	r.POST("/auth/refresh", a.Refresh())
	r.POST("/auth/logout", a.Logout())

	admin := r.Group("/admin")
	admin.Use(authMW)
	{
		admin.GET("/submissions", a.ListSubmissions())
		admin.GET("/submissions/:id", a.GetSubmission())
		admin.PATCH("/submissions/:id/status", a.UpdateSubmissionStatus())
		admin.POST("/submissions/:id/notes", a.AddSubmissionNote())
		admin.POST("/catalog/refresh", a.RefreshCatalog())
		admin.POST("/users/me/password", a.ChangeMyPassword())
	}
}
