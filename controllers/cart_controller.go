package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wingsengineering/wingsweb/dto"
	"github.com/wingsengineering/wingsweb/localization"
	"github.com/wingsengineering/wingsweb/session"
)

func cartPayload(loc *localization.Localizer, sess *session.Session) gin.H {
	lines := sess.Cart.Lines()
	out := gin.H{
		"items": lines,
		"count": sess.Cart.TotalQuantity(),
	}
	if len(lines) == 0 {
		out["message"] = loc.T("cart.empty")
	}
	return out
}

// GET /api/cart
func (a *App) GetCart() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, loc, ok := visitor(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, cartPayload(loc, sess))
	}
}

// POST /api/cart/items
// Body: { "partId": "...", "quantity": 2 }
func (a *App) AddCartItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, loc, ok := visitor(c)
		if !ok {
			return
		}
		var body dto.AddCartItemDTO
		if err := c.ShouldBind(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		part, found := a.Snapshot.Find(body.PartID)
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "part not found"})
			return
		}

		line := sess.Cart.AddItem(part)
		if body.Quantity > 1 {
			sess.Cart.SetQuantity(part.ID, line.Quantity+body.Quantity-1)
		}

		out := cartPayload(loc, sess)
		out["message"] = loc.T("cart.added", localization.Params{"name": part.Name})
		c.JSON(http.StatusOK, out)
	}
}

// PATCH /api/cart/items/:id
// Body: { "quantity": 3 }; zero removes the line.
func (a *App) SetCartQuantity() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, loc, ok := visitor(c)
		if !ok {
			return
		}
		var body dto.SetCartQuantityDTO
		if err := c.ShouldBind(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if !sess.Cart.SetQuantity(c.Param("id"), *body.Quantity) {
			c.JSON(http.StatusNotFound, gin.H{"error": "item not in cart"})
			return
		}
		c.JSON(http.StatusOK, cartPayload(loc, sess))
	}
}

// DELETE /api/cart/items/:id
func (a *App) RemoveCartItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, loc, ok := visitor(c)
		if !ok {
			return
		}
		if !sess.Cart.RemoveItem(c.Param("id")) {
			c.JSON(http.StatusNotFound, gin.H{"error": "item not in cart"})
			return
		}
		c.JSON(http.StatusOK, cartPayload(loc, sess))
	}
}

// DELETE /api/cart
func (a *App) ClearCart() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, loc, ok := visitor(c)
		if !ok {
			return
		}
		sess.Cart.Clear()
		c.JSON(http.StatusOK, cartPayload(loc, sess))
	}
}
