package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"

	"github.com/wingsengineering/wingsweb/database"
	"github.com/wingsengineering/wingsweb/dto"
	"github.com/wingsengineering/wingsweb/models"
	"github.com/wingsengineering/wingsweb/utils"
)

const refreshCookie = "refreshToken"

// POST /auth/login
func (a *App) Login() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var body dto.LoginDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		user, err := a.Accounts.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(body.Email)))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		if err := utils.CheckPassword(user.PasswordHash, body.Password); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		if !user.IsActive {
			c.JSON(http.StatusForbidden, gin.H{"error": "account disabled"})
			return
		}

		if !a.issueTokens(c, user, nil) {
			return
		}
		if err := a.Accounts.TouchLastLogin(ctx, user.ID); err != nil {
			a.logger().Warn("failed to record login", zap.String("user", user.ID.Hex()), zap.Error(err))
		}
	}
}

// issueTokens answers with a fresh access token and sets a new refresh
// cookie. When old is set it is rotated out in the same step.
func (a *App) issueTokens(c *gin.Context, user models.User, old *models.RefreshToken) bool {
	ctx := c.Request.Context()

	accessToken, err := utils.GenerateAccessToken(a.JWTSecret, user.ID.Hex(), user.Email, string(user.Role), a.AccessTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate access token"})
		return false
	}
	refreshToken, err := utils.GenerateRefreshToken(a.JWTRefreshSecret, user.ID.Hex(), a.RefreshTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate refresh token"})
		return false
	}

	if old != nil {
		err = a.Accounts.RotateRefreshToken(ctx, *old, refreshToken, c.Request.UserAgent(), a.RefreshTTL)
	} else {
		err = a.Accounts.StoreRefreshToken(ctx, user.ID, refreshToken, c.Request.UserAgent(), a.RefreshTTL)
	}
	if errors.Is(err, database.ErrRefreshTokenNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		return false
	}
	if err != nil {
		a.logger().Error("failed to store refresh token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store refresh token"})
		return false
	}

	utils.SetRefreshCookie(c, a.Cookies, refreshToken, a.RefreshTTL)
	c.JSON(http.StatusOK, gin.H{"accessToken": accessToken})
	return true
}

// POST /auth/refresh
func (a *App) Refresh() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		token, err := c.Cookie(refreshCookie)
		if err != nil || token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing refresh token"})
			return
		}
		if _, err := utils.ValidateToken(token, a.JWTRefreshSecret); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
			return
		}
		rt, err := a.Accounts.FindRefreshToken(ctx, token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
			return
		}

		user, err := a.Accounts.FindUserByID(ctx, rt.UserID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user"})
			return
		}
		if !user.IsActive {
			c.JSON(http.StatusForbidden, gin.H{"error": "account disabled"})
			return
		}

		a.issueTokens(c, user, &rt)
	}
}

// POST /auth/logout
func (a *App) Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(refreshCookie)
		utils.ClearRefreshCookie(c, a.Cookies)

		// best effort revoke
		if token != "" {
			if err := a.Accounts.RevokeRefreshToken(c.Request.Context(), token); err != nil {
				a.logger().Warn("failed to revoke refresh token", zap.Error(err))
			}
		}

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// POST /admin/users/me/password
func (a *App) ChangeMyPassword() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var body dto.ChangeMyPasswordDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		userID, err := bson.ObjectIDFromHex(c.GetString("userID"))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid auth context"})
			return
		}

		user, err := a.Accounts.FindUserByID(ctx, userID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user"})
			return
		}
		if err := utils.CheckPassword(user.PasswordHash, body.CurrentPassword); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "current password is incorrect"})
			return
		}

		newHash, err := utils.HashPassword(body.NewPassword)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
			return
		}
		if err := a.Accounts.UpdatePassword(ctx, userID, newHash); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		if err := a.Accounts.RevokeAll(ctx, userID); err != nil {
			a.logger().Warn("failed to revoke refresh tokens", zap.String("user", userID.Hex()), zap.Error(err))
		}
		utils.ClearRefreshCookie(c, a.Cookies)

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
