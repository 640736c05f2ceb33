package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"

	"github.com/wingsengineering/wingsweb/catalog"
	"github.com/wingsengineering/wingsweb/database"
	"github.com/wingsengineering/wingsweb/dto"
	"github.com/wingsengineering/wingsweb/integrations"
	"github.com/wingsengineering/wingsweb/localization"
	"github.com/wingsengineering/wingsweb/middleware"
	"github.com/wingsengineering/wingsweb/models"
	"github.com/wingsengineering/wingsweb/session"
	"github.com/wingsengineering/wingsweb/utils"
)

// Relay forwards a submitted form to the outside world.
type Relay interface {
	Submit(ctx context.Context, subject string, fields map[string]string) error
}

// Archive stores relayed submissions for back-office review.
type Archive interface {
	Insert(ctx context.Context, s *models.Submission) error
	List(ctx context.Context, f database.SubmissionFilter) ([]models.Submission, int64, error)
	Get(ctx context.Context, id bson.ObjectID) (models.Submission, error)
	UpdateStatus(ctx context.Context, id bson.ObjectID, status models.SubmissionStatus) error
	AddNote(ctx context.Context, id bson.ObjectID, note models.SubmissionNote) error
}

// Accounts looks up admin users and their refresh tokens.
type Accounts interface {
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, id bson.ObjectID) (models.User, error)
	TouchLastLogin(ctx context.Context, id bson.ObjectID) error
	UpdatePassword(ctx context.Context, id bson.ObjectID, passwordHash string) error
	StoreRefreshToken(ctx context.Context, userID bson.ObjectID, token, userAgent string, ttl time.Duration) error
	FindRefreshToken(ctx context.Context, token string) (models.RefreshToken, error)
	RotateRefreshToken(ctx context.Context, old models.RefreshToken, next, userAgent string, ttl time.Duration) error
	RevokeRefreshToken(ctx context.Context, token string) error
	RevokeAll(ctx context.Context, userID bson.ObjectID) error
}

// App carries what the handlers share. Archive and Accounts are nil when
// no document store is configured.
type App struct {
	Snapshot  *catalog.Snapshot
	Validator *dto.Validator
	Relay     Relay
	Archive   Archive
	Accounts  Accounts
	WhatsApp  integrations.WhatsApp
	Logger    *zap.Logger

	PageSize      int
	MaxPageSize   int
	QuoteValidFor time.Duration

	Cookies          utils.CookieSettings
	JWTSecret        string
	JWTRefreshSecret string
	AccessTTL        time.Duration
	RefreshTTL       time.Duration

	Now func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now().UTC()
	}
	return time.Now().UTC()
}

func (a *App) logger() *zap.Logger {
	if a.Logger == nil {
		return zap.NewNop()
	}
	return a.Logger
}

// visitor returns the per-request session and localizer. It aborts with
// 500 when the session middleware did not run.
func visitor(c *gin.Context) (*session.Session, *localization.Localizer, bool) {
	sess := middleware.CurrentSession(c)
	loc := middleware.CurrentLocalizer(c)
	if sess == nil || loc == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session unavailable"})
		return nil, nil, false
	}
	return sess, loc, true
}
