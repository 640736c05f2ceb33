package middleware

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wingsengineering/wingsweb/localization"
	"github.com/wingsengineering/wingsweb/session"
	"github.com/wingsengineering/wingsweb/utils"
)

const (
	SessionCookie  = "wings_sid"
	LanguageCookie = "wings_lang"

	sessionKey   = "session"
	localizerKey = "localizer"
)

type SessionOptions struct {
	Store   session.Store
	Catalog *localization.Catalog
	Default localization.Language
	Cookies utils.CookieSettings
	TTL     time.Duration
	Logger  *zap.Logger
	Now     func() time.Time
}

// Session attaches the visitor session and a Localizer bound to it. The
// language comes from the lang query parameter, then the language cookie,
// then the session, then Accept-Language, then the default. The session
// is written back once the handler returns.
func Session(opts SessionOptions) gin.HandlerFunc {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	fallback, err := localization.ParseLanguage(string(opts.Default))
	if err != nil {
		fallback = localization.Primary
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()

		sess := loadSession(c, opts.Store, logger, now)

		negotiated := localization.Negotiate(c.GetHeader("Accept-Language"), fallback)
		loc := localization.NewLocalizer(opts.Catalog, negotiated, sess, logger)
		if explicit, ok := requestedLanguage(c); ok && explicit != loc.Language() {
			_ = loc.SetLanguage(explicit)
		}

		c.SetCookie(SessionCookie, sess.ID, int(opts.TTL.Seconds()), "/", opts.Cookies.Domain, opts.Cookies.Secure, true)
		SetLanguageCookie(c, opts.Cookies, loc.Language())

		c.Set(sessionKey, sess)
		c.Set(localizerKey, loc)
		c.Next()

		sess.Language = loc.Language()
		sess.UpdatedAt = now().UTC()
		if err := opts.Store.Save(ctx, sess); err != nil {
			logger.Warn("failed to save session", zap.String("session", sess.ID), zap.Error(err))
		}
	}
}

func loadSession(c *gin.Context, store session.Store, logger *zap.Logger, now func() time.Time) *session.Session {
	id, err := c.Cookie(SessionCookie)
	if err != nil || id == "" {
		return session.New(now().UTC())
	}
	sess, err := store.Get(c.Request.Context(), id)
	if err != nil {
		if !errors.Is(err, session.ErrNotFound) {
			logger.Warn("failed to load session", zap.String("session", id), zap.Error(err))
		}
		return session.New(now().UTC())
	}
	return sess
}

func requestedLanguage(c *gin.Context) (localization.Language, bool) {
	if lang, err := localization.ParseLanguage(c.Query("lang")); err == nil {
		return lang, true
	}
	if raw, err := c.Cookie(LanguageCookie); err == nil {
		if lang, err := localization.ParseLanguage(raw); err == nil {
			return lang, true
		}
	}
	return "", false
}

// SetLanguageCookie remembers the visitor's language for a year.
func SetLanguageCookie(c *gin.Context, cs utils.CookieSettings, lang localization.Language) {
	c.SetCookie(LanguageCookie, lang.String(), int((365 * 24 * time.Hour).Seconds()), "/", cs.Domain, cs.Secure, false)
}

// CurrentSession returns the session attached by Session, or nil.
func CurrentSession(c *gin.Context) *session.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*session.Session)
	return sess
}

// CurrentLocalizer returns the Localizer attached by Session, or nil.
func CurrentLocalizer(c *gin.Context) *localization.Localizer {
	v, ok := c.Get(localizerKey)
	if !ok {
		return nil
	}
	loc, _ := v.(*localization.Localizer)
	return loc
}
