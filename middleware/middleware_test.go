package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wingsengineering/wingsweb/localization"
	"github.com/wingsengineering/wingsweb/session"
	"github.com/wingsengineering/wingsweb/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func sessionRouter(t *testing.T, store session.Store) *gin.Engine {
	t.Helper()
	cat, err := localization.Default()
	require.NoError(t, err)

	r := gin.New()
	r.Use(Session(SessionOptions{Store: store, Catalog: cat, Default: localization.English, TTL: time.Hour}))
	r.GET("/", func(c *gin.Context) {
		loc := CurrentLocalizer(c)
		sess := CurrentSession(c)
		c.JSON(http.StatusOK, gin.H{"lang": loc.Language(), "session": sess.ID, "title": loc.T("nav.home")})
	})
	return r
}

func cookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}

func TestSessionNegotiatesFirstVisit(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	r := sessionRouter(t, store)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "sw-KE,sw;q=0.9,en;q=0.5")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"lang":"sw"`)

	sid := cookie(rec, SessionCookie)
	require.NotNil(t, sid)
	lang := cookie(rec, LanguageCookie)
	require.NotNil(t, lang)
	assert.Equal(t, "sw", lang.Value)

	saved, err := store.Get(context.Background(), sid.Value)
	require.NoError(t, err)
	assert.Equal(t, localization.Swahili, saved.Language)
}

func TestSessionQueryOverridesStoredLanguage(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	sess := session.New(time.Now())
	sess.Language = localization.Swahili
	require.NoError(t, store.Save(context.Background(), sess))

	r := sessionRouter(t, store)
	req := httptest.NewRequest(http.MethodGet, "/?lang=en", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: sess.ID})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Contains(t, rec.Body.String(), `"lang":"en"`)
	assert.Contains(t, rec.Body.String(), sess.ID)

	saved, err := store.Get(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, localization.English, saved.Language)
}

func TestSessionStoredLanguageBeatsAcceptLanguage(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	sess := session.New(time.Now())
	sess.Language = localization.Swahili
	require.NoError(t, store.Save(context.Background(), sess))

	r := sessionRouter(t, store)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "en-GB")
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: sess.ID})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Contains(t, rec.Body.String(), `"lang":"sw"`)
}

func TestSessionLanguageCookieBeatsHeader(t *testing.T) {
	r := sessionRouter(t, session.NewMemoryStore(time.Hour))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "en-US")
	req.AddCookie(&http.Cookie{Name: LanguageCookie, Value: "sw"})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Contains(t, rec.Body.String(), `"lang":"sw"`)
}

func TestSessionUnknownCookieStartsFresh(t *testing.T) {
	r := sessionRouter(t, session.NewMemoryStore(time.Hour))
	req := httptest.NewRequest(http.MethodGet, "/?lang=fr", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "expired-id"})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"lang":"en"`)
	sid := cookie(rec, SessionCookie)
	require.NotNil(t, sid)
	assert.NotEqual(t, "expired-id", sid.Value)
}

func authRouter(secret string) *gin.Engine {
	r := gin.New()
	r.GET("/admin", AuthMiddleware(secret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"email": c.GetString("email")})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	const secret = "test-secret"
	r := authRouter(secret)

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"garbage", "Bearer not-a-jwt", http.StatusUnauthorized},
	}

	admin, err := utils.GenerateAccessToken(secret, "u1", "admin@example.com", "ADMIN", time.Minute)
	require.NoError(t, err)
	cases = append(cases, struct {
		name   string
		header string
		status int
	}{"admin", "Bearer " + admin, http.StatusOK})

	viewer, err := utils.GenerateAccessToken(secret, "u2", "viewer@example.com", "VIEWER", time.Minute)
	require.NoError(t, err)
	cases = append(cases, struct {
		name   string
		header string
		status int
	}{"wrong role", "Bearer " + viewer, http.StatusForbidden})

	forged, err := utils.GenerateAccessToken("other-secret", "u1", "admin@example.com", "ADMIN", time.Minute)
	require.NoError(t, err)
	cases = append(cases, struct {
		name   string
		header string
		status int
	}{"wrong secret", "Bearer " + forged, http.StatusUnauthorized})

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}
