package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

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

const (
	testSecret        = "access-secret"
	testRefreshSecret = "refresh-secret"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func price(v float64) *float64 { return &v }

func lead(d int) *int { return &d }

func testParts() []models.Part {
	created := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	return []models.Part{
		{ID: "p1", Name: "Oil Filter", Brand: "Lister Petter", Model: "LPW-OF-201", Category: "parts", Subcategory: "Filters",
			Price: price(1200), Currency: "KES", StockQuantity: 25, CompatibleWith: []string{"LPW2", "LPW4"}, CreatedAt: created},
		{ID: "p2", Name: "Fuel Injector", Brand: "Lister Petter", PartNumber: "FI-310", Category: "parts", Subcategory: "Fuel System",
			StockQuantity: 0, LeadTimeDays: lead(7), CompatibleWith: []string{}, CreatedAt: created.Add(-time.Hour)},
		{ID: "p3", Name: "Head Gasket", Brand: "Perkins", Category: "spare_parts", Subcategory: "Gaskets & Seals",
			Price: price(4500), Currency: "KES", StockQuantity: 4, CompatibleWith: []string{"1104C"}, CreatedAt: created.Add(-2 * time.Hour)},
	}
}

type fakeRelay struct {
	mu       sync.Mutex
	err      error
	subjects []string
	fields   []map[string]string
}

func (f *fakeRelay) Submit(_ context.Context, subject string, fields map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.subjects = append(f.subjects, subject)
	f.fields = append(f.fields, fields)
	return nil
}

type fakeArchive struct {
	mu    sync.Mutex
	items []models.Submission
}

func (f *fakeArchive) Insert(_ context.Context, s *models.Submission) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s.ID = bson.NewObjectID()
	s.Status = models.SubmissionStatusNew
	f.items = append(f.items, *s)
	return nil
}

func (f *fakeArchive) List(_ context.Context, filter database.SubmissionFilter) ([]models.Submission, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Submission{}
	for _, s := range f.items {
		if filter.Kind != "" && string(s.Kind) != filter.Kind {
			continue
		}
		if filter.Status != "" && string(s.Status) != filter.Status {
			continue
		}
		if filter.Status == "" && filter.Open != nil && s.Status.Open() != *filter.Open {
			continue
		}
		out = append(out, s)
	}
	return out, int64(len(out)), nil
}

func (f *fakeArchive) find(id bson.ObjectID) int {
	for i, s := range f.items {
		if s.ID == id {
			return i
		}
	}
	return -1
}

func (f *fakeArchive) Get(_ context.Context, id bson.ObjectID) (models.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if i := f.find(id); i >= 0 {
		return f.items[i], nil
	}
	return models.Submission{}, database.ErrSubmissionNotFound
}

func (f *fakeArchive) UpdateStatus(_ context.Context, id bson.ObjectID, status models.SubmissionStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.find(id)
	if i < 0 {
		return database.ErrSubmissionNotFound
	}
	f.items[i].Status = status
	return nil
}

func (f *fakeArchive) AddNote(_ context.Context, id bson.ObjectID, note models.SubmissionNote) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.find(id)
	if i < 0 {
		return database.ErrSubmissionNotFound
	}
	f.items[i].Notes = append(f.items[i].Notes, note)
	if f.items[i].Status == models.SubmissionStatusNew {
		f.items[i].Status = models.SubmissionStatusInProgress
	}
	return nil
}

type fakeAccounts struct {
	mu     sync.Mutex
	users  map[string]models.User
	tokens map[string]models.RefreshToken
}

func newFakeAccounts(t *testing.T, email, password string) *fakeAccounts {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	u := models.User{ID: bson.NewObjectID(), Email: email, PasswordHash: hash, Role: models.RoleAdmin, IsActive: true}
	return &fakeAccounts{
		users:  map[string]models.User{email: u},
		tokens: map[string]models.RefreshToken{},
	}
}

func (f *fakeAccounts) FindUserByEmail(_ context.Context, email string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[email]; ok {
		return u, nil
	}
	return models.User{}, database.ErrUserNotFound
}

func (f *fakeAccounts) FindUserByID(_ context.Context, id bson.ObjectID) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, database.ErrUserNotFound
}

func (f *fakeAccounts) TouchLastLogin(context.Context, bson.ObjectID) error { return nil }

func (f *fakeAccounts) UpdatePassword(_ context.Context, id bson.ObjectID, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for k, u := range f.users {
		if u.ID == id {
			u.PasswordHash = hash
			f.users[k] = u
			return nil
		}
	}
	return database.ErrUserNotFound
}

func (f *fakeAccounts) StoreRefreshToken(_ context.Context, userID bson.ObjectID, token, _ string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[token] = models.RefreshToken{ID: bson.NewObjectID(), UserID: userID, ExpiresAt: time.Now().Add(ttl)}
	return nil
}

func (f *fakeAccounts) FindRefreshToken(_ context.Context, token string) (models.RefreshToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rt, ok := f.tokens[token]
	if !ok || !rt.Usable(time.Now()) {
		return models.RefreshToken{}, database.ErrRefreshTokenNotFound
	}
	return rt, nil
}

func (f *fakeAccounts) RotateRefreshToken(ctx context.Context, old models.RefreshToken, next, ua string, ttl time.Duration) error {
	f.mu.Lock()
	found := false
	for k, rt := range f.tokens {
		if rt.ID == old.ID && rt.RevokedAt == nil {
			now := time.Now()
			rt.RevokedAt = &now
			f.tokens[k] = rt
			found = true
		}
	}
	f.mu.Unlock()
	if !found {
		return database.ErrRefreshTokenNotFound
	}
	return f.StoreRefreshToken(ctx, old.UserID, next, ua, ttl)
}

func (f *fakeAccounts) RevokeRefreshToken(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if rt, ok := f.tokens[token]; ok {
		now := time.Now()
		rt.RevokedAt = &now
		f.tokens[token] = rt
	}
	return nil
}

func (f *fakeAccounts) RevokeAll(_ context.Context, userID bson.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	for k, rt := range f.tokens {
		if rt.UserID == userID {
			rt.RevokedAt = &now
			f.tokens[k] = rt
		}
	}
	return nil
}

type harness struct {
	t       *testing.T
	router  *gin.Engine
	app     *App
	relay   *fakeRelay
	archive *fakeArchive
	store   *session.MemoryStore
	cookies []*http.Cookie
}

type harnessOption func(*App)

func withAdmin(archive *fakeArchive, accounts *fakeAccounts) harnessOption {
	return func(a *App) {
		a.Archive = archive
		a.Accounts = accounts
	}
}

func newHarness(t *testing.T, source catalog.Source, opts ...harnessOption) *harness {
	t.Helper()
	translations, err := localization.Default()
	require.NoError(t, err)

	snapshot := catalog.NewSnapshot(source, nil)
	_ = snapshot.Refresh(context.Background())

	relay := &fakeRelay{}
	app := &App{
		Snapshot:         snapshot,
		Validator:        dto.NewValidator(),
		Relay:            relay,
		WhatsApp:         integrations.WhatsApp{Host: "wa.me", Number: "254718234222"},
		PageSize:         2,
		MaxPageSize:      50,
		QuoteValidFor:    30 * 24 * time.Hour,
		JWTSecret:        testSecret,
		JWTRefreshSecret: testRefreshSecret,
		AccessTTL:        time.Minute,
		RefreshTTL:       time.Hour,
		Now:              func() time.Time { return time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC) },
	}
	for _, opt := range opts {
		opt(app)
	}
	archive, _ := app.Archive.(*fakeArchive)

	store := session.NewMemoryStore(time.Hour)
	r := gin.New()
	app.Register(r, middleware.Session(middleware.SessionOptions{
		Store:   store,
		Catalog: translations,
		Default: localization.English,
		TTL:     time.Hour,
	}), middleware.AuthMiddleware(testSecret))

	return &harness{t: t, router: r, app: app, relay: relay, archive: archive, store: store}
}

// do sends a request, replaying cookies from earlier responses so one
// harness behaves like one browser.
func (h *harness) do(method, target, body string, header ...string) *httptest.ResponseRecorder {
	h.t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	for _, ck := range h.cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)

	for _, ck := range rec.Result().Cookies() {
		h.remember(ck)
	}
	return rec
}

func (h *harness) remember(ck *http.Cookie) {
	for i, old := range h.cookies {
		if old.Name == ck.Name {
			if ck.MaxAge < 0 {
				h.cookies = append(h.cookies[:i], h.cookies[i+1:]...)
				return
			}
			h.cookies[i] = ck
			return
		}
	}
	if ck.MaxAge >= 0 {
		h.cookies = append(h.cookies, ck)
	}
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}
