package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bunshack-api/handlers"
	"bunshack-api/logging"
	"bunshack-api/metrics"
	"bunshack-api/middleware"
	"bunshack-api/models"
	"bunshack-api/routes"
	"bunshack-api/session"
	"bunshack-api/store"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testPassword = "Secret1"

type testEnv struct {
	t       *testing.T
	router  *gin.Engine
	db      *gorm.DB
	users   *store.UserStore
	menus   *store.MenuStore
	orders  *store.OrderStore
	auth    *middleware.Authenticator
	metrics *metrics.Metrics
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(models.All()...))

	env := &testEnv{
		t:       t,
		db:      db,
		users:   store.NewUserStore(db),
		menus:   store.NewMenuStore(db),
		orders:  store.NewOrderStore(db),
		metrics: metrics.New(),
	}
	env.auth = &middleware.Authenticator{
		Tokens:  session.NewManager("test-secret", time.Hour),
		Revoker: session.NewMemoryRevoker(),
		Users:   env.users,
	}
	h := handlers.New(handlers.Deps{
		Menus:   env.menus,
		Orders:  env.orders,
		Users:   env.users,
		Auth:    env.auth,
		Metrics: env.metrics,
	})
	env.router = routes.NewRouter(routes.Options{
		Handler: h,
		Auth:    env.auth,
		Metrics: env.metrics,
		Logger:  logging.New("panic", "text", &bytes.Buffer{}),
	})
	return env
}

// user creates an account directly in the store and returns it with a
// session cookie value.
func (e *testEnv) user(name string, admin bool) (*models.User, string) {
	e.t.Helper()
	hash, err := session.HashPassword(testPassword)
	require.NoError(e.t, err)
	u := &models.User{
		Name:         name,
		Email:        name + "@example.com",
		UserName:     name,
		PasswordHash: hash,
		IsAdmin:      admin,
	}
	require.NoError(e.t, e.users.CreateUser(context.Background(), u))
	token, _, err := e.auth.Tokens.Issue(u.ID)
	require.NoError(e.t, err)
	return u, token
}

func (e *testEnv) menu(name, price string) *models.Menu {
	e.t.Helper()
	m, err := e.menus.AddMenu(context.Background(), &models.Menu{FoodName: name, Price: decimal.RequireFromString(price)})
	require.NoError(e.t, err)
	return m
}

func (e *testEnv) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	e.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(e.t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func message(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	decode(t, w, &body)
	return body.Message
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	return nil
}

type line struct {
	MenuID   string `json:"menuId"`
	Quantity int    `json:"quantity"`
}

func orderBody(lines ...line) map[string]interface{} {
	if lines == nil {
		lines = []line{}
	}
	return map[string]interface{}{"orderMenus": lines}
}
