package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/salon-scheduler/internal/db"
	"github.com/BruksfildServices01/salon-scheduler/internal/logging"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

const day = "2099-03-10"

type app struct {
	t  *testing.T
	r  *gin.Engine
	db *gorm.DB
}

func newApp(t *testing.T) *app {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, dbpkg.Migrate(db))

	cfg := &config.Config{
		JWTSecret:     "test-secret",
		Timezone:      "UTC",
		SlotTimes:     config.DefaultSlotTimes,
		CacheTTL:      30 * time.Second,
		AdminName:     "Admin",
		AdminEmail:    "admin@condominio.com",
		AdminPassword: "admin123",
	}
	_, err = dbpkg.SeedAdmin(context.Background(), db, cfg)
	require.NoError(t, err)

	r := gin.New()
	shutdown, err := RegisterRoutes(r, Deps{
		DB:       db,
		Config:   cfg,
		Logger:   logging.Discard(),
		Registry: prometheus.NewRegistry(),
	})
	require.NoError(t, err)
	t.Cleanup(shutdown)

	return &app{t: t, r: r, db: db}
}

func (a *app) call(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func (a *app) login(email, password string) string {
	a.t.Helper()
	w := a.call(http.MethodPost, "/api/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())
	return decode(a.t, w)["token"].(string)
}

func (a *app) register(name, email, gender, unit string) (string, string) {
	a.t.Helper()
	w := a.call(http.MethodPost, "/api/auth/register", "", map[string]any{
		"name": name, "email": email, "password": "senha123", "gender": gender, "unit": unit,
		"role": "admin",
	})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(a.t, w)
	user := body["user"].(map[string]any)
	require.Equal(a.t, "resident", user["role"])
	return body["token"].(string), user["id"].(string)
}

func TestBookingFlow(t *testing.T) {
	a := newApp(t)

	adminTok := a.login("admin@condominio.com", "admin123")

	// profissional com manicure
	w := a.call(http.MethodPost, "/api/admin/users", adminTok, map[string]any{
		"name": "Carla", "email": "carla@condominio.com", "password": "senha123",
		"gender": "F", "role": "professional", "manicure": true,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	profID := decode(t, w)["user"].(map[string]any)["id"].(string)
	profTok := a.login("carla@condominio.com", "senha123")

	anaTok, anaID := a.register("Ana", "ana@condominio.com", "F", "101")
	bobTok, _ := a.register("Bob", "bob@condominio.com", "M", "202")

	// disponibilidade
	w = a.call(http.MethodGet, "/api/professionals/"+profID+"/availability?date="+day+"&manicure_type=both", anaTok, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	slots := decode(t, w)["slots"].([]any)
	require.Len(t, slots, 14)
	last := slots[13].(map[string]any)
	assert.Equal(t, "insufficient-pair", last["state"])

	// reserva mão + pé
	w = a.call(http.MethodPost, "/api/bookings", anaTok, map[string]any{
		"prof_id": profID, "date": day, "time": "20:00", "manicure_type": "both",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode(t, w)["data"].([]any)
	require.Len(t, created, 2)
	first := created[0].(map[string]any)
	assert.Equal(t, "20:00+21:00", first["time_label"])

	// mesmo horário, outro morador
	w = a.call(http.MethodPost, "/api/bookings", bobTok, map[string]any{
		"prof_id": profID, "date": day, "time": "21:00",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "slot_unavailable", decode(t, w)["error_code"])

	// profissional não reserva
	w = a.call(http.MethodPost, "/api/bookings", profTok, map[string]any{
		"prof_id": profID, "date": day, "time": "10:00",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// listagem do morador mostra o par uma vez
	w = a.call(http.MethodGet, "/api/bookings", anaTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	upcoming := decode(t, w)["upcoming"].([]any)
	require.Len(t, upcoming, 1)

	// outro morador não cancela
	w = a.call(http.MethodDelete, "/api/bookings/"+first["id"].(string), bobTok, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// cancelamento pela profissional notifica o morador
	w = a.call(http.MethodDelete, "/api/bookings/"+created[1].(map[string]any)["id"].(string), profTok, map[string]string{"reason": "Imprevisto"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Len(t, decode(t, w)["deleted"].([]any), 2)

	require.Eventually(t, func() bool {
		var n int64
		a.db.Model(&models.Notification{}).Where("recipient_id = ?", anaID).Count(&n)
		return n == 1
	}, 2*time.Second, 10*time.Millisecond)

	w = a.call(http.MethodGet, "/api/me/notifications/next", anaTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Sua reserva de 20:00 em 10 Mar 2099 foi cancelada. Motivo: Imprevisto", decode(t, w)["text"])

	w = a.call(http.MethodGet, "/api/me/notifications/next", anaTok, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestBlocksAndCalendar(t *testing.T) {
	a := newApp(t)
	adminTok := a.login("admin@condominio.com", "admin123")

	w := a.call(http.MethodPost, "/api/admin/users", adminTok, map[string]any{
		"name": "Davi", "email": "davi@condominio.com", "password": "senha123",
		"gender": "M", "role": "professional", "maca": true,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	profTok := a.login("davi@condominio.com", "senha123")

	w = a.call(http.MethodPost, "/api/blocks", profTok, map[string]any{"date": day, "times": []string{"08:00", "09:00"}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = a.call(http.MethodPost, "/api/blocks", profTok, map[string]any{"date": day, "times": []string{"09:00"}})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = a.call(http.MethodGet, "/api/blocks?date="+day, profTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	grid := decode(t, w)["slots"].([]any)
	assert.Equal(t, true, grid[0].(map[string]any)["blocked"])
	assert.Equal(t, false, grid[2].(map[string]any)["blocked"])

	w = a.call(http.MethodGet, "/api/calendar?date="+day, adminTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	rows := decode(t, w)["rows"].([]any)
	entries := rows[0].(map[string]any)["entries"].([]any)
	require.Len(t, entries, 1)
	assert.Equal(t, "block", entries[0].(map[string]any)["type"])
	assert.Equal(t, true, entries[0].(map[string]any)["maca"])

	w = a.call(http.MethodGet, "/api/bookings", profTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["blocks"].([]any), 1)
}

func TestAuthAndAdminSurface(t *testing.T) {
	a := newApp(t)

	w := a.call(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = a.call(http.MethodGet, "/api/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = a.call(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "admin@condominio.com", "password": "errada"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	anaTok, _ := a.register("Ana", "ana@condominio.com", "F", "101")

	w = a.call(http.MethodPost, "/api/auth/register", "", map[string]any{
		"name": "Outra", "email": "ANA@condominio.com", "password": "senha123", "gender": "F", "unit": "102",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = a.call(http.MethodGet, "/api/admin/users", anaTok, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = a.call(http.MethodGet, "/api/calendar?date="+day, anaTok, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = a.call(http.MethodPatch, "/api/me", anaTok, map[string]any{"name": "Ana Souza", "email": "ana@condominio.com"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Ana Souza", decode(t, w)["user"].(map[string]any)["name"])
	assert.Equal(t, "101", decode(t, w)["user"].(map[string]any)["unit"])

	w = a.call(http.MethodPatch, "/api/me", anaTok, map[string]any{
		"name": "Ana Souza", "email": "ana@condominio.com", "unit": "apto 202",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "apto 202", decode(t, w)["user"].(map[string]any)["unit"])

	w = a.call(http.MethodGet, "/api/me", anaTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "apto 202", decode(t, w)["user"].(map[string]any)["unit"])

	adminTok := a.login("admin@condominio.com", "admin123")
	w = a.call(http.MethodGet, "/api/admin/users?query=souza", adminTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(1), body["total"])

	require.Eventually(t, func() bool {
		var n int64
		a.db.Model(&models.AuditLog{}).Count(&n)
		return n >= 2
	}, 2*time.Second, 10*time.Millisecond)

	w = a.call(http.MethodGet, "/api/admin/audit-logs?action=user_created", adminTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["total"])

	w = a.call(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "salon_http_request_duration_seconds")
}

func TestAdminUpdateKeepsProfessionalProfile(t *testing.T) {
	a := newApp(t)
	adminTok := a.login("admin@condominio.com", "admin123")

	w := a.call(http.MethodPost, "/api/admin/users", adminTok, map[string]any{
		"name": "Eva", "email": "eva@condominio.com", "password": "senha123",
		"role": "professional", "maca": true,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code, "profissional sem gênero")

	w = a.call(http.MethodPost, "/api/admin/users", adminTok, map[string]any{
		"name": "Eva", "email": "eva@condominio.com", "password": "senha123",
		"gender": "F", "role": "professional", "maca": true,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := decode(t, w)["user"].(map[string]any)["id"].(string)

	// edição sem role nem gênero mantém o perfil salvo
	w = a.call(http.MethodPut, "/api/admin/users/"+id, adminTok, map[string]any{
		"name": "Eva Lima", "email": "eva@condominio.com", "maca": true,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	user := decode(t, w)["user"].(map[string]any)
	assert.Equal(t, "professional", user["role"])
	assert.Equal(t, "F", user["gender"])
	assert.Equal(t, true, user["maca"])

	w = a.call(http.MethodGet, "/api/professionals", adminTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["total"])
}
