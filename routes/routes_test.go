package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"freelance-backend/config"
	"freelance-backend/controllers"
	"freelance-backend/services"
	"freelance-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type RouterSuite struct {
	suite.Suite
	router *gin.Engine
	token  string
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	s.Require().NoError(err)
	sqlDB, err := db.DB()
	s.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)
	s.T().Cleanup(func() { _ = sqlDB.Close() })
	s.Require().NoError(config.Migrate(db))

	accounts := services.NewAccountService(db, utils.NewTokenManager("test-secret", time.Hour), bcrypt.MinCost)
	projects := services.NewProjectService(db, "FM")
	comments := services.NewCommentService(db)
	reminders := services.NewReminderService(db, services.LogNotifier{}, "+15550000", 3)

	s.router = SetupRouter(Handlers{
		Auth:         &controllers.AuthController{Accounts: accounts},
		Projects:     &controllers.ProjectController{Projects: projects, Comments: comments},
		Clients:      &controllers.ClientController{Clients: services.NewClientService(db)},
		Services:     &controllers.ServiceController{Catalog: services.NewCatalogService(db)},
		Dashboard:    &controllers.DashboardController{Projects: projects},
		Results:      &controllers.ResultController{Projects: projects, Comments: comments},
		Reminders:    &controllers.ReminderController{Reminders: reminders},
		Verify:       accounts.VerifyUserID,
		LoginLimiter: utils.NewIPRateLimiter(60, 3, time.Minute),
		CORSOrigins:  []string{"http://localhost:3000"},
	})

	w := s.do(http.MethodPost, "/api/auth/register", map[string]interface{}{
		"fullName": "Ada Lovelace",
		"email":    "ada@example.com",
		"password": "Secret123",
	}, false)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.token = resp.Data.Token
}

func (s *RouterSuite) do(method, path string, body interface{}, auth bool) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			s.Require().NoError(json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if auth {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](s *RouterSuite, w *httptest.ResponseRecorder) T {
	var out T
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func (s *RouterSuite) createProject(name string) map[string]interface{} {
	w := s.do(http.MethodPost, "/api/projects", map[string]interface{}{
		"projectName": name,
		"clientName":  "Acme Studio",
		"deadline":    "2026-04-01",
		"price":       100,
		"quantity":    2,
		"discount":    25,
	}, true)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	return decode[map[string]interface{}](s, w)
}

func (s *RouterSuite) TestHealth() {
	w := s.do(http.MethodGet, "/api", nil, false)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "Freelance Management API is running!")
}

func (s *RouterSuite) TestProtectedRoutesRequireCredential() {
	for _, path := range []string{"/api/projects", "/api/clients", "/api/services", "/api/auth/profile"} {
		w := s.do(http.MethodGet, path, nil, false)
		s.Equal(http.StatusUnauthorized, w.Code, path)
		body := decode[utils.ErrorBody](s, w)
		s.Equal("Unauthorized", body.Error)
	}
}

func (s *RouterSuite) TestProfileAndVerify() {
	w := s.do(http.MethodGet, "/api/auth/profile", nil, true)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"email":"ada@example.com"`)
	s.NotContains(w.Body.String(), "passwordHash")

	w = s.do(http.MethodPost, "/api/auth/verify-token", nil, true)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "Token is valid")
}

func (s *RouterSuite) TestLoginErrorsAreGeneric() {
	wrong := s.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "ada@example.com", "password": "Nope12345"}, false)
	unknown := s.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "who@example.com", "password": "Nope12345"}, false)

	s.Equal(http.StatusUnauthorized, wrong.Code)
	s.Equal(http.StatusUnauthorized, unknown.Code)
	s.JSONEq(wrong.Body.String(), unknown.Body.String())
}

func (s *RouterSuite) TestLoginIsThrottled() {
	codes := map[int]int{}
	for i := 0; i < 6; i++ {
		w := s.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "ada@example.com", "password": "Secret123"}, false)
		codes[w.Code]++
	}
	s.Positive(codes[http.StatusTooManyRequests])
}

func (s *RouterSuite) TestProjectLifecycle() {
	p := s.createProject("Logo")
	id := p["id"].(string)
	s.Equal(175.0, p["totalPrice"])
	s.Regexp(`^FM-\d{6}-001$`, p["numberOrder"])
	s.NotContains(p, "version")

	w := s.do(http.MethodGet, "/api/projects/next-number?prefix=FM", nil, true)
	s.Equal(http.StatusOK, w.Code)
	s.Regexp(`"numberOrder":"FM-\d{6}-002"`, w.Body.String())

	w = s.do(http.MethodPut, "/api/projects/"+id, map[string]interface{}{"status": "done"}, true)
	s.Equal(http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/api/projects/stats/dashboard", nil, true)
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"total":1,"ongoing":0,"completed":1,"ongoingRevenue":0,"completedRevenue":175}`, w.Body.String())

	w = s.do(http.MethodDelete, "/api/projects/"+id, nil, true)
	s.Equal(http.StatusOK, w.Code)
	deleted := decode[map[string]interface{}](s, w)
	s.Equal("Project deleted successfully", deleted["message"])
	s.Equal(id, deleted["project"].(map[string]interface{})["id"])

	w = s.do(http.MethodGet, "/api/projects/"+id, nil, true)
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("NotFound", decode[utils.ErrorBody](s, w).Error)
}

func (s *RouterSuite) TestProjectErrors() {
	w := s.do(http.MethodPost, "/api/projects", "{not json", true)
	s.Equal(http.StatusBadRequest, w.Code)
	body := decode[utils.ErrorBody](s, w)
	s.Equal("ValidationFailed", body.Error)
	s.Require().Len(body.Details, 1)
	s.Equal("body", body.Details[0].Field)

	w = s.do(http.MethodPost, "/api/projects", map[string]interface{}{"projectName": "x"}, true)
	s.Equal(http.StatusBadRequest, w.Code)
	body = decode[utils.ErrorBody](s, w)
	s.NotEmpty(body.Details)

	p := s.createProject("Logo")
	w = s.do(http.MethodPost, "/api/projects", map[string]interface{}{
		"numberOrder": p["numberOrder"],
		"projectName": "Copy",
		"clientName":  "Acme Studio",
		"deadline":    "2026-04-01",
		"price":       10,
	}, true)
	s.Equal(http.StatusConflict, w.Code)
	s.Equal("Conflict", decode[utils.ErrorBody](s, w).Error)
}

func (s *RouterSuite) TestCommentsAndResultPage() {
	p := s.createProject("Logo")
	id := p["id"].(string)

	w := s.do(http.MethodPost, "/api/projects/"+id+"/comments", map[string]interface{}{
		"content": "Internal note", "authorName": "Ada", "authorEmail": "ada@example.com",
	}, true)
	s.Equal(http.StatusCreated, w.Code, w.Body.String())

	// isClient from the body is ignored on the public route
	w = s.do(http.MethodPost, "/api/public/projects/"+id+"/comments", map[string]interface{}{
		"content": "Looks great", "authorName": "Client", "authorEmail": "client@example.com", "isClient": false,
	}, false)
	s.Equal(http.StatusCreated, w.Code, w.Body.String())
	created := decode[map[string]interface{}](s, w)
	s.Equal(true, created["comment"].(map[string]interface{})["isClient"])

	w = s.do(http.MethodGet, "/api/public/projects/"+id, nil, false)
	s.Equal(http.StatusOK, w.Code)
	result := decode[map[string]interface{}](s, w)
	comments := result["comments"].([]interface{})
	s.Require().Len(comments, 1)
	s.Equal("Looks great", comments[0].(map[string]interface{})["content"])

	w = s.do(http.MethodGet, "/api/projects/"+id+"/comments", nil, true)
	s.Equal(http.StatusOK, w.Code)
	s.Len(decode[[]map[string]interface{}](s, w), 2)

	w = s.do(http.MethodGet, "/api/projects/"+id+"/comments?clientOnly=true", nil, true)
	s.Len(decode[[]map[string]interface{}](s, w), 1)

	w = s.do(http.MethodPost, "/api/public/projects/missing/comments", map[string]interface{}{
		"content": "x", "authorName": "y", "authorEmail": "z@example.com",
	}, false)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *RouterSuite) TestClientAndServiceRoutes() {
	w := s.do(http.MethodPost, "/api/clients", map[string]interface{}{"clientId": "C00001", "clientName": "Acme"}, true)
	s.Equal(http.StatusCreated, w.Code, w.Body.String())
	client := decode[map[string]interface{}](s, w)

	w = s.do(http.MethodPost, "/api/clients", map[string]interface{}{"clientId": "C00001", "clientName": "Dup"}, true)
	s.Equal(http.StatusConflict, w.Code)

	w = s.do(http.MethodDelete, "/api/clients/"+client["id"].(string), nil, true)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "Client deleted successfully")

	w = s.do(http.MethodPost, "/api/services", map[string]interface{}{
		"serviceName": "Logo", "servicePrice": 200, "durationOfWork": 3,
		"unlimitedRevision": true, "totalRevision": 4,
	}, true)
	s.Equal(http.StatusCreated, w.Code, w.Body.String())
	service := decode[map[string]interface{}](s, w)
	s.Nil(service["totalRevision"])
	s.Regexp(`^S\d{5}$`, service["id"])

	w = s.do(http.MethodPost, "/api/services", map[string]interface{}{
		"serviceName": "Logo", "servicePrice": 200, "durationOfWork": 3,
	}, true)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(w.Body.String(), "totalRevision")
}

func (s *RouterSuite) TestReminderRoutes() {
	w := s.do(http.MethodPost, "/api/reminders/run", nil, true)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"sent":0`)

	w = s.do(http.MethodGet, "/api/reminders/logs", nil, true)
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`[]`, w.Body.String())
}

func TestSetupRouterAllowsWildcardOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := SetupRouter(Handlers{
		Auth:        &controllers.AuthController{},
		Projects:    &controllers.ProjectController{},
		Clients:     &controllers.ClientController{},
		Services:    &controllers.ServiceController{},
		Dashboard:   &controllers.DashboardController{},
		Results:     &controllers.ResultController{},
		CORSOrigins: []string{"*"},
	})

	req := httptest.NewRequest(http.MethodGet, "/api", nil)
	req.Header.Set("Origin", "http://example.org")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
