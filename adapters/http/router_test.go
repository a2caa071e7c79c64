package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	profileUC "github.com/khoahotran/profile-service/internal/application/usecase/profile"
	projectUC "github.com/khoahotran/profile-service/internal/application/usecase/project"
	"github.com/khoahotran/profile-service/internal/config"
	"github.com/khoahotran/profile-service/internal/domain/profile"
	"github.com/khoahotran/profile-service/internal/domain/profile/mocks"
	"github.com/khoahotran/profile-service/pkg/apperror"
	"github.com/khoahotran/profile-service/pkg/logger"
)

const testProfileID = "64b7f0c2a1b2c3d4e5f60718"

type testServer struct {
	router *gin.Engine
	repo   *mocks.Repository
}

func newTestServer(t *testing.T, cfg config.Config) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := new(mocks.Repository)
	pub := new(mocks.EventPublisher)
	pub.On("PublishProfileEvent", mock.Anything, mock.Anything).Return(nil).Maybe()
	log := logger.NewNop()

	profileHandler := NewProfileHandler(
		profileUC.NewCreateProfileUseCase(repo, pub, log),
		profileUC.NewGetProfileUseCase(repo, log),
		profileUC.NewListProfilesUseCase(repo, log),
		profileUC.NewUpdateProfileUseCase(repo, pub, log),
		log,
	)
	projectHandler := NewProjectHandler(
		projectUC.NewAddProjectUseCase(repo, pub, log),
		projectUC.NewListProjectsUseCase(repo, log),
		projectUC.NewListSkillsUseCase(repo, log),
		projectUC.NewSearchProfilesUseCase(repo, log),
		log,
	)

	return &testServer{router: NewRouter(cfg, profileHandler, projectHandler, log), repo: repo}
}

func (s *testServer) do(t *testing.T, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)

	var decoded map[string]any
	if strings.HasPrefix(rr.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &decoded))
	}
	return rr, decoded
}

func TestCreateProfileEndpoint(t *testing.T) {
	t.Run("Should create profile", func(t *testing.T) {
		s := newTestServer(t, config.Config{})
		s.repo.On("FindByEmail", mock.Anything, "ada@example.com", (*string)(nil)).
			Return(nil, apperror.NewNotFound("Profile not found", "ada@example.com"))
		s.repo.On("Create", mock.Anything, mock.AnythingOfType("*profile.Profile")).
			Run(func(args mock.Arguments) {
				id, _ := bson.ObjectIDFromHex(testProfileID)
				args.Get(1).(*profile.Profile).ID = id
			}).Return(nil)

		rr, body := s.do(t, http.MethodPost, "/api/Profile/Create_profile",
			`{"name":"Ada","email":"ada@example.com","skills":["math"],"unknown":true}`)

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, "success", body["status"])
		assert.Equal(t, "Profile created successfully", body["message"])
		data := body["data"].(map[string]any)
		assert.Equal(t, testProfileID, data["id"])
		assert.Equal(t, "Ada", data["name"])
		assert.NotContains(t, data, "unknown")
		assert.NotEmpty(t, rr.Header().Get(HeaderRequestID))
	})

	t.Run("Should list every violation", func(t *testing.T) {
		s := newTestServer(t, config.Config{})

		rr, body := s.do(t, http.MethodPost, "/api/Profile/Create_profile", `{"email":"nope"}`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "fail", body["status"])
		assert.Equal(t, "Validation failed", body["message"])
		assert.Len(t, body["errors"], 2)
		s.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should reject malformed JSON", func(t *testing.T) {
		s := newTestServer(t, config.Config{})

		rr, body := s.do(t, http.MethodPost, "/api/Profile/Create_profile", `{"name":`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "fail", body["status"])
	})

	t.Run("Should report duplicate email", func(t *testing.T) {
		s := newTestServer(t, config.Config{})
		s.repo.On("FindByEmail", mock.Anything, "ada@example.com", (*string)(nil)).
			Return(&profile.Profile{Email: "ada@example.com"}, nil)

		rr, body := s.do(t, http.MethodPost, "/api/Profile/Create_profile", `{"name":"Ada","email":"ada@example.com"}`)

		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Equal(t, "A profile with this email already exists", body["message"])
	})

	t.Run("Should name the field of a store level duplicate", func(t *testing.T) {
		s := newTestServer(t, config.Config{})
		s.repo.On("FindByEmail", mock.Anything, "ada@example.com", (*string)(nil)).
			Return(nil, apperror.NewNotFound("Profile not found", "ada@example.com"))
		s.repo.On("Create", mock.Anything, mock.Anything).
			Return(apperror.NewDuplicateKey([]string{"email"}, errors.New("E11000")))

		rr, body := s.do(t, http.MethodPost, "/api/Profile/Create_profile", `{"name":"Ada","email":"ada@example.com"}`)

		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Equal(t, "Duplicate field value entered", body["message"])
		assert.Equal(t, []any{"email"}, body["field"])
	})
}

func TestGetProfileEndpoints(t *testing.T) {
	t.Run("Should reject a malformed id", func(t *testing.T) {
		s := newTestServer(t, config.Config{})

		rr, body := s.do(t, http.MethodGet, "/api/Profile/Get_profile/123", "")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, []any{"Profile ID must be a valid MongoDB ObjectId (24 hex characters)"}, body["errors"])
	})

	t.Run("Should return 404 for a missing profile", func(t *testing.T) {
		s := newTestServer(t, config.Config{})
		s.repo.On("FindByID", mock.Anything, testProfileID).Return(nil, apperror.NewNotFound("Profile not found", testProfileID))

		rr, body := s.do(t, http.MethodGet, "/api/Profile/Get_profile/"+testProfileID, "")

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "Profile not found", body["message"])
	})

	t.Run("Should hide unexpected failures", func(t *testing.T) {
		s := newTestServer(t, config.Config{})
		s.repo.On("FindByID", mock.Anything, testProfileID).
			Return(nil, apperror.NewInternal("failed to find profile", errors.New("socket closed")))

		rr, body := s.do(t, http.MethodGet, "/api/Profile/Get_profile/"+testProfileID, "")

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Equal(t, "error", body["status"])
		assert.Equal(t, apperror.InternalMessage, body["message"])
		assert.NotContains(t, rr.Body.String(), "socket closed")
	})

	t.Run("Should list profiles with count", func(t *testing.T) {
		s := newTestServer(t, config.Config{})
		s.repo.On("ListAll", mock.Anything).Return([]*profile.Profile{{Name: "A"}, {Name: "B"}}, nil)

		rr, body := s.do(t, http.MethodGet, "/api/Profile/Get_all_profile", "")

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.EqualValues(t, 2, body["count"])
		assert.Len(t, body["data"], 2)
	})

	t.Run("Should return 404 for an empty collection", func(t *testing.T) {
		s := newTestServer(t, config.Config{})
		s.repo.On("ListAll", mock.Anything).Return([]*profile.Profile{}, nil)

		rr, body := s.do(t, http.MethodGet, "/api/Profile/Get_all_profile", "")

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "No profiles found", body["message"])
	})
}

func TestUpdateProfileEndpoint(t *testing.T) {
	t.Run("Should return updated fields", func(t *testing.T) {
		s := newTestServer(t, config.Config{})
		s.repo.On("UpdateByID", mock.Anything, testProfileID, mock.Anything).
			Return(&profile.Profile{Name: "Ada King", Skills: []string{"math", "poetry"}}, nil)

		rr, body := s.do(t, http.MethodPut, "/api/Profile/Update_profile/"+testProfileID,
			`{"skills":["math","poetry"],"name":"Ada King"}`)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Profile updated successfully", body["message"])
		assert.Equal(t, []any{"name", "skills"}, body["updatedFields"])
	})

	t.Run("Should require at least one field", func(t *testing.T) {
		s := newTestServer(t, config.Config{})

		rr, body := s.do(t, http.MethodPut, "/api/Profile/Update_profile/"+testProfileID, `{"role":"admin"}`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, []any{"At least one field must be provided for update"}, body["errors"])
	})

	t.Run("Should treat an empty body as no fields", func(t *testing.T) {
		s := newTestServer(t, config.Config{})

		rr, _ := s.do(t, http.MethodPut, "/api/Profile/Update_profile/"+testProfileID, "")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestProjectEndpoints(t *testing.T) {
	t.Run("Should add a project", func(t *testing.T) {
		s := newTestServer(t, config.Config{})
		s.repo.On("AppendProject", mock.Anything, testProfileID, profile.NewProject("Engine", "", nil)).Return(nil)

		rr, body := s.do(t, http.MethodPost, "/api/Project/Add_Project",
			`{"profileId":"`+testProfileID+`","title":"  Engine  "}`)

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, "Project added successfully.", body["message"])
		assert.Equal(t, map[string]any{"title": "Engine", "links": []any{}}, body["data"])
	})

	t.Run("Should reject a page number beyond the safe range", func(t *testing.T) {
		s := newTestServer(t, config.Config{})

		rr, body := s.do(t, http.MethodGet, "/api/Project/List_Project?profileId="+testProfileID+"&page=200000000000000000&limit=50", "")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, []any{`"page" must be a safe number`}, body["errors"])
		s.repo.AssertNotCalled(t, "FindProjects", mock.Anything, mock.Anything)
	})

	t.Run("Should page projects from the query string", func(t *testing.T) {
		s := newTestServer(t, config.Config{})
		s.repo.On("FindProjects", mock.Anything, testProfileID).
			Return([]profile.Project{{Title: "a"}, {Title: "b"}, {Title: "c"}}, nil)

		rr, body := s.do(t, http.MethodGet, "/api/Project/List_Project?profileId="+testProfileID+"&page=2&limit=2", "")

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Len(t, body["data"], 1)
		assert.Equal(t, map[string]any{
			"totalProjects": float64(3), "totalPages": float64(2), "currentPage": float64(2), "limit": float64(2),
		}, body["pagination"])
	})

	t.Run("Should return an empty page past the end", func(t *testing.T) {
		s := newTestServer(t, config.Config{})
		s.repo.On("FindProjects", mock.Anything, testProfileID).Return([]profile.Project{{Title: "a"}}, nil)

		rr, body := s.do(t, http.MethodGet, "/api/Project/List_Project?profileId="+testProfileID+"&page=9", "")

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "No projects found for this page.", body["message"])
		assert.Equal(t, []any{}, body["data"])
	})

	t.Run("Should clamp the skills page", func(t *testing.T) {
		s := newTestServer(t, config.Config{})
		s.repo.On("FindSkills", mock.Anything, testProfileID).Return([]string{"go", "sql", "k8s"}, nil)

		rr, body := s.do(t, http.MethodGet, "/api/Project/List_Skills?profileId="+testProfileID+"&page=7&limit=2", "")

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, []any{"k8s"}, body["data"])
		pagination := body["pagination"].(map[string]any)
		assert.EqualValues(t, 2, pagination["currentPage"])
		assert.EqualValues(t, 3, pagination["totalSkills"])
	})

	t.Run("Should reject a bad limit", func(t *testing.T) {
		s := newTestServer(t, config.Config{})

		rr, body := s.do(t, http.MethodGet, "/api/Project/List_Skills?profileId="+testProfileID+"&limit=500", "")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Validation failed.", body["message"])
		assert.Equal(t, []any{"Limit cannot exceed 50 records per page."}, body["errors"])
	})

	t.Run("Should search by skills", func(t *testing.T) {
		s := newTestServer(t, config.Config{})
		skills := []string{"go"}
		s.repo.On("FindBySkillsAny", mock.Anything, skills, 1, 10).Return([]*profile.Profile{{Name: "Ada", Skills: skills}}, nil)
		s.repo.On("CountBySkillsAny", mock.Anything, skills).Return(int64(1), nil)

		rr, body := s.do(t, http.MethodPost, "/api/Project/Search_Profile_By_Skills", `{"skills":["go"]}`)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Profiles fetched successfully.", body["message"])
		assert.EqualValues(t, 1, body["pagination"].(map[string]any)["totalProfiles"])
	})

	t.Run("Should return 404 when no profile matches", func(t *testing.T) {
		s := newTestServer(t, config.Config{})
		skills := []string{"cobol"}
		s.repo.On("FindBySkillsAny", mock.Anything, skills, 1, 10).Return([]*profile.Profile{}, nil)
		s.repo.On("CountBySkillsAny", mock.Anything, skills).Return(int64(0), nil)

		rr, body := s.do(t, http.MethodPost, "/api/Project/Search_Profile_By_Skills", `{"skills":["cobol"]}`)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "No profiles found matching the given skills.", body["message"])
	})
}

func TestHealthAndStaticUI(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>ui</html>"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "js"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "js", "app.js"), []byte("console.log(1)"), 0o644))

	cfg := config.Config{}
	cfg.App.StaticDir = dir
	s := newTestServer(t, cfg)

	rr, body := s.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", body["status"])
	assert.Contains(t, body, "uptime")

	rr, _ = s.do(t, http.MethodGet, "/js/app.js", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "console.log(1)", rr.Body.String())

	rr, _ = s.do(t, http.MethodGet, "/profiles/42", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ui")

	rr, body = s.do(t, http.MethodGet, "/api/Nope", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "fail", body["status"])
}

func TestCORS(t *testing.T) {
	cfg := config.Config{}
	cfg.App.CORSOrigins = []string{"https://ui.example.com"}
	s := newTestServer(t, cfg)
	s.repo.On("ListAll", mock.Anything).Return([]*profile.Profile{{Name: "A"}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/Profile/Get_all_profile", nil)
	req.Header.Set("Origin", "https://ui.example.com")
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	assert.Equal(t, "https://ui.example.com", rr.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/Profile/Get_all_profile", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rr = httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestRecovery(t *testing.T) {
	s := newTestServer(t, config.Config{})
	s.router.GET("/boom", func(*gin.Context) { panic("boom") })

	rr, body := s.do(t, http.MethodGet, "/boom", "")

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, apperror.InternalMessage, body["message"])
}
