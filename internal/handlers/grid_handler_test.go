package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tms-api/internal/auth"
	"tms-api/internal/database"
	"tms-api/internal/grid"
	"tms-api/internal/middleware"
	"tms-api/internal/models"
	"tms-api/internal/store"
	"tms-api/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newGridRouter stands up the grid endpoints over an in-memory database with
// a quiet period long enough that only explicit flushes write.
func newGridRouter(t *testing.T) (*gin.Engine, *gorm.DB, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	database.DB = db

	manager := grid.NewManager(store.NewTaskStore(db), grid.ManagerOptions{
		QuietPeriod: time.Hour,
	})
	t.Cleanup(manager.Close)
	h := NewGridHandler(manager, store.NewNameResolver(db))

	r := gin.New()
	api := r.Group("/api")
	api.Use(middleware.JWTAuthMiddleware())
	api.POST("/grid/project", h.SelectProject)
	api.GET("/grid/tasks", h.GetRows)
	api.POST("/grid/tasks", h.AddTask)
	api.POST("/grid/tasks/:id/cell", h.EditCell)
	api.DELETE("/grid/tasks/:id", h.DeleteTask)
	api.POST("/grid/flush", h.Flush)
	api.GET("/grid/status", h.GetStatus)
	api.GET("/grid/team-members", h.GetTeamMemberSuggestions)

	token, err := auth.GenerateToken("u-1", "alice@example.com", models.RoleProjectManager)
	require.NoError(t, err)
	return r, db, token
}

func seedGridProject(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, db.Create(&models.Project{ID: "proj-1", Name: "Website"}).Error)
	eta := "2024-03-10"
	require.NoError(t, db.Create(&models.Task{
		ID:        "t-1",
		ProjectID: "proj-1",
		ETADate:   &eta,
		Status:    models.StatusInProgress,
	}).Error)
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, payload any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if payload != nil {
		body, err := json.Marshal(payload)
		require.NoError(t, err)
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGrid_EditCellFlushPersists(t *testing.T) {
	r, db, token := newGridRouter(t)
	seedGridProject(t, db)

	w := doJSON(t, r, http.MethodPost, "/api/grid/project", map[string]string{"project_id": "proj-1"}, token)
	require.Equal(t, http.StatusOK, w.Code)

	// Queue a completion edit; nothing persists before the flush
	w = doJSON(t, r, http.MethodPost, "/api/grid/tasks/t-1/cell", map[string]any{
		"field": "completed_date",
		"value": "2024-03-08",
	}, token)
	require.Equal(t, http.StatusAccepted, w.Code)

	var before models.Task
	require.NoError(t, db.Where("id = ?", "t-1").First(&before).Error)
	require.Nil(t, before.CompletedDate)

	w = doJSON(t, r, http.MethodGet, "/api/grid/status", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	var st grid.Status
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st))
	require.Equal(t, 1, st.Pending)

	w = doJSON(t, r, http.MethodPost, "/api/grid/flush", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var after models.Task
	require.NoError(t, db.Where("id = ?", "t-1").First(&after).Error)
	require.Equal(t, "2024-03-08", *after.CompletedDate)
	require.Equal(t, models.StatusCompleted, after.Status)
	require.Equal(t, models.PerformanceBeforeTime, *after.Performance)
}

func TestGrid_RowsReflectEditBeforeFlush(t *testing.T) {
	r, db, token := newGridRouter(t)
	seedGridProject(t, db)

	doJSON(t, r, http.MethodPost, "/api/grid/project", map[string]string{"project_id": "proj-1"}, token)
	doJSON(t, r, http.MethodPost, "/api/grid/tasks/t-1/cell", map[string]any{
		"field": "completed_date",
		"value": "2024-03-12",
	}, token)

	w := doJSON(t, r, http.MethodGet, "/api/grid/tasks?status=Completed", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Rows []struct {
			ID          string              `json:"id"`
			Status      models.TaskStatus   `json:"status"`
			Performance *models.Performance `json:"performance"`
		} `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Rows, 1)
	require.Equal(t, "t-1", resp.Rows[0].ID)
	require.Equal(t, models.StatusCompleted, resp.Rows[0].Status)
	require.Equal(t, models.PerformanceDelayed, *resp.Rows[0].Performance)
}

func TestGrid_AddAndDeleteTask(t *testing.T) {
	r, db, token := newGridRouter(t)
	seedGridProject(t, db)

	doJSON(t, r, http.MethodPost, "/api/grid/project", map[string]string{"project_id": "proj-1"}, token)

	w := doJSON(t, r, http.MethodPost, "/api/grid/tasks", nil, token)
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Equal(t, "proj-1", created.ProjectID)
	require.Equal(t, models.StatusYetToStart, created.Status)
	require.Equal(t, "u-1", *created.CreatedBy)

	w = doJSON(t, r, http.MethodDelete, "/api/grid/tasks/"+created.ID, nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.Task{}).Where("id = ?", created.ID).Count(&count).Error)
	require.Zero(t, count)
}

func TestGrid_AddTaskWithoutProjectSelected(t *testing.T) {
	r, _, token := newGridRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/grid/tasks", nil, token)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGrid_TeamMemberSuggestions(t *testing.T) {
	r, db, token := newGridRouter(t)
	seedGridProject(t, db)

	require.NoError(t, db.Create(&models.Department{ID: "dep-1", Name: "Design"}).Error)
	require.NoError(t, db.Create(&models.Department{ID: "dep-2", Name: "Engineering"}).Error)
	require.NoError(t, db.Create(&models.TeamMember{ID: "tm-1", DepartmentID: "dep-1", Name: "Priya", Email: "p@example.com"}).Error)
	require.NoError(t, db.Create(&models.TeamMember{ID: "tm-2", DepartmentID: "dep-2", Name: "Sam", Email: "s@example.com"}).Error)

	var resp struct {
		Count int `json:"count"`
	}

	w := doJSON(t, r, http.MethodGet, "/api/grid/team-members?departments=dep-1", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Count)

	// No departments selected: every member is a candidate
	w = doJSON(t, r, http.MethodGet, "/api/grid/team-members", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 2, resp.Count)
}
