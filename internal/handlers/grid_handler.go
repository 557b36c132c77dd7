package handlers

import (
	"errors"
	"net/http"
	"strings"

	"tms-api/internal/database"
	"tms-api/internal/grid"
	"tms-api/internal/models"
	"tms-api/internal/store"

	"github.com/gin-gonic/gin"
)

// GridHandler serves the auto-saving task grid. It is constructed at the
// composition root with its session manager and name resolver injected, so
// handler tests can stand one up around an in-memory database.
type GridHandler struct {
	manager  *grid.Manager
	resolver *store.NameResolver
}

// NewGridHandler constructs a GridHandler.
func NewGridHandler(manager *grid.Manager, resolver *store.NameResolver) *GridHandler {
	return &GridHandler{manager: manager, resolver: resolver}
}

// SelectProjectRequest picks the project whose tasks the grid shows
type SelectProjectRequest struct {
	ProjectID string `json:"project_id" binding:"required"`
}

// EditCellRequest carries one cell edit
type EditCellRequest struct {
	Field string `json:"field" binding:"required"`
	Value any    `json:"value"`
}

// gridRow is a grid.Row with reference ids resolved to display names
type gridRow struct {
	grid.Row
	AssignedByName  string   `json:"assigned_by_name,omitempty"`
	DepartmentNames []string `json:"department_names,omitempty"`
	AssignedToNames []string `json:"assigned_to_names,omitempty"`
}

func (h *GridHandler) session(c *gin.Context) (*grid.Session, bool) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return nil, false
	}
	return h.manager.Session(userID), true
}

// SelectProject handles POST /api/grid/project
// Loads the project's tasks into the caller's grid session.
func (h *GridHandler) SelectProject(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	var req SelectProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var project models.Project
	if err := database.GetDB().Where("id = ?", req.ProjectID).First(&project).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}

	tasks, err := session.SelectProject(req.ProjectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load tasks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"project_id": req.ProjectID,
		"tasks":      tasks,
		"count":      len(tasks),
	})
}

// GetRows handles GET /api/grid/tasks
// Returns the session's filtered rows with display names resolved. Pending
// derived values shadow persisted ones, so a queued performance change shows
// before its flush lands.
func (h *GridHandler) GetRows(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	filter := grid.Filter{
		Status:       c.Query("status"),
		Priority:     c.Query("priority"),
		DepartmentID: c.Query("department"),
		AssignedFrom: c.Query("from"),
		AssignedTo:   c.Query("to"),
	}

	rows := session.Rows(filter)
	out := make([]gridRow, 0, len(rows))
	for _, row := range rows {
		gr := gridRow{Row: row}
		if row.AssignedByStakeholderID != nil {
			gr.AssignedByName = h.resolver.StakeholderName(*row.AssignedByStakeholderID)
		}
		for _, id := range row.DepartmentIDs {
			if name := h.resolver.DepartmentName(id); name != "" {
				gr.DepartmentNames = append(gr.DepartmentNames, name)
			}
		}
		for _, id := range row.AssignedToIDs {
			if name := h.resolver.TeamMemberName(id); name != "" {
				gr.AssignedToNames = append(gr.AssignedToNames, name)
			}
		}
		out = append(out, gr)
	}

	c.JSON(http.StatusOK, gin.H{
		"rows":  out,
		"count": len(out),
	})
}

// AddTask handles POST /api/grid/tasks
// Inserts a blank task with grid defaults into the selected project.
func (h *GridHandler) AddTask(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	task, err := session.AddTask()
	if err != nil {
		if errors.Is(err, grid.ErrNoProject) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No project selected"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		}
		return
	}

	c.JSON(http.StatusCreated, task)
}

// EditCell handles POST /api/grid/tasks/:id/cell
// Queues one cell edit: applied optimistically right away, persisted after
// the quiet period.
func (h *GridHandler) EditCell(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	taskID := c.Param("id")

	var req EditCellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := session.EditCell(taskID, req.Field, req.Value); err != nil {
		if errors.Is(err, grid.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"task_id": taskID,
		"field":   req.Field,
		"queued":  true,
	})
}

// Flush handles POST /api/grid/flush
// Writes all pending edits immediately, bypassing the quiet period, and
// returns once the batch completes.
func (h *GridHandler) Flush(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	session.FlushNow()
	c.JSON(http.StatusOK, session.Status())
}

// GetStatus handles GET /api/grid/status
func (h *GridHandler) GetStatus(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, session.Status())
}

// DeleteTask handles DELETE /api/grid/tasks/:id
// Removes the task and discards any unflushed edits for it.
func (h *GridHandler) DeleteTask(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	taskID := c.Param("id")
	if err := session.DeleteTask(taskID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
		"id":      taskID,
	})
}

// GetTeamMemberSuggestions handles GET /api/grid/team-members
// Returns members of the departments in the comma-separated "departments"
// query param, or every member when the param is empty.
func (h *GridHandler) GetTeamMemberSuggestions(c *gin.Context) {
	if _, ok := h.session(c); !ok {
		return
	}

	query := database.GetDB().Model(&models.TeamMember{}).Order("name")
	if raw := strings.TrimSpace(c.Query("departments")); raw != "" {
		ids := strings.Split(raw, ",")
		query = query.Where("department_id IN ?", ids)
	}

	var members []models.TeamMember
	if err := query.Find(&members).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch team members"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"team_members": members,
		"count":        len(members),
	})
}
