package handlers

import (
	"fmt"
	"strconv"
	"time"

	"prodtrack/internal/access"
	"prodtrack/internal/apperr"
	"prodtrack/internal/database"
	"prodtrack/internal/models"
	"prodtrack/internal/response"
	"prodtrack/internal/taskgraph"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type createTaskReq struct {
	Name         string  `json:"name"`
	Status       string  `json:"status"`
	StartDate    *string `json:"start_date"`
	EndDate      *string `json:"end_date"`
	AssignedToID *uint   `json:"assigned_to_id"`
	ShotID       *uint   `json:"shot_id"`
	AssetID      *uint   `json:"asset_id"`
	DependsOn    []uint  `json:"depends_on"`
}

// updateTaskReq leaves absent fields untouched. An empty date clears it, and
// a zero id clears the assignee or parent link.
type updateTaskReq struct {
	Name         *string `json:"name"`
	Status       *string `json:"status"`
	StartDate    *string `json:"start_date"`
	EndDate      *string `json:"end_date"`
	AssignedToID *uint   `json:"assigned_to_id"`
	ShotID       *uint   `json:"shot_id"`
	AssetID      *uint   `json:"asset_id"`
}

type addDependencyReq struct {
	DependencyOnTaskID uint `json:"dependency_on_task_id"`
}

type dependencyEdgeResponse struct {
	DependentTaskID    uint `json:"dependent_task_id"`
	DependencyOnTaskID uint `json:"dependency_on_task_id"`
}

// POST /tasks
func (h *Handler) CreateTask(c *gin.Context) {
	id, ok := h.caller(c)
	if !ok {
		return
	}
	var req createTaskReq
	if err := bindJSON(c, &req); err != nil {
		h.fail(c, err)
		return
	}
	name, err := requireName("name", req.Name)
	if err != nil {
		h.fail(c, err)
		return
	}
	start, end, err := dateRange(req.StartDate, req.EndDate)
	if err != nil {
		h.fail(c, err)
		return
	}

	task := models.Task{
		Name:         name,
		Status:       req.Status,
		StartDate:    start,
		EndDate:      end,
		AssignedToID: optionalID(req.AssignedToID),
		ShotID:       optionalID(req.ShotID),
		AssetID:      optionalID(req.AssetID),
	}
	if task.Status == "" {
		task.Status = models.DefaultTaskStatus
	}

	err = h.mutate(c, func(tx *gorm.DB) error {
		cand := taskgraph.Candidate{ShotID: task.ShotID, AssetID: task.AssetID, AssignedToID: task.AssignedToID}
		parent, err := taskgraph.ResolveParent(tx, cand)
		if err != nil {
			return err
		}
		if err := access.Authorize(tx, id, access.OpTaskWrite, parent.ProjectID); err != nil {
			return err
		}
		if err := taskgraph.CheckAssignee(tx, task.AssignedToID, parent); err != nil {
			return err
		}
		if err := database.Insert(tx, &task, "Task"); err != nil {
			return err
		}
		for _, dep := range req.DependsOn {
			if err := h.linkDependency(tx, id, task.ID, dep); err != nil {
				return err
			}
		}
		return audit(tx, id, "task", task.ID, "create",
			fmt.Sprintf("%s under %s %d", task.Name, parent.Kind, parent.ID))
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.RespondCreated(c, toTask(&task))
}

// GET /tasks/:id
func (h *Handler) GetTask(c *gin.Context) {
	id, ok := h.caller(c)
	if !ok {
		return
	}
	taskID, err := idParam(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	db := h.conn(c)
	if err := h.authorizeTask(db, id, access.OpProjectRead, taskID); err != nil {
		h.fail(c, err)
		return
	}
	var task models.Task
	if err := db.Preload("AssignedTo.Account").First(&task, taskID).Error; err != nil {
		h.fail(c, err)
		return
	}
	response.RespondOK(c, toTask(&task))
}

// PUT /tasks/:id
// The changed task must still satisfy every task rule, and moving it to
// another project needs write access there too.
func (h *Handler) UpdateTask(c *gin.Context) {
	id, ok := h.caller(c)
	if !ok {
		return
	}
	taskID, err := idParam(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	var req updateTaskReq
	if err := bindJSON(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	var task *models.Task
	err = h.mutate(c, func(tx *gorm.DB) error {
		t, err := database.Find[models.Task](tx, taskID, "Task")
		if err != nil {
			return err
		}
		current, err := taskgraph.ProjectOf(tx, t.ID)
		if err != nil {
			return err
		}
		if err := access.Authorize(tx, id, access.OpTaskWrite, current); err != nil {
			return err
		}

		if req.Name != nil {
			name, err := requireName("name", *req.Name)
			if err != nil {
				return err
			}
			t.Name = name
		}
		if req.Status != nil && *req.Status != "" {
			t.Status = *req.Status
		}
		if req.StartDate != nil {
			if t.StartDate, err = parseDate("start_date", req.StartDate); err != nil {
				return err
			}
		}
		if req.EndDate != nil {
			if t.EndDate, err = parseDate("end_date", req.EndDate); err != nil {
				return err
			}
		}
		if err := checkDateOrder(t.StartDate, t.EndDate); err != nil {
			return err
		}
		if req.AssignedToID != nil {
			t.AssignedToID = optionalID(req.AssignedToID)
		}
		if req.ShotID != nil {
			t.ShotID = optionalID(req.ShotID)
		}
		if req.AssetID != nil {
			t.AssetID = optionalID(req.AssetID)
		}

		parent, err := taskgraph.Validate(tx, taskgraph.Candidate{
			ShotID: t.ShotID, AssetID: t.AssetID, AssignedToID: t.AssignedToID,
		})
		if err != nil {
			return err
		}
		if parent.ProjectID != current {
			if err := access.Authorize(tx, id, access.OpTaskWrite, parent.ProjectID); err != nil {
				return err
			}
		}

		if err := database.Update(tx, t, "Task"); err != nil {
			return err
		}
		task = t
		return audit(tx, id, "task", t.ID, "update", fmt.Sprintf("name=%s status=%s", t.Name, t.Status))
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.RespondOK(c, toTask(task))
}

// DELETE /tasks/:id
// Dependency edges in both directions go with the task.
func (h *Handler) DeleteTask(c *gin.Context) {
	id, ok := h.caller(c)
	if !ok {
		return
	}
	taskID, err := idParam(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	err = h.mutate(c, func(tx *gorm.DB) error {
		if err := h.authorizeTask(tx, id, access.OpTaskWrite, taskID); err != nil {
			return err
		}
		if err := database.DeleteTasks(tx, []uint{taskID}); err != nil {
			return err
		}
		return audit(tx, id, "task", taskID, "delete", "")
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.RespondNoContent(c)
}

// GET /projects/:id/tasks (also GET /tasks/project/:id)
// Optional filters: ?status=, ?assigned_to_id=.
func (h *Handler) ListProjectTasks(c *gin.Context) {
	id, ok := h.caller(c)
	if !ok {
		return
	}
	projectID, err := idParam(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	db := h.conn(c)
	if err := access.Authorize(db, id, access.OpProjectRead, projectID); err != nil {
		h.fail(c, err)
		return
	}

	ids, err := database.ProjectTaskIDs(db, projectID)
	if err != nil {
		h.fail(c, err)
		return
	}
	tasks := []models.Task{}
	if len(ids) > 0 {
		q := db.Preload("AssignedTo.Account").Where("id IN ?", ids).Order("id asc")
		if status := c.Query("status"); status != "" {
			q = q.Where("status = ?", status)
		}
		if raw := c.Query("assigned_to_id"); raw != "" {
			n, err := strconv.ParseUint(raw, 10, 64)
			if err != nil {
				h.fail(c, apperr.Invalid(apperr.ReasonInvalidField, "invalid assigned_to_id %q", raw))
				return
			}
			q = q.Where("assigned_to_id = ?", n)
		}
		if err := q.Find(&tasks).Error; err != nil {
			h.fail(c, err)
			return
		}
	}
	response.RespondOK(c, toTasks(tasks))
}

// GET /tasks/:id/dependencies
func (h *Handler) ListDependencies(c *gin.Context) {
	id, ok := h.caller(c)
	if !ok {
		return
	}
	taskID, err := idParam(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	db := h.conn(c)
	if err := h.authorizeTask(db, id, access.OpProjectRead, taskID); err != nil {
		h.fail(c, err)
		return
	}
	dependsOn, err := taskgraph.DependsOn(db, taskID)
	if err != nil {
		h.fail(c, err)
		return
	}
	dependencyFor, err := taskgraph.DependencyFor(db, taskID)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.RespondOK(c, DependenciesResponse{
		TaskID:        taskID,
		DependsOn:     toTasks(dependsOn),
		DependencyFor: toTasks(dependencyFor),
	})
}

// POST /tasks/:id/dependencies
func (h *Handler) AddDependency(c *gin.Context) {
	id, ok := h.caller(c)
	if !ok {
		return
	}
	taskID, err := idParam(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	var req addDependencyReq
	if err := bindJSON(c, &req); err != nil {
		h.fail(c, err)
		return
	}
	if req.DependencyOnTaskID == 0 {
		h.fail(c, apperr.Invalid(apperr.ReasonInvalidField, "dependency_on_task_id is required"))
		return
	}

	err = h.mutate(c, func(tx *gorm.DB) error {
		if err := h.authorizeTask(tx, id, access.OpTaskWrite, taskID); err != nil {
			return err
		}
		if err := h.linkDependency(tx, id, taskID, req.DependencyOnTaskID); err != nil {
			return err
		}
		return audit(tx, id, "task_dependency", taskID, "create",
			fmt.Sprintf("%d depends on %d", taskID, req.DependencyOnTaskID))
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.RespondCreated(c, dependencyEdgeResponse{DependentTaskID: taskID, DependencyOnTaskID: req.DependencyOnTaskID})
}

// DELETE /tasks/:id/dependencies/:dependency_id
func (h *Handler) RemoveDependency(c *gin.Context) {
	id, ok := h.caller(c)
	if !ok {
		return
	}
	taskID, err := idParam(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	dependencyID, err := idParam(c, "dependency_id")
	if err != nil {
		h.fail(c, err)
		return
	}
	err = h.mutate(c, func(tx *gorm.DB) error {
		if err := h.authorizeTask(tx, id, access.OpTaskWrite, taskID); err != nil {
			return err
		}
		if err := taskgraph.RemoveDependency(tx, taskID, dependencyID); err != nil {
			return err
		}
		return audit(tx, id, "task_dependency", taskID, "delete",
			fmt.Sprintf("%d no longer depends on %d", taskID, dependencyID))
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.RespondNoContent(c)
}

// authorizeTask runs the access gate against the project the task lives in.
func (h *Handler) authorizeTask(tx *gorm.DB, id access.Identity, op access.Operation, taskID uint) error {
	projectID, err := taskgraph.ProjectOf(tx, taskID)
	if err != nil {
		return err
	}
	return access.Authorize(tx, id, op, projectID)
}

// linkDependency adds dependent -> dependencyOn once the caller may also
// write to the project of the task depended on.
func (h *Handler) linkDependency(tx *gorm.DB, id access.Identity, dependentID, dependencyOnID uint) error {
	projectID, err := taskgraph.ProjectOf(tx, dependencyOnID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return apperr.NotFound("Dependency task not found")
		}
		return err
	}
	if err := access.Authorize(tx, id, access.OpTaskWrite, projectID); err != nil {
		return err
	}
	return taskgraph.AddDependency(tx, dependentID, dependencyOnID)
}

func dateRange(startRaw, endRaw *string) (*time.Time, *time.Time, error) {
	start, err := parseDate("start_date", startRaw)
	if err != nil {
		return nil, nil, err
	}
	end, err := parseDate("end_date", endRaw)
	if err != nil {
		return nil, nil, err
	}
	if err := checkDateOrder(start, end); err != nil {
		return nil, nil, err
	}
	return start, end, nil
}

func checkDateOrder(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return apperr.Invalid(apperr.ReasonInvalidField, "end_date %s is before start_date %s",
			end.Format(dateLayout), start.Format(dateLayout))
	}
	return nil
}
