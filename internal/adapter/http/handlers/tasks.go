package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"taskmanager/internal/adapter/http/dto"
	"taskmanager/internal/adapter/http/mapper"
	"taskmanager/internal/adapter/http/middleware"
	"taskmanager/internal/adapter/http/validation"
	"taskmanager/internal/core/domain"
	"taskmanager/internal/core/ports"
	"taskmanager/pkg/apierrors"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"
)

type TaskHandler struct {
	taskService ports.TaskService
}

func NewTaskHandler(taskService ports.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.taskService.ListTasks(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondServiceError(c, err, apierrors.MsgFailListTask, "failed to list tasks")
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItems(tasks))
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), taskID)
	if err != nil {
		respondServiceError(c, err, apierrors.MsgFailGetTask, "failed to get task", zap.Uint64("task_id", taskID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	lang := middleware.GetLang(c)

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidPayload(c, lang, err)
		return
	}

	input, err := validation.BuildCreateTaskInput(req)
	if err != nil {
		respondInvalidPayload(c, lang, err)
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err, apierrors.MsgFailCreateTask, "failed to create task")
		return
	}

	c.JSON(http.StatusCreated, mapper.ToTaskItem(task))
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	lang := middleware.GetLang(c)

	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	// The raw object tells which keys were sent; the typed request carries
	// the validated values.
	var raw map[string]json.RawMessage
	if err := c.ShouldBindBodyWith(&raw, binding.JSON); err != nil || raw == nil {
		respondInvalidPayload(c, lang, err)
		return
	}
	var req dto.UpdateTaskRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		respondInvalidPayload(c, lang, err)
		return
	}

	patch, err := validation.BuildUpdateTaskInput(req, raw)
	if err != nil {
		respondInvalidPayload(c, lang, err)
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), taskID, patch)
	if err != nil {
		respondServiceError(c, err, apierrors.MsgFailUpdateTask, "failed to update task", zap.Uint64("task_id", taskID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), taskID); err != nil {
		respondServiceError(c, err, apierrors.MsgFailDeleteTask, "failed to delete task", zap.Uint64("task_id", taskID))
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{
		Message: apierrors.Localize(apierrors.MsgTaskDeleted, middleware.GetLang(c)),
	})
}

func (h *TaskHandler) Stats(c *gin.Context) {
	stats, err := h.taskService.Stats(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, apierrors.MsgFailStats, "failed to compute task stats")
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskStats(stats))
}

func parseTaskID(c *gin.Context) (uint64, bool) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || taskID == 0 {
		c.JSON(
			http.StatusUnprocessableEntity,
			apierrors.CreateError(http.StatusUnprocessableEntity, apierrors.MsgInvalidTaskID, middleware.GetLang(c)),
		)
		return 0, false
	}
	return taskID, true
}

func respondInvalidPayload(c *gin.Context, lang string, err error) {
	if err == nil {
		err = validation.ErrInvalidTaskPayload
	}
	_ = c.Error(err)
	c.JSON(
		http.StatusUnprocessableEntity,
		apierrors.CreateError(http.StatusUnprocessableEntity, apierrors.MsgInvalidTaskPayload, lang),
	)
}

// respondServiceError translates a service error into the HTTP envelope.
// Only unexpected failures are logged here; the access log covers the rest.
func respondServiceError(c *gin.Context, err error, failMsgKey, logMsg string, fields ...zap.Field) {
	lang := middleware.GetLang(c)
	_ = c.Error(err)

	switch {
	case errors.Is(err, domain.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, apierrors.CreateError(http.StatusNotFound, apierrors.MsgTaskNotFound, lang))
	case errors.Is(err, domain.ErrConstraintViolation):
		c.JSON(
			http.StatusUnprocessableEntity,
			apierrors.CreateError(http.StatusUnprocessableEntity, apierrors.MsgConstraintViolation, lang),
		)
	case errors.Is(err, domain.ErrStoreUnavailable):
		zap.L().Error(logMsg, append(fields, zap.String("request_id", middleware.GetRequestID(c)), zap.Error(err))...)
		c.JSON(
			http.StatusServiceUnavailable,
			apierrors.CreateError(http.StatusServiceUnavailable, apierrors.MsgStoreUnavailable, lang),
		)
	default:
		zap.L().Error(logMsg, append(fields, zap.String("request_id", middleware.GetRequestID(c)), zap.Error(err))...)
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, failMsgKey, lang),
		)
	}
}
