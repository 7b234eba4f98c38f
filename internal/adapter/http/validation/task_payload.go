package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"taskmanager/internal/adapter/http/dto"
	"taskmanager/internal/core/domain"
)

var ErrInvalidTaskPayload = errors.New("invalid task payload")

func invalid(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidTaskPayload, reason)
}

// BuildCreateTaskInput turns a bound create request into domain input.
// Omitted or null status/priority fall back to pending/medium.
func BuildCreateTaskInput(req dto.CreateTaskRequest) (domain.CreateTaskInput, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.CreateTaskInput{}, invalid("title must not be empty")
	}

	status := domain.TaskStatusPending
	if req.Status != nil {
		status = domain.TaskStatus(*req.Status)
		if !status.IsValid() {
			return domain.CreateTaskInput{}, invalid("unknown status")
		}
	}

	priority := domain.TaskPriorityMedium
	if req.Priority != nil {
		priority = domain.TaskPriority(*req.Priority)
		if !priority.IsValid() {
			return domain.CreateTaskInput{}, invalid("unknown priority")
		}
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return domain.CreateTaskInput{}, err
	}

	return domain.CreateTaskInput{
		Title:       title,
		Description: req.Description,
		Status:      status,
		Priority:    priority,
		DueDate:     dueDate,
	}, nil
}

// BuildUpdateTaskInput builds a patch from the bound request and the raw JSON
// object it came from. Keys missing from raw stay absent in the patch; an
// explicit null clears description and due_date and is rejected elsewhere.
func BuildUpdateTaskInput(req dto.UpdateTaskRequest, raw map[string]json.RawMessage) (domain.TaskPatch, error) {
	var patch domain.TaskPatch

	if hasJSONField(raw, "title") {
		if req.Title == nil {
			return domain.TaskPatch{}, invalid("title must not be null")
		}
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return domain.TaskPatch{}, invalid("title must not be empty")
		}
		patch.Title = domain.Some(title)
	}

	if hasJSONField(raw, "description") {
		if !isJSONNull(raw["description"]) && req.Description == nil {
			return domain.TaskPatch{}, invalid("description must be a string or null")
		}
		patch.Description = domain.Some(req.Description)
	}

	if hasJSONField(raw, "status") {
		if req.Status == nil {
			return domain.TaskPatch{}, invalid("status must not be null")
		}
		status := domain.TaskStatus(*req.Status)
		if !status.IsValid() {
			return domain.TaskPatch{}, invalid("unknown status")
		}
		patch.Status = domain.Some(status)
	}

	if hasJSONField(raw, "priority") {
		if req.Priority == nil {
			return domain.TaskPatch{}, invalid("priority must not be null")
		}
		priority := domain.TaskPriority(*req.Priority)
		if !priority.IsValid() {
			return domain.TaskPatch{}, invalid("unknown priority")
		}
		patch.Priority = domain.Some(priority)
	}

	if hasJSONField(raw, "due_date") {
		if !isJSONNull(raw["due_date"]) && req.DueDate == nil {
			return domain.TaskPatch{}, invalid("due_date must be a date or null")
		}
		dueDate, err := parseDueDate(req.DueDate)
		if err != nil {
			return domain.TaskPatch{}, err
		}
		patch.DueDate = domain.Some(dueDate)
	}

	return patch, nil
}

func parseDueDate(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	parsed, err := time.Parse(time.DateOnly, *value)
	if err != nil {
		return nil, invalid("due_date must be formatted as YYYY-MM-DD")
	}
	return &parsed, nil
}

func hasJSONField(raw map[string]json.RawMessage, field string) bool {
	_, ok := raw[field]
	return ok
}

func isJSONNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}
