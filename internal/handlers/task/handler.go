package task

import (
	"net/http"
	"taskorganizer/infras/otel"
	"taskorganizer/internal/domains/task/model"
	"taskorganizer/internal/domains/task/model/dto"
	"taskorganizer/internal/domains/task/service"
	"taskorganizer/shared"
	"taskorganizer/shared/constant"
	"taskorganizer/shared/failure"
	"taskorganizer/shared/validator"
	"taskorganizer/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Task
	otel    otel.Otel
}

func New(service service.Task, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/tasks", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetTasks)
		routerGroup.Post("/", handler.CreateTask)
		routerGroup.Get("/{id}", handler.GetTaskByID)
		routerGroup.Put("/{id}", handler.UpdateTask)
		routerGroup.Post("/{id}/toggle", handler.ToggleTask)
		routerGroup.Delete("/{id}", handler.DeleteTask)
	})
}

// GetTasks lists every task.
// @Summary List tasks
// @Description Return all tasks, newest first.
// @Tags Task
// @Produce json
// @Success 200 {array} dto.TaskResponse
// @Failure 500 {object} response.Error
// @Router /tasks [get]
func (handler *Handler) GetTasks(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTasks")
	defer scope.End()

	tasks, err := handler.service.List(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get tasks")

		response.WithError(writer, err)

		return
	}

	scope.SetAttribute("count", len(tasks))

	response.WithJSON(writer, http.StatusOK, tasks)
}

// CreateTask creates a task.
// @Summary Create a task
// @Description Create a new, incomplete task with the given title.
// @Tags Task
// @Accept json
// @Produce json
// @Param request body dto.CreateTaskRequest true "Create Task Request"
// @Success 201 {object} dto.TaskResponse
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /tasks [post]
func (handler *Handler) CreateTask(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateTask")
	defer scope.End()

	req := dto.CreateTaskRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	task, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create task")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Task created successfully")

	response.WithJSON(writer, http.StatusCreated, task)
}

// GetTaskByID returns one task.
// @Summary Get a task by ID
// @Tags Task
// @Produce json
// @Param id path int true "Task ID"
// @Success 200 {object} dto.TaskResponse
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /tasks/{id} [get]
func (handler *Handler) GetTaskByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTaskByID")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(request, constant.RequestParamID), model.FieldID)
	if err != nil {
		handler.fail(writer, scope, err, "invalid task id")

		return
	}

	task, err := handler.service.Get(ctx, id)
	if err != nil {
		handler.fail(writer, scope, err, "failed to get task by ID")

		return
	}

	response.WithJSON(writer, http.StatusOK, task)
}

// UpdateTask applies a partial update.
// @Summary Update a task
// @Description Replace the supplied fields of a task. Omitted or null fields keep their value.
// @Tags Task
// @Accept json
// @Produce json
// @Param id path int true "Task ID"
// @Param request body dto.UpdateTaskRequest true "Update Task Request"
// @Success 200 {object} dto.TaskResponse
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /tasks/{id} [put]
func (handler *Handler) UpdateTask(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateTask")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(request, constant.RequestParamID), model.FieldID)
	if err != nil {
		handler.fail(writer, scope, err, "invalid task id")

		return
	}

	req := dto.UpdateTaskRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		handler.fail(writer, scope, err, "failed to validate request body")

		return
	}

	task, err := handler.service.Update(ctx, id, req)
	if err != nil {
		handler.fail(writer, scope, err, "failed to update task")

		return
	}

	scope.AddEvent("Task updated successfully")

	response.WithJSON(writer, http.StatusOK, task)
}

// ToggleTask flips the completion flag.
// @Summary Toggle task completion
// @Tags Task
// @Produce json
// @Param id path int true "Task ID"
// @Success 200 {object} dto.TaskResponse
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /tasks/{id}/toggle [post]
func (handler *Handler) ToggleTask(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ToggleTask")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(request, constant.RequestParamID), model.FieldID)
	if err != nil {
		handler.fail(writer, scope, err, "invalid task id")

		return
	}

	task, err := handler.service.Toggle(ctx, id)
	if err != nil {
		handler.fail(writer, scope, err, "failed to toggle task")

		return
	}

	scope.AddEvent("Task toggled successfully")

	response.WithJSON(writer, http.StatusOK, task)
}

// DeleteTask removes a task.
// @Summary Delete a task
// @Tags Task
// @Param id path int true "Task ID"
// @Success 204
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /tasks/{id} [delete]
func (handler *Handler) DeleteTask(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteTask")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(request, constant.RequestParamID), model.FieldID)
	if err != nil {
		handler.fail(writer, scope, err, "invalid task id")

		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		handler.fail(writer, scope, err, "failed to delete task")

		return
	}

	scope.AddEvent("Task deleted successfully")

	response.WithNoContent(writer)
}

// fail logs client errors at warn and everything else at error before responding.
func (handler *Handler) fail(writer http.ResponseWriter, scope otel.Scope, err error, msg string) {
	scope.TraceError(err)

	if code := failure.GetCode(err); code < http.StatusInternalServerError {
		log.Warn().Err(err).Int("status", code).Msg(msg)
	} else {
		log.Error().Err(err).Msg(msg)
	}

	response.WithError(writer, err)
}
