package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Task=MockTaskService

import (
	"context"
	"errors"
	"fmt"
	"taskorganizer/infras/otel"
	"taskorganizer/internal/domains/task/model"
	"taskorganizer/internal/domains/task/model/dto"
	"taskorganizer/internal/domains/task/repository"
	"taskorganizer/shared/constant"
	"taskorganizer/shared/failure"

	"github.com/rs/zerolog/log"
)

const messageNotFound = "Task not found"

type Task interface {
	List(ctx context.Context) ([]dto.TaskResponse, error)
	Get(ctx context.Context, id int64) (dto.TaskResponse, error)
	Create(ctx context.Context, req dto.CreateTaskRequest) (dto.TaskResponse, error)
	Update(ctx context.Context, id int64, req dto.UpdateTaskRequest) (dto.TaskResponse, error)
	Toggle(ctx context.Context, id int64) (dto.TaskResponse, error)
	Delete(ctx context.Context, id int64) error
}

type serviceImpl struct {
	repo repository.Task
	otel otel.Otel
}

func New(repo repository.Task, otel otel.Otel) Task {
	return &serviceImpl{
		repo: repo,
		otel: otel,
	}
}

func (s *serviceImpl) List(ctx context.Context) (res []dto.TaskResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	tasks, err := s.repo.GetAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list tasks")

		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return dto.FromModels(tasks), nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.TaskResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(model.FieldID, id)

	task, err := s.repo.Get(ctx, id)
	if err != nil {
		return res, notFoundOr(err, "failed to get task")
	}

	res.FromModel(task)

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateTaskRequest) (res dto.TaskResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	task, err := s.repo.Insert(ctx, req.ToModel())
	if err != nil {
		log.Error().Err(err).Msg("failed to create task")

		return res, fmt.Errorf("failed to create task: %w", err)
	}

	res.FromModel(task)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, id int64, req dto.UpdateTaskRequest) (res dto.TaskResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(model.FieldID, id)

	task, err := s.repo.Modify(ctx, id, req.ApplyTo)
	if err != nil {
		return res, notFoundOr(err, "failed to update task")
	}

	res.FromModel(task)

	return res, nil
}

func (s *serviceImpl) Toggle(ctx context.Context, id int64) (res dto.TaskResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Toggle")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(model.FieldID, id)

	task, err := s.repo.Modify(ctx, id, (*model.Task).Toggle)
	if err != nil {
		return res, notFoundOr(err, "failed to toggle task")
	}

	res.FromModel(task)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(model.FieldID, id)

	if err = s.repo.Delete(ctx, id); err != nil {
		return notFoundOr(err, "failed to delete task")
	}

	return nil
}

func notFoundOr(err error, msg string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return failure.NotFound(messageNotFound) //nolint:wrapcheck
	}

	log.Error().Err(err).Msg(msg)

	return fmt.Errorf("%s: %w", msg, err)
}
