package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"taskorganizer/infras/otel"
	"taskorganizer/infras/postgres"
	"taskorganizer/internal/domains/task/model"
	"taskorganizer/shared/constant"
	"taskorganizer/shared/logger"

	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned when no task carries the requested id.
var ErrNotFound = errors.New("task not found")

const (
	columns = "id, title, is_completed, created_at, updated_at"

	queryGetAll = "SELECT " + columns + " FROM " + model.TableName + " ORDER BY created_at DESC, id DESC"
	queryGet    = "SELECT " + columns + " FROM " + model.TableName + " WHERE id = $1"
	queryLock   = "SELECT " + columns + " FROM " + model.TableName + " WHERE id = $1 FOR UPDATE"
	queryInsert = "INSERT INTO " + model.TableName + " (title, is_completed) VALUES (:title, :is_completed) RETURNING " + columns
	queryUpdate = "UPDATE " + model.TableName + " SET title = :title, is_completed = :is_completed, updated_at = now() WHERE id = :id RETURNING " + columns
	queryDelete = "DELETE FROM " + model.TableName + " WHERE id = $1"
)

type Task interface {
	GetAll(ctx context.Context) ([]model.Task, error)
	Get(ctx context.Context, id int64) (model.Task, error)
	Insert(ctx context.Context, task model.Task) (model.Task, error)
	// Modify loads the task under a row lock, applies mutate and persists the
	// result in the same transaction.
	Modify(ctx context.Context, id int64, mutate func(task *model.Task)) (model.Task, error)
	Delete(ctx context.Context, id int64) error
}

type repositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Task {
	return &repositoryImpl{
		db:   db,
		otel: otel,
	}
}

func (r *repositoryImpl) newScope(ctx context.Context, op string) (context.Context, otel.Scope) {
	return r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.%s", constant.OtelRepositoryScopeName, model.EntityName, op))
}

func (r *repositoryImpl) GetAll(ctx context.Context) (tasks []model.Task, err error) {
	ctx, scope := r.newScope(ctx, "GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryGetAll)

	db, err := r.db.Reader()
	if err != nil {
		return nil, fmt.Errorf("failed to get all data (%s): %w", model.EntityName, err)
	}

	tasks = []model.Task{}
	if err = db.SelectContext(ctx, &tasks, queryGetAll); err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to get all data (%s): %w", model.EntityName, postgres.Classify(err))
	}

	return tasks, nil
}

func (r *repositoryImpl) Get(ctx context.Context, id int64) (task model.Task, err error) {
	ctx, scope := r.newScope(ctx, "Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryGet)

	db, err := r.db.Reader()
	if err != nil {
		return task, fmt.Errorf("failed to get data (%s): %w", model.EntityName, err)
	}

	if err = db.GetContext(ctx, &task, queryGet, id); err != nil {
		return task, r.rowError("failed to get data", err)
	}

	return task, nil
}

func (r *repositoryImpl) Insert(ctx context.Context, task model.Task) (created model.Task, err error) {
	ctx, scope := r.newScope(ctx, "Insert")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryInsert)

	ctx = context.WithoutCancel(ctx)

	err = r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		return namedGet(ctx, tx, &created, queryInsert, task)
	})
	if err != nil {
		logger.ErrorWithStack(err)

		return created, fmt.Errorf("failed to insert data (%s): %w", model.EntityName, postgres.Classify(err))
	}

	return created, nil
}

func (r *repositoryImpl) Modify(ctx context.Context, id int64, mutate func(task *model.Task)) (updated model.Task, err error) {
	ctx, scope := r.newScope(ctx, "Modify")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryUpdate)

	ctx = context.WithoutCancel(ctx)

	err = r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		var current model.Task
		if err := tx.GetContext(ctx, &current, queryLock, id); err != nil {
			return err //nolint:wrapcheck
		}

		mutate(&current)

		return namedGet(ctx, tx, &updated, queryUpdate, current)
	})
	if err != nil {
		return updated, r.rowError("failed to update data", err)
	}

	return updated, nil
}

func (r *repositoryImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := r.newScope(ctx, "Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryDelete)

	ctx = context.WithoutCancel(ctx)

	err = r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, queryDelete, id)
		if err != nil {
			return err //nolint:wrapcheck
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return err //nolint:wrapcheck
		}

		if affected == 0 {
			return sql.ErrNoRows
		}

		return nil
	})
	if err != nil {
		return r.rowError("failed to delete data", err)
	}

	return nil
}

// rowError maps a missing row to ErrNotFound and classifies everything else.
func (r *repositoryImpl) rowError(msg string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s (%s): %w", msg, model.EntityName, ErrNotFound)
	}

	logger.ErrorWithStack(err)

	return fmt.Errorf("%s (%s): %w", msg, model.EntityName, postgres.Classify(err))
}

func namedGet(ctx context.Context, tx *sqlx.Tx, dest any, query string, arg any) error {
	bound, args, err := tx.BindNamed(query, arg)
	if err != nil {
		return err //nolint:wrapcheck
	}

	return tx.GetContext(ctx, dest, bound, args...) //nolint:wrapcheck
}
