package mockapi

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Alp4ka/todopager"
	"github.com/Alp4ka/todopager/todos"
)

// Supported SQL drivers for OpenGormStore.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	// DriverSQLite takes a file path or ":memory:" as dsn. Needs cgo.
	DriverSQLite = "sqlite"
)

// taskRow is the todos table.
type taskRow struct {
	ID            string `gorm:"column:id;primaryKey;size:64"`
	Title         string `gorm:"column:title"`
	Completed     bool   `gorm:"column:completed"`
	CreatedAt     string `gorm:"column:created_at;size:32;autoCreateTime:false"`
	StartsAt      string `gorm:"column:starts_at;size:32"`
	EndsAt        string `gorm:"column:ends_at;size:32"`
	NotifyAt      string `gorm:"column:notify_at;size:16"`
	NotifyAtValue string `gorm:"column:notify_at_value;size:16"`
}

func (taskRow) TableName() string {
	return "todos"
}

func newTaskRow(t todos.Task) taskRow {
	return taskRow(t)
}

func (r taskRow) task() todos.Task {
	return todos.Task(r)
}

func (r taskRow) columns() map[string]any {
	return map[string]any{
		"title":           r.Title,
		"completed":       r.Completed,
		"created_at":      r.CreatedAt,
		"starts_at":       r.StartsAt,
		"ends_at":         r.EndsAt,
		"notify_at":       r.NotifyAt,
		"notify_at_value": r.NotifyAtValue,
	}
}

// idOrder breaks ties so OFFSET paging is deterministic.
var idOrder = todopager.OrderBy{Column: "id", Direction: todopager.DirectionASC}

// GormStore keeps tasks in a SQL table.
type GormStore struct {
	db *gorm.DB
}

var _ Store = (*GormStore)(nil)

// NewGormStore wraps an open connection.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// OpenGormStore connects to dsn with the named driver and creates the todos
// table if needed.
func OpenGormStore(driver, dsn string) (*GormStore, error) {
	var dialector gorm.Dialector

	switch driver {
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	case DriverMySQL:
		dialector = mysql.Open(dsn)
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver '%s'", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	store := NewGormStore(db)

	err = store.Migrate(context.Background())
	if err != nil {
		return nil, err
	}

	return store, nil
}

// Migrate creates or updates the todos table.
func (s *GormStore) Migrate(ctx context.Context) error {
	err := s.db.WithContext(ctx).AutoMigrate(&taskRow{})
	if err != nil {
		return fmt.Errorf("migrate todos: %w", err)
	}

	return nil
}

func (s *GormStore) scope(ctx context.Context, q Query) *gorm.DB {
	db := s.db.WithContext(ctx).Model(&taskRow{})
	if q.Completed != nil {
		db = db.Where("completed = ?", *q.Completed)
	}

	return db
}

func (s *GormStore) List(ctx context.Context, q Query) ([]todos.Task, int, error) {
	var total int64

	err := s.scope(ctx, q).Count(&total).Error
	if err != nil {
		return nil, 0, fmt.Errorf("count tasks: %w", err)
	}

	orderings := todopager.Orderings{idOrder}
	if q.Order != nil {
		orderings = todopager.Orderings{*q.Order, idOrder}
	}

	db := s.scope(ctx, q)
	if q.Paged() {
		db, err = q.Page.WithSubstitutedSort(orderings...).Paginate(db)
		if err != nil {
			return nil, 0, err
		}
	} else {
		db = orderings.Apply(db)
	}

	var rows []taskRow

	err = db.Find(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("find tasks: %w", err)
	}

	tasks := make([]todos.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, row.task())
	}

	return tasks, int(total), nil
}

func (s *GormStore) Get(ctx context.Context, id string) (todos.Task, error) {
	row, err := takeRow(s.db.WithContext(ctx), id)
	if err != nil {
		return todos.Task{}, err
	}

	return row.task(), nil
}

func (s *GormStore) Create(ctx context.Context, task todos.Task) (todos.Task, error) {
	row := newTaskRow(task)

	err := s.db.WithContext(ctx).Create(&row).Error
	if err != nil {
		return todos.Task{}, fmt.Errorf("create task: %w", err)
	}

	return row.task(), nil
}

func (s *GormStore) Replace(ctx context.Context, patch todos.Patch) (todos.Task, error) {
	var task todos.Task

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := takeRow(tx, patch.ID)
		if err != nil {
			return err
		}

		task = patch.Apply(row.task())

		err = tx.Model(&taskRow{}).Where("id = ?", patch.ID).Updates(newTaskRow(task).columns()).Error
		if err != nil {
			return fmt.Errorf("update task: %w", err)
		}

		return nil
	})
	if err != nil {
		return todos.Task{}, err
	}

	return task, nil
}

func (s *GormStore) Delete(ctx context.Context, id string) (todos.Task, error) {
	var task todos.Task

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := takeRow(tx, id)
		if err != nil {
			return err
		}

		task = row.task()

		err = tx.Where("id = ?", id).Delete(&taskRow{}).Error
		if err != nil {
			return fmt.Errorf("delete task: %w", err)
		}

		return nil
	})
	if err != nil {
		return todos.Task{}, err
	}

	return task, nil
}

func takeRow(db *gorm.DB, id string) (taskRow, error) {
	var row taskRow

	err := db.Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return taskRow{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	} else if err != nil {
		return taskRow{}, fmt.Errorf("get task: %w", err)
	}

	return row, nil
}
