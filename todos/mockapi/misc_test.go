package mockapi

import (
	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Alp4ka/todopager/todos"
)

func newGORMMySQLMock() (*gorm.DB, sqlmock.Sqlmock, error) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		return nil, nil, err
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      mockDB,
		SkipInitializeWithVersion: true,
	})

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, nil, err
	}

	return db, mock, nil
}

func newGORMPostgresMock() (*gorm.DB, sqlmock.Sqlmock, error) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		return nil, nil, err
	}

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: mockDB}), &gorm.Config{})
	if err != nil {
		return nil, nil, err
	}

	return db, mock, nil
}

var taskColumnNames = []string{
	"id", "title", "completed", "created_at", "starts_at", "ends_at", "notify_at", "notify_at_value",
}

func taskRows(tasks ...todos.Task) *sqlmock.Rows {
	rows := sqlmock.NewRows(taskColumnNames)
	for _, t := range tasks {
		rows.AddRow(t.ID, t.Title, t.Completed, t.CreatedAt, t.StartsAt, t.EndsAt, t.NotifyAt, t.NotifyAtValue)
	}

	return rows
}

func sampleTasks() []todos.Task {
	return []todos.Task{
		{ID: "a", Title: "Write report", Completed: false, CreatedAt: "2026-10-13T09:00:00.000Z"},
		{ID: "b", Title: "Call bank", Completed: true, CreatedAt: "2026-10-15T08:00:00.000Z"},
		{ID: "c", Title: "Buy milk", Completed: false, CreatedAt: "2026-10-14T18:30:00.000Z"},
		{ID: "d", Title: "Book flights", Completed: true, CreatedAt: "2026-10-12T07:15:00.000Z"},
		{ID: "e", Title: "Pay rent", Completed: false, CreatedAt: "2026-10-15T12:00:00.000Z"},
	}
}
