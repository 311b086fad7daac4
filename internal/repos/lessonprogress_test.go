package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/vestiba/vestiba-backend/internal/logger"
	"github.com/vestiba/vestiba-backend/internal/types"
)

// The postgres schema comes from AutoMigrateAll; for tests an in-memory
// sqlite table with the same conflict target is enough to exercise the
// upsert path.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// One pooled connection, or each conn gets its own :memory: database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	stmts := []string{
		`CREATE TABLE lesson_progress (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			lesson_id TEXT NOT NULL,
			percent_complete INTEGER NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'todo',
			completed_at DATETIME,
			created_at DATETIME,
			updated_at DATETIME
		)`,
		`CREATE UNIQUE INDEX idx_lesson_progress_user_lesson ON lesson_progress(user_id, lesson_id)`,
	}
	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}
	return db
}

func testRepoLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

func TestUpsertInsertsThenUpdatesInPlace(t *testing.T) {
	db := testDB(t)
	repo := NewLessonProgressRepo(db, testRepoLogger(t))
	ctx := context.Background()

	userID := uuid.New()
	lessonID := uuid.New()
	now := time.Now()

	first, err := repo.Upsert(ctx, nil, &types.LessonProgress{
		UserID:          userID,
		LessonID:        lessonID,
		PercentComplete: 100,
		Status:          types.ProgressStatusDone,
		CompletedAt:     &now,
	})
	if err != nil {
		t.Fatalf("insert upsert: %v", err)
	}
	if first.ID == uuid.Nil {
		t.Fatalf("stored row missing id")
	}
	if first.Status != types.ProgressStatusDone || first.PercentComplete != 100 {
		t.Fatalf("stored row: %+v", first)
	}

	second, err := repo.Upsert(ctx, nil, &types.LessonProgress{
		UserID:          userID,
		LessonID:        lessonID,
		PercentComplete: 0,
		Status:          types.ProgressStatusTodo,
	})
	if err != nil {
		t.Fatalf("update upsert: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("conflict update must keep the row id: first=%s second=%s", first.ID, second.ID)
	}
	if second.Status != types.ProgressStatusTodo || second.PercentComplete != 0 {
		t.Fatalf("updated row: %+v", second)
	}
	if second.CompletedAt != nil {
		t.Fatalf("completed_at should clear on todo, got=%v", second.CompletedAt)
	}

	var count int64
	if err := db.Model(&types.LessonProgress{}).
		Where("user_id = ? AND lesson_id = ?", userID, lessonID).
		Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("at most one row per (user, lesson): got=%d", count)
	}
}

func TestUpsertIsScopedPerUser(t *testing.T) {
	db := testDB(t)
	repo := NewLessonProgressRepo(db, testRepoLogger(t))
	ctx := context.Background()

	lessonID := uuid.New()
	userA := uuid.New()
	userB := uuid.New()

	if _, err := repo.Upsert(ctx, nil, &types.LessonProgress{UserID: userA, LessonID: lessonID, Status: types.ProgressStatusDone, PercentComplete: 100}); err != nil {
		t.Fatalf("upsert A: %v", err)
	}
	if _, err := repo.Upsert(ctx, nil, &types.LessonProgress{UserID: userB, LessonID: lessonID, Status: types.ProgressStatusTodo}); err != nil {
		t.Fatalf("upsert B: %v", err)
	}

	rowsA, err := repo.GetByUserAndLessonIDs(ctx, nil, userA, []uuid.UUID{lessonID})
	if err != nil {
		t.Fatalf("get A: %v", err)
	}
	if len(rowsA) != 1 || rowsA[0].Status != types.ProgressStatusDone {
		t.Fatalf("user A rows: %+v", rowsA)
	}

	rowsB, err := repo.GetByUserAndLessonIDs(ctx, nil, userB, []uuid.UUID{lessonID})
	if err != nil {
		t.Fatalf("get B: %v", err)
	}
	if len(rowsB) != 1 || rowsB[0].Status != types.ProgressStatusTodo {
		t.Fatalf("user B rows: %+v", rowsB)
	}
}

func TestGetByUserAndLessonIDsEmptyInputs(t *testing.T) {
	db := testDB(t)
	repo := NewLessonProgressRepo(db, testRepoLogger(t))
	ctx := context.Background()

	rows, err := repo.GetByUserAndLessonIDs(ctx, nil, uuid.Nil, []uuid.UUID{uuid.New()})
	if err != nil || len(rows) != 0 {
		t.Fatalf("nil user: rows=%v err=%v", rows, err)
	}
	rows, err = repo.GetByUserAndLessonIDs(ctx, nil, uuid.New(), nil)
	if err != nil || len(rows) != 0 {
		t.Fatalf("no lesson ids: rows=%v err=%v", rows, err)
	}
}
