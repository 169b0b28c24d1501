package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/nayeemjohny/pcbuilder-backend/pkg/enums"
	"github.com/nayeemjohny/pcbuilder-backend/pkg/pagination"
)

func openMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 conn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("gorm.Open failed: %v", err)
	}
	return gdb, mock
}

func productColumns() []string {
	return []string{
		"id", "name", "brand", "category",
		"specifications", "highlights",
		"min_price_bdt", "base_price_bdt",
		"created_at", "updated_at",
	}
}

func TestListByCategoryQueriesAndBuffers(t *testing.T) {
	gdb, mock := openMockDB(t)
	repo := NewRepository(gdb)

	now := time.Now()
	rows := sqlmock.NewRows(productColumns())
	for i := 0; i < 3; i++ {
		rows.AddRow(
			uuid.New(), "GPU X", "Brand", "gpu",
			[]byte(`{}`), []byte(`{}`),
			50000, 52000,
			now.Add(-time.Duration(i)*time.Minute), now,
		)
	}

	mock.ExpectQuery(`SELECT \* FROM "products" WHERE category = .+ ORDER BY created_at DESC, id DESC LIMIT .+`).
		WithArgs("gpu", 3).
		WillReturnRows(rows)

	products, hasMore, err := repo.ListByCategory(context.Background(), ListProductsInput{
		Category:   enums.ComponentCategoryGPU,
		Pagination: pagination.Params{Limit: 2},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected buffered row to be trimmed, got %d rows", len(products))
	}
	if !hasMore {
		t.Fatal("expected hasMore when buffer row returned")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListByCategorySearchPattern(t *testing.T) {
	gdb, mock := openMockDB(t)
	repo := NewRepository(gdb)

	mock.ExpectQuery(`SELECT \* FROM "products" WHERE category = .+ AND \(LOWER\(name\) LIKE .+ OR LOWER\(brand\) LIKE .+\)`).
		WithArgs("cpu", "%ryzen%", "%ryzen%", pagination.DefaultLimit+1).
		WillReturnRows(sqlmock.NewRows(productColumns()))

	_, hasMore, err := repo.ListByCategory(context.Background(), ListProductsInput{
		Category: enums.ComponentCategoryCPU,
		Query:    "  Ryzen ",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hasMore {
		t.Fatal("empty result must not report more pages")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteIssuesDelete(t *testing.T) {
	gdb, mock := openMockDB(t)
	repo := NewRepository(gdb)

	id := uuid.New()
	mock.ExpectExec(`DELETE FROM "products" WHERE id = .+`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
