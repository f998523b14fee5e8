package counter_test

import (
	"context"
	"regexp"
	"sync"
	"testing"

	"go-estateflow/internal/shared/counter"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestRepository_GetNextValue(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO company_counters")).
		WithArgs("c-1", "employee_code").
		WillReturnRows(sqlmock.NewRows([]string{"last_value"}).AddRow(7))

	next, err := counter.NewRepository(gdb).GetNextValue(context.Background(), "c-1", "employee_code")

	require.NoError(t, err)
	assert.Equal(t, int64(7), next)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemoryRepository_GetNextValue(t *testing.T) {
	repo := counter.NewMemoryRepository()
	ctx := context.Background()

	var wg sync.WaitGroup
	seen := make(chan int64, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, _ := repo.GetNextValue(ctx, "c-1", "employee_code")
			seen <- v
		}()
	}
	wg.Wait()
	close(seen)

	unique := map[int64]bool{}
	for v := range seen {
		unique[v] = true
	}
	assert.Len(t, unique, 20)

	other, err := repo.GetNextValue(ctx, "c-2", "employee_code")
	require.NoError(t, err)
	assert.Equal(t, int64(1), other)
}
