package catalog

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresProvider_Store(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	records := sampleRecords()

	mock.ExpectBegin()
	for _, r := range records {
		mock.ExpectExec(`INSERT INTO businesses .* ON CONFLICT \(id\) DO UPDATE`).
			WithArgs(r.ID, r.Name, r.Category, r.Location, r.Price, r.Vibe, r.Rating,
				sqlmock.AnyArg(), r.Description, r.Image).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	n, err := (&PostgresProvider{DB: db, Table: "businesses"}).Store(context.Background(), records)
	require.NoError(t, err)
	assert.Equal(t, len(records), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresProvider_EnsureTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS businesses`).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, (&PostgresProvider{DB: db, Table: "businesses"}).EnsureTable(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())

	assert.Error(t, (&PostgresProvider{DB: db, Table: "x; DROP"}).EnsureTable(context.Background()))
}

func TestPostgresProvider_StoreRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO businesses`).WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	_, err = (&PostgresProvider{DB: db, Table: "businesses"}).Store(context.Background(), sampleRecords())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upsert business")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestElasticsearchProvider_Store(t *testing.T) {
	var (
		mu    sync.Mutex
		calls []string
	)
	client := newTestES(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls = append(calls, r.Method+" "+r.URL.Path)
		mu.Unlock()
		_, _ = w.Write([]byte(`{"result":"created"}`))
	})

	records := sampleRecords()
	n, err := (&ElasticsearchProvider{Client: client, Index: "businesses"}).Store(context.Background(), records)
	require.NoError(t, err)
	assert.Equal(t, len(records), n)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, calls, len(records)+1)
	assert.Equal(t, "PUT /businesses/_doc/1", calls[0])
	assert.Equal(t, "POST /businesses/_refresh", calls[len(calls)-1])
}

func TestElasticsearchProvider_StoreFailure(t *testing.T) {
	client := newTestES(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"type":"mapper_parsing_exception"}}`))
	})

	_, err := (&ElasticsearchProvider{Client: client, Index: "businesses"}).Store(context.Background(), sampleRecords())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}
