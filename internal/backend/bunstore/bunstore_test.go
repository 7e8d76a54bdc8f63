package bunstore

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/uptrace/bun"

	"wheeldeal/internal/backend"
	apperrors "wheeldeal/pkg/errors"
	"wheeldeal/pkg/logger"
)

var testDB *bun.DB

func TestMain(m *testing.M) {
	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("wheeldeal"),
		postgres.WithUsername("wheeldeal"),
		postgres.WithPassword("password"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		log.Printf("failed to start container: %s", err)
		return
	}

	defer func() {
		if err := postgresContainer.Terminate(ctx); err != nil {
			log.Printf("failed to terminate container: %s", err)
		}
	}()

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable", "application_name=test")
	if err != nil {
		log.Printf("failed to get connection string: %v", err)
		return
	}

	testDB = NewDB(connStr)
	if err := testDB.PingContext(ctx); err != nil {
		log.Fatalf("failed to ping db: %v", err)
	}

	if _, err := testDB.NewCreateTable().Model((*Row)(nil)).IfNotExists().Exec(ctx); err != nil {
		testDB.Close()
		log.Fatalf("failed to create documents table: %v", err)
	}

	code := m.Run()

	testDB.Close()

	os.Exit(code)
}

func cleanup(t *testing.T) {
	t.Cleanup(func() {
		_, err := testDB.ExecContext(context.Background(), `TRUNCATE TABLE documents RESTART IDENTITY`)
		require.NoError(t, err)
	})
}

func Test_CreateAndGet(t *testing.T) {
	cleanup(t)
	store := NewStore(testDB, logger.Logger{})

	id, err := store.Create(context.Background(), "listings", backend.Document{
		"brand": "Toyota",
		"price": 15000.0,
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	doc, err := store.Get(context.Background(), "listings", id)
	require.NoError(t, err)
	assert.Equal(t, id, doc.ID())
	assert.Equal(t, "Toyota", doc.String("brand"))
	assert.Equal(t, 15000.0, doc.Float("price"))
	assert.False(t, doc.Time("createdAt").IsZero())
}

func Test_GetMissing(t *testing.T) {
	cleanup(t)
	store := NewStore(testDB, logger.Logger{})

	_, err := store.Get(context.Background(), "listings", "no-such-id")
	assert.ErrorIs(t, err, apperrors.ErrDocumentNotFound)
}

func Test_QueryFiltersByContainment(t *testing.T) {
	cleanup(t)
	store := NewStore(testDB, logger.Logger{})
	ctx := context.Background()

	_, err := store.Create(ctx, "favorites", backend.Document{"userId": "u1", "listingId": "l1"})
	require.NoError(t, err)
	_, err = store.Create(ctx, "favorites", backend.Document{"userId": "u1", "listingId": "l2"})
	require.NoError(t, err)
	_, err = store.Create(ctx, "favorites", backend.Document{"userId": "u2", "listingId": "l1"})
	require.NoError(t, err)

	docs, err := store.Query(ctx, "favorites", backend.Filters{"userId": "u1"})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	// Insertion order via the seq column.
	assert.Equal(t, "l1", docs[0].String("listingId"))
	assert.Equal(t, "l2", docs[1].String("listingId"))
}

func Test_QuerySortsInGo(t *testing.T) {
	cleanup(t)
	store := NewStore(testDB, logger.Logger{})
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, brand := range []string{"Citroen", "Audi", "BMW"} {
		_, err := store.Create(ctx, "listings", backend.Document{
			"brand":     brand,
			"createdAt": base.Add(time.Duration(2-i) * time.Hour),
		})
		require.NoError(t, err)
	}

	docs, err := store.Query(ctx, "listings", nil, backend.WithSort("createdAt"))
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, "BMW", docs[0].String("brand"))
	assert.Equal(t, "Audi", docs[1].String("brand"))
	assert.Equal(t, "Citroen", docs[2].String("brand"))

	docs, err = store.Query(ctx, "listings", nil, backend.WithSortDesc("createdAt"))
	require.NoError(t, err)
	assert.Equal(t, "Citroen", docs[0].String("brand"))
}

func Test_UpdatePatchesBody(t *testing.T) {
	cleanup(t)
	store := NewStore(testDB, logger.Logger{})
	ctx := context.Background()

	id, err := store.Create(ctx, "listings", backend.Document{"brand": "Toyota", "price": 15000.0})
	require.NoError(t, err)

	require.NoError(t, store.Update(ctx, "listings", id, backend.Document{"price": 14000.0, "negotiable": true}))

	doc, err := store.Get(ctx, "listings", id)
	require.NoError(t, err)
	assert.Equal(t, "Toyota", doc.String("brand"))
	assert.Equal(t, 14000.0, doc.Float("price"))
	assert.True(t, doc.Bool("negotiable"))

	err = store.Update(ctx, "listings", "no-such-id", backend.Document{"price": 1.0})
	assert.ErrorIs(t, err, apperrors.ErrDocumentNotFound)
}

func Test_DeleteIsIdempotent(t *testing.T) {
	cleanup(t)
	store := NewStore(testDB, logger.Logger{})
	ctx := context.Background()

	id, err := store.Create(ctx, "listings", backend.Document{"brand": "Toyota"})
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, "listings", id))
	require.NoError(t, store.Delete(ctx, "listings", id))

	_, err = store.Get(ctx, "listings", id)
	assert.ErrorIs(t, err, apperrors.ErrDocumentNotFound)
}

func Test_TimeRoundTrip(t *testing.T) {
	cleanup(t)
	store := NewStore(testDB, logger.Logger{})
	ctx := context.Background()

	at := time.Date(2026, 7, 14, 9, 30, 0, 0, time.UTC)
	id, err := store.Create(ctx, "chats", backend.Document{
		"userA":         "u1",
		"userB":         "u2",
		"lastMessageAt": at,
	})
	require.NoError(t, err)

	doc, err := store.Get(ctx, "chats", id)
	require.NoError(t, err)
	// JSONB stores times as RFC3339 strings; reads revive them.
	assert.Equal(t, at, doc.Time("lastMessageAt"))
}

func Test_SubscribeUnsupported(t *testing.T) {
	store := NewStore(testDB, logger.Logger{})

	_, _, err := store.Subscribe(context.Background(), "messages", nil)
	assert.ErrorIs(t, err, apperrors.ErrSubscribeUnsupported)
}
