// Package bunstore implements the document Store on Postgres: one
// documents table keyed by (collection, doc id) with a JSONB body.
// It has no change feed, so Subscribe is unsupported; features that need
// live snapshots run against a store with native ones (memory, mongodb).
package bunstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"wheeldeal/internal/backend"
	apperrors "wheeldeal/pkg/errors"
	"wheeldeal/pkg/logger"
)

type Row struct {
	bun.BaseModel `bun:"table:documents,alias:d"`

	Seq        int64     `bun:"seq,pk,autoincrement"`
	Collection string    `bun:"collection,notnull"`
	DocID      string    `bun:"doc_id,notnull"`
	Body       string    `bun:"body,type:jsonb,notnull"`
	CreatedAt  time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

var _ backend.Store = (*Store)(nil)

type Store struct {
	db     *bun.DB
	logger logger.Logger
}

func NewDB(dsn string) *bun.DB {
	connector := pgdriver.NewConnector(pgdriver.WithDSN(dsn))
	sqlDB := sql.OpenDB(connector)
	return bun.NewDB(sqlDB, pgdialect.New())
}

func NewStore(db *bun.DB, logger logger.Logger) *Store {
	return &Store{db: db, logger: logger}
}

func (s *Store) Create(ctx context.Context, collection string, doc backend.Document) (string, error) {
	d := doc.Clone()
	id := d.String("id")
	if id == "" {
		id = uuid.NewString()
		d["id"] = id
	}
	createdAt, ok := d["createdAt"].(time.Time)
	if !ok {
		createdAt = time.Now().UTC()
		d["createdAt"] = createdAt
	}

	body, err := json.Marshal(d)
	if err != nil {
		return "", errors.Wrap(err, "bunStore.Create.Marshal")
	}

	row := &Row{Collection: collection, DocID: id, Body: string(body), CreatedAt: createdAt}
	if _, err := s.db.NewInsert().Model(row).Exec(ctx); err != nil {
		return "", errors.Wrap(err, "bunStore.Create.Insert")
	}
	return id, nil
}

func (s *Store) Get(ctx context.Context, collection, id string) (backend.Document, error) {
	row := new(Row)
	err := s.db.NewSelect().Model(row).
		Where("collection = ?", collection).
		Where("doc_id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrDocumentNotFound
		}
		return nil, errors.Wrap(err, "bunStore.Get.Scan")
	}
	return decodeRow(row)
}

func (s *Store) Query(ctx context.Context, collection string, filters backend.Filters, opts ...backend.QueryOption) ([]backend.Document, error) {
	o := backend.BuildQueryOptions(opts)

	q := s.db.NewSelect().Model((*Row)(nil)).
		Where("collection = ?", collection).
		Order("seq ASC")

	if len(filters) > 0 {
		probe, err := json.Marshal(backend.Document(filters))
		if err != nil {
			return nil, errors.Wrap(err, "bunStore.Query.MarshalFilter")
		}
		q = q.Where("body @> ?", string(probe))
	}

	var rows []Row
	if err := q.Scan(ctx, &rows); err != nil {
		return nil, errors.Wrap(err, "bunStore.Query.Scan")
	}

	docs := make([]backend.Document, 0, len(rows))
	for i := range rows {
		doc, err := decodeRow(&rows[i])
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	// JSONB loses value typing, so field sorts happen here rather than in
	// SQL. Stable sort keeps insertion order for equal keys.
	if o.SortField != "" {
		sort.SliceStable(docs, func(i, j int) bool {
			less := backend.Compare(docs[i][o.SortField], docs[j][o.SortField]) < 0
			if o.Descending {
				return !less && backend.Compare(docs[i][o.SortField], docs[j][o.SortField]) != 0
			}
			return less
		})
	}
	return docs, nil
}

func (s *Store) Update(ctx context.Context, collection, id string, patch backend.Document) error {
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		row := new(Row)
		err := tx.NewSelect().Model(row).
			Where("collection = ?", collection).
			Where("doc_id = ?", id).
			For("UPDATE").
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperrors.ErrDocumentNotFound
			}
			return errors.Wrap(err, "bunStore.Update.Select")
		}

		doc, err := decodeRow(row)
		if err != nil {
			return err
		}
		for k, v := range patch {
			if k == "id" {
				continue
			}
			doc[k] = v
		}
		body, err := json.Marshal(doc)
		if err != nil {
			return errors.Wrap(err, "bunStore.Update.Marshal")
		}

		_, err = tx.NewUpdate().Model((*Row)(nil)).
			Set("body = ?", string(body)).
			Where("collection = ?", collection).
			Where("doc_id = ?", id).
			Exec(ctx)
		if err != nil {
			return errors.Wrap(err, "bunStore.Update.Exec")
		}
		return nil
	})
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	_, err := s.db.NewDelete().Model((*Row)(nil)).
		Where("collection = ?", collection).
		Where("doc_id = ?", id).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "bunStore.Delete.Exec")
	}
	return nil
}

func (s *Store) Subscribe(ctx context.Context, collection string, filters backend.Filters, opts ...backend.QueryOption) (<-chan []backend.Document, backend.CancelFunc, error) {
	return nil, nil, apperrors.ErrSubscribeUnsupported
}

// decodeRow revives the JSONB body: RFC3339 strings become time.Time again
// and the stored created_at column is authoritative for createdAt.
func decodeRow(row *Row) (backend.Document, error) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(row.Body), &raw); err != nil {
		return nil, errors.Wrap(err, "bunStore.decodeRow.Unmarshal")
	}
	doc := make(backend.Document, len(raw))
	for k, v := range raw {
		doc[k] = reviveJSON(v)
	}
	doc["id"] = row.DocID
	doc["createdAt"] = row.CreatedAt.UTC()
	return doc, nil
}

func reviveJSON(v any) any {
	switch t := v.(type) {
	case string:
		if ts, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return ts.UTC()
		}
		return t
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = reviveJSON(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = reviveJSON(e)
		}
		return out
	default:
		return v
	}
}
