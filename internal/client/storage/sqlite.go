package storage

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/fieldadmin/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/fieldadmin/internal/client/session"
	"github.com/dmitrijs2005/fieldadmin/internal/dbx"
)

var sessionKeys = []string{session.KeyAccessToken, session.KeyRefreshToken, session.KeyAuthUser}

// SQLite keeps the session record as three rows of the metadata table.
// Save and Clear touch all three rows in one transaction.
type SQLite struct {
	db *sql.DB
}

var _ session.Storage = (*SQLite)(nil)

func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db}
}

func (s *SQLite) Load(ctx context.Context) (session.Record, error) {
	var rec session.Record
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		for _, f := range fields(&rec) {
			v, err := repo.Get(ctx, f.key)
			if err != nil {
				return err
			}
			*f.value = string(v)
		}
		return nil
	})
	if err != nil {
		return session.Record{}, err
	}
	return rec, nil
}

func (s *SQLite) Save(ctx context.Context, rec session.Record) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		for _, f := range fields(&rec) {
			if *f.value == "" {
				if err := repo.Delete(ctx, f.key); err != nil {
					return err
				}
				continue
			}
			if err := repo.Set(ctx, f.key, []byte(*f.value)); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SQLite) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return metadata.NewSQLiteRepository(tx).Delete(ctx, sessionKeys...)
	})
}

type field struct {
	key   string
	value *string
}

func fields(rec *session.Record) []field {
	return []field{
		{session.KeyAccessToken, &rec.AccessToken},
		{session.KeyRefreshToken, &rec.RefreshToken},
		{session.KeyAuthUser, &rec.AuthUser},
	}
}
