package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/cespare/xxhash/v2"
	_ "github.com/mattn/go-sqlite3"
)

type (
	// Store is the document layer shared by accounts and todos.
	//
	// It intentionally exposes only create/read/update/delete and
	// query-by-filter style operations, so callers never see SQL.
	Store struct {
		db        *sql.DB
		writeable bool
	}
)

func openDatabase(ctx context.Context, path string, readwrite bool) (*sql.DB, error) {
	var connstr string
	if readwrite {
		connstr = fmt.Sprintf("file:%v?_journal=wal&_foreign_keys=on&mode=rwc", path)
	} else {
		connstr = fmt.Sprintf("file:%v?_foreign_keys=on&mode=ro", path)
	}
	conn, err := sql.Open("sqlite3", connstr)
	if err != nil {
		return nil, fmt.Errorf("unable to open %v, cause %v", path, err)
	}
	err = conn.PingContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to ping store %v, cause %v", path, err)
	}
	return conn, nil
}

// Open loads the document store at path, creating the schema when it is
// opened for writing and the schema does not exist yet.
func Open(ctx context.Context, path string, readwrite bool) (*Store, error) {
	conn, err := openDatabase(ctx, path, readwrite)
	if err != nil {
		return nil, err
	}
	s := &Store{db: conn, writeable: readwrite}
	if readwrite {
		if err := s.init(ctx); err != nil {
			conn.Close()
			return nil, fmt.Errorf("unable to init store %v, cause %v", path, err)
		}
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) init(ctx context.Context) error {
	for _, cmd := range []string{
		`create table if not exists users(
			user_id text not null primary key,
			email text not null unique,
			email_hash64 integer not null,
			password_hash text not null
		)`,
		`create index if not exists idx_users_email_hash64
			on users(email_hash64)`,
		`create table if not exists tokens(
			seq integer not null primary key autoincrement,
			user_id text not null,
			access text not null,
			token text not null,
			token_hash64 integer not null,
			foreign key (user_id) references users(user_id)
		)`,
		`create index if not exists idx_tokens_token_hash64
			on tokens(token_hash64)`,
		`create table if not exists todos(
			todo_id text not null primary key,
			creator_id text not null,
			text text not null,
			completed integer not null default 0,
			completed_at integer,
			foreign key (creator_id) references users(user_id)
		)`,
		`create index if not exists idx_todos_creator
			on todos(creator_id)`,
	} {
		_, err := s.db.ExecContext(ctx, cmd)
		if err != nil {
			return fmt.Errorf("unable to run setup command, cause %w", err)
		}
	}
	return nil
}

// hash64 computes the lookup hash kept next to unique text columns,
// so equality scans hit a small integer index first.
func hash64(val string) int64 {
	return int64(xxhash.Sum64String(val))
}
