package storedb

import "errors"

var (
	ErrDBPathRequired     = errors.New("database path is required")
	ErrModuleRequired     = errors.New("migration module is required")
	ErrOpenDB             = errors.New("open database")
	ErrConfigureDB        = errors.New("configure database")
	ErrCreateMigrationTbl = errors.New("create schema_migrations table")
	ErrReadMigrations     = errors.New("read applied migrations")
	ErrApplyMigration     = errors.New("apply migration")
	ErrRecordMigration    = errors.New("record migration")
	ErrCommitMigration    = errors.New("commit migration")
)
