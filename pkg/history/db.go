package history

import (
	"database/sql"

	"github.com/regscope/regscope/pkg/storedb"
)

const historyModule = "history"

func openHistoryDB(path string) (*sql.DB, error) {
	return storedb.Open(storedb.OpenOptions{
		Path:       path,
		Module:     historyModule,
		Migrations: historyMigrations(),
	})
}

func historyMigrations() []storedb.Migration {
	return []storedb.Migration{
		{
			Version: 1,
			Name:    "create_edits",
			SQL: `
CREATE TABLE IF NOT EXISTS edits (
  id TEXT PRIMARY KEY,
  op TEXT NOT NULL,
  key_path TEXT NOT NULL,
  value_name TEXT NOT NULL DEFAULT '',
  value_type TEXT NOT NULL DEFAULT '',
  data TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_edits_created_at ON edits(created_at);
CREATE INDEX IF NOT EXISTS idx_edits_key_path ON edits(key_path);
`,
		},
	}
}
