package kvstore

import (
	_ "github.com/duckdb/duckdb-go/v2"
	_ "modernc.org/sqlite"
)
