package migration

import "database/sql"

type gooseConn struct {
	db  *sql.DB
	dir string
}
