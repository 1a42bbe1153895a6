package postgres

import "database/sql"

func isNotFound(err error) bool {
	return err == sql.ErrNoRows
}

func nullString(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}
