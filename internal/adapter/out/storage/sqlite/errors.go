package sqlite

import (
	"errors"

	sqlite3 "github.com/mattn/go-sqlite3"
)

var ErrBuildingQuery = errors.New("error building sql-query")

// timeLayout matches the text produced by CURRENT_TIMESTAMP. Cursor bounds
// are formatted with it so keyset comparisons stay plain text comparisons.
const timeLayout = "2006-01-02 15:04:05"

// isForeignKeyViolation reports whether err is a SQLite foreign key
// constraint failure. On a comment insert this means the referenced post
// does not exist.
func isForeignKeyViolation(err error) bool {
	var sqlErr sqlite3.Error
	return errors.As(err, &sqlErr) && sqlErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
}
