package column

import (
	"fmt"
	"strings"

	"github.com/MrEthical07/bitmask"
)

// Dialect selects the SQL type names used in declarations.
type Dialect string

const (
	// MySQL covers MySQL and MariaDB.
	MySQL Dialect = "mysql"
	// PostgreSQL covers PostgreSQL.
	PostgreSQL Dialect = "postgres"
	// SQLite covers SQLite 3.
	SQLite Dialect = "sqlite"
)

// maxShortText is the widest character column declared as VARCHAR; wider debug columns
// switch to a large-object type.
const maxShortText = 255

// maxFixedBinary is the widest MySQL BINARY column.
const maxFixedBinary = 255

// ParseDialect resolves a dialect name, accepting a few common aliases.
func ParseDialect(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "mysql", "mariadb":
		return MySQL, nil
	case "postgres", "postgresql", "pg":
		return PostgreSQL, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	}
	return "", fmt.Errorf("%w: unknown dialect %q", bitmask.ErrInvalidArgument, name)
}

func (d Dialect) binary(byteLen int) (string, error) {
	switch d {
	case MySQL:
		// BINARY keeps the width fixed; VARBINARY would not
		if byteLen > maxFixedBinary {
			return "BLOB", nil
		}
		return fmt.Sprintf("BINARY(%d)", byteLen), nil
	case PostgreSQL:
		return "BYTEA", nil
	case SQLite:
		return "BLOB", nil
	}
	return "", fmt.Errorf("%w: unknown dialect %q", bitmask.ErrInvalidArgument, string(d))
}

func (d Dialect) text(chars int) (string, error) {
	if chars <= maxShortText {
		switch d {
		case MySQL, PostgreSQL, SQLite:
			return fmt.Sprintf("VARCHAR(%d)", chars), nil
		}
		return "", fmt.Errorf("%w: unknown dialect %q", bitmask.ErrInvalidArgument, string(d))
	}

	switch d {
	case MySQL:
		switch {
		case chars <= 65535:
			return "TEXT", nil
		case chars <= 16777215:
			return "MEDIUMTEXT", nil
		}
		return "LONGTEXT", nil
	case PostgreSQL:
		return "TEXT", nil
	case SQLite:
		return "CLOB", nil
	}
	return "", fmt.Errorf("%w: unknown dialect %q", bitmask.ErrInvalidArgument, string(d))
}

func checkLength(name string, byteLen int) error {
	if byteLen <= 0 {
		return fmt.Errorf("%w: length must be provided when declaring column of type %q", bitmask.ErrInvalidArgument, name)
	}
	return nil
}
