package db

import (
	"strings"

	"github.com/go-sql-driver/mysql"
)

// IsDupKeyErr reports whether the driver error is a unique key violation
// (duplicate username, duplicate group slug, double follow).
func IsDupKeyErr(err *mysql.MySQLError) bool {
	return strings.Contains(err.Error(), "Duplicate")
}
