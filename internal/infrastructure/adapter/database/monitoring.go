package database

import (
	"strings"
	"time"
)

// QueryObserver receives the duration of every executed SQL statement
type QueryObserver interface {
	ObserveDBQuery(label string, duration time.Duration)
}

// queryLabel builds a low-cardinality label such as "UPDATE transactions"
func queryLabel(sql string) string {
	queryType := extractQueryType(sql)
	if queryType == "" {
		return "OTHER"
	}
	table := strings.Trim(strings.ToLower(extractTableName(sql)), "\"`")
	if table == "" {
		return queryType
	}
	return queryType + " " + table
}

// extractQueryType determines the type of SQL query (SELECT, INSERT, UPDATE, DELETE)
func extractQueryType(sql string) string {
	sqlUpper := strings.ToUpper(strings.TrimSpace(sql))

	for _, prefix := range []string{"SELECT", "INSERT", "UPDATE", "DELETE"} {
		if strings.HasPrefix(sqlUpper, prefix) {
			return prefix
		}
	}
	return ""
}

// extractTableName attempts to extract the table name from the SQL query
func extractTableName(sql string) string {
	sqlUpper := strings.ToUpper(strings.TrimSpace(sql))

	var fromIndex int
	switch {
	case strings.HasPrefix(sqlUpper, "UPDATE "):
		fromIndex = len("UPDATE ")
	case strings.Contains(sqlUpper, " INTO "):
		fromIndex = strings.Index(sqlUpper, " INTO ") + 6
	case strings.Contains(sqlUpper, " FROM "):
		fromIndex = strings.Index(sqlUpper, " FROM ") + 6
	default:
		return ""
	}

	remainder := strings.TrimSpace(sqlUpper[fromIndex:])
	if end := strings.IndexAny(remainder, " (\n\t"); end != -1 {
		return remainder[:end]
	}
	return remainder
}
