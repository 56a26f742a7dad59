package filter

import "strings"

// QuoteIdentifier returns a double-quoted identifier when the name needs
// quoting (non-identifier characters or a reserved word). SQLite and DuckDB
// share the double-quote convention. Backends use it when assembling the
// SELECT list around a lowered predicate.
func QuoteIdentifier(name string) string {
	return quoteIdentifier(name)
}

// quoteIdentifier returns a quoted identifier if needed.
func quoteIdentifier(name string) string {
	if needsQuoting(name) {
		return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
	}
	return name
}

// needsQuoting returns true if the identifier needs quoting.
func needsQuoting(name string) bool {
	if len(name) == 0 {
		return true
	}

	c := name[0]
	if !isLetter(c) && c != '_' {
		return true
	}
	for i := 1; i < len(name); i++ {
		c = name[i]
		if !isLetter(c) && !isDigit(c) && c != '_' {
			return true
		}
	}

	// Reserved words that can appear as column names in annotation tables.
	switch strings.ToUpper(name) {
	case "SELECT", "FROM", "WHERE", "AND", "OR", "NOT", "NULL", "TRUE", "FALSE",
		"IN", "IS", "BETWEEN", "CASE", "WHEN", "THEN", "ELSE", "END", "ORDER",
		"BY", "GROUP", "LIMIT", "OFFSET", "CAST", "START":
		return true
	}
	return false
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
