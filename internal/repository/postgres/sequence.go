package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
)

// nextBusinessID issues the next sequential business identifier for a
// table, e.g. "P001" -> "P002". Ordering by length first keeps the scan
// correct once the numeric part outgrows its zero padding.
func nextBusinessID(ctx context.Context, db DBTX, table, column, prefix string) (string, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM %s WHERE %s ~ $1 ORDER BY length(%s) DESC, %s DESC LIMIT 1`,
		column, table, column, column, column,
	)

	var last string
	err := db.GetContext(ctx, &last, query, "^"+prefix+"[0-9]+$")
	if err == sql.ErrNoRows {
		return fmt.Sprintf("%s001", prefix), nil
	}
	if err != nil {
		return "", err
	}

	num, err := strconv.Atoi(strings.TrimPrefix(last, prefix))
	if err != nil {
		return "", fmt.Errorf("malformed business id %q: %w", last, err)
	}

	return fmt.Sprintf("%s%03d", prefix, num+1), nil
}
