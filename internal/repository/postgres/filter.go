package postgres

import (
	"fmt"
	"sort"
	"strings"

	"atlas/pkg/errors"
)

// Operator keys accepted inside a filter value map, e.g.
// {"price": {"$lt": 2000}} or {"address": {"$contains": "Mumbai"}}.
const (
	opEq       = "$eq"
	opNe       = "$ne"
	opLt       = "$lt"
	opLte      = "$lte"
	opGt       = "$gt"
	opGte      = "$gte"
	opContains = "$contains"
	opRegex    = "$regex"
)

var comparisonSQL = map[string]string{
	opEq:  "=",
	opNe:  "<>",
	opLt:  "<",
	opLte: "<=",
	opGt:  ">",
	opGte: ">=",
}

// compileFilter turns a field-keyed filter into a conjunctive WHERE
// fragment with positional parameters starting at $startArg. allowed maps
// external field names to column names; unknown fields are rejected so
// agent-supplied filters cannot reach arbitrary columns.
func compileFilter(filter map[string]interface{}, allowed map[string]string, startArg int) (string, []interface{}, error) {
	if len(filter) == 0 {
		return "TRUE", nil, nil
	}

	// Deterministic clause order keeps queries stable for logging and tests
	fields := make([]string, 0, len(filter))
	for f := range filter {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	clauses := make([]string, 0, len(filter))
	args := make([]interface{}, 0, len(filter))
	next := startArg

	for _, field := range fields {
		column, ok := allowed[field]
		if !ok {
			return "", nil, errors.Wrapf(errors.ErrInvalidInput, "unknown filter field: %s", field)
		}

		value := filter[field]
		switch v := value.(type) {
		case map[string]interface{}:
			for op, operand := range v {
				clause, arg, err := compileOperator(column, op, operand, next)
				if err != nil {
					return "", nil, err
				}
				clauses = append(clauses, clause)
				args = append(args, arg)
				next++
			}
		default:
			clauses = append(clauses, fmt.Sprintf("%s = $%d", column, next))
			args = append(args, value)
			next++
		}
	}

	return strings.Join(clauses, " AND "), args, nil
}

func compileOperator(column, op string, operand interface{}, argNum int) (string, interface{}, error) {
	if sqlOp, ok := comparisonSQL[op]; ok {
		return fmt.Sprintf("%s %s $%d", column, sqlOp, argNum), operand, nil
	}

	switch op {
	case opContains:
		s, ok := operand.(string)
		if !ok {
			return "", nil, errors.Wrapf(errors.ErrInvalidInput, "%s operand must be a string", opContains)
		}
		return fmt.Sprintf("%s ILIKE $%d", column, argNum), "%" + s + "%", nil
	case opRegex:
		s, ok := operand.(string)
		if !ok {
			return "", nil, errors.Wrapf(errors.ErrInvalidInput, "%s operand must be a string", opRegex)
		}
		return fmt.Sprintf("%s ~* $%d", column, argNum), s, nil
	}

	return "", nil, errors.Wrapf(errors.ErrInvalidInput, "unsupported filter operator: %s", op)
}

// compileChanges turns a field-keyed change set into a SET fragment.
// Same allow-list discipline as compileFilter.
func compileChanges(changes map[string]interface{}, allowed map[string]string, startArg int) (string, []interface{}, error) {
	if len(changes) == 0 {
		return "", nil, errors.Wrap(errors.ErrInvalidInput, "no fields to update")
	}

	fields := make([]string, 0, len(changes))
	for f := range changes {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	assignments := make([]string, 0, len(changes))
	args := make([]interface{}, 0, len(changes))
	next := startArg

	for _, field := range fields {
		column, ok := allowed[field]
		if !ok {
			return "", nil, errors.Wrapf(errors.ErrInvalidInput, "unknown update field: %s", field)
		}
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, next))
		args = append(args, changes[field])
		next++
	}

	return strings.Join(assignments, ", "), args, nil
}
