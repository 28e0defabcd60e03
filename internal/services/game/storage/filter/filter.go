// Package filter translates AIP-160 filter expressions over finished games
// into SQL conditions.
package filter

import (
	"fmt"
	"strings"
	"time"

	"go.einride.tech/aip/filtering"
	expr "google.golang.org/genproto/googleapis/api/expr/v1alpha1"
)

// Condition is a SQL WHERE fragment with positional parameters.
type Condition struct {
	Clause string
	Params []any
}

// Empty reports whether the condition matches every row.
func (c Condition) Empty() bool {
	return strings.TrimSpace(c.Clause) == ""
}

type column struct {
	name      string
	timestamp bool
}

var historyColumns = map[string]column{
	"winner_name":        {name: "winner_name"},
	"first_player_name":  {name: "first_player_name"},
	"second_player_name": {name: "second_player_name"},
	"state_name":         {name: "state_name"},
	"game_id":            {name: "game_id"},
	"finished_at":        {name: "finished_at", timestamp: true},
}

var comparisons = map[string]string{
	filtering.FunctionEquals:        "=",
	filtering.FunctionNotEquals:     "!=",
	filtering.FunctionLessThan:      "<",
	filtering.FunctionLessEquals:    "<=",
	filtering.FunctionGreaterThan:   ">",
	filtering.FunctionGreaterEquals: ">=",
}

// HistoryDeclarations returns the identifiers a history filter may reference.
func HistoryDeclarations() (*filtering.Declarations, error) {
	opts := []filtering.DeclarationOption{filtering.DeclareStandardFunctions()}
	for ident, col := range historyColumns {
		kind := filtering.TypeString
		if col.timestamp {
			kind = filtering.TypeTimestamp
		}
		opts = append(opts, filtering.DeclareIdent(ident, kind))
	}
	return filtering.NewDeclarations(opts...)
}

// ParseHistory parses a filter such as
// `winner_name = "alice" AND finished_at > timestamp("2026-01-01T00:00:00Z")`.
// An empty string yields an empty condition.
func ParseHistory(filterStr string) (Condition, error) {
	if strings.TrimSpace(filterStr) == "" {
		return Condition{}, nil
	}

	decls, err := HistoryDeclarations()
	if err != nil {
		return Condition{}, fmt.Errorf("create declarations: %w", err)
	}
	parsed, err := filtering.ParseFilterString(filterStr, decls)
	if err != nil {
		return Condition{}, fmt.Errorf("parse filter: %w", err)
	}
	if parsed.CheckedExpr == nil {
		return Condition{}, nil
	}
	return translate(parsed.CheckedExpr.GetExpr())
}

func translate(e *expr.Expr) (Condition, error) {
	call := e.GetCallExpr()
	if call == nil {
		return Condition{}, fmt.Errorf("unsupported expression: %T", e.GetExprKind())
	}

	switch call.GetFunction() {
	case filtering.FunctionAnd, "_&&_":
		return join(call.GetArgs(), "AND")
	case filtering.FunctionOr, "_||_":
		return join(call.GetArgs(), "OR")
	case filtering.FunctionNot:
		if len(call.GetArgs()) != 1 {
			return Condition{}, fmt.Errorf("NOT requires 1 argument")
		}
		inner, err := translate(call.GetArgs()[0])
		if err != nil {
			return Condition{}, err
		}
		return Condition{Clause: "NOT (" + inner.Clause + ")", Params: inner.Params}, nil
	}

	op, ok := comparisons[call.GetFunction()]
	if !ok {
		return Condition{}, fmt.Errorf("unsupported function: %s", call.GetFunction())
	}
	return compare(call.GetArgs(), op)
}

func join(args []*expr.Expr, op string) (Condition, error) {
	if len(args) != 2 {
		return Condition{}, fmt.Errorf("%s requires 2 arguments", op)
	}
	left, err := translate(args[0])
	if err != nil {
		return Condition{}, err
	}
	right, err := translate(args[1])
	if err != nil {
		return Condition{}, err
	}
	params := make([]any, 0, len(left.Params)+len(right.Params))
	params = append(params, left.Params...)
	params = append(params, right.Params...)
	return Condition{
		Clause: fmt.Sprintf("(%s %s %s)", left.Clause, op, right.Clause),
		Params: params,
	}, nil
}

func compare(args []*expr.Expr, op string) (Condition, error) {
	if len(args) != 2 {
		return Condition{}, fmt.Errorf("comparison requires 2 arguments")
	}
	ident := args[0].GetIdentExpr()
	if ident == nil {
		return Condition{}, fmt.Errorf("expected identifier on the left of %s", op)
	}
	col, ok := historyColumns[ident.GetName()]
	if !ok {
		return Condition{}, fmt.Errorf("unknown field: %s", ident.GetName())
	}

	var value any
	var err error
	if col.timestamp {
		value, err = timestampMillis(args[1])
	} else {
		value, err = constant(args[1])
	}
	if err != nil {
		return Condition{}, fmt.Errorf("%s: %w", ident.GetName(), err)
	}
	return Condition{Clause: fmt.Sprintf("%s %s ?", col.name, op), Params: []any{value}}, nil
}

func constant(e *expr.Expr) (any, error) {
	c := e.GetConstExpr()
	if c == nil {
		return nil, fmt.Errorf("expected constant, got %T", e.GetExprKind())
	}
	switch kind := c.GetConstantKind().(type) {
	case *expr.Constant_StringValue:
		return kind.StringValue, nil
	case *expr.Constant_Int64Value:
		return kind.Int64Value, nil
	case *expr.Constant_BoolValue:
		return kind.BoolValue, nil
	default:
		return nil, fmt.Errorf("unsupported constant type: %T", kind)
	}
}

// timestampMillis reads timestamp("RFC3339") and returns unix milliseconds,
// the storage format of finished_at.
func timestampMillis(e *expr.Expr) (int64, error) {
	call := e.GetCallExpr()
	if call == nil || call.GetFunction() != filtering.FunctionTimestamp || len(call.GetArgs()) != 1 {
		return 0, fmt.Errorf("expected timestamp(\"...\")")
	}
	raw := call.GetArgs()[0].GetConstExpr().GetStringValue()
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp %q", raw)
	}
	return t.UTC().UnixMilli(), nil
}
