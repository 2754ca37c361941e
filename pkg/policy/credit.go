// Package policy evaluates user-supplied CEL expressions against movie
// credits, on top of the vote-average threshold.
package policy

import (
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/DrSkyle/coactor/pkg/tmdb"
	"github.com/google/cel-go/cel"
)

// CreditFilter decides whether a qualifying credit is expanded.
// Expressions see id (int), title (string) and vote_average (double),
// e.g. "vote_average >= 8.5 && !title.contains('Documentary')".
type CreditFilter struct {
	expr    string
	program cel.Program
	logger  *slog.Logger
}

// NewCreditFilter compiles expr. An empty expression allows everything.
func NewCreditFilter(expr string, logger *slog.Logger) (*CreditFilter, error) {
	if logger == nil {
		logger = slog.Default()
	}
	f := &CreditFilter{expr: strings.TrimSpace(expr), logger: logger}
	if f.expr == "" {
		return f, nil
	}

	env, err := cel.NewEnv(
		cel.Variable("id", cel.IntType),
		cel.Variable("title", cel.StringType),
		cel.Variable("vote_average", cel.DoubleType),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL env: %w", err)
	}

	ast, issues := env.Compile(f.expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("credit filter compilation error: %w", issues.Err())
	}
	if !reflect.DeepEqual(ast.OutputType(), cel.BoolType) {
		return nil, fmt.Errorf("credit filter must be boolean, got %v", ast.OutputType())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("credit filter program creation error: %w", err)
	}
	f.program = prg
	return f, nil
}

// Expr returns the source expression.
func (f *CreditFilter) Expr() string {
	return f.expr
}

// Allow evaluates the filter. Evaluation errors reject the credit.
func (f *CreditFilter) Allow(c tmdb.MovieCredit) bool {
	if f.program == nil {
		return true
	}

	out, _, err := f.program.Eval(map[string]interface{}{
		"id":           c.ID,
		"title":        c.Title,
		"vote_average": c.VoteAverage,
	})
	if err != nil {
		f.logger.Warn("Credit filter evaluation failed", "movie", c.ID, "error", err)
		return false
	}
	allow, ok := out.Value().(bool)
	return ok && allow
}
