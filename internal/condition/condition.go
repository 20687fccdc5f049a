// Package condition compiles and evaluates the boolean expressions used by
// crossroad choices and named state thresholds.
//
// Expressions are type-checked against Env when compiled, so a typo in the
// catalog fails at load time instead of silently evaluating to false.
package condition

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// SurvivorView is the read-only survivor exposed to expressions
type SurvivorView struct {
	ID       string   `expr:"id"`
	Name     string   `expr:"name"`
	HP       int      `expr:"hp"`
	Infected bool     `expr:"infected"`
	Items    int      `expr:"items"`
	Skill    string   `expr:"skill"`
	Tags     []string `expr:"tags"`
}

// LocationView is the read-only location exposed to expressions
type LocationView struct {
	ID         string `expr:"id"`
	Zombies    int    `expr:"zombies"`
	Barricades int    `expr:"barricades"`
	Slots      int    `expr:"slots"`
	Overrun    bool   `expr:"overrun"`
}

// ColonyView is the read-only colony aggregate exposed to expressions
type ColonyView struct {
	Day       int            `expr:"day"`
	Morale    int            `expr:"morale"`
	Waste     int            `expr:"waste"`
	Survivors int            `expr:"survivors"`
	Stock     map[string]int `expr:"stock"`
}

// Env is the evaluation environment. Survivor and Location describe the
// acting survivor and where they stand; Compound is always the home base.
type Env struct {
	Survivor SurvivorView `expr:"survivor"`
	Location LocationView `expr:"location"`
	Compound LocationView `expr:"compound"`
	Colony   ColonyView   `expr:"colony"`
}

// Predicate is a compiled boolean expression
type Predicate struct {
	Source  string
	program *vm.Program
}

// Compile type-checks src against Env. An empty source compiles to a
// predicate that always holds.
func Compile(src string) (*Predicate, error) {
	if src == "" {
		return &Predicate{}, nil
	}

	program, err := expr.Compile(src, expr.Env(Env{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("invalid condition %q: %w", src, err)
	}
	return &Predicate{Source: src, program: program}, nil
}

// MustCompile is like Compile but panics on error. Intended for tests and
// package-level fixtures.
func MustCompile(src string) *Predicate {
	p, err := Compile(src)
	if err != nil {
		panic(err)
	}
	return p
}

// Eval runs the predicate against env. A nil predicate always holds.
func (p *Predicate) Eval(env Env) (bool, error) {
	if p == nil || p.program == nil {
		return true, nil
	}

	result, err := vm.Run(p.program, env)
	if err != nil {
		return false, fmt.Errorf("condition evaluation error: %w", err)
	}

	ok, isBool := result.(bool)
	if !isBool {
		return false, fmt.Errorf("condition did not evaluate to boolean")
	}
	return ok, nil
}
