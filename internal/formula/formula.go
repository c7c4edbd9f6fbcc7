// Package formula evaluates the configuration-driven formula strings used
// for base damage calculations, custom modifiers, and conditions. Formulas
// are Lua expressions; variables are bound as globals before evaluation.
package formula

import (
	"fmt"
	"math"
	"sync"

	"github.com/Shopify/go-lua"

	"github.com/chaosforge/damage-api/internal/errors"
)

// Program is a parse-checked formula. Compile never executes the source.
type Program struct {
	// Name identifies the formula in errors, usually the definition id.
	Name string

	// Source is the raw expression as written in the configuration.
	Source string

	// Variables documents the bindings the formula expects. Unbound
	// variables evaluate as nil and fail arithmetic at runtime.
	Variables []string

	chunk string
}

// Compile wraps source as an expression and checks that it parses. The
// returned program is safe to evaluate concurrently through an Evaluator.
func Compile(name, source string, variables []string) (*Program, error) {
	if source == "" {
		return nil, errors.Configurationf("formula %q: source is empty", name)
	}

	chunk := "return (" + source + ")"

	l := lua.NewState()
	if err := lua.LoadString(l, chunk); err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeConfiguration, "formula %q does not parse", name)
	}
	l.Pop(1)

	return &Program{
		Name:      name,
		Source:    source,
		Variables: variables,
		chunk:     chunk,
	}, nil
}

// Evaluator runs compiled programs against variable bindings. States are
// pooled; each evaluation clears the globals it set, so pooled states never
// leak bindings between formulas.
type Evaluator struct {
	pool sync.Pool
}

// NewEvaluator creates an evaluator with a fresh state pool.
func NewEvaluator() *Evaluator {
	return &Evaluator{
		pool: sync.Pool{
			New: func() any {
				l := lua.NewState()
				lua.OpenLibraries(l)
				return l
			},
		},
	}
}

// Number evaluates a program and returns its numeric result. Non-numeric
// and non-finite results are configuration errors.
func (e *Evaluator) Number(p *Program, vars map[string]float64) (float64, error) {
	l := e.pool.Get().(*lua.State)
	defer e.pool.Put(l)

	if err := e.run(l, p, vars); err != nil {
		return 0, err
	}

	value, ok := l.ToNumber(-1)
	l.Pop(1)
	if !ok {
		return 0, errors.Configurationf("formula %q did not produce a number", p.Name)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, errors.Configurationf("formula %q produced a non-finite value", p.Name)
	}
	return value, nil
}

// Bool evaluates a program as a predicate. Lua truthiness applies: false
// and nil are false, everything else is true.
func (e *Evaluator) Bool(p *Program, vars map[string]float64) (bool, error) {
	l := e.pool.Get().(*lua.State)
	defer e.pool.Put(l)

	if err := e.run(l, p, vars); err != nil {
		return false, err
	}

	value := l.ToBoolean(-1)
	l.Pop(1)
	return value, nil
}

func (e *Evaluator) run(l *lua.State, p *Program, vars map[string]float64) error {
	for name, value := range vars {
		l.PushNumber(value)
		l.SetGlobal(name)
	}
	defer func() {
		for name := range vars {
			l.PushNil()
			l.SetGlobal(name)
		}
	}()

	if err := lua.LoadString(l, p.chunk); err != nil {
		return errors.WrapWithCodef(err, errors.CodeConfiguration, "formula %q does not parse", p.Name)
	}
	if err := l.ProtectedCall(0, 1, 0); err != nil {
		return errors.WrapWithCode(err, errors.CodeConfiguration,
			fmt.Sprintf("formula %q failed to evaluate", p.Name))
	}
	return nil
}
