package cel

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Functions returns the callable function and macro names of the predicate
// environment, sorted, without operator overloads.
func Functions() ([]string, error) {
	env, err := newCellEnv()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create CEL environment")
	}

	seen := make(map[string]bool)
	for _, fn := range env.Functions() {
		if !isOperator(fn.Name()) {
			seen[fn.Name()] = true
		}
	}
	for _, m := range env.Macros() {
		if !isOperator(m.Function()) {
			seen[m.Function()] = true
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// isOperator filters internal operator-style declarations.
func isOperator(name string) bool {
	if strings.HasPrefix(name, "@") {
		return true
	}
	if strings.HasPrefix(name, "_") && strings.HasSuffix(name, "_") {
		return true
	}
	switch name {
	case "!_", "-_", "_[_]", "_?_:_":
		return true
	}
	return false
}
