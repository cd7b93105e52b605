package search

import (
	"fmt"
	"slices"
)

// Declared is an ordered snapshot of the parameters declared on a Spec.
type Declared struct {
	names  []string
	params map[string]Parameter
}

// Names returns the declared names in declaration order.
func (d Declared) Names() []string {
	return slices.Clone(d.names)
}

// Lookup returns the Parameter declared for name.
func (d Declared) Lookup(name string) (Parameter, bool) {
	p, ok := d.params[name]
	return p, ok
}

// add inserts or overwrites a parameter. An overwrite keeps the original
// position.
func (d *Declared) add(name string, p Parameter) {
	if d.params == nil {
		d.params = make(map[string]Parameter)
	}
	if _, ok := d.params[name]; !ok {
		d.names = append(d.names, name)
	}
	d.params[name] = p
}

func (d Declared) clone() Declared {
	cpy := Declared{
		names:  slices.Clone(d.names),
		params: make(map[string]Parameter, len(d.params)),
	}
	for k, v := range d.params {
		cpy.params[k] = v
	}

	return cpy
}

// ValidationPolicy checks q against the declared parameters and returns
// every reason it is rejected. An empty result accepts the query.
type ValidationPolicy func(declared Declared, q *Query) []string

// StrictValidation only accepts declared names and requires every
// required parameter. Reasons for declared parameters come first, in
// declaration order, followed by undeclared names in query order.
func StrictValidation(declared Declared, q *Query) []string {
	var errs []string

	seen := make(map[string]bool, len(declared.names))
	for _, name := range declared.names {
		param := declared.params[name]

		value, ok := q.Get(name)
		if !ok {
			if param.IsRequired() {
				errs = append(errs, fmt.Sprintf("%s is required", name))
			}
			continue
		}

		seen[name] = true
		if !param.Validate(value) {
			errs = append(errs, fmt.Sprintf("%s validation failed", name))
		}
	}

	for _, name := range q.Names() {
		if !seen[name] {
			errs = append(errs, fmt.Sprintf("%s is an invalid parameter", name))
		}
	}

	return errs
}

// PermissiveValidation accepts every query. Declared parameters become
// documentation only.
func PermissiveValidation(Declared, *Query) []string {
	return nil
}
