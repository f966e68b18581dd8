package task

import (
	"sort"
	"strconv"
)

// Options is the read-only bag handed unchanged to every task of an invocation.
type Options struct {
	values map[string]string
}

// NewOptions copies values into a new Options.
func NewOptions(values map[string]string) Options {
	copied := make(map[string]string, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return Options{values: copied}
}

// Get returns the value stored under key.
func (o Options) Get(key string) (string, bool) {
	v, ok := o.values[key]
	return v, ok
}

// String returns the value stored under key, or "" when absent.
func (o Options) String(key string) string {
	return o.values[key]
}

// Bool interprets the value stored under key as a boolean. Missing or
// unparsable values are false.
func (o Options) Bool(key string) bool {
	b, err := strconv.ParseBool(o.values[key])
	return err == nil && b
}

// Keys returns the option keys in sorted order.
func (o Options) Keys() []string {
	keys := make([]string, 0, len(o.values))
	for k := range o.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Map returns a copy of the options.
func (o Options) Map() map[string]string {
	return NewOptions(o.values).values
}

// Len returns the number of options.
func (o Options) Len() int {
	return len(o.values)
}
