package dataset

// Predicate selects table rows.
type Predicate func(Row) bool

// In keeps rows whose column value is one of values.
func In(column string, values ...string) Predicate {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return func(r Row) bool {
		return set[r.Get(column)]
	}
}

// Equals keeps rows whose column value equals value.
func Equals(column, value string) Predicate {
	return func(r Row) bool {
		return r.Get(column) == value
	}
}

// AtLeast keeps rows whose integer column is >= min.
// Rows with a non-integer cell are dropped.
func AtLeast(column string, min int) Predicate {
	return func(r Row) bool {
		n, ok := r.Int(column)
		return ok && n >= min
	}
}

// All combines predicates with logical AND. Nil predicates are ignored.
func All(preds ...Predicate) Predicate {
	return func(r Row) bool {
		for _, p := range preds {
			if p != nil && !p(r) {
				return false
			}
		}
		return true
	}
}
