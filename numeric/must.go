package numeric

// MustParse is like Parse but panics on error. It is intended for constants
// whose validity is known at compile time.
func MustParse(s string) Numeric {
	n, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return n
}

// Must unwraps an operation result, panicking on error.
func Must(n Numeric, err error) Numeric {
	if err != nil {
		panic(err)
	}
	return n
}
