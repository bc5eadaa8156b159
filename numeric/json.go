package numeric

// MarshalText implements encoding.TextMarshaler.
func (n Numeric) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (n *Numeric) UnmarshalText(text []byte) error {
	out, err := Parse(string(text))
	if err != nil {
		return err
	}
	*n = out
	return nil
}

// MarshalJSON encodes finite values as bare JSON numbers. NaN and the
// infinities have no JSON number form and are encoded as strings.
func (n Numeric) MarshalJSON() ([]byte, error) {
	s := n.String()
	if n.isSpecial() {
		return []byte(`"` + s + `"`), nil
	}
	return []byte(s), nil
}

// UnmarshalJSON accepts a JSON number or a quoted numeric literal. A JSON
// null leaves the receiver unchanged.
func (n *Numeric) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	out, err := Parse(s)
	if err != nil {
		return err
	}
	*n = out
	return nil
}
