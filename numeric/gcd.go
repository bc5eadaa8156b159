package numeric

import "github.com/coachpo/pgnumeric/errs"

const (
	opGCD       = "numeric.GCD"
	opLCM       = "numeric.LCM"
	opFactorial = "numeric.Factorial"
)

// gcdVar computes the greatest common divisor of v1 and v2 by the Euclidean
// algorithm. The result is positive and carries the larger display scale.
func gcdVar(v1, v2 *variable) variable {
	resDscale := max(v1.dscale, v2.dscale)

	// Arrange for v1 to carry the greater absolute value. The loop below
	// would fix this up by itself, at the price of an extra modulo.
	cmp := cmpAbs(v1, v2)
	if cmp < 0 {
		v1, v2 = v2, v1
	}

	// Equal absolute values need no modulo either.
	if cmp == 0 {
		res := v1.clone()
		res.sign = signPos
		res.dscale = resDscale
		return res
	}

	tmp := v1.clone()
	res := v2.clone()
	for res.ndigits != 0 {
		mod, _ := modVar(&tmp, &res) // divisor is nonzero here
		tmp = res
		res = mod
	}
	res = tmp

	res.sign = signPos
	res.dscale = resDscale
	return res
}

// GCD returns the greatest common divisor of x and y, the largest value
// dividing both exactly. Any NaN or infinity argument yields NaN.
func GCD(x, y Numeric) Numeric {
	if x.isSpecial() || y.isSpecial() {
		return numNaN
	}
	v1, v2 := x.alias(), y.alias()
	res := gcdVar(&v1, &v2)
	n, _ := makeNumeric(&res, opGCD) // bounded by the inputs, cannot overflow
	return n
}

// LCM returns the least common multiple of x and y. Any NaN or infinity
// argument yields NaN.
func LCM(x, y Numeric) (Numeric, error) {
	if x.isSpecial() || y.isSpecial() {
		return numNaN, nil
	}
	v1, v2 := x.alias(), y.alias()

	res := gcdVar(&v1, &v2)
	if res.ndigits == 0 {
		// lcm(0, 0) is zero
		res.dscale = max(v1.dscale, v2.dscale)
	} else {
		// lcm = v1 / gcd * v2, where the division is always exact
		q, err := divVar(&v1, &res, 0, false)
		if err != nil {
			return Numeric{}, err
		}
		res = mulVar(&v2, &q, v2.dscale)
		res.sign = signPos
	}
	return makeNumeric(&res, opLCM)
}

// Factorial returns num! as a numeric value.
func Factorial(num int64) (Numeric, error) {
	if num < 0 {
		return Numeric{}, errs.InvalidArgument(opFactorial, "factorial of a negative number is undefined")
	}
	if num <= 1 {
		return numOne, nil
	}
	// results past 32177! exceed the storable weight
	if num > 32177 {
		return Numeric{}, errs.Overflow(opFactorial, "value overflows numeric format")
	}

	res := varFromInt64(num)
	for f := num - 1; f > 1; f-- {
		fact := varFromInt64(f)
		res = mulVar(&res, &fact, 0)
	}
	return makeNumeric(&res, opFactorial)
}
