// Command deccalc evaluates arbitrary-precision decimal expressions and
// streaming aggregates from the command line.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/coachpo/pgnumeric/aggregate"
	"github.com/coachpo/pgnumeric/config"
	"github.com/coachpo/pgnumeric/errs"
	"github.com/coachpo/pgnumeric/numeric"
)

const usageText = `usage:
  deccalc [flags] eval <op> <a> [b]
  deccalc [flags] sum|avg|stats

eval operators:
  add sub mul div divtrunc mod pow log cmp min max gcd lcm   (two operands)
  sqrt exp ln log10 abs neg ceil floor fact round trunc      (one operand)

The aggregate commands read one decimal literal per line from stdin.

flags:
`

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps structured numeric errors onto distinct shell exit codes so
// batch drivers can dispatch on the failure kind without parsing stderr.
func exitCode(err error) int {
	switch errs.CodeOf(err) {
	case errs.CodeInvalidSyntax:
		return 2
	case errs.CodeDivisionByZero:
		return 3
	case errs.CodeOutOfRange:
		return 4
	case errs.CodeOverflow:
		return 5
	case errs.CodeInvalidArgument:
		return 6
	default:
		return 1
	}
}

type result struct {
	Command string `json:"command"`
	Op      string `json:"op,omitempty"`
	Result  string `json:"result"`
	Scale   int    `json:"scale"`

	Count  int64  `json:"count,omitempty"`
	Sum    string `json:"sum,omitempty"`
	Avg    string `json:"avg,omitempty"`
	VarPop string `json:"var_pop,omitempty"`
	Stddev string `json:"stddev_samp,omitempty"`
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("deccalc", flag.ContinueOnError)
	var (
		configPath = fs.String("config", "", "Optional YAML settings file")
		asJSON     = fs.Bool("json", false, "Emit results as JSON")
		sci        = fs.Bool("sci", false, "Render results in scientific notation")
		scale      = fs.Int("scale", -1, "Round the result to this display scale (also the round/trunc target)")
		typmod     = fs.String("typmod", "", "Constrain the result to precision,scale (e.g. 10,2)")
		quiet      = fs.Bool("quiet", false, "Suppress informational logs")
	)
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usageText)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.LoadFile(*configPath)
	if err != nil {
		return err
	}

	var logger *log.Logger
	if !*quiet {
		logger = log.New(os.Stderr, "deccalc ", log.LstdFlags)
	}

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return errors.New("command required (eval|sum|avg|stats)")
	}

	render := func(n numeric.Numeric) string {
		if *sci {
			return n.SciString(n.Scale())
		}
		return n.String()
	}
	finish := func(res result) error {
		if *asJSON {
			enc := json.NewEncoder(stdout)
			return enc.Encode(res)
		}
		_, err := fmt.Fprintln(stdout, res.Result)
		return err
	}

	switch rest[0] {
	case "eval":
		out, err := eval(rest[1:], *scale, *typmod, cfg.Limits)
		if err != nil {
			return err
		}
		return finish(result{Command: "eval", Op: rest[1], Result: render(out), Scale: out.Scale()})
	case "sum", "avg":
		acc := aggregate.NewAccumulator(cfg.Aggregate.Int128FastPath, cfg.Aggregate.Int128Scale)
		count, err := feed(stdin, acc.Add)
		if err != nil {
			return err
		}
		if logger != nil {
			logger.Printf("accumulated %d values", count)
		}
		var out numeric.Numeric
		if rest[0] == "sum" {
			out, err = acc.Sum()
		} else {
			out, err = acc.Avg()
		}
		if err != nil {
			return err
		}
		return finish(result{Command: rest[0], Result: render(out), Scale: out.Scale(), Count: acc.Count()})
	case "stats":
		var st aggregate.VarianceState
		count, err := feed(stdin, st.Add)
		if err != nil {
			return err
		}
		if logger != nil {
			logger.Printf("accumulated %d values", count)
		}
		return stats(&st, stdout, *asJSON)
	default:
		fs.Usage()
		return fmt.Errorf("unknown command %q (expected eval, sum, avg or stats)", rest[0])
	}
}

// feed parses one literal per line into the accumulator, skipping blank
// lines and #-prefixed comments.
func feed(r io.Reader, add func(numeric.Numeric) error) (int64, error) {
	var count int64
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		n, err := numeric.Parse(line)
		if err != nil {
			return count, err
		}
		if err := add(n); err != nil {
			return count, err
		}
		count++
	}
	if err := sc.Err(); err != nil {
		return count, fmt.Errorf("read input: %w", err)
	}
	return count, nil
}

func stats(st *aggregate.VarianceState, stdout io.Writer, asJSON bool) error {
	sum, err := st.Sum()
	if err != nil {
		return err
	}
	avg, err := st.Avg()
	if err != nil {
		return err
	}
	varPop, err := st.VarPop()
	if err != nil {
		return err
	}
	stddev, err := st.StddevSamp()
	if err != nil {
		return err
	}
	if asJSON {
		return json.NewEncoder(stdout).Encode(result{
			Command: "stats",
			Result:  sum.String(),
			Scale:   sum.Scale(),
			Count:   st.Count(),
			Sum:     sum.String(),
			Avg:     avg.String(),
			VarPop:  varPop.String(),
			Stddev:  stddev.String(),
		})
	}
	_, err = fmt.Fprintf(stdout, "count=%d sum=%s avg=%s var_pop=%s stddev_samp=%s\n",
		st.Count(), sum, avg, varPop, stddev)
	return err
}

func eval(args []string, scale int, typmod string, limits config.Limits) (numeric.Numeric, error) {
	if len(args) < 2 {
		return numeric.Numeric{}, errors.New("eval requires an operator and at least one operand")
	}
	op := strings.ToLower(args[0])
	a, err := numeric.Parse(args[1])
	if err != nil {
		return numeric.Numeric{}, err
	}

	var out numeric.Numeric
	switch op {
	case "sqrt", "exp", "ln", "log10", "abs", "neg", "ceil", "floor", "fact", "round", "trunc":
		if len(args) != 2 {
			return numeric.Numeric{}, fmt.Errorf("operator %s takes exactly one operand", op)
		}
		out, err = evalUnary(op, a, args[1], scale)
	default:
		if len(args) != 3 {
			return numeric.Numeric{}, fmt.Errorf("operator %s takes exactly two operands", op)
		}
		var b numeric.Numeric
		b, err = numeric.Parse(args[2])
		if err != nil {
			return numeric.Numeric{}, err
		}
		out, err = evalBinary(op, a, b, scale)
	}
	if err != nil {
		return numeric.Numeric{}, err
	}

	if typmod != "" {
		t, err := parseTypmodFlag(typmod, limits)
		if err != nil {
			return numeric.Numeric{}, err
		}
		return out.ApplyTypmod(t)
	}
	if scale >= 0 && op != "round" && op != "trunc" {
		return out.Round(scale)
	}
	return out, nil
}

func evalUnary(op string, a numeric.Numeric, lit string, scale int) (numeric.Numeric, error) {
	switch op {
	case "sqrt":
		if scale >= 0 {
			return a.SqrtToScale(scale)
		}
		return a.Sqrt()
	case "exp":
		return a.Exp()
	case "ln":
		return a.Ln()
	case "log10":
		return a.Log10()
	case "abs":
		return a.Abs(), nil
	case "neg":
		return a.Neg(), nil
	case "ceil":
		return a.Ceil()
	case "floor":
		return a.Floor()
	case "fact":
		n, err := a.Int64()
		if err != nil {
			return numeric.Numeric{}, err
		}
		return numeric.Factorial(n)
	case "round":
		if scale < 0 {
			scale = 0
		}
		return a.Round(scale)
	case "trunc":
		if scale < 0 {
			scale = 0
		}
		return a.Trunc(scale)
	}
	return numeric.Numeric{}, fmt.Errorf("unknown operator %q for operand %s", op, lit)
}

func evalBinary(op string, a, b numeric.Numeric, scale int) (numeric.Numeric, error) {
	switch op {
	case "add":
		return a.Add(b)
	case "sub":
		return a.Sub(b)
	case "mul":
		return a.Mul(b)
	case "div":
		if scale >= 0 {
			return a.DivScale(b, scale, true)
		}
		return a.Div(b)
	case "divtrunc":
		return a.DivTrunc(b)
	case "mod":
		return a.Mod(b)
	case "pow":
		return a.Power(b)
	case "log":
		return numeric.Log(a, b)
	case "cmp":
		return numeric.FromInt64(int64(a.Cmp(b))), nil
	case "min":
		return numeric.Min(a, b), nil
	case "max":
		return numeric.Max(a, b), nil
	case "gcd":
		return numeric.GCD(a, b), nil
	case "lcm":
		return numeric.LCM(a, b)
	}
	return numeric.Numeric{}, fmt.Errorf("unknown operator %q", op)
}

func parseTypmodFlag(raw string, limits config.Limits) (numeric.Typmod, error) {
	parts := strings.SplitN(raw, ",", 2)
	precision, scale := 0, 0
	if _, err := fmt.Sscanf(parts[0], "%d", &precision); err != nil {
		return numeric.Unconstrained, fmt.Errorf("invalid typmod precision %q: %w", parts[0], err)
	}
	if len(parts) == 2 {
		if _, err := fmt.Sscanf(parts[1], "%d", &scale); err != nil {
			return numeric.Unconstrained, fmt.Errorf("invalid typmod scale %q: %w", parts[1], err)
		}
	}
	if precision > limits.MaxPrecision {
		return numeric.Unconstrained, fmt.Errorf("typmod precision %d above configured limit %d",
			precision, limits.MaxPrecision)
	}
	return numeric.MakeTypmod(precision, scale)
}
