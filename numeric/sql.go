package numeric

import (
	"database/sql/driver"
	"fmt"

	"github.com/coachpo/pgnumeric/errs"
)

const opScan = "numeric.Scan"

// Value implements driver.Valuer. The canonical text form round-trips
// through any driver that stores numerics as strings.
func (n Numeric) Value() (driver.Value, error) {
	return n.String(), nil
}

// Scan implements sql.Scanner. It accepts the textual forms drivers return
// for numeric columns plus integer and float fallbacks. NULL is rejected;
// scan nullable columns into sql.Null[Numeric] instead.
func (n *Numeric) Scan(value any) error {
	switch v := value.(type) {
	case string:
		parsed, err := Parse(v)
		if err != nil {
			return err
		}
		*n = parsed
		return nil
	case []byte:
		parsed, err := Parse(string(v))
		if err != nil {
			return err
		}
		*n = parsed
		return nil
	case int64:
		*n = FromInt64(v)
		return nil
	case float64:
		*n = FromFloat64(v)
		return nil
	case nil:
		return errs.New(opScan, errs.CodeInvalidArgument,
			errs.WithMessage("cannot scan NULL into Numeric, use sql.Null[Numeric]"))
	default:
		return errs.New(opScan, errs.CodeInvalidArgument,
			errs.WithMessage(fmt.Sprintf("cannot scan %T into Numeric", value)))
	}
}
