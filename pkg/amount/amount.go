// Package amount implements the ledger's native value unit: an unsigned 256-bit
// integer whose arithmetic reports overflow and underflow instead of wrapping.
package amount

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	"github.com/holiman/uint256"
)

var (
	ErrOverflow  = errors.New("amount: overflow")
	ErrUnderflow = errors.New("amount: underflow")
	ErrSyntax    = errors.New("amount: invalid decimal")
)

// Amount is a value type; the zero value is 0.
type Amount struct{ v uint256.Int }

var Zero = Amount{}

func FromUint64(n uint64) Amount {
	var a Amount
	a.v.SetUint64(n)
	return a
}

// Parse reads a base-10 unsigned integer.
func Parse(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Zero, ErrSyntax
	}
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return Zero, fmt.Errorf("%w: %q", ErrSyntax, s)
	}
	return Amount{v: *v}, nil
}

// MustParse is Parse for constants and tests.
func MustParse(s string) Amount {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Amount) String() string { return a.v.Dec() }
func (a Amount) IsZero() bool   { return a.v.IsZero() }

// Cmp returns -1, 0 or +1.
func (a Amount) Cmp(b Amount) int { return a.v.Cmp(&b.v) }
func (a Amount) Eq(b Amount) bool { return a.v.Eq(&b.v) }
func (a Amount) Lt(b Amount) bool { return a.v.Lt(&b.v) }
func (a Amount) Gt(b Amount) bool { return a.v.Gt(&b.v) }

func (a Amount) Add(b Amount) (Amount, error) {
	var out Amount
	if _, overflow := out.v.AddOverflow(&a.v, &b.v); overflow {
		return Zero, ErrOverflow
	}
	return out, nil
}

func (a Amount) Sub(b Amount) (Amount, error) {
	var out Amount
	if _, underflow := out.v.SubOverflow(&a.v, &b.v); underflow {
		return Zero, ErrUnderflow
	}
	return out, nil
}

// Sum adds all terms, failing on the first overflow.
func Sum(terms ...Amount) (Amount, error) {
	total := Zero
	for _, t := range terms {
		var err error
		if total, err = total.Add(t); err != nil {
			return Zero, err
		}
	}
	return total, nil
}

// Value stores the amount as a decimal string so both MySQL and SQLite keep
// all 256 bits.
func (a Amount) Value() (driver.Value, error) { return a.v.Dec(), nil }

func (a *Amount) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*a = Zero
		return nil
	case string:
		return a.scanString(v)
	case []byte:
		return a.scanString(string(v))
	case int64:
		if v < 0 {
			return fmt.Errorf("amount: negative value %d", v)
		}
		*a = FromUint64(uint64(v))
		return nil
	default:
		return fmt.Errorf("amount: unsupported scan type %T", src)
	}
}

func (a *Amount) scanString(s string) error {
	if s == "" {
		*a = Zero
		return nil
	}
	p, err := Parse(s)
	if err != nil {
		return err
	}
	*a = p
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) { return []byte(`"` + a.v.Dec() + `"`), nil }

// UnmarshalJSON accepts a quoted or bare decimal.
func (a *Amount) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	p, err := Parse(s)
	if err != nil {
		return err
	}
	*a = p
	return nil
}
