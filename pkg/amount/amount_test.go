package amount

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const maxUint256 = "115792089237316195423570985008687907853269984665640564039457584007913129639935"

func TestParse(t *testing.T) {
	a, err := Parse(" 2500000000000000000 ")
	require.NoError(t, err)
	require.Equal(t, "2500000000000000000", a.String())

	for _, bad := range []string{"", "-1", "1.5", "abc", maxUint256 + "0"} {
		_, err := Parse(bad)
		require.ErrorIs(t, err, ErrSyntax, "input %q", bad)
	}
}

func TestAdd_Overflow(t *testing.T) {
	max := MustParse(maxUint256)
	_, err := max.Add(FromUint64(1))
	require.ErrorIs(t, err, ErrOverflow)

	got, err := FromUint64(math.MaxUint64).Add(FromUint64(1))
	require.NoError(t, err)
	require.Equal(t, "18446744073709551616", got.String())
}

func TestSub_Underflow(t *testing.T) {
	_, err := FromUint64(1).Sub(FromUint64(2))
	require.ErrorIs(t, err, ErrUnderflow)

	got, err := FromUint64(5).Sub(FromUint64(2))
	require.NoError(t, err)
	require.True(t, got.Eq(FromUint64(3)))
}

func TestSum(t *testing.T) {
	got, err := Sum(FromUint64(2), FromUint64(25), FromUint64(25))
	require.NoError(t, err)
	require.Equal(t, "52", got.String())

	_, err = Sum(MustParse(maxUint256), FromUint64(1))
	require.ErrorIs(t, err, ErrOverflow)
}

func TestCompare(t *testing.T) {
	a, b := FromUint64(1), FromUint64(2)
	require.True(t, a.Lt(b))
	require.True(t, b.Gt(a))
	require.Equal(t, -1, a.Cmp(b))
	require.True(t, Zero.IsZero())
}

func TestSQLRoundTrip(t *testing.T) {
	v, err := MustParse(maxUint256).Value()
	require.NoError(t, err)
	require.Equal(t, maxUint256, v)

	var a Amount
	require.NoError(t, a.Scan([]byte("42")))
	require.Equal(t, "42", a.String())
	require.NoError(t, a.Scan(int64(7)))
	require.Equal(t, "7", a.String())
	require.NoError(t, a.Scan(nil))
	require.True(t, a.IsZero())
	require.Error(t, a.Scan(int64(-1)))
	require.Error(t, a.Scan(3.5))
}

func TestJSON(t *testing.T) {
	type payload struct {
		V Amount `json:"v"`
	}
	b, err := json.Marshal(payload{V: FromUint64(2250)})
	require.NoError(t, err)
	require.Equal(t, `{"v":"2250"}`, string(b))

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"v":"99"}`), &p))
	require.Equal(t, "99", p.V.String())
	require.NoError(t, json.Unmarshal([]byte(`{"v":100}`), &p))
	require.Equal(t, "100", p.V.String())

	err = json.Unmarshal([]byte(`{"v":"-3"}`), &p)
	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), "invalid decimal"))
}
