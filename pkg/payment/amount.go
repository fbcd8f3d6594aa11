package payment

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
)

var hundred = big.NewRat(100, 1)

// ToMinorUnits converts an amount in major currency units (rubles) into whole
// minor units (kopecks), rounding half away from zero. The decimal literal is
// used as-is, so 19.995 becomes 2000 rather than 1999.
func ToMinorUnits(amount json.Number) (int64, error) {
	r, ok := new(big.Rat).SetString(amount.String())
	if !ok {
		return 0, fmt.Errorf("payment.ToMinorUnits: invalid amount %q", amount.String())
	}
	r.Mul(r, hundred)

	num := new(big.Int).Set(r.Num())
	den := r.Denom()
	neg := num.Sign() < 0
	num.Abs(num)

	// q = floor(|x|), rem/den is the fractional part
	q, rem := new(big.Int).QuoRem(num, den, new(big.Int))
	if rem.Lsh(rem, 1).Cmp(den) >= 0 {
		q.Add(q, big.NewInt(1))
	}
	if neg {
		q.Neg(q)
	}

	if !q.IsInt64() || q.Int64() == math.MinInt64 {
		return 0, fmt.Errorf("payment.ToMinorUnits: amount %q out of range", amount.String())
	}
	return q.Int64(), nil
}
