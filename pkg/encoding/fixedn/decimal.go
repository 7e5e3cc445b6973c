package fixedn

import (
	"errors"
	"math/big"
	"strings"
)

const maxAllowedPrecision = 16

var (
	errInvalidString   = errors.New("invalid fixed-point number")
	errTooManyDecimals = errors.New("too many decimal digits")
	errInvalidPrec     = errors.New("invalid precision")
)

func pow10(n int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}

// ToString converts a big decimal with the specified precision to a string.
func ToString(bi *big.Int, precision int) string {
	var neg bool
	s := bi.String()
	if bi.Sign() < 0 {
		neg = true
		s = s[1:]
	}
	if precision > 0 {
		if len(s) <= precision {
			s = strings.Repeat("0", precision-len(s)+1) + s
		}
		ip, fp := s[:len(s)-precision], strings.TrimRight(s[len(s)-precision:], "0")
		s = ip
		if len(fp) != 0 {
			s += "." + fp
		}
	}
	if neg {
		s = "-" + s
	}
	return s
}

// FromString converts a string to a big decimal with the specified precision.
func FromString(s string, precision int) (*big.Int, error) {
	if precision < 0 || precision > maxAllowedPrecision {
		return nil, errInvalidPrec
	}
	var neg bool
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	ip, fp, hasDot := strings.Cut(s, ".")
	if !isDigits(ip) || (hasDot && !isDigits(fp)) {
		return nil, errInvalidString
	}
	if len(fp) > precision {
		return nil, errTooManyDecimals
	}
	res, _ := new(big.Int).SetString(ip+fp+strings.Repeat("0", precision-len(fp)), 10)
	if neg {
		res.Neg(res)
	}
	return res, nil
}

func isDigits(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := range s {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
