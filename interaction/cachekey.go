package interaction

import (
	"math"
	"strconv"
	"strings"

	"github.com/katalvlaran/hsml/quantum"
)

// CacheKey names the cache entry for a matrix of kind over a basis built
// from p. Stark keys also carry the field angle:
//
//	stark_n=20-25_L_max=3_S=0.5_ML=None_ML_max=None_angle_45.0.npz
//	zeeman_n=20-25_L_max=3_S=0.5_ML=0_ML_max=None.npz
func CacheKey(kind Kind, p quantum.Params, cfg Config) string {
	var b strings.Builder
	b.WriteString(kind.String())
	b.WriteString("_n=")
	b.WriteString(strconv.Itoa(p.NMin))
	b.WriteByte('-')
	b.WriteString(strconv.Itoa(p.NMax))
	b.WriteString("_L_max=")
	b.WriteString(strconv.Itoa(p.LMax))
	b.WriteString("_S=")
	b.WriteString(strconv.FormatFloat(p.S, 'f', -1, 64))
	b.WriteString("_ML=")
	b.WriteString(quantum.FormatOptional(p.ML))
	b.WriteString("_ML_max=")
	b.WriteString(quantum.FormatOptional(p.MLMax))
	if kind == Stark {
		b.WriteString("_angle_")
		b.WriteString(formatAngle(cfg.FieldAngle))
	}
	b.WriteString(".npz")

	return b.String()
}

// formatAngle renders f the way existing cache files spell it: always with
// a fractional part ("45.0"), exponent form outside [1e-4, 1e16).
func formatAngle(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	a := math.Abs(f)
	if a != 0 && (a < 1e-4 || a >= 1e16) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}

	return s
}
