package quantum

import (
	"strconv"
)

// Params records the parameters a Basis was generated from. Only the
// cache-key builder reads them back, so they are kept verbatim.
//
// ML and MLMax are optional: a fixed ML selects a single magnetic sublevel,
// MLMax bounds |ML| when ML is nil; both nil means every ML with |ML| ≤ L.
type Params struct {
	NMin  int     `yaml:"n_min"`
	NMax  int     `yaml:"n_max"`
	LMax  int     `yaml:"l_max"`
	S     float64 `yaml:"s"`
	ML    *int    `yaml:"ml"`
	MLMax *int    `yaml:"ml_max"`
}

// Int returns a pointer to v, for the optional Params fields.
func Int(v int) *int { return &v }

// Validate checks the parameter ranges used by NewBasis.
func (p Params) Validate() error {
	switch {
	case p.NMin < 1:
		return errorf("n_min=%d must be ≥ 1", p.NMin)
	case p.NMax < p.NMin:
		return errorf("n_max=%d must be ≥ n_min=%d", p.NMax, p.NMin)
	case p.LMax < 0:
		return errorf("L_max=%d must be ≥ 0", p.LMax)
	case p.MLMax != nil && *p.MLMax < 0:
		return errorf("ML_max=%d must be ≥ 0", *p.MLMax)
	}

	return nil
}

// FormatOptional renders an optional integer the way cache keys expect:
// the decimal value, or "None" when unset.
func FormatOptional(v *int) string {
	if v == nil {
		return "None"
	}

	return strconv.Itoa(*v)
}
