package quantum

import "fmt"

// Option configures NewBasis.
type Option func(*basisOptions)

type basisOptions struct {
	defects map[int]float64
}

// WithQuantumDefects sets the quantum defect δ_L per orbital angular momentum,
// so that NEff = n − δ_L. Angular momenta missing from the map are hydrogenic.
func WithQuantumDefects(defects map[int]float64) Option {
	return func(o *basisOptions) {
		o.defects = make(map[int]float64, len(defects))
		for l, d := range defects {
			o.defects[l] = d
		}
	}
}

// Basis is an ordered, duplicate-free sequence of states plus the parameters
// it was generated from.
type Basis struct {
	states []State
	params Params
	index  map[State]int
}

// NewBasis enumerates states for n in [NMin, NMax], L in [0, min(n-1, LMax)]
// and the ML values selected by params, in ascending (n, L, ML) order.
func NewBasis(params Params, opts ...Option) (*Basis, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	o := basisOptions{}
	for _, fn := range opts {
		fn(&o)
	}

	var states []State
	for n := params.NMin; n <= params.NMax; n++ {
		lTop := min(n-1, params.LMax)
		for l := 0; l <= lTop; l++ {
			nEff := float64(n) - o.defects[l]
			for _, ml := range mlRange(params, l) {
				states = append(states, State{N: n, NEff: nEff, L: l, ML: ml})
			}
		}
	}
	if len(states) == 0 {
		return nil, ErrEmptyBasis
	}

	return newBasis(states, params)
}

// NewBasisFromStates wraps an explicit state list. States must be valid and unique.
func NewBasisFromStates(states []State, params Params) (*Basis, error) {
	if len(states) == 0 {
		return nil, ErrEmptyBasis
	}
	for _, s := range states {
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}
	cp := make([]State, len(states))
	copy(cp, states)

	return newBasis(cp, params)
}

func newBasis(states []State, params Params) (*Basis, error) {
	index := make(map[State]int, len(states))
	for i, s := range states {
		if _, dup := index[s]; dup {
			return nil, fmt.Errorf("%v: %w", s, ErrDuplicateState)
		}
		index[s] = i
	}

	return &Basis{states: states, params: params, index: index}, nil
}

// mlRange lists the ML values allowed for a given L.
func mlRange(p Params, l int) []int {
	if p.ML != nil {
		if *p.ML < -l || *p.ML > l {
			return nil
		}
		return []int{*p.ML}
	}
	top := l
	if p.MLMax != nil {
		top = min(l, *p.MLMax)
	}
	out := make([]int, 0, 2*top+1)
	for ml := -top; ml <= top; ml++ {
		out = append(out, ml)
	}

	return out
}

// States returns a copy of the ordered states.
func (b *Basis) States() []State {
	out := make([]State, len(b.states))
	copy(out, b.states)

	return out
}

// Params returns the generating parameters.
func (b *Basis) Params() Params { return b.params }

// Len is the number of states.
func (b *Basis) Len() int { return len(b.states) }

// Index returns the position of s, or -1 if it is not part of the basis.
func (b *Basis) Index(s State) int {
	if i, ok := b.index[s]; ok {
		return i
	}

	return -1
}

func errorf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidParams)
}
