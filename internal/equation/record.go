package equation

// HintSet maps a step key to per-level hint text. Any entry may be absent.
type HintSet map[StepKey]map[Level]string

// Lookup returns the non-empty hint text for (step, level), if present.
func (h HintSet) Lookup(step StepKey, level Level) (string, bool) {
	if h == nil {
		return "", false
	}
	text := h[step][level]
	return text, text != ""
}

// Record is one immutable catalog entry. Numeric fields are pointers because
// the knowledge source may omit them; accessors apply the defaults.
type Record struct {
	Kind       Kind   `json:"-"`
	Expression string `json:"expression"`
	Degree     int    `json:"degree,omitempty"`

	// Linear.
	Constant    *int     `json:"constant,omitempty"`
	Coefficient *int     `json:"coefficient,omitempty"`
	Solution    *float64 `json:"solution,omitempty"`

	// Quadratic.
	A            *int     `json:"a,omitempty"`
	B            *int     `json:"b,omitempty"`
	C            *int     `json:"c,omitempty"`
	Solution1    *float64 `json:"solution1,omitempty"`
	Solution2    *float64 `json:"solution2,omitempty"`
	Discriminant *int     `json:"discriminant,omitempty"`

	// Display strings for the intermediate quadratic forms.
	Step4Expression string `json:"step4_expression,omitempty"`
	Step5Expression string `json:"step5_expression,omitempty"`
	Step6Expression string `json:"step6_expression,omitempty"`

	Hints HintSet `json:"hints,omitempty"`
}

// Linear holds the resolved values of a linear record.
type Linear struct {
	Constant    int
	Coefficient int
	Solution    float64
}

// Quadratic holds the resolved values of a quadratic record.
type Quadratic struct {
	A, B, C      int
	ACProduct    int
	Discriminant int
	Roots        [2]float64
	// SingleRoot is set when the record supplies only one solution, in which
	// case both root slots hold that value.
	SingleRoot bool
}

// Linear resolves the linear fields, defaulting absent values to zero.
func (r Record) Linear() Linear {
	return Linear{
		Constant:    intOr(r.Constant, 0),
		Coefficient: intOr(r.Coefficient, 0),
		Solution:    floatOr(r.Solution, 0),
	}
}

// Quadratic resolves the quadratic fields. An absent a defaults to 1, absent
// b and c to 0. A missing discriminant is derived from the coefficients.
func (r Record) Quadratic() Quadratic {
	q := Quadratic{
		A: intOr(r.A, 1),
		B: intOr(r.B, 0),
		C: intOr(r.C, 0),
	}
	q.ACProduct = q.A * q.C
	q.Discriminant = intOr(r.Discriminant, q.B*q.B-4*q.A*q.C)

	first := floatOr(r.Solution1, 0)
	second := first
	if r.Solution2 != nil {
		second = *r.Solution2
	} else {
		q.SingleRoot = true
	}
	if first > second {
		first, second = second, first
	}
	q.Roots = [2]float64{first, second}
	return q
}

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

func floatOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}
