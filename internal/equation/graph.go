package equation

// GraphRange is the inclusive x range sampled for plots.
const (
	GraphMinX = -10
	GraphMaxX = 10
)

// GraphData is a set of sampled points handed to an external renderer.
type GraphData struct {
	X     []int     `json:"x_values"`
	Y     []float64 `json:"y_values"`
	Roots []float64 `json:"roots"`
}

// Graph samples y over GraphMinX..GraphMaxX for the record.
func Graph(r Record) GraphData {
	var (
		f     func(x float64) float64
		roots []float64
	)

	switch r.Kind {
	case KindQuadratic:
		q := r.Quadratic()
		a, b, c := float64(q.A), float64(q.B), float64(q.C)
		f = func(x float64) float64 { return a*x*x + b*x + c }
		roots = []float64{q.Roots[0]}
		if !q.SingleRoot && q.Roots[1] != q.Roots[0] {
			roots = append(roots, q.Roots[1])
		}
	default:
		l := r.Linear()
		m, k := float64(l.Coefficient), float64(l.Constant)
		f = func(x float64) float64 { return m*x + k }
		roots = []float64{l.Solution}
	}

	g := GraphData{Roots: roots}
	for x := GraphMinX; x <= GraphMaxX; x++ {
		g.X = append(g.X, x)
		g.Y = append(g.Y, f(float64(x)))
	}
	return g
}
