package equation

// MissingHint names a (step, level) pair the catalog does not supply for an
// equation. The personalizer falls back to its built-in text for these.
type MissingHint struct {
	Step  StepKey
	Level Level
}

// Coverage reports hint completeness for one equation.
type Coverage struct {
	Kind       Kind
	Index      int
	Expression string
	Missing    []MissingHint
	Total      int
}

// Complete reports whether every hint slot is supplied.
func (c Coverage) Complete() bool {
	return len(c.Missing) == 0
}

// HintCoverage inspects every record of every kind.
func (c *Catalog) HintCoverage() []Coverage {
	var out []Coverage
	for _, kind := range Kinds {
		for i, r := range c.records[kind] {
			cov := Coverage{Kind: kind, Index: i, Expression: r.Expression}
			for _, step := range kind.StepKeys() {
				for _, level := range Levels {
					cov.Total++
					if _, ok := r.Hints.Lookup(step, level); !ok {
						cov.Missing = append(cov.Missing, MissingHint{Step: step, Level: level})
					}
				}
			}
			out = append(out, cov)
		}
	}
	return out
}
