package ranking

import "math"

// Progress is display-only duel accounting.
type Progress struct {
	Battles   int
	Estimated int
	Fraction  float64
}

// EstimatedDuels returns the expected total number of duels for n candidates,
// the classic n·log2(n) comparison heuristic. A session actually finishes
// after pool exhaustion (typically n−1 single-winner duels plus ties and
// skips), so the estimate only drives the progress bar.
func EstimatedDuels(n int) int {
	if n < 2 {
		return 0
	}
	return int(math.Ceil(float64(n) * math.Log2(float64(n))))
}

// EstimateProgress folds the battle count against the estimate, clamped so a
// session that outruns the heuristic still shows at most 100%.
func EstimateProgress(candidates, battles int) Progress {
	estimated := EstimatedDuels(candidates)
	p := Progress{Battles: battles, Estimated: estimated}
	if estimated > 0 {
		p.Fraction = math.Min(1, float64(battles)/float64(estimated))
	} else if battles > 0 {
		p.Fraction = 1
	}
	return p
}
