package telescope

// ParetoFront returns the solved scan points that are not dominated on the
// trade-off between energy gain (maximized) and plasma-lens length
// (minimized). Input order is preserved.
//
// Point a dominates b when
//
//	gain(a) ≥ gain(b) and l(a) ≤ l(b)
//
// with at least one inequality strict.
func ParetoFront(points []ScanPoint) []ScanPoint {
	type candidate struct {
		point ScanPoint
		gain  float64
		l     float64
	}

	candidates := make([]candidate, 0, len(points))
	for _, p := range points {
		if !p.OK() {
			continue
		}
		gain, okGain := p.Values["energy_gain_GeV"]
		l, okL := p.Values["l_um"]
		if !okGain || !okL {
			continue
		}
		candidates = append(candidates, candidate{point: p, gain: gain, l: l})
	}

	front := make([]ScanPoint, 0, len(candidates))
	for i, a := range candidates {
		dominated := false
		for j, b := range candidates {
			if i == j {
				continue
			}
			if b.gain >= a.gain && b.l <= a.l && (b.gain > a.gain || b.l < a.l) {
				dominated = true
				break
			}
		}
		if !dominated {
			front = append(front, a.point)
		}
	}
	return front
}
