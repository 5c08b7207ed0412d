// Package synthetic produces the display-only dashboard numbers (ward
// utilization, optimization counts) that have no backing data source. They
// are random within fixed ranges and must never be treated as authoritative;
// keeping them here ensures no domain package can confuse them with real
// statistics.
package synthetic

import "math/rand/v2"

// Metrics generates synthetic display metrics. The zero value is usable; a
// custom Intn can be injected for deterministic tests.
type Metrics struct {
	Intn func(n int) int
}

func New() *Metrics {
	return &Metrics{Intn: rand.IntN}
}

func (m *Metrics) intn(n int) int {
	if m.Intn != nil {
		return m.Intn(n)
	}
	return rand.IntN(n)
}

// inRange returns a pseudo-random value in [lo, hi].
func (m *Metrics) inRange(lo, hi int) int {
	return lo + m.intn(hi-lo+1)
}

// AdminUtilization is the hospital-wide utilization placeholder percentage.
func (m *Metrics) AdminUtilization() int { return m.inRange(74, 90) }

// AdminOptimizations is the hospital-wide optimization count placeholder.
func (m *Metrics) AdminOptimizations() int { return m.inRange(22, 40) }

// DoctorUtilization is the per-doctor utilization placeholder percentage.
func (m *Metrics) DoctorUtilization() int { return m.inRange(55, 95) }

// DoctorDashboardUtilization backs the doctor dashboard's own stats view.
func (m *Metrics) DoctorDashboardUtilization() int { return m.inRange(60, 95) }

// DoctorOptimizations is the per-doctor optimization count placeholder.
func (m *Metrics) DoctorOptimizations() int { return m.inRange(8, 20) }
