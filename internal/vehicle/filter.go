package vehicle

import (
	"gonum.org/v1/gonum/mat"
)

// cvFilter is a constant-velocity Kalman filter over the state
// [x, y, vx, vy] with position-only measurements. A nil *cvFilter is the
// uninitialised state.
type cvFilter struct {
	x *mat.VecDense // state
	p *mat.Dense    // error covariance
	f *mat.Dense    // transition
	q *mat.Dense    // process noise
	h *mat.Dense    // measurement model
	r *mat.Dense    // measurement noise
}

// newCVFilter starts tracking at (x, y) with zero velocity. The transition
// and process noise are fixed for period.
func newCVFilter(x, y, period float64, cfg EstimatorConfig) *cvFilter {
	f := mat.NewDense(4, 4, []float64{
		1, 0, period, 0,
		0, 1, 0, period,
		0, 0, 1, 0,
		0, 0, 0, 1,
	})
	return &cvFilter{
		x: mat.NewVecDense(4, []float64{x, y, 0, 0}),
		p: scaledIdentity(4, cfg.InitialCovariance),
		f: f,
		q: scaledIdentity(4, cfg.ProcessNoise*period),
		h: mat.NewDense(2, 4, []float64{
			1, 0, 0, 0,
			0, 1, 0, 0,
		}),
		r: scaledIdentity(2, cfg.MeasurementNoise),
	}
}

func scaledIdentity(n int, v float64) *mat.Dense {
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		m.Set(i, i, v)
	}
	return m
}

// correct folds a position measurement into the state. It reports false and
// leaves the state untouched if the innovation covariance is singular.
func (kf *cvFilter) correct(zx, zy float64) bool {
	// S = H P Hᵀ + R
	var hp, s mat.Dense
	hp.Mul(kf.h, kf.p)
	s.Mul(&hp, kf.h.T())
	s.Add(&s, kf.r)

	var sInv mat.Dense
	if err := sInv.Inverse(&s); err != nil {
		return false
	}

	// K = P Hᵀ S⁻¹
	var pht, k mat.Dense
	pht.Mul(kf.p, kf.h.T())
	k.Mul(&pht, &sInv)

	// innovation y = z - H x
	var hx mat.VecDense
	hx.MulVec(kf.h, kf.x)
	innov := mat.NewVecDense(2, []float64{zx - hx.AtVec(0), zy - hx.AtVec(1)})

	var dx mat.VecDense
	dx.MulVec(&k, innov)
	kf.x.AddVec(kf.x, &dx)

	// P = (I - K H) P
	var kh, ikh, p mat.Dense
	kh.Mul(&k, kf.h)
	ikh.Sub(scaledIdentity(4, 1), &kh)
	p.Mul(&ikh, kf.p)
	kf.p.Copy(&p)
	return true
}

// predict advances the state by one period.
func (kf *cvFilter) predict() {
	var x mat.VecDense
	x.MulVec(kf.f, kf.x)
	kf.x.CopyVec(&x)

	// P = F P Fᵀ + Q
	var fp, p mat.Dense
	fp.Mul(kf.f, kf.p)
	p.Mul(&fp, kf.f.T())
	p.Add(&p, kf.q)
	kf.p.Copy(&p)
}

func (kf *cvFilter) position() (x, y float64) {
	return kf.x.AtVec(0), kf.x.AtVec(1)
}

func (kf *cvFilter) velocity() (vx, vy float64) {
	return kf.x.AtVec(2), kf.x.AtVec(3)
}
