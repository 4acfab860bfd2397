package gnc_test

import (
	"fmt"

	"github.com/dlee640/gtsam/factor"
	"github.com/dlee640/gtsam/gnc"
	"github.com/dlee640/gtsam/noise"
)

// ExampleOptimizer_Optimize estimates a 2D point from four measurements,
// one of which is an outlier. Plain least squares would land on the biased
// average (0.25, 0); GNC recovers the origin.
func ExampleOptimizer_Optimize() {
	x := factor.Symbol('x', 1)
	m := noise.MustIsotropic(2, 0.1)

	g := factor.NewGraph(
		factor.MustPrior(x, factor.Point2(0, 0), m),
		factor.MustPrior(x, factor.Point2(0, 0), m),
		factor.MustPrior(x, factor.Point2(0, 0), m),
		factor.MustPrior(x, factor.Point2(1, 0), m), // the outlier
	)

	initial := factor.NewValues()
	initial.Insert(x, factor.Point2(1, 0))

	opt, err := gnc.New(g, initial, gnc.DefaultParams())
	if err != nil {
		fmt.Println("setup:", err)

		return
	}

	result, err := opt.Optimize()
	if err != nil {
		fmt.Println("optimize:", err)

		return
	}

	p, _ := result.At(x)
	fmt.Printf("estimate: (%.2f, %.2f)\n", p.AtVec(0), p.AtVec(1))
	fmt.Printf("outlier weight below 0.001: %v\n", opt.Weights()[3] < 1e-3)
	// Output:
	// estimate: (0.00, 0.00)
	// outlier weight below 0.001: true
}
