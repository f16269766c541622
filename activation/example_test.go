// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package activation_test

import (
	"fmt"

	"github.com/born-ml/xorresilient/activation"
)

func ExampleNewFadingSine() {
	fn := activation.NewFadingSine(1)
	values := []float64{0.5, 4}
	fn.Apply(values, 0, len(values))
	fmt.Printf("%.4f %.4f\n", values[0], values[1])
	// Output: 0.4794 -0.1892
}

func ExampleNew() {
	fn, err := activation.New("fading-sine", 2)
	if err != nil {
		panic(err)
	}
	fmt.Println(fn.Name(), fn.ParamNames(), fn.Params())
	// Output: fading-sine [period] [2]
}
