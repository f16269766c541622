package dataset

const (
	// ZeroOneXOR is the XOR truth table encoded with 0.01/0.99, suited to
	// functions with output range (0, 1).
	ZeroOneXOR = "xor-zero-one"

	// BipolarXOR is the XOR truth table encoded with -0.99/+0.99, suited to
	// functions with output range (-1, 1).
	BipolarXOR = "xor-bipolar"
)

var builtins = map[string]func() *Set{
	ZeroOneXOR: func() *Set { return xor(ZeroOneXOR, 0.01, 0.99) },
	BipolarXOR: func() *Set { return xor(BipolarXOR, -0.99, 0.99) },
}

// xor builds the four XOR pairs with lo as false and hi as true.
func xor(name string, lo, hi float64) *Set {
	return &Set{
		Name: name,
		Pairs: []Pair{
			{Input: []float64{lo, lo}, Ideal: []float64{lo}},
			{Input: []float64{hi, lo}, Ideal: []float64{hi}},
			{Input: []float64{lo, hi}, Ideal: []float64{hi}},
			{Input: []float64{hi, hi}, Ideal: []float64{lo}},
		},
	}
}
