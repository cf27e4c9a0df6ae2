package dist_test

import (
	"testing"

	"github.com/katalvlaran/lvprob/dist"
)

func BenchmarkDrawSequence(b *testing.B) {
	src := mustWeights(b,
		[]dist.Value{1, 2, 3, 4, 5, 6, 7, 8},
		[]int64{1, 2, 3, 4, 5, 6, 7, 8},
	)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		d, err := dist.NewDrawSequence(src, 3)
		if err != nil {
			b.Fatal(err)
		}
		if _, err = dist.Resolve(d); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMixtureResolve(b *testing.B) {
	ds := make([]dist.Distribution, 0, 16)
	for n := 1; n <= 16; n++ {
		vals := make([]dist.Value, n)
		for j := range vals {
			vals[j] = j
		}
		ds = append(ds, mustUniform(b, vals...))
	}
	m, err := dist.NewMixture(ds...)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err = dist.Resolve(m); err != nil {
			b.Fatal(err)
		}
	}
}
