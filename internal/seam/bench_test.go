package seam

import (
	"math/rand"
	"testing"
)

func BenchmarkFindVertical(b *testing.B) {
	r := rand.New(rand.NewSource(1))
	s := randomSurface(r, 640, 480)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := FindVertical(s); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFindHorizontal(b *testing.B) {
	r := rand.New(rand.NewSource(1))
	s := randomSurface(r, 640, 480)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := FindHorizontal(s); err != nil {
			b.Fatal(err)
		}
	}
}
