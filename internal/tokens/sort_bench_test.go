package tokens

import (
	"fmt"
	"testing"
)

func buildForest(size int) []Node {
	var root []Node
	for i := 0; i < size; i++ {
		folders := []string{fmt.Sprintf("Group%d", i%10), fmt.Sprintf("Sub%d", i%7)}
		InsertToken(&root, folders, &Token{Name: fmt.Sprintf("token-%d", size-i)})
	}
	return root
}

// BenchmarkSort benchmarks sorting forests of increasing size
func BenchmarkSort(b *testing.B) {
	for _, size := range []int{100, 1000, 10000} {
		root := buildForest(size)
		b.Run(fmt.Sprintf("tokens=%d", size), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				_ = Sort(root)
			}
		})
	}
}
