package random_test

import (
	"testing"

	"github.com/naruse/NiceIO/pkg/random"
	"github.com/stretchr/testify/require"
)

func TestSingleThreadedGenerator(t *testing.T) {
	for name, generator := range map[string]random.SingleThreadedGenerator{
		"FastSingleThreaded": random.NewFastSingleThreadedGenerator(),
		"FastThreadSafe":     random.FastThreadSafeGenerator,
	} {
		t.Run(name, func(t *testing.T) {
			t.Run("Float64", func(t *testing.T) {
				for i := 0; i < 100; i++ {
					v := generator.Float64()
					require.LessOrEqual(t, 0.0, v)
					require.Greater(t, 1.0, v)
				}
			})

			t.Run("Int64N", func(t *testing.T) {
				for i := 0; i < 100; i++ {
					v := generator.Int64N(42)
					require.LessOrEqual(t, int64(0), v)
					require.Greater(t, int64(42), v)
				}
			})

			t.Run("IntN", func(t *testing.T) {
				for i := 0; i < 100; i++ {
					v := generator.IntN(42)
					require.LessOrEqual(t, 0, v)
					require.Greater(t, 42, v)
				}
			})

			t.Run("Uint64", func(t *testing.T) {
				generator.Uint64()
			})
		})
	}
}
