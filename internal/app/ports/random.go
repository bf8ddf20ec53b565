package ports

import "doorhop/internal/domain/world"

type Random = world.Random

// RandomSource hands out one generator per handler invocation.
type RandomSource interface {
	New() Random
}
