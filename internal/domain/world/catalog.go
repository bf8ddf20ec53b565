package world

import "errors"

var ErrEmptyCatalog = errors.New("catalog is empty")

// Random is the slice of a PRNG the economy needs.
type Random interface {
	IntN(n int) int
}

type Catalog []string

func DefaultCatalog() Catalog {
	return Catalog{
		"heart_01",
		"eye_01",
		"cac_01",
		"star_01",
		"paw_01",
		"board_01",
		"board_02",
		"rainbow_01",
		"cat_01",
		"face_01",
		"leaf_01",
		"shroom_01",
		"star_02",
		"lights_01",
		"cac_02",
		"weird_01",
		"char_01",
		"board_03",
	}
}

// Draw picks one key uniformly, with replacement.
func (c Catalog) Draw(rng Random) (string, error) {
	if len(c) == 0 {
		return "", ErrEmptyCatalog
	}
	return c[rng.IntN(len(c))], nil
}

func (c Catalog) Contains(key string) bool {
	for _, k := range c {
		if k == key {
			return true
		}
	}
	return false
}

// Between returns an integer in [lo, hi].
func Between(rng Random, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.IntN(hi-lo+1)
}
