package order

import (
	"fmt"
	"math/rand/v2"
)

const (
	idPrefix = "ORD"
	idMin    = 100000
	idMax    = 999999
)

// IDGenerator produces candidate order ids. The repository checks them for
// collisions, so a generator only has to be well distributed.
type IDGenerator interface {
	Next() string
}

type IDGeneratorFunc func() string

func (f IDGeneratorFunc) Next() string {
	return f()
}

// RandomIDGenerator yields ids shaped like ORD123456.
type RandomIDGenerator struct{}

func (RandomIDGenerator) Next() string {
	return fmt.Sprintf("%s%d", idPrefix, idMin+rand.IntN(idMax-idMin+1))
}
