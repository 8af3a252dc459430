package maps

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/bifurcation/internal/dynamo"
)

type Kind int

const (
	Logistic Kind = iota
	Sine
	Tent
)

var kindNames = map[Kind]string{
	Logistic: "logistic",
	Sine:     "sine",
	Tent:     "tent",
}

var kindFormulas = map[Kind]string{
	Logistic: "r*x*(1-x)",
	Sine:     "r/4*sin(pi*x)",
	Tent:     "r/2*min(x, 1-x)",
}

// Lookup resolves a command-line map id. Unknown ids are an error; there is no fallback.
func Lookup(id int) (Kind, error) {
	k := Kind(id)
	if _, ok := kindNames[k]; !ok {
		return 0, fmt.Errorf("%w: id %d (available: %v)", dynamo.ErrUnknownMap, id, IDs())
	}
	return k, nil
}

// IDs returns the registered map ids in ascending order.
func IDs() []int {
	ids := make([]int, 0, len(kindNames))
	for k := range kindNames {
		ids = append(ids, int(k))
	}
	sort.Ints(ids)
	return ids
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) Formula() string { return kindFormulas[k] }

// Map returns the map implementation for k. It panics on an unregistered
// Kind; obtain Kinds through Lookup or the exported constants.
func (k Kind) Map() dynamo.Map {
	switch k {
	case Logistic:
		return LogisticMap{}
	case Sine:
		return SineMap{}
	case Tent:
		return TentMap{}
	}
	panic(fmt.Sprintf("maps: unregistered kind %d", int(k)))
}

type LogisticMap struct{}

func (LogisticMap) Name() string { return "logistic" }

func (LogisticMap) Next(x, r float64) float64 {
	return r * x * (1.0 - x)
}

type SineMap struct{}

func (SineMap) Name() string { return "sine" }

func (SineMap) Next(x, r float64) float64 {
	return r / 4 * math.Sin(math.Pi*x)
}

type TentMap struct{}

func (TentMap) Name() string { return "tent" }

func (TentMap) Next(x, r float64) float64 {
	return r / 2 * math.Min(x, 1-x)
}
