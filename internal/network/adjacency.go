package network

// Pair is the canonical key of an undirected link, Lo < Hi.
type Pair struct {
	Lo, Hi int
}

// MakePair orders a and b into a canonical key.
func MakePair(a, b int) Pair {
	if a > b {
		a, b = b, a
	}
	return Pair{Lo: a, Hi: b}
}

// Adjacency records which points are linked in the current frame.
// Each unordered pair is stored once; neighbor lists keep insertion order.
type Adjacency struct {
	pairs     map[Pair]struct{}
	neighbors map[int][]int
}

func NewAdjacency() *Adjacency {
	return &Adjacency{
		pairs:     make(map[Pair]struct{}),
		neighbors: make(map[int][]int),
	}
}

// Link records the pair (a, b). It reports false if the pair was already
// linked or a == b.
func (a *Adjacency) Link(x, y int) bool {
	if x == y {
		return false
	}
	key := MakePair(x, y)
	if _, ok := a.pairs[key]; ok {
		return false
	}
	a.pairs[key] = struct{}{}
	a.neighbors[x] = append(a.neighbors[x], y)
	a.neighbors[y] = append(a.neighbors[y], x)
	return true
}

func (a *Adjacency) Linked(x, y int) bool {
	_, ok := a.pairs[MakePair(x, y)]
	return ok
}

// Neighbors returns the ids linked to id, in the order they were linked.
func (a *Adjacency) Neighbors(id int) []int {
	return a.neighbors[id]
}

func (a *Adjacency) Degree(id int) int {
	return len(a.neighbors[id])
}

// Len is the number of distinct links.
func (a *Adjacency) Len() int {
	return len(a.pairs)
}

// MaxDegree returns the largest neighbor count of any point.
func (a *Adjacency) MaxDegree() int {
	best := 0
	for _, n := range a.neighbors {
		if len(n) > best {
			best = len(n)
		}
	}
	return best
}

// Reset empties the adjacency, keeping the same container shape.
func (a *Adjacency) Reset() {
	clear(a.pairs)
	clear(a.neighbors)
}
