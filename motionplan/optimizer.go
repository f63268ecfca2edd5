package motionplan

import (
	"container/heap"
	"math"
	"sort"

	"go.uber.org/zap"
)

// dependencyDAG is an adjacency list over constraint indices: dag[u] holds
// every v such that u should be tested before v. Grounded on PyCSpace's
// feasibleTestDeps/visibleTestDeps (motionplanning.cpp lines 589-610), which
// the original stores as vector<vector<int>> indexed by prerequisite rather
// than by dependent; this module keeps the same direction (edges keyed by
// the node that must run first) since that is what OptimizeTestingOrder
// walks.
type dependencyDAG map[int][]int

func (d dependencyDAG) addEdge(prereq, dependent int) {
	d[prereq] = append(d[prereq], dependent)
}

// priorityItem pairs a constraint index with its scheduling priority and its
// registration order, used to break ties the same way the source's
// std::pair<double,int> comparison does (ascending on first, then second).
type priorityItem struct {
	index    int
	priority float64
}

// testPriority computes cost/(1-probability), collapsing NaN (0/0: a
// zero-cost test with probability==1) to zero, so that constraint sorts
// first among ascending priorities. A certain pass with nonzero cost gives
// +Inf and sorts last.
func testPriority(s TesterStats) float64 {
	p := s.Cost / (1.0 - s.Probability)
	if math.IsNaN(p) {
		return 0
	}
	return p
}

// OptimizeTestOrder produces a permutation of the indices [0,len(stats)) that
// minimizes expected rejection cost, honoring the dependency DAG when one is
// supplied. Grounded 1:1 on OptimizeTestingOrder (motionplanning.cpp lines
// 188-298).
func OptimizeTestOrder(stats []TesterStats, dag dependencyDAG, logger *zap.Logger) []int {
	logger = nopIfNil(logger)

	items := make([]priorityItem, len(stats))
	for i, s := range stats {
		items[i] = priorityItem{index: i, priority: testPriority(s)}
	}

	if len(dag) == 0 {
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].priority < items[j].priority
		})
		order := make([]int, len(items))
		for i, it := range items {
			order[i] = it.index
		}
		return order
	}

	return optimizeWithDependencies(stats, dag, items, logger)
}

// optimizeWithDependencies implements the dependency-aware branch: a
// reverse-topological aggregation pass that folds each node's best child
// into its own effective cost/probability, followed by a top-down min-
// priority extraction over the original DAG.
func optimizeWithDependencies(stats []TesterStats, dag dependencyDAG, items []priorityItem, logger *zap.Logger) []int {
	n := len(stats)
	inDegree := make([]int, n)
	for _, children := range dag {
		for _, c := range children {
			inDegree[c]++
		}
	}

	topo, hasCycle := topologicalOrder(n, dag)
	if hasCycle {
		logger.Warn("test dependency graph has a cycle; breaking arbitrarily")
	}

	priority := make([]float64, n)
	depCost := make([]float64, n)
	depProb := make([]float64, n)
	for i, s := range stats {
		priority[i] = items[i].priority
		depCost[i] = s.Cost
		depProb[i] = s.Probability
	}

	// Bottom-up: walk the topological order from its end (DFS post-order).
	for i := len(topo) - 1; i >= 0; i-- {
		node := topo[i]
		children := dag[node]
		if len(children) == 0 {
			continue
		}
		if inDegree[node] > 1 {
			logger.Warn("constraint has multiple prerequisites; greedy chain optimization is not exact",
				zap.Int("constraint", node))
		}
		bestPriority := math.Inf(1)
		best := -1
		for _, child := range children {
			if inDegree[child] > 1 {
				logger.Warn("constraint has multiple dependents reaching it; greedy chain optimization is not exact",
					zap.Int("constraint", child), zap.Int("via", node))
			}
			p := (depCost[node] + depCost[child]) / (1.0 - depProb[node]*depProb[child])
			if best < 0 || p < bestPriority {
				best = child
				bestPriority = p
			}
		}
		depCost[node] += depCost[best]
		depProb[node] *= depProb[best]
		priority[node] = bestPriority
	}

	return extractTopDown(n, dag, priority)
}

// topologicalOrder returns a topological order of the DAG (the reverse of a
// DFS post-order, so parents precede their children) and whether
// a cycle was encountered (and broken arbitrarily at the point of
// discovery), matching the source's use of a DFS-based topological sort
// callback.
func topologicalOrder(n int, dag dependencyDAG) ([]int, bool) {
	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	state := make([]int, n)
	order := make([]int, 0, n)
	hasCycle := false

	var visit func(int)
	visit = func(node int) {
		switch state[node] {
		case done:
			return
		case visiting:
			hasCycle = true
			return
		}
		state[node] = visiting
		for _, child := range dag[node] {
			visit(child)
		}
		state[node] = done
		order = append(order, node)
	}

	for i := 0; i < n; i++ {
		visit(i)
	}
	// order is currently a post-order (children before parents); reverse it
	// so parents come first. The bottom-up pass walks the result from its
	// end, i.e. children before parents.
	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}
	return order, hasCycle
}

// priorityHeapItem/priorityHeap implement container/heap for the top-down
// extraction, replacing the source's KrisLibrary FixedSizeHeap (see
// DESIGN.md for why this is the stdlib-idiomatic substitute).
type priorityHeapItem struct {
	index    int
	priority float64
}

type priorityHeapArr []priorityHeapItem

func (h priorityHeapArr) Len() int            { return len(h) }
func (h priorityHeapArr) Less(i, j int) bool  { return h[i].priority < h[j].priority }
func (h priorityHeapArr) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *priorityHeapArr) Push(x interface{}) { *h = append(*h, x.(priorityHeapItem)) }
func (h *priorityHeapArr) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

func extractTopDown(n int, dag dependencyDAG, priority []float64) []int {
	inDegree := make([]int, n)
	for _, children := range dag {
		for _, c := range children {
			inDegree[c]++
		}
	}

	pq := &priorityHeapArr{}
	heap.Init(pq)
	for i := 0; i < n; i++ {
		if inDegree[i] == 0 {
			heap.Push(pq, priorityHeapItem{index: i, priority: priority[i]})
		}
	}

	visited := make([]bool, n)
	order := make([]int, 0, n)
	for len(order) < n {
		var next int
		if pq.Len() > 0 {
			next = heap.Pop(pq).(priorityHeapItem).index
		} else {
			// Only reachable with cycles: pick any unvisited node and
			// continue, matching the source's arbitrary-break fallback.
			next = -1
			for j := 0; j < n; j++ {
				if !visited[j] {
					next = j
					break
				}
			}
			if next < 0 {
				break
			}
		}
		if visited[next] {
			continue
		}
		visited[next] = true
		order = append(order, next)
		for _, child := range dag[next] {
			heap.Push(pq, priorityHeapItem{index: child, priority: priority[child]})
		}
	}
	return order
}

func nopIfNil(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
