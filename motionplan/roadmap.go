package motionplan

import (
	"fmt"
	"io"
)

// roadmapEdge is an unordered pair of milestone indices.
type roadmapEdge struct {
	src, dst int
}

// Roadmap is the simple undirected graph of milestones a Planner builds:
// vertices are Configurations (dense integer index = insertion order),
// edges are verified-visible segments. A union-find over the vertex set
// tracks connected components incrementally, replacing the original's
// Graph/ConnectedComponents bookkeeping (motionplanning.cpp's roadmap
// structures feeding DumpPlan/getRoadmap, lines 1246-1256, 1527-1548) with
// the idiomatic Go disjoint-set structure.
type Roadmap struct {
	nodes   []Configuration
	edges   []roadmapEdge
	adj     map[int][]int
	parent  []int
	rank    []int
}

func newRoadmap() *Roadmap {
	return &Roadmap{adj: make(map[int][]int)}
}

// addNode appends q as a new milestone and returns its dense index.
func (r *Roadmap) addNode(q Configuration) int {
	idx := len(r.nodes)
	r.nodes = append(r.nodes, q)
	r.parent = append(r.parent, idx)
	r.rank = append(r.rank, 0)
	return idx
}

// addEdge connects milestones i and j, merging their components.
func (r *Roadmap) addEdge(i, j int) {
	r.edges = append(r.edges, roadmapEdge{src: i, dst: j})
	r.adj[i] = append(r.adj[i], j)
	r.adj[j] = append(r.adj[j], i)
	r.union(i, j)
}

func (r *Roadmap) find(i int) int {
	for r.parent[i] != i {
		r.parent[i] = r.parent[r.parent[i]]
		i = r.parent[i]
	}
	return i
}

func (r *Roadmap) union(i, j int) {
	ri, rj := r.find(i), r.find(j)
	if ri == rj {
		return
	}
	if r.rank[ri] < r.rank[rj] {
		ri, rj = rj, ri
	}
	r.parent[rj] = ri
	if r.rank[ri] == r.rank[rj] {
		r.rank[ri]++
	}
}

// IsConnected reports whether milestones i and j are in the same component.
func (r *Roadmap) IsConnected(i, j int) bool {
	if i < 0 || i >= len(r.nodes) || j < 0 || j >= len(r.nodes) {
		return false
	}
	return r.find(i) == r.find(j)
}

// NumComponents counts distinct connected components.
func (r *Roadmap) NumComponents() int {
	seen := make(map[int]struct{})
	for i := range r.nodes {
		seen[r.find(i)] = struct{}{}
	}
	return len(seen)
}

// Nodes returns every milestone, in insertion order. The returned slice
// aliases the roadmap's own backing store and must not be mutated.
func (r *Roadmap) Nodes() []Configuration {
	return r.nodes
}

// Edges returns every roadmap edge as an unordered (src,dst) index pair.
func (r *Roadmap) Edges() [][2]int {
	out := make([][2]int, len(r.edges))
	for i, e := range r.edges {
		out[i] = [2]int{e.src, e.dst}
	}
	return out
}

// path returns the sequence of milestone indices connecting i to j over
// roadmap edges via breadth-first search, or nil if they are not connected.
func (r *Roadmap) path(i, j int) []int {
	if i == j {
		return []int{i}
	}
	prev := make(map[int]int)
	visited := map[int]bool{i: true}
	queue := []int{i}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range r.adj[cur] {
			if visited[next] {
				continue
			}
			visited[next] = true
			prev[next] = cur
			if next == j {
				path := []int{j}
				for path[len(path)-1] != i {
					path = append(path, prev[path[len(path)-1]])
				}
				for a, b := 0, len(path)-1; a < b; a, b = a+1, b-1 {
					path[a], path[b] = path[b], path[a]
				}
				return path
			}
			queue = append(queue, next)
		}
	}
	return nil
}

// Dump writes the roadmap as a line-oriented text table: a node-count
// header, one stringified configuration per line, a blank separator, then
// one "src dst" pair per edge. Grounded on the original's DumpPlan/
// Graph::Save_TGF (motionplanning.cpp lines 1246-1256) but deliberately
// simpler than TGF, since the file format itself is a host-side concern
// this module's core does not own (§1).
func (r *Roadmap) Dump(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%d\n", len(r.nodes)); err != nil {
		return err
	}
	for _, q := range r.nodes {
		if _, err := fmt.Fprintln(w, q); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	for _, e := range r.edges {
		if _, err := fmt.Fprintf(w, "%d %d\n", e.src, e.dst); err != nil {
			return err
		}
	}
	return nil
}
