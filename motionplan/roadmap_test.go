package motionplan

import (
	"bytes"
	"testing"

	"go.viam.com/test"
)

func TestRoadmapUnionFindTracksComponents(t *testing.T) {
	r := newRoadmap()
	a := r.addNode(Configuration{0})
	b := r.addNode(Configuration{1})
	c := r.addNode(Configuration{2})
	d := r.addNode(Configuration{3})

	test.That(t, r.NumComponents(), test.ShouldEqual, 4)
	test.That(t, r.IsConnected(a, b), test.ShouldBeFalse)

	r.addEdge(a, b)
	test.That(t, r.IsConnected(a, b), test.ShouldBeTrue)
	test.That(t, r.NumComponents(), test.ShouldEqual, 3)

	r.addEdge(c, d)
	test.That(t, r.NumComponents(), test.ShouldEqual, 2)
	test.That(t, r.IsConnected(a, c), test.ShouldBeFalse)

	r.addEdge(b, c)
	test.That(t, r.NumComponents(), test.ShouldEqual, 1)
	test.That(t, r.IsConnected(a, d), test.ShouldBeTrue)
}

func TestRoadmapIsConnectedOutOfRangeIsFalse(t *testing.T) {
	r := newRoadmap()
	r.addNode(Configuration{0})
	test.That(t, r.IsConnected(0, 5), test.ShouldBeFalse)
	test.That(t, r.IsConnected(-1, 0), test.ShouldBeFalse)
}

func TestRoadmapPathFindsShortestHopSequence(t *testing.T) {
	r := newRoadmap()
	for i := 0; i < 4; i++ {
		r.addNode(Configuration{float64(i)})
	}
	r.addEdge(0, 1)
	r.addEdge(1, 2)
	r.addEdge(2, 3)

	path := r.path(0, 3)
	test.That(t, path, test.ShouldResemble, []int{0, 1, 2, 3})

	test.That(t, r.path(0, 0), test.ShouldResemble, []int{0})
}

func TestRoadmapPathReturnsNilWhenDisconnected(t *testing.T) {
	r := newRoadmap()
	r.addNode(Configuration{0})
	r.addNode(Configuration{1})
	test.That(t, r.path(0, 1), test.ShouldBeNil)
}

func TestRoadmapDumpWritesHeaderNodesAndEdges(t *testing.T) {
	r := newRoadmap()
	r.addNode(Configuration{0, 0})
	r.addNode(Configuration{1, 1})
	r.addEdge(0, 1)

	var buf bytes.Buffer
	test.That(t, r.Dump(&buf), test.ShouldBeNil)

	lines := bytes.Split(buf.Bytes(), []byte("\n"))
	test.That(t, string(lines[0]), test.ShouldEqual, "2")
	test.That(t, string(lines[3]), test.ShouldEqual, "")
	test.That(t, string(lines[4]), test.ShouldEqual, "0 1")
}
