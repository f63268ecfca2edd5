package motionplan

import (
	"testing"

	"go.viam.com/test"
)

func TestTableAddGetRemove(t *testing.T) {
	tbl := NewTable[string]()

	h1 := tbl.Add("alpha")
	h2 := tbl.Add("beta")
	test.That(t, h1, test.ShouldEqual, 0)
	test.That(t, h2, test.ShouldEqual, 1)

	v, ok := tbl.Get(h1)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, v, test.ShouldEqual, "alpha")

	test.That(t, tbl.Remove(h1), test.ShouldBeNil)
	_, ok = tbl.Get(h1)
	test.That(t, ok, test.ShouldBeFalse)

	// removing the same handle twice is a fatal failure
	err := tbl.Remove(h1)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, errorKindOf(err), test.ShouldEqual, InvalidHandle)
}

func TestTableReusesFreedSlots(t *testing.T) {
	tbl := NewTable[int]()
	h1 := tbl.Add(1)
	_ = tbl.Add(2)
	test.That(t, tbl.Remove(h1), test.ShouldBeNil)

	h3 := tbl.Add(3)
	test.That(t, h3, test.ShouldEqual, h1)

	v, ok := tbl.Get(h3)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, v, test.ShouldEqual, 3)
	test.That(t, tbl.Len(), test.ShouldEqual, 2)
}

func TestTableGetOutOfRangeIsMiss(t *testing.T) {
	tbl := NewTable[int]()
	_, ok := tbl.Get(0)
	test.That(t, ok, test.ShouldBeFalse)
	_, ok = tbl.Get(-1)
	test.That(t, ok, test.ShouldBeFalse)
}

func TestTableRemoveOutOfRangeIsFatal(t *testing.T) {
	tbl := NewTable[int]()
	err := tbl.Remove(3)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, errorKindOf(err), test.ShouldEqual, InvalidHandle)
}
