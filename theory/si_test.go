package theory

import (
	"testing"

	"github.com/coresat/cdclt/lit"
	"github.com/coresat/cdclt/preprocess"
	"github.com/coresat/cdclt/term"
)

type stubPlugin struct {
	pushed, popped int
}

func (p *stubPlugin) Name() string { return "stub" }

func (p *stubPlugin) CreateAndSetup(si *SI) (func(), func(int)) {
	return func() { p.pushed++ },
		func(n int) { p.popped += n }
}

type stubCC struct {
	asserted [][]lit.Atom
	checked  int
}

func (c *stubCC) AddTerm(t term.Term) Node                       { return 0 }
func (c *stubCC) Find(n Node) Node                               { return n }
func (c *stubCC) Merge(n1, n2 Node, e Explanation)               {}
func (c *stubCC) AssertLits(lits []lit.Atom)                     { c.asserted = append(c.asserted, lits) }
func (c *stubCC) Check(acts Acts)                                { c.checked++ }
func (c *stubCC) PushLevel()                                     {}
func (c *stubCC) PopLevels(n int)                                {}
func (c *stubCC) SetAsLit(n Node, l lit.Atom)                    {}
func (c *stubCC) RaiseConflictFromExpl(acts Acts, e Explanation) {}
func (c *stubCC) OnNewTerm(cb func(Node, term.Term))             {}
func (c *stubCC) OnPreMerge(cb func(n1, n2 Node))                {}
func (c *stubCC) OnPostMerge(cb func(n1, n2 Node))               {}
func (c *stubCC) OnConflict(cb func(Explanation))                {}
func (c *stubCC) OnPropagate(cb func(lit.Atom, Explanation))     {}

func TestPluginChainPushPop(t *testing.T) {
	si := NewSI(preprocess.NewSimplifier(), nil)
	p1 := &stubPlugin{}
	p2 := &stubPlugin{}
	si.RegisterPlugin(p1)
	si.RegisterPlugin(p2)

	si.PushLevel()
	si.PopLevels(1)

	if p1.pushed != 1 || p2.pushed != 1 {
		t.Fatalf("expected both plugins pushed once")
	}
	if p1.popped != 1 || p2.popped != 1 {
		t.Fatalf("expected both plugins popped once")
	}
}

func TestCheckHooksFanOut(t *testing.T) {
	si := NewSI(preprocess.NewSimplifier(), nil)
	var partial, final int
	si.OnPartialCheck(func(acts Acts) { partial++ })
	si.OnFinalCheck(func(acts Acts) { final++ })

	cc := &stubCC{}
	si.cc = cc

	si.AssertLits(false, nil, nil)
	si.AssertLits(true, nil, nil)

	if partial != 1 || final != 1 {
		t.Fatalf("expected one partial and one final check, got %d/%d", partial, final)
	}
	if cc.checked != 2 {
		t.Fatalf("expected cc.Check called twice, got %d", cc.checked)
	}
}
