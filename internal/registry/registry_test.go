package registry

import (
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

type stubGame struct{ id string }

func (g *stubGame) ID() string                           { return g.id }
func (g *stubGame) Title() string                        { return "Stub " + g.id }
func (g *stubGame) Reset(core.RuntimeConfig)             {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("stub_b", func() Game { return &stubGame{id: "stub_b"} })
	Register("stub_a", func() Game { return &stubGame{id: "stub_a"} })

	if !Exists("stub_a") {
		t.Fatal("stub_a should be registered")
	}

	g, err := Create("stub_b")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if g.ID() != "stub_b" {
		t.Errorf("ID() = %q, want stub_b", g.ID())
	}

	if _, err := Create("missing"); err == nil {
		t.Error("Create() of an unknown game should fail")
	}

	var ids []string
	for _, info := range List() {
		ids = append(ids, info.ID)
	}
	ia, ib := -1, -1
	for i, id := range ids {
		switch id {
		case "stub_a":
			ia = i
		case "stub_b":
			ib = i
		}
	}
	if ia < 0 || ib < 0 || ia > ib {
		t.Errorf("List() = %v, want sorted ids containing both stubs", ids)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("stub_dup", func() Game { return &stubGame{id: "stub_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("stub_dup", func() Game { return &stubGame{id: "stub_dup"} })
}
