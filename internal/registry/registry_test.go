package registry

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/lane-dodge/internal/core"
)

type stubGame struct{ id string }

func (g stubGame) ID() string { return g.id }
func (g stubGame) Title() string { return strings.ToUpper(g.id) }
func (g stubGame) Reset(core.RuntimeConfig) {}
func (g stubGame) Step(core.InputFrame, time.Duration) core.StepResult { return core.StepResult{} }
func (g stubGame) Render(*core.Screen) {}
func (g stubGame) State() core.GameState { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("test-b", func() Game { return stubGame{id: "test-b"} })
	Register("test-a", func() Game { return stubGame{id: "test-a"} })

	if !Exists("test-a") {
		t.Error("test-a should exist after Register")
	}
	if Exists("test-missing") {
		t.Error("test-missing should not exist")
	}

	g, err := Create("test-b")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "test-b" {
		t.Errorf("ID() = %q, expected test-b", g.ID())
	}

	if _, err := Create("test-missing"); err == nil {
		t.Error("Create() of an unknown id should fail")
	}

	var ids []string
	for _, info := range List() {
		if strings.HasPrefix(info.ID, "test-") {
			ids = append(ids, info.ID+"="+info.Title)
		}
	}
	if got := strings.Join(ids, ","); got != "test-a=TEST-A,test-b=TEST-B" {
		t.Errorf("List() = %s, expected sorted ids with titles", got)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("test-dup", func() Game { return stubGame{id: "test-dup"} })

	defer func() {
		if recover() == nil {
			t.Error("second Register of the same id should panic")
		}
	}()
	Register("test-dup", func() Game { return stubGame{id: "test-dup"} })
}
