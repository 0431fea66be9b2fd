package registry

import (
	"testing"

	"github.com/vovakirdan/hui-playground/internal/config"
	"github.com/vovakirdan/hui-playground/internal/hui"
)

type stubSketch struct{ id string }

func (s stubSketch) ID() string    { return s.id }
func (s stubSketch) Title() string { return "Stub " + s.id }

func (s stubSketch) Setup(*hui.Game, config.Config) {}

func TestRegisterCreateList(t *testing.T) {
	Register("zz-stub", func() Sketch { return stubSketch{id: "zz-stub"} })
	Register("aa-stub", func() Sketch { return stubSketch{id: "aa-stub"} })

	if !Exists("zz-stub") || Exists("nope") {
		t.Fatal("Exists gave the wrong answer")
	}

	s, err := Create("aa-stub")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if s.ID() != "aa-stub" {
		t.Errorf("ID = %q", s.ID())
	}
	if _, err := Create("nope"); err == nil {
		t.Error("Create of unknown sketch should fail")
	}

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID > list[i].ID {
			t.Fatalf("List not sorted: %v", list)
		}
	}
	var found bool
	for _, info := range list {
		if info.ID == "aa-stub" {
			found = info.Title == "Stub aa-stub"
		}
	}
	if !found {
		t.Errorf("aa-stub missing or mistitled in %v", list)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("dup-stub", func() Sketch { return stubSketch{id: "dup-stub"} })
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("dup-stub", func() Sketch { return stubSketch{id: "dup-stub"} })
}
