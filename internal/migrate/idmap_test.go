package migrate

import "testing"

func TestIDMap(t *testing.T) {
	t.Run("resolves recorded pairs", func(t *testing.T) {
		m := NewIDMap("users")
		m.Record("1", "aaa")
		m.Record("2", "bbb")

		got, ok := m.Resolve("1")
		if !ok || got != "aaa" {
			t.Errorf("expected aaa, got %q (ok=%v)", got, ok)
		}
		if m.Len() != 2 {
			t.Errorf("expected 2 entries, got %d", m.Len())
		}
		if m.Entity() != "users" {
			t.Errorf("expected entity users, got %q", m.Entity())
		}
	})

	t.Run("unknown id does not resolve", func(t *testing.T) {
		m := NewIDMap("users")
		if _, ok := m.Resolve("99"); ok {
			t.Error("expected unknown id to not resolve")
		}
	})

	t.Run("pairs returns a copy", func(t *testing.T) {
		m := NewIDMap("boards")
		m.Record("1", "aaa")

		pairs := m.Pairs()
		pairs["1"] = "mutated"

		if got, _ := m.Resolve("1"); got != "aaa" {
			t.Errorf("mutation of Pairs leaked into map, got %q", got)
		}
	})
}
