package pipeline_test

import (
	"errors"
	"testing"

	"github.com/user/yuvenc/pkg/adapters/logger"
	"github.com/user/yuvenc/pkg/pipeline"
)

func TestReleaser_ReverseOrder(t *testing.T) {
	rel := pipeline.NewReleaser(logger.NewNoop())

	var order []string
	for _, name := range []string{"first", "second", "third"} {
		name := name
		rel.Add(name, func() error {
			order = append(order, name)
			return nil
		})
	}

	rel.Release()

	want := []string{"third", "second", "first"}
	if len(order) != len(want) {
		t.Fatalf("expected %d releases, got %d", len(want), len(order))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("release %d: expected %s, got %s", i, want[i], order[i])
		}
	}
}

func TestReleaser_Idempotent(t *testing.T) {
	rel := pipeline.NewReleaser(logger.NewNoop())

	closes := 0
	rel.Add("resource", func() error {
		closes++
		return nil
	})

	rel.Release()
	rel.Release()

	if closes != 1 {
		t.Errorf("expected exactly one close, got %d", closes)
	}
}

func TestReleaser_ContinuesPastFailures(t *testing.T) {
	rel := pipeline.NewReleaser(logger.NewNoop())

	released := false
	rel.Add("inner", func() error {
		released = true
		return nil
	})
	rel.Add("outer", func() error {
		return errors.New("close failure")
	})

	rel.Release()

	if !released {
		t.Error("expected release to continue past a failing resource")
	}
}
