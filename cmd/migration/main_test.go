package main

import (
	"errors"
	"testing"

	"github.com/golang-migrate/migrate/v4"

	"github.com/riskibarqy/football-etl/internal/platform/logging"
)

type fakeMigrator struct {
	upErr      error
	steps      []int
	version    uint
	versionErr error
	forced     int
	target     uint
}

func (f *fakeMigrator) Up() error { return f.upErr }

func (f *fakeMigrator) Steps(n int) error {
	f.steps = append(f.steps, n)
	return nil
}

func (f *fakeMigrator) Version() (uint, bool, error) { return f.version, false, f.versionErr }

func (f *fakeMigrator) Force(version int) error {
	f.forced = version
	return nil
}

func (f *fakeMigrator) Migrate(version uint) error {
	f.target = version
	return nil
}

func TestRun(t *testing.T) {
	t.Parallel()
	logger := logging.NewNop()

	t.Run("up ignores no change", func(t *testing.T) {
		t.Parallel()
		if err := run(&fakeMigrator{upErr: migrate.ErrNoChange}, []string{"up"}, logger); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("up surfaces failures", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		if err := run(&fakeMigrator{upErr: boom}, []string{"UP"}, logger); !errors.Is(err, boom) {
			t.Fatalf("unexpected error: got=%v want=%v", err, boom)
		}
	})

	t.Run("down defaults to one step", func(t *testing.T) {
		t.Parallel()
		m := &fakeMigrator{}
		if err := run(m, []string{"down"}, logger); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(m.steps) != 1 || m.steps[0] != -1 {
			t.Fatalf("unexpected steps: %v", m.steps)
		}
	})

	t.Run("version without migrations", func(t *testing.T) {
		t.Parallel()
		if err := run(&fakeMigrator{versionErr: migrate.ErrNilVersion}, []string{"version"}, logger); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("force and goto", func(t *testing.T) {
		t.Parallel()
		m := &fakeMigrator{}
		if err := run(m, []string{"force", "1"}, logger); err != nil || m.forced != 1 {
			t.Fatalf("unexpected force result: forced=%d err=%v", m.forced, err)
		}
		if err := run(m, []string{"goto", "1"}, logger); err != nil || m.target != 1 {
			t.Fatalf("unexpected goto result: target=%d err=%v", m.target, err)
		}
		if err := run(m, []string{"force"}, logger); err == nil {
			t.Fatalf("expected error for force without version")
		}
	})

	t.Run("unknown command", func(t *testing.T) {
		t.Parallel()
		if err := run(&fakeMigrator{}, []string{"sideways"}, logger); !errors.Is(err, errUsage) {
			t.Fatalf("unexpected error: got=%v want=%v", err, errUsage)
		}
	})
}

func TestParseSteps(t *testing.T) {
	t.Parallel()

	if got, err := parseSteps([]string{" 3 "}); err != nil || got != 3 {
		t.Fatalf("unexpected steps: got=%d err=%v", got, err)
	}
	if _, err := parseSteps([]string{"0"}); err == nil {
		t.Fatalf("expected error for zero steps")
	}
	if _, err := parseSteps([]string{"x"}); err == nil {
		t.Fatalf("expected error for non numeric steps")
	}
}

func TestParseVersionAndTarget(t *testing.T) {
	t.Parallel()

	if _, err := parseVersion("-1"); err == nil {
		t.Fatalf("expected error for negative version")
	}
	if got, err := parseTarget("7"); err != nil || got != 7 {
		t.Fatalf("unexpected target: got=%d err=%v", got, err)
	}
	if _, err := parseTarget("-7"); err == nil {
		t.Fatalf("expected error for negative target")
	}
}
