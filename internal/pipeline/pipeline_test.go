package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/glyphprint/glyphprint/internal/model"
)

// mockStep is a test helper that implements the Step interface.
type mockStep struct {
	name      string
	doFunc    func(ctx context.Context, report *model.ScanReport) error
	callCount int
}

// Do implements Step.Do.
func (m *mockStep) Do(ctx context.Context, report *model.ScanReport) error {
	m.callCount++
	if m.doFunc != nil {
		return m.doFunc(ctx, report)
	}
	return nil
}

// Name implements Step.Name.
func (m *mockStep) Name() string {
	return m.name
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestPipelineNew tests the Pipeline constructor.
func TestPipelineNew(t *testing.T) {
	t.Parallel()

	t.Run("creates pipeline with default settings", func(t *testing.T) {
		t.Parallel()

		p := New()

		if p == nil {
			t.Fatal("expected non-nil pipeline")
		}
		if p.StepCount() != 0 {
			t.Errorf("expected 0 steps, got %d", p.StepCount())
		}
	})

	t.Run("applies WithContinueOnError option", func(t *testing.T) {
		t.Parallel()

		p := New(WithContinueOnError(true))

		if !p.continueOnError {
			t.Error("expected continueOnError to be true")
		}
	})
}

// TestPipelineAddStep tests adding steps to the pipeline.
func TestPipelineAddStep(t *testing.T) {
	t.Parallel()

	t.Run("adds multiple steps with AddSteps", func(t *testing.T) {
		t.Parallel()

		p := New()
		p.AddSteps(&mockStep{name: "detect"}, &mockStep{name: "fingerprint"}, &mockStep{name: "score"})

		if p.StepCount() != 3 {
			t.Errorf("expected 3 steps, got %d", p.StepCount())
		}
	})

	t.Run("maintains step order", func(t *testing.T) {
		t.Parallel()

		p := New()
		p.AddStep(&mockStep{name: "detect"})
		p.AddStep(&mockStep{name: "fingerprint"})
		p.AddStep(&mockStep{name: "score"})

		expected := []string{"detect", "fingerprint", "score"}
		for i, name := range p.StepNames() {
			if name != expected[i] {
				t.Errorf("step %d: got %q, expected %q", i, name, expected[i])
			}
		}
	})
}

// TestPipelineExecute tests pipeline execution.
func TestPipelineExecute(t *testing.T) {
	t.Parallel()

	t.Run("executes all steps in order", func(t *testing.T) {
		t.Parallel()

		executionOrder := make([]string, 0)

		p := New(WithLogger(quietLogger()))
		for _, name := range []string{"first", "second", "third"} {
			p.AddStep(&mockStep{
				name: name,
				doFunc: func(_ context.Context, _ *model.ScanReport) error {
					executionOrder = append(executionOrder, name)
					return nil
				},
			})
		}

		report := model.NewScanReport(0)
		if err := p.Execute(context.Background(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		expected := []string{"first", "second", "third"}
		for i, name := range executionOrder {
			if name != expected[i] {
				t.Errorf("execution %d: got %q, expected %q", i, name, expected[i])
			}
		}
	})

	t.Run("records performed steps in the report", func(t *testing.T) {
		t.Parallel()

		p := New(WithLogger(quietLogger()))
		p.AddSteps(&mockStep{name: "detect"}, &mockStep{name: "score"})

		report := model.NewScanReport(0)
		if err := p.Execute(context.Background(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(report.PerformedSteps) != 2 {
			t.Errorf("expected 2 performed steps, got %v", report.PerformedSteps)
		}
	})

	t.Run("stops on first error by default", func(t *testing.T) {
		t.Parallel()

		wantErr := errors.New("probe surface lost")
		second := &mockStep{name: "second"}

		p := New(WithLogger(quietLogger()))
		p.AddStep(&mockStep{
			name:   "first",
			doFunc: func(_ context.Context, _ *model.ScanReport) error { return wantErr },
		})
		p.AddStep(second)

		report := model.NewScanReport(0)
		err := p.Execute(context.Background(), report)

		if !errors.Is(err, wantErr) {
			t.Errorf("expected %v, got %v", wantErr, err)
		}
		if second.callCount != 0 {
			t.Error("second step should not run after failure")
		}
		if report.ErrorMessage == "" {
			t.Error("expected error recorded in report")
		}
	})

	t.Run("continues after error when configured", func(t *testing.T) {
		t.Parallel()

		second := &mockStep{name: "second"}

		p := New(WithLogger(quietLogger()), WithContinueOnError(true))
		p.AddStep(&mockStep{
			name:   "first",
			doFunc: func(_ context.Context, _ *model.ScanReport) error { return errors.New("boom") },
		})
		p.AddStep(second)

		report := model.NewScanReport(0)
		if err := p.Execute(context.Background(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if second.callCount != 1 {
			t.Error("second step should run despite earlier failure")
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		step := &mockStep{name: "never-runs"}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		p := New(WithLogger(quietLogger()))
		p.AddStep(step)

		err := p.Execute(ctx, model.NewScanReport(0))

		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if step.callCount != 0 {
			t.Error("step should not run after cancellation")
		}
	})
}
