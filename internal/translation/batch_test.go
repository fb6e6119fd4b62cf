package translation

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/rs/zerolog"
)

func TestBatchTranslatorPreservesOrderAcrossBatches(t *testing.T) {
	t.Parallel()

	units := make([]string, 10)
	want := make([]string, 10)
	for i := range units {
		units[i] = fmt.Sprintf("u%d", i)
		want[i] = fmt.Sprintf("<u%d>", i)
	}

	capability := &stubCapability{}
	got, err := NewBatchTranslator(zerolog.Nop()).Translate(context.Background(), units, capability, 3)
	if err != nil {
		t.Fatalf("Translate returned error: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected translations:\nwant: %q\ngot:  %q", want, got)
	}

	sizes := make([]int, 0, len(capability.calls))
	for _, call := range capability.calls {
		sizes = append(sizes, len(call))
	}
	if !reflect.DeepEqual(sizes, []int{3, 3, 3, 1}) {
		t.Fatalf("unexpected batch sizes: %v", sizes)
	}
}

func TestBatchTranslatorNonPositiveSizeUsesOneBatch(t *testing.T) {
	t.Parallel()

	for _, size := range []int{0, -4} {
		capability := &stubCapability{}
		if _, err := NewBatchTranslator(zerolog.Nop()).Translate(context.Background(), []string{"a", "b", "c"}, capability, size); err != nil {
			t.Fatalf("Translate returned error: %v", err)
		}
		if len(capability.calls) != 1 || len(capability.calls[0]) != 3 {
			t.Fatalf("expected one batch of three for size %d, got %v", size, capability.calls)
		}
	}
}

func TestBatchTranslatorEmptyInput(t *testing.T) {
	t.Parallel()

	capability := &stubCapability{}
	got, err := NewBatchTranslator(zerolog.Nop()).Translate(context.Background(), nil, capability, 4)
	if err != nil {
		t.Fatalf("Translate returned error: %v", err)
	}
	if len(got) != 0 || len(capability.calls) != 0 {
		t.Fatalf("expected no output and no calls, got %q after %d calls", got, len(capability.calls))
	}
}

func TestBatchTranslatorLengthMismatch(t *testing.T) {
	t.Parallel()

	capability := &stubCapability{dropLast: true}
	got, err := NewBatchTranslator(zerolog.Nop()).Translate(context.Background(), []string{"a", "b"}, capability, 2)
	if !errors.Is(err, ErrBatchLengthMismatch) {
		t.Fatalf("expected ErrBatchLengthMismatch, got %v", err)
	}
	if got != nil {
		t.Fatalf("expected no output, got %q", got)
	}

	var mismatch *BatchLengthMismatchError
	if !errors.As(err, &mismatch) || mismatch.Want != 2 || mismatch.Got != 1 || mismatch.Batch != 1 {
		t.Fatalf("unexpected mismatch details: %+v", mismatch)
	}
}

func TestBatchTranslatorStopsAtFirstFailure(t *testing.T) {
	t.Parallel()

	cause := errors.New("endpoint down")
	capability := &stubCapability{err: cause}
	_, err := NewBatchTranslator(zerolog.Nop()).Translate(context.Background(), []string{"a", "b", "c"}, capability, 1)
	if !errors.Is(err, ErrCapabilityInvocation) {
		t.Fatalf("expected ErrCapabilityInvocation, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
	if len(capability.calls) != 1 {
		t.Fatalf("expected one call before abort, got %d", len(capability.calls))
	}
}

func TestBatchTranslatorHonorsCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	capability := &stubCapability{}
	if _, err := NewBatchTranslator(zerolog.Nop()).Translate(ctx, []string{"a"}, capability, 1); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(capability.calls) != 0 {
		t.Fatalf("expected no calls after cancellation")
	}
}

func TestAssemble(t *testing.T) {
	t.Parallel()

	got := Assemble([]string{" The cat sits ", "Does the dog run?", "", "Yes!"})
	want := "The cat sits. Does the dog run? Yes!"
	if got != want {
		t.Fatalf("unexpected assembly:\nwant: %q\ngot:  %q", want, got)
	}
	if got := Assemble(nil); got != "" {
		t.Fatalf("expected empty assembly, got %q", got)
	}
}

func TestPostProcess(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{in: "the cat sits; the dog runs.", want: "The cat sits. The dog runs."},
		{in: "кот сидит. собака бежит.", want: "Кот сидит. Собака бежит."},
		{in: "already Fine. keep the REST.", want: "Already Fine. Keep the REST."},
		{in: "", want: ""},
		{in: "мысық отыр. ит жүгіреді", want: "Мысық отыр. Ит жүгіреді"},
	}
	for _, tc := range cases {
		got := PostProcess(tc.in)
		if got != tc.want {
			t.Fatalf("PostProcess(%q) = %q, want %q", tc.in, got, tc.want)
		}
		if again := PostProcess(got); again != got {
			t.Fatalf("PostProcess is not idempotent on %q: %q", got, again)
		}
	}
}
