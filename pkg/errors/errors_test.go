package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidPage, "invalid page size: %s", "tabloid")

	if err.Code != ErrCodeInvalidPage {
		t.Errorf("Code = %q, want %q", err.Code, ErrCodeInvalidPage)
	}
	if err.Message != "invalid page size: tabloid" {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Cause != nil {
		t.Error("New should not set a cause")
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(ErrCodeRenderFailed, cause, "write %s", "labels.pdf")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match cause via errors.Is")
	}
	want := "RENDER_FAILED: write labels.pdf: disk full"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeEmptyDataset, "no totes found")

	if !Is(err, ErrCodeEmptyDataset) {
		t.Error("Is should match the error's own code")
	}
	if Is(err, ErrCodeRenderFailed) {
		t.Error("Is should not match a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeEmptyDataset) {
		t.Error("Is should not match a plain error")
	}

	// Code survives wrapping with %w
	wrapped := fmt.Errorf("pipeline: %w", err)
	if !Is(wrapped, ErrCodeEmptyDataset) {
		t.Error("Is should unwrap fmt-wrapped errors")
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeFileNotFound, "no CSV files found for: data")
	if got := UserMessage(err); got != "no CSV files found for: data" {
		t.Errorf("UserMessage = %q", got)
	}

	plain := stderrors.New("something broke")
	if got := UserMessage(plain); got != "something broke" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"no input files", New(ErrCodeFileNotFound, "none"), 2},
		{"empty input dir", New(ErrCodeNotFound, "no CSV files found in data"), 2},
		{"bad page", New(ErrCodeInvalidPage, "bad"), 2},
		{"bad mode", New(ErrCodeInvalidMode, "bad"), 2},
		{"empty dataset", New(ErrCodeEmptyDataset, "no totes"), 1},
		{"render failure", New(ErrCodeRenderFailed, "boom"), 3},
		{"plain error", stderrors.New("boom"), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
