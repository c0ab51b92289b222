package busy

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/scienceol/displayidle/internal/executor"
)

type mockRunner struct {
	mock.Mock
}

func (m *mockRunner) Run(ctx context.Context, command string, limit int) executor.Result {
	args := m.Called(command)
	return args.Get(0).(executor.Result)
}

func TestPgrep_IsBusy(t *testing.T) {
	tests := []struct {
		name   string
		result executor.Result
		want   bool
	}{
		{name: "match", result: executor.Result{ExitCode: 0}, want: true},
		{name: "no match", result: executor.Result{ExitCode: 1}, want: false},
		{name: "pgrep error", result: executor.Result{ExitCode: 2}, want: false},
		{name: "pgrep missing", result: executor.Result{ExitCode: -1, Err: errors.New("not found")}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &mockRunner{}
			r.On("Run", "pgrep 'omxplayer|vlc'").Return(tt.result).Once()

			p := NewPgrep([]string{"omxplayer", " vlc ", ""}, r)
			assert.Equal(t, tt.want, p.IsBusy(context.Background()))
			r.AssertExpectations(t)
		})
	}
}

func TestPgrep_NoCaching(t *testing.T) {
	r := &mockRunner{}
	r.On("Run", "pgrep 'omxplayer'").Return(executor.Result{ExitCode: 0}).Once()
	r.On("Run", "pgrep 'omxplayer'").Return(executor.Result{ExitCode: 1}).Once()

	p := NewPgrep([]string{"omxplayer"}, r)
	assert.True(t, p.IsBusy(context.Background()))
	assert.False(t, p.IsBusy(context.Background()))
	r.AssertNumberOfCalls(t, "Run", 2)
}

func TestPgrep_NoPatterns(t *testing.T) {
	r := &mockRunner{}

	p := NewPgrep(nil, r)
	assert.False(t, p.IsBusy(context.Background()))
	r.AssertNotCalled(t, "Run", mock.Anything)
}

func TestShellQuote(t *testing.T) {
	assert.Equal(t, `'it'\''s'`, shellQuote("it's"))
}
