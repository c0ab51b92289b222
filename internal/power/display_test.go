package power

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scienceol/displayidle/internal/executor"
)

const offSig = "state 0x120002 [TV is off]"

var testCmds = Commands{
	Status:       "tvservice --status",
	On:           "tvservice --preferred",
	Off:          "tvservice --off",
	OffSignature: offSig,
}

// fakeHDMI emulates tvservice: the status output follows the power state and
// the on/off commands flip it unless told to fail.
type fakeHDMI struct {
	on         bool
	statusErr  error
	statusOut  string // overrides the emulated output when set
	failSwitch bool
	calls      []string
}

func (f *fakeHDMI) Run(_ context.Context, command string, limit int) executor.Result {
	f.calls = append(f.calls, command)
	switch command {
	case testCmds.Status:
		if f.statusErr != nil {
			return executor.Result{ExitCode: -1, Err: f.statusErr}
		}
		out := f.statusOut
		if out == "" {
			out = "state 0x12000a [HDMI CEA (16) RGB lim 16:9], 1920x1080 @ 60.00Hz, progressive"
			if !f.on {
				out = offSig + "\n"
			}
		}
		if limit > 0 && len(out) > limit {
			out = out[:limit]
		}
		return executor.Result{Stdout: []byte(out)}
	case testCmds.On, testCmds.Off:
		if f.failSwitch {
			return executor.Result{ExitCode: 1}
		}
		f.on = command == testCmds.On
		return executor.Result{}
	}
	return executor.Result{ExitCode: 127}
}

func (f *fakeHDMI) count(command string) int {
	n := 0
	for _, c := range f.calls {
		if c == command {
			n++
		}
	}
	return n
}

func testContext() context.Context {
	logger := zerolog.Nop()
	return logger.WithContext(context.Background())
}

func TestDisplay_State(t *testing.T) {
	tests := []struct {
		name string
		hdmi *fakeHDMI
		want State
	}{
		{name: "on", hdmi: &fakeHDMI{on: true}, want: StateOn},
		{name: "off", hdmi: &fakeHDMI{on: false}, want: StateOff},
		{name: "exact signature without newline", hdmi: &fakeHDMI{statusOut: offSig}, want: StateOff},
		{name: "truncated signature", hdmi: &fakeHDMI{statusOut: offSig[:len(offSig)-1]}, want: StateOn},
		{name: "shifted signature", hdmi: &fakeHDMI{statusOut: " " + offSig}, want: StateOn},
		{name: "different off code", hdmi: &fakeHDMI{statusOut: "state 0x120001 [TV is off]"}, want: StateOn},
		{name: "query failure", hdmi: &fakeHDMI{statusErr: errors.New("exec: not found")}, want: StateError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDisplay(testCmds, tt.hdmi)
			assert.Equal(t, tt.want, d.State(testContext()))
		})
	}
}

func TestDisplay_SetIsIdempotent(t *testing.T) {
	for _, target := range []State{StateOn, StateOff} {
		t.Run(target.String(), func(t *testing.T) {
			hdmi := &fakeHDMI{on: target == StateOff}
			d := NewDisplay(testCmds, hdmi)
			ctx := testContext()

			assert.Equal(t, target, d.Set(ctx, target))
			assert.Equal(t, target, d.Set(ctx, target))

			cmd := testCmds.On
			if target == StateOff {
				cmd = testCmds.Off
			}
			assert.Equal(t, 1, hdmi.count(cmd), "second Set must be a no-op")
			assert.Equal(t, 2, hdmi.count(testCmds.Status), "every Set queries first")
		})
	}
}

func TestDisplay_SetFailureKeepsPreviousState(t *testing.T) {
	hdmi := &fakeHDMI{on: true, failSwitch: true}
	d := NewDisplay(testCmds, hdmi)

	got := d.Set(testContext(), StateOff)
	assert.Equal(t, StateOn, got)
	assert.Equal(t, 1, hdmi.count(testCmds.Off))

	// The next attempt retries the command since the state never changed.
	hdmi.failSwitch = false
	got = d.Set(testContext(), StateOff)
	assert.Equal(t, StateOff, got)
	assert.Equal(t, 2, hdmi.count(testCmds.Off))
}

func TestDisplay_SetAfterQueryError(t *testing.T) {
	hdmi := &fakeHDMI{statusErr: errors.New("broken pipe")}
	d := NewDisplay(testCmds, hdmi)

	got := d.Set(testContext(), StateOn)
	assert.Equal(t, StateOn, got, "an unknown state is treated as different from the target")
	assert.Equal(t, 1, hdmi.count(testCmds.On))

	hdmi.failSwitch = true
	got = d.Set(testContext(), StateOff)
	assert.Equal(t, StateError, got)
}

func TestDisplay_SetUnsupportedTarget(t *testing.T) {
	hdmi := &fakeHDMI{on: true}
	d := NewDisplay(testCmds, hdmi)

	got := d.Set(testContext(), StateError)
	assert.Equal(t, StateOn, got)
	require.Len(t, hdmi.calls, 1)
	assert.Equal(t, testCmds.Status, hdmi.calls[0])
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "on", StateOn.String())
	assert.Equal(t, "off", StateOff.String())
	assert.Equal(t, "error", StateError.String())
	assert.Equal(t, "7", State(7).String())
}
