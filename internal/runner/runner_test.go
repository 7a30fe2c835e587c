package runner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSSandboxCapturesConsoleLog(t *testing.T) {
	sb := NewJSSandbox(5 * time.Second)
	out, err := sb.Run(context.Background(), `
		console.log("Hello from Burme Mark!");
		console.log("line", 2);
	`)
	require.NoError(t, err)
	assert.Equal(t, "Hello from Burme Mark!\nline 2", out)
}

func TestJSSandboxScriptErrorBecomesOutput(t *testing.T) {
	sb := NewJSSandbox(5 * time.Second)
	out, err := sb.Run(context.Background(), `undefinedFn();`)
	require.NoError(t, err)
	assert.Contains(t, out, "Error:")
}

func TestJSSandboxNoOutput(t *testing.T) {
	sb := NewJSSandbox(5 * time.Second)
	out, err := sb.Run(context.Background(), `var x = 1;`)
	require.NoError(t, err)
	assert.Equal(t, "No output", out)
}

func TestJSSandboxExpressionValue(t *testing.T) {
	sb := NewJSSandbox(5 * time.Second)
	out, err := sb.Run(context.Background(), `1 + 2`)
	require.NoError(t, err)
	assert.Equal(t, "3", out)
}

func TestJSSandboxInterruptsRunawayLoop(t *testing.T) {
	sb := NewJSSandbox(100 * time.Millisecond)
	start := time.Now()
	out, err := sb.Run(context.Background(), `while (true) {}`)
	require.NoError(t, err)
	assert.Equal(t, "Error: execution timed out", out)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestJSSandboxHasNoHostBindings(t *testing.T) {
	sb := NewJSSandbox(5 * time.Second)
	out, err := sb.Run(context.Background(), `console.log(typeof require, typeof fetch, typeof process);`)
	require.NoError(t, err)
	assert.Equal(t, "undefined undefined undefined", out)
}

type fakeSandbox struct {
	output string
	err    error
	calls  int
}

func (f *fakeSandbox) Run(ctx context.Context, code string) (string, error) {
	f.calls++
	return f.output, f.err
}

func TestServiceRoutesJavaScript(t *testing.T) {
	svc := New(nil, time.Second)
	out, err := svc.Run(context.Background(), "javascript", `console.log("hi")`)
	require.NoError(t, err)
	assert.Equal(t, "hi", out)

	out, err = svc.Run(context.Background(), "TypeScript", `console.log("ts")`)
	require.NoError(t, err)
	assert.Equal(t, "ts", out)
}

func TestServicePythonUsesSandbox(t *testing.T) {
	py := &fakeSandbox{output: "42\n"}
	svc := New(py, time.Second)

	out, err := svc.Run(context.Background(), "python", `print(42)`)
	require.NoError(t, err)
	assert.Equal(t, "42\n", out)
	assert.Equal(t, 1, py.calls)
}

func TestServicePythonFallsBackToSimulation(t *testing.T) {
	py := &fakeSandbox{err: errors.New("daemon unreachable")}
	svc := New(py, time.Second)

	out, err := svc.Run(context.Background(), "python", `print(42)`)
	require.NoError(t, err)
	assert.Contains(t, out, "Python execution simulation")
}

func TestServicePythonWithoutSandboxSimulates(t *testing.T) {
	svc := New(nil, time.Second)
	out, err := svc.Run(context.Background(), "python", `print(42)`)
	require.NoError(t, err)
	assert.Contains(t, out, "Python execution simulation")
}

func TestServiceUnknownLanguageSimulates(t *testing.T) {
	svc := New(nil, time.Second)
	out, err := svc.Run(context.Background(), "ruby", `puts 1`)
	require.NoError(t, err)
	assert.Contains(t, out, "ruby code executed successfully!")
}
