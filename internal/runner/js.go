package runner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dop251/goja"
)

// JSSandbox runs JavaScript in a fresh goja interpreter per call. The VM gets
// a console.log capture and nothing else: no filesystem, no network, no host
// bindings. A deadline interrupt stops runaway loops.
type JSSandbox struct {
	timeout time.Duration
}

// NewJSSandbox returns a JavaScript sandbox with the given per-run timeout.
func NewJSSandbox(timeout time.Duration) *JSSandbox {
	if timeout <= 0 {
		timeout = DefaultRunTimeout
	}
	return &JSSandbox{timeout: timeout}
}

// Run evaluates the code and returns captured console.log output. Script
// errors are reported in the output text, matching how the editor shows
// failed runs.
func (s *JSSandbox) Run(ctx context.Context, code string) (string, error) {
	vm := goja.New()

	var logs []string
	console := vm.NewObject()
	logFn := func(call goja.FunctionCall) goja.Value {
		parts := make([]string, 0, len(call.Arguments))
		for _, arg := range call.Arguments {
			parts = append(parts, arg.String())
		}
		logs = append(logs, strings.Join(parts, " "))
		return goja.Undefined()
	}
	if err := console.Set("log", logFn); err != nil {
		return "", fmt.Errorf("install console.log: %w", err)
	}
	if err := console.Set("error", logFn); err != nil {
		return "", fmt.Errorf("install console.error: %w", err)
	}
	if err := vm.Set("console", console); err != nil {
		return "", fmt.Errorf("install console: %w", err)
	}

	timeout := s.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	timer := time.AfterFunc(timeout, func() {
		vm.Interrupt("execution timed out")
	})
	defer timer.Stop()

	value, err := vm.RunString(code)
	if err != nil {
		var interrupted *goja.InterruptedError
		if ok := asGojaInterrupt(err, &interrupted); ok {
			return "Error: execution timed out", nil
		}
		return fmt.Sprintf("Error: %s", err.Error()), nil
	}

	if len(logs) == 0 {
		if value != nil && !goja.IsUndefined(value) && !goja.IsNull(value) {
			return value.String(), nil
		}
		return "No output", nil
	}
	return strings.Join(logs, "\n"), nil
}

func asGojaInterrupt(err error, target **goja.InterruptedError) bool {
	if ie, ok := err.(*goja.InterruptedError); ok {
		*target = ie
		return true
	}
	return false
}
