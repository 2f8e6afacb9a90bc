package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeExec records the commands the REPL dispatches.
type fakeExec struct {
	loggedIn bool
	calls    []string
}

func (f *fakeExec) record(name string) error {
	f.calls = append(f.calls, name)
	return nil
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }

func (f *fakeExec) Login(context.Context) error { return f.record("login") }

func (f *fakeExec) Signup(context.Context) error { return f.record("signup") }

func (f *fakeExec) Logout(context.Context) error { return f.record("logout") }

func (f *fakeExec) WhoAmI(context.Context) error { return f.record("whoami") }

func (f *fakeExec) Status(context.Context) error { return f.record("status") }

func (f *fakeExec) Theme(_ context.Context, args []string) error {
	return f.record("theme " + strings.Join(args, " "))
}
func (f *fakeExec) Language(_ context.Context, args []string) error {
	return f.record("language " + strings.Join(args, " "))
}
func (f *fakeExec) Pref(_ context.Context, args []string) error {
	return f.record("pref " + strings.Join(args, " "))
}
func (f *fakeExec) Fetch(_ context.Context, args []string) error {
	return f.record("get " + strings.Join(args, " "))
}

func runScript(t *testing.T, f *fakeExec, script string) []string {
	t.Helper()

	var printed []string
	orig := printlnFn
	t.Cleanup(func() { printlnFn = orig })
	printlnFn = func(a ...any) (int, error) {
		printed = append(printed, fmt.Sprintln(a...))
		return 0, nil
	}

	scanner := bufio.NewScanner(strings.NewReader(script))
	runREPL(context.Background(), f, func() string { return "test" }, scanner)
	return printed
}

func TestREPL_DispatchesCommands(t *testing.T) {
	f := &fakeExec{}
	runScript(t, f, "login\nstatus\ntheme dark\npref theme\nexit\n")

	assert.Equal(t, []string{"login", "status", "theme dark", "pref theme"}, f.calls)
}

func TestREPL_UnknownCommandIsReported(t *testing.T) {
	f := &fakeExec{}
	printed := runScript(t, f, "frobnicate\nexit\n")

	assert.Empty(t, f.calls)
	joined := strings.Join(printed, "")
	assert.Contains(t, joined, "Unknown command: frobnicate")
}

func TestREPL_HelpDependsOnAuthState(t *testing.T) {
	printed := runScript(t, &fakeExec{}, "help\nexit\n")
	assert.Contains(t, strings.Join(printed, ""), "login, signup")

	printed = runScript(t, &fakeExec{loggedIn: true}, "help\nexit\n")
	assert.Contains(t, strings.Join(printed, ""), "whoami")
}

func TestREPL_BlankLinesAndEOF(t *testing.T) {
	f := &fakeExec{}
	runScript(t, f, "\n\nstatus\n") // no exit; EOF ends the loop

	assert.Equal(t, []string{"status"}, f.calls)
}
