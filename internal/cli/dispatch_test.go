package cli_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"ntask/internal/cli"
	"ntask/internal/commands"
	"ntask/internal/config"
	"ntask/internal/exitcode"
	"ntask/internal/service"
	"ntask/internal/testutil"
)

// testFactory creates a service factory that returns the given FakeService.
func testFactory(svc *testutil.FakeService) cli.ServiceFactory {
	return func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return svc, nil
	}
}

func newTestDispatcher(svc *testutil.FakeService) *cli.Dispatcher {
	return cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc)).SkipAuthCheck()
}

func run(t *testing.T, d *cli.Dispatcher, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	var outBuf, errBuf bytes.Buffer
	code = d.Run(context.Background(), args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	_, stderr, code := run(t, newTestDispatcher(testutil.NewFakeService()), "unknowncmd")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	_, stderr, code := run(t, newTestDispatcher(testutil.NewFakeService()), "--quiet")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_HelpCommand(t *testing.T) {
	stdout, stderr, code := run(t, newTestDispatcher(testutil.NewFakeService()), "help")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Error("expected help output to contain 'Usage:'")
	}
}

func TestDispatcher_VersionCommand(t *testing.T) {
	stdout, stderr, code := run(t, newTestDispatcher(testutil.NewFakeService()), "version")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "ntask 0.1.0\n" {
		t.Errorf("expected 'ntask 0.1.0\\n', got %q", stdout)
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	_, stderr, code := run(t, newTestDispatcher(testutil.NewFakeService()), "help", "--unknown")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: -unknown\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_MissingFlagValue(t *testing.T) {
	_, stderr, code := run(t, newTestDispatcher(testutil.NewFakeService()), "add", "--date")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: flag needs an argument: -date\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_NoArgsListsTasks(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("a", "Meeting", "2026-02-20", "Done")

	stdout, stderr, code := run(t, newTestDispatcher(svc))

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if stdout != "   1  2026-02-20  [Done]  Meeting\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
}

func TestDispatcher_FlagsReachCommand(t *testing.T) {
	svc := testutil.NewFakeService()

	_, stderr, code := run(t, newTestDispatcher(svc), "add", "--date", "2026-03-01", "--status", "Pending", "Dentist", "visit")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	tasks := svc.Tasks()
	if len(tasks) != 1 || tasks[0].Title != "Dentist visit" || tasks[0].Status != "Pending" || *tasks[0].Date != "2026-03-01" {
		t.Errorf("unexpected tasks %+v", tasks)
	}
}

func TestDispatcher_FlagDefaultsResetBetweenRuns(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("a", "Meeting", "2026-02-20", "Done")
	svc.AddTask("b", "Gym", "2026-02-21", "Pending")
	d := newTestDispatcher(svc)

	stdout, _, _ := run(t, d, "list", "--status", "Done")
	if !strings.Contains(stdout, "Meeting") || strings.Contains(stdout, "Gym") {
		t.Errorf("unexpected filtered output %q", stdout)
	}

	stdout, _, _ = run(t, d, "list")
	if !strings.Contains(stdout, "Gym") {
		t.Errorf("status filter leaked into the next run: %q", stdout)
	}
}

func TestDispatcher_MissingSettings(t *testing.T) {
	t.Setenv(config.EnvNotionKey, "")
	t.Setenv(config.EnvDatabaseID, "")
	d := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService()))

	var outBuf, errBuf bytes.Buffer
	code := d.Run(context.Background(), []string{"list", "--config", t.TempDir()}, &outBuf, &errBuf)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if !strings.Contains(errBuf.String(), config.EnvNotionKey) {
		t.Errorf("expected missing setting in stderr, got %q", errBuf.String())
	}
}

func TestDispatcher_FactoryError(t *testing.T) {
	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return nil, errors.New("dial tcp: connection refused")
	}
	d := cli.NewDispatcher(commands.DefaultRegistry, factory).SkipAuthCheck()

	_, stderr, code := run(t, d, "summary")

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if !strings.HasPrefix(stderr, "error: backend error:") {
		t.Errorf("unexpected stderr %q", stderr)
	}
}
