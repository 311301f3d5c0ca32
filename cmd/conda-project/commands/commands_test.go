package commands_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/conda-project/cmd/conda-project/commands"
	"go.trai.ch/conda-project/internal/app"
	"go.trai.ch/conda-project/internal/build"
	"go.trai.ch/conda-project/internal/core/domain"
	"go.trai.ch/conda-project/internal/core/ports"
	"go.trai.ch/conda-project/internal/engine/lifecycle"
	"go.trai.ch/conda-project/internal/engine/runner"
	"go.trai.ch/conda-project/internal/ui/output"
)

// mockApp records the calls made by the commands.
type mockApp struct {
	options   app.Options
	init      app.InitOptions
	lockName  string
	lockForce bool
	install   app.InstallOptions
	cleanName string
	cleanAll  bool
	run       runner.Request
	activate  runner.ActivateRequest
	editName  string
	edit      ports.DependencyEdit
	calls     []string

	checks   []app.LockCheck
	statuses []app.EnvironmentStatus
	err      error
}

func (m *mockApp) Configure(opts app.Options) error {
	m.options = opts
	return nil
}

func (m *mockApp) Printer(w io.Writer) *output.Printer {
	return output.NewPrinter(w, termenv.WithProfile(termenv.Ascii))
}

func (m *mockApp) Init(_ context.Context, opts app.InitOptions) error {
	m.calls = append(m.calls, "init")
	m.init = opts
	return m.err
}

func (m *mockApp) Lock(_ context.Context, name string, force bool) error {
	m.calls = append(m.calls, "lock")
	m.lockName, m.lockForce = name, force
	return m.err
}

func (m *mockApp) Check(context.Context) ([]app.LockCheck, error) {
	m.calls = append(m.calls, "check")
	return m.checks, m.err
}

func (m *mockApp) Install(_ context.Context, opts app.InstallOptions) error {
	m.calls = append(m.calls, "install")
	m.install = opts
	return m.err
}

func (m *mockApp) InstallStatus(_ context.Context, opts app.InstallOptions) ([]app.EnvironmentStatus, error) {
	m.calls = append(m.calls, "install-status")
	m.install = opts
	return m.statuses, m.err
}

func (m *mockApp) Clean(_ context.Context, name string, all bool) error {
	m.calls = append(m.calls, "clean")
	m.cleanName, m.cleanAll = name, all
	return m.err
}

func (m *mockApp) Run(_ context.Context, req runner.Request) error {
	m.calls = append(m.calls, "run")
	m.run = req
	return m.err
}

func (m *mockApp) Activate(_ context.Context, req runner.ActivateRequest) error {
	m.calls = append(m.calls, "activate")
	m.activate = req
	return m.err
}

func (m *mockApp) Add(_ context.Context, name string, edit ports.DependencyEdit) error {
	m.calls = append(m.calls, "add")
	m.editName, m.edit = name, edit
	return m.err
}

func (m *mockApp) Remove(_ context.Context, name string, edit ports.DependencyEdit) error {
	m.calls = append(m.calls, "remove")
	m.editName, m.edit = name, edit
	return m.err
}

func execute(t *testing.T, m *mockApp, args ...string) (string, error) {
	t.Helper()
	cli := commands.New(m)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs(args)
	err := cli.Execute(context.Background())
	return buf.String(), err
}

func TestCommands_GlobalFlags(t *testing.T) {
	m := &mockApp{}
	_, err := execute(t, m,
		"--directory", "/work/demo", "-v", "--json-logs", "--color", "never", "lock",
	)
	require.NoError(t, err)
	assert.Equal(t, app.Options{
		Directory: "/work/demo",
		Verbose:   true,
		JSONLogs:  true,
		Color:     "never",
	}, m.options)
}

func TestCommands_ProjectArchive(t *testing.T) {
	t.Run("extracts into a temporary directory by default", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m,
			"--project-archive", "https://example.com/demo.tgz",
			"--archive-storage-options", "username=me",
			"--archive-storage-options", "X-Token=abc=",
			"check",
		)
		require.NoError(t, err)
		assert.Empty(t, m.options.Directory)
		assert.Equal(t, "https://example.com/demo.tgz", m.options.Archive)
		assert.Equal(t, map[string]string{"username": "me", "X-Token": "abc="}, m.options.ArchiveOptions)
	})

	t.Run("extracts into the given directory", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "--project-archive", "demo.zip", "--directory", "out", "check")
		require.NoError(t, err)
		assert.Equal(t, "out", m.options.Directory)
	})

	t.Run("rejects malformed options", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "--archive-storage-options", "novalue", "check")
		assert.ErrorIs(t, err, domain.ErrConfiguration)
		assert.Empty(t, m.calls)
	})
}

func TestCommands_Init(t *testing.T) {
	m := &mockApp{}
	_, err := execute(t, m, "init", "python=3.11", "numpy",
		"-n", "demo", "-c", "conda-forge", "--platforms", "linux-64,osx-arm64",
		"--conda-configs", "channel_priority=strict", "--install",
	)
	require.NoError(t, err)
	assert.Equal(t, app.InitOptions{
		InitOptions: ports.InitOptions{
			Name:         "demo",
			Dependencies: []string{"python=3.11", "numpy"},
			Channels:     []string{"conda-forge"},
			Platforms:    []string{"linux-64", "osx-arm64"},
			Condarc:      map[string]string{"channel_priority": "strict"},
		},
		Install: true,
	}, m.init)
}

func TestCommands_Lock(t *testing.T) {
	m := &mockApp{}
	_, err := execute(t, m, "lock", "dev", "--force")
	require.NoError(t, err)
	assert.Equal(t, "dev", m.lockName)
	assert.True(t, m.lockForce)

	_, err = execute(t, m, "lock", "a", "b")
	assert.Error(t, err)
}

func TestCommands_Check(t *testing.T) {
	t.Run("all locked", func(t *testing.T) {
		m := &mockApp{checks: []app.LockCheck{{Environment: "default", Locked: true}}}
		out, err := execute(t, m, "check")
		require.NoError(t, err)
		assert.Equal(t, "✓ environment default is locked\n", out)
	})

	t.Run("reports every problem", func(t *testing.T) {
		m := &mockApp{checks: []app.LockCheck{
			{Environment: "default", Locked: false, Stale: true},
			{Environment: "dev", Locked: true, Stale: true},
			{Environment: "docs", Locked: true},
		}}
		out, err := execute(t, m, "check")

		var exit *domain.ExitStatusError
		require.ErrorAs(t, err, &exit)
		assert.Equal(t, 1, exit.Code)
		assert.Equal(t,
			"✗ environment default is not locked\n"+
				"✗ the lock file of environment dev is out of date\n"+
				"✓ environment docs is locked\n",
			out)
	})
}

func TestCommands_Install(t *testing.T) {
	m := &mockApp{}
	_, err := execute(t, m, "install", "--for-command", "test", "--as-platform", "osx-64", "--force")
	require.NoError(t, err)
	assert.Equal(t, []string{"install"}, m.calls)
	assert.Equal(t, app.InstallOptions{ForCommand: "test", AsPlatform: "osx-64", Force: true}, m.install)

	_, err = execute(t, &mockApp{}, "install", "--all", "--for-command", "test")
	assert.Error(t, err)
}

func TestCommands_Install_CheckOnly(t *testing.T) {
	m := &mockApp{statuses: []app.EnvironmentStatus{
		{Environment: "default", InstallStatus: lifecycle.InstallStatus{Prefix: "/p/envs/default", Installed: true, Current: true}},
		{Environment: "dev", InstallStatus: lifecycle.InstallStatus{Installed: true}},
		{Environment: "docs"},
	}}

	out, err := execute(t, m, "install", "--all", "--check-only")
	var exit *domain.ExitStatusError
	require.ErrorAs(t, err, &exit)
	assert.Equal(t, []string{"install-status"}, m.calls)
	assert.True(t, m.install.All)
	assert.Equal(t,
		"✓ environment default is installed and up to date in /p/envs/default\n"+
			"✗ environment dev is out of date\n"+
			"✗ environment docs is not installed\n",
		out)
}

func TestCommands_Clean(t *testing.T) {
	m := &mockApp{}
	_, err := execute(t, m, "clean", "--all")
	require.NoError(t, err)
	assert.True(t, m.cleanAll)
	assert.Empty(t, m.cleanName)
}

func TestCommands_Run(t *testing.T) {
	t.Run("passes command flags and arguments", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "run", "-e", "dev", "pytest", "-x", "--maxfail", "2")
		require.NoError(t, err)
		assert.Equal(t, "pytest", m.run.Command)
		assert.Equal(t, []string{"-x", "--maxfail", "2"}, m.run.Args)
		assert.Equal(t, "dev", m.run.Environment)
		assert.NotNil(t, m.run.Stdout)
	})

	t.Run("default command", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "run")
		require.NoError(t, err)
		assert.Empty(t, m.run.Command)
	})

	t.Run("passes the exit status through", func(t *testing.T) {
		m := &mockApp{err: &domain.ExitStatusError{Code: 3}}
		_, err := execute(t, m, "run", "hello")

		var exit *domain.ExitStatusError
		require.ErrorAs(t, err, &exit)
		assert.Equal(t, 3, exit.Code)

		var prepare *commands.PrepareError
		assert.False(t, errors.As(err, &prepare))
	})

	t.Run("marks preparation failures", func(t *testing.T) {
		m := &mockApp{err: &domain.MissingVariablesError{Names: []string{"SECRET"}}}
		_, err := execute(t, m, "run", "hello")

		var prepare *commands.PrepareError
		require.ErrorAs(t, err, &prepare)
		assert.ErrorIs(t, err, domain.ErrMissingVariables)
	})

	t.Run("environment flags are exclusive", func(t *testing.T) {
		_, err := execute(t, &mockApp{}, "run", "-e", "dev", "--external-environment", "base", "hello")
		assert.Error(t, err)
	})
}

func TestCommands_Activate(t *testing.T) {
	m := &mockApp{}
	_, err := execute(t, m, "activate", "dev", "--shell", "zsh")
	require.NoError(t, err)
	assert.Equal(t, "dev", m.activate.Environment)
	assert.Equal(t, "zsh", m.activate.Shell)
}

func TestCommands_AddRemove(t *testing.T) {
	m := &mockApp{}
	_, err := execute(t, m, "add", "-e", "dev", "-c", "conda-forge", "numpy", "@pip::requests")
	require.NoError(t, err)
	assert.Equal(t, "dev", m.editName)
	assert.Equal(t, ports.DependencyEdit{
		Dependencies: []string{"numpy", "@pip::requests"},
		Channels:     []string{"conda-forge"},
	}, m.edit)

	_, err = execute(t, m, "remove", "numpy")
	require.NoError(t, err)
	assert.Empty(t, m.editName)
	assert.Equal(t, ports.DependencyEdit{Dependencies: []string{"numpy"}}, m.edit)

	_, err = execute(t, m, "add")
	assert.Error(t, err)
}

func TestCommands_Version(t *testing.T) {
	out, err := execute(t, &mockApp{}, "version")
	require.NoError(t, err)
	assert.Contains(t, out, build.Version)
}
