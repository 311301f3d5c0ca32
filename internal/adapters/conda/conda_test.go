package conda_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/conda-project/internal/adapters/conda"
	"go.trai.ch/conda-project/internal/adapters/store"
	"go.trai.ch/conda-project/internal/core/domain"
	"go.trai.ch/conda-project/internal/core/ports"
	"go.trai.ch/conda-project/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func quietLogger(t *testing.T) *mocks.MockLogger {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	return log
}

func newSolver(t *testing.T, scenario string) (*conda.Solver, string) {
	t.Helper()
	command, logPath := fakeTool(t, scenario)
	return conda.NewSolver(quietLogger(t), store.NewLockStore(), "conda-lock").WithCommand(command), logPath
}

func newClient(t *testing.T, scenario, subdir string) (*conda.Client, string) {
	t.Helper()
	command, logPath := fakeTool(t, scenario)
	return conda.NewClient(quietLogger(t), "conda", subdir).WithCommand(command), logPath
}

func TestSolver_Solve(t *testing.T) {
	t.Setenv("CONDARC", "")
	solver, logPath := newSolver(t, "ok")

	pkgs, err := solver.Solve(context.Background(), ports.SolveRequest{
		Environment: "default",
		Sources:     []string{"/p/environment.yml", "/p/dev.yml"},
		Channels:    []string{"conda-forge"},
		Platform:    "linux-64",
		Condarc:     "/p/.condarc",
	})
	require.NoError(t, err)
	require.Len(t, pkgs, 1)
	assert.Equal(t, "python", pkgs[0].Name)
	assert.Equal(t, "linux-64", pkgs[0].Platform)
	assert.Equal(t, "11aa", pkgs[0].MD5)

	calls := readCalls(t, logPath)
	require.Len(t, calls, 1)
	assert.True(t, strings.HasPrefix(calls[0], "conda-lock lock --lockfile "))
	assert.Contains(t, calls[0], "--platform linux-64 --file /p/environment.yml --file /p/dev.yml --channel conda-forge")
	assert.Contains(t, calls[0], "CONDARC=/p/.condarc")
}

func TestSolver_Failures(t *testing.T) {
	tests := []struct {
		name     string
		scenario string
		contains string
	}{
		{"tool exits non-zero", "fail", "PackagesNotFoundError"},
		{"no lock file written", "no-output", "did not write a lock file"},
		{"platform missing from output", "wrong-platform", "no packages for the platform"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			solver, _ := newSolver(t, tt.scenario)

			_, err := solver.Solve(context.Background(), ports.SolveRequest{
				Environment: "default",
				Sources:     []string{"/p/environment.yml"},
				Platform:    "linux-64",
			})
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrSolveFailed)
			assert.ErrorIs(t, err, domain.ErrLockFailed)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestClient_Install(t *testing.T) {
	client, logPath := newClient(t, "ok", "")
	prefix := filepath.Join(t.TempDir(), "envs", "default")

	err := client.Install(context.Background(), ports.InstallRequest{
		Prefix:   prefix,
		Platform: "linux-64",
		Condarc:  "/p/.condarc",
		Packages: []domain.LockedPackage{
			{Name: "python", Manager: "conda", Platform: "linux-64", URL: "https://x/python.conda", MD5: "aa"},
			{Name: "requests", Manager: "pip", Platform: "linux-64", URL: "https://x/requests.whl"},
		},
	})
	require.NoError(t, err)

	calls := readCalls(t, logPath)
	require.Len(t, calls, 2)
	assert.Contains(t, calls[0], "conda create --yes --quiet --prefix "+prefix+" --file ")
	assert.Contains(t, calls[0], "CONDARC=/p/.condarc CONDA_SUBDIR=linux-64")
	assert.Contains(t, calls[1], "conda run --prefix "+prefix+" python -m pip install --no-deps -r ")
}

func TestClient_Install_CondaOnly(t *testing.T) {
	client, logPath := newClient(t, "ok", "")

	err := client.Install(context.Background(), ports.InstallRequest{
		Prefix:   filepath.Join(t.TempDir(), "default"),
		Platform: "osx-64",
		Packages: []domain.LockedPackage{{Name: "python", Manager: "conda", Platform: "osx-64", URL: "u"}},
	})
	require.NoError(t, err)
	calls := readCalls(t, logPath)
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0], "CONDA_SUBDIR=osx-64")
}

func TestClient_Install_Failure(t *testing.T) {
	client, _ := newClient(t, "fail", "")

	err := client.Install(context.Background(), ports.InstallRequest{
		Prefix:   filepath.Join(t.TempDir(), "default"),
		Platform: "linux-64",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInstallTransactionFailed)
	assert.ErrorIs(t, err, domain.ErrInstallFailed)
}

func TestClient_Remove(t *testing.T) {
	t.Run("removes prefix and leftovers", func(t *testing.T) {
		client, logPath := newClient(t, "ok", "")
		prefix := filepath.Join(t.TempDir(), "default")
		require.NoError(t, os.MkdirAll(filepath.Join(prefix, domain.MarkerDirName), domain.DirPerm))
		require.NoError(t, os.WriteFile(filepath.Join(prefix, domain.GitignoreFileName), []byte("*\n"), domain.FilePerm))

		require.NoError(t, client.Remove(context.Background(), prefix))

		_, err := os.Stat(prefix)
		assert.True(t, os.IsNotExist(err))
		calls := readCalls(t, logPath)
		require.Len(t, calls, 1)
		assert.Contains(t, calls[0], "conda env remove --yes --prefix "+prefix)
	})

	t.Run("missing prefix is a no-op", func(t *testing.T) {
		client, logPath := newClient(t, "fail", "")
		require.NoError(t, client.Remove(context.Background(), filepath.Join(t.TempDir(), "absent")))
		assert.Empty(t, readCalls(t, logPath))
	})

	t.Run("conda failure", func(t *testing.T) {
		client, _ := newClient(t, "fail", "")
		err := client.Remove(context.Background(), t.TempDir())
		assert.ErrorIs(t, err, domain.ErrRemoveFailed)
	})
}

func TestClient_Current(t *testing.T) {
	t.Run("subdir override", func(t *testing.T) {
		client, logPath := newClient(t, "fail", "linux-aarch64")
		platform, err := client.Current(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "linux-aarch64", platform)
		assert.Empty(t, readCalls(t, logPath))
	})

	t.Run("invalid override", func(t *testing.T) {
		client, _ := newClient(t, "ok", "amiga-68k")
		_, err := client.Current(context.Background())
		assert.ErrorIs(t, err, domain.ErrUnknownPlatform)
	})

	t.Run("reported by conda once", func(t *testing.T) {
		client, logPath := newClient(t, "ok", "")

		var wg sync.WaitGroup
		results := make([]string, 8)
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i], _ = client.Current(context.Background())
			}(i)
		}
		wg.Wait()

		for _, got := range results {
			assert.Equal(t, "osx-arm64", got)
		}
		platform, err := client.Current(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "osx-arm64", platform)
		assert.Len(t, readCalls(t, logPath), 1)
	})

	t.Run("falls back to the Go runtime", func(t *testing.T) {
		client, _ := newClient(t, "fail", "")
		platform, err := client.Current(context.Background())
		if err != nil {
			assert.ErrorIs(t, err, domain.ErrUnknownPlatform)
			return
		}
		assert.NoError(t, domain.ValidatePlatform(platform))
	})
}

func TestClient_Locate(t *testing.T) {
	client, _ := newClient(t, "ok", "")
	ctx := context.Background()

	prefix, err := client.Locate(ctx, "tools")
	require.NoError(t, err)
	assert.Equal(t, "/opt/conda/envs/tools", prefix)

	prefix, err = client.Locate(ctx, "data")
	require.NoError(t, err)
	assert.Equal(t, "/home/u/.conda/envs/data", prefix)

	prefix, err = client.Locate(ctx, "base")
	require.NoError(t, err)
	assert.Equal(t, "/opt/conda", prefix)

	_, err = client.Locate(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrExternalEnvironmentNotFound)
}

func TestClient_LocatePrefix(t *testing.T) {
	client, logPath := newClient(t, "fail", "")
	ctx := context.Background()

	env := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(env, domain.MarkerDirName), domain.DirPerm))

	prefix, err := client.Locate(ctx, env)
	require.NoError(t, err)
	assert.Equal(t, env, prefix)

	_, err = client.Locate(ctx, t.TempDir())
	assert.ErrorIs(t, err, domain.ErrExternalEnvironmentNotFound)
	assert.Empty(t, readCalls(t, logPath))
}
