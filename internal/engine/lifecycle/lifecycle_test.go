package lifecycle_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/conda-project/internal/adapters/fs"
	"go.trai.ch/conda-project/internal/adapters/store"
	"go.trai.ch/conda-project/internal/adapters/telemetry"
	"go.trai.ch/conda-project/internal/core/domain"
	"go.trai.ch/conda-project/internal/core/ports"
	"go.trai.ch/conda-project/internal/core/ports/mocks"
	"go.trai.ch/conda-project/internal/engine/lifecycle"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

var installedAt = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

type fixture struct {
	repo      *mocks.MockProjectRepository
	platforms *mocks.MockPlatformDetector
	solver    *mocks.MockDependencySolver
	packages  *mocks.MockPackageInstaller

	locks   *store.LockStore
	markers *store.MarkerStore
	hasher  *fs.Hasher

	locker    *lifecycle.Locker
	installer *lifecycle.Installer

	project *domain.Project
	env     *domain.Environment
	spec    *domain.EnvironmentSpec

	mu    sync.Mutex
	infos []string
	warns []string
}

func newFixture(t *testing.T, current string) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	root := t.TempDir()

	f := &fixture{
		repo:      mocks.NewMockProjectRepository(ctrl),
		platforms: mocks.NewMockPlatformDetector(ctrl),
		solver:    mocks.NewMockDependencySolver(ctrl),
		packages:  mocks.NewMockPackageInstaller(ctrl),
		locks:     store.NewLockStore(),
		markers:   store.NewMarkerStore(),
		hasher:    fs.NewHasher(),
		project: &domain.Project{
			Name:    "demo",
			Root:    root,
			Condarc: filepath.Join(root, ".condarc"),
		},
		env: &domain.Environment{Name: "default", Sources: []string{filepath.Join(root, "environment.yml")}},
	}
	f.spec = &domain.EnvironmentSpec{
		Name: "default",
		Sources: []domain.SourceFile{{
			Path:         filepath.Join(root, "environment.yml"),
			Channels:     []string{"conda-forge"},
			Dependencies: []string{"python=3.11"},
		}},
		Channels:  []string{"conda-forge"},
		Platforms: []string{"linux-64", "osx-arm64"},
	}

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).Do(func(msg string) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.infos = append(f.infos, msg)
	}).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).Do(func(msg string) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.warns = append(f.warns, msg)
	}).AnyTimes()
	log.EXPECT().Debug(gomock.Any()).AnyTimes()

	f.platforms.EXPECT().Current(gomock.Any()).Return(current, nil).AnyTimes()
	f.repo.EXPECT().LoadEnvironment(f.env, gomock.Any()).DoAndReturn(
		func(*domain.Environment, string) (*domain.EnvironmentSpec, error) { return f.spec, nil },
	).AnyTimes()

	tracer := telemetry.NewNoOpTracer()
	f.locker = lifecycle.NewLocker(f.repo, f.platforms, f.hasher, f.locks, f.solver, tracer, log)
	f.installer = lifecycle.NewInstaller(
		f.locker, f.packages, f.markers, fs.NewResolver(log), f.platforms, domain.EnvsDirName, tracer, log,
	).WithClock(func() time.Time { return installedAt })
	return f
}

func (f *fixture) lockPath() string {
	return filepath.Join(f.project.Root, domain.LockFileName(f.env.Name))
}

func (f *fixture) prefix() string {
	return filepath.Join(f.project.Root, domain.EnvsDirName, f.env.Name)
}

func (f *fixture) fingerprint(t *testing.T, platform string) string {
	t.Helper()
	fp, err := f.hasher.Fingerprint(f.spec, platform)
	require.NoError(t, err)
	return fp
}

func (f *fixture) loggedInfo(msg string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.infos {
		if m == msg {
			return true
		}
	}
	return false
}

func solved(platform string) []domain.LockedPackage {
	return []domain.LockedPackage{
		{
			Name: "python", Version: "3.11.9", Manager: "conda", Platform: platform,
			URL: "https://conda.anaconda.org/conda-forge/" + platform + "/python-3.11.9-0.conda", MD5: "abc",
		},
		{
			Name: "requests", Version: "2.32.0", Manager: "pip", Platform: platform,
			URL: "https://files.pythonhosted.org/requests-2.32.0-py3-none-any.whl", SHA256: "def",
		},
	}
}

// expectSolves makes the solver answer every platform of the fixture spec.
func (f *fixture) expectSolves(times int) {
	f.solver.EXPECT().Solve(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req ports.SolveRequest) ([]domain.LockedPackage, error) {
			return solved(req.Platform), nil
		},
	).Times(times)
}

// writeCurrentLock writes a lock artifact matching the fixture spec.
func (f *fixture) writeCurrentLock(t *testing.T) *domain.LockArtifact {
	t.Helper()
	artifact := &domain.LockArtifact{
		Version:     domain.LockVersion,
		ContentHash: map[string]string{},
		Channels:    f.spec.Channels,
		Platforms:   f.spec.Platforms,
		Sources:     []string{"environment.yml"},
	}
	for _, platform := range f.spec.Platforms {
		artifact.ContentHash[platform] = f.fingerprint(t, platform)
		artifact.Packages = append(artifact.Packages, solved(platform)...)
	}
	require.NoError(t, f.locks.Save(f.lockPath(), artifact))
	return artifact
}

func TestIsStale(t *testing.T) {
	platforms := []string{"linux-64", "osx-arm64"}
	current := map[string]string{"linux-64": "aaa", "osx-arm64": "bbb"}
	artifact := func(hashes map[string]string, locked ...string) *domain.LockArtifact {
		a := &domain.LockArtifact{ContentHash: hashes}
		for _, p := range locked {
			a.Packages = append(a.Packages, domain.LockedPackage{Name: "python", Platform: p})
		}
		return a
	}

	tests := []struct {
		name     string
		artifact *domain.LockArtifact
		want     bool
	}{
		{"no artifact", nil, true},
		{"current", artifact(current, "linux-64", "osx-arm64"), false},
		{"platform missing", artifact(current, "linux-64"), true},
		{"fingerprint changed", artifact(map[string]string{"linux-64": "aaa", "osx-arm64": "old"}, "linux-64", "osx-arm64"), true},
		{"fingerprint not recorded", artifact(map[string]string{"linux-64": "aaa"}, "linux-64", "osx-arm64"), true},
		{"extra platform locked", artifact(
			map[string]string{"linux-64": "aaa", "osx-arm64": "bbb", "win-64": "ccc"},
			"linux-64", "osx-arm64", "win-64",
		), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lifecycle.IsStale(platforms, current, tt.artifact))
		})
	}
}

func TestLocker_Lock_WritesArtifact(t *testing.T) {
	f := newFixture(t, "linux-64")

	var requests []ports.SolveRequest
	var mu sync.Mutex
	f.solver.EXPECT().Solve(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req ports.SolveRequest) ([]domain.LockedPackage, error) {
			mu.Lock()
			requests = append(requests, req)
			mu.Unlock()
			return solved(req.Platform), nil
		},
	).Times(2)

	state, err := f.locker.Lock(context.Background(), f.project, f.env, false)
	require.NoError(t, err)
	assert.False(t, state.Stale)

	require.Len(t, requests, 2)
	for _, req := range requests {
		assert.Equal(t, "default", req.Environment)
		assert.Equal(t, []string{filepath.Join(f.project.Root, "environment.yml")}, req.Sources)
		assert.Equal(t, []string{"conda-forge"}, req.Channels)
		assert.Equal(t, f.project.Condarc, req.Condarc)
	}

	saved, err := f.locks.Load(f.lockPath())
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, domain.LockVersion, saved.Version)
	assert.Equal(t, []string{"environment.yml"}, saved.Sources)
	assert.Equal(t, []string{"linux-64", "osx-arm64"}, saved.Platforms)
	assert.Equal(t, []string{"linux-64", "osx-arm64"}, saved.LockedPlatforms())
	assert.Equal(t, f.fingerprint(t, "linux-64"), saved.Fingerprint("linux-64"))
	assert.Equal(t, f.fingerprint(t, "osx-arm64"), saved.Fingerprint("osx-arm64"))
	assert.Len(t, saved.PackagesFor("osx-arm64"), 2)
}

func TestLocker_Lock_Idempotent(t *testing.T) {
	f := newFixture(t, "linux-64")
	f.expectSolves(2)

	first, err := f.locker.Lock(context.Background(), f.project, f.env, false)
	require.NoError(t, err)

	second, err := f.locker.Lock(context.Background(), f.project, f.env, false)
	require.NoError(t, err)

	assert.Equal(t, first.Artifact.ContentHash, second.Artifact.ContentHash)
	assert.True(t, f.loggedInfo("environment default is already locked"))
}

func TestLocker_Lock_RelocksWhenSpecChanges(t *testing.T) {
	f := newFixture(t, "linux-64")
	f.writeCurrentLock(t)
	f.expectSolves(2)

	f.spec.Sources[0].Dependencies = []string{"python=3.12"}

	state, err := f.locker.Lock(context.Background(), f.project, f.env, false)
	require.NoError(t, err)
	assert.Equal(t, f.fingerprint(t, "linux-64"), state.Artifact.Fingerprint("linux-64"))
}

func TestLocker_Lock_Force(t *testing.T) {
	f := newFixture(t, "linux-64")
	f.writeCurrentLock(t)
	f.expectSolves(2)

	_, err := f.locker.Lock(context.Background(), f.project, f.env, true)
	require.NoError(t, err)
}

func TestLocker_Lock_PartialFailureWritesNothing(t *testing.T) {
	f := newFixture(t, "linux-64")
	f.solver.EXPECT().Solve(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req ports.SolveRequest) ([]domain.LockedPackage, error) {
			if req.Platform == "osx-arm64" {
				return nil, zerr.With(zerr.Wrap(domain.ErrSolveFailed, "PackagesNotFoundError"), "platform", req.Platform)
			}
			return solved(req.Platform), nil
		},
	).Times(2)

	_, err := f.locker.Lock(context.Background(), f.project, f.env, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLockFailed)
	assert.ErrorIs(t, err, domain.ErrSolveFailed)
	assert.Contains(t, err.Error(), "osx-arm64")

	_, statErr := os.Stat(f.lockPath())
	assert.True(t, os.IsNotExist(statErr))
}

func TestLocker_Lock_FailureKeepsPreviousArtifact(t *testing.T) {
	f := newFixture(t, "linux-64")
	previous := f.writeCurrentLock(t)
	f.solver.EXPECT().Solve(gomock.Any(), gomock.Any()).Return(nil, os.ErrDeadlineExceeded).Times(2)

	_, err := f.locker.Lock(context.Background(), f.project, f.env, true)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSolveFailed)

	kept, err := f.locks.Load(f.lockPath())
	require.NoError(t, err)
	assert.Equal(t, previous.ContentHash, kept.ContentHash)
}

func TestLocker_State(t *testing.T) {
	f := newFixture(t, "linux-64")

	state, err := f.locker.State(context.Background(), f.project, f.env)
	require.NoError(t, err)
	assert.Nil(t, state.Artifact)
	assert.True(t, state.Stale)

	f.writeCurrentLock(t)
	state, err = f.locker.State(context.Background(), f.project, f.env)
	require.NoError(t, err)
	assert.NotNil(t, state.Artifact)
	assert.False(t, state.Stale)
}

func TestLocker_Lock_ReplacesUnreadableArtifact(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unsupported version", "version: 2\nmetadata: {}\n"},
		{"malformed document", "version: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, "linux-64")
			require.NoError(t, os.WriteFile(f.lockPath(), []byte(tt.content), domain.FilePerm))

			state, err := f.locker.State(context.Background(), f.project, f.env)
			require.NoError(t, err)
			assert.Nil(t, state.Artifact)
			assert.True(t, state.Stale)

			f.expectSolves(2)
			state, err = f.locker.Lock(context.Background(), f.project, f.env, true)
			require.NoError(t, err)
			assert.False(t, state.Stale)

			saved, err := f.locks.Load(f.lockPath())
			require.NoError(t, err)
			assert.Equal(t, domain.LockVersion, saved.Version)

			f.mu.Lock()
			defer f.mu.Unlock()
			require.NotEmpty(t, f.warns)
			assert.Contains(t, f.warns[0], "ignoring unreadable lock file")
		})
	}
}

func TestLocker_State_ReadFailure(t *testing.T) {
	f := newFixture(t, "linux-64")
	require.NoError(t, os.Mkdir(f.lockPath(), domain.DirPerm))

	_, err := f.locker.State(context.Background(), f.project, f.env)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLockReadFailed)
}
