package lifecycle

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/conda-project/internal/core/domain"
	"go.trai.ch/conda-project/internal/core/ports"
	"go.trai.ch/zerr"
)

// InstallOptions control a single install.
type InstallOptions struct {
	// Force reinstalls even when the prefix is current.
	Force bool
	// AsPlatform installs for a platform other than the host's.
	AsPlatform string
}

// InstallResult is the outcome of Install.
type InstallResult struct {
	Installed *domain.InstalledEnvironment
	Spec      *domain.EnvironmentSpec
	// Changed is false when the prefix was already current.
	Changed bool
}

// InstallStatus describes an environment without changing it.
type InstallStatus struct {
	Prefix    string
	Platform  string
	Locked    bool
	LockStale bool
	Installed bool
	Current   bool
}

// Installer materializes environments from their lock artifacts.
type Installer struct {
	locker    *Locker
	installer ports.PackageInstaller
	markers   ports.MarkerStore
	resolver  ports.InstallRootResolver
	platforms ports.PlatformDetector
	envsPath  string
	tracer    ports.Tracer
	logger    ports.Logger
	now       func() time.Time
}

// NewInstaller creates a new Installer. envsPath is the install-root search path.
func NewInstaller(
	locker *Locker,
	installer ports.PackageInstaller,
	markers ports.MarkerStore,
	resolver ports.InstallRootResolver,
	platforms ports.PlatformDetector,
	envsPath string,
	tracer ports.Tracer,
	logger ports.Logger,
) *Installer {
	return &Installer{
		locker:    locker,
		installer: installer,
		markers:   markers,
		resolver:  resolver,
		platforms: platforms,
		envsPath:  envsPath,
		tracer:    tracer,
		logger:    logger,
		now:       time.Now,
	}
}

// Locker returns the Locker used to keep lock artifacts current.
func (i *Installer) Locker() *Locker {
	return i.locker
}

// Prefix returns the install prefix of env.
func (i *Installer) Prefix(project *domain.Project, env *domain.Environment) (string, error) {
	root, err := i.resolver.ResolveInstallRoot(project.Root, env.Name, i.envsPath)
	if err != nil {
		return "", err
	}
	return filepath.Join(root, env.Name), nil
}

// Install locks env if needed and installs it for the target platform. A prefix
// that was built from the current fingerprint is left alone unless opts.Force
// is set. A failed install restores the previous prefix.
func (i *Installer) Install(
	ctx context.Context,
	project *domain.Project,
	env *domain.Environment,
	opts InstallOptions,
) (*InstallResult, error) {
	ctx, span := i.tracer.Start(ctx, "install "+env.Name)
	defer span.End()
	span.SetAttribute("environment", env.Name)

	result, err := i.install(ctx, project, env, opts)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttribute("changed", result.Changed)
	return result, nil
}

func (i *Installer) install(
	ctx context.Context,
	project *domain.Project,
	env *domain.Environment,
	opts InstallOptions,
) (*InstallResult, error) {
	lock, err := i.locker.Lock(ctx, project, env, false)
	if err != nil {
		return nil, err
	}

	prefix, err := i.Prefix(project, env)
	if err != nil {
		return nil, err
	}

	platform, current, err := i.targetPlatform(ctx, prefix, opts.AsPlatform)
	if err != nil {
		return nil, err
	}

	if !lock.Artifact.HasPlatform(platform) {
		mismatch := zerr.Wrap(domain.ErrPlatformMismatch, "relock with this platform in the platforms list")
		mismatch = zerr.With(mismatch, "environment", env.Name)
		mismatch = zerr.With(mismatch, "platform", platform)
		return nil, zerr.With(mismatch, "locked_platforms", strings.Join(lock.Artifact.LockedPlatforms(), ", "))
	}
	fingerprint := lock.Artifact.Fingerprint(platform)

	if !opts.Force {
		marker, err := i.markers.ReadMarker(prefix)
		if err != nil {
			return nil, err
		}
		if marker.IsCurrent(platform, fingerprint) {
			i.logger.Info("environment " + env.Name + " is already installed")
			return &InstallResult{Installed: marker, Spec: lock.Spec}, nil
		}
	}

	i.logger.Info("installing environment " + env.Name + " for " + platform + " into " + prefix)

	req := ports.InstallRequest{
		Prefix:   prefix,
		Platform: platform,
		Packages: lock.Artifact.PackagesFor(platform),
		Condarc:  project.Condarc,
	}
	if err := i.materialize(ctx, req); err != nil {
		return nil, zerr.With(err, "environment", env.Name)
	}

	if err := os.WriteFile(filepath.Join(prefix, domain.GitignoreFileName), []byte("*\n"), domain.FilePerm); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrPrefixPrepareFailed, err.Error()), "prefix", prefix)
	}
	if platform != current {
		if err := i.markers.WriteSubdir(prefix, platform); err != nil {
			return nil, err
		}
	}

	installed := &domain.InstalledEnvironment{
		Environment: env.Name,
		Prefix:      prefix,
		Platform:    platform,
		Fingerprint: fingerprint,
		InstalledAt: i.now(),
	}
	if err := i.markers.WriteMarker(installed); err != nil {
		return nil, err
	}

	i.logger.Info("installed environment " + env.Name)
	return &InstallResult{Installed: installed, Spec: lock.Spec, Changed: true}, nil
}

// Status reports the lock and install state of env without solving or installing.
func (i *Installer) Status(ctx context.Context, project *domain.Project, env *domain.Environment) (*InstallStatus, error) {
	lock, err := i.locker.State(ctx, project, env)
	if err != nil {
		return nil, err
	}

	prefix, err := i.Prefix(project, env)
	if err != nil {
		return nil, err
	}

	platform, _, err := i.targetPlatform(ctx, prefix, "")
	if err != nil {
		return nil, err
	}

	marker, err := i.markers.ReadMarker(prefix)
	if err != nil {
		return nil, err
	}

	status := &InstallStatus{
		Prefix:    prefix,
		Platform:  platform,
		Locked:    lock.Artifact != nil,
		LockStale: lock.Stale,
		Installed: marker != nil,
	}
	if lock.Artifact != nil && !lock.Stale {
		status.Current = marker.IsCurrent(platform, lock.Artifact.Fingerprint(platform))
	}
	return status, nil
}

// Clean removes the installed prefix of env.
func (i *Installer) Clean(ctx context.Context, project *domain.Project, env *domain.Environment) error {
	ctx, span := i.tracer.Start(ctx, "clean "+env.Name)
	defer span.End()

	prefix, err := i.Prefix(project, env)
	if err != nil {
		span.RecordError(err)
		return err
	}

	if err := i.installer.Remove(ctx, prefix); err != nil {
		err = zerr.With(err, "environment", env.Name)
		span.RecordError(err)
		return err
	}
	i.logger.Info("removed environment " + env.Name)
	return nil
}

// targetPlatform picks the platform to install: the explicit choice, then the
// subdir recorded in the prefix, then the host platform.
func (i *Installer) targetPlatform(ctx context.Context, prefix, asPlatform string) (platform, current string, err error) {
	current, err = i.platforms.Current(ctx)
	if err != nil {
		return "", "", err
	}

	if asPlatform != "" {
		if err := domain.ValidatePlatform(asPlatform); err != nil {
			return "", "", err
		}
		return asPlatform, current, nil
	}

	recorded, err := i.markers.ReadSubdir(prefix)
	if err != nil {
		return "", "", err
	}
	if recorded != "" {
		return recorded, current, nil
	}
	return current, current, nil
}

// materialize runs the install transaction. The existing prefix is moved aside
// and only dropped once the new one is in place.
func (i *Installer) materialize(ctx context.Context, req ports.InstallRequest) error {
	backup := req.Prefix + domain.BackupSuffix
	if err := recoverBackup(req.Prefix, backup); err != nil {
		return err
	}

	hadPrevious := exists(req.Prefix)
	if hadPrevious {
		if err := os.Rename(req.Prefix, backup); err != nil {
			return zerr.With(zerr.Wrap(domain.ErrPrefixPrepareFailed, err.Error()), "prefix", req.Prefix)
		}
	} else if err := os.MkdirAll(filepath.Dir(req.Prefix), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrPrefixPrepareFailed, err.Error()), "prefix", req.Prefix)
	}

	installErr := i.installer.Install(ctx, req)
	if installErr == nil {
		if hadPrevious {
			if err := os.RemoveAll(backup); err != nil {
				i.logger.Warn("could not remove " + backup + ": " + err.Error())
			}
		}
		return nil
	}

	if err := os.RemoveAll(req.Prefix); err != nil {
		i.logger.Warn("could not remove partial install " + req.Prefix + ": " + err.Error())
	}
	if hadPrevious {
		if err := os.Rename(backup, req.Prefix); err != nil {
			restoreErr := zerr.Wrap(domain.ErrPrefixPrepareFailed, "failed to restore previous environment: "+err.Error())
			return errors.Join(installErr, zerr.With(restoreErr, "backup", backup))
		}
	}
	return installErr
}

// recoverBackup deals with a backup left by an interrupted install: it is
// restored when the prefix is gone and dropped otherwise.
func recoverBackup(prefix, backup string) error {
	if !exists(backup) {
		return nil
	}
	if !exists(prefix) {
		if err := os.Rename(backup, prefix); err != nil {
			return zerr.With(zerr.Wrap(domain.ErrPrefixPrepareFailed, err.Error()), "prefix", prefix)
		}
		return nil
	}
	if err := os.RemoveAll(backup); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrPrefixPrepareFailed, err.Error()), "prefix", backup)
	}
	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}
