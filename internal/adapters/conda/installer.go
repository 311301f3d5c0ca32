package conda

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/conda-project/internal/core/domain"
	"go.trai.ch/conda-project/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.PackageInstaller = (*Client)(nil)

// Install creates req.Prefix from the explicit package list of req.Platform.
// Pip packages are installed afterwards without dependency resolution.
func (c *Client) Install(ctx context.Context, req ports.InstallRequest) error {
	workDir, err := os.MkdirTemp("", "conda-project-install-*")
	if err != nil {
		return zerr.Wrap(domain.ErrInstallTransactionFailed, err.Error())
	}
	defer func() { _ = os.RemoveAll(workDir) }()

	env := []string{"CONDA_SUBDIR=" + req.Platform}
	if req.Condarc != "" {
		env = append(env, "CONDARC="+req.Condarc)
	}

	explicit := filepath.Join(workDir, "explicit.txt")
	if err := os.WriteFile(explicit, []byte(RenderExplicit(req.Platform, req.Packages)), domain.PrivateFilePerm); err != nil {
		return zerr.Wrap(domain.ErrInstallTransactionFailed, err.Error())
	}

	if _, err := c.run(ctx, env, c.condaExe,
		"create", "--yes", "--quiet", "--prefix", req.Prefix, "--file", explicit); err != nil {
		return installError(err, req)
	}

	requirements := RenderPipRequirements(req.Platform, req.Packages)
	if requirements == "" {
		return nil
	}

	reqFile := filepath.Join(workDir, "requirements.txt")
	if err := os.WriteFile(reqFile, []byte(requirements), domain.PrivateFilePerm); err != nil {
		return zerr.Wrap(domain.ErrInstallTransactionFailed, err.Error())
	}
	if _, err := c.run(ctx, env, c.condaExe,
		"run", "--prefix", req.Prefix, "python", "-m", "pip", "install", "--no-deps", "-r", reqFile); err != nil {
		return installError(err, req)
	}
	return nil
}

// Remove deletes the environment at prefix. A missing prefix is not an error.
func (c *Client) Remove(ctx context.Context, prefix string) error {
	if _, err := os.Stat(prefix); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if _, err := c.run(ctx, nil, c.condaExe, "env", "remove", "--yes", "--prefix", prefix); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrRemoveFailed, err.Error()), "prefix", prefix)
	}
	// conda leaves files it does not own, such as the .gitignore and condarc.
	if err := os.RemoveAll(prefix); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrRemoveFailed, err.Error()), "prefix", prefix)
	}
	return nil
}

func installError(err error, req ports.InstallRequest) error {
	installErr := zerr.Wrap(domain.ErrInstallTransactionFailed, "conda could not create the environment")
	installErr = zerr.With(installErr, "prefix", req.Prefix)
	installErr = zerr.With(installErr, "platform", req.Platform)
	return zerr.With(installErr, "reason", err.Error())
}
