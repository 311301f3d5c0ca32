package conda

import (
	"context"
	"runtime"

	"go.trai.ch/conda-project/internal/core/domain"
	"go.trai.ch/conda-project/internal/core/ports"
)

var _ ports.PlatformDetector = (*Client)(nil)

// Current returns the platform of the host. CONDA_SUBDIR wins over conda's own
// report; when conda cannot be queried the platform is derived from the Go runtime.
func (c *Client) Current(ctx context.Context) (string, error) {
	if c.subdir != "" {
		if err := domain.ValidatePlatform(c.subdir); err != nil {
			return "", err
		}
		return c.subdir, nil
	}

	info, err := c.Info(ctx)
	if err == nil && info.Platform != "" {
		return info.Platform, nil
	}
	if err != nil {
		c.logger.Debug("conda info failed, using the Go runtime platform: " + err.Error())
	}
	return domain.PlatformFor(runtime.GOOS, runtime.GOARCH)
}
