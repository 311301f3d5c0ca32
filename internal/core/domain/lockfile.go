package domain

import "slices"

// LockVersion is the lock artifact format version written by this tool.
const LockVersion = 1

// LockArtifact is the platform-pinned resolution of one environment.
// It is never patched; relocking replaces it wholesale.
type LockArtifact struct {
	Version int
	// ContentHash maps a platform to the fingerprint of the spec it was solved from.
	ContentHash map[string]string
	Channels    []string
	Platforms   []string
	// Sources are the source file paths relative to the project root.
	Sources  []string
	Packages []LockedPackage
}

// LockedPackage is a single fully resolved package for one platform.
type LockedPackage struct {
	Name     string
	Version  string
	Manager  string
	Platform string
	URL      string
	Build    string
	Channel  string
	Category string
	Optional bool
	MD5      string
	SHA256   string
}

// IsPip reports whether the package is installed by pip.
func (p *LockedPackage) IsPip() bool {
	return p.Manager == PipManager
}

// PackagesFor returns the packages resolved for platform, in artifact order.
func (a *LockArtifact) PackagesFor(platform string) []LockedPackage {
	var pkgs []LockedPackage
	for i := range a.Packages {
		if a.Packages[i].Platform == platform {
			pkgs = append(pkgs, a.Packages[i])
		}
	}
	return pkgs
}

// HasPlatform reports whether the artifact holds resolved packages for platform.
func (a *LockArtifact) HasPlatform(platform string) bool {
	for i := range a.Packages {
		if a.Packages[i].Platform == platform {
			return true
		}
	}
	return false
}

// Fingerprint returns the recorded fingerprint for platform, or an empty string.
func (a *LockArtifact) Fingerprint(platform string) string {
	if a.ContentHash == nil {
		return ""
	}
	return a.ContentHash[platform]
}

// LockedPlatforms returns the platforms that have resolved packages, in artifact order.
func (a *LockArtifact) LockedPlatforms() []string {
	var platforms []string
	for i := range a.Packages {
		if !slices.Contains(platforms, a.Packages[i].Platform) {
			platforms = append(platforms, a.Packages[i].Platform)
		}
	}
	return platforms
}
