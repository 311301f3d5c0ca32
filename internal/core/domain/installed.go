package domain

import "time"

// InstalledEnvironment is a materialized prefix together with the fingerprint it was built from.
type InstalledEnvironment struct {
	Environment string
	Prefix      string
	Platform    string
	Fingerprint string
	InstalledAt time.Time
}

// IsCurrent reports whether the installation was built from fingerprint on platform.
func (e *InstalledEnvironment) IsCurrent(platform, fingerprint string) bool {
	if e == nil || fingerprint == "" {
		return false
	}
	return e.Platform == platform && e.Fingerprint == fingerprint
}
