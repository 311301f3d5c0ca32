package ports

// InstallRootResolver picks the directory that holds installed environment prefixes.
//
//go:generate mockgen -source=path_resolver.go -destination=mocks/mock_path_resolver.go -package=mocks
type InstallRootResolver interface {
	// ResolveInstallRoot returns the first writable entry of searchPath.
	// Relative entries are resolved against projectRoot.
	ResolveInstallRoot(projectRoot, envName, searchPath string) (string, error)
}
