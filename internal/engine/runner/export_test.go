package runner

// WithEnviron replaces the source of the inherited process environment.
func (r *Runner) WithEnviron(environ func() []string) *Runner {
	r.environ = environ
	return r
}

// WithGOOS makes the runner build environments for goos.
func (r *Runner) WithGOOS(goos string) *Runner {
	r.goos = goos
	return r
}
