package commands

// PrepareError reports that a command could not be started: its project,
// environment or variables could not be prepared. Nothing was run.
type PrepareError struct {
	Err error
}

func (e *PrepareError) Error() string {
	return e.Err.Error()
}

func (e *PrepareError) Unwrap() error {
	return e.Err
}
