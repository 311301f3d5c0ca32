package conda

// WithCommand replaces the command builder of the client for tests.
func (c *Client) WithCommand(fn CommandFunc) *Client {
	c.command = fn
	return c
}

// WithCommand replaces the command builder of the solver for tests.
func (s *Solver) WithCommand(fn CommandFunc) *Solver {
	s.command = fn
	return s
}
