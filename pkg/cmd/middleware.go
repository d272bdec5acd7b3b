package cmd

// Middleware decides whether an invocation reaches the command, and may
// answer it instead. Access checks and throttling are middlewares.
type Middleware func(Command) Command

// Apply layers mws over c. The first middleware sees the invocation
// first: Apply(c, a, b) runs a, then b, then c.
func Apply(c Command, mws ...Middleware) Command {
	for i := len(mws) - 1; i >= 0; i-- {
		c = mws[i](c)
	}
	return c
}
