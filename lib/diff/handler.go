package diff

// Handler computes the changes for one kind of schema object and registers
// them with the context. BuildCommands must be safe to call more than once per
// context; a repeated call replaces the commands of the first.
type Handler interface {
	Name() string
	BuildCommands(*Context) error
}

// DefaultHandlers returns the handlers a diff runs, in the order it runs them.
func DefaultHandlers() []Handler {
	return []Handler{
		&TableHandler{},
		NewViewHandler(),
		NewProcedureHandler(),
	}
}
