package magick

import (
	"fmt"
	"slices"
)

// Command is an immutable argument list for a raw invocation of an executable
type Command struct {
	path   string
	params []string
}

// NewCommand creates a command for the executable at path with no parameters
func NewCommand(path string) Command {
	return Command{path: path}
}

// AddParameter returns a copy of the command with value appended to its parameters
func (c Command) AddParameter(value string) Command {
	params := make([]string, len(c.params), len(c.params)+1)
	copy(params, c.params)
	return Command{
		path:   c.path,
		params: append(params, value),
	}
}

// Path returns the executable path
func (c Command) Path() string {
	return c.path
}

// Parameters returns a copy of the parameters without the executable path
func (c Command) Parameters() []string {
	return slices.Clone(c.params)
}

// Validate fails when the executable path is blank or no parameter was added
func (c Command) Validate() error {
	if isBlank(c.path) {
		return fmt.Errorf("%w: commandPath may not be specified", ErrMissingArgument)
	}
	if len(c.params) == 0 {
		return fmt.Errorf("%w: parameters may not be specified", ErrMissingArgument)
	}
	return nil
}

// Args returns a fresh argument vector: the executable path followed by the parameters
func (c Command) Args() []string {
	args := make([]string, 0, len(c.params)+1)
	args = append(args, c.path)
	return append(args, c.params...)
}

func (c Command) String() string {
	return fmt.Sprintf("commandPath:%s, parameters:%v", c.path, c.params)
}
