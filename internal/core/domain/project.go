package domain

import (
	"slices"

	"go.trai.ch/zerr"
)

// Project is the in-memory model of a conda project.
type Project struct {
	// Name is the project name.
	Name string
	// Root is the absolute project directory. Relative paths resolve against it.
	Root string
	// DocumentPath is the project document the model was loaded from.
	// It is empty for projects defined by a bare environment file.
	DocumentPath string
	// Environments is ordered; the first entry is the default environment.
	Environments []*Environment
	// Variables maps a variable name to its default. A nil default marks the variable as required.
	Variables map[string]*string
	// Commands is ordered in declaration order.
	Commands []*Command
	// Condarc is the absolute path of the project-scoped .condarc, or empty when absent.
	Condarc string
}

// Environment is a named, declared environment made of one or more source files.
type Environment struct {
	Name string
	// Sources are absolute paths of the environment files, in layering order.
	Sources []string
}

// Command is a named command line bound to an environment.
type Command struct {
	Name string
	Cmd  string
	// Environment is the name of the environment to run in. Empty means the project default.
	Environment string
	// Variables overlays the project variables. A nil value marks the variable as required.
	Variables map[string]*string
}

// DefaultEnvironment returns the first declared environment.
func (p *Project) DefaultEnvironment() (*Environment, error) {
	if len(p.Environments) == 0 {
		return nil, ErrNoEnvironments
	}
	return p.Environments[0], nil
}

// Environment returns the declared environment with the given name.
// An empty name selects the default environment.
func (p *Project) Environment(name string) (*Environment, error) {
	if name == "" {
		return p.DefaultEnvironment()
	}
	for _, env := range p.Environments {
		if env.Name == name {
			return env, nil
		}
	}
	return nil, zerr.With(zerr.Wrap(ErrEnvironmentNotFound, "environment is not declared by the project"),
		"environment", name)
}

// EnvironmentNames returns the declared environment names in order.
func (p *Project) EnvironmentNames() []string {
	names := make([]string, 0, len(p.Environments))
	for _, env := range p.Environments {
		names = append(names, env.Name)
	}
	return names
}

// Command returns the declared command with the given name.
func (p *Project) Command(name string) (*Command, error) {
	for _, cmd := range p.Commands {
		if cmd.Name == name {
			return cmd, nil
		}
	}
	return nil, zerr.With(zerr.Wrap(ErrCommandNotFound, "command is not declared by the project"), "command", name)
}

// DefaultCommand returns the first declared command.
func (p *Project) DefaultCommand() (*Command, error) {
	if len(p.Commands) == 0 {
		return nil, ErrNoCommands
	}
	return p.Commands[0], nil
}

// Validate checks the cross references of the project model.
func (p *Project) Validate() error {
	if len(p.Environments) == 0 {
		return ErrNoEnvironments
	}

	seen := make(map[string]struct{}, len(p.Environments))
	for _, env := range p.Environments {
		if len(env.Sources) == 0 {
			return zerr.With(zerr.Wrap(ErrEmptyEnvironment, "invalid environment declaration"), "environment", env.Name)
		}
		if _, ok := seen[env.Name]; ok {
			return zerr.With(zerr.Wrap(ErrDuplicateEnvironment, "environment declared twice"), "environment", env.Name)
		}
		seen[env.Name] = struct{}{}
	}

	commands := make(map[string]struct{}, len(p.Commands))
	for _, cmd := range p.Commands {
		if _, ok := commands[cmd.Name]; ok {
			return zerr.With(zerr.Wrap(ErrDuplicateCommand, "command declared twice"), "command", cmd.Name)
		}
		commands[cmd.Name] = struct{}{}
		if cmd.Cmd == "" {
			return zerr.With(zerr.Wrap(ErrEmptyCommand, "invalid command declaration"), "command", cmd.Name)
		}
		if cmd.Environment == "" {
			continue
		}
		if _, ok := seen[cmd.Environment]; !ok {
			err := zerr.Wrap(ErrEnvironmentNotFound, "command references an undeclared environment")
			err = zerr.With(err, "command", cmd.Name)
			return zerr.With(err, "environment", cmd.Environment)
		}
	}
	return nil
}

// CommandNames returns the declared command names in order.
func (p *Project) CommandNames() []string {
	names := make([]string, 0, len(p.Commands))
	for _, cmd := range p.Commands {
		names = append(names, cmd.Name)
	}
	return names
}

// HasCommand reports whether a command with the given name is declared.
func (p *Project) HasCommand(name string) bool {
	return slices.Contains(p.CommandNames(), name)
}
