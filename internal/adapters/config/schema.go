package config

import (
	"gopkg.in/yaml.v3"

	"go.trai.ch/conda-project/internal/core/domain"
	"go.trai.ch/zerr"
)

// ProjectDocument represents the structure of conda-project.yml.
type ProjectDocument struct {
	Name         string              `yaml:"name"`
	Environments EnvironmentsSection `yaml:"environments"`
	Variables    VariablesSection    `yaml:"variables,omitempty"`
	Commands     CommandsSection     `yaml:"commands,omitempty"`
}

// EnvironmentEntry is one named environment in declaration order.
type EnvironmentEntry struct {
	Name    string
	Sources []string
}

// EnvironmentsSection preserves the declaration order of the environments mapping.
type EnvironmentsSection []EnvironmentEntry

// UnmarshalYAML decodes a mapping of environment name to source file list.
func (s *EnvironmentsSection) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return zerr.With(zerr.New("environments must be a mapping"), "line", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		var sources []string
		if err := node.Content[i+1].Decode(&sources); err != nil {
			return zerr.With(zerr.Wrap(err, "environment sources must be a list"), "environment", node.Content[i].Value)
		}
		*s = append(*s, EnvironmentEntry{Name: node.Content[i].Value, Sources: sources})
	}
	return nil
}

// MarshalYAML encodes the environments as an ordered mapping.
func (s EnvironmentsSection) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, env := range s {
		var value yaml.Node
		if err := value.Encode(env.Sources); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, stringNode(env.Name), &value)
	}
	return node, nil
}

// VariableEntry is one declared variable. Default is nil for required variables.
type VariableEntry struct {
	Name    string
	Default *string
}

// VariablesSection preserves declaration order and distinguishes null defaults from empty strings.
type VariablesSection []VariableEntry

// UnmarshalYAML decodes a mapping of variable name to optional scalar default.
func (s *VariablesSection) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return zerr.With(zerr.New("variables must be a mapping"), "line", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		value, err := scalarOrNull(node.Content[i+1])
		if err != nil {
			return zerr.With(err, "variable", name)
		}
		*s = append(*s, VariableEntry{Name: name, Default: value})
	}
	return nil
}

// MarshalYAML encodes the variables as an ordered mapping with null for required variables.
func (s VariablesSection) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, v := range s {
		value := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: ""}
		if v.Default != nil {
			value = stringNode(*v.Default)
		}
		node.Content = append(node.Content, stringNode(v.Name), value)
	}
	return node, nil
}

// CommandEntry is one command in declaration order, normalized from the short or long form.
type CommandEntry struct {
	Name        string
	Cmd         string
	Environment string
	Variables   VariablesSection
}

type commandLongForm struct {
	Cmd         string           `yaml:"cmd"`
	Environment string           `yaml:"environment"`
	Variables   VariablesSection `yaml:"variables"`
}

// CommandsSection preserves the declaration order of the commands mapping.
type CommandsSection []CommandEntry

// UnmarshalYAML decodes commands given either as a bare string or as a mapping.
func (s *CommandsSection) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return zerr.With(zerr.New("commands must be a mapping"), "line", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		value := node.Content[i+1]

		entry := CommandEntry{Name: name}
		switch value.Kind {
		case yaml.ScalarNode:
			entry.Cmd = value.Value
		case yaml.MappingNode:
			var long commandLongForm
			if err := value.Decode(&long); err != nil {
				return zerr.With(zerr.Wrap(err, "invalid command"), "command", name)
			}
			entry.Cmd = long.Cmd
			entry.Environment = long.Environment
			entry.Variables = long.Variables
		default:
			return zerr.With(zerr.New("command must be a string or a mapping"), "command", name)
		}
		*s = append(*s, entry)
	}
	return nil
}

// MarshalYAML writes the short form when a command has no environment or variables.
func (s CommandsSection) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, c := range s {
		if c.Environment == "" && len(c.Variables) == 0 {
			node.Content = append(node.Content, stringNode(c.Name), stringNode(c.Cmd))
			continue
		}
		var value yaml.Node
		if err := value.Encode(commandLongForm{Cmd: c.Cmd, Environment: c.Environment, Variables: c.Variables}); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, stringNode(c.Name), &value)
	}
	return node, nil
}

// EnvironmentFile represents the structure of an environment declaration file.
type EnvironmentFile struct {
	Name         string            `yaml:"name,omitempty"`
	Channels     []string          `yaml:"channels,omitempty"`
	Dependencies DependencyList    `yaml:"dependencies"`
	Platforms    []string          `yaml:"platforms,omitempty"`
	Variables    map[string]string `yaml:"variables,omitempty"`
}

// DependencyList holds conda dependencies and the optional pip section.
type DependencyList struct {
	Conda []string
	Pip   []string
	// HasPip records that a pip mapping was present, even if empty.
	HasPip bool
}

// UnmarshalYAML decodes a list of strings with at most one {pip: [...]} mapping.
func (d *DependencyList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return zerr.With(zerr.New("dependencies must be a list"), "line", node.Line)
	}
	for _, item := range node.Content {
		switch item.Kind {
		case yaml.ScalarNode:
			d.Conda = append(d.Conda, item.Value)
		case yaml.MappingNode:
			if d.HasPip || len(item.Content) != 2 || item.Content[0].Value != domain.PipManager {
				return zerr.With(zerr.Wrap(domain.ErrInvalidDependency, "only a single pip mapping is allowed"), "line", item.Line)
			}
			var pip []string
			if err := item.Content[1].Decode(&pip); err != nil {
				return zerr.With(zerr.Wrap(err, "pip dependencies must be a list"), "line", item.Line)
			}
			d.Pip = pip
			d.HasPip = true
		default:
			return zerr.With(zerr.Wrap(domain.ErrInvalidDependency, "unexpected dependency entry"), "line", item.Line)
		}
	}
	return nil
}

// MarshalYAML encodes conda dependencies followed by the pip mapping.
func (d DependencyList) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode}
	for _, dep := range d.Conda {
		node.Content = append(node.Content, stringNode(dep))
	}
	if d.HasPip || len(d.Pip) > 0 {
		pip := &yaml.Node{Kind: yaml.SequenceNode}
		for _, dep := range d.Pip {
			pip.Content = append(pip.Content, stringNode(dep))
		}
		node.Content = append(node.Content, &yaml.Node{
			Kind:    yaml.MappingNode,
			Content: []*yaml.Node{stringNode("pip"), pip},
		})
	}
	return node, nil
}

func stringNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func scalarOrNull(node *yaml.Node) (*string, error) {
	if node.Kind != yaml.ScalarNode {
		return nil, zerr.With(zerr.New("variable default must be a scalar"), "line", node.Line)
	}
	if node.ShortTag() == "!!null" {
		return nil, nil
	}
	value := node.Value
	return &value, nil
}
