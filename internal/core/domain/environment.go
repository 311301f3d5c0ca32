package domain

import "slices"

// PipManager names the pip namespace inside dependency lists.
const PipManager = "pip"

// SourceFile is one parsed environment declaration file.
type SourceFile struct {
	// Path is the absolute path of the file.
	Path         string
	Name         string
	Channels     []string
	Dependencies []string
	Pip          []string
	Platforms    []string
	Variables    map[string]string
}

// EnvironmentSpec is the effective declaration of one environment, layered from
// its source files in declared order.
type EnvironmentSpec struct {
	Name    string
	Sources []SourceFile
	// Channels is the ordered, de-duplicated union of all source channels.
	Channels []string
	// Platforms is the ordered, de-duplicated union of all source platforms.
	Platforms []string
	// ChannelsDefaulted is set when no source declared channels and DefaultChannel was used.
	ChannelsDefaulted bool
	// PlatformsDefaulted is set when no source declared platforms and the default set was used.
	PlatformsDefaulted bool
}

// NewEnvironmentSpec layers sources into an EnvironmentSpec. currentPlatform is
// appended to the default platform set when no source declares platforms.
func NewEnvironmentSpec(name string, sources []SourceFile, currentPlatform string) *EnvironmentSpec {
	spec := &EnvironmentSpec{
		Name:    name,
		Sources: sources,
	}

	for i := range sources {
		spec.Channels = appendUnique(spec.Channels, sources[i].Channels...)
		spec.Platforms = appendUnique(spec.Platforms, sources[i].Platforms...)
	}

	if len(spec.Channels) == 0 {
		spec.Channels = []string{DefaultChannel}
		spec.ChannelsDefaulted = true
	}
	if len(spec.Platforms) == 0 {
		spec.Platforms = DefaultPlatformsFor(currentPlatform)
		spec.PlatformsDefaulted = true
	}
	return spec
}

// SourcePaths returns the source file paths in layering order.
func (s *EnvironmentSpec) SourcePaths() []string {
	paths := make([]string, 0, len(s.Sources))
	for i := range s.Sources {
		paths = append(paths, s.Sources[i].Path)
	}
	return paths
}

// HasPlatform reports whether platform is one of the spec's target platforms.
func (s *EnvironmentSpec) HasPlatform(platform string) bool {
	return slices.Contains(s.Platforms, platform)
}

func appendUnique(dst []string, values ...string) []string {
	for _, v := range values {
		if v == "" || slices.Contains(dst, v) {
			continue
		}
		dst = append(dst, v)
	}
	return dst
}
