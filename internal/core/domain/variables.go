package domain

import (
	"maps"
	"slices"
)

// VariableScopes holds the variable layers merged before a command runs,
// from lowest to highest precedence.
type VariableScopes struct {
	// Project holds project-level defaults. A nil value declares a required variable.
	Project map[string]*string
	// Command overlays the project defaults. A nil value makes the variable required again.
	Command map[string]*string
	// Dotenv holds the contents of the project .env file.
	Dotenv map[string]string
	// Shell is the environment of the invoking process.
	Shell map[string]string
}

// ResolveVariables merges scopes in precedence order. The result holds every
// declared or .env variable that has a value; variables without a value in any
// scope are returned sorted in missing. Shell values only apply to names already
// known from a lower scope, the rest of the shell is inherited by the child as is.
func ResolveVariables(scopes VariableScopes) (resolved map[string]string, missing []string) {
	merged := make(map[string]*string, len(scopes.Project)+len(scopes.Command)+len(scopes.Dotenv))

	maps.Copy(merged, scopes.Project)
	maps.Copy(merged, scopes.Command)
	for k, v := range scopes.Dotenv {
		merged[k] = &v
	}
	for k := range merged {
		if v, ok := scopes.Shell[k]; ok {
			merged[k] = &v
		}
	}

	resolved = make(map[string]string, len(merged))
	for k, v := range merged {
		if v == nil {
			missing = append(missing, k)
			continue
		}
		resolved[k] = *v
	}
	slices.Sort(missing)
	return resolved, missing
}

// StringPtr returns a pointer to s. It is used to build variable layers.
func StringPtr(s string) *string {
	return &s
}
