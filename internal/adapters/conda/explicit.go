package conda

import (
	"strings"

	"go.trai.ch/conda-project/internal/core/domain"
)

// RenderExplicit renders the conda packages for platform as a conda explicit file.
// Pip packages are skipped; see RenderPipRequirements.
func RenderExplicit(platform string, pkgs []domain.LockedPackage) string {
	var b strings.Builder
	b.WriteString("# Generated by conda-project\n")
	b.WriteString("# platform: " + platform + "\n")
	b.WriteString("@EXPLICIT\n")
	for i := range pkgs {
		p := &pkgs[i]
		if p.IsPip() || p.Platform != platform {
			continue
		}
		b.WriteString(p.URL)
		if p.MD5 != "" {
			b.WriteString("#" + p.MD5)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// RenderPipRequirements renders the pip packages for platform as direct URL requirements.
// It returns an empty string when there are none.
func RenderPipRequirements(platform string, pkgs []domain.LockedPackage) string {
	var b strings.Builder
	for i := range pkgs {
		p := &pkgs[i]
		if !p.IsPip() || p.Platform != platform {
			continue
		}
		b.WriteString(p.Name + " @ " + p.URL + "\n")
	}
	return b.String()
}
