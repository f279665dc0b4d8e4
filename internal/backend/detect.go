package backend

import "polylith/internal/pyproject"

// Detect classifies the build backend declared by doc.
func Detect(doc pyproject.Document) Backend {
	if _, ok := doc.Table("build-system"); !ok {
		return None
	}
	return FromIdentifier(doc.String("build-system", "build-backend"))
}

// HasCompleteBuildSystem reports whether doc names a build backend and lists
// the Polylith dev-mode-dirs. The dev-mode-dirs list lives under tool.hatch
// and is required whatever backend is declared.
func HasCompleteBuildSystem(doc pyproject.Document) bool {
	return doc.String("build-system", "build-backend") != "" &&
		len(doc.Strings("tool", "hatch", "build", "dev-mode-dirs")) > 0
}
