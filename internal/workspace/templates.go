package workspace

import (
	"fmt"
	"strings"
)

const workspaceTemplate = `[tool.polylith]
namespace = "%s"
git_tag_pattern = "stable-*"

[tool.polylith.structure]
theme = "%s"

[tool.polylith.tag.patterns]
stable = "stable-*"
release = "v[0-9]*"

[tool.polylith.resources]
brick_docs_enabled = false

[tool.polylith.test]
enabled = true
`

const readmeTemplate = `# %s

A Polylith workspace.

- ` + "`bases/`" + `: entry points exposing the components to the outside world
- ` + "`components/`" + `: reusable building blocks
- ` + "`projects/`" + `: deployable artifacts composed from bases and components
- ` + "`development/`" + `: code for experimenting in a REPL

Learn more in the Polylith documentation: https://davidvujic.github.io/python-polylith-docs/
`

// WorkspaceConfig renders workspace.toml for namespace and theme.
func WorkspaceConfig(namespace, theme string) string {
	return fmt.Sprintf(workspaceTemplate, escape(namespace), escape(theme))
}

// Readme renders the workspace README.
func Readme(namespace string) string {
	return fmt.Sprintf(readmeTemplate, namespace)
}

func escape(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}
