package render

import "fmt"

// Anchors are positional: they are derived from indices into the normalized
// module list, so the renderer and the table of contents agree on them
// without coordination through ids.

// ModuleAnchor returns the element id of the i-th visible module.
func ModuleAnchor(moduleIndex int) string {
	return fmt.Sprintf("module-%d", moduleIndex)
}

// EventAnchor returns the element id of one timeline event.
func EventAnchor(moduleIndex, eventIndex int) string {
	return fmt.Sprintf("timeline-%d-%d", moduleIndex, eventIndex)
}
