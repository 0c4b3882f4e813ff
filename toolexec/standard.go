package toolexec

// RegisterStandardTools registers the full built-in toolset against a
// workspace: file operations, git commands, and guarded shell access.
func RegisterStandardTools(reg *Registry, ws *Workspace) {
	RegisterFileTools(reg, ws)
	RegisterGitTools(reg, ws)
	RegisterShellTools(reg, ws)
}
