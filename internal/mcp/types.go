package mcp

// ListProjectsInput is the input for the list_projects tool.
type ListProjectsInput struct{}

// ListProjectsOutput is the output for the list_projects tool.
type ListProjectsOutput struct {
	Projects []string `json:"projects"`
}

// ListLayoutsInput is the input for the list_layouts tool.
type ListLayoutsInput struct{}

// ListLayoutsOutput is the output for the list_layouts tool.
type ListLayoutsOutput struct {
	Layouts []string `json:"layouts"`
}

// ProjectInput names a project.
type ProjectInput struct {
	Name string `json:"name" jsonschema:"required,Project name as shown by list_projects"`
}

// ApplicationInfo describes one configured application.
type ApplicationInfo struct {
	Command          []string `json:"command"`
	WorkingDirectory string   `json:"working_directory,omitempty"`
	ExecType         string   `json:"exec_type,omitempty"`
	ExecCommands     []string `json:"exec_commands,omitempty"`
	ExecTimeout      string   `json:"exec_timeout,omitempty"`
}

// ProjectInfoOutput is the output for the project_info tool.
type ProjectInfoOutput struct {
	Name             string            `json:"name"`
	Path             string            `json:"path"`
	Workspace        string            `json:"workspace,omitempty"`
	WorkingDirectory string            `json:"working_directory,omitempty"`
	LayoutKind       string            `json:"layout_kind"`
	Layout           string            `json:"layout"`
	Applications     []ApplicationInfo `json:"applications"`
}

// VerifyProjectOutput is the output for the verify_project tool.
type VerifyProjectOutput struct {
	Name  string `json:"name"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// StartProjectInput is the input for the start_project tool.
type StartProjectInput struct {
	Name             string `json:"name" jsonschema:"required,Project name as shown by list_projects"`
	WorkingDirectory string `json:"working_directory,omitempty" jsonschema:"Working directory for every application, overriding the project file"`
	Workspace        string `json:"workspace,omitempty" jsonschema:"Workspace to start the project on, overriding the project file"`
}

// StartedApplication describes one spawned application.
type StartedApplication struct {
	Program   string `json:"program"`
	Pid       int    `json:"pid"`
	Dir       string `json:"dir,omitempty"`
	ExecError string `json:"exec_error,omitempty"`
}

// StartProjectOutput is the output for the start_project tool.
type StartProjectOutput struct {
	Project      string               `json:"project"`
	Workspace    string               `json:"workspace,omitempty"`
	Applications []StartedApplication `json:"applications"`
}
