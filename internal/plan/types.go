package plan

// Plan is a batch of carving jobs stored as YAML.
type Plan struct {
	Version string `yaml:"version"`
	Jobs    []Job  `yaml:"jobs"`
}

// Job carves one picture (an image file or one PDF page) to a smaller size.
// A target dimension of 0 keeps the source size unless a seam count is given.
type Job struct {
	ID            int    `yaml:"id"`
	Input         string `yaml:"input"`
	Page          int    `yaml:"page"`             // index inside the source, 0-based
	Output        string `yaml:"output,omitempty"` // PNG path; derived from the input when empty
	TargetWidth   int    `yaml:"target_width,omitempty"`
	TargetHeight  int    `yaml:"target_height,omitempty"`
	RemoveColumns int    `yaml:"remove_columns,omitempty"`
	RemoveRows    int    `yaml:"remove_rows,omitempty"`
	Energy        string `yaml:"energy,omitempty"`
	Order         string `yaml:"order,omitempty"`
}
