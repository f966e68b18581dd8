package spinfile

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	spinerrors "github.com/maxkimambo/spin/internal/errors"
	"github.com/maxkimambo/spin/internal/task"
	"gopkg.in/yaml.v3"
)

// Candidates are the file names Find looks for, in order of preference.
var Candidates = []string{"Spinfile.yml", "Spinfile.yaml", "spinfile.yml", "spinfile.yaml"}

// DefaultEnvFile is read when a spinfile does not name an env_file.
const DefaultEnvFile = ".env"

// Spinfile is a parsed task file.
type Spinfile struct {
	// Path is the absolute location the file was loaded from.
	Path    string              `yaml:"-"`
	EnvFile string              `yaml:"env_file"`
	Env     map[string]string   `yaml:"env"`
	Tasks   map[string]TaskSpec `yaml:"tasks"`
}

// TaskSpec describes one command task. In YAML it is either a bare command
// string or a mapping.
type TaskSpec struct {
	Description string            `yaml:"description"`
	Run         string            `yaml:"run"`
	Dir         string            `yaml:"dir"`
	Env         map[string]string `yaml:"env"`
}

// UnmarshalYAML accepts the "name: command" shorthand.
func (t *TaskSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*t = TaskSpec{Run: node.Value}
		return nil
	}

	type plain TaskSpec
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*t = TaskSpec(p)
	return nil
}

// Find walks from dir up to the filesystem root and returns the first
// candidate spinfile it meets.
func Find(dir string) (string, error) {
	start, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	current := start
	for {
		for _, name := range Candidates {
			path := filepath.Join(current, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, nil
			}
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", spinerrors.NewSpinfileNotFoundError(start, Candidates)
		}
		current = parent
	}
}

// Load reads and validates the spinfile at path.
func Load(path string) (*Spinfile, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, spinerrors.NewSpinfileNotFoundError(abs, Candidates).WithOriginalError(err)
		}
		return nil, spinerrors.NewSpinfileInvalidError(abs, err)
	}

	sf, err := Parse(data)
	if err != nil {
		return nil, spinerrors.NewSpinfileInvalidError(abs, err)
	}
	sf.Path = abs
	return sf, nil
}

// Parse decodes spinfile YAML. Unknown top-level keys are rejected.
func Parse(data []byte) (*Spinfile, error) {
	sf := &Spinfile{}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(sf); err != nil && !stderrors.Is(err, io.EOF) {
		return nil, err
	}

	if err := sf.Validate(); err != nil {
		return nil, err
	}
	return sf, nil
}

// Validate checks task names and commands.
func (s *Spinfile) Validate() error {
	for _, name := range s.Names() {
		spec := s.Tasks[name]
		switch {
		case strings.TrimSpace(name) == "":
			return fmt.Errorf("task names cannot be empty")
		case strings.Contains(name, task.GroupSeparator):
			return fmt.Errorf("task '%s': names cannot contain '%s'", name, task.GroupSeparator)
		case strings.TrimSpace(spec.Run) == "":
			return fmt.Errorf("task '%s': 'run' cannot be empty", name)
		}
	}
	return nil
}

// Dir returns the directory holding the spinfile; commands run there by default.
func (s *Spinfile) Dir() string {
	if s.Path == "" {
		return "."
	}
	return filepath.Dir(s.Path)
}

// Names returns the task names in sorted order.
func (s *Spinfile) Names() []string {
	names := make([]string, 0, len(s.Tasks))
	for name := range s.Tasks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Descriptions maps every task to its description, or its command when it
// has none.
func (s *Spinfile) Descriptions() map[string]string {
	descriptions := make(map[string]string, len(s.Tasks))
	for name, spec := range s.Tasks {
		descriptions[name] = spec.Description
		if spec.Description == "" {
			descriptions[name] = spec.Run
		}
	}
	return descriptions
}

// Environment merges the env file with the inline env block, which wins.
// A missing default .env is ignored; a missing named env_file is an error.
func (s *Spinfile) Environment() (map[string]string, error) {
	name := s.EnvFile
	if name == "" {
		name = DefaultEnvFile
	}
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.Dir(), name)
	}

	env, err := godotenv.Read(path)
	if err != nil {
		if !os.IsNotExist(err) || s.EnvFile != "" {
			return nil, spinerrors.NewEnvFileError(path, err)
		}
		env = make(map[string]string)
	}

	for k, v := range s.Env {
		env[k] = v
	}
	return env, nil
}
