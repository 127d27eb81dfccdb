package sqlfmt

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of .sqlfmt.yml: a plain yaml.v3-tagged
// struct decoded straight off disk, no schema validation library.
type FileConfig struct {
	KeywordCase             string `yaml:"keyword_case"`
	IdentifierCase          string `yaml:"identifier_case"`
	StripComments           bool   `yaml:"strip_comments"`
	StripWhitespace         bool   `yaml:"strip_whitespace"`
	UseSpaceAroundOperators bool   `yaml:"use_space_around_operators"`
	Reindent                bool   `yaml:"reindent"`
	ReindentAligned         bool   `yaml:"reindent_aligned"`
	IndentWidth             int    `yaml:"indent_width"`
	IndentTabs              bool   `yaml:"indent_tabs"`
	WrapAfter               int    `yaml:"wrap_after"`
	CommaFirst              bool   `yaml:"comma_first"`
}

// LoadConfigFile decodes a .sqlfmt.yml file at path.
func LoadConfigFile(path string) (FileConfig, error) {
	var cfg FileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, ConfigError{Field: path, Value: nil, Problem: err.Error()}
	}
	return cfg, nil
}

// FindConfigFile walks up from dir looking for .sqlfmt.yml, the way git
// walks up looking for .git. Returns "" if none is found before reaching
// the filesystem root.
func FindConfigFile(dir string) string {
	for {
		candidate := filepath.Join(dir, ".sqlfmt.yml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

func caseFromString(s string) Case {
	switch s {
	case "upper":
		return CaseUpper
	case "lower":
		return CaseLower
	case "capitalize":
		return CaseCapitalize
	default:
		return CaseUnchanged
	}
}

// ToOptions converts a decoded FileConfig into Options.
func (c FileConfig) ToOptions() Options {
	return Options{
		KeywordCase:             caseFromString(c.KeywordCase),
		IdentifierCase:          caseFromString(c.IdentifierCase),
		StripComments:           c.StripComments,
		StripWhitespace:         c.StripWhitespace,
		UseSpaceAroundOperators: c.UseSpaceAroundOperators,
		Reindent:                c.Reindent,
		ReindentAligned:         c.ReindentAligned,
		IndentWidth:             c.IndentWidth,
		IndentTabs:              c.IndentTabs,
		WrapAfter:               c.WrapAfter,
		CommaFirst:              c.CommaFirst,
	}
}
