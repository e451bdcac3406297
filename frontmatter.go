package md2wechat

import (
	"strings"

	"github.com/zkkython/md2wechat-skills/internal/yamlutil"
)

// FrontMatter holds the optional metadata block at the top of a
// document. Absent fields stay zero-valued; nothing is defaulted here.
type FrontMatter struct {
	Title     string     `yaml:"title"`
	Date      string     `yaml:"date"`
	Tags      stringList `yaml:"tags"`
	Permalink string     `yaml:"permalink"`
}

// stringList accepts both a YAML sequence and a single scalar, since
// authors write `tags: go` as often as a proper list.
type stringList []string

// UnmarshalYAML implements yaml.BytesUnmarshaler.
func (l *stringList) UnmarshalYAML(data []byte) error {
	var many []string
	if err := yamlutil.Unmarshal(data, &many); err == nil {
		*l = many
		return nil
	}
	var one string
	if err := yamlutil.Unmarshal(data, &one); err != nil {
		return err
	}
	*l = []string{one}
	return nil
}

const frontMatterDelimiter = "---"

// extractFrontMatter splits the leading metadata block from the body.
// The input must already have normalized line endings. Malformed
// metadata is not fatal: the extractor yields an empty FrontMatter and
// the original text, delimiters included, becomes ordinary body content.
func extractFrontMatter(text string) (FrontMatter, string) {
	lines := strings.Split(text, "\n")
	if len(lines) < 3 || strings.TrimSpace(lines[0]) != frontMatterDelimiter {
		return FrontMatter{}, text
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == frontMatterDelimiter {
			end = i
			break
		}
	}
	if end == -1 {
		return FrontMatter{}, text
	}

	var fm FrontMatter
	raw := strings.Join(lines[1:end], "\n")
	if strings.TrimSpace(raw) == "" {
		return FrontMatter{}, strings.Join(lines[end+1:], "\n")
	}
	if err := yamlutil.Unmarshal([]byte(raw), &fm); err != nil {
		return FrontMatter{}, text
	}
	return fm, strings.Join(lines[end+1:], "\n")
}
