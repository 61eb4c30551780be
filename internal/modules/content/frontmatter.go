package content

import (
	"strings"

	"gopkg.in/yaml.v3"
)

const fence = "---"

// frontMatter holds the recognised metadata keys. Every field keeps the
// literal text written in the file.
type frontMatter struct {
	Title    literal
	Date     literal
	Author   literal
	Excerpt  literal
	Location literal
	Tags     tagList
}

// literal decodes any scalar as its source text, so timestamps and numbers are
// not reinterpreted.
type literal string

func (l *literal) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return &yaml.TypeError{Errors: []string{"expected a scalar"}}
	}
	if node.Tag == "!!null" {
		*l = ""
		return nil
	}
	*l = literal(strings.TrimSpace(node.Value))
	return nil
}

// tagList accepts a YAML sequence or a comma separated scalar.
type tagList []string

func (t *tagList) UnmarshalYAML(node *yaml.Node) error {
	out := tagList{}
	switch node.Kind {
	case yaml.SequenceNode:
		for _, item := range node.Content {
			var v literal
			if err := item.Decode(&v); err != nil {
				return err
			}
			if v != "" {
				out = append(out, string(v))
			}
		}
	case yaml.ScalarNode:
		if node.Tag != "!!null" {
			for _, part := range strings.Split(node.Value, ",") {
				if part = strings.TrimSpace(part); part != "" {
					out = append(out, part)
				}
			}
		}
	default:
		return &yaml.TypeError{Errors: []string{"tags must be a list or a string"}}
	}
	*t = out
	return nil
}

// splitFrontMatter separates the metadata block from the body. ok is false
// when the file has an opening fence but no closing one.
func splitFrontMatter(raw string) (meta, body string, hasMeta, ok bool) {
	raw = strings.TrimPrefix(raw, "\ufeff")
	first, rest, found := strings.Cut(raw, "\n")
	if strings.TrimRight(first, " \t\r") != fence {
		return "", raw, false, true
	}
	if !found {
		return "", "", true, false
	}

	offset := 0
	for offset <= len(rest) {
		line, after, more := strings.Cut(rest[offset:], "\n")
		if strings.TrimRight(line, " \t\r") == fence {
			if !more {
				after = ""
			}
			return rest[:offset], after, true, true
		}
		if !more {
			break
		}
		offset += len(line) + 1
	}
	return "", rest, true, false
}

// parseFrontMatter decodes each recognised key independently so a bad value
// only loses that key. A block that is not valid YAML yields no metadata.
func parseFrontMatter(meta string) (frontMatter, bool) {
	var fm frontMatter
	if strings.TrimSpace(meta) == "" {
		return fm, true
	}

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(meta), &doc); err != nil {
		return frontMatter{}, false
	}
	if len(doc.Content) == 0 {
		return fm, true
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return frontMatter{}, false
	}

	clean := true
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		var target interface{}
		switch strings.ToLower(key.Value) {
		case "title":
			target = &fm.Title
		case "date":
			target = &fm.Date
		case "author":
			target = &fm.Author
		case "excerpt":
			target = &fm.Excerpt
		case "location":
			target = &fm.Location
		case "tags":
			target = &fm.Tags
		default:
			continue
		}
		if err := value.Decode(target); err != nil {
			clean = false
		}
	}
	return fm, clean
}
