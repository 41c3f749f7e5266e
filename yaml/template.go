// Package yaml loads custom profile templates from YAML files.
package yaml

import (
	"io"
	"os"

	"github.com/MelvilleC99/profiler"
	"gopkg.in/yaml.v3"
)

type templateFile struct {
	Sections []section `yaml:"sections"`
}

type section struct {
	Name   string  `yaml:"name"`
	Fields []field `yaml:"fields"`
}

type field struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Kind        string `yaml:"kind"`
}

// LoadTemplate reads a template definition from r. Field kind defaults to
// string; "list" marks list-valued fields.
func LoadTemplate(r io.Reader) (profiler.Template, error) {
	var file templateFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, profiler.Errorf(profiler.EINVALID, "decode template: %v", err)
	}
	if len(file.Sections) == 0 {
		return nil, profiler.Errorf(profiler.EINVALID, "template has no sections")
	}

	var tmpl profiler.Template
	for _, s := range file.Sections {
		if s.Name == "" {
			return nil, profiler.Errorf(profiler.EINVALID, "template section without a name")
		}
		if len(s.Fields) == 0 {
			return nil, profiler.Errorf(profiler.EINVALID, "template section %q has no fields", s.Name)
		}
		ts := profiler.TemplateSection{Name: s.Name}
		for _, f := range s.Fields {
			if f.Name == "" {
				return nil, profiler.Errorf(profiler.EINVALID, "field without a name in section %q", s.Name)
			}
			kind := profiler.KindString
			switch f.Kind {
			case "", "string":
			case "list":
				kind = profiler.KindList
			default:
				return nil, profiler.Errorf(profiler.EINVALID, "unknown field kind %q in section %q", f.Kind, s.Name)
			}
			ts.Fields = append(ts.Fields, profiler.Field{
				Name:        f.Name,
				Description: f.Description,
				Kind:        kind,
			})
		}
		tmpl = append(tmpl, ts)
	}

	return tmpl, nil
}

// LoadTemplateFile reads a template definition from the file at path.
func LoadTemplateFile(path string) (profiler.Template, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, profiler.Errorf(profiler.ENOTFOUND, "open template: %v", err)
	}
	defer f.Close()
	return LoadTemplate(f)
}
