package orderby

import (
	"io"
	"os"

	"github.com/friendsofgo/errors"
	"gopkg.in/yaml.v3"

	paging "github.com/nrfta/rdb-paging-go"
)

// Config is the YAML form of a schema:
//
//	name: component
//	joins:
//	  - foreign: component.component_type_id
//	    primary: component_type.id
//	fields:
//	  - key: type_order
//	    column: component_type.order
//	    default: 1
//	  - key: id
//	    column: component.id
//	    unique: true
//	    default: 2
type Config struct {
	Name   string        `yaml:"name"`
	Joins  []JoinConfig  `yaml:"joins"`
	Fields []FieldConfig `yaml:"fields"`
}

// JoinConfig is one join of a Config. RealTable is set when the primary table
// is an alias.
type JoinConfig struct {
	Foreign   string `yaml:"foreign"`
	Primary   string `yaml:"primary"`
	RealTable string `yaml:"real_table,omitempty"`
}

// FieldConfig is one field of a Config. Nulls accepts the values of
// paging.ParseNullStrategy.
type FieldConfig struct {
	Key     string `yaml:"key"`
	Column  string `yaml:"column"`
	Unique  bool   `yaml:"unique,omitempty"`
	Nulls   string `yaml:"nulls,omitempty"`
	Default int16  `yaml:"default,omitempty"`
}

// LoadConfig decodes a YAML schema. Unknown keys are rejected.
func LoadConfig(r io.Reader) (*Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty order by schema")
		}
		return nil, errors.Wrap(err, "decoding order by schema")
	}

	if cfg.Name == "" {
		return nil, errors.New("order by schema has no name")
	}

	return &cfg, nil
}

// LoadConfigFile reads a YAML schema from path.
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening order by schema")
	}
	defer f.Close()

	cfg, err := LoadConfig(f)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return cfg, nil
}

// Schema converts the config into a Schema, parsing column references and null
// strategies.
func (c *Config) Schema() (*Schema, error) {
	s := NewSchema(c.Name)

	for i, j := range c.Joins {
		foreign, err := paging.ParseTableColumn(j.Foreign)
		if err != nil {
			return nil, errors.Wrapf(err, "joins[%d].foreign", i)
		}
		primary, err := paging.ParseTableColumn(j.Primary)
		if err != nil {
			return nil, errors.Wrapf(err, "joins[%d].primary", i)
		}
		s.JoinAs(foreign, primary, j.RealTable)
	}

	for i, f := range c.Fields {
		column, err := paging.ParseTableColumn(f.Column)
		if err != nil {
			return nil, errors.Wrapf(err, "fields[%d].column", i)
		}
		nulls, err := paging.ParseNullStrategy(f.Nulls)
		if err != nil {
			return nil, errors.Wrapf(err, "fields[%d].nulls", i)
		}

		key := f.Key
		if key == "" {
			key = string(column.Table) + "_" + string(column.Column)
		}

		opts := []FieldOption{Nulls(nulls), Default(paging.Priority(f.Default))}
		if f.Unique {
			opts = append(opts, Unique())
		}
		s.Field(key, column, opts...)
	}

	return s, nil
}

// Compile converts and compiles the config.
func (c *Config) Compile() (*Spec, error) {
	s, err := c.Schema()
	if err != nil {
		return nil, err
	}
	return s.Compile()
}
