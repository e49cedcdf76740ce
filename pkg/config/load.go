package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/ramalama-labs/modelgen/pkg/errors"
	"gopkg.in/yaml.v3"
)

const mergeTag = "!!merge"

// maxNodes caps the number of nodes a document may expand to once aliases
// are resolved.
const maxNodes = 100000

// Load reads and parses the configuration file at path.
func Load(path string) (*Global, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.WrapWithContext(errors.ErrCodeNotFound,
				"configuration file not found", err, map[string]interface{}{"path": path})
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to read configuration file", err)
	}

	global, err := Parse(data)
	if err != nil {
		return nil, err
	}

	slog.Debug("configuration loaded",
		"path", path,
		"models", len(global.ModelKeys()),
		"templates", len(global.TemplateNames()),
	)

	return global, nil
}

// Parse decodes a YAML document into a Global configuration.
// An empty document yields an empty configuration.
func Parse(data []byte) (*Global, error) {
	root, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return NewGlobal(root)
}

// Decode decodes a YAML document into a Value tree, keeping mapping order.
func Decode(data []byte) (*Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, "failed to parse YAML", err)
	}

	if doc.Kind == 0 || len(doc.Content) == 0 {
		return Null(), nil
	}

	d := &decoder{budget: maxNodes}
	return d.fromNode(&doc)
}

// decoder walks a yaml.Node tree, counting every node it expands so that
// nested aliases cannot blow up the value tree.
type decoder struct {
	budget int
}

func (d *decoder) fromNode(n *yaml.Node) (*Value, error) {
	d.budget--
	if d.budget < 0 {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidConfig, "document expands to too many nodes",
			map[string]interface{}{"limit": maxNodes, "line": n.Line})
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null(), nil
		}
		return d.fromNode(n.Content[0])

	case yaml.AliasNode:
		if n.Alias == nil {
			return nil, nodeError(n, "dangling alias")
		}
		return d.fromNode(n.Alias)

	case yaml.ScalarNode:
		tag := n.ShortTag()
		if tag == "!!null" {
			return Null(), nil
		}
		return Scalar(tag, n.Value), nil

	case yaml.SequenceNode:
		items := make([]*Value, 0, len(n.Content))
		for _, c := range n.Content {
			item, err := d.fromNode(c)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return List(items...), nil

	case yaml.MappingNode:
		return d.fromMappingNode(n)

	default:
		return nil, nodeError(n, fmt.Sprintf("unsupported node kind %d", n.Kind))
	}
}

// fromMappingNode decodes a mapping. Explicit keys win over keys pulled in
// through "<<" merge keys, whatever their position.
func (d *decoder) fromMappingNode(n *yaml.Node) (*Value, error) {
	out := Mapping()
	var merged []*Value

	for i := 0; i+1 < len(n.Content); i += 2 {
		keyNode, valNode := n.Content[i], n.Content[i+1]

		if keyNode.Kind == yaml.ScalarNode && keyNode.ShortTag() == mergeTag {
			sources, err := d.mergeSources(valNode)
			if err != nil {
				return nil, err
			}
			merged = append(merged, sources...)
			continue
		}

		if keyNode.Kind != yaml.ScalarNode {
			return nil, nodeError(keyNode, "mapping keys must be scalars")
		}

		val, err := d.fromNode(valNode)
		if err != nil {
			return nil, err
		}
		out.Set(keyNode.Value, val)
	}

	for _, src := range merged {
		for _, k := range src.Keys() {
			if !out.Has(k) {
				v, _ := src.Get(k)
				out.Set(k, v.Clone())
			}
		}
	}

	return out, nil
}

func (d *decoder) mergeSources(n *yaml.Node) ([]*Value, error) {
	target := n
	if target.Kind == yaml.AliasNode && target.Alias != nil {
		target = target.Alias
	}

	if target.Kind == yaml.SequenceNode {
		out := make([]*Value, 0, len(target.Content))
		for _, c := range target.Content {
			v, err := d.fromNode(c)
			if err != nil {
				return nil, err
			}
			if !v.IsMapping() {
				return nil, nodeError(c, "merge key values must be mappings")
			}
			out = append(out, v)
		}
		return out, nil
	}

	v, err := d.fromNode(target)
	if err != nil {
		return nil, err
	}
	if !v.IsMapping() {
		return nil, nodeError(n, "merge key value must be a mapping")
	}
	return []*Value{v}, nil
}

func nodeError(n *yaml.Node, msg string) error {
	return errors.NewWithContext(errors.ErrCodeInvalidConfig, msg, map[string]interface{}{
		"line":   n.Line,
		"column": n.Column,
	})
}
