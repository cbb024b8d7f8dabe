package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/iceforge/skadimon/internal/errors"
)

// keyComments are written above each key by WriteDefault.
var keyComments = map[string]string{
	"version":                "Config schema version.",
	"base_url":               "Skadi server to poll.",
	"request_timeout":        "Upper bound for every HTTP request.",
	"default_window":         "Chart window at startup: 15m, 1h, 6h or 24h.",
	"history_limit":          "Query history page size (max 200).",
	"polling":                "How often each stream polls.",
	"polling.discard_stale":  "Drop responses older than one already shown.",
	"staleness":              "Freshness badges.",
	"staleness.missed_ticks": "Cadences without a success before a stream shows as stale.",
	"output":                 "Terminal output.",
	"output.color":           "auto, always or never.",
}

// WriteDefault writes cfg as a commented YAML file. It refuses to overwrite
// an existing file unless force is set.
func WriteDefault(path string, cfg *Config, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.New(errors.ErrConfig,
				"Config file already exists: "+path,
				"Use --force to overwrite it")
		}
	}

	var doc yaml.Node
	if err := doc.Encode(cfg); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, "Failed to encode config", "")
	}
	annotate(&doc, "")
	doc.HeadComment = "skadimon configuration. Every key can be overridden with SKADIMON_<KEY>,\ne.g. SKADIMON_BASE_URL or SKADIMON_POLLING_LIVE."

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to create config directory", "Check directory permissions")
	}
	return writeNode(path, &doc)
}

// annotate attaches keyComments to the keys of a mapping node.
func annotate(node *yaml.Node, prefix string) {
	if node.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i < len(node.Content)-1; i += 2 {
		key := node.Content[i]
		full := key.Value
		if prefix != "" {
			full = prefix + "." + key.Value
		}
		if c, ok := keyComments[full]; ok {
			key.HeadComment = c
		}
		annotate(node.Content[i+1], full)
	}
}

// SetValue sets one dotted key (e.g. "polling.live") in an existing config
// file. It preserves the existing YAML structure and comments, creating
// missing mappings along the way.
func SetValue(configPath, key, value string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse as yaml.Node to preserve structure
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if root.Kind == 0 {
		root = yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}}}
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return fmt.Errorf("invalid YAML document structure")
	}

	node := root.Content[0]
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("expected mapping at document root")
	}

	parts := strings.Split(key, ".")
	for _, part := range parts[:len(parts)-1] {
		child := findMapValue(node, part)
		if child == nil {
			child = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
			node.Content = append(node.Content, scalar(part), child)
		}
		if child.Kind != yaml.MappingNode {
			return fmt.Errorf("'%s' is not a mapping", part)
		}
		node = child
	}

	leaf := parts[len(parts)-1]
	if existing := findMapValue(node, leaf); existing != nil {
		existing.Kind = yaml.ScalarNode
		existing.Tag = scalarTag(value)
		existing.Value = value
		existing.Content = nil
	} else {
		valueNode := scalar(value)
		valueNode.Tag = scalarTag(value)
		node.Content = append(node.Content, scalar(leaf), valueNode)
	}

	return writeNode(configPath, &root)
}

// findMapValue finds a value in a mapping node by key name.
func findMapValue(node *yaml.Node, key string) *yaml.Node {
	if node.Kind != yaml.MappingNode {
		return nil
	}

	for i := 0; i < len(node.Content)-1; i += 2 {
		keyNode := node.Content[i]
		valueNode := node.Content[i+1]

		if keyNode.Kind == yaml.ScalarNode && keyNode.Value == key {
			return valueNode
		}
	}

	return nil
}

func scalar(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

// scalarTag keeps numbers and booleans unquoted.
func scalarTag(value string) string {
	if _, err := strconv.ParseBool(value); err == nil {
		return "!!bool"
	}
	if _, err := strconv.ParseInt(value, 10, 64); err == nil {
		return "!!int"
	}
	return "!!str"
}

func writeNode(path string, node *yaml.Node) error {
	var buf strings.Builder
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(node); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	encoder.Close()

	if err := os.WriteFile(path, []byte(buf.String()), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
