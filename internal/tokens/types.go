// Package tokens builds the exported token tree: groups nested by folder path
// with resolved tokens as leaves.
package tokens

import (
	"encoding/json"

	"bennypowers.dev/dtexport/internal/resolver"
)

// NodeType is the "type" tag written for every node
type NodeType string

const (
	TypeGroup NodeType = "group"
	TypeToken NodeType = "token"
)

// Node is either a *Group or a *Token
type Node interface {
	NodeName() string
	NodeType() NodeType
}

// BrandModes holds a brand's resolved colors; a nil entry was not configured
type BrandModes struct {
	Light *resolver.ColorResult `json:"light,omitempty"`
	Dark  *resolver.ColorResult `json:"dark,omitempty"`
}

// Token is a leaf of the tree
type Token struct {
	// Name is the sanitized final path segment (e.g. "gray-50")
	Name string
	// Path is the dotted path of sanitized folders and Name
	Path string
	// Modes maps brand names to resolved colors
	Modes map[string]BrandModes
}

func (t *Token) NodeName() string   { return t.Name }
func (t *Token) NodeType() NodeType { return TypeToken }

// MarshalJSON writes the token with its "type" tag
func (t *Token) MarshalJSON() ([]byte, error) {
	modes := t.Modes
	if modes == nil {
		modes = map[string]BrandModes{}
	}
	return json.Marshal(struct {
		Name  string                `json:"name"`
		Type  NodeType              `json:"type"`
		Path  string                `json:"path"`
		Modes map[string]BrandModes `json:"modes"`
	}{t.Name, TypeToken, t.Path, modes})
}

// Group is an interior node holding groups and tokens
type Group struct {
	Name     string
	Children []Node
}

func (g *Group) NodeName() string   { return g.Name }
func (g *Group) NodeType() NodeType { return TypeGroup }

// MarshalJSON writes the group with its "type" tag; children is never null
func (g *Group) MarshalJSON() ([]byte, error) {
	children := g.Children
	if children == nil {
		children = []Node{}
	}
	return json.Marshal(struct {
		Name     string   `json:"name"`
		Type     NodeType `json:"type"`
		Children []Node   `json:"children"`
	}{g.Name, TypeGroup, children})
}
