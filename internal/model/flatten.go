package model

// Node describes a view and its subtree for display.
type Node struct {
	Type     string  `yaml:"type"               json:"type"`
	ID       int     `yaml:"id,omitempty"       json:"id,omitempty"`
	Text     *string `yaml:"text,omitempty"     json:"text,omitempty"`
	Rect     Rect    `yaml:"rect"               json:"rect"`
	Visible  bool    `yaml:"visible"            json:"visible"`
	Children []Node  `yaml:"children,omitempty" json:"children,omitempty"`
}

// FlatNode is a Node with a path breadcrumb instead of children.
type FlatNode struct {
	Type    string  `yaml:"type"           json:"type"`
	ID      int     `yaml:"id,omitempty"   json:"id,omitempty"`
	Text    *string `yaml:"text,omitempty" json:"text,omitempty"`
	Rect    Rect    `yaml:"rect"           json:"rect"`
	Visible bool    `yaml:"visible"        json:"visible"`
	Path    string  `yaml:"path"           json:"path"`
}

// Flatten lists the nodes of a tree in pre-order. Each node's path joins
// the types of its ancestors and itself with " > ".
func Flatten(nodes []Node) []FlatNode {
	var result []FlatNode
	for _, n := range nodes {
		flattenRecursive(n, "", &result)
	}
	return result
}

func flattenRecursive(n Node, parentPath string, result *[]FlatNode) {
	path := n.Type
	if parentPath != "" {
		path = parentPath + " > " + n.Type
	}
	*result = append(*result, FlatNode{
		Type:    n.Type,
		ID:      n.ID,
		Text:    n.Text,
		Rect:    n.Rect,
		Visible: n.Visible,
		Path:    path,
	})
	for _, c := range n.Children {
		flattenRecursive(c, path, result)
	}
}
