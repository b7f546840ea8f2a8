package output

import (
	"fmt"
	"strings"

	"github.com/rosjs/msggen/internal/core"
)

const (
	// Tree characters
	treeEdge  = "├── "
	treeLast  = "└── "
	treeVert  = "│   "
	treeSpace = "    "

	// Type column alignment
	typeColumn = 28
)

// TreeNode is one line of a rendered definition tree.
type TreeNode struct {
	Name        string
	Type        string
	Description string
	Children    []*TreeNode
}

// DefinitionTree converts a resolved definition into tree nodes, one per
// field in declaration order, with struct fields expanded.
func DefinitionTree(def *core.Definition) *TreeNode {
	root := &TreeNode{
		Name:        def.TypeName,
		Description: def.Fingerprint,
	}

	for _, f := range def.Fields {
		node := &TreeNode{
			Name:        f.Name,
			Type:        f.Type,
			Description: describeDefault(f.Default),
		}
		if child, ok := def.StructFields[f.Name]; ok && child != nil {
			node.Children = DefinitionTree(child).Children
		}
		root.Children = append(root.Children, node)
	}

	return root
}

func describeDefault(d core.Default) string {
	switch d.Kind {
	case core.DefaultLiteral:
		if s, ok := d.Value.(string); ok {
			return fmt.Sprintf("= %q", s)
		}
		return fmt.Sprintf("= %v", d.Value)
	case core.DefaultEmptySequence:
		return "= []"
	default:
		return ""
	}
}

// RenderDefinitionTree renders a resolved definition as a box-drawing tree.
func RenderDefinitionTree(def *core.Definition) string {
	var sb strings.Builder
	renderNode(&sb, DefinitionTree(def), "", true, true)
	return sb.String()
}

// renderNode recursively renders a tree node with proper indentation and styling.
func renderNode(sb *strings.Builder, node *TreeNode, prefix string, isRoot, isLast bool) {
	styles := GetStyles()

	if isRoot {
		sb.WriteString(styles.Bold.Render(node.Name))
		if node.Description != "" {
			sb.WriteString("  ")
			sb.WriteString(styles.Muted.Render(node.Description))
		}
		sb.WriteString("\n")
	} else {
		connector := treeEdge
		if isLast {
			connector = treeLast
		}

		line := prefix + connector + node.Name
		padding := typeColumn - len([]rune(line))
		if padding < 2 {
			padding = 2
		}
		sb.WriteString(line)
		sb.WriteString(strings.Repeat(" ", padding))
		sb.WriteString(StyleType.Render(node.Type))

		if node.Description != "" {
			sb.WriteString(" ")
			sb.WriteString(StyleLiteral.Render(node.Description))
		}
		sb.WriteString("\n")
	}

	for i, child := range node.Children {
		childIsLast := i == len(node.Children)-1

		var childPrefix string
		if !isRoot {
			if isLast {
				childPrefix = prefix + treeSpace
			} else {
				childPrefix = prefix + treeVert
			}
		}

		renderNode(sb, child, childPrefix, false, childIsLast)
	}
}
