// ABOUTME: Folder tree built from slash-separated folder paths.
// ABOUTME: Children are sorted by name so the tree renders the same way every time.

package query

import (
	"slices"
	"strings"
)

type FolderNode struct {
	Name     string
	Path     string
	Children []*FolderNode
}

// FolderTree builds a tree under an unnamed root. Missing intermediate
// folders are created so "a/b" alone still yields a node for "a".
func FolderTree(folders []string) *FolderNode {
	root := &FolderNode{}
	for _, folder := range folders {
		if folder == "" {
			continue
		}
		current := root
		segs := strings.Split(folder, "/")
		for i, seg := range segs {
			next := current.child(seg)
			if next == nil {
				next = &FolderNode{
					Name: seg,
					Path: strings.Join(segs[:i+1], "/"),
				}
				current.Children = append(current.Children, next)
				slices.SortFunc(current.Children, func(a, b *FolderNode) int {
					return strings.Compare(a.Name, b.Name)
				})
			}
			current = next
		}
	}
	return root
}

func (n *FolderNode) child(name string) *FolderNode {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Walk visits every node below n depth-first, in display order.
func (n *FolderNode) Walk(fn func(node *FolderNode, depth int)) {
	var walk func(*FolderNode, int)
	walk = func(node *FolderNode, depth int) {
		for _, c := range node.Children {
			fn(c, depth)
			walk(c, depth+1)
		}
	}
	walk(n, 0)
}
