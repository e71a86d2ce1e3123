package writers

import (
	"io"

	"github.com/xlab/treeprint"

	"strmatch/internal/report"
)

func init() { Register("tree", WriteTree) }

// WriteTree draws the BST shape. Children are tagged [L]/[R]; flagged
// profiles carry a trailing "*".
func WriteTree(w io.Writer, rep report.Report, _ Options) error {
	if rep.Root == nil {
		_, err := io.WriteString(w, "(empty)\n")
		return err
	}
	tree := treeprint.NewWithRoot(nodeLabel(rep.Root))
	addChildren(tree, rep.Root)
	_, err := io.WriteString(w, tree.String())
	return err
}

func addChildren(t treeprint.Tree, n *report.Node) {
	if n.Left != nil {
		addChildren(t.AddMetaBranch("L", nodeLabel(n.Left)), n.Left)
	}
	if n.Right != nil {
		addChildren(t.AddMetaBranch("R", nodeLabel(n.Right)), n.Right)
	}
}

func nodeLabel(n *report.Node) string {
	if n.Flagged {
		return n.Key + " *"
	}
	return n.Key
}
