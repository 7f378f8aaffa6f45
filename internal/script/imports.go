package script

import (
	"context"
	"fmt"
	"strconv"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
)

// Imports returns the import paths declared in Go source.
func Imports(ctx context.Context, src []byte) ([]string, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(golang.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse source: %w", err)
	}
	defer tree.Close()

	var paths []string
	root := tree.RootNode()
	for i := 0; i < int(root.NamedChildCount()); i++ {
		decl := root.NamedChild(i)
		if decl.Type() != "import_declaration" {
			continue
		}
		for j := 0; j < int(decl.NamedChildCount()); j++ {
			child := decl.NamedChild(j)
			switch child.Type() {
			case "import_spec":
				paths = appendSpec(paths, child, src)
			case "import_spec_list":
				for k := 0; k < int(child.NamedChildCount()); k++ {
					if spec := child.NamedChild(k); spec.Type() == "import_spec" {
						paths = appendSpec(paths, spec, src)
					}
				}
			}
		}
	}
	return paths, nil
}

func appendSpec(paths []string, spec *sitter.Node, src []byte) []string {
	lit := spec.ChildByFieldName("path")
	if lit == nil {
		return paths
	}
	raw := lit.Content(src)
	if p, err := strconv.Unquote(raw); err == nil {
		return append(paths, p)
	}
	return append(paths, raw)
}
