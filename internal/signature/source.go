package signature

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
)

// Names parses Go source and returns the declared parameter names of the
// top-level function funcName, in declaration order. Grouped declarations
// such as "a, b float64" expand to each name.
func Names(ctx context.Context, src []byte, funcName string) ([]string, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(golang.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse source: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	for i := 0; i < int(root.NamedChildCount()); i++ {
		decl := root.NamedChild(i)
		if decl.Type() != "function_declaration" {
			continue
		}
		nameNode := decl.ChildByFieldName("name")
		if nameNode == nil || nameNode.Content(src) != funcName {
			continue
		}
		return paramNames(decl.ChildByFieldName("parameters"), src)
	}
	return nil, fmt.Errorf("%w: %s", ErrFuncNotFound, funcName)
}

func paramNames(list *sitter.Node, src []byte) ([]string, error) {
	if list == nil {
		return nil, nil
	}
	var names []string
	for i := 0; i < int(list.NamedChildCount()); i++ {
		decl := list.NamedChild(i)
		switch decl.Type() {
		case "parameter_declaration":
			found := false
			for j := 0; j < int(decl.NamedChildCount()); j++ {
				child := decl.NamedChild(j)
				if child.Type() == "identifier" {
					names = append(names, child.Content(src))
					found = true
				}
			}
			if !found {
				// unnamed parameter, e.g. func(float64)
				names = append(names, fmt.Sprintf("p%d", len(names)+1))
			}
		case "variadic_parameter_declaration":
			return nil, fmt.Errorf("%w: variadic parameters", ErrBadParam)
		}
	}
	return names, nil
}
