package main

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/robert-malhotra/go-nwb/internal/builder"
)

// renderTree walks a built hierarchy and formats it as one table row
// per node, in write order.
func renderTree(root *builder.Group) (string, error) {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Path", "Kind", "Detail"})

	err := builder.Walk(root, func(p string, node builder.Node) error {
		switch n := node.(type) {
		case *builder.Group:
			tw.AppendRow(table.Row{p, "group", describeAttrs(n)})
		case *builder.Dataset:
			tw.AppendRow(table.Row{p, "dataset", describePayload(n.Payload())})
		case *builder.SoftLink:
			tw.AppendRow(table.Row{p, "soft link", "-> " + n.Path})
		case *builder.HardLink:
			tw.AppendRow(table.Row{p, "hard link", "-> " + n.Path})
		case *builder.ExternalLink:
			tw.AppendRow(table.Row{p, "external link", fmt.Sprintf("-> %s:%s", n.File, n.Path)})
		default:
			tw.AppendRow(table.Row{p, fmt.Sprintf("%T", n), ""})
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Path", Align: text.AlignLeft},
		{Name: "Kind", Align: text.AlignLeft},
		{Name: "Detail", Align: text.AlignLeft, WidthMax: 60},
	})
	return tw.Render(), nil
}

func describeAttrs(g *builder.Group) string {
	names := g.Attributes()
	if len(names) == 0 {
		return ""
	}
	return "attrs: " + strings.Join(names, ", ")
}

func describePayload(v interface{}) string {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return fmt.Sprintf("%s[%d]", rv.Type().Elem(), rv.Len())
	case reflect.String:
		s := rv.String()
		if len(s) > 48 {
			s = s[:45] + "..."
		}
		return fmt.Sprintf("%q", s)
	default:
		return fmt.Sprint(v)
	}
}
