package export

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"

	svg "github.com/ajstarks/svgo"

	"github.com/inventaworks/inventa/pkg/model"
)

// BomSnapshotOptions controls BOM tree svg export behaviour.
type BomSnapshotOptions struct {
	Path  string        // output path, ".svg" appended when missing
	Title string        // optional title in the summary block
	Tree  model.BomNode // root node of the tree to render
	Stats model.BomStats
}

// palette
var (
	colorBackdrop = color.RGBA{R: 0x1b, G: 0x1e, B: 0x28, A: 0xff}
	colorHeaderBG = color.RGBA{R: 0x24, G: 0x28, B: 0x36, A: 0xff}
	colorStroke   = color.RGBA{R: 0x3d, G: 0x44, B: 0x5a, A: 0xff}
	colorText     = color.RGBA{R: 0xe6, G: 0xe6, B: 0xf0, A: 0xff}
	colorSubtle   = color.RGBA{R: 0x9a, G: 0xa0, B: 0xb4, A: 0xff}
	colorEdge     = color.RGBA{R: 0x5a, G: 0x62, B: 0x7e, A: 0xff}

	typeColors = map[model.ItemType]color.RGBA{
		model.TypeFinishedGood: {R: 0x3f, G: 0x8a, B: 0x5f, A: 0xff},
		model.TypeSemiFinished: {R: 0x37, G: 0x6f, B: 0x9e, A: 0xff},
		model.TypeModule:       {R: 0x6f, G: 0x5a, B: 0xa8, A: 0xff},
		model.TypePart:         {R: 0x9e, G: 0x6f, B: 0x37, A: 0xff},
		model.TypeRawMaterial:  {R: 0x6e, G: 0x73, B: 0x62, A: 0xff},
	}
)

func css(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func typeColor(t model.ItemType) color.RGBA {
	if c, ok := typeColors[t]; ok {
		return c
	}
	return colorHeaderBG
}

// SaveBomSnapshot renders the BOM tree as a static svg, one row per node,
// indented by depth the same way the interactive tree view lays it out.
func SaveBomSnapshot(opts BomSnapshotOptions) error {
	if opts.Path == "" {
		return fmt.Errorf("output path is required")
	}
	if filepath.Ext(opts.Path) == "" {
		opts.Path += ".svg"
	}
	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}

	file, err := os.Create(opts.Path)
	if err != nil {
		return err
	}
	defer file.Close()

	return renderBomSVG(file, opts)
}

type bomRow struct {
	Node  model.BomNode
	Depth int
}

// flattenTree walks the tree depth-first, the order the tree view shows
// with everything expanded.
func flattenTree(root model.BomNode) []bomRow {
	var rows []bomRow
	var walk func(n model.BomNode, depth int)
	walk = func(n model.BomNode, depth int) {
		rows = append(rows, bomRow{Node: n, Depth: depth})
		for _, c := range n.Children {
			walk(c, depth+1)
		}
	}
	walk(root, 0)
	return rows
}

func renderBomSVG(w io.Writer, opts BomSnapshotOptions) error {
	const (
		header   = 120
		rowH     = 34
		nodeH    = 28
		indent   = 28
		marginX  = 24
		nodeW    = 360
		costCol  = 120
		minWidth = 640
	)

	rows := flattenTree(opts.Tree)

	maxDepth := 0
	for _, r := range rows {
		if r.Depth > maxDepth {
			maxDepth = r.Depth
		}
	}
	width := marginX*2 + maxDepth*indent + nodeW + costCol*2
	if width < minWidth {
		width = minWidth
	}
	height := header + len(rows)*rowH + 24

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, fmt.Sprintf("fill:%s", css(colorBackdrop)))
	canvas.Roundrect(16, 16, width-32, header-32, 10, 10, fmt.Sprintf("fill:%s", css(colorHeaderBG)))

	title := opts.Title
	if title == "" {
		title = fmt.Sprintf("BOM %s", opts.Tree.SKU)
	}
	canvas.Text(32, 44, title,
		fmt.Sprintf("fill:%s;font-size:16px;font-family:monospace;font-weight:bold", css(colorText)))
	canvas.Text(32, 66, fmt.Sprintf("components: %d  depth: %d  total cost: %s",
		opts.Stats.TotalComponents, opts.Stats.MaxDepth, opts.Stats.TotalCost.StringFixed(2)),
		fmt.Sprintf("fill:%s;font-size:13px;font-family:monospace", css(colorSubtle)))

	for i, r := range rows {
		x := marginX + r.Depth*indent
		y := header + i*rowH

		// connector from parent indent level
		if r.Depth > 0 {
			canvas.Line(x-indent+12, y-rowH+nodeH, x-indent+12, y+nodeH/2,
				fmt.Sprintf("stroke:%s;stroke-width:1.5", css(colorEdge)))
			canvas.Line(x-indent+12, y+nodeH/2, x, y+nodeH/2,
				fmt.Sprintf("stroke:%s;stroke-width:1.5", css(colorEdge)))
		}

		canvas.Roundrect(x, y, nodeW, nodeH, 6, 6,
			fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1", css(typeColor(r.Node.ItemType)), css(colorStroke)))
		canvas.Text(x+10, y+19, fmt.Sprintf("%s  %s", r.Node.SKU, truncate(r.Node.Name, 32)),
			fmt.Sprintf("fill:%s;font-size:12px;font-family:monospace", css(colorText)))

		qtyX := width - marginX - costCol*2
		canvas.Text(qtyX, y+19, fmt.Sprintf("%g %s", r.Node.Quantity, r.Node.Unit),
			fmt.Sprintf("fill:%s;font-size:12px;font-family:monospace", css(colorSubtle)))
		if r.Node.TotalCost != nil {
			canvas.Text(width-marginX-costCol, y+19, r.Node.TotalCost.StringFixed(2),
				fmt.Sprintf("fill:%s;font-size:12px;font-family:monospace", css(colorSubtle)))
		}
	}

	canvas.End()
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 1 {
		return s[:max]
	}
	return s[:max-1] + "…"
}
