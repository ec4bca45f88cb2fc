package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/inventaworks/inventa/pkg/grid"
	"github.com/inventaworks/inventa/pkg/model"
)

func exportConfig() grid.Config {
	return grid.Config{
		Entity: "items",
		Columns: []grid.Column{
			{ID: "sku", Field: "sku", Label: "SKU", Kind: grid.CellText, FilterKind: grid.FilterText, Width: 14},
			{ID: "type", Field: "type", Label: "Type", Kind: grid.CellSelect, FilterKind: grid.FilterSelect},
			{ID: "cost", Field: "cost", Label: "Cost", Kind: grid.CellNumber, FilterKind: grid.FilterNumber},
		},
		Features: grid.Features{Sorting: true, Filtering: true, Pagination: true, Export: true},
	}
}

func exportTable(t *testing.T) *grid.Table {
	t.Helper()
	tbl := grid.NewTable(exportConfig(), grid.NewCollator("en"))
	tbl.SetRows([]map[string]any{
		{"sku": "A-1", "type": "RM", "cost": 10.0},
		{"sku": "A-2", "type": "FG", "cost": 25.5},
		{"sku": "A-3", "type": "RM", "cost": 5.0},
	})
	return tbl
}

func TestCSVReflectsProjection(t *testing.T) {
	tbl := exportTable(t)
	tbl.SetValue("type", grid.Value{"RM"})
	tbl.CycleSort("cost") // ascending

	out, err := CSV(tbl)
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines:\n%s", len(lines), out)
	}
	if lines[0] != "SKU,Type,Cost" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "A-3,RM,5" || lines[2] != "A-1,RM,10" {
		t.Errorf("rows not filtered+sorted:\n%s", out)
	}
}

func TestCSVSkipsHiddenColumns(t *testing.T) {
	tbl := exportTable(t)
	tbl.SetColumnVisible("type", false)

	out, err := CSV(tbl)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(strings.Split(out, "\n")[0], "Type") {
		t.Errorf("hidden column in header: %q", out)
	}
}

func TestCSVIgnoresPagination(t *testing.T) {
	tbl := exportTable(t)
	tbl.SetPageSize(10)

	rows := make([]map[string]any, 0, 25)
	for i := 0; i < 25; i++ {
		rows = append(rows, map[string]any{"sku": "B", "type": "PT", "cost": float64(i)})
	}
	tbl.SetRows(rows)

	out, err := CSV(tbl)
	if err != nil {
		t.Fatal(err)
	}
	if got := len(strings.Split(strings.TrimSpace(out), "\n")); got != 26 {
		t.Errorf("expected all 25 rows + header, got %d lines", got)
	}
}

func TestWriteCSV(t *testing.T) {
	tbl := exportTable(t)
	path := filepath.Join(t.TempDir(), "items.csv")

	if err := WriteCSV(tbl, path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "SKU,Type,Cost") {
		t.Errorf("file content = %q", data)
	}
}

func TestWriteXLSX(t *testing.T) {
	tbl := exportTable(t)
	tbl.CycleSort("sku")
	path := filepath.Join(t.TempDir(), "items.xlsx")

	if err := WriteXLSX(tbl, path); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	got, err := f.GetCellValue("items", "A1")
	if err != nil {
		t.Fatal(err)
	}
	if got != "SKU" {
		t.Errorf("A1 = %q, want SKU", got)
	}
	if got, _ := f.GetCellValue("items", "A2"); got != "A-1" {
		t.Errorf("A2 = %q, want A-1", got)
	}
	// numeric cell survives as a number
	if got, _ := f.GetCellValue("items", "C3"); got != "25.5" {
		t.Errorf("C3 = %q, want 25.5", got)
	}
	if got, _ := f.GetCellValue("items", "A5"); got != "3 rows" {
		t.Errorf("summary = %q", got)
	}
}

func testTree() model.BomNode {
	ten := decimal.NewFromInt(10)
	forty := decimal.NewFromInt(40)
	return model.BomNode{
		ID: "n0", SKU: "CHAIR-01", Name: "Chair", ItemType: model.TypeFinishedGood,
		Quantity: 1, Unit: "EA", TotalCost: &forty,
		Children: []model.BomNode{
			{ID: "n1", SKU: "LEG-01", Name: "Leg", ItemType: model.TypePart,
				Quantity: 4, Unit: "EA", TotalCost: &ten},
			{ID: "n2", SKU: "SEAT-01", Name: "Seat", ItemType: model.TypeSemiFinished,
				Quantity: 1, Unit: "EA",
				Children: []model.BomNode{
					{ID: "n3", SKU: "WOOD-01", Name: "Board", ItemType: model.TypeRawMaterial,
						Quantity: 2, Unit: "EA"},
				}},
		},
	}
}

func TestFlattenTreeDepthFirst(t *testing.T) {
	rows := flattenTree(testTree())
	if len(rows) != 4 {
		t.Fatalf("got %d rows", len(rows))
	}
	wantSKU := []string{"CHAIR-01", "LEG-01", "SEAT-01", "WOOD-01"}
	wantDepth := []int{0, 1, 1, 2}
	for i, r := range rows {
		if r.Node.SKU != wantSKU[i] || r.Depth != wantDepth[i] {
			t.Errorf("row %d = %s depth %d, want %s depth %d", i, r.Node.SKU, r.Depth, wantSKU[i], wantDepth[i])
		}
	}
}

func TestSaveBomSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bom.svg")
	err := SaveBomSnapshot(BomSnapshotOptions{
		Path: path,
		Tree: testTree(),
		Stats: model.BomStats{
			TotalComponents: 3,
			MaxDepth:        2,
			TotalCost:       decimal.NewFromInt(40),
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	svg := string(data)
	if !strings.Contains(svg, "<svg") {
		t.Error("not an svg document")
	}
	for _, sku := range []string{"CHAIR-01", "LEG-01", "SEAT-01", "WOOD-01"} {
		if !strings.Contains(svg, sku) {
			t.Errorf("svg missing node %s", sku)
		}
	}
	if !strings.Contains(svg, "components: 3") {
		t.Error("svg missing summary block")
	}
}

func TestSaveBomSnapshotAppendsExtension(t *testing.T) {
	base := filepath.Join(t.TempDir(), "bom")
	err := SaveBomSnapshot(BomSnapshotOptions{Path: base, Tree: testTree()})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(base + ".svg"); err != nil {
		t.Errorf("file with appended extension missing: %v", err)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate short = %q", got)
	}
	if got := truncate("a very long component name", 10); len([]rune(got)) != 10 || !strings.HasSuffix(got, "…") {
		t.Errorf("truncate long = %q", got)
	}
}
