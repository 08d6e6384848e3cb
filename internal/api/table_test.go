package api

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTableCSV(t *testing.T) string {
	t.Helper()
	csv := `ID,Doctor_Name,Hospital,is_cancer_lung,communication_score
1,강영남,서울성모병원,1,4.5
2,김철수,세브란스병원,0,N/A
3,이민지,서울아산병원,1,`
	path := filepath.Join(t.TempDir(), "table.csv")
	if err := os.WriteFile(path, []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadTableTypeInference(t *testing.T) {
	table, err := LoadTable(writeTableCSV(t))
	if err != nil {
		t.Fatal(err)
	}
	if table.Len() != 3 {
		t.Fatalf("expected 3 rows, got %d", table.Len())
	}
	first := table.Rows()[0]
	if _, ok := first["ID"].(float64); !ok {
		t.Fatalf("ID column must be numeric, got %T", first["ID"])
	}
	if _, ok := first["Doctor_Name"].(string); !ok {
		t.Fatalf("Doctor_Name column must be text, got %T", first["Doctor_Name"])
	}
	// N/A and empty cells in a numeric column default to 0 at this layer.
	if v := table.Rows()[1]["communication_score"].(float64); v != 0 {
		t.Fatalf("N/A numeric cell should default to 0, got %v", v)
	}
	if v := table.Rows()[2]["communication_score"].(float64); v != 0 {
		t.Fatalf("empty numeric cell should default to 0, got %v", v)
	}
}

func TestLoadTableTextDefaults(t *testing.T) {
	csv := "ID,note\n1,\n2,hello"
	path := filepath.Join(t.TempDir(), "t.csv")
	if err := os.WriteFile(path, []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}
	table, err := LoadTable(path)
	if err != nil {
		t.Fatal(err)
	}
	if table.Rows()[0]["note"] != "N/A" {
		t.Fatalf("empty text cell should default to N/A, got %v", table.Rows()[0]["note"])
	}
}

func TestByID(t *testing.T) {
	table, err := LoadTable(writeTableCSV(t))
	if err != nil {
		t.Fatal(err)
	}
	row, ok := table.ByID(2)
	if !ok || row["Doctor_Name"] != "김철수" {
		t.Fatalf("unexpected lookup result: %v %v", row, ok)
	}
	if _, ok := table.ByID(42); ok {
		t.Fatal("lookup of unknown id must fail")
	}
}

func TestFilterByQuery(t *testing.T) {
	table, err := LoadTable(writeTableCSV(t))
	if err != nil {
		t.Fatal(err)
	}
	rows := table.FilterByQuery("폐암 잘 보는 교수님")
	if len(rows) != 2 {
		t.Fatalf("expected the 2 lung-flagged rows, got %d", len(rows))
	}
	if rows := table.FilterByQuery("무관한 질문"); len(rows) != 3 {
		t.Fatalf("unmatched keyword must return the full table, got %d", len(rows))
	}
}
