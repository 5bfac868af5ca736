package utils

import "testing"

func TestMergeLabel(t *testing.T) {
	tests := []struct {
		name     string
		existing Label
		incoming Label
		want     Label
	}{
		{"empty existing", Label{}, Label{Value: "a", Source: "rank"}, Label{Value: "a", Source: "rank"}},
		{"empty incoming", Label{Value: "a", Source: "rank"}, Label{}, Label{Value: "a", Source: "rank"}},
		{"both", Label{Value: "a", Source: "rank"}, Label{Value: "b", Source: "rerank"}, Label{Value: "a|b", Source: "rank,rerank"}},
		{"missing source", Label{Value: "a"}, Label{Value: "b", Source: "rerank"}, Label{Value: "a|b", Source: "rerank"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MergeLabel(tt.existing, tt.incoming); got != tt.want {
				t.Errorf("MergeLabel() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFloatLabel(t *testing.T) {
	lbl := FloatLabel(0.49, "rerank")
	if lbl.Value != "0.490000" {
		t.Errorf("Value = %q", lbl.Value)
	}
	f, ok := lbl.ParseFloat()
	if !ok || f != 0.49 {
		t.Errorf("ParseFloat() = %v, %v", f, ok)
	}
	if _, ok := (Label{Value: "x"}).ParseFloat(); ok {
		t.Error("non-numeric label should not parse")
	}
}
