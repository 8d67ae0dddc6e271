package dto

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/guttosm/defipulse/internal/route"
	"github.com/guttosm/defipulse/internal/service"
)

func TestJSONNumber(t *testing.T) {
	if JSONNumber(math.NaN()) != nil {
		t.Fatalf("NaN should map to nil")
	}
	if JSONNumber(math.Inf(1)) != nil {
		t.Fatalf("+Inf should map to nil")
	}
	if v := JSONNumber(2.5); v == nil || *v != 2.5 {
		t.Fatalf("unexpected %v", v)
	}
}

func TestJSONTotals_Marshal(t *testing.T) {
	out := JSONTotals(map[string]float64{"a": 3, "b": math.NaN()})
	b, err := json.Marshal(out)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"a":3,"b":null}` {
		t.Fatalf("got %s", b)
	}
}

func TestNewDashboardResponse_EmptyArrays(t *testing.T) {
	resp := NewDashboardResponse(&service.Dashboard{
		Route:     route.Params{Category: "amm", Dataset: route.Fees, Type: "pair"},
		ChartType: "bar",
	})
	b, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if ts, ok := out["timestamps"].([]any); !ok || len(ts) != 0 {
		t.Fatalf("timestamps should be an empty array, got %v", out["timestamps"])
	}
	if s, ok := out["series"].([]any); !ok || len(s) != 0 {
		t.Fatalf("series should be an empty array, got %v", out["series"])
	}
}

func TestNewSummaryResponse(t *testing.T) {
	resp := NewSummaryResponse(&service.Summary{
		Category: "amm",
		Datasets: []service.DatasetSummary{
			{Dataset: route.Liquidity, Total: math.NaN(), Totals: map[string]float64{"weth": math.NaN()}},
			{Dataset: route.Volume, Total: 12, Totals: map[string]float64{"weth": 12}},
		},
	})
	if len(resp.Datasets) != 2 {
		t.Fatalf("datasets=%d", len(resp.Datasets))
	}
	if resp.Datasets[0].Total != nil || resp.Datasets[0].Totals["weth"] != nil {
		t.Fatalf("NaN totals should be nil: %+v", resp.Datasets[0])
	}
	if resp.Datasets[1].Dataset != "volume" || *resp.Datasets[1].Total != 12 {
		t.Fatalf("unexpected %+v", resp.Datasets[1])
	}
}
