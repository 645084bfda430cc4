package optimize

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"Spraytower/internal/calc/props"
	"Spraytower/internal/calc/spraytower"
)

func TestHandlerOptimize(t *testing.T) {
	h := &Handler{Eval: spraytower.New(props.Default()), MaxIterations: 20}
	body, _ := json.Marshal(Request{Input: so2Case(0.5)})
	rec := httptest.NewRecorder()
	h.Optimize(rec, httptest.NewRequest(http.MethodPost, "/api/user/tools/spraytower/optimize", bytes.NewReader(body)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	var out Output
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Iterations < 1 || len(out.Log) == 0 {
		t.Errorf("iterations = %d, log = %v", out.Iterations, out.Log)
	}
}

func TestHandlerCapsIterations(t *testing.T) {
	eval := &fakeEval{outlet: func(spraytower.Input) float64 { return 300 }}
	h := &Handler{Eval: eval, MaxIterations: 20}
	body, _ := json.Marshal(Request{Input: so2Case(0.5), MaxIterations: 1000000})
	rec := httptest.NewRecorder()
	h.Optimize(rec, httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	var out Output
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Outcome != ExhaustedIterations || out.Iterations != h.MaxIterations {
		t.Errorf("outcome %s after %d iterations, want %d", out.Outcome, out.Iterations, h.MaxIterations)
	}
	if len(eval.seen) != h.MaxIterations+1 {
		t.Errorf("evaluated %d designs", len(eval.seen))
	}
}

func TestBudget(t *testing.T) {
	for _, tc := range []struct{ requested, limit, want int }{
		{0, 20, 20},
		{5, 20, 5},
		{20, 20, 20},
		{1000000, 20, 20},
		{-3, 50, 50},
		{30, 0, DefaultMaxIterations},
	} {
		if got := Budget(tc.requested, tc.limit); got != tc.want {
			t.Errorf("Budget(%d, %d) = %d, want %d", tc.requested, tc.limit, got, tc.want)
		}
	}
}
