package batch

import (
	"sync/atomic"
	"testing"
	"time"

	"Spraytower/internal/calc/gas"
	"Spraytower/internal/calc/props"
	"Spraytower/internal/calc/spraytower"
)

func item(eff float64, pt props.PollutantType) spraytower.Input {
	return spraytower.Input{
		Gas:       gas.Input{FlowNm3h: 20000, TemperatureC: 40, PressureKPa: 101.325},
		Pollutant: spraytower.Pollutant{Type: pt, InletMgNm3: 1500, TargetEfficiency: eff},
		Tower:     spraytower.Tower{LGRatio: 0.015, GasVelocityMs: 3, DropletDiameterMM: 1},
	}
}

func TestCalculate(t *testing.T) {
	calc := spraytower.New(props.Default())
	in := Input{Items: []spraytower.Input{
		item(0.9, props.SO2),
		item(0.5, props.SO2),
		item(0.9, "XYZ"),
		item(1.5, props.HCl),
	}}
	res, err := Calculate(calc, in)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Results) != 4 || res.Failed != 2 {
		t.Fatalf("results = %d failed = %d", len(res.Results), res.Failed)
	}
	for i, r := range res.Results {
		if r.Index != i {
			t.Errorf("result %d has index %d", i, r.Index)
		}
	}
	if res.Results[0].Result == nil || !res.Results[0].Result.Compliance.LimitsMet {
		t.Errorf("item 0 should be compliant")
	}
	if res.Results[1].Result == nil || res.Results[1].Result.Compliance.LimitsMet {
		t.Errorf("item 1 should not be compliant")
	}
	if res.Results[2].Error == "" || res.Results[3].Error == "" {
		t.Errorf("items 2 and 3 should fail: %+v %+v", res.Results[2], res.Results[3])
	}
}

func TestCalculateEmpty(t *testing.T) {
	if _, err := Calculate(spraytower.New(props.Default()), Input{}); err == nil {
		t.Error("expected error for empty batch")
	}
}

func TestRunBoundsWorkers(t *testing.T) {
	items := make([]spraytower.Input, 200)
	var active, peak int32
	res := run(items, 4, func(i int, _ spraytower.Input) Item {
		n := atomic.AddInt32(&active, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(time.Millisecond)
		atomic.AddInt32(&active, -1)
		return Item{Index: i}
	})
	if peak > 4 {
		t.Errorf("peak concurrency = %d, want <= 4", peak)
	}
	if len(res) != len(items) {
		t.Fatalf("results = %d", len(res))
	}
	for i, r := range res {
		if r.Index != i {
			t.Fatalf("result %d has index %d", i, r.Index)
		}
	}
}

func TestCalculateLargeBatch(t *testing.T) {
	in := Input{Items: make([]spraytower.Input, 500)}
	for i := range in.Items {
		in.Items[i] = item(0.9, props.SO2)
	}
	in.Items[250] = item(0.9, "XYZ")
	res, err := Calculate(spraytower.New(props.Default()), in)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Results) != 500 || res.Failed != 1 || res.Results[250].Error == "" {
		t.Errorf("results = %d failed = %d", len(res.Results), res.Failed)
	}
}
