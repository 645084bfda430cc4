package batch

import (
	"fmt"
	"runtime"
	"sync"

	"Spraytower/internal/calc/spraytower"
)

type Input struct {
	Items []spraytower.Input `json:"items"`
}

type Item struct {
	Index  int                `json:"index"`
	Result *spraytower.Result `json:"result,omitempty"`
	Error  string             `json:"error,omitempty"`
}

type Result struct {
	Results []Item `json:"results"`
	Failed  int    `json:"failed"`
}

// Calculate evaluates every item on at most GOMAXPROCS workers. A failing item
// is reported in place and does not stop the batch.
func Calculate(calc *spraytower.Calculator, in Input) (Result, error) {
	if len(in.Items) == 0 {
		return Result{}, fmt.Errorf("no items")
	}
	out := Result{Results: run(in.Items, runtime.GOMAXPROCS(0), func(i int, item spraytower.Input) Item {
		return evaluate(calc, i, item)
	})}
	for _, r := range out.Results {
		if r.Error != "" {
			out.Failed++
		}
	}
	return out, nil
}

// run applies fn to every item using a fixed pool of workers and returns the
// items in input order.
func run(items []spraytower.Input, workers int, fn func(int, spraytower.Input) Item) []Item {
	if workers < 1 {
		workers = 1
	}
	if workers > len(items) {
		workers = len(items)
	}
	results := make([]Item, len(items))
	next := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range next {
				results[i] = fn(i, items[i])
			}
		}()
	}
	for i := range items {
		next <- i
	}
	close(next)
	wg.Wait()
	return results
}

func evaluate(calc *spraytower.Calculator, i int, in spraytower.Input) Item {
	if err := spraytower.Validate(in); err != nil {
		return Item{Index: i, Error: err.Error()}
	}
	res, err := calc.Calculate(in)
	if err != nil {
		return Item{Index: i, Error: err.Error()}
	}
	return Item{Index: i, Result: &res}
}
