package bulkhead_test

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jonwraymond/faultops/bulkhead"
	"github.com/jonwraymond/faultops/policy"
)

func ExampleNew() {
	bh := bulkhead.New[int](bulkhead.Config{
		MaxConcurrent: 2,
		MaxQueue:      0, // reject as soon as both slots are busy
	})

	release := make(chan struct{})
	var wg sync.WaitGroup
	ready := make(chan struct{}, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bh.Execute(context.Background(), func(ctx context.Context) (int, error) {
				ready <- struct{}{}
				<-release
				return 0, nil
			})
		}()
	}
	<-ready
	<-ready

	out := bh.Execute(context.Background(), func(ctx context.Context) (int, error) {
		return 0, nil
	})
	fmt.Println(errors.Is(out.Err(), policy.ErrBulkheadFull))

	close(release)
	wg.Wait()
	// Output:
	// true
}
