package collection_test

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"
	"github.com/whitestrannik/Examples.BlockingCollection/pkg/collection"
)

func Example() {
	c, err := collection.New[int](0)
	if err != nil {
		panic(err)
	}
	defer c.Close()

	for _, v := range []int{10, 20, 30} {
		_ = c.Add(v)
	}
	c.CompleteAdding()

	for {
		v, err := c.Take()
		if collection.IsInvalidState(err) {
			fmt.Println("drained:", errors.Is(err, collection.ErrDrained))
			break
		}
		fmt.Println(v)
	}
	// Output:
	// 10
	// 20
	// 30
	// drained: true
}

func ExampleCollection_Consume() {
	c, err := collection.New[string](1)
	if err != nil {
		panic(err)
	}
	defer c.Close()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for _, s := range []string{"a", "b", "c"} {
			_ = c.Add(s)
		}
		c.CompleteAdding()
	}()

	for s := range c.Consume() {
		fmt.Println(s)
	}
	wg.Wait()
	// Output:
	// a
	// b
	// c
}

func ExampleCollection_TryAdd() {
	c, err := collection.New[int](1)
	if err != nil {
		panic(err)
	}
	defer c.Close()

	ok, _ := c.TryAdd(1)
	fmt.Println(ok)
	ok, _ = c.TryAdd(2)
	fmt.Println(ok)
	// Output:
	// true
	// false
}
