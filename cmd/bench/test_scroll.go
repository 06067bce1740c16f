package main

import (
	"fmt"
	"math/rand"
	"strings"
	"sync/atomic"
	"time"
)

// TestScroll loads N documents and then jumps to random offsets from every
// worker, which is the worst case for the lazy measurement window.
func TestScroll(c Config) {

	table := Load(c)
	url := c.Base + "/v1/tables/" + table + ":scroll"
	client := NewClient()

	const requestsPerWorker = 1000
	maxOffset := float64(c.N) * 44

	var requests int64

	t0 := time.Now()
	Parallel(c.Workers, func(worker int) {
		random := rand.New(rand.NewSource(int64(worker)))
		for i := 0; i < requestsPerWorker; i++ {
			body := fmt.Sprintf(`{"viewport":{"scrollOffset":%f,"viewportHeight":800}}`, random.Float64()*maxOffset)
			Discard(Post(client, url, strings.NewReader(body)))
			atomic.AddInt64(&requests, 1)
		}
	})

	took := time.Since(t0)
	fmt.Println("scrolls:", requests)
	fmt.Println("took:", took)
	fmt.Printf("Throughput: %.2f scrolls/sec\n", float64(requests)/took.Seconds())
}
