package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"
)

// TestUpsert sends batches of new documents from every worker. Each request is
// diffed against the whole table.
func TestUpsert(c Config) {

	table := CreateTable(c)
	url := c.Base + "/v1/tables/" + table + ":upsert"
	client := NewClient()

	items := int64(-1)

	t0 := time.Now()
	Parallel(c.Workers, func(worker int) {
		for {
			rows := make([]JSON, 0, c.Batch)
			for len(rows) < c.Batch {
				i := atomic.AddInt64(&items, 1)
				if i >= c.N {
					break
				}
				rows = append(rows, Document(i))
			}
			if len(rows) == 0 {
				return
			}

			payload, _ := json.Marshal(JSON{
				"rows":     rows,
				"viewport": JSON{"scrollOffset": 0, "viewportHeight": 800},
			})
			Discard(Post(client, url, bytes.NewReader(payload)))
		}
	})

	took := time.Since(t0)
	fmt.Println("upserted:", c.N)
	fmt.Println("took:", took)
	fmt.Printf("Throughput: %.2f rows/sec\n", float64(c.N)/took.Seconds())
}
