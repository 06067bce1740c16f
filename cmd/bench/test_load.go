package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// Load streams N documents to a new table in a single request.
func Load(c Config) string {

	table := CreateTable(c)

	r, w := io.Pipe()
	go func() {
		wb := bufio.NewWriterSize(w, 1*1024*1024)
		encoder := json.NewEncoder(wb)
		for i := int64(0); i < c.N; i++ {
			encoder.Encode(Document(i))
		}
		wb.Flush()
		w.Close()
	}()

	Discard(Post(NewClient(), c.Base+"/v1/tables/"+table+":load", r))

	return table
}

func TestLoad(c Config) {

	t0 := time.Now()
	Load(c)
	took := time.Since(t0)

	fmt.Println("loaded:", c.N)
	fmt.Println("took:", took)
	fmt.Printf("Throughput: %.2f rows/sec\n", float64(c.N)/took.Seconds())
}
