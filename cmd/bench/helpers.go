package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/fulldump/virtualtable/bootstrap"
	"github.com/fulldump/virtualtable/configuration"
)

type JSON = map[string]any

func Parallel(workers int, f func(worker int)) {
	wg := &sync.WaitGroup{}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			f(worker)
		}(i)
	}
	wg.Wait()
}

func NewClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			MaxConnsPerHost:     1024,
			MaxIdleConnsPerHost: 1024,
			MaxIdleConns:        1024,
		},
		Timeout: 60 * time.Second,
	}
}

func CreateTable(c Config) string {

	name := "bench-" + strconv.FormatInt(time.Now().UnixNano(), 10)

	payload, _ := json.Marshal(JSON{
		"name":    name,
		"columns": []JSON{{"name": "title", "width": 24}, {"name": "n"}},
		"lazy":    c.Lazy,
	})

	resp := Post(http.DefaultClient, c.Base+"/v1/tables", bytes.NewReader(payload))
	io.Copy(os.Stdout, resp.Body)
	resp.Body.Close()
	fmt.Println()

	return name
}

func Post(client *http.Client, url string, body io.Reader) *http.Response {
	req, err := http.NewRequest(http.MethodPost, url, body)
	if err != nil {
		fmt.Println("ERROR: new request:", err.Error())
		os.Exit(3)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		fmt.Println("ERROR: do request:", err.Error())
		os.Exit(4)
	}
	return resp
}

// Discard drains resp and reports unexpected statuses.
func Discard(resp *http.Response) {
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		fmt.Println("ERROR: bad status:", resp.Status)
	}
}

// Document builds the i-th fake document. Titles vary in length so rows wrap
// to different heights.
func Document(i int64) JSON {
	return JSON{
		"key": strconv.FormatInt(i, 10),
		"fields": JSON{
			"title": fmt.Sprintf("document %d %s", i, string(bytes.Repeat([]byte("lorem "), int(i%13)))),
			"n":     i,
		},
	}
}

func CreateServer(c *Config) (start, stop func()) {
	conf := configuration.Default()
	c.Base = "http://" + conf.HttpAddr

	return bootstrap.Bootstrap(conf)
}
