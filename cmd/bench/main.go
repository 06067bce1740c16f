package main

import (
	"log"
	"strings"

	"github.com/fulldump/goconfig"
)

type Config struct {
	Test    string `usage:"name of the test: ALL | LOAD | UPSERT | SCROLL"`
	Base    string `usage:"base URL, empty starts an embedded server"`
	N       int64  `usage:"number of documents"`
	Workers int    `usage:"number of workers"`
	Batch   int    `usage:"documents per upsert request"`
	Lazy    bool   `usage:"measure only the rows around the viewport"`
}

func main() {

	c := Config{
		Test:    "scroll",
		Base:    "",
		N:       100_000,
		Workers: 16,
		Batch:   100,
		Lazy:    true,
	}
	goconfig.Read(&c)

	if c.Base == "" {
		start, stop := CreateServer(&c)
		defer stop()
		go start()
	}

	switch strings.ToUpper(c.Test) {
	case "ALL":
		TestLoad(c)
		TestUpsert(c)
		TestScroll(c)
	case "LOAD":
		TestLoad(c)
	case "UPSERT":
		TestUpsert(c)
	case "SCROLL":
		TestScroll(c)
	default:
		log.Fatalf("Unknown test %s", c.Test)
	}

}
