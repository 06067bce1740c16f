package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fulldump/apitest"
)

// Save renders an acceptance request/response pair as a markdown API example
// into API_EXAMPLES_PATH. Nothing is written when the variable is empty.
func Save(response *apitest.Response, title, description string) {

	dir := os.Getenv("API_EXAMPLES_PATH")
	if dir == "" {
		return
	}

	request := response.Request
	requestBody := indentJSON(response.BodyRequestString())

	target := request.URL.Path
	if request.URL.RawQuery != "" {
		target += "?" + request.URL.RawQuery
	}

	md := &strings.Builder{}
	fmt.Fprintf(md, "# %s\n%s\n", title, dedent(description))

	md.WriteString("Curl example:\n\n```sh\ncurl ")
	if request.Method != http.MethodGet {
		fmt.Fprintf(md, "-X %s ", request.Method)
	}
	fmt.Fprintf(md, "\"https://example.com%s\"", target)
	for _, k := range sortedKeys(request.Header) {
		for _, v := range request.Header[k] {
			fmt.Fprintf(md, " \\\n-H \"%s: %s\"", k, v)
		}
	}
	if requestBody != "" {
		fmt.Fprintf(md, " \\\n-d '%s'", requestBody)
	}
	md.WriteString("\n```\n\n\n")

	md.WriteString("HTTP request/response example:\n\n```http\n")
	fmt.Fprintf(md, "%s %s %s\nHost: example.com\n", request.Method, target, request.Proto)
	for _, k := range sortedKeys(request.Header) {
		for _, v := range request.Header[k] {
			fmt.Fprintf(md, "%s: %s\n", k, v)
		}
	}
	fmt.Fprintf(md, "\n%s\n\n", requestBody)

	fmt.Fprintf(md, "%s %s\n", response.Proto, response.Status)
	for _, k := range sortedKeys(response.Header) {
		if k == "Date" {
			// stable output between runs
			md.WriteString("Date: Mon, 15 Aug 2022 02:08:13 GMT\n")
			continue
		}
		for _, v := range response.Header[k] {
			fmt.Fprintf(md, "%s: %s\n", k, v)
		}
	}
	fmt.Fprintf(md, "\n%s\n```\n\n\n", indentJSON(response.BodyString()))

	filename := strings.ReplaceAll(strings.ToLower(title), " ", "_") + ".md"
	p := filepath.Join(dir, filepath.Clean(filename))
	fmt.Println("Saving", p)
	if err := os.WriteFile(p, []byte(md.String()), 0666); err != nil {
		fmt.Println("Saving err:", err)
	}
}

func sortedKeys(h http.Header) []string {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// indentJSON pretty prints body, or returns it untouched if it is not JSON.
func indentJSON(body string) string {
	out := &bytes.Buffer{}
	if err := json.Indent(out, []byte(strings.TrimSpace(body)), "", "    "); err != nil {
		return body
	}
	return out.String()
}

// dedent removes the common leading tabs of an indented raw string literal.
func dedent(d string) string {
	lines := strings.Split(d, "\n")

	common := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, "\t"))
		if common < 0 || n < common {
			common = n
		}
	}
	if common <= 0 {
		return d
	}

	prefix := strings.Repeat("\t", common)
	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, prefix)
	}
	return strings.Join(lines, "\n")
}
