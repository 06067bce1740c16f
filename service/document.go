package service

import (
	"fmt"
	"math"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/go-json-experiment/json"
	"github.com/mattn/go-runewidth"

	"github.com/fulldump/virtualtable/reconcile"
)

type Document struct {
	Key    string         `json:"key"`
	Fields map[string]any `json:"fields"`
}

type Column struct {
	Name  string `json:"name"`
	Width int    `json:"width"`
}

type row struct {
	Document
	fingerprint reconcile.Fingerprint
	position    int // insertion order, tie breaker for sorting
}

// fingerprint hashes the deterministic encoding of the fields. Equal fields give
// equal fingerprints whatever the order their keys arrived in.
func fingerprint(fields map[string]any) (reconcile.Fingerprint, error) {
	data, err := json.Marshal(fields, json.Deterministic(true))
	if err != nil {
		return reconcile.NoFingerprint, fmt.Errorf("encode fields: %w", err)
	}
	f := reconcile.Fingerprint(xxhash.Sum64(data))
	if f == reconcile.NoFingerprint {
		f = 1
	}
	return f, nil
}

// cellText is what a column shows for a field value.
func cellText(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return fmt.Sprint(v)
	case bool:
		if v {
			return "true"
		}
		return "false"
	}
	data, err := json.Marshal(v, json.Deterministic(true))
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}

// lines is the number of text lines a cell needs once wrapped at width display
// cells. Explicit line breaks start a new line.
func lines(text string, width int) int {
	if width <= 0 {
		width = 1
	}
	total := 0
	for _, line := range strings.Split(text, "\n") {
		w := runewidth.StringWidth(line)
		total += max(1, int(math.Ceil(float64(w)/float64(width))))
	}
	return total
}

// rowHeight is the height of the tallest cell of d.
func rowHeight(d *Document, columns []Column, lineHeight float64, defaultWidth int) float64 {
	n := 1
	for _, c := range columns {
		width := c.Width
		if width <= 0 {
			width = defaultWidth
		}
		n = max(n, lines(cellText(d.Fields[c.Name]), width))
	}
	return lineHeight * float64(n)
}

// compareValues orders field values: missing first, then numbers, then strings,
// then anything else by its text.
func compareValues(a, b any) int {
	ra, rb := rank(a), rank(b)
	if ra != rb {
		return ra - rb
	}
	switch a := a.(type) {
	case nil:
		return 0
	case float64:
		b := b.(float64)
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		}
		return 0
	case string:
		return strings.Compare(a, b.(string))
	}
	return strings.Compare(cellText(a), cellText(b))
}

func rank(v any) int {
	switch v.(type) {
	case nil:
		return 0
	case float64:
		return 1
	case string:
		return 2
	}
	return 3
}
