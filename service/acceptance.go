package service

import (
	"net/http"
	"strings"

	"github.com/fulldump/apitest"
	"github.com/fulldump/biff"
)

type JSON = map[string]interface{}

func Acceptance(a *biff.A, apiRequest func(method, path string) *apitest.Request) {

	a.Alternative("Create table", func(a *biff.A) {
		resp := apiRequest("POST", "/tables").
			WithBodyJson(JSON{
				"name":               "people",
				"columns":            []JSON{{"name": "name", "width": 10}},
				"lazy":               false,
				"estimatedRowHeight": 20,
				"lineHeight":         20,
			}).Do()
		Save(resp, "Create table", `
			Creates an empty table. Options not given take the server defaults.
		`)

		biff.AssertEqual(resp.StatusCode, http.StatusCreated)
		body := resp.BodyJsonMap()
		biff.AssertEqual(body["name"], "people")
		biff.AssertEqualJson(body["rows"], 0)
		biff.AssertEqualJson(body["contentHeight"], 0)

		a.Alternative("Create table twice", func(a *biff.A) {
			resp := apiRequest("POST", "/tables").
				WithBodyJson(JSON{"name": "people"}).Do()
			Save(resp, "Create table - conflict", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusConflict)
		})

		a.Alternative("Create table with invalid name", func(a *biff.A) {
			resp := apiRequest("POST", "/tables").
				WithBodyJson(JSON{"name": "a:b"}).Do()

			biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
		})

		a.Alternative("Retrieve table", func(a *biff.A) {
			resp := apiRequest("GET", "/tables/people").Do()
			Save(resp, "Retrieve table", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			body := resp.BodyJsonMap()
			biff.AssertEqual(body["name"], "people")
			biff.AssertEqualJson(body["options"].(JSON)["lazy"], false)
		})

		a.Alternative("List tables", func(a *biff.A) {
			resp := apiRequest("GET", "/tables").Do()
			Save(resp, "List tables", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			tables := resp.BodyJson().([]interface{})
			biff.AssertEqual(len(tables), 1)
			biff.AssertEqual(tables[0].(JSON)["name"], "people")
		})

		a.Alternative("Drop table", func(a *biff.A) {
			resp := apiRequest("POST", "/tables/people:drop").Do()
			Save(resp, "Drop table", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusNoContent)

			a.Alternative("Get dropped table", func(a *biff.A) {
				resp := apiRequest("GET", "/tables/people").Do()
				Save(resp, "Retrieve table - not found", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
				biff.AssertEqualJson(resp.BodyJson(), JSON{
					"error": JSON{
						"message":     "table not found",
						"description": "table 'people' does not exist",
					},
				})
			})
		})

		a.Alternative("Upsert rows", func(a *biff.A) {
			resp := apiRequest("POST", "/tables/people:upsert").
				WithBodyJson(JSON{
					"rows": []JSON{
						{"key": "a", "fields": JSON{"name": "Ann"}},
						{"key": "b", "fields": JSON{"name": "Bob"}},
						{"key": "c", "fields": JSON{"name": "a very long name indeed"}},
					},
					"viewport": JSON{"viewportHeight": 40},
				}).Do()
			Save(resp, "Upsert rows", `
				Inserts or updates documents by key and returns what changed in the
				visible sequence. The first load is always a full reload.
			`)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			body := resp.BodyJsonMap()
			biff.AssertEqual(len(body["id"].(string)), 36)
			biff.AssertEqualJson(body["generation"], 1)
			biff.AssertEqualJson(body["fullReload"], true)
			biff.AssertEqualJson(body["contentHeight"], 100)
			biff.AssertEqualJson(body["scrollOffset"], 0)

			a.Alternative("Insert keeps the visible row in place", func(a *biff.A) {
				resp := apiRequest("POST", "/tables/people:upsert").
					WithBodyJson(JSON{
						"rows":     []JSON{{"key": "d", "fields": JSON{"name": "Dan"}}},
						"viewport": JSON{"scrollOffset": 20, "viewportHeight": 40},
					}).Do()
				Save(resp, "Upsert rows - insert", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				body := resp.BodyJsonMap()
				biff.AssertEqualJson(body["fullReload"], false)
				biff.AssertEqualJson(body["inserts"], []int{3})
				biff.AssertEqualJson(body["deletes"], []int{})
				biff.AssertEqualJson(body["moves"], []JSON{})
				biff.AssertEqualJson(body["updates"], []int{})
				biff.AssertEqualJson(body["contentHeight"], 120)
				biff.AssertEqualJson(body["scrollOffset"], 20)
				biff.AssertEqualJson(body["anchored"], true)

				a.Alternative("Sort", func(a *biff.A) {
					resp := apiRequest("POST", "/tables/people:query").
						WithBodyJson(JSON{
							"sort": JSON{"field": "name", "descending": true},
						}).Do()
					Save(resp, "Query - sort", `
						Reorders the rows. The row at the top of the viewport stays at
						the top of the viewport.
					`)

					biff.AssertEqual(resp.StatusCode, http.StatusOK)
					body := resp.BodyJsonMap()
					biff.AssertEqualJson(body["fullReload"], false)
					biff.AssertEqualJson(body["scrollOffset"], 80)

					resp = apiRequest("POST", "/tables/people:layout").
						WithBodyJson(JSON{}).Do()
					Save(resp, "Layout", ``)

					biff.AssertEqual(resp.StatusCode, http.StatusOK)
					keys := []string{}
					for _, r := range resp.BodyJsonMap()["rows"].([]interface{}) {
						keys = append(keys, r.(JSON)["key"].(string))
					}
					biff.AssertEqual(keys, []string{"c", "d", "b", "a"})
				})

				a.Alternative("Filter", func(a *biff.A) {
					resp := apiRequest("POST", "/tables/people:query").
						WithBodyJson(JSON{
							"filter": JSON{"name": "Bob"},
						}).Do()
					Save(resp, "Query - filter", ``)

					biff.AssertEqual(resp.StatusCode, http.StatusOK)
					body := resp.BodyJsonMap()
					biff.AssertEqualJson(body["fullReload"], true)
					biff.AssertEqualJson(body["contentHeight"], 20)
				})

				a.Alternative("Remove", func(a *biff.A) {
					resp := apiRequest("POST", "/tables/people:remove").
						WithBodyJson(JSON{"keys": []string{"b"}}).Do()
					Save(resp, "Remove rows", `
						Removes documents by key. When the row at the top of the
						viewport goes away the viewport sticks to its predecessor.
					`)

					biff.AssertEqual(resp.StatusCode, http.StatusOK)
					body := resp.BodyJsonMap()
					biff.AssertEqualJson(body["deletes"], []int{1})
					biff.AssertEqualJson(body["scrollOffset"], 0)
				})

				a.Alternative("Scroll", func(a *biff.A) {
					resp := apiRequest("POST", "/tables/people:scroll").
						WithBodyJson(JSON{
							"viewport": JSON{"scrollOffset": 1000, "viewportHeight": 40},
						}).Do()
					Save(resp, "Scroll", ``)

					biff.AssertEqual(resp.StatusCode, http.StatusOK)
					body := resp.BodyJsonMap()
					biff.AssertEqualJson(body["scrollOffset"], 80)
					biff.AssertEqualJson(body["contentHeight"], 120)
				})

				a.Alternative("Load", func(a *biff.A) {
					body := strings.Join([]string{
						`{"key":"x","fields":{"name":"Xavier"}}`,
						`{"key":"y","fields":{"name":"Yolanda"}}`,
					}, "\n")
					resp := apiRequest("POST", "/tables/people:load").
						WithBodyString(body).Do()
					Save(resp, "Load", `
						Replaces every document with a stream of JSON documents.
					`)

					biff.AssertEqual(resp.StatusCode, http.StatusOK)
					biff.AssertEqualJson(resp.BodyJsonMap()["fullReload"], true)
					biff.AssertEqualJson(resp.BodyJsonMap()["contentHeight"], 40)

					resp = apiRequest("GET", "/tables/people").Do()
					biff.AssertEqualJson(resp.BodyJsonMap()["documents"], 2)
				})

				a.Alternative("Load malformed", func(a *biff.A) {
					resp := apiRequest("POST", "/tables/people:load").
						WithBodyString(`{"key":"x"} {`).Do()

					biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)

					resp = apiRequest("GET", "/tables/people").Do()
					biff.AssertEqualJson(resp.BodyJsonMap()["documents"], 4)
				})
			})

			a.Alternative("Upsert without key", func(a *biff.A) {
				resp := apiRequest("POST", "/tables/people:upsert").
					WithBodyJson(JSON{
						"rows": []JSON{{"fields": JSON{"name": "Nobody"}}},
					}).Do()

				biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
			})
		})
	})

	a.Alternative("Unknown table", func(a *biff.A) {
		resp := apiRequest("POST", "/tables/nobody:scroll").
			WithBodyJson(JSON{}).Do()

		biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
	})
}
