package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/ardanlabs/blockexplorer/app/services/explorer/handlers"
	"github.com/ardanlabs/blockexplorer/business/core/explorer"
	"github.com/ardanlabs/blockexplorer/business/data/node"
	"github.com/ardanlabs/blockexplorer/foundation/events"
	"github.com/ardanlabs/blockexplorer/foundation/jsonrpc"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

var payrefs = []string{
	strings.Repeat("01", 32),
	strings.Repeat("02", 32),
	strings.Repeat("03", 32),
}

var blockJSON = fmt.Sprintf(`{
	"header": {
		"hash": {"@@TAGGED@@": ["FixedHash", [170, 187]]},
		"height": 12,
		"timestamp": 1704164645,
		"pow": {"pow_algo": 1, "pow_data": []}
	},
	"kernels": [
		{"fee": 1, "excess_sig": {"public_nonce": [1], "signature": [17]}},
		{"fee": 2, "excess_sig": {"public_nonce": [2], "signature": [18]}},
		{"fee": 3, "excess_sig": {"public_nonce": [3], "signature": [19]}}
	],
	"inputs": [{"commitment": [9]}],
	"outputs": [
		{"payment_reference": %q},
		{"payment_reference": %q},
		{"payment_reference": %q}
	]
}`, payrefs[0], payrefs[1], payrefs[2])

type testApp struct {
	mux  http.Handler
	evts *events.Events
}

func newApp(t *testing.T) testApp {
	rpc := func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Method string          `json:"method"`
			Params json.RawMessage `json:"params"`
		}
		json.NewDecoder(r.Body).Decode(&req)

		w.Header().Set("Content-Type", "application/json")

		switch {
		case req.Method == "get_tip":
			w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":{"height":12,"hash":"aabb","timestamp":1704164645}}`))
		case req.Method == "get_block" && bytes.Contains(req.Params, []byte(`"height":12`)):
			w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":` + blockJSON + `}`))
		case req.Method == "get_block":
			w.Write([]byte(`{"jsonrpc":"2.0","id":1,"error":{"code":-32004,"message":"block not found"}}`))
		case req.Method == "get_block_headers" && bytes.Contains(req.Params, []byte(`"from_height":12,"limit":5`)):
			w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":[{"height":12,"timestamp":1704164645},{"height":11,"timestamp":1704164525}]}`))
		case req.Method == "get_mempool_transactions":
			w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":[{"kernels":[{"fee":7,"excess_sig":{"signature":[1]}}]}]}`))
		default:
			w.Write([]byte(`{"jsonrpc":"2.0","id":1,"error":{"code":-32603,"message":"internal"}}`))
		}
	}

	srv := httptest.NewServer(http.HandlerFunc(rpc))
	t.Cleanup(srv.Close)

	client := node.NewClient(jsonrpc.New(jsonrpc.Config{URL: srv.URL, Timeout: time.Second}))
	core := explorer.NewCore(client, explorer.Config{StatsWindow: 10, MaxPerPage: 50, MaxBlocks: 10})
	evts := events.New()
	t.Cleanup(evts.Shutdown)

	mux := handlers.APIMux(handlers.MuxConfig{
		Shutdown:       make(chan os.Signal, 1),
		Log:            zap.NewNop().Sugar(),
		Core:           core,
		Evts:           evts,
		CORSOrigin:     "*",
		PerPage:        2,
		OverviewBlocks: 5,
	})

	return testApp{mux: mux, evts: evts}
}

func (a testApp) get(t *testing.T, url string, v any) int {
	r := httptest.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	a.mux.ServeHTTP(w, r)

	if v != nil {
		if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
			t.Fatalf("\t%s\tShould be able to unmarshal the response from %s: %v : %s", failed, url, err, w.Body.String())
		}
	}

	return w.Code
}

type pageResponse struct {
	Page       int    `json:"page"`
	TotalPages int    `json:"total_pages"`
	State      string `json:"state"`
	Message    string `json:"message"`
	Match      *struct {
		Index int `json:"index"`
		Page  int `json:"page"`
	} `json:"match"`
	Items []struct {
		Index       int  `json:"index"`
		Highlighted bool `json:"highlighted"`
	} `json:"items"`
}

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// =============================================================================

func Test_KernelSearch(t *testing.T) {
	app := newApp(t)

	t.Log("Given the need to search the kernels of a block.")
	{
		t.Logf("\tTest 0:\tWhen searching for the nonce of the third kernel with 2 per page.")
		{
			var resp pageResponse
			code := app.get(t, "/v1/blocks/12/kernels?nonce=03", &resp)
			if code != http.StatusOK {
				t.Fatalf("\t%s\tTest 0:\tShould receive a 200 status : got %d", failed, code)
			}
			t.Logf("\t%s\tTest 0:\tShould receive a 200 status.", success)

			if resp.Page != 2 || resp.TotalPages != 2 || resp.State != "found" {
				t.Fatalf("\t%s\tTest 0:\tShould land on page 2 of 2 in the found state : got %+v", failed, resp)
			}
			t.Logf("\t%s\tTest 0:\tShould land on page 2 of 2 in the found state.", success)

			if resp.Match == nil || resp.Match.Index != 2 || resp.Match.Page != 2 {
				t.Fatalf("\t%s\tTest 0:\tShould report the match at index 2 on page 2 : got %+v", failed, resp.Match)
			}
			t.Logf("\t%s\tTest 0:\tShould report the match at index 2 on page 2.", success)

			if len(resp.Items) != 1 || !resp.Items[0].Highlighted || resp.Items[0].Index != 2 {
				t.Fatalf("\t%s\tTest 0:\tShould highlight the only record on the page : got %+v", failed, resp.Items)
			}
			t.Logf("\t%s\tTest 0:\tShould highlight the only record on the page.", success)
		}

		t.Logf("\tTest 1:\tWhen searching for a nonce no kernel carries.")
		{
			var resp pageResponse
			code := app.get(t, "/v1/blocks/12/kernels?nonce=ff", &resp)
			if code != http.StatusOK {
				t.Fatalf("\t%s\tTest 1:\tShould receive a 200 status : got %d", failed, code)
			}
			t.Logf("\t%s\tTest 1:\tShould receive a 200 status.", success)

			if resp.Page != 1 || resp.State != "not_found" || resp.Message != "No matching kernel found" {
				t.Fatalf("\t%s\tTest 1:\tShould stay on page 1 with the not found message : got %+v", failed, resp)
			}
			t.Logf("\t%s\tTest 1:\tShould stay on page 1 with the not found message.", success)

			for _, item := range resp.Items {
				if item.Highlighted {
					t.Fatalf("\t%s\tTest 1:\tShould not highlight any record.", failed)
				}
			}
			t.Logf("\t%s\tTest 1:\tShould not highlight any record.", success)
		}

		t.Logf("\tTest 2:\tWhen the page parameter isn't a number.")
		{
			var resp errorResponse
			code := app.get(t, "/v1/blocks/12/kernels?page=abc", &resp)
			if code != http.StatusBadRequest {
				t.Fatalf("\t%s\tTest 2:\tShould receive a 400 status : got %d", failed, code)
			}
			t.Logf("\t%s\tTest 2:\tShould receive a 400 status.", success)

			if _, exists := resp.Fields["page"]; !exists {
				t.Fatalf("\t%s\tTest 2:\tShould report the page field : got %+v", failed, resp)
			}
			t.Logf("\t%s\tTest 2:\tShould report the page field.", success)
		}
	}
}

func Test_OutputSearch(t *testing.T) {
	app := newApp(t)

	t.Log("Given the need to search the outputs of a block by payment reference.")
	{
		t.Logf("\tTest 0:\tWhen searching for the payref of the second output.")
		{
			var resp pageResponse
			code := app.get(t, "/v1/blocks/12/outputs?per_page=1&payref="+strings.ToUpper(payrefs[1]), &resp)
			if code != http.StatusOK {
				t.Fatalf("\t%s\tTest 0:\tShould receive a 200 status : got %d", failed, code)
			}
			t.Logf("\t%s\tTest 0:\tShould receive a 200 status.", success)

			if resp.Page != 2 || resp.State != "found" || len(resp.Items) != 1 || !resp.Items[0].Highlighted {
				t.Fatalf("\t%s\tTest 0:\tShould land on page 2 with the output highlighted : got %+v", failed, resp)
			}
			t.Logf("\t%s\tTest 0:\tShould land on page 2 with the output highlighted.", success)
		}

		t.Logf("\tTest 1:\tWhen the payref is malformed.")
		{
			var resp errorResponse
			code := app.get(t, "/v1/blocks/12/outputs?payref=xyz", &resp)
			if code != http.StatusBadRequest {
				t.Fatalf("\t%s\tTest 1:\tShould receive a 400 status : got %d", failed, code)
			}
			t.Logf("\t%s\tTest 1:\tShould receive a 400 status.", success)

			if _, exists := resp.Fields["payref"]; !exists {
				t.Fatalf("\t%s\tTest 1:\tShould report the payref field : got %+v", failed, resp)
			}
			t.Logf("\t%s\tTest 1:\tShould report the payref field.", success)
		}
	}
}

func Test_Errors(t *testing.T) {
	app := newApp(t)

	tt := []struct {
		name   string
		url    string
		status int
	}{
		{"unknown block", "/v1/blocks/99", http.StatusNotFound},
		{"bad block id", "/v1/blocks/not-a-block", http.StatusBadRequest},
		{"no kernel query", "/v1/search_kernels", http.StatusBadRequest},
		{"no search term", "/v1/search", http.StatusBadRequest},
		{"bad search term", "/v1/search?hash=zz", http.StatusBadRequest},
		{"node failure", "/v1/stats", http.StatusBadGateway},
		{"bad limit", "/v1/blocks?limit=0", http.StatusBadRequest},
	}

	t.Log("Given the need to report failures to the client.")
	{
		for testID, test := range tt {
			tf := func(t *testing.T) {
				t.Logf("\tTest %d:\tWhen requesting %s.", testID, test.url)
				{
					var resp errorResponse
					code := app.get(t, test.url, &resp)
					if code != test.status {
						t.Fatalf("\t%s\tTest %d:\tShould receive a %d status : got %d : %+v", failed, testID, test.status, code, resp)
					}
					t.Logf("\t%s\tTest %d:\tShould receive a %d status.", success, testID, test.status)

					if resp.Error == "" {
						t.Fatalf("\t%s\tTest %d:\tShould receive an error message.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould receive an error message.", success, testID)
				}
			}

			t.Run(test.name, tf)
		}
	}
}

func Test_Network(t *testing.T) {
	app := newApp(t)

	t.Log("Given the need to read the state of the network.")
	{
		t.Logf("\tTest 0:\tWhen requesting the tip.")
		{
			var resp struct {
				Height uint64 `json:"height"`
				Hash   string `json:"hash"`
			}
			code := app.get(t, "/v1/tip", &resp)
			if code != http.StatusOK || resp.Height != 12 || resp.Hash != "aabb" {
				t.Fatalf("\t%s\tTest 0:\tShould receive the tip : got %d %+v", failed, code, resp)
			}
			t.Logf("\t%s\tTest 0:\tShould receive the tip.", success)
		}

		t.Logf("\tTest 1:\tWhen requesting the mempool.")
		{
			var resp []struct {
				Fee       uint64 `json:"fee"`
				Signature string `json:"signature"`
			}
			code := app.get(t, "/v1/mempool", &resp)
			if code != http.StatusOK || len(resp) != 1 || resp[0].Fee != 7 || resp[0].Signature != "01" {
				t.Fatalf("\t%s\tTest 1:\tShould receive one transaction : got %d %+v", failed, code, resp)
			}
			t.Logf("\t%s\tTest 1:\tShould receive one transaction.", success)
		}

		t.Logf("\tTest 2:\tWhen requesting the latest blocks without a limit.")
		{
			var resp []struct {
				Height uint64 `json:"height"`
			}
			code := app.get(t, "/v1/blocks", &resp)
			if code != http.StatusOK {
				t.Fatalf("\t%s\tTest 2:\tShould receive a 200 status : got %d", failed, code)
			}
			t.Logf("\t%s\tTest 2:\tShould receive a 200 status.", success)

			if len(resp) != 2 || resp[0].Height != 12 || resp[1].Height != 11 {
				t.Fatalf("\t%s\tTest 2:\tShould walk back from the tip with the configured block count : got %+v", failed, resp)
			}
			t.Logf("\t%s\tTest 2:\tShould walk back from the tip with the configured block count.", success)
		}

		t.Logf("\tTest 3:\tWhen sending a CORS preflight request.")
		{
			r := httptest.NewRequest(http.MethodOptions, "/v1/tip", nil)
			w := httptest.NewRecorder()
			app.mux.ServeHTTP(w, r)

			if w.Code != http.StatusNoContent || w.Header().Get("Access-Control-Allow-Origin") != "*" {
				t.Fatalf("\t%s\tTest 3:\tShould accept the preflight : got %d %v", failed, w.Code, w.Header())
			}
			t.Logf("\t%s\tTest 3:\tShould accept the preflight.", success)
		}
	}
}

func Test_Events(t *testing.T) {
	app := newApp(t)

	srv := httptest.NewServer(app.mux)
	defer srv.Close()

	t.Log("Given the need to stream tip events over a websocket.")
	{
		t.Logf("\tTest 0:\tWhen a tip event is sent to a connected client.")
		{
			url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/events"
			c, _, err := websocket.DefaultDialer.Dial(url, nil)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to connect : %v", failed, err)
			}
			defer c.Close()
			t.Logf("\t%s\tTest 0:\tShould be able to connect.", success)

			deadline := time.Now().Add(2 * time.Second)
			for app.evts.Count() == 0 && time.Now().Before(deadline) {
				time.Sleep(10 * time.Millisecond)
			}

			if err := app.evts.Send("tip", map[string]int{"height": 13}); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to send the event : %v", failed, err)
			}

			c.SetReadDeadline(time.Now().Add(2 * time.Second))
			_, msg, err := c.ReadMessage()
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould receive the event : %v", failed, err)
			}

			var evt struct {
				Type string         `json:"type"`
				Data map[string]int `json:"data"`
			}
			if err := json.Unmarshal(msg, &evt); err != nil || evt.Type != "tip" || evt.Data["height"] != 13 {
				t.Fatalf("\t%s\tTest 0:\tShould receive the tip event : got %s", failed, msg)
			}
			t.Logf("\t%s\tTest 0:\tShould receive the tip event.", success)
		}
	}
}
