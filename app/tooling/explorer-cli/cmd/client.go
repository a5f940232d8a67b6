package cmd

import (
	"encoding/json"
	"fmt"
	"maps"
	"net/http"
	neturl "net/url"
	"slices"
	"time"

	"github.com/ardanlabs/blockexplorer/business/web/errs"
)

var client = http.Client{
	Timeout: 30 * time.Second,
}

// get performs a GET against the explorer api and decodes the response
// into v. A failed request returns the error message from the api.
func get(path string, query neturl.Values, v any) error {
	u := url + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	resp, err := client.Get(u)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var er errs.Response
		if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
			return fmt.Errorf("%s: %s", path, resp.Status)
		}

		if len(er.Fields) > 0 {
			fields := slices.Sorted(maps.Keys(er.Fields))
			return fmt.Errorf("%s: %s: %s", er.Error, fields[0], er.Fields[fields[0]])
		}
		return fmt.Errorf("%s: %s", resp.Status, er.Error)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}

	return nil
}

// setInt adds a numeric query value when it was provided.
func setInt(q neturl.Values, key string, n int) {
	if n > 0 {
		q.Set(key, fmt.Sprint(n))
	}
}
