package cmd

import (
	"fmt"
	neturl "net/url"

	"github.com/ardanlabs/blockexplorer/foundation/format"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <height|hash|commitments>",
	Short: "Find a block by height or hash, or outputs by commitment.",
	Args:  cobra.ExactArgs(1),
	RunE:  searchRun,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func searchRun(cmd *cobra.Command, args []string) error {
	q := neturl.Values{}
	q.Set("hash", args[0])

	var res searchResult
	if err := get("/v1/search", q, &res); err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if res.Block != nil {
		h := res.Block.Header
		fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("Block %d", h.Height)))
		fmt.Fprintln(out, renderPairs([][2]string{
			{"Hash", h.Hash},
			{"Time", h.Time},
			{"Proof of Work", h.Pow},
		}))
		return nil
	}

	rows := make([][]string, len(res.Outputs))
	for i, o := range res.Outputs {
		rows[i] = []string{
			fmt.Sprint(o.Height),
			format.Shorten(o.BlockHash),
			format.Shorten(o.Commitment),
			o.MinedTime,
			fmt.Sprint(o.Spent),
		}
	}

	fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("Outputs (%d)", len(rows))))
	fmt.Fprintln(out, renderTable([]string{"Height", "Block", "Commitment", "Mined", "Spent"}, rows, -1))

	return nil
}
