package cmd

import (
	"fmt"
	neturl "net/url"

	"github.com/ardanlabs/blockexplorer/foundation/format"
	"github.com/spf13/cobra"
)

var window int

var mempoolCmd = &cobra.Command{
	Use:   "mempool",
	Short: "Print the unconfirmed transactions.",
	Args:  cobra.NoArgs,
	RunE:  mempoolRun,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print the network hash rates and the miners of recent blocks.",
	Args:  cobra.NoArgs,
	RunE:  statsRun,
}

func init() {
	rootCmd.AddCommand(mempoolCmd)
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().IntVarP(&window, "window", "w", 0, "Number of recent blocks to count miners over.")
}

func mempoolRun(cmd *cobra.Command, args []string) error {
	var txs []mempoolTx
	if err := get("/v1/mempool", nil, &txs); err != nil {
		return err
	}

	rows := make([][]string, len(txs))
	for i, tx := range txs {
		rows[i] = []string{
			format.Shorten(tx.Signature),
			tx.Excess,
			fmt.Sprint(tx.Fee),
			fmt.Sprint(tx.Kernels),
			fmt.Sprint(tx.Inputs),
			fmt.Sprint(tx.Outputs),
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("Mempool (%d transactions)", len(txs))))
	fmt.Fprintln(out, renderTable([]string{"Signature", "Excess", "Fee", "Kernels", "Inputs", "Outputs"}, rows, -1))

	return nil
}

func statsRun(cmd *cobra.Command, args []string) error {
	var s stats
	if err := get("/v1/stats", nil, &s); err != nil {
		return err
	}

	q := neturl.Values{}
	setInt(q, "window", window)

	var miners []minerShare
	if err := get("/v1/miners", q, &miners); err != nil {
		return err
	}

	pairs := [][2]string{
		{"Tip Height", fmt.Sprint(s.TipHeight)},
		{"SHA3x", s.Sha3x.Display},
		{"RandomX", s.RandomX.Display},
		{"RandomX (Merge Mined)", s.MergeMinedRandomX.Display},
		{"Average Block Time", fmt.Sprintf("%.1fs", s.AverageBlockTime)},
	}

	rows := make([][]string, len(miners))
	for i, m := range miners {
		rows[i] = []string{m.Label, fmt.Sprint(m.Blocks), fmt.Sprintf("%.1f%%", m.Percent)}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, titleStyle.Render("Network"))
	fmt.Fprintln(out, renderPairs(pairs))
	fmt.Fprintln(out, titleStyle.Render("Miners"))
	fmt.Fprintln(out, renderTable([]string{"Algorithm", "Blocks", "Share"}, rows, -1))

	return nil
}
