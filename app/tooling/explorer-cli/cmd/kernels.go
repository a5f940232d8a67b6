package cmd

import (
	"fmt"
	neturl "net/url"

	"github.com/ardanlabs/blockexplorer/foundation/format"
	"github.com/spf13/cobra"
)

var (
	nonce     string
	signature string
	pageNum   int
	perPage   int
)

var kernelsCmd = &cobra.Command{
	Use:   "kernels <height|hash>",
	Short: "Print a page of a block's kernels, optionally searching by nonce or signature.",
	Args:  cobra.ExactArgs(1),
	RunE:  kernelsRun,
}

func init() {
	rootCmd.AddCommand(kernelsCmd)
	kernelsCmd.Flags().StringVarP(&nonce, "nonce", "n", "", "Public nonce of the kernel to find.")
	kernelsCmd.Flags().StringVarP(&signature, "signature", "s", "", "Signature of the kernel to find.")
	kernelsCmd.Flags().IntVarP(&pageNum, "page", "p", 0, "Page to show.")
	kernelsCmd.Flags().IntVar(&perPage, "per-page", 0, "Kernels per page.")
}

func kernelsRun(cmd *cobra.Command, args []string) error {
	q := neturl.Values{}
	if nonce != "" {
		q.Set("nonce", nonce)
	}
	if signature != "" {
		q.Set("signature", signature)
	}
	setInt(q, "page", pageNum)
	setInt(q, "per_page", perPage)

	var pg page[kernel]
	if err := get("/v1/blocks/"+args[0]+"/kernels", q, &pg); err != nil {
		return err
	}

	rows, highlight := pagedTable(pg.Items, func(k kernel) []string {
		return []string{
			format.Shorten(k.PublicNonce),
			format.Shorten(k.Signature),
			k.ExcessShort,
			fmt.Sprint(k.Fee),
			fmt.Sprint(k.LockHeight),
		}
	})

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("Kernels of block %d", pg.Block.Height)))
	fmt.Fprintln(out, renderTable([]string{"#", "Nonce", "Signature", "Excess", "Fee", "Lock Height"}, rows, highlight))
	fmt.Fprintln(out, renderFooter(pg.Page, pg.TotalPages, pg.Total, pg.State, pg.Message))

	return nil
}
