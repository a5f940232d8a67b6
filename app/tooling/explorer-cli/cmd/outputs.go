package cmd

import (
	"fmt"
	neturl "net/url"

	"github.com/ardanlabs/blockexplorer/foundation/format"
	"github.com/spf13/cobra"
)

var payref string

var outputsCmd = &cobra.Command{
	Use:   "outputs <height|hash>",
	Short: "Print a page of a block's outputs, optionally searching by payment reference.",
	Args:  cobra.ExactArgs(1),
	RunE:  outputsRun,
}

func init() {
	rootCmd.AddCommand(outputsCmd)
	outputsCmd.Flags().StringVarP(&payref, "payref", "r", "", "Payment reference of the output to find.")
	outputsCmd.Flags().IntVarP(&pageNum, "page", "p", 0, "Page to show.")
	outputsCmd.Flags().IntVar(&perPage, "per-page", 0, "Outputs per page.")
}

func outputsRun(cmd *cobra.Command, args []string) error {
	q := neturl.Values{}
	if payref != "" {
		q.Set("payref", payref)
	}
	setInt(q, "page", pageNum)
	setInt(q, "per_page", perPage)

	var pg page[output]
	if err := get("/v1/blocks/"+args[0]+"/outputs", q, &pg); err != nil {
		return err
	}

	rows, highlight := pagedTable(pg.Items, func(o output) []string {
		return []string{
			o.CommitmentShort,
			format.Shorten(o.PaymentReference),
			fmt.Sprint(o.OutputType),
			fmt.Sprint(o.Maturity),
		}
	})

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("Outputs of block %d", pg.Block.Height)))
	fmt.Fprintln(out, renderTable([]string{"#", "Commitment", "Payref", "Type", "Maturity"}, rows, highlight))
	fmt.Fprintln(out, renderFooter(pg.Page, pg.TotalPages, pg.Total, pg.State, pg.Message))

	return nil
}
