package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var blockCmd = &cobra.Command{
	Use:   "block <height|hash>",
	Short: "Print a block header.",
	Args:  cobra.ExactArgs(1),
	RunE:  blockRun,
}

func init() {
	rootCmd.AddCommand(blockCmd)
}

func blockRun(cmd *cobra.Command, args []string) error {
	var blk block
	if err := get("/v1/blocks/"+args[0], nil, &blk); err != nil {
		return err
	}

	h := blk.Header
	pairs := [][2]string{
		{"Height", fmt.Sprint(h.Height)},
		{"Hash", h.Hash},
		{"Previous", h.PrevHash},
		{"Time", h.Time},
		{"Proof of Work", h.Pow},
		{"Difficulty", fmt.Sprint(h.Difficulty)},
		{"Nonce", fmt.Sprint(h.Nonce)},
		{"Kernel MR", h.KernelMR},
		{"Output MR", h.OutputMR},
		{"Kernels", fmt.Sprint(blk.Kernels)},
		{"Outputs", fmt.Sprint(blk.Outputs)},
		{"Inputs", fmt.Sprint(blk.Inputs)},
	}

	fmt.Fprintln(cmd.OutOrStdout(), titleStyle.Render(fmt.Sprintf("Block %d", h.Height)))
	fmt.Fprintln(cmd.OutOrStdout(), renderPairs(pairs))

	return nil
}
