package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ardanlabs/blockexplorer/business/core/explorer"
	"github.com/ardanlabs/blockexplorer/business/core/paging"
	"github.com/ardanlabs/blockexplorer/business/core/search"
	"github.com/ardanlabs/blockexplorer/business/data/node"
	"github.com/ardanlabs/blockexplorer/foundation/format"
	"github.com/ardanlabs/blockexplorer/foundation/jsonrpc"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var (
	nodeURL       string
	browsePerPage int
)

var browseCmd = &cobra.Command{
	Use:   "browse <height|hash>",
	Short: "Page through a block's kernels and search them interactively.",
	Args:  cobra.ExactArgs(1),
	RunE:  browseRun,
}

func init() {
	rootCmd.AddCommand(browseCmd)
	browseCmd.Flags().StringVar(&nodeURL, "node", "http://127.0.0.1:18142/json_rpc", "Url of the base node json-rpc api.")
	browseCmd.Flags().IntVar(&browsePerPage, "per-page", 10, "Kernels per page.")
}

func browseRun(cmd *cobra.Command, args []string) error {
	rpc := jsonrpc.New(jsonrpc.Config{
		URL:     nodeURL,
		Timeout: 30 * time.Second,
	})
	core := explorer.NewCore(node.NewClient(rpc), explorer.Config{
		MaxPerPage: browsePerPage,
	})

	blk, err := core.Block(context.Background(), args[0])
	if err != nil {
		return err
	}

	p := tea.NewProgram(newBrowseModel(blk, browsePerPage), tea.WithOutput(cmd.OutOrStdout()))
	_, err = p.Run()
	return err
}

// =============================================================================

// searchField identifies which kernel field the search input matches.
type searchField int

const (
	fieldNone searchField = iota
	fieldNonce
	fieldSignature
)

type browseModel struct {
	header  node.BlockHeader
	session *paging.Session[node.Kernel]
	input   textinput.Model
	field   searchField
	query   search.KernelQuery
}

func newBrowseModel(blk node.Block, perPage int) browseModel {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 66

	return browseModel{
		header:  blk.Header,
		session: paging.NewSession(blk.Kernels, perPage),
		input:   ti,
	}
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.field != fieldNone {
		return m.updateInput(key)
	}

	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "n", "right":
		m.session.Next()

	case "p", "left":
		m.session.Prev()

	case "/":
		return m.openInput(fieldNonce, "public nonce")

	case "?":
		return m.openInput(fieldSignature, "signature")

	case "esc":
		m.query = search.KernelQuery{}
		m.session.Clear()
	}

	return m, nil
}

func (m browseModel) openInput(field searchField, placeholder string) (tea.Model, tea.Cmd) {
	m.field = field
	m.input.Placeholder = placeholder
	m.input.SetValue("")
	return m, m.input.Focus()
}

func (m browseModel) updateInput(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.field = fieldNone
		m.input.Blur()
		m.query = search.KernelQuery{}
		m.session.Clear()
		return m, nil

	case "enter":
		switch m.field {
		case fieldNonce:
			m.query = search.KernelQuery{Nonce: m.input.Value()}
		default:
			m.query = search.KernelQuery{Signature: m.input.Value()}
		}

		m.field = fieldNone
		m.input.Blur()

		if m.query.Empty() {
			m.query = search.KernelQuery{}
			m.session.Clear()
			return m, nil
		}

		q := m.query
		m.session.Search(func(ks []node.Kernel) (int, bool, error) {
			i, found := search.Kernels(ks, q)
			return i, found, nil
		})
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(key)
	return m, cmd
}

func (m browseModel) View() string {
	v := m.session.View()

	var b strings.Builder

	title := fmt.Sprintf("Block %d  %s  %s  %s",
		m.header.Height,
		format.Shorten(m.header.Hash.Hex()),
		format.PowCode(m.header.Pow.PowAlgo),
		format.Timestamp(m.header.Timestamp),
	)
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	rows := make([][]string, len(v.Items))
	highlight := -1
	for i, it := range v.Items {
		k := it.Record
		rows[i] = []string{
			fmt.Sprint(it.Index),
			format.Shorten(k.ExcessSig.PublicNonce.Hex()),
			format.Shorten(k.ExcessSig.Signature.Hex()),
			format.Shorten(k.Excess.Hex()),
			fmt.Sprint(k.Fee),
		}
		if it.Highlighted {
			highlight = i
		}
	}
	b.WriteString(renderTable([]string{"#", "Nonce", "Signature", "Excess", "Fee"}, rows, highlight))
	b.WriteString("\n")

	var message string
	if v.State == paging.NotFound {
		message = explorer.NoKernelMessage
	}
	b.WriteString(renderFooter(v.Page, v.TotalPages, v.Total, v.State.String(), message))
	b.WriteString("\n")

	switch {
	case m.query.Nonce != "":
		b.WriteString(footerStyle.Render("nonce: " + m.query.Nonce))
		b.WriteString("\n")
	case m.query.Signature != "":
		b.WriteString(footerStyle.Render("signature: " + m.query.Signature))
		b.WriteString("\n")
	}

	if m.field != fieldNone {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	b.WriteString(footerStyle.Render("n/p: page  /: nonce  ?: signature  esc: clear  q: quit"))
	b.WriteString("\n")

	return b.String()
}
