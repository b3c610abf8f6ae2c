package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"device-inventory/core/config"
	"device-inventory/core/logger"
	"device-inventory/core/router"
	"device-inventory/feature/arp"
	"device-inventory/feature/bridge"
	"device-inventory/feature/dhcp"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the query command
	queryMAC    string
	queryIP     string
	queryActive bool
	queryJSON   bool
)

var (
	queryHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#BD93F9")).Padding(0, 1)
	queryCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	queryBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6272A4"))
)

// queryCmd prints the raw rows of one record source.
var queryCmd = &cobra.Command{
	Use:       "query leases|arp|bridge",
	Short:     "Print raw DHCP lease, ARP or bridge host rows",
	Long:      `Queries a single record source on the router and prints its rows without reconciliation.`,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"leases", "arp", "bridge"},
	RunE:      runQuery,
}

func init() {
	queryCmd.Flags().StringVar(&queryMAC, "mac", "", "Filter by hardware address")
	queryCmd.Flags().StringVar(&queryIP, "ip", "", "Filter by IP address (leases and arp)")
	queryCmd.Flags().BoolVar(&queryActive, "active", false, "Only bound leases (leases)")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "Print rows as JSON")

	RootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = l.Sync() }()

	ctx := context.Background()
	session, err := router.Open(ctx, cfg.Router, l)
	if err != nil {
		return err
	}
	defer func() {
		if err := session.Close(); err != nil {
			l.Warn("Failed to close router session", zap.Error(err))
		}
	}()

	var (
		headers []string
		rows    [][]string
		records any
	)

	switch args[0] {
	case "leases":
		leases, err := queryLeases(ctx, dhcp.NewSource(session, l))
		if err != nil {
			return err
		}
		records = leases
		headers = []string{"ADDRESS", "MAC ADDRESS", "HOSTNAME", "STATUS", "SERVER", "LAST SEEN", "DYNAMIC", "COMMENT"}
		for _, lease := range leases {
			rows = append(rows, []string{
				lease.EffectiveAddress(), lease.EffectiveMACAddress(), lease.HostName, string(lease.Status),
				lease.Server, lease.LastSeen, flagString(lease.Dynamic), lease.Comment,
			})
		}

	case "arp":
		entries, err := queryARP(ctx, arp.NewSource(session, l))
		if err != nil {
			return err
		}
		records = entries
		headers = []string{"ADDRESS", "MAC ADDRESS", "INTERFACE", "STATUS", "PUBLISHED", "INVALID", "DYNAMIC"}
		for _, e := range entries {
			rows = append(rows, []string{
				e.Address, e.MACAddress, e.Interface, string(e.Status),
				flagString(e.Published), flagString(e.Invalid), flagString(e.Dynamic),
			})
		}

	case "bridge":
		hosts, err := queryBridge(ctx, bridge.NewSource(session, l))
		if err != nil {
			return err
		}
		records = hosts
		headers = []string{"MAC ADDRESS", "BRIDGE", "ON INTERFACE", "VID", "LOCAL", "DYNAMIC", "INVALID"}
		for _, h := range hosts {
			vid := ""
			if h.VID != nil {
				vid = strconv.Itoa(*h.VID)
			}
			rows = append(rows, []string{
				h.MACAddress, h.Bridge, h.OnInterface, vid,
				flagString(h.Local), flagString(h.Dynamic), flagString(h.Invalid),
			})
		}
	}

	if queryJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(queryBorderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return queryHeaderStyle
			}
			return queryCellStyle
		})
	fmt.Println(t.String())
	fmt.Printf("%d rows\n", len(rows))
	return nil
}

func queryLeases(ctx context.Context, src *dhcp.Source) ([]dhcp.Lease, error) {
	switch {
	case queryMAC != "":
		return single(src.ByMAC(ctx, queryMAC))
	case queryIP != "":
		return single(src.ByIP(ctx, queryIP))
	case queryActive:
		return src.FetchActive(ctx)
	default:
		return src.FetchAll(ctx)
	}
}

func queryARP(ctx context.Context, src *arp.Source) ([]arp.Entry, error) {
	switch {
	case queryMAC != "":
		return src.FetchAllByField(ctx, "mac-address", queryMAC)
	case queryIP != "":
		return src.FetchAllByField(ctx, "address", queryIP)
	default:
		return src.FetchAll(ctx)
	}
}

func queryBridge(ctx context.Context, src *bridge.Source) ([]bridge.Host, error) {
	if queryMAC != "" {
		return src.FetchAllByField(ctx, "mac-address", queryMAC)
	}
	return src.FetchAll(ctx)
}

// single turns a lookup result into a zero or one element slice.
func single[T any](item *T, err error) ([]T, error) {
	if err != nil || item == nil {
		return nil, err
	}
	return []T{*item}, nil
}

func flagString(b *bool) string {
	if b == nil {
		return ""
	}
	return strconv.FormatBool(*b)
}
