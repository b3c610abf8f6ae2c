package devices

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"device-inventory/core/reconcile"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Report output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Dracula theme colors.
const (
	colorComment = "#6272A4"
	colorCyan    = "#8BE9FD"
	colorGreen   = "#50FA7B"
	colorOrange  = "#FFB86C"
	colorPurple  = "#BD93F9"
	colorRed     = "#FF5555"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorPurple)).Padding(0, 1)
	cellStyle     = lipgloss.NewStyle().Padding(0, 1)
	conflictStyle = cellStyle.Foreground(lipgloss.Color(colorRed))
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorCyan))
	warnStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorOrange))
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color(colorGreen))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(colorComment))
)

// Render writes the report in the requested format.
func Render(w io.Writer, report *reconcile.Report, format string, showBridge bool) error {
	switch strings.ToLower(format) {
	case "", FormatText:
		return RenderText(w, report, showBridge)
	case FormatJSON:
		return RenderJSON(w, report)
	default:
		return fmt.Errorf("unsupported format %q (expected text or json)", format)
	}
}

// RenderJSON writes the report as indented JSON.
func RenderJSON(w io.Writer, report *reconcile.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// RenderText writes a device table followed by conflict warnings and a summary.
func RenderText(w io.Writer, report *reconcile.Report, showBridge bool) error {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Device inventory (pass %s)", report.PassID)))
	b.WriteString("\n")

	headers := []string{"IP ADDRESS", "MAC ADDRESS", "HOSTNAME", "DHCP", "STATIC", "INTERFACE", "ARP"}
	if showBridge {
		headers = append(headers, "BRIDGE PORT")
	}
	headers = append(headers, "CONFLICT")

	rows := make([][]string, 0, len(report.Devices))
	for _, d := range report.Devices {
		row := []string{d.IPAddress, d.MACAddress, d.Hostname, d.DHCPStatus, yesNo(d.StaticLease), d.Interface, d.ARPStatus}
		if showBridge {
			row = append(row, d.BridgeInterface)
		}
		row = append(row, yesNo(d.Conflicts))
		rows = append(rows, row)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(mutedStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if row >= 0 && row < len(report.Devices) && report.Devices[row].Conflicts {
				return conflictStyle
			}
			return cellStyle
		})
	b.WriteString(t.String())
	b.WriteString("\n")

	for _, line := range ConflictWarnings(report.Devices) {
		b.WriteString(warnStyle.Render("WARNING: " + line))
		b.WriteString("\n")
	}

	s := report.Summary
	summary := fmt.Sprintf("%d leases, %d devices, %d conflicts, %d DHCP-only, %d skipped, %d dropped",
		s.Leases, s.Devices, s.Conflicts, s.DHCPOnly, s.Skipped, s.Dropped)
	if showBridge {
		summary += fmt.Sprintf(", %d on bridge", s.OnBridge)
	}
	if s.LookupFailures > 0 {
		summary += fmt.Sprintf(", %d lookup failures", s.LookupFailures)
	}
	if s.Conflicts == 0 {
		b.WriteString(okStyle.Render(summary))
	} else {
		b.WriteString(warnStyle.Render(summary))
	}
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// ConflictWarnings describes every conflict of the given devices, one line each.
func ConflictWarnings(views []reconcile.MergedView) []string {
	var lines []string
	for _, v := range views {
		if !v.Conflicts {
			continue
		}
		if d, ok := v.ConflictDetails[reconcile.ConflictIPMismatch]; ok {
			lines = append(lines, fmt.Sprintf("%s: IP mismatch, DHCP %s vs ARP %s", v.MACAddress, d["dhcp_ip"], d["arp_ip"]))
		}
		if d, ok := v.ConflictDetails[reconcile.ConflictMACMismatch]; ok {
			lines = append(lines, fmt.Sprintf("%s: MAC mismatch, DHCP %s vs ARP %s", v.IPAddress, d["dhcp_mac"], d["arp_mac"]))
		}
		if d, ok := v.ConflictDetails[reconcile.ConflictARPMultiple]; ok {
			lines = append(lines, fmt.Sprintf("%s: multiple ARP entries (%s)", v.MACAddress, d["arp_ips"]))
		}
	}
	return lines
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
