package commands

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/medtrack/pkg/runner/mcp"
)

type mcpOptions struct {
	Transport string
	Host      string
	Port      int
	Path      string
	CertFile  string
	KeyFile   string
}

func (o *mcpOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.Transport, "transport", string(mcp.TransportHTTP), "transport to use: http or stdio")
	cmd.Flags().StringVar(&o.Host, "http-host", "127.0.0.1", "host/interface for HTTP transport")
	cmd.Flags().IntVar(&o.Port, "http-port", 8080, "port for HTTP transport (use 0 for random)")
	cmd.Flags().StringVar(&o.Path, "http-path", "/mcp", "HTTP endpoint path")
	cmd.Flags().StringVar(&o.CertFile, "http-tls-cert", "", "TLS certificate file for HTTPS")
	cmd.Flags().StringVar(&o.KeyFile, "http-tls-key", "", "TLS private key file for HTTPS")
}

func (o *mcpOptions) runner() (mcp.Runner, error) {
	r := mcp.Runner{
		Name:     "medtrack",
		Path:     mcp.CleanPath(o.Path),
		CertFile: strings.TrimSpace(o.CertFile),
		KeyFile:  strings.TrimSpace(o.KeyFile),
	}
	switch mcp.Transport(strings.ToLower(strings.TrimSpace(o.Transport))) {
	case "", mcp.TransportHTTP:
		if o.Port < 0 || o.Port > 65535 {
			return r, fmt.Errorf("invalid http-port %d", o.Port)
		}
		host := strings.TrimSpace(o.Host)
		if host == "" {
			host = "127.0.0.1"
		}
		r.Transport = mcp.TransportHTTP
		r.Addr = net.JoinHostPort(host, strconv.Itoa(o.Port))
	case mcp.TransportStdio:
		r.Transport = mcp.TransportStdio
	default:
		return r, fmt.Errorf("unsupported transport %q (expected http or stdio)", o.Transport)
	}
	return r, nil
}

func addMCP(topLevel *cobra.Command) {
	o := &mcpOptions{}

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "start the Model Context Protocol server",
		Long: `Launch an MCP server that exposes the medication catalog and today's
doses through the Model Context Protocol.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := o.runner()
			if err != nil {
				return err
			}
			a, _, _, err := open()
			if err != nil {
				return err
			}
			r.App = a
			r.Listening = func(url string) {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "MCP HTTP server listening on %s\n", url)
			}
			return r.Do(cmd.Context())
		},
	}
	o.addFlags(cmd)

	topLevel.AddCommand(cmd)
}
