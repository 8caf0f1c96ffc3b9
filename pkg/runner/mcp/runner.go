package mcp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/medtrack/pkg/app"
)

// Transport selects the mechanism used to expose the MCP server.
type Transport string

const (
	// TransportHTTP serves MCP via the streamable HTTP transport.
	TransportHTTP Transport = "http"
	// TransportStdio serves MCP over stdio.
	TransportStdio Transport = "stdio"
)

const (
	defaultAddr = "127.0.0.1:8080"
	defaultPath = "/mcp"
)

// Runner serves the medication tools over one transport.
type Runner struct {
	App     *app.App
	Name    string
	Version string

	Transport Transport
	// Addr is host:port for the HTTP transport.
	Addr string
	Path string
	// CertFile and KeyFile switch the HTTP transport to TLS. Both or neither.
	CertFile string
	KeyFile  string
	// Listening receives the endpoint URL once the listener is bound.
	Listening func(url string)
}

// Run serves over stdio.
func Run(ctx context.Context, a *app.App) error {
	return Runner{App: a, Transport: TransportStdio}.Do(ctx)
}

// NewServer builds the MCP server with every tool and resource registered.
func NewServer(a *app.App, name, version string) *server.MCPServer {
	if name == "" {
		name = "medtrack"
	}
	if version == "" {
		version = "dev"
	}
	srv := server.NewMCPServer(
		fmt.Sprintf("%s MCP", name),
		version,
		server.WithResourceCapabilities(false, false),
		server.WithToolCapabilities(false),
		server.WithInstructions("Track medications: manage the catalog, log doses taken today, and review past doses. Times are local HH:MM."),
		server.WithRecovery(),
	)
	svc := NewService(a)
	registerResources(srv, svc)
	registerTools(srv, svc)
	return srv
}

// Do serves until ctx is done or the transport fails.
func (r Runner) Do(ctx context.Context) error {
	if r.App == nil {
		return errors.New("mcp: no app configured")
	}
	srv := NewServer(r.App, r.Name, r.Version)

	switch r.Transport {
	case "", TransportHTTP:
		return r.serveHTTP(ctx, srv)
	case TransportStdio:
		return server.ServeStdio(srv)
	default:
		return fmt.Errorf("mcp: unknown transport %q", r.Transport)
	}
}

func (r Runner) tls() bool {
	return r.CertFile != "" && r.KeyFile != ""
}

func (r Runner) serveHTTP(ctx context.Context, srv *server.MCPServer) error {
	if (r.CertFile == "") != (r.KeyFile == "") {
		return errors.New("mcp: both a tls cert and key are required")
	}
	path := CleanPath(r.Path)
	addr := r.Addr
	if addr == "" {
		addr = defaultAddr
	}

	mux := http.NewServeMux()
	mux.Handle(path, server.NewStreamableHTTPServer(srv))
	httpSrv := &http.Server{Handler: mux}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("mcp: listen %s: %w", addr, err)
	}
	if r.Listening != nil {
		host, _, _ := net.SplitHostPort(addr)
		r.Listening(EndpointURL(ln.Addr(), host, path, r.tls()))
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	if r.tls() {
		err = httpSrv.ServeTLS(ln, r.CertFile, r.KeyFile)
	} else {
		err = httpSrv.Serve(ln)
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// CleanPath defaults an empty path to /mcp and makes it absolute.
func CleanPath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return defaultPath
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

// EndpointURL is the URL a client should dial. Wildcard hosts are replaced
// with the bound address, or loopback when that is unspecified too.
func EndpointURL(bound net.Addr, host, path string, tls bool) string {
	scheme := "http"
	if tls {
		scheme = "https"
	}
	tcp, ok := bound.(*net.TCPAddr)
	if !ok {
		return fmt.Sprintf("%s://%s%s", scheme, bound.String(), path)
	}
	switch host {
	case "", "0.0.0.0", "::":
		host = "127.0.0.1"
		if tcp.IP != nil && !tcp.IP.IsUnspecified() {
			host = tcp.IP.String()
		}
	}
	return fmt.Sprintf("%s://%s%s", scheme, net.JoinHostPort(host, strconv.Itoa(tcp.Port)), path)
}
