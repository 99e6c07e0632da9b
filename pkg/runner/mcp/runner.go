package mcp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/contentcal/pkg/app"
	"tableflip.dev/contentcal/pkg/logging"
	"tableflip.dev/contentcal/pkg/metrics"
	"tableflip.dev/contentcal/pkg/refresh"
)

// Transport selects the mechanism used to expose the MCP server.
type Transport string

const (
	// TransportHTTP serves MCP via the streamable HTTP transport.
	TransportHTTP Transport = "http"
	// TransportStdio serves MCP over stdio.
	TransportStdio Transport = "stdio"
)

// Runner coordinates MCP server startup.
type Runner struct {
	App     *app.Service
	Metrics *metrics.Recorder
	Name    string
	Version string

	// Refresh is the snapshot reload interval; zero disables polling.
	Refresh time.Duration

	Transport        Transport
	HTTPListenAddr   string
	HTTPEndpointPath string
	MetricsPath      string
	OnHTTPListening  func(net.Addr)
	HTTPServerCert   string
	HTTPServerKey    string
}

// Do executes the runner.
func (r Runner) Do(ctx context.Context) error {
	if r.App == nil {
		return errors.New("mcp runner requires a calendar service")
	}
	name := r.Name
	if name == "" {
		name = "contentcal"
	}
	version := r.Version
	if version == "" {
		version = "dev"
	}

	if ctx == nil {
		ctx = context.Background()
	}
	if err := r.App.Reload(ctx); err != nil {
		return fmt.Errorf("mcp: load entries: %w", err)
	}
	if r.Refresh > 0 {
		go r.poll(ctx)
	}

	srv := newServer(name, version, NewService(r.App))

	switch t := r.Transport; t {
	case "", TransportHTTP:
		return r.serveHTTP(ctx, srv)
	case TransportStdio:
		return server.ServeStdio(srv)
	default:
		return fmt.Errorf("unknown MCP transport %q", t)
	}
}

// newServer builds an MCP server with every calendar tool and resource
// registered.
func newServer(name, version string, svc *Service) *server.MCPServer {
	srv := server.NewMCPServer(
		fmt.Sprintf("%s MCP", name),
		version,
		server.WithResourceCapabilities(false, false),
		server.WithToolCapabilities(false),
		server.WithInstructions("View the content calendar, check slot conflicts, and schedule, move or update entries via MCP."),
		server.WithResourceRecovery(),
		server.WithRecovery(),
	)
	registerResources(srv, svc)
	registerTools(srv, svc)
	return srv
}

func (r Runner) serveHTTP(ctx context.Context, srv *server.MCPServer) error {
	if (r.HTTPServerCert != "" && r.HTTPServerKey == "") || (r.HTTPServerCert == "" && r.HTTPServerKey != "") {
		return errors.New("both http tls cert and key must be provided")
	}

	handler := server.NewStreamableHTTPServer(srv)

	path := r.HTTPEndpointPath
	if path == "" {
		path = "/mcp"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	listenAddr := r.HTTPListenAddr
	if listenAddr == "" {
		listenAddr = "127.0.0.1:8080"
	}

	mux := http.NewServeMux()
	mux.Handle(path, handler)
	if r.Metrics != nil {
		metricsPath := r.MetricsPath
		if metricsPath == "" {
			metricsPath = "/metrics"
		}
		mux.Handle(metricsPath, r.Metrics.Handler())
	}

	httpSrv := &http.Server{
		Handler: mux,
	}

	ln, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}

	if r.OnHTTPListening != nil {
		r.OnHTTPListening(ln.Addr())
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	if r.HTTPServerCert != "" && r.HTTPServerKey != "" {
		err = httpSrv.ServeTLS(ln, r.HTTPServerCert, r.HTTPServerKey)
	} else {
		err = httpSrv.Serve(ln)
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// poll keeps the shared snapshot current while the server runs, so edits
// made by other processes show up in tool results.
func (r Runner) poll(ctx context.Context) {
	log := logging.For("mcp")
	events, err := r.App.Watch(ctx)
	if err != nil {
		log.WithError(err).Debug("storage watch unavailable; polling only")
	}
	p := &refresh.Poller{
		Reload:    r.App.Reload,
		Scheduler: refresh.NewTicker(r.Refresh),
		Events:    events,
		Log:       log,
	}
	if err := p.Run(ctx); err != nil {
		log.WithError(err).Warn("refresh loop stopped")
	}
}
