package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"strings"
	"testing"
	"time"

	"tableflip.dev/medtrack/pkg/app"
	"tableflip.dev/medtrack/pkg/store"
	"tableflip.dev/medtrack/pkg/timeutil"
)

func call(t *testing.T, a *app.App, id int, method, params string) string {
	t.Helper()
	srv := NewServer(a, "", "")
	msg := fmt.Sprintf(`{"jsonrpc":"2.0","id":%d,"method":%q,"params":%s}`, id, method, params)
	resp := srv.HandleMessage(context.Background(), json.RawMessage(msg))
	b, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal response: %v", err)
	}
	return string(b)
}

func TestServerListsTools(t *testing.T) {
	a, err := app.Open(store.NewMemory(), timeutil.System{}, sequence("t-"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	out := call(t, a, 1, "tools/list", "{}")
	for _, name := range []string{"list_medications", "add_medication", "edit_medication", "delete_medication", "log_medication", "list_today", "list_history", "delete_log"} {
		if !strings.Contains(out, `"`+name+`"`) {
			t.Fatalf("expected tool %s in %s", name, out)
		}
	}
}

func TestServerToolCalls(t *testing.T) {
	now := time.Date(2025, time.March, 4, 9, 0, 0, 0, time.Local)
	a, err := app.Open(store.NewMemory(), timeutil.Fixed(now), sequence("t-"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	out := call(t, a, 1, "tools/call", `{"name":"add_medication","arguments":{"name":"Zoloft","dosage":"25mg"}}`)
	if strings.Contains(out, `"isError":true`) || !strings.Contains(out, "Zoloft") {
		t.Fatalf("unexpected add response %s", out)
	}

	out = call(t, a, 2, "tools/call", `{"name":"log_medication","arguments":{"id":"zoloft","time":"07:45"}}`)
	if strings.Contains(out, `"isError":true`) || !strings.Contains(out, "7:45 AM") {
		t.Fatalf("unexpected log response %s", out)
	}

	out = call(t, a, 3, "tools/call", `{"name":"log_medication","arguments":{"id":"zoloft","time":"7.45"}}`)
	if !strings.Contains(out, `"isError":true`) {
		t.Fatalf("expected a tool error for a bad time, got %s", out)
	}

	if n := len(a.State().Logs); n != 1 {
		t.Fatalf("expected one dose logged, got %d", n)
	}
}

func TestCleanPath(t *testing.T) {
	for in, want := range map[string]string{"": "/mcp", " rpc ": "/rpc", "/x": "/x"} {
		if got := CleanPath(in); got != want {
			t.Fatalf("CleanPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestEndpointURL(t *testing.T) {
	bound := &net.TCPAddr{IP: net.IPv4zero, Port: 9090}
	if got := EndpointURL(bound, "0.0.0.0", "/mcp", false); got != "http://127.0.0.1:9090/mcp" {
		t.Fatalf("unexpected url %s", got)
	}
	if got := EndpointURL(bound, "::1", "/mcp", true); got != "https://[::1]:9090/mcp" {
		t.Fatalf("unexpected url %s", got)
	}
	if got := EndpointURL(bound, "localhost", "/m", false); got != "http://localhost:9090/m" {
		t.Fatalf("unexpected url %s", got)
	}
}
