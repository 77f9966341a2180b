package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rberon/strmctl/internal/api"
	"github.com/rberon/strmctl/internal/rpc"
	"github.com/rberon/strmctl/internal/secret"
	"github.com/rberon/strmctl/internal/session"
	"github.com/rberon/strmctl/internal/tui/client"
)

func main() {
	sessionFlag := flag.String("session", "", "session name (overrides config default)")
	jsonFlag := flag.Bool("json", false, "output in JSON format")
	flag.Parse()

	sessionName := session.Resolve(*sessionFlag)
	if err := session.ValidateName(sessionName); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	// Secret commands hit the OS keyring directly, no daemon needed.
	if args[0] == "secret" {
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "usage: strmctl secret <set|clear>")
			os.Exit(1)
		}
		cmdSecret(sessionName, args[1])
		return
	}

	socketPath := session.SocketPath(sessionName)
	c, err := client.New(socketPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: cannot connect to daemon for session %q: %v\n", sessionName, err)
		os.Exit(1)
	}
	defer func() { _ = c.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch args[0] {
	case "status":
		cmdStatus(ctx, c, *jsonFlag)
	case "events":
		cmdEvents(ctx, c, *jsonFlag)
	case "server":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "usage: strmctl server <start|stop|restart>")
			os.Exit(1)
		}
		cmdServer(ctx, c, args[1], *jsonFlag)
	case "diag":
		if len(args) >= 2 && args[1] == "export" {
			path := ""
			if len(args) >= 3 {
				path = args[2]
			}
			cmdDiagExport(ctx, c, path, *jsonFlag)
		} else {
			fmt.Fprintln(os.Stderr, "usage: strmctl diag export [path]")
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", args[0])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage: strmctl [--session <name>] [--json] <command>")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "commands:")
	fmt.Fprintln(os.Stderr, "  status              Show daemon and server status")
	fmt.Fprintln(os.Stderr, "  events              Show recent daemon events")
	fmt.Fprintln(os.Stderr, "  server start        Start the media server")
	fmt.Fprintln(os.Stderr, "  server stop         Stop the media server")
	fmt.Fprintln(os.Stderr, "  server restart      Restart the media server")
	fmt.Fprintln(os.Stderr, "  diag export [path]  Write a diagnostics bundle")
	fmt.Fprintln(os.Stderr, "  secret set          Store the SRT publish passphrase")
	fmt.Fprintln(os.Stderr, "  secret clear        Remove the stored passphrase")
}

func cmdStatus(ctx context.Context, c *client.Client, jsonOut bool) {
	resp, err := c.Control.Status(ctx, &rpc.StatusRequest{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if jsonOut {
		outputJSON(resp)
		return
	}
	fmt.Printf("Session:  %s\n", resp.Session)
	fmt.Printf("State:    %s\n", resp.State)
	if resp.StateMessage != "" {
		fmt.Printf("Message:  %s\n", resp.StateMessage)
	}
	if resp.ServerRunning {
		fmt.Printf("Server:   running (pid %d, %d restarts)\n", resp.ServerPid, resp.Restarts)
		fmt.Printf("Uptime:   %s\n", (time.Duration(resp.UptimeMs) * time.Millisecond).Round(time.Second))
	} else {
		fmt.Println("Server:   stopped")
	}
	fmt.Printf("Streams:  %d publishing, %d readers\n", resp.Publishers, resp.Readers)
	if resp.IngestAddr != "" {
		fmt.Printf("Ingest:   %s\n", resp.IngestAddr)
	}
	if resp.PlayURL != "" {
		fmt.Printf("Play:     %s\n", resp.PlayURL)
	}
	for _, p := range resp.Paths {
		state := "idle"
		if p.Ready {
			state = "ready"
		}
		fmt.Printf("  %-20s %-6s readers=%d\n", p.Name, state, p.Readers)
	}
}

func cmdEvents(ctx context.Context, c *client.Client, jsonOut bool) {
	resp, err := c.Control.ListEvents(ctx, &rpc.EventsRequest{Limit: 50})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if jsonOut {
		outputJSON(resp)
		return
	}
	if len(resp.Events) == 0 {
		fmt.Println("No events recorded.")
		return
	}
	for _, e := range resp.Events {
		fmt.Printf("%-20s %-25s %s\n", e.CreatedAt, e.Kind, e.Detail)
	}
}

func cmdServer(ctx context.Context, c *client.Client, subcmd string, jsonOut bool) {
	var command string
	switch subcmd {
	case "start":
		command = api.CmdServerStart
	case "stop":
		command = api.CmdServerStop
	case "restart":
		command = api.CmdServerRestart
	default:
		fmt.Fprintf(os.Stderr, "unknown server subcommand: %s\n", subcmd)
		os.Exit(1)
	}

	resp, err := c.Control.Invoke(ctx, &rpc.InvokeRequest{Command: command})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if jsonOut {
		outputJSON(resp)
		return
	}
	fmt.Printf("Ok: %v - %s\n", resp.Ok, resp.Message)
}

func cmdDiagExport(ctx context.Context, c *client.Client, path string, jsonOut bool) {
	req := &rpc.InvokeRequest{Command: api.CmdDiagExport}
	if path != "" {
		req.Args = map[string]string{"path": path}
	}
	resp, err := c.Control.Invoke(ctx, req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if jsonOut {
		outputJSON(resp)
		return
	}
	fmt.Printf("Ok: %v - %s\n", resp.Ok, resp.Message)
	if resp.Detail != "" {
		fmt.Printf("Bundle: %s\n", resp.Detail)
	}
}

func cmdSecret(sessionName, subcmd string) {
	switch subcmd {
	case "set":
		fmt.Fprint(os.Stderr, "Passphrase: ")
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		passphrase := strings.TrimRight(line, "\r\n")
		if passphrase == "" {
			fmt.Fprintln(os.Stderr, "error: empty passphrase")
			os.Exit(1)
		}
		if err := secret.SetPublishPassphrase(sessionName, passphrase); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Passphrase stored.")
	case "clear":
		if err := secret.DeletePublishPassphrase(sessionName); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Passphrase cleared.")
	default:
		fmt.Fprintf(os.Stderr, "unknown secret subcommand: %s\n", subcmd)
		os.Exit(1)
	}
}

func outputJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "json encode error: %v\n", err)
	}
}
