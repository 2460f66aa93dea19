package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerTools() {
	s.server.AddTool(
		mcp.NewTool("platform_tools_status",
			mcp.WithDescription("Report whether adb is installed and where"),
		),
		s.handleStatus,
	)

	s.server.AddTool(
		mcp.NewTool("platform_tools_install",
			mcp.WithDescription("Extract the bundled platform-tools if they are not installed"),
		),
		s.handleInstall,
	)

	s.server.AddTool(
		mcp.NewTool("adb_version",
			mcp.WithDescription("Show the installed adb version"),
		),
		s.handleVersion,
	)

	s.server.AddTool(
		mcp.NewTool("device_list",
			mcp.WithDescription("List all connected Android devices"),
		),
		s.handleDeviceList,
	)

	s.server.AddTool(
		mcp.NewTool("device_info",
			mcp.WithDescription("Get build properties of a device"),
			mcp.WithString("device_id",
				mcp.Required(),
				mcp.Description("Device serial from device_list"),
			),
		),
		s.handleDeviceInfo,
	)

	s.server.AddTool(
		mcp.NewTool("device_connect",
			mcp.WithDescription("Connect to a device via ADB over Wi-Fi"),
			mcp.WithString("host",
				mcp.Required(),
				mcp.Description("Device IP address"),
			),
			mcp.WithNumber("port",
				mcp.Description("ADB port (default 5555)"),
			),
		),
		s.handleDeviceConnect,
	)

	s.server.AddTool(
		mcp.NewTool("adb_exec",
			mcp.WithDescription("Run adb with arbitrary arguments. Pass either args or command"),
			mcp.WithArray("args",
				mcp.Description("Arguments after `adb`, one element each (e.g. [\"-s\", \"serial\", \"shell\", \"echo a b\"])"),
				mcp.Items(map[string]any{"type": "string"}),
			),
			mcp.WithString("command",
				mcp.Description("Arguments after `adb` as one string, split on whitespace with no quoting (e.g. \"-s serial shell ls\")"),
			),
		),
		s.handleExec,
	)

	s.server.AddTool(
		mcp.NewTool("debloat_catalog",
			mcp.WithDescription("List preinstalled packages known to be safe to remove"),
			mcp.WithString("brand",
				mcp.Description("Filter by brand, e.g. Xiaomi"),
			),
		),
		s.handleDebloatCatalog,
	)
}

func textResult(parts ...string) *mcp.CallToolResult {
	content := make([]mcp.Content, 0, len(parts))
	for _, p := range parts {
		content = append(content, mcp.NewTextContent(p))
	}
	return &mcp.CallToolResult{Content: content}
}

func jsonBlock(v any) string {
	data, _ := json.MarshalIndent(v, "", "  ")
	return fmt.Sprintf("\nJSON data:\n```json\n%s\n```", data)
}

func (s *Server) handleStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.backend.IsPlatformToolsReady() {
		return textResult("platform-tools installed at " + s.backend.InstallRoot()), nil
	}
	return textResult("platform-tools not installed (expected at " + s.backend.InstallRoot() + ")"), nil
}

func (s *Server) handleInstall(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.backend.InitPlatformTools(); err != nil {
		return nil, err
	}
	return textResult("platform-tools ready at " + s.backend.InstallRoot()), nil
}

func (s *Server) handleVersion(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, err := s.backend.GetAdbVersion()
	if err != nil {
		return nil, err
	}
	return textResult(out), nil
}

func (s *Server) handleDeviceList(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	devices, err := s.backend.GetDevices()
	if err != nil {
		return nil, fmt.Errorf("failed to get devices: %w", err)
	}
	if len(devices) == 0 {
		return textResult("No devices connected"), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d device(s):\n\n", len(devices))
	for i, d := range devices {
		fmt.Fprintf(&b, "%d. %s [%s] State: %s\n", i+1, d.Serial, d.ConnType, d.State)
	}
	return textResult(b.String(), jsonBlock(devices)), nil
}

func (s *Server) handleDeviceInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	serial, ok := args["device_id"].(string)
	if !ok || serial == "" {
		return nil, fmt.Errorf("device_id is required")
	}
	info, err := s.backend.GetDeviceInfo(serial)
	if err != nil {
		return nil, err
	}
	summary := fmt.Sprintf("%s %s (Android %s, SDK %s)", info.Manufacturer, info.Model, info.AndroidVersion, info.SDKVersion)
	return textResult(summary, jsonBlock(info)), nil
}

func (s *Server) handleDeviceConnect(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	host, ok := args["host"].(string)
	if !ok || host == "" {
		return nil, fmt.Errorf("host is required")
	}
	port := 5555
	if p, ok := args["port"].(float64); ok && p > 0 {
		port = int(p)
	}
	addr, err := s.backend.ConnectWiFi(host, port)
	if err != nil {
		return nil, err
	}
	return textResult("connected to " + addr), nil
}

func (s *Server) handleExec(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	argv, err := execArgs(request.GetArguments())
	if err != nil {
		return nil, err
	}
	out, err := s.backend.ExecuteAdbCommand(argv)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(out) == "" {
		out = "(no output)"
	}
	return textResult(out), nil
}

func (s *Server) handleDebloatCatalog(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	brand, _ := request.GetArguments()["brand"].(string)
	pkgs := s.backend.DebloatCatalog(brand)
	if len(pkgs) == 0 {
		return textResult("No packages in catalog for " + brand), nil
	}
	return textResult(fmt.Sprintf("%d package(s)", len(pkgs)), jsonBlock(pkgs)), nil
}

// execArgs prefers the args array, which keeps arguments containing
// spaces intact, over the whitespace-split command string.
func execArgs(args map[string]any) ([]string, error) {
	if raw, ok := args["args"].([]any); ok && len(raw) > 0 {
		argv := make([]string, 0, len(raw))
		for i, v := range raw {
			s, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("args[%d] must be a string", i)
			}
			argv = append(argv, s)
		}
		return argv, nil
	}
	command, _ := args["command"].(string)
	argv := strings.Fields(command)
	if len(argv) == 0 {
		return nil, fmt.Errorf("args or command is required")
	}
	return argv, nil
}
