package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/medtrack/pkg/glyph"
	"tableflip.dev/medtrack/pkg/timeutil"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerListMedicationsTool(srv, svc)
	registerAddMedicationTool(srv, svc)
	registerEditMedicationTool(srv, svc)
	registerDeleteMedicationTool(srv, svc)
	registerLogMedicationTool(srv, svc)
	registerListTodayTool(srv, svc)
	registerListHistoryTool(srv, svc)
	registerDeleteLogTool(srv, svc)
}

func iconNames() []string {
	out := []string{}
	for _, i := range glyph.Icons() {
		out = append(out, string(i))
	}
	return out
}

func colorNames() []string {
	out := []string{}
	for _, c := range glyph.Colors() {
		out = append(out, string(c))
	}
	return out
}

func medicationFields(required bool) []mcp.ToolOption {
	name := []mcp.PropertyOption{mcp.Description("Display name of the medication.")}
	if required {
		name = append(name, mcp.Required())
	}
	return []mcp.ToolOption{
		mcp.WithString("name", name...),
		mcp.WithString("dosage",
			mcp.Description("Free-form dosage such as 25mg."),
		),
		mcp.WithString("icon",
			mcp.Description("Icon shape."),
			mcp.Enum(iconNames()...),
		),
		mcp.WithString("color",
			mcp.Description("Palette color."),
			mcp.Enum(colorNames()...),
		),
	}
}

// medicationArgs tracks which optional fields were sent.
type medicationArgs struct {
	ID     string  `json:"id"`
	Name   *string `json:"name"`
	Dosage *string `json:"dosage"`
	Icon   *string `json:"icon"`
	Color  *string `json:"color"`
}

func (a medicationArgs) options() MedicationOptions {
	return MedicationOptions{Ref: a.ID, Name: a.Name, Dosage: a.Dosage, Icon: a.Icon, Color: a.Color}
}

func registerListMedicationsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_medications",
		mcp.WithDescription("List the medication catalog in the order it was created."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		meds, err := svc.ListMedications(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"medications": meds,
			"count":       len(meds),
		})
	})
}

func registerAddMedicationTool(srv *server.MCPServer, svc *Service) {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Add a medication to the catalog."),
	}, medicationFields(true)...)
	tool := mcp.NewTool("add_medication", opts...)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args medicationArgs
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		dto, err := svc.AddMedication(ctx, args.options())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerEditMedicationTool(srv *server.MCPServer, svc *Service) {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Edit a medication. Omitted fields keep their value. Past logs are not changed."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Medication id or name."),
		),
	}, medicationFields(false)...)
	tool := mcp.NewTool("edit_medication", opts...)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args medicationArgs
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		dto, err := svc.EditMedication(ctx, args.options())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerDeleteMedicationTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_medication",
		mcp.WithDescription("Delete a medication from the catalog. Past logs are kept."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Medication id or name."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.DeleteMedication(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerLogMedicationTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"log_medication",
		mcp.WithDescription("Record that a medication was taken today."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Medication id or name."),
		),
		mcp.WithString("time",
			mcp.Description("Local time of day as HH:MM (24 hour). Defaults to now."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			ID   string `json:"id"`
			Time string `json:"time"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		dto, err := svc.LogMedication(ctx, args.ID, args.Time)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerListTodayTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_today",
		mcp.WithDescription("List the doses logged today, most recent first."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		logs, err := svc.ListToday(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"logs":  logs,
			"count": len(logs),
		})
	})
}

func registerListHistoryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_history",
		mcp.WithDescription("List past doses, most recent first."),
		mcp.WithString("window",
			mcp.Description("How far back to look, such as 3d or 2w. Defaults to 1w."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Window string `json:"window"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		window, label, err := timeutil.ParseWindow(args.Window)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		logs, err := svc.ListHistory(ctx, window)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"logs":   logs,
			"count":  len(logs),
			"window": label,
		})
	})
}

func registerDeleteLogTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_log",
		mcp.WithDescription("Delete a dose logged today."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Log identifier from list_today."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.DeleteLog(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
