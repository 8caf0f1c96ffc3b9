package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerMedicationsResource(srv, svc)
	registerTodayResource(srv, svc)
	registerMedicationTemplate(srv, svc)
}

func registerMedicationsResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"medtrack://medications",
		"Medications",
		mcp.WithResourceDescription("The medication catalog."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		meds, err := svc.ListMedications(ctx)
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"medications": meds,
			"count":       len(meds),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerTodayResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"medtrack://today",
		"Today",
		mcp.WithResourceDescription("Doses logged today, most recent first."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		logs, err := svc.ListToday(ctx)
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"logs":  logs,
			"count": len(logs),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerMedicationTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"medtrack://medications/{id}",
		"Medication Details",
		mcp.WithTemplateDescription("A single medication by id or name."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		id := templateArg(request.Params.Arguments["id"])
		if id == "" {
			return nil, fmt.Errorf("medication id is required")
		}

		dto, err := svc.Medication(ctx, id)
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"medication": dto,
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

// templateArg unwraps a URI template variable, which mcp-go passes as a
// one-element slice.
func templateArg(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []string:
		if len(t) > 0 {
			return t[0]
		}
	}
	return ""
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
