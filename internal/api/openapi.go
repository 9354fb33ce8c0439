package api

import (
	"github.com/mangetsu-dev/mangetsu/internal/config"
	"github.com/mangetsu-dev/mangetsu/pkg/openapi"
)

// buildSpec assembles the OpenAPI document for the reader-facing API and
// returns it pre-serialized for serving.
func buildSpec(cfg *config.Config) ([]byte, error) {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.API.BasePath)

	spec.Components.AddSchemas(map[string]*openapi.Schema{
		"Manga": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":          {Type: "string", Description: "Composed catalog id", Example: "dx:a1b2"},
				"source":      {Type: "string", Enum: []any{"dx", "plus"}},
				"title":       {Type: "string"},
				"description": {Type: "string"},
				"cover_url":   {Type: "string"},
				"authors":     {Type: "array", Items: &openapi.Schema{Type: "string"}},
				"tags":        {Type: "array", Items: &openapi.Schema{Type: "string"}},
				"status":      {Type: "string"},
			},
		},
		"Chapter": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":           {Type: "string"},
				"manga_id":     {Type: "string"},
				"number":       {Type: "string"},
				"title":        {Type: "string"},
				"language":     {Type: "string"},
				"published_at": {Type: "string", Format: "date-time"},
			},
		},
		"Session": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"token":      {Type: "string"},
				"expires_at": {Type: "string", Format: "date-time"},
			},
		},
		"SettingsSnapshot": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"revision": {Type: "string"},
				"values":   {Type: "object"},
			},
		},
	})

	spec.Paths["/catalog/search"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "Search manga across catalog sources",
			Tags:    []string{"catalog"},
			Parameters: []*openapi.Parameter{
				openapi.QueryParam("q", "string", "Search query", true),
				openapi.QueryParam("page", "integer", "Page number", false),
				openapi.QueryParam("lang", "string", "Preferred language", false),
			},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Matching manga", "Manga"),
				400: openapi.ResponseRef("BadRequest"),
			},
		},
	}

	spec.Paths["/catalog/manga/{id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Fetch manga details",
			Tags:       []string{"catalog"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Composed catalog id")},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Manga details", "Manga"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}

	spec.Paths["/catalog/manga/{id}/chapters"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "List chapters for a manga",
			Tags:       []string{"catalog"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Composed catalog id")},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Chapter list", "Chapter"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}

	spec.Paths["/auth/login"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary: "Exchange credentials for a session token",
			Tags:    []string{"auth"},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Session", "Session"),
				400: openapi.ResponseRef("BadRequest"),
			},
		},
	}

	spec.Paths["/settings"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:     "Fetch the site settings snapshot",
			Description: "Supports If-None-Match revalidation against the snapshot revision.",
			Tags:        []string{"settings"},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Settings snapshot", "SettingsSnapshot"),
			},
		},
	}

	return openapi.MarshalJSON(spec)
}
