package products

import "github.com/Vinayaksharma17/Blockchain-Supplychain-Management/pkg/openapi"

func float(v float64) *float64 { return &v }

// Schemas returns the component schemas referenced by Paths.
func Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"TrackingEvent": {
			Type:                 "object",
			Description:          "Checkpoint object. Keys beyond the documented ones are stored and returned unchanged.",
			AdditionalProperties: true,
			Properties: map[string]*openapi.Schema{
				"step":      {Type: "string", Example: "Dispatched"},
				"location":  {Type: "string", Example: "Pune"},
				"timestamp": {Type: "string", Example: "2024-05-01T10:00:00Z"},
			},
		},
		"Product": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":               {Type: "string", Example: "G100"},
				"name":             {Type: "string", Example: "Blue Denim Jacket"},
				"color":            {Type: "string", Example: "Blue"},
				"price":            {Type: "number", Minimum: float(0)},
				"year":             {Type: "integer"},
				"meta_hash":        {Type: "string", Pattern: "^0x[0-9a-f]{64}$"},
				"pid_hash":         {Type: "string", Pattern: "^0x[0-9a-f]{64}$"},
				"short_hash":       {Type: "string", Description: "First ten characters of pid_hash"},
				"predicted_status": {Type: "string", Enum: []any{"Authentic", "Suspect"}},
				"pred_proba":       {Type: "number", Minimum: float(0), Maximum: float(1)},
				"qr_file":          openapi.Nullable("string", "Storage key of the tracking QR image"),
				"tracking_url":     openapi.Nullable("string", "URL encoded in the QR image"),
				"image_file":       openapi.Nullable("string", "Storage key of the product photo"),
				"tracking_history": openapi.ArrayOf(openapi.SchemaRef("TrackingEvent")),
			},
		},
		"ProductPage": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":        openapi.ArrayOf(openapi.SchemaRef("Product")),
				"total":       {Type: "integer"},
				"page":        {Type: "integer"},
				"limit":       {Type: "integer"},
				"total_pages": {Type: "integer"},
			},
		},
		"TrackingUpdate": {
			Type:     "object",
			Required: []string{"tracking_history"},
			Properties: map[string]*openapi.Schema{
				"tracking_history": openapi.ArrayOf(openapi.SchemaRef("TrackingEvent")),
			},
		},
		"TrackingResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"status":           {Type: "string", Example: "success"},
				"tracking_history": openapi.ArrayOf(openapi.SchemaRef("TrackingEvent")),
			},
		},
		"Verification": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":            {Type: "string"},
				"meta_hash":     {Type: "string"},
				"computed_hash": {Type: "string"},
				"ledger_hash":   openapi.Nullable("string", "Hash anchored in the ledger, null when absent"),
				"consistent":    {Type: "boolean"},
			},
		},
	}
}

// Paths describes the routes returned by Routes, relative to the API base path.
func (h *Handler) Paths() map[string]*openapi.PathItem {
	id := openapi.PathParam("id", "Product id")
	tags := []string{"products"}

	return map[string]*openapi.PathItem{
		"/products": {
			Get: &openapi.Operation{
				Summary: "List products",
				Tags:    tags,
				Parameters: []*openapi.Parameter{
					openapi.QueryParam("page", "integer", "Page number (1-indexed)", false),
					openapi.QueryParam("limit", "integer", "Results per page", false),
					openapi.QueryParam("search", "string", "Case-insensitive substring of id or name", false),
					openapi.QueryParam("color", "string", "Exact color, case-insensitive", false),
					openapi.QueryParam("status", "string", "Exact predicted status, case-insensitive", false),
				},
				Responses: map[int]*openapi.Response{
					200: openapi.ResponseJSON("Page of products", "ProductPage"),
					500: openapi.ResponseRef("InternalError"),
				},
			},
		},
		"/products/{id}": {
			Get: &openapi.Operation{
				Summary:    "Find a product",
				Tags:       tags,
				Parameters: []*openapi.Parameter{id},
				Responses: map[int]*openapi.Response{
					200: openapi.ResponseJSON("Product", "Product"),
					404: openapi.ResponseRef("NotFound"),
				},
			},
		},
		"/products/{id}/tracking": {
			Put: &openapi.Operation{
				Summary:     "Replace tracking history",
				Tags:        tags,
				Parameters:  []*openapi.Parameter{id},
				RequestBody: openapi.RequestBodyJSON("TrackingUpdate", true),
				Responses: map[int]*openapi.Response{
					200: openapi.ResponseJSON("History replaced", "TrackingResult"),
					400: openapi.ResponseRef("BadRequest"),
					404: openapi.ResponseRef("NotFound"),
					413: openapi.ResponseRef("PayloadTooLarge"),
				},
			},
		},
		"/products/{id}/verify": {
			Get: &openapi.Operation{
				Summary:    "Verify a product against its hash and the ledger",
				Tags:       tags,
				Parameters: []*openapi.Parameter{id},
				Responses: map[int]*openapi.Response{
					200: openapi.ResponseJSON("Verification result", "Verification"),
					404: openapi.ResponseRef("NotFound"),
				},
			},
		},
	}
}
