// Package swagger holds the generated OpenAPI document. Regenerate with
// swag init after changing handler annotations.
package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/upload/{apiKey}": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["text/plain"],
                "tags": ["upload"],
                "summary": "Upload Market Data",
                "parameters": [
                    {
                        "type": "string",
                        "name": "apiKey",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {"description": "Success"},
                    "400": {"description": "Malformed payload"},
                    "401": {"description": "Unknown API key"}
                }
            }
        },
        "/api/history/{worldOrDc}/{itemIds}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["market"],
                "summary": "Get Sale History",
                "parameters": [
                    {"type": "string", "name": "worldOrDc", "in": "path", "required": true},
                    {"type": "string", "name": "itemIds", "in": "path", "required": true},
                    {"type": "integer", "name": "entries", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "History view"},
                    "404": {"description": "Unknown world, datacenter, or item"}
                }
            }
        },
        "/api/tax-rates": {
            "get": {
                "produces": ["application/json"],
                "tags": ["market"],
                "summary": "Get Market Tax Rates",
                "parameters": [
                    {"type": "string", "name": "world", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "Tax rates"},
                    "404": {"description": "Unknown world or no upload yet"}
                }
            }
        },
        "/api/extra/content/{contentId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["extra"],
                "summary": "Get Character by Content ID",
                "parameters": [
                    {"type": "string", "name": "contentId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Content ID mapping"},
                    "404": {"description": "No character stored"}
                }
            }
        },
        "/api/extra/stats/upload-history": {
            "get": {
                "produces": ["application/json"],
                "tags": ["extra"],
                "summary": "Get Upload History",
                "responses": {"200": {"description": "Daily counts"}}
            }
        },
        "/api/extra/stats/world-upload-counts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["extra"],
                "summary": "Get World Upload Counts",
                "responses": {"200": {"description": "Per-world counts"}}
            }
        },
        "/api/extra/stats/recently-updated": {
            "get": {
                "produces": ["application/json"],
                "tags": ["extra"],
                "summary": "Get Recently Updated Items",
                "responses": {"200": {"description": "Item IDs"}}
            }
        },
        "/api/{worldOrDc}/{itemIds}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["market"],
                "summary": "Get Current Market Data",
                "parameters": [
                    {"type": "string", "name": "worldOrDc", "in": "path", "required": true},
                    {"type": "string", "name": "itemIds", "in": "path", "required": true},
                    {"type": "integer", "name": "entries", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Current view"},
                    "404": {"description": "Unknown world, datacenter, or item"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:4002",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Market Tracker API",
	Description:      "Crowd-sourced market board data: uploads from trusted clients, aggregated price views per world or datacenter.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
