// Package docs is the swagger document for the address API.
//
// Regenerate with: swag init -g cmd/api/main.go
package docs

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
        "/cleanse": {
            "get": {
                "produces": ["application/json"],
                "tags": ["address"],
                "summary": "Normalize an address",
                "parameters": [
                    {"type": "string", "description": "address", "name": "q", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.CleanseResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/municipalities/{name}/prefectures": {
            "get": {
                "description": "Lists every prefecture that has a municipality with this name, in gazetteer order.",
                "produces": ["application/json"],
                "tags": ["municipality"],
                "summary": "Prefectures of a municipality",
                "parameters": [
                    {"type": "string", "description": "municipality name", "name": "name", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.PrefecturesResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/parse": {
            "get": {
                "description": "Splits a free-form Japanese address into prefecture, municipality, street, town-area, block and extension.",
                "produces": ["application/json"],
                "tags": ["address"],
                "summary": "Decompose an address",
                "parameters": [
                    {"type": "string", "description": "address", "name": "q", "in": "query", "required": true},
                    {"type": "boolean", "description": "include katakana readings", "name": "reading", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ParseResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handler.CleanseResponse": {
            "type": "object",
            "properties": {
                "input": {"type": "string"},
                "normalized": {"type": "string"}
            }
        },
        "handler.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        },
        "handler.PrefecturesResponse": {
            "type": "object",
            "properties": {
                "municipality": {"type": "string"},
                "prefectures": {"type": "array", "items": {"type": "string"}}
            }
        },
        "models.ParseResult": {
            "type": "object",
            "properties": {
                "address": {"type": "string"},
                "normalized_address": {"type": "string"},
                "prefecture": {"type": "string"},
                "municipality": {"type": "string"},
                "street": {"type": "string"},
                "town_area": {"type": "string"},
                "block": {"type": "string"},
                "extension": {"type": "string"},
                "normalized_prefecture": {"type": "string"},
                "normalized_municipality": {"type": "string"},
                "normalized_street": {"type": "string"},
                "normalized_town_area": {"type": "string"},
                "normalized_block": {"type": "string"},
                "normalized_extension": {"type": "string"},
                "error": {"type": "string"},
                "readings": {"$ref": "#/definitions/models.Readings"}
            }
        },
        "models.Readings": {
            "type": "object",
            "properties": {
                "prefecture": {"type": "string"},
                "municipality": {"type": "string"},
                "street": {"type": "string"},
                "town_area": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Address Normalizer API",
	Description:      "Decomposes free-form Japanese addresses into administrative tiers.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
