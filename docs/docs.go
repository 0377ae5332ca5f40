// Package docs registers the OpenAPI document served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "schemes": {{ marshal .Schemes }},
    "paths": {
        "/generate": {
            "post": {
                "summary": "Generate a boarding sequence",
                "consumes": ["application/json", "multipart/form-data"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "file", "in": "formData", "type": "file", "description": "bookings as .txt, .csv or .tsv"},
                    {"name": "body", "in": "body", "schema": {"$ref": "#/definitions/generateRequest"}}
                ],
                "responses": {
                    "200": {"description": "sequence", "schema": {"$ref": "#/definitions/generateResponse"}},
                    "400": {"description": "invalid bookings", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "413": {"description": "upload too large", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/export": {
            "post": {
                "summary": "Render a sequence as a tab separated file",
                "consumes": ["application/json"],
                "produces": ["text/plain"],
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/exportRequest"}}
                ],
                "responses": {
                    "200": {"description": "boarding_sequence.txt"},
                    "400": {"description": "invalid sequence", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/sequences/{id}": {
            "get": {
                "summary": "Fetch a stored run",
                "produces": ["application/json"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "run", "schema": {"$ref": "#/definitions/generateResponse"}},
                    "404": {"description": "not found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "manualEntry": {
            "type": "object",
            "properties": {
                "booking_id": {"description": "number or string"},
                "seats": {"type": "string", "example": "A20,C2"}
            }
        },
        "generateRequest": {
            "type": "object",
            "properties": {
                "manual_data": {"type": "array", "items": {"$ref": "#/definitions/manualEntry"}}
            }
        },
        "exportRequest": {
            "type": "object",
            "properties": {
                "sequence": {"type": "array", "items": {"type": "array", "items": {}}}
            }
        },
        "detail": {
            "type": "object",
            "properties": {
                "sequence": {"type": "integer"},
                "booking_id": {},
                "seats": {"type": "array", "items": {"type": "string"}},
                "furthest_seat_distance": {"type": "integer"}
            }
        },
        "generateResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "run_id": {"type": "string"},
                "sequence": {"type": "array", "items": {"type": "array", "items": {}}},
                "details": {"type": "array", "items": {"$ref": "#/definitions/detail"}},
                "total_bookings": {"type": "integer"}
            }
        },
        "errorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Bus boarding API",
	Description:      "Orders bookings so passengers seated furthest from the front board first.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
