// Package docs registers the OpenAPI document served under /swagger. Keep it
// in step with the handler annotations.
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
        "/health/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.readinessResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.readinessResponse"}}
                }
            }
        },
        "/v1/admin/reminders/sweep": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Run the due-reminder sweep now",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.sweepResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/boards/{board_id}/access": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["access"],
                "summary": "Resolve the caller's role on a board",
                "parameters": [
                    {"type": "string", "description": "Board id", "name": "board_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.accessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/cards/{card_id}/access": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["access"],
                "summary": "Resolve the caller's role on the board owning a card",
                "parameters": [
                    {"type": "string", "description": "Card id", "name": "card_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.accessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/cards/{card_id}/reminders": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["reminders"],
                "summary": "Send a due-date reminder for a card now",
                "parameters": [
                    {"type": "string", "description": "Card id", "name": "card_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.reminderResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/lists/{list_id}/access": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["access"],
                "summary": "Resolve the caller's role on the board owning a list",
                "parameters": [
                    {"type": "string", "description": "List id", "name": "list_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.accessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/me/cards/due": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["reminders"],
                "summary": "List the caller's cards due soon",
                "parameters": [
                    {"type": "integer", "default": 7, "description": "Window size in days (1-30)", "name": "days_ahead", "in": "query"},
                    {"type": "boolean", "description": "Include completed cards", "name": "include_completed", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.dueCardsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handler.accessResponse": {
            "type": "object",
            "properties": {
                "board": {"$ref": "#/definitions/handler.boardSummary"},
                "card": {"$ref": "#/definitions/handler.cardResponse"},
                "has_access": {"type": "boolean"},
                "list": {"$ref": "#/definitions/handler.listSummary"},
                "reason": {"type": "string"},
                "role": {"type": "string"}
            }
        },
        "handler.boardSummary": {
            "type": "object",
            "properties": {
                "deleted": {"type": "boolean"},
                "id": {"type": "string"},
                "title": {"type": "string"},
                "workspace_id": {"type": "string"}
            }
        },
        "handler.cardResponse": {
            "type": "object",
            "properties": {
                "board_id": {"type": "string"},
                "completed": {"type": "boolean"},
                "due_date": {"type": "string"},
                "id": {"type": "string"},
                "list_id": {"type": "string"},
                "member_ids": {"type": "array", "items": {"type": "string"}},
                "title": {"type": "string"}
            }
        },
        "handler.dependencyStatus": {
            "type": "object",
            "properties": {
                "status": {"type": "string"}
            }
        },
        "handler.dueCardsResponse": {
            "type": "object",
            "properties": {
                "cards": {"type": "array", "items": {"$ref": "#/definitions/handler.cardResponse"}},
                "count": {"type": "integer"},
                "days_ahead": {"type": "integer"}
            }
        },
        "handler.errorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        },
        "handler.listSummary": {
            "type": "object",
            "properties": {
                "board_id": {"type": "string"},
                "id": {"type": "string"},
                "title": {"type": "string"}
            }
        },
        "handler.readinessResponse": {
            "type": "object",
            "properties": {
                "dependencies": {"type": "object", "additionalProperties": {"$ref": "#/definitions/handler.dependencyStatus"}},
                "status": {"type": "string"}
            }
        },
        "handler.reminderResponse": {
            "type": "object",
            "properties": {
                "card_id": {"type": "string"},
                "sent": {"type": "boolean"}
            }
        },
        "handler.sweepResponse": {
            "type": "object",
            "properties": {
                "cards": {"type": "integer"},
                "failed": {"type": "integer"},
                "sent": {"type": "integer"},
                "skipped": {"type": "integer"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Task Board Service API",
	Description:      "Board role resolution and due-date reminders.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
