// Package docs registers the Swagger document served at /docs.
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
        "/graphql": {
            "post": {
                "description": "Executes a query or mutation against the alumni directory schema",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["graphql"],
                "summary": "GraphQL endpoint",
                "parameters": [
                    {
                        "description": "GraphQL request",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/graph.Request"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/upload-photo": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Stores an image and records its metadata. Alumni may only upload as themselves.",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["photos"],
                "summary": "Upload a photo",
                "parameters": [
                    {"type": "file", "description": "Image file (jpeg, png, gif)", "name": "photo", "in": "formData", "required": true},
                    {"type": "string", "description": "Uploader Alumni_id (defaults to the caller)", "name": "Alumni_id", "in": "formData"},
                    {"type": "string", "description": "Event the photo belongs to", "name": "Event_id", "in": "formData"},
                    {"type": "string", "description": "Comma separated tags or a JSON array", "name": "Tags", "in": "formData"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/controllers.PhotoUploadResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/controllers.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/controllers.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/controllers.ErrorResponse"}},
                    "413": {"description": "Request Entity Too Large", "schema": {"$ref": "#/definitions/controllers.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/controllers.ErrorResponse"}}
                }
            }
        },
        "/photo/{fileId}": {
            "get": {
                "produces": ["image/jpeg", "image/png", "image/gif"],
                "tags": ["photos"],
                "summary": "Download a photo",
                "parameters": [
                    {"type": "string", "description": "Stored file id", "name": "fileId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/controllers.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/controllers.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "description": "Removes the stored binary and then its metadata. Only the uploader or an admin may delete.",
                "produces": ["application/json"],
                "tags": ["photos"],
                "summary": "Delete a photo",
                "parameters": [
                    {"type": "string", "description": "Stored file id", "name": "fileId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/controllers.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/controllers.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/controllers.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/controllers.ErrorResponse"}}
                }
            }
        },
        "/assistant/query": {
            "post": {
                "description": "Forwards a natural-language request to the query generator without executing it",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["assistant"],
                "summary": "Generate a GraphQL document",
                "parameters": [
                    {"description": "Request and conversation history", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/assistant.QueryRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/assistant.QueryResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/controllers.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/controllers.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/assistant.QueryResponse"}}
                }
            }
        },
        "/assistant/turn": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Generates a document for the request, binds it to the caller and executes it. Failures are reported as error turns.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["assistant"],
                "summary": "Run an assistant turn",
                "parameters": [
                    {"description": "Request and conversation history", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/assistant.QueryRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.TurnResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/controllers.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/controllers.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/controllers.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "graph.Request": {
            "type": "object",
            "properties": {
                "query": {"type": "string"},
                "variables": {"type": "object", "additionalProperties": true},
                "operationName": {"type": "string"}
            }
        },
        "assistant.Turn": {
            "type": "object",
            "properties": {
                "type": {"type": "string", "enum": ["user", "assistant", "llm", "result", "error"]},
                "content": {"type": "string"},
                "data": {"type": "object", "additionalProperties": true},
                "table": {"$ref": "#/definitions/assistant.Table"},
                "timestamp": {"type": "string"}
            }
        },
        "assistant.Table": {
            "type": "object",
            "properties": {
                "columns": {"type": "array", "items": {"type": "string"}},
                "rows": {"type": "array", "items": {"type": "array", "items": {"type": "string"}}}
            }
        },
        "assistant.QueryRequest": {
            "type": "object",
            "properties": {
                "query": {"type": "string"},
                "history": {"type": "array", "items": {"$ref": "#/definitions/assistant.Turn"}}
            }
        },
        "assistant.QueryResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "graphql_query": {"type": "string"},
                "original_query": {"type": "string"},
                "error": {"type": "string"}
            }
        },
        "controllers.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        },
        "controllers.TurnResult": {
            "type": "object",
            "properties": {
                "turns": {"type": "array", "items": {"$ref": "#/definitions/assistant.Turn"}}
            }
        },
        "controllers.PhotoUploadResult": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "Photo_id": {"type": "string"},
                "File_id": {"type": "string"},
                "File_name": {"type": "string"},
                "File_size": {"type": "integer"},
                "Mime_type": {"type": "string"},
                "Alumni_id": {"type": "string"},
                "Event_id": {"type": "string"},
                "Tags": {"type": "array", "items": {"type": "string"}},
                "Upload_date": {"type": "string"},
                "Created_at": {"type": "string"},
                "Updated_at": {"type": "string"},
                "url": {"type": "string"}
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
	Host:             "localhost:4000",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "CLP Alumni Directory API",
	Description:      "Alumni, events, reservations and photos over GraphQL, plus photo storage and a natural-language assistant.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
