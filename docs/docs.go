// Package docs is generated by swaggo/swag from the handler annotations.
// Regenerate with: swag init -g cmd/assetflow/main.go -o docs
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
        "/allocation-lists/{id}": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["allocation"],
                "summary": "Get allocation list",
                "parameters": [
                    {"type": "integer", "description": "Allocation list ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/assets/assign": {
            "post": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["allocation"],
                "summary": "Assign assets",
                "parameters": [
                    {"description": "Assets, users and pricing", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/allocation.AssignRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            },
            "delete": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["allocation"],
                "summary": "Unassign assets",
                "parameters": [
                    {"description": "Assets and users", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/allocation.UnassignRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/assets/status": {
            "post": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["assets"],
                "summary": "Change status of many assets",
                "parameters": [
                    {"description": "Assets and target status", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/asset.BatchChangeStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/assets/{id}/status": {
            "patch": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["assets"],
                "summary": "Change asset status",
                "parameters": [
                    {"type": "integer", "description": "Asset ID", "name": "id", "in": "path", "required": true},
                    {"description": "Target status", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/asset.ChangeStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/assets/{id}/status-history": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["assets"],
                "summary": "Asset status history",
                "parameters": [
                    {"type": "integer", "description": "Asset ID", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "description": "Page", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size", "name": "page_size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/qa/asset-lists": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["allocation"],
                "summary": "QA asset lists",
                "parameters": [
                    {"type": "integer", "description": "QA user (admin only)", "name": "qaUserId", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/review-invitations/{id}": {
            "delete": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["review"],
                "summary": "Cancel a shared review",
                "parameters": [
                    {"type": "integer", "description": "Invitation ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/shared-reviews": {
            "post": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["review"],
                "summary": "Create a shared review",
                "parameters": [
                    {"description": "Recipient and assets", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/review.CreateInvitationRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/shared-reviews/{token}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["review"],
                "summary": "Review overview",
                "parameters": [
                    {"type": "string", "description": "Review token", "name": "token", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "410": {"description": "Gone", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/shared-reviews/{token}/submit": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["review"],
                "summary": "Submit review responses",
                "parameters": [
                    {"type": "string", "description": "Review token", "name": "token", "in": "path", "required": true},
                    {"description": "Responses", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/review.SubmitRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/shared-reviews/{token}/annotations": {
            "get": {
                "produces": ["application/json"],
                "tags": ["review"],
                "summary": "List annotations",
                "parameters": [
                    {"type": "string", "description": "Review token", "name": "token", "in": "path", "required": true},
                    {"type": "integer", "description": "Asset ID", "name": "assetId", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["review"],
                "summary": "Create annotation",
                "parameters": [
                    {"type": "string", "description": "Review token", "name": "token", "in": "path", "required": true},
                    {"description": "Annotation", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/review.CreateAnnotationRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/shared-reviews/{token}/annotations/{annotationId}": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["review"],
                "summary": "Update annotation",
                "parameters": [
                    {"type": "string", "description": "Review token", "name": "token", "in": "path", "required": true},
                    {"type": "integer", "description": "Annotation ID", "name": "annotationId", "in": "path", "required": true},
                    {"description": "Annotation", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/review.UpdateAnnotationRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            },
            "delete": {
                "tags": ["review"],
                "summary": "Delete annotation",
                "parameters": [
                    {"type": "string", "description": "Review token", "name": "token", "in": "path", "required": true},
                    {"type": "integer", "description": "Annotation ID", "name": "annotationId", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/ws/asset-status": {
            "get": {
                "security": [{"Bearer": []}],
                "tags": ["realtime"],
                "summary": "Live asset status feed",
                "parameters": [
                    {"type": "string", "description": "Access token for clients that cannot set headers", "name": "token", "in": "query"}
                ],
                "responses": {
                    "101": {"description": "Switching Protocols"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        }
    },
    "definitions": {
        "utils.APIResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {},
                "error": {"$ref": "#/definitions/utils.ErrorInfo"},
                "message": {"type": "string"}
            }
        },
        "utils.ErrorInfo": {
            "type": "object",
            "properties": {
                "type": {"type": "string"},
                "message": {"type": "string"},
                "details": {"type": "string"}
            }
        },
        "allocation.AssignRequest": {
            "type": "object",
            "required": ["assetIds", "userIds", "role"],
            "properties": {
                "assetIds": {"type": "array", "items": {"type": "integer"}},
                "userIds": {"type": "array", "items": {"type": "integer"}},
                "role": {"type": "string", "enum": ["modeler", "qa"]},
                "deadline": {"type": "string", "format": "date-time"},
                "bonus": {"type": "number"},
                "prices": {"type": "object", "additionalProperties": {"type": "number"}},
                "pricingOptions": {"type": "object", "properties": {"defaultPrice": {"type": "number"}}},
                "provisionalQA": {"type": "integer"},
                "listName": {"type": "string"}
            }
        },
        "allocation.UnassignRequest": {
            "type": "object",
            "required": ["assetIds"],
            "properties": {
                "assetIds": {"type": "array", "items": {"type": "integer"}},
                "userIds": {"type": "array", "items": {"type": "integer"}}
            }
        },
        "asset.ChangeStatusRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {
                "status": {"type": "string"},
                "reason": {"type": "string"},
                "comments": {"type": "string"}
            }
        },
        "asset.BatchChangeStatusRequest": {
            "type": "object",
            "required": ["assetIds", "status"],
            "properties": {
                "assetIds": {"type": "array", "items": {"type": "integer"}},
                "status": {"type": "string"},
                "reason": {"type": "string"},
                "comments": {"type": "string"}
            }
        },
        "review.CreateInvitationRequest": {
            "type": "object",
            "required": ["recipientEmail", "assetIds"],
            "properties": {
                "recipientEmail": {"type": "string", "format": "email"},
                "assetIds": {"type": "array", "items": {"type": "integer"}},
                "expiresInHours": {"type": "integer"},
                "message": {"type": "string"}
            }
        },
        "review.SubmitRequest": {
            "type": "object",
            "required": ["responses"],
            "properties": {
                "responses": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "assetId": {"type": "integer"},
                            "action": {"type": "string", "enum": ["approve", "revision"]},
                            "comment": {"type": "string"}
                        }
                    }
                }
            }
        },
        "review.CreateAnnotationRequest": {
            "type": "object",
            "properties": {
                "assetId": {"type": "integer"},
                "content": {"type": "string"},
                "position": {"type": "object"}
            }
        },
        "review.UpdateAnnotationRequest": {
            "type": "object",
            "properties": {
                "content": {"type": "string"},
                "position": {"type": "object"}
            }
        }
    },
    "securityDefinitions": {
        "Bearer": {
            "description": "Type \"Bearer\" followed by a space and the access token.",
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
	Title:            "Assetflow API",
	Description:      "Asset lifecycle, allocation and shared review API.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
