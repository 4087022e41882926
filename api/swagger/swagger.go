package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Batch Intake API",
        "description": "Public application intake and admin review dashboard",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http",
        "https"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Intake", "description": "Public application form"},
        {"name": "Review", "description": "Candidate review dashboard"},
        {"name": "System", "description": "Process counters"}
    ],
    "paths": {
        "/batches": {
            "get": {
                "tags": ["Intake"],
                "summary": "List the batches and qualifications currently offered",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/applications": {
            "post": {
                "tags": ["Intake"],
                "summary": "Submit an application",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitApplicationRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Batch no longer offered", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "429": {"description": "Rate limited", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Record store failure", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "503": {"description": "Record store not configured", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/candidates": {
            "get": {
                "tags": ["Review"],
                "summary": "List all candidates, newest first",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Record store failure", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/candidates/export": {
            "get": {
                "tags": ["Review"],
                "summary": "Download all candidates",
                "produces": ["text/csv", "application/pdf"],
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File", "schema": {"type": "file"}}
                }
            }
        },
        "/admin/candidates/{id}": {
            "get": {
                "tags": ["Review"],
                "summary": "Get one candidate",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/candidates/{id}/flags": {
            "patch": {
                "tags": ["Review"],
                "summary": "Set one review flag on a candidate",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ToggleFlagRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Record store failure", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/system": {
            "get": {
                "tags": ["System"],
                "summary": "Process counters for the dashboard",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "SubmitApplicationRequest": {
            "type": "object",
            "required": ["full_name", "email", "contact_number", "qualification", "year_of_completion", "college_name", "batch", "reference"],
            "properties": {
                "full_name": {"type": "string", "minLength": 2},
                "email": {"type": "string", "format": "email"},
                "contact_number": {"type": "string"},
                "gender": {"type": "string", "x-nullable": true},
                "qualification": {"type": "string", "enum": ["B.Tech", "B.E", "B.Sc", "BCA", "MCA", "M.Tech", "M.Sc", "Diploma", "Other"]},
                "year_of_completion": {"type": "string"},
                "college_name": {"type": "string"},
                "hod_name": {"type": "string", "x-nullable": true},
                "hod_contact": {"type": "string", "x-nullable": true},
                "hod_email": {"type": "string", "format": "email", "x-nullable": true},
                "batch": {"type": "string", "description": "label of the chosen batch option", "example": "Batch 36 (Oct 26, 2026 - Nov 7, 2026)"},
                "reference": {"type": "string"}
            }
        },
        "ToggleFlagRequest": {
            "type": "object",
            "required": ["flag", "value"],
            "properties": {
                "flag": {"type": "string", "enum": ["contacted_whatsapp", "contacted_call", "attended_session", "attended_intro"]},
                "value": {"type": "boolean"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"},
                "fields": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
