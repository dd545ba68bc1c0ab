// Package docs is generated by swaggo/swag from the handler annotations.
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
        "/auth/signup": {
            "post": {"tags": ["Auth"], "summary": "Sign up", "responses": {"201": {"description": "Created"}}}
        },
        "/auth/login": {
            "post": {"tags": ["Auth"], "summary": "Login", "responses": {"200": {"description": "OK"}}}
        },
        "/auth/me": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Auth"], "summary": "Current user", "responses": {"200": {"description": "OK"}}}
        },
        "/announcements": {
            "get": {"tags": ["Announcements"], "summary": "Announcements", "responses": {"200": {"description": "OK"}}}
        },
        "/common-codes": {
            "get": {"tags": ["CommonCodes"], "summary": "Common codes", "parameters": [{"type": "string", "name": "group", "in": "query"}], "responses": {"200": {"description": "OK"}}}
        },
        "/lookup-options": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Lookup"], "summary": "Lookup options", "parameters": [{"type": "string", "name": "type_cd", "in": "query", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/applications": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Applications"], "summary": "My applications (raw)", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["Applications"], "summary": "Submit application", "responses": {"201": {"description": "Created"}}}
        },
        "/applications/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Applications"], "summary": "Get application", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}}
        },
        "/applications/{id}/persons": {
            "put": {"security": [{"BearerAuth": []}], "tags": ["Applications"], "summary": "Save applicants", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/my-applications": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Applications"], "summary": "My applications (report rows)", "responses": {"200": {"description": "OK"}}}
        },
        "/admin/check": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Auth"], "summary": "Admin check", "responses": {"200": {"description": "OK"}}}
        },
        "/admin/applications": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Admin"], "summary": "Admin application report", "responses": {"200": {"description": "OK"}}},
            "patch": {"security": [{"BearerAuth": []}], "tags": ["Admin"], "summary": "Save admin grid edits", "responses": {"200": {"description": "OK"}}}
        },
        "/admin/bulk-update-examine-number": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["Admin"], "summary": "Bulk examine number upload", "responses": {"200": {"description": "OK"}}}
        },
        "/admin/contact-list": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Admin"], "summary": "Contact list", "responses": {"200": {"description": "OK"}}},
            "patch": {"security": [{"BearerAuth": []}], "tags": ["Admin"], "summary": "Save contact list edits", "responses": {"200": {"description": "OK"}}}
        },
        "/admin/lookup-options": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Admin"], "summary": "Lookup options", "responses": {"200": {"description": "OK"}}}
        },
        "/admin/users": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Admin"], "summary": "List users", "responses": {"200": {"description": "OK"}}}
        },
        "/admin/users/{id}": {
            "put": {"security": [{"BearerAuth": []}], "tags": ["Admin"], "summary": "Update user", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}}
        },
        "/admin/users/reset": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["Admin"], "summary": "Reset registrations", "responses": {"200": {"description": "OK"}}}
        },
        "/admin/announcements": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Admin"], "summary": "All announcements", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["Admin"], "summary": "Create announcement", "responses": {"201": {"description": "Created"}}}
        },
        "/admin/announcements/{id}": {
            "put": {"security": [{"BearerAuth": []}], "tags": ["Admin"], "summary": "Update announcement", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["Admin"], "summary": "Delete announcement", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/admin/common-codes": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Admin"], "summary": "All common codes", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["Admin"], "summary": "Create common code", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/admin/common-codes/{id}": {
            "put": {"security": [{"BearerAuth": []}], "tags": ["Admin"], "summary": "Update common code", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["Admin"], "summary": "Delete common code", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/admin/daily-report": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Admin"], "summary": "Preview daily report", "responses": {"200": {"description": "OK"}}}
        },
        "/admin/daily-report/run": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["Admin"], "summary": "Send daily report", "responses": {"200": {"description": "OK"}}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the ID token.",
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
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Bible Olympiad API",
	Description:      "전국 바이블 올림피아드 신청 관리 API",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
