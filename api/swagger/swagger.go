// Package swagger embeds the generated API document.
package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Kalakar Art Academy API",
        "description": "Enrollment and contact persistence gateway",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Enrollments", "description": "Paid course enrollments"},
        {"name": "Contacts", "description": "Contact form submissions"},
        {"name": "Stats", "description": "Aggregate dashboard counters"}
    ],
    "paths": {
        "/api/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/api/enrollment": {
            "post": {
                "tags": ["Enrollments"],
                "summary": "Save an enrollment record",
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/EnrollmentRecord"}}
                ],
                "responses": {
                    "200": {"description": "Saved", "schema": {"$ref": "#/definitions/Envelope"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/Envelope"}},
                    "500": {"description": "Persistence failed", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/enrollments": {
            "get": {
                "tags": ["Enrollments"],
                "summary": "List enrollments, optionally filtered by student email",
                "parameters": [
                    {"in": "query", "name": "email", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/contact": {
            "post": {
                "tags": ["Contacts"],
                "summary": "Save a contact form submission",
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/ContactRecord"}}
                ],
                "responses": {
                    "200": {"description": "Saved", "schema": {"$ref": "#/definitions/Envelope"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/contacts": {
            "get": {
                "tags": ["Contacts"],
                "summary": "List contact submissions",
                "parameters": [
                    {"in": "query", "name": "email", "type": "string"},
                    {"in": "query", "name": "status", "type": "string", "enum": ["new", "contacted", "resolved"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/stats": {
            "get": {
                "tags": ["Stats"],
                "summary": "Aggregate enrollment and contact statistics",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        }
    },
    "definitions": {
        "EnrollmentRecord": {
            "type": "object",
            "required": ["enrollmentId", "studentInfo", "courseInfo", "paymentInfo"],
            "properties": {
                "enrollmentId": {"type": "string"},
                "studentInfo": {"type": "object"},
                "courseInfo": {"type": "object"},
                "paymentInfo": {"type": "object"},
                "invoiceInfo": {"type": "object"},
                "enrollmentDate": {"type": "string", "format": "date-time"},
                "status": {"type": "string", "enum": ["active", "completed", "cancelled"]}
            }
        },
        "ContactRecord": {
            "type": "object",
            "required": ["name", "email"],
            "properties": {
                "contactId": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "course": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "string", "enum": ["new", "contacted", "resolved"]}
            }
        },
        "Envelope": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "enrollmentId": {"type": "string"},
                "message": {"type": "string"},
                "data": {"type": "object"},
                "count": {"type": "integer"},
                "error": {"type": "string"},
                "details": {"type": "string"}
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
