// Package docs holds the generated swagger specification for the status
// API. Normally produced by `swag init`; checked in here by hand since
// the build doesn't run the generator.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "description": "Read-only health and statistics endpoints for the DNS reactor.",
        "title": "DNS Server Status API",
        "contact": {},
        "version": "1.0"
    },
    "basePath": "/",
    "paths": {
        "/healthz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.StatusResponse"}}
                }
            }
        },
        "/stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Server statistics",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ServerStatsResponse"}}
                }
            }
        }
    },
    "definitions": {
        "models.StatusResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"}
            }
        },
        "models.ServerStatsResponse": {
            "type": "object",
            "properties": {
                "instance_id": {"type": "string"},
                "uptime": {"type": "string"},
                "uptime_seconds": {"type": "integer"},
                "start_time": {"type": "string", "format": "date-time"},
                "cpu": {"$ref": "#/definitions/models.CPUStats"},
                "memory": {"$ref": "#/definitions/models.MemoryStats"},
                "dns": {"$ref": "#/definitions/models.DNSStatsResponse"}
            }
        },
        "models.CPUStats": {
            "type": "object",
            "properties": {
                "num_cpu": {"type": "integer"},
                "used_percent": {"type": "number"},
                "idle_percent": {"type": "number"}
            }
        },
        "models.MemoryStats": {
            "type": "object",
            "properties": {
                "total_mb": {"type": "number"},
                "free_mb": {"type": "number"},
                "used_mb": {"type": "number"},
                "used_percent": {"type": "number"}
            }
        },
        "models.DNSStatsResponse": {
            "type": "object",
            "properties": {
                "queries_udp": {"type": "integer"},
                "queries_tcp": {"type": "integer"},
                "responses_nxdomain": {"type": "integer"},
                "responses_error": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "DNS Server Status API",
	Description:      "Read-only health and statistics endpoints for the DNS reactor.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
