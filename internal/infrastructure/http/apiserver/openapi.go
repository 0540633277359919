package apiserver

import (
	"embed"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed openapi.yaml
var openAPISpec embed.FS

// OpenAPIHandler serves the API description and a Swagger UI page
type OpenAPIHandler struct {
	logger   *zap.Logger
	yamlSpec []byte
	jsonSpec []byte
}

// NewOpenAPIHandler loads the embedded document and renders its JSON form once
func NewOpenAPIHandler(logger *zap.Logger) (*OpenAPIHandler, error) {
	specData, err := openAPISpec.ReadFile("openapi.yaml")
	if err != nil {
		return nil, fmt.Errorf("read openapi spec: %w", err)
	}

	var doc interface{}
	if err := yaml.Unmarshal(specData, &doc); err != nil {
		return nil, fmt.Errorf("parse openapi spec: %w", err)
	}

	jsonSpec, err := json.Marshal(normalize(doc))
	if err != nil {
		return nil, fmt.Errorf("encode openapi spec: %w", err)
	}

	return &OpenAPIHandler{
		logger:   logger,
		yamlSpec: specData,
		jsonSpec: jsonSpec,
	}, nil
}

// ServeOpenAPISpec serves the OpenAPI specification in YAML format
func (h *OpenAPIHandler) ServeOpenAPISpec(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(h.yamlSpec); err != nil {
		h.logger.Debug("Failed to write openapi spec", zap.Error(err))
	}
}

// ServeOpenAPIJSON serves the OpenAPI specification in JSON format
func (h *OpenAPIHandler) ServeOpenAPIJSON(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(h.jsonSpec); err != nil {
		h.logger.Debug("Failed to write openapi spec", zap.Error(err))
	}
}

// ServeSwaggerUI serves a Swagger UI page pointed at the YAML document
func (h *OpenAPIHandler) ServeSwaggerUI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Security-Policy",
		"default-src 'self'; script-src 'self' 'unsafe-inline' https://unpkg.com; style-src 'self' 'unsafe-inline' https://unpkg.com; img-src 'self' data:")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, swaggerPage, getScheme(r), r.Host)
}

const swaggerPage = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>NutriMate API</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.9.0/swagger-ui.css" />
</head>
<body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5.9.0/swagger-ui-bundle.js"></script>
    <script>
        window.onload = function() {
            SwaggerUIBundle({ url: '%s://%s/api/v1/openapi.yaml', dom_id: '#swagger-ui', deepLinking: true });
        };
    </script>
</body>
</html>`

func getScheme(r *http.Request) string {
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		return "https"
	}
	return "http"
}

// normalize turns yaml's map[interface{}]interface{} nodes into string-keyed
// maps so encoding/json accepts them.
func normalize(v interface{}) interface{} {
	switch t := v.(type) {
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = normalize(val)
		}
		return m
	case map[string]interface{}:
		for k, val := range t {
			t[k] = normalize(val)
		}
		return t
	case []interface{}:
		for i, val := range t {
			t[i] = normalize(val)
		}
		return t
	default:
		return v
	}
}
