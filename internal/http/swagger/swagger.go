package swagger

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	apicontract "github.com/tuanvumaihuynh/inventory-ledger/api-contract"
)

const (
	// docsURL serves the Swagger UI.
	docsURL = "/docs"

	specYAMLURL = "/docs/openapi.yml"
	specJSONURL = "/docs/openapi.json"
)

// Register serves the Swagger UI and the API contract in YAML and JSON. It
// fails if the embedded contract does not validate.
func Register(r chi.Router) error {
	doc, err := apicontract.Load(context.Background())
	if err != nil {
		return fmt.Errorf("load api contract: %w", err)
	}
	specJSON, err := doc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshal api contract: %w", err)
	}

	page := []byte(uiPage(doc.Info.Title, specYAMLURL))
	r.Get(docsURL, serveBytes("text/html; charset=utf-8", page))
	r.Get(specYAMLURL, serveBytes("application/yaml", apicontract.GetSpecBytes()))
	r.Get(specJSONURL, serveBytes("application/json", specJSON))

	return nil
}

func serveBytes(contentType string, body []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		//nolint:errcheck
		w.Write(body)
	}
}

func uiPage(title, specPath string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>%s</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.29.3/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.29.3/swagger-ui-bundle.js" crossorigin></script>
<script>
  window.onload = () => {
    window.ui = SwaggerUIBundle({
      url: '%s',
      dom_id: '#swagger-ui',
      deepLinking: true,
    });
  };
</script>
</body>
</html>
`, title, specPath)
}
