package mock

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/danielgtaylor/huma/v2"
	humachi "github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"skillswap/internal/engine"
	"skillswap/internal/repo"
)

// Config for the mock HTTP API handler.
type Config struct {
	Engine engine.Engine
	Logger *log.Logger
}

func (c Config) logger() *log.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return log.Default()
}

// apiError is the {"detail": ...} envelope clients read.
// Detail is a string, or a list of {"loc","msg"} entries for request validation.
type apiError struct {
	status int
	Detail any `json:"detail"`
}

func (e *apiError) GetStatus() int { return e.status }
func (e *apiError) Error() string {
	if s, ok := e.Detail.(string); ok {
		return s
	}
	return http.StatusText(e.status)
}

type validationItem struct {
	Loc []string `json:"loc"`
	Msg string   `json:"msg"`
}

func newAPIError(status int, detail string) huma.StatusError {
	return &apiError{status: status, Detail: detail}
}

// New returns an HTTP handler exposing the SkillSwap routes over the engine.
func New(cfg Config) (http.Handler, error) {
	huma.DefaultArrayNullable = false
	huma.NewError = func(status int, msg string, errs ...error) huma.StatusError {
		return newErrorWithDetails(status, msg, errs)
	}
	huma.NewErrorWithContext = func(_ huma.Context, status int, msg string, errs ...error) huma.StatusError {
		return newErrorWithDetails(status, msg, errs)
	}

	svc := &service{engine: cfg.Engine, logger: cfg.logger()}
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(newRequestLogger(svc.logger))
	router.Use(newIdentityMiddleware())

	hcfg := huma.DefaultConfig("SkillSwap Mock API", "1.0.0")
	hcfg.OpenAPIPath = ""
	hcfg.DocsPath = ""
	hcfg.SchemasPath = ""
	// no $schema links in response bodies
	hcfg.CreateHooks = nil
	api := humachi.New(router, hcfg)

	registerDocs(router)
	registerRoot(api)
	registerUsers(api, svc)
	registerTasks(api, svc)
	registerRatings(api, svc)
	registerReports(api, svc)
	registerOpenAPI(router, api)
	return router, nil
}

func newErrorWithDetails(status int, msg string, errs []error) huma.StatusError {
	if len(errs) == 0 {
		return newAPIError(status, msg)
	}
	items := make([]validationItem, 0, len(errs))
	for _, err := range errs {
		var detail *huma.ErrorDetail
		if errors.As(err, &detail) {
			items = append(items, validationItem{Loc: strings.Split(detail.Location, "."), Msg: detail.Message})
			continue
		}
		items = append(items, validationItem{Msg: err.Error()})
	}
	return &apiError{status: status, Detail: items}
}

type service struct {
	engine engine.Engine
	logger *log.Logger
}

// fail maps engine and repo errors onto HTTP statuses.
func (s *service) fail(err error) huma.StatusError {
	if err == nil {
		return nil
	}
	var re engine.RuleError
	if errors.As(err, &re) {
		switch {
		case errors.Is(re.Kind, engine.ErrInvalid):
			return newAPIError(http.StatusBadRequest, re.Msg)
		case errors.Is(re.Kind, engine.ErrForbidden):
			return newAPIError(http.StatusForbidden, re.Msg)
		case errors.Is(re.Kind, engine.ErrConflict):
			return newAPIError(http.StatusConflict, re.Msg)
		case errors.Is(re.Kind, repo.ErrNotFound):
			return newAPIError(http.StatusNotFound, re.Msg)
		}
	}
	if errors.Is(err, repo.ErrNotFound) {
		return newAPIError(http.StatusNotFound, "Not found")
	}
	s.logger.Printf("ERROR: mock backend: %v", err)
	return newAPIError(http.StatusInternalServerError, "Internal server error")
}

func registerDocs(r chi.Router) {
	r.Get("/docs", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, swaggerHTML)
	})
}

func registerOpenAPI(r chi.Router, api huma.API) {
	var (
		once sync.Once
		spec []byte
	)
	r.Get("/openapi.json", func(w http.ResponseWriter, _ *http.Request) {
		once.Do(func() {
			oas := api.OpenAPI()
			applyIdentityHeader(oas)
			spec, _ = json.Marshal(oas)
		})
		w.Header().Set("Content-Type", "application/json")
		w.Write(spec)
	})
}

// applyIdentityHeader documents the x-user-id header on every protected operation.
func applyIdentityHeader(oas *huma.OpenAPI) {
	if oas == nil {
		return
	}
	if oas.Components == nil {
		oas.Components = &huma.Components{}
	}
	if oas.Components.SecuritySchemes == nil {
		oas.Components.SecuritySchemes = map[string]*huma.SecurityScheme{}
	}
	oas.Components.SecuritySchemes["userIdHeader"] = &huma.SecurityScheme{
		Type: "apiKey",
		In:   "header",
		Name: HeaderUserID,
	}
	security := []map[string][]string{{"userIdHeader": {}}}
	for route, item := range oas.Paths {
		for _, op := range []*huma.Operation{item.Get, item.Put, item.Post, item.Delete, item.Patch} {
			if op == nil {
				continue
			}
			if isPublicPath(route) {
				op.Security = []map[string][]string{}
				continue
			}
			op.Security = security
		}
	}
}

const swaggerHTML = `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>SkillSwap Mock API Docs</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js" crossorigin></script>
    <script>
      window.onload = () => {
        SwaggerUIBundle({
          url: '/openapi.json',
          dom_id: '#swagger-ui'
        });
      };
    </script>
    <p style="padding: 1rem; font-family: sans-serif; color: #444;">
      Identify yourself with the x-user-id header.
    </p>
  </body>
</html>`
