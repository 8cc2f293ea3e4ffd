// Package backend is the HTTP client for the remote use-case generation
// service. The service receives the canonical schema text and returns
// parameterized SQL templates; this client validates the response shape and
// converts it into catalog records.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"querysmith/cli/internal/catalog"
	"querysmith/cli/internal/errors"
	"querysmith/cli/internal/logging"
	"querysmith/cli/internal/sqltext"
)

// generationTimeout bounds one generation call. Generation is the slowest
// remote operation this CLI makes.
const generationTimeout = 60 * time.Second

// Generator is the HTTP client for the use-case generation service.
type Generator struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewGenerator creates a client for the service at baseURL. The API key is
// sent as a bearer token when non-empty.
func NewGenerator(baseURL, apiKey string) *Generator {
	return &Generator{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: generationTimeout},
	}
}

type generateRequest struct {
	Schema string `json:"schema"`
}

type wireParameter struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type wireUseCase struct {
	ID              string          `json:"use_case_id"`
	Description     string          `json:"description"`
	Category        string          `json:"category"`
	Template        string          `json:"query_template"`
	InputParameters []wireParameter `json:"input_parameters"`
}

type generateResponse struct {
	UseCases []wireUseCase `json:"use_cases"`
}

// GenerateUseCases posts the schema text and returns the generated use
// cases. Entries without a statement template are dropped.
func (g *Generator) GenerateUseCases(ctx context.Context, schemaText string) ([]catalog.UseCase, error) {
	jsonBody, err := json.Marshal(generateRequest{Schema: schemaText})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/use-cases", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "querysmith-cli/1.0")
	if g.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(errors.Connection, "generation service unreachable", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, errors.New(errors.Configuration, "generation service rejected the API key")
	case resp.StatusCode >= 500:
		return nil, errors.New(errors.Operational, fmt.Sprintf("generation service error (status %d)", resp.StatusCode))
	case resp.StatusCode != http.StatusOK:
		return nil, errors.New(errors.Unknown, fmt.Sprintf("generation service returned status %d", resp.StatusCode))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, errors.Wrap(errors.Operational, "failed to parse generation response", err)
	}

	cases := make([]catalog.UseCase, 0, len(out.UseCases))
	for _, w := range out.UseCases {
		if strings.TrimSpace(w.Template) == "" {
			logging.Debugf("backend", "dropping use case %q: empty template", w.ID)
			continue
		}
		uc := catalog.UseCase{
			Description: w.Description,
			Category:    sqltext.Category(w.Category),
			Template:    w.Template,
		}
		if id, parseErr := uuid.Parse(w.ID); parseErr == nil {
			uc.ID = id
		} else {
			uc.ID = uuid.New()
		}
		for _, p := range w.InputParameters {
			uc.InputParameters = append(uc.InputParameters, catalog.Parameter{Name: p.Name, Type: p.Type})
		}
		// Older service versions omit input_parameters; the statement's
		// own placeholders are the binding contract either way.
		if len(uc.InputParameters) == 0 {
			for _, name := range sqltext.Placeholders(sqltext.Normalize(w.Template)) {
				uc.InputParameters = append(uc.InputParameters, catalog.Parameter{Name: name})
			}
		}
		cases = append(cases, uc)
	}
	if len(out.UseCases) > 0 && len(cases) == 0 {
		return nil, errors.New(errors.Operational, "generation service returned no usable use cases")
	}
	logging.Debugf("backend", "generation service returned %d use cases", len(cases))
	return cases, nil
}
