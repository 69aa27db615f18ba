// Package localize turns a Message into device-locale notification text via
// Lokalise-hosted translation templates
// (crates/processing/src/localization, src/lib/localization).
package localize

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/wavesplatform/push-notifications/internal/apperr"
	httpclient "github.com/wavesplatform/push-notifications/pkg/http"
)

// KeysResponse is the body of Lokalise's
// GET /projects/{project_id}/keys?include_translations=1.
type KeysResponse struct {
	ProjectID string `json:"project_id"`
	Keys      []Key  `json:"keys"`
}

// Key is one translation key across every platform and language.
type Key struct {
	KeyName      PlatformStrings `json:"key_name"`
	Translations []Translation   `json:"translations"`
}

// PlatformStrings names a key differently per platform; only Web is used.
type PlatformStrings struct {
	Web string `json:"web"`
}

// Translation is one key's value in one language.
type Translation struct {
	LanguageISO string `json:"language_iso"`
	Translation string `json:"translation"`
}

// tokenSigner attaches the Lokalise API token as a header, mirroring the
// original's reqwest default_headers builder.
type tokenSigner struct{ token string }

func (s tokenSigner) SignRequest(req *http.Request) error {
	req.Header.Set("X-Api-Token", s.token)
	return nil
}

// FetchTranslations pulls every translation key for a Lokalise project.
func FetchTranslations(ctx context.Context, apiURL, token, projectID string) (KeysResponse, error) {
	client := httpclient.NewClient(apiURL, 30*time.Second, tokenSigner{token: token})
	body, err := client.Get(ctx, fmt.Sprintf("/projects/%s/keys", projectID), map[string]string{
		"include_translations": "1",
	})
	if err != nil {
		return KeysResponse{}, apperr.NewTransient("fetch lokalise translations", err)
	}
	var resp KeysResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return KeysResponse{}, apperr.NewTransient("decode lokalise response", err)
	}
	return resp, nil
}
