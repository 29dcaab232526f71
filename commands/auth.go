package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// authorize returns an HTTP client for the Sheets API. Service account keys are used
// directly, OAuth2 client credentials go through the installed-app flow with the tokens
// cached under workdir. Credentials stored in a bucket are downloaded to a temporary
// file for the duration of the call.
func authorize(ctx context.Context, credentials string, scopes []string, workdir string) (*http.Client, error) {
	path := credentials

	if strings.HasPrefix(credentials, "gs://") {
		tmp, err := download(ctx, credentials)
		if err != nil {
			return nil, err
		}

		defer os.Remove(tmp)

		path = tmp
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var key struct {
		Type string `json:"type"`
	}

	if err := json.Unmarshal(b, &key); err != nil {
		return nil, fmt.Errorf("invalid credentials file %v (%w)", credentials, err)
	}

	if key.Type == "service_account" {
		jwt, err := google.JWTConfigFromJSON(b, scopes...)
		if err != nil {
			return nil, err
		}

		debugf("using service account %v", jwt.Email)

		return jwt.Client(ctx), nil
	}

	config, err := google.ConfigFromJSON(b, scopes...)
	if err != nil {
		return nil, err
	}

	file := filepath.Base(credentials)
	name := strings.TrimSuffix(file, filepath.Ext(file))
	tokens := filepath.Join(workdir, ".google", fmt.Sprintf("%s.tokens", name))

	return getClient(ctx, tokens, config)
}

// Retrieve a token, saves the token, then returns the generated client.
func getClient(ctx context.Context, tokens string, config *oauth2.Config) (*http.Client, error) {
	token, err := tokenFromFile(tokens)
	if err != nil {
		if token, err = getTokenFromWeb(ctx, config); err != nil {
			return nil, err
		}

		if err := saveToken(tokens, token); err != nil {
			warnf("unable to cache OAuth2 token (%v)", err)
		}
	}

	return config.Client(ctx, token), nil
}

// Request a token from the web, then returns the retrieved token.
func getTokenFromWeb(ctx context.Context, config *oauth2.Config) (*oauth2.Token, error) {
	authURL := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Go to the following link in your browser then type the "+
		"authorization code: \n%v\n", authURL)

	var authCode string
	if _, err := fmt.Scan(&authCode); err != nil {
		return nil, fmt.Errorf("unable to read authorization code (%w)", err)
	}

	token, err := config.Exchange(ctx, authCode)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve token from web (%w)", err)
	}

	return token, nil
}

// Retrieves a token from a local file.
func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	token := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(token)

	return token, err
}

// Saves a token to a file path.
func saveToken(path string, token *oauth2.Token) error {
	infof("saving OAuth2 token to %s", path)

	if err := os.MkdirAll(filepath.Dir(path), 0770); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	return json.NewEncoder(f).Encode(token)
}

// download copies a gs://bucket/object key file to a temporary file and returns its path.
func download(ctx context.Context, uri string) (string, error) {
	bucket, object, err := splitGCS(uri)
	if err != nil {
		return "", err
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return "", fmt.Errorf("unable to create storage client (%w)", err)
	}
	defer client.Close()

	r, err := client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		return "", fmt.Errorf("unable to read %v (%w)", uri, err)
	}
	defer r.Close()

	tmp, err := os.CreateTemp("", "perfmetrics-credentials-*.json")
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}

	return tmp.Name(), nil
}

func splitGCS(uri string) (string, string, error) {
	path, ok := strings.CutPrefix(uri, "gs://")
	if !ok {
		return "", "", fmt.Errorf("invalid bucket URL %v", uri)
	}

	bucket, object, _ := strings.Cut(path, "/")
	if bucket == "" || object == "" {
		return "", "", fmt.Errorf("invalid bucket URL %v - expected gs://<bucket>/<object>", uri)
	}

	return bucket, object, nil
}
