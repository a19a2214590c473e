package artifactory

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"emperror.dev/errors"
	"github.com/danielw-jfrog/curation-tools/internal/utils/logutils"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

// Client talks to the JFrog platform REST APIs (Artifactory, Xray curation,
// and Access) of a single instance.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(host, token string) (*Client, error) {
	if host == "" {
		return nil, errors.Errorf("no Artifactory host provided (do you need to configure one?)")
	}
	if token == "" {
		return nil, errors.Errorf("no Artifactory token provided (do you need to configure one?)")
	}
	src := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	httpClient := oauth2.NewClient(context.Background(), src)
	return &Client{httpClient, strings.TrimSuffix(host, "/")}, nil
}

// do executes a request against an API endpoint (e.g.,
// /artifactory/api/repositories/my-repo). The request body (unless nil) is
// marshalled to JSON, and the response body is unmarshalled into result
// (unless it's nil).
func (c *Client) do(ctx context.Context, method string, endpoint string, body interface{}, result interface{}) error {
	if endpoint[0] != '/' {
		logrus.WithField("endpoint", endpoint).Panicf("malformed API endpoint")
	}

	startTime := time.Now()
	url := c.baseURL + endpoint
	log := logrus.WithFields(logrus.Fields{
		"method": method,
		"url":    url,
		"body":   logutils.Format("%#+v", body),
	})

	var reqBody io.Reader
	if body != nil {
		bodyJson, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "failed to marshal request body to JSON")
		}
		reqBody = bytes.NewBuffer(bodyJson)
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Content-Type", "application/json")

	log.Debug("executing Artifactory API request...")
	res, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to make API request")
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read response body")
	}
	log.WithField("elapsed", time.Since(startTime)).Debug("Artifactory API request completed")

	if res.StatusCode >= 400 {
		log.WithFields(logrus.Fields{
			"status": res.StatusCode,
			"body":   string(resBody),
		}).Debug("Artifactory API request failed")
		return errors.WithStack(&HTTPError{
			Method:     method,
			Endpoint:   endpoint,
			StatusCode: res.StatusCode,
			Body:       string(resBody),
		})
	}

	if result != nil {
		if err := json.Unmarshal(resBody, result); err != nil {
			return errors.Wrap(err, "failed to unmarshal response body")
		}
	}
	return nil
}
