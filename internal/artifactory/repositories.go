package artifactory

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// RemoteRepository is the subset of a remote repository configuration these
// tools read and write.
// https://jfrog.com/help/r/jfrog-rest-apis/repository-configuration-json
type RemoteRepository struct {
	Key             string `json:"key"`
	Rclass          string `json:"rclass,omitempty"`
	Type            string `json:"type,omitempty"`
	PackageType     string `json:"packageType,omitempty"`
	URL             string `json:"url,omitempty"`
	Description     string `json:"description,omitempty"`
	PyPIRegistryURL string `json:"pyPIRegistryUrl,omitempty"`
	BlackedOut      *bool  `json:"blackedOut,omitempty"`
}

// VirtualRepository is the subset of a virtual repository configuration used
// when aggregating newly created remotes.
type VirtualRepository struct {
	Key          string   `json:"key"`
	Rclass       string   `json:"rclass,omitempty"`
	PackageType  string   `json:"packageType,omitempty"`
	Repositories []string `json:"repositories"`
}

// RepositoryConfigurations is the response of the all-configurations API,
// keyed by repository class.
type RepositoryConfigurations struct {
	Local   []RemoteRepository `json:"LOCAL"`
	Remote  []RemoteRepository `json:"REMOTE"`
	Virtual []RemoteRepository `json:"VIRTUAL"`
}

// GetRepositoryConfigurations fetches the configuration of every repository
// on the instance.
// https://jfrog.com/help/r/jfrog-rest-apis/get-all-repository-configurations
func (c *Client) GetRepositoryConfigurations(ctx context.Context) (*RepositoryConfigurations, error) {
	var configs RepositoryConfigurations
	if err := c.do(ctx, "GET", "/artifactory/api/repositories/configurations", nil, &configs); err != nil {
		return nil, err
	}
	return &configs, nil
}

// GetRemoteRepository fetches the configuration of a single repository.
// https://jfrog.com/help/r/jfrog-rest-apis/get-repository-configuration
func (c *Client) GetRemoteRepository(ctx context.Context, key string) (*RemoteRepository, error) {
	var repo RemoteRepository
	if err := c.do(ctx, "GET", "/artifactory/api/repositories/"+key, nil, &repo); err != nil {
		return nil, err
	}
	return &repo, nil
}

// CreateRemoteRepository creates a remote repository.
// https://jfrog.com/help/r/jfrog-rest-apis/create-repository
func (c *Client) CreateRemoteRepository(ctx context.Context, repo RemoteRepository) error {
	repo.Rclass = "remote"
	logrus.WithField("repo", repo.Key).Debug("creating remote repository")
	return c.do(ctx, "PUT", "/artifactory/api/repositories/"+repo.Key, repo, nil)
}

// UpdateRemoteRepository partially updates an existing repository
// configuration; only the non-zero fields of repo are sent.
// https://jfrog.com/help/r/jfrog-rest-apis/update-repository-configuration
func (c *Client) UpdateRemoteRepository(ctx context.Context, repo RemoteRepository) error {
	logrus.WithField("repo", repo.Key).Debug("updating remote repository")
	return c.do(ctx, "POST", "/artifactory/api/repositories/"+repo.Key, repo, nil)
}

// GetVirtualRepository fetches a virtual repository configuration.
func (c *Client) GetVirtualRepository(ctx context.Context, key string) (*VirtualRepository, error) {
	var repo VirtualRepository
	if err := c.do(ctx, "GET", "/artifactory/api/repositories/"+key, nil, &repo); err != nil {
		return nil, err
	}
	return &repo, nil
}

// CreateVirtualRepository creates a virtual repository.
func (c *Client) CreateVirtualRepository(ctx context.Context, repo VirtualRepository) error {
	repo.Rclass = "virtual"
	logrus.WithField("repo", repo.Key).Debug("creating virtual repository")
	return c.do(ctx, "PUT", fmt.Sprintf("/artifactory/api/repositories/%s", repo.Key), repo, nil)
}

// UpdateVirtualRepository updates an existing virtual repository
// configuration.
func (c *Client) UpdateVirtualRepository(ctx context.Context, repo VirtualRepository) error {
	logrus.WithField("repo", repo.Key).Debug("updating virtual repository")
	return c.do(ctx, "POST", fmt.Sprintf("/artifactory/api/repositories/%s", repo.Key), repo, nil)
}
