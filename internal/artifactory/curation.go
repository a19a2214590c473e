package artifactory

import (
	"context"
	"encoding/json"
	"fmt"

	"emperror.dev/errors"
	"github.com/sirupsen/logrus"
)

// The curation condition/policy APIs default to 15 rows per page, which is
// far too low for real instances; request a large page instead of paginating.
const curationListRows = 1000

// Condition is a curation condition as returned by the Xray curation API.
type Condition struct {
	ID                  int64        `json:"id,omitempty"`
	Name                string       `json:"name"`
	ConditionTemplateID string       `json:"condition_template_id"`
	ParamValues         []ParamValue `json:"param_values"`
}

// ParamValue is one parameter of a curation condition. Values may be
// strings, numbers, booleans, or lists depending on the template.
type ParamValue struct {
	ParamID string      `json:"param_id"`
	Value   interface{} `json:"value"`
}

// Policy is a curation policy as returned by the Xray curation API.
type Policy struct {
	ID                  int64         `json:"id,omitempty"`
	Name                string        `json:"name"`
	Enabled             bool          `json:"enabled"`
	Scope               string        `json:"scope"`
	RepoInclude         []string      `json:"repo_include,omitempty"`
	RepoExclude         []string      `json:"repo_exclude,omitempty"`
	PkgTypesInclude     []string      `json:"pkg_types_include,omitempty"`
	PolicyAction        string        `json:"policy_action"`
	ConditionID         ConditionRef  `json:"condition_id"`
	Waivers             []Waiver      `json:"waivers,omitempty"`
	LabelWaivers        []LabelWaiver `json:"label_waivers,omitempty"`
	NotifyEmails        []string      `json:"notify_emails,omitempty"`
	WaiverRequestConfig string        `json:"waiver_request_config,omitempty"`
	DecisionOwners      []string      `json:"decision_owners,omitempty"`
}

// Waiver is a package waiver attached to a curation policy.
type Waiver struct {
	ID            string   `json:"id,omitempty"`
	PkgType       string   `json:"pkg_type"`
	PkgName       string   `json:"pkg_name"`
	AllVersions   bool     `json:"all_versions"`
	PkgVersions   []string `json:"pkg_versions,omitempty"`
	Justification string   `json:"justification,omitempty"`
	CreatedBy     string   `json:"created_by,omitempty"`
	CreatedAt     string   `json:"created_at,omitempty"`
}

// LabelWaiver is a label-based waiver attached to a curation policy.
type LabelWaiver struct {
	ID            string `json:"id,omitempty"`
	Label         string `json:"label"`
	Justification string `json:"justification,omitempty"`
	CreatedBy     string `json:"created_by,omitempty"`
	CreatedAt     string `json:"created_at,omitempty"`
}

// ConditionRef references a condition from a policy. The API wants the
// numeric condition id as a string; input files may use the condition name
// instead (resolved before upload) or a bare number.
type ConditionRef string

func (r *ConditionRef) UnmarshalJSON(data []byte) error {
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		*r = ConditionRef(asString)
		return nil
	}
	var asNumber json.Number
	if err := json.Unmarshal(data, &asNumber); err == nil {
		*r = ConditionRef(asNumber.String())
		return nil
	}
	return errors.Errorf("condition_id must be a string or a number, got %s", string(data))
}

type conditionList struct {
	Data []Condition `json:"data"`
}

type policyList struct {
	Data []Policy `json:"data"`
}

// ListConditions fetches the curation conditions configured on the instance.
func (c *Client) ListConditions(ctx context.Context) ([]Condition, error) {
	var list conditionList
	endpoint := fmt.Sprintf("/xray/api/v1/curation/conditions?num_of_rows=%d", curationListRows)
	if err := c.do(ctx, "GET", endpoint, nil, &list); err != nil {
		return nil, err
	}
	return list.Data, nil
}

// CreateCondition creates a curation condition.
func (c *Client) CreateCondition(ctx context.Context, condition Condition) error {
	logrus.WithField("condition", condition.Name).Debug("creating curation condition")
	return c.do(ctx, "POST", "/xray/api/v1/curation/conditions", condition, nil)
}

// UpdateCondition updates an existing curation condition.
func (c *Client) UpdateCondition(ctx context.Context, condition Condition) error {
	logrus.WithField("condition", condition.Name).Debug("updating curation condition")
	endpoint := fmt.Sprintf("/xray/api/v1/curation/conditions/%d", condition.ID)
	return c.do(ctx, "PUT", endpoint, condition, nil)
}

// ListPolicies fetches the curation policies configured on the instance.
func (c *Client) ListPolicies(ctx context.Context) ([]Policy, error) {
	var list policyList
	endpoint := fmt.Sprintf("/xray/api/v1/curation/policies?num_of_rows=%d", curationListRows)
	if err := c.do(ctx, "GET", endpoint, nil, &list); err != nil {
		return nil, err
	}
	return list.Data, nil
}

// CreatePolicy creates a curation policy.
func (c *Client) CreatePolicy(ctx context.Context, policy Policy) error {
	logrus.WithField("policy", policy.Name).Debug("creating curation policy")
	return c.do(ctx, "POST", "/xray/api/v1/curation/policies", policy, nil)
}

// UpdatePolicy updates an existing curation policy.
func (c *Client) UpdatePolicy(ctx context.Context, policy Policy) error {
	logrus.WithField("policy", policy.Name).Debug("updating curation policy")
	endpoint := fmt.Sprintf("/xray/api/v1/curation/policies/%d", policy.ID)
	return c.do(ctx, "PUT", endpoint, policy, nil)
}
