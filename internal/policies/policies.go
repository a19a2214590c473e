// Package policies diffs a desired set of curation conditions and policies
// against what's configured on an instance and decides what to create or
// update. Condition and policy names are assumed to be unique.
package policies

import (
	"reflect"
	"strconv"

	"github.com/danielw-jfrog/curation-tools/internal/artifactory"
	"github.com/sirupsen/logrus"
)

// File is the on-disk format of the conditions/policies input file.
type File struct {
	Conditions []artifactory.Condition `json:"conditions"`
	Policies   []artifactory.Policy    `json:"policies"`
}

// DiffConditions splits the desired conditions into ones to update (present
// on the instance but different) and ones to create (not present). Updated
// conditions carry the instance's id. A changed template id or any changed
// parameter replaces the parameter list wholesale.
func DiffConditions(desired, current []artifactory.Condition) (update, create []artifactory.Condition) {
	for _, want := range desired {
		matches := conditionsByName(current, want.Name)
		switch {
		case len(matches) > 1:
			logrus.WithField("condition", want.Name).Error("more than one condition with this name, name should be unique")
		case len(matches) == 0:
			logrus.WithField("condition", want.Name).Debug("found new condition")
			create = append(create, want)
		default:
			have := matches[0]
			changed := false
			if want.ConditionTemplateID != have.ConditionTemplateID {
				have.ConditionTemplateID = want.ConditionTemplateID
				changed = true
			}
			if !paramsEqual(want.ParamValues, have.ParamValues) {
				have.ParamValues = want.ParamValues
				changed = true
			}
			if changed {
				logrus.WithField("condition", want.Name).Debug("condition changed")
				update = append(update, have)
			}
		}
	}
	return update, create
}

func conditionsByName(conditions []artifactory.Condition, name string) []artifactory.Condition {
	var matches []artifactory.Condition
	for _, condition := range conditions {
		if condition.Name == name {
			matches = append(matches, condition)
		}
	}
	return matches
}

func paramsEqual(want, have []artifactory.ParamValue) bool {
	if len(want) != len(have) {
		return false
	}
	for _, wantParam := range want {
		found := false
		for _, haveParam := range have {
			if haveParam.ParamID != wantParam.ParamID {
				continue
			}
			if found {
				// Duplicate param ids mean the instance state is off; treat
				// as changed so the desired params win.
				return false
			}
			found = true
			if !reflect.DeepEqual(wantParam.Value, haveParam.Value) {
				return false
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// ResolveConditionIDs rewrites each policy's condition reference to the
// numeric id (as a string) the API expects. References that aren't already
// numeric are looked up by condition name; unresolvable references are left
// alone and logged.
func ResolveConditionIDs(policies []artifactory.Policy, conditions []artifactory.Condition) []artifactory.Policy {
	for i := range policies {
		ref := string(policies[i].ConditionID)
		if _, err := strconv.ParseInt(ref, 10, 64); err == nil {
			continue
		}
		matches := conditionsByName(conditions, ref)
		switch {
		case len(matches) > 1:
			logrus.WithField("condition", ref).Error("more than one condition with this name, name should be unique")
		case len(matches) == 0:
			logrus.WithField("condition", ref).Error("no condition with this name")
		default:
			policies[i].ConditionID = artifactory.ConditionRef(strconv.FormatInt(matches[0].ID, 10))
		}
	}
	return policies
}

// DiffPolicies splits the desired policies into ones to update and ones to
// create, mirroring DiffConditions. List-valued fields compare as sets;
// waivers compare by id.
func DiffPolicies(desired, current []artifactory.Policy) (update, create []artifactory.Policy) {
	for _, want := range desired {
		matches := policiesByName(current, want.Name)
		switch {
		case len(matches) > 1:
			logrus.WithField("policy", want.Name).Error("more than one policy with this name, name should be unique")
		case len(matches) == 0:
			logrus.WithField("policy", want.Name).Debug("found new policy")
			create = append(create, want)
		default:
			have := matches[0]
			if merged, changed := mergePolicy(want, have); changed {
				logrus.WithField("policy", want.Name).Debug("policy changed")
				update = append(update, merged)
			}
		}
	}
	return update, create
}

func policiesByName(policies []artifactory.Policy, name string) []artifactory.Policy {
	var matches []artifactory.Policy
	for _, policy := range policies {
		if policy.Name == name {
			matches = append(matches, policy)
		}
	}
	return matches
}

// mergePolicy applies the desired policy's fields onto the instance's copy
// (keeping its id) and reports whether anything changed.
func mergePolicy(want, have artifactory.Policy) (artifactory.Policy, bool) {
	changed := false
	if want.Enabled != have.Enabled {
		have.Enabled = want.Enabled
		changed = true
	}
	if want.Scope != have.Scope {
		have.Scope = want.Scope
		changed = true
	}
	if want.RepoExclude != nil && !setsEqual(want.RepoExclude, have.RepoExclude) {
		have.RepoExclude = want.RepoExclude
		changed = true
	}
	if want.RepoInclude != nil && !setsEqual(want.RepoInclude, have.RepoInclude) {
		have.RepoInclude = want.RepoInclude
		changed = true
	}
	if want.PkgTypesInclude != nil && !setsEqual(want.PkgTypesInclude, have.PkgTypesInclude) {
		have.PkgTypesInclude = want.PkgTypesInclude
		changed = true
	}
	if want.PolicyAction != have.PolicyAction {
		have.PolicyAction = want.PolicyAction
		changed = true
	}
	if want.ConditionID != have.ConditionID {
		have.ConditionID = want.ConditionID
		changed = true
	}
	if want.Waivers != nil && !waiversEqual(want.Waivers, have.Waivers) {
		have.Waivers = want.Waivers
		changed = true
	}
	if want.LabelWaivers != nil && !labelWaiversEqual(want.LabelWaivers, have.LabelWaivers) {
		have.LabelWaivers = want.LabelWaivers
		changed = true
	}
	if want.NotifyEmails != nil && !setsEqual(want.NotifyEmails, have.NotifyEmails) {
		have.NotifyEmails = want.NotifyEmails
		changed = true
	}
	if want.WaiverRequestConfig != have.WaiverRequestConfig {
		have.WaiverRequestConfig = want.WaiverRequestConfig
		changed = true
	}
	if want.DecisionOwners != nil && !setsEqual(want.DecisionOwners, have.DecisionOwners) {
		have.DecisionOwners = want.DecisionOwners
		changed = true
	}
	return have, changed
}

func setsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]bool, len(a))
	for _, item := range a {
		seen[item] = true
	}
	for _, item := range b {
		if !seen[item] {
			return false
		}
	}
	return true
}

func waiversEqual(want, have []artifactory.Waiver) bool {
	if len(want) != len(have) {
		return false
	}
	for _, wantWaiver := range want {
		found := false
		for _, haveWaiver := range have {
			if haveWaiver.ID != wantWaiver.ID {
				continue
			}
			if found {
				return false
			}
			found = true
			if wantWaiver.PkgType != haveWaiver.PkgType ||
				wantWaiver.PkgName != haveWaiver.PkgName ||
				wantWaiver.AllVersions != haveWaiver.AllVersions ||
				!setsEqual(wantWaiver.PkgVersions, haveWaiver.PkgVersions) ||
				wantWaiver.Justification != haveWaiver.Justification ||
				wantWaiver.CreatedBy != haveWaiver.CreatedBy ||
				wantWaiver.CreatedAt != haveWaiver.CreatedAt {
				return false
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func labelWaiversEqual(want, have []artifactory.LabelWaiver) bool {
	if len(want) != len(have) {
		return false
	}
	for _, wantWaiver := range want {
		found := false
		for _, haveWaiver := range have {
			if haveWaiver.ID != wantWaiver.ID {
				continue
			}
			if found {
				return false
			}
			found = true
			if wantWaiver.Label != haveWaiver.Label ||
				wantWaiver.Justification != haveWaiver.Justification ||
				wantWaiver.CreatedBy != haveWaiver.CreatedBy ||
				wantWaiver.CreatedAt != haveWaiver.CreatedAt {
				return false
			}
		}
		if !found {
			return false
		}
	}
	return true
}
