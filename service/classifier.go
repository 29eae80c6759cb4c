package service

import (
	"fmt"
	"strings"

	"portfolio-photo-sync/config"
	"portfolio-photo-sync/models"
)

// RuleKind selects what an ExclusionRule inspects.
type RuleKind string

const (
	// RuleTag excludes assets carrying the tag (case-insensitive).
	RuleTag RuleKind = "tag"
	// RulePrefix excludes assets whose path starts with the prefix.
	RulePrefix RuleKind = "prefix"
)

// ReasonEligible is the reason attached to assets that pass every rule.
const ReasonEligible = "eligible"

// ExclusionRule is one entry of the classifier's rule table.
type ExclusionRule struct {
	Kind  RuleKind
	Value string
}

// Matches reports whether the rule excludes asset.
func (r ExclusionRule) Matches(asset models.RemoteAsset) bool {
	switch r.Kind {
	case RuleTag:
		return asset.HasTag(r.Value)
	case RulePrefix:
		return strings.HasPrefix(asset.DisplayPath(), r.Value)
	default:
		return false
	}
}

// Reason is the decision tag, e.g. "excluded: tag:project".
func (r ExclusionRule) Reason() string {
	return fmt.Sprintf("excluded: %s:%s", r.Kind, r.Value)
}

// Classifier decides which remote assets belong in the photo catalog.
// Rules are evaluated in order; the first match excludes.
type Classifier struct {
	rules []ExclusionRule
}

// NewClassifier builds a classifier from an ordered rule table. Rules with an
// empty value are dropped.
func NewClassifier(rules ...ExclusionRule) *Classifier {
	kept := make([]ExclusionRule, 0, len(rules))
	for _, r := range rules {
		if strings.TrimSpace(r.Value) == "" {
			continue
		}
		kept = append(kept, r)
	}
	return &Classifier{rules: kept}
}

// NewClassifierFromConfig puts every tag rule ahead of every prefix rule.
func NewClassifierFromConfig(cfg config.SyncConfig) *Classifier {
	rules := make([]ExclusionRule, 0, len(cfg.ExcludedTags)+len(cfg.ExcludedPrefixes))
	for _, tag := range cfg.ExcludedTags {
		rules = append(rules, ExclusionRule{Kind: RuleTag, Value: strings.TrimSpace(tag)})
	}
	for _, prefix := range cfg.ExcludedPrefixes {
		rules = append(rules, ExclusionRule{Kind: RulePrefix, Value: strings.TrimSpace(prefix)})
	}
	return NewClassifier(rules...)
}

// Classify returns the eligibility decision for one asset. It has no side
// effects and never fails.
func (c *Classifier) Classify(asset models.RemoteAsset) models.ClassificationDecision {
	for _, r := range c.rules {
		if r.Matches(asset) {
			return models.ClassificationDecision{Eligible: false, Reason: r.Reason()}
		}
	}
	return models.ClassificationDecision{Eligible: true, Reason: ReasonEligible}
}

// Rules returns a copy of the rule table.
func (c *Classifier) Rules() []ExclusionRule {
	out := make([]ExclusionRule, len(c.rules))
	copy(out, c.rules)
	return out
}
