package models

import (
	"encoding/json"
	"sort"
)

// SpendTag is the single spend tier assigned to every customer.
type SpendTag string

const (
	SpendTagLow  SpendTag = "low_spender"
	SpendTagMid  SpendTag = "mid_spender"
	SpendTagHigh SpendTag = "high_spender"
	SpendTagVIP  SpendTag = "vip"
)

// SpendTags lists all spend tiers in ascending order of value.
var SpendTags = []SpendTag{SpendTagLow, SpendTagMid, SpendTagHigh, SpendTagVIP}

// ActivityTag is the single lifecycle stage assigned to every customer.
type ActivityTag string

const (
	ActivityTagNew       ActivityTag = "new"
	ActivityTagActive    ActivityTag = "active"
	ActivityTagLoyal     ActivityTag = "loyal"
	ActivityTagChurnRisk ActivityTag = "churn_risk"
	ActivityTagInactive  ActivityTag = "inactive"
)

// ActivityTags lists all lifecycle stages.
var ActivityTags = []ActivityTag{ActivityTagNew, ActivityTagActive, ActivityTagLoyal, ActivityTagChurnRisk, ActivityTagInactive}

// BehaviorTag is a behavioral label derived from order-history patterns.
// A customer carries zero or more of them.
type BehaviorTag string

const (
	BehaviorComboResponder   BehaviorTag = "combo_responder"
	BehaviorWeekendOnly      BehaviorTag = "weekend_only"
	BehaviorCategoryLoyalist BehaviorTag = "category_loyalist"
	BehaviorFamilyDiner      BehaviorTag = "family_diner"
	BehaviorLunchRegular     BehaviorTag = "lunch_regular"
	BehaviorDinnerRegular    BehaviorTag = "dinner_regular"
	BehaviorPriceSensitive   BehaviorTag = "price_sensitive"
	BehaviorPremiumSeeker    BehaviorTag = "premium_seeker"
)

// BehaviorTags lists every behavior label in evaluation order.
var BehaviorTags = []BehaviorTag{
	BehaviorComboResponder,
	BehaviorWeekendOnly,
	BehaviorCategoryLoyalist,
	BehaviorFamilyDiner,
	BehaviorLunchRegular,
	BehaviorDinnerRegular,
	BehaviorPriceSensitive,
	BehaviorPremiumSeeker,
}

// BehaviorTagSet models the behavior tags as a set so comparisons ignore order
// and duplicates cannot creep in.
type BehaviorTagSet map[BehaviorTag]struct{}

func NewBehaviorTagSet(tags ...BehaviorTag) BehaviorTagSet {
	set := make(BehaviorTagSet, len(tags))
	for _, tag := range tags {
		set[tag] = struct{}{}
	}
	return set
}

func (s BehaviorTagSet) Add(tag BehaviorTag) {
	s[tag] = struct{}{}
}

func (s BehaviorTagSet) Has(tag BehaviorTag) bool {
	_, ok := s[tag]
	return ok
}

// Equal reports whether both sets hold exactly the same tags.
func (s BehaviorTagSet) Equal(other BehaviorTagSet) bool {
	if len(s) != len(other) {
		return false
	}
	for tag := range s {
		if _, ok := other[tag]; !ok {
			return false
		}
	}
	return true
}

// Sorted returns the tags as a lexicographically sorted slice, so every
// serialization of the same set is identical.
func (s BehaviorTagSet) Sorted() []BehaviorTag {
	tags := make([]BehaviorTag, 0, len(s))
	for tag := range s {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}

// Strings returns the sorted tags as plain strings.
func (s BehaviorTagSet) Strings() []string {
	sorted := s.Sorted()
	out := make([]string, len(sorted))
	for i, tag := range sorted {
		out[i] = string(tag)
	}
	return out
}

func (s BehaviorTagSet) Clone() BehaviorTagSet {
	clone := make(BehaviorTagSet, len(s))
	for tag := range s {
		clone[tag] = struct{}{}
	}
	return clone
}

func (s BehaviorTagSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

func (s *BehaviorTagSet) UnmarshalJSON(data []byte) error {
	var tags []BehaviorTag
	if err := json.Unmarshal(data, &tags); err != nil {
		return err
	}
	*s = NewBehaviorTagSet(tags...)
	return nil
}

// TagSnapshot captures a customer's full tag state at a point in time.
type TagSnapshot struct {
	SpendTag     SpendTag       `json:"spend_tag"`
	ActivityTag  ActivityTag    `json:"activity_tag"`
	BehaviorTags BehaviorTagSet `json:"behavior_tags"`
}

// Equal compares spend and activity tags directly and behavior tags as sets.
func (t TagSnapshot) Equal(other TagSnapshot) bool {
	return t.SpendTag == other.SpendTag &&
		t.ActivityTag == other.ActivityTag &&
		t.BehaviorTags.Equal(other.BehaviorTags)
}

// Flatten returns spend, activity and sorted behavior tags as one list, the
// shape carried by tag_changed triggers.
func (t TagSnapshot) Flatten() []string {
	flat := make([]string, 0, 2+len(t.BehaviorTags))
	flat = append(flat, string(t.SpendTag), string(t.ActivityTag))
	flat = append(flat, t.BehaviorTags.Strings()...)
	return flat
}
