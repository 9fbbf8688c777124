package routing

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"support-router/internal/model"
)

// Table maps an intent to its default bucket. It is immutable after construction.
type Table struct {
	buckets map[model.Intent]model.Bucket
}

// tableFile is the on-disk layout: one list of intents per bucket.
type tableFile struct {
	ZeroCost []string `yaml:"zero_cost"`
	LowCost  []string `yaml:"low_cost"`
	Escalate []string `yaml:"escalate"`
}

// NewTable validates entries and builds a Table.
func NewTable(entries map[model.Intent]model.Bucket) (Table, error) {
	buckets := make(map[model.Intent]model.Bucket, len(entries))
	for intent, bucket := range entries {
		if !intent.Known() {
			return Table{}, fmt.Errorf("%w: intent %q is not part of the taxonomy", ErrConfiguration, intent)
		}
		if bucket == model.BucketUnknown {
			return Table{}, fmt.Errorf("%w: intent %q has no bucket", ErrConfiguration, intent)
		}
		buckets[intent] = bucket
	}
	if len(buckets) == 0 {
		return Table{}, fmt.Errorf("%w: routing table is empty", ErrConfiguration)
	}
	return Table{buckets: buckets}, nil
}

// LoadTable reads a YAML routing table from path.
func LoadTable(path string) (Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("%w: %s: read %q: %v", ErrConfiguration, LogPrefixLoadTable, path, err)
	}
	return ParseTable(raw)
}

// ParseTable decodes a YAML routing table. An intent listed under two buckets is rejected.
func ParseTable(raw []byte) (Table, error) {
	var f tableFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return Table{}, fmt.Errorf("%w: decode routing table: %v", ErrConfiguration, err)
	}

	entries := make(map[model.Intent]model.Bucket)
	add := func(labels []string, bucket model.Bucket) error {
		for _, label := range labels {
			intent := model.NormalizeIntent(label)
			if prev, dup := entries[intent]; dup {
				return fmt.Errorf("%w: intent %q listed under both %s and %s", ErrConfiguration, intent, prev, bucket)
			}
			entries[intent] = bucket
		}
		return nil
	}
	if err := add(f.ZeroCost, model.BucketZeroCost); err != nil {
		return Table{}, err
	}
	if err := add(f.LowCost, model.BucketLowCost); err != nil {
		return Table{}, err
	}
	if err := add(f.Escalate, model.BucketEscalate); err != nil {
		return Table{}, err
	}
	return NewTable(entries)
}

// DefaultTable is the built-in routing of the 27 support intents.
func DefaultTable() Table {
	t, err := NewTable(map[model.Intent]model.Bucket{
		model.IntentCheckPaymentMethods:    model.BucketZeroCost,
		model.IntentCheckRefundPolicy:      model.BucketZeroCost,
		model.IntentCheckCancellationFee:   model.BucketZeroCost,
		model.IntentDeliveryOptions:        model.BucketZeroCost,
		model.IntentDeliveryPeriod:         model.BucketZeroCost,
		model.IntentTrackOrder:             model.BucketZeroCost,
		model.IntentTrackRefund:            model.BucketZeroCost,
		model.IntentContactCustomerService: model.BucketZeroCost,
		model.IntentNewsletterSubscription: model.BucketZeroCost,
		model.IntentCheckInvoice:           model.BucketZeroCost,
		model.IntentGetInvoice:             model.BucketZeroCost,
		model.IntentRecoverPassword:        model.BucketZeroCost,
		model.IntentReview:                 model.BucketZeroCost,

		model.IntentCancelOrder:           model.BucketLowCost,
		model.IntentChangeOrder:           model.BucketLowCost,
		model.IntentChangeShippingAddress: model.BucketLowCost,
		model.IntentCreateAccount:         model.BucketLowCost,
		model.IntentEditAccount:           model.BucketLowCost,
		model.IntentGetRefund:             model.BucketLowCost,
		model.IntentPlaceOrder:            model.BucketLowCost,
		model.IntentRegistrationProblems:  model.BucketLowCost,
		model.IntentSetUpShippingAddress:  model.BucketLowCost,
		model.IntentSwitchAccount:         model.BucketLowCost,

		model.IntentComplaint:         model.BucketEscalate,
		model.IntentContactHumanAgent: model.BucketEscalate,
		model.IntentPaymentIssue:      model.BucketEscalate,
		model.IntentDeleteAccount:     model.BucketEscalate,
	})
	if err != nil {
		panic(err)
	}
	return t
}

// Lookup returns the default bucket of intent.
func (t Table) Lookup(intent model.Intent) (model.Bucket, bool) {
	b, ok := t.buckets[intent]
	return b, ok
}

// Len is the number of routed intents.
func (t Table) Len() int {
	return len(t.buckets)
}

// Intents returns the intents routed to bucket, sorted.
func (t Table) Intents(bucket model.Bucket) []model.Intent {
	var out []model.Intent
	for intent, b := range t.buckets {
		if b == bucket {
			out = append(out, intent)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// All returns every routed intent, sorted.
func (t Table) All() []model.Intent {
	out := make([]model.Intent, 0, len(t.buckets))
	for intent := range t.buckets {
		out = append(out, intent)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
