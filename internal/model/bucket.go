package model

import (
	"fmt"
	"strings"
)

// Bucket is the response strategy a query is routed to.
type Bucket int

const (
	BucketUnknown Bucket = iota
	BucketZeroCost
	BucketLowCost
	BucketEscalate
)

// Buckets lists the routable buckets in cost order.
var Buckets = []Bucket{BucketZeroCost, BucketLowCost, BucketEscalate}

func (b Bucket) String() string {
	switch b {
	case BucketZeroCost:
		return "ZERO_COST"
	case BucketLowCost:
		return "LOW_COST"
	case BucketEscalate:
		return "ESCALATE"
	default:
		return "UNKNOWN"
	}
}

// CostTier returns the human facing cost tier of b.
func (b Bucket) CostTier() CostTier {
	switch b {
	case BucketZeroCost:
		return CostTierZero
	case BucketLowCost:
		return CostTierLow
	case BucketEscalate:
		return CostTierHigh
	default:
		return ""
	}
}

// Description is the short operator description shown by the intents endpoint.
func (b Bucket) Description() string {
	switch b {
	case BucketZeroCost:
		return "No LLM (static template)"
	case BucketLowCost:
		return "RAG + small LLM"
	case BucketEscalate:
		return "Big LLM / human escalation"
	default:
		return ""
	}
}

// ParseBucket accepts the canonical names plus the legacy BUCKET_A/B/C aliases.
func ParseBucket(s string) (Bucket, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ZERO_COST", "BUCKET_A":
		return BucketZeroCost, nil
	case "LOW_COST", "BUCKET_B":
		return BucketLowCost, nil
	case "ESCALATE", "BUCKET_C":
		return BucketEscalate, nil
	default:
		return BucketUnknown, fmt.Errorf("unknown bucket %q", s)
	}
}

func (b Bucket) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b *Bucket) UnmarshalText(text []byte) error {
	parsed, err := ParseBucket(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// CostTier is the coarse cost class of a bucket.
type CostTier string

const (
	CostTierZero CostTier = "Zero"
	CostTierLow  CostTier = "Low"
	CostTierHigh CostTier = "High"
)
