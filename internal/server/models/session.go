package models

import "time"

// AggregationSession is the persisted form of an aggregation snapshot.
// Modulus and Sum are decimal strings.
type AggregationSession struct {
	SessionID string
	Modulus   string
	Sum       string
	Count     int64
	UpdatedAt time.Time
}
