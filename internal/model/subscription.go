package model

import "time"

// Subscription binds a subscriber address to a topic under a mode. UID is
// the primary key generated at creation time (spec.md §4.5;
// crates/database/src/subscription.rs).
type Subscription struct {
	UID               string
	SubscriberAddress Address
	CreatedAt         time.Time
	Mode              SubscriptionMode
	Topic             Topic
}
