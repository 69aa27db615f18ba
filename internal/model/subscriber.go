package model

// Subscriber is a blockchain address that owns zero or more devices and
// subscriptions. It carries no fields beyond the address itself; devices
// and subscriptions are looked up by it.
type Subscriber struct {
	Address Address
}
