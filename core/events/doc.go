// Package events provides typed publish/subscribe channels for model lifecycle notifications.
//
// Each registered model type owns one Channel. Consumers subscribe to a named event
// (created, destroyed, orphaned) and receive the batch of records the event was published with.
// Subscribe returns a cancel function; handlers run synchronously on the publishing goroutine
// in subscription order.
//
// # Usage
//
//	ch := events.NewChannel[model.Reference]()
//	cancel := ch.Subscribe(events.Created, func(items []model.Reference) { ... })
//	defer cancel()
//	ch.Publish(events.Created, record)
package events
