// Package queue fans split notification units out to a worker and feeds them back to the
// sync service one at a time.
//
// Three transports are supported:
//
//   - inline: the publisher calls the handler directly (single process deployments, tests)
//   - pubsub: Google Cloud Pub/Sub with an ordering key and MaxOutstandingMessages = 1
//   - kafka: a single-key writer and a consumer group reader with commit after settle
//
// Handlers mark unrecoverable failures with Permanent; the consumer acknowledges those so
// they are not redelivered forever.
package queue
