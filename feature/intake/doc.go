// Package intake receives media host notifications.
//
// Every inbound body is archived to object storage when an archive is configured, so that it
// can be replayed later. Only resource_metadata_changed notifications are acted on: they are
// split into one unit per asset (keys sorted, publicId injected) and handed to the configured
// queue.Publisher in order. The inline publisher processes the units before the response is
// written; Pub/Sub and Kafka deliver them to a worker.
//
// # HTTP Endpoints
//
//   - POST /notifications : Accepts a notification.
package intake
