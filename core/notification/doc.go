// Package notification models inbound media host notifications and the single-asset units
// they are split into before being queued.
//
// A notification is kept as raw JSON fields so that anything the processor does not read
// survives the split and the queue round trip unchanged. Units travel inside an envelope
// of the form {"message": <unit>}; push deliveries wrap that envelope once more as base64
// in message.data.
package notification
