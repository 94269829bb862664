// Package relay implements the store-and-forward channel relay that carries
// wallet-link requests and callbacks between xprlink and a wallet.
//
// HTTP API
//
//	POST /{channel}
//	    Deliver the request body to every WebSocket subscriber of {channel}.
//	    Answers 200 when delivered, 202 when queued because nobody is
//	    listening yet, 413 when the body exceeds the size limit.
//
//	GET /{channel}   (WebSocket upgrade)
//	    Subscribe to {channel}. Queued messages are flushed first, then live
//	    messages follow as text frames.
//
//	GET /health
//	    Liveness probe; answers "OK".
//
// Behaviour
//
//   - All state is held in memory and lost on process exit.
//   - Each channel queues a bounded number of messages; the oldest is
//     dropped when the queue is full. Messages buffered for a subscriber that
//     goes away return to the queue under the same limit.
//   - A channel with no subscriber and no traffic for the idle TTL (default
//     ten minutes) is dropped with its queue by the periodic sweep.
//   - The relay never inspects payloads. Requests are signed end to end by
//     the client's request key, so the relay is an untrusted middleman.
package relay
