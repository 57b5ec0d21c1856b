// Package uploads lets HTTP clients run presigned multipart uploads.
//
// A client starts a session, asks for one signed part URL at a time, PUTs
// each part straight to the store, then completes (or aborts) the session
// with the part ETags it collected. Sessions live in memory and are lost on
// restart; the store keeps the incomplete upload until it is aborted or
// expired by a lifecycle rule.
package uploads
