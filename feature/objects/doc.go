// Package objects serves single objects over HTTP.
//
// # Routes
//
//	PUT    /objects/:bucket/*key          upload the request body
//	GET    /objects/:bucket/*key          download
//	HEAD   /objects/:bucket/*key          metadata only
//	DELETE /objects/:bucket/*key          delete
//	POST   /objects/:bucket/copy?from=&to=
//	GET    /presign/:bucket/*key?method=get|put|delete&expiry=<seconds>
//
// User metadata travels in X-Meta-* headers in both directions. Presigned
// requests are signed by the store backend; an expiry outside (0, 7 days]
// is rejected with 400 before anything is signed.
package objects
