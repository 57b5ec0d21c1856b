// Package buckets serves the bucket half of the store over HTTP: listing,
// existence checks, creation, (forced) deletion and object listings.
package buckets
