package mocks

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// presignExpires applies the option functions and reports the expiry they set,
// so expectations can match on a plain time.Duration.
func presignExpires(optFns []func(*s3.PresignOptions)) time.Duration {
	var opts s3.PresignOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	return opts.Expires
}
