package objectstore

import (
	"bytes"
	"errors"
	"io"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

// sniffLen matches mimetype's default read limit.
const sniffLen = 3072

// validateExpiry rejects expiries the store would refuse, without a round trip.
func validateExpiry(op, bucket, key string, expiry time.Duration) error {
	if expiry <= 0 {
		return configError(op, bucket, key, "expiry must be positive, got %s", expiry)
	}
	if expiry > MaxPresignExpiry {
		return configError(op, bucket, key, "expiry %s exceeds maximum %s", expiry, MaxPresignExpiry)
	}
	return nil
}

// effectivePartSize picks the requested part size, then the configured one,
// never going below MinPartSize.
func effectivePartSize(requested, configured int64) int64 {
	size := requested
	if size <= 0 {
		size = configured
	}
	if size < MinPartSize {
		size = MinPartSize
	}
	return size
}

// readFirstPart reads up to partSize bytes from r. last reports that r ended
// within them. A positive sizeHint below partSize bounds the initial buffer;
// the buffer grows to a full part when r turns out longer than the hint.
func readFirstPart(r io.Reader, partSize, sizeHint int64) (data []byte, last bool, err error) {
	size := partSize
	if sizeHint > 0 && sizeHint < partSize {
		size = sizeHint + 1
	}

	buf := make([]byte, size)
	n, err := io.ReadFull(r, buf)
	if err == nil && size < partSize {
		buf = append(buf, make([]byte, partSize-size)...)
		var m int
		m, err = io.ReadFull(r, buf[n:])
		n += m
	}

	switch {
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return buf[:n], true, nil
	case err != nil:
		return nil, false, err
	}
	return buf, false, nil
}

// payload wraps an upload body and remembers the first read failure so that
// SDK errors caused by the local source can be reported as KindIO.
type payload struct {
	r   io.Reader
	n   int64
	err error
}

// newPayload wraps r. When contentType is empty the head of the stream is
// sniffed and replayed in front of the rest.
func newPayload(r io.Reader, contentType string) (*payload, string, error) {
	if contentType != "" {
		return &payload{r: r}, contentType, nil
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, "", err
	}
	head = head[:n]

	return &payload{r: io.MultiReader(bytes.NewReader(head), r)}, mimetype.Detect(head).String(), nil
}

func (p *payload) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	p.n += int64(n)
	if err != nil && !errors.Is(err, io.EOF) && p.err == nil {
		p.err = err
	}
	return n, err
}

// failure picks the error to surface for an upload: the local read error
// when there was one, otherwise the SDK error.
func (p *payload) failure(op, bucket, key string, sdkErr error, classify func(op, bucket, key string, err error) error) error {
	if p.err != nil {
		return ioError(op, bucket, key, p.err)
	}
	return classify(op, bucket, key, sdkErr)
}

func expiresAt(expiry time.Duration) time.Time {
	return time.Now().Add(expiry).UTC()
}
