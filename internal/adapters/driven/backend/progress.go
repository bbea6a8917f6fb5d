package backend

import (
	"bytes"
	"io"

	"github.com/custodia-labs/docqa-cli/internal/core/ports/driven"
)

// progressReader reports the share of a request body already read by the transport.
type progressReader struct {
	r        *bytes.Reader
	total    int64
	read     int64
	last     int
	progress driven.ProgressFunc
}

func newProgressReader(body []byte, progress driven.ProgressFunc) *progressReader {
	return &progressReader{
		r:        bytes.NewReader(body),
		total:    int64(len(body)),
		last:     -1,
		progress: progress,
	}
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	p.read += int64(n)
	if p.progress != nil && p.total > 0 {
		pct := int(p.read * 100 / p.total)
		if pct > p.last {
			p.last = pct
			p.progress(pct)
		}
	}
	return n, err
}

var _ io.Reader = (*progressReader)(nil)
