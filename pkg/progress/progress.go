package progress

import "io"

// Reader wraps an upload body and reports percent-complete as bytes are
// consumed. Reported values never decrease and never exceed 100, even when
// the writer delivers more bytes than the declared total.
type Reader struct {
	r          io.Reader
	total      int64
	read       int64
	lastPct    int
	onProgress func(pct int)
}

// NewReader returns a Reader over r for a body of total bytes. onProgress is
// invoked with the new percentage whenever it increases; it may be nil. A
// non-positive total disables reporting until Complete.
func NewReader(r io.Reader, total int64, onProgress func(pct int)) *Reader {
	return &Reader{
		r:          r,
		total:      total,
		lastPct:    -1,
		onProgress: onProgress,
	}
}

func (p *Reader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.read += int64(n)
		p.report()
	}
	return n, err
}

// Complete forces the final 100% signal, regardless of how many bytes the
// source actually delivered.
func (p *Reader) Complete() {
	p.read = p.total
	if p.total <= 0 {
		p.total = 1
		p.read = 1
	}
	p.report()
}

func (p *Reader) report() {
	if p.onProgress == nil || p.total <= 0 {
		return
	}

	pct := int(p.read * 100 / p.total)
	if pct > 100 {
		pct = 100
	}
	if pct > p.lastPct {
		p.lastPct = pct
		p.onProgress(pct)
	}
}
