package dictfile

import (
	"fmt"
	"io"

	"github.com/DavidVentura/tarkka/errs"
)

// offsetReadSeeker presents a view of rs whose offset 0 is base bytes into
// the real stream, isolating the seekzstd decoder from the header and L1
// directory that precede the seekable stream in every .dict file.
type offsetReadSeeker struct {
	rs   io.ReadSeeker
	base int64
}

func (o *offsetReadSeeker) Read(p []byte) (int, error) {
	return o.rs.Read(p)
}

func (o *offsetReadSeeker) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		abs, err := o.rs.Seek(o.base+offset, io.SeekStart)
		return abs - o.base, err
	case io.SeekCurrent:
		abs, err := o.rs.Seek(offset, io.SeekCurrent)
		return abs - o.base, err
	case io.SeekEnd:
		abs, err := o.rs.Seek(offset, io.SeekEnd)
		return abs - o.base, err
	default:
		return 0, fmt.Errorf("%w: unsupported seek whence %d", errs.ErrIo, whence)
	}
}
