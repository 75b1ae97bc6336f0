package installer

import (
	"compress/bzip2"
	"compress/gzip"
	"io"

	"github.com/pkg/errors"
	"github.com/ulikunitz/xz"
)

func decompress(r io.Reader, c Compression) (io.Reader, error) {
	switch c {
	case Gz:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, errors.Wrap(err, "gzip")
		}
		return zr, nil
	case Bz2:
		return bzip2.NewReader(r), nil
	case Xz:
		xr, err := xz.NewReader(r)
		if err != nil {
			return nil, errors.Wrap(err, "xz")
		}
		return xr, nil
	}
	return nil, errors.Errorf("unknown compression %s", c)
}
