package deltaf

import (
	"bufio"
	"compress/bzip2"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

type DataType byte

const (
	DataTypeInvalid DataType = iota
	DataTypeNoCompression
	DataTypeGzip
	DataTypeZip
	DataTypeXZ
	DataTypeZ
	DataTypeBZip2
)

var byteCodeSigs = map[DataType][]byte{
	DataTypeGzip:  {0x1f, 0x8b, 0x08},
	DataTypeZip:   {0x50, 0x4b, 0x03, 0x04},
	DataTypeXZ:    {0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00},
	DataTypeZ:     {0x1f, 0x9d},
	DataTypeBZip2: {0x42, 0x5a, 0x68},
}

// Suffixes that may trail a recording's name when it was exported compressed.
var compressionSuffixes = []string{".gz", ".xz", ".bz2", ".zip"}

// DetectDataType checks the leading bytes of a stream against a set of known
// signatures. Byte code signatures from
// https://stackoverflow.com/a/19127748/199475
func DetectDataType(head []byte) DataType {
Outer:
	for dt, sig := range byteCodeSigs {
		if len(head) < len(sig) {
			continue
		}
		for position := range sig {
			if head[position] != sig[position] {
				continue Outer
			}
		}
		return dt
	}

	return DataTypeNoCompression
}

// MaybeDecompress wraps rc with a decompressor if its content is compressed.
// Detection peeks rather than seeks, so it works for network streams too.
// Closing the result closes rc.
func MaybeDecompress(rc io.ReadCloser) (io.ReadCloser, error) {
	br := bufio.NewReader(rc)
	head, err := br.Peek(6)
	if err != nil && err != io.EOF && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, pfx.Err(err)
	}

	var r io.Reader

	switch DetectDataType(head) {
	case DataTypeGzip:
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, pfx.Err(err)
		}
		return &chainCloser{Reader: gz, closers: []io.Closer{gz, rc}}, nil
	case DataTypeZ:
		// LZW with the .Z header is not something compress/lzw can read.
		return nil, pfx.Err(fmt.Errorf("unix compress (.Z) input is not supported, recompress with gzip or xz"))
	case DataTypeZip:
		// Only the first entry of an archive is read.
		zr := zipstream.NewReader(br)
		if _, err := zr.Next(); err != nil {
			return nil, pfx.Err(err)
		}
		r = zr
	case DataTypeBZip2:
		r = bzip2.NewReader(br)
	case DataTypeXZ:
		xr, err := xz.NewReader(br, 0)
		if err != nil {
			return nil, pfx.Err(err)
		}
		r = xr
	default:
		r = br
	}

	return &chainCloser{Reader: r, closers: []io.Closer{rc}}, nil
}

// TrimCompressionSuffix strips a trailing compression extension, if any, so
// that "a.csv.gz" is treated like "a.csv".
func TrimCompressionSuffix(name string) string {
	for _, suffix := range compressionSuffixes {
		if strings.HasSuffix(name, suffix) {
			return strings.TrimSuffix(name, suffix)
		}
	}

	return name
}

// chainCloser closes every layer of a decorated reader, innermost last.
type chainCloser struct {
	io.Reader
	closers []io.Closer
}

func (c *chainCloser) Close() error {
	var first error
	for _, cl := range c.closers {
		if err := cl.Close(); err != nil && first == nil {
			first = err
		}
	}

	return first
}
