// mapping.go - the Data Mapper: a read-only memory mapping over the TSV
// data file, following the mmap idiom of go-mph's dbreader.go (which
// maps its own offset table the same way via github.com/opencoff/go-mmap).
//
// (c) 2026

package record

import (
	"fmt"
	"os"

	"github.com/opencoff/go-mmap"

	"github.com/StefanKarpinski/bam/internal/errs"
)

// Mapping is an immutable byte span backing the data file for the
// lifetime of the process. Records are identified by plain integer
// offsets into Bytes(), never by pointer.
type Mapping struct {
	fd *os.File
	mm *mmap.Mapping
}

// Open memory-maps path read-only. The mapping -- and the file
// descriptor it holds open -- are released by Close.
func Open(path string) (*Mapping, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, errs.New(errs.ConfigError, err, fmt.Sprintf("open data file %q", path))
	}

	st, err := fd.Stat()
	if err != nil {
		fd.Close()
		return nil, errs.New(errs.ConfigError, err, fmt.Sprintf("stat data file %q", path))
	}
	if st.Size() == 0 {
		fd.Close()
		return nil, errs.New(errs.ConfigError, nil, fmt.Sprintf("data file %q is empty", path))
	}

	m := mmap.New(fd)
	mapping, err := m.Map(st.Size(), 0, mmap.PROT_READ, mmap.F_READAHEAD)
	if err != nil {
		fd.Close()
		return nil, errs.New(errs.ConfigError, err, fmt.Sprintf("mmap data file %q", path))
	}

	return &Mapping{fd: fd, mm: mapping}, nil
}

// Bytes returns the mapped span. The returned slice must not be
// retained past Close.
func (m *Mapping) Bytes() []byte { return m.mm.Bytes() }

// Len returns the length of the mapped span.
func (m *Mapping) Len() int { return len(m.mm.Bytes()) }

// Close unmaps the span and closes the underlying file descriptor.
func (m *Mapping) Close() error {
	if err := m.mm.Unmap(); err != nil {
		return err
	}
	return m.fd.Close()
}
