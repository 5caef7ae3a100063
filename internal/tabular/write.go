package tabular

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

const bufSize = 64 * 1024

// FormatRow joins values with single tabs using the shortest representation
// that parses back to the same float64. No terminator is appended.
func FormatRow(row []float64) string {
	buf := make([]byte, 0, 24*len(row))
	for i, v := range row {
		if i > 0 {
			buf = append(buf, '\t')
		}
		buf = strconv.AppendFloat(buf, v, 'g', -1, 64)
	}
	return string(buf)
}

// WriteRows writes one tab-delimited, newline-terminated line per row,
// replacing path.
func WriteRows(path string, rows [][]float64) error {
	return writeAtomic(path, func(w *bufio.Writer) error {
		for _, row := range rows {
			if _, err := w.WriteString(FormatRow(row)); err != nil {
				return err
			}
			if err := w.WriteByte('\n'); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteLines writes lines verbatim, replacing path.
func WriteLines(path string, lines []string) error {
	return writeAtomic(path, func(w *bufio.Writer) error {
		for _, l := range lines {
			if _, err := w.WriteString(l); err != nil {
				return err
			}
		}
		return nil
	})
}

// AppendFile appends the contents of src to dst, creating dst if needed.
func AppendFile(dst, src string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(out, in)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	return n, err
}

// writeAtomic writes through a temporary file in the destination directory
// and renames it over path, so readers never observe a partial file.
func writeAtomic(path string, fill func(*bufio.Writer) error) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	fail := func(err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}

	bw := bufio.NewWriterSize(tmp, bufSize)
	if err := fill(bw); err != nil {
		return fail(err)
	}
	if err := bw.Flush(); err != nil {
		return fail(err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}
