// Package props persists string cache contents as newline-separated
// key=value text. It is pure serialization: entries are written in
// whatever order the source sequence yields and reloaded by re-inserting
// parsed pairs, so it carries no ordering semantics of its own and never
// affects an engine's eviction behavior.
//
// Format rules, one property per line:
//
//	key1=value1
//	key2=value2
//
// On load, trailing empty fields are dropped and lines without both a
// key and a value are skipped. A line with several separators keeps the
// first field as the key and the last as the value.
package props

import (
	"bufio"
	"io"
	"iter"
	"os"
	"strings"
)

// Separator splits key from value within a line.
const Separator = "="

// Save writes entries to w, one key=value line per entry. Keys or values
// containing the separator or a newline will not round-trip; the format
// is deliberately that simple.
func Save(w io.Writer, entries iter.Seq2[string, string]) error {
	bw := bufio.NewWriter(w)
	for k, v := range entries {
		if _, err := bw.WriteString(k + Separator + v + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// SaveFile writes entries to the file at path, truncating any previous
// contents.
func SaveFile(path string, entries iter.Seq2[string, string]) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Save(f, entries); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Load reads key=value lines from r and hands each parsed pair to put,
// typically an engine's Put wrapped in a closure. Malformed lines are
// skipped, not errors.
func Load(r io.Reader, put func(key, value string)) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := strings.Split(sc.Text(), Separator)
		for len(fields) > 0 && fields[len(fields)-1] == "" {
			fields = fields[:len(fields)-1]
		}
		if len(fields) < 2 {
			continue
		}
		put(fields[0], fields[len(fields)-1])
	}
	return sc.Err()
}

// LoadFile reads key=value lines from the file at path.
func LoadFile(path string, put func(key, value string)) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Load(f, put)
}
