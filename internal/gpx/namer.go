package gpx

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Namer hands out output file names for one invocation: the input's base
// name without extension, an underscore and a two digit running index.
type Namer struct {
	Dir  string
	Base string
	next int
}

// NewNamer derives the base name from inputPath. Files go to dir, or to the
// working directory when dir is empty.
func NewNamer(inputPath, dir string) *Namer {
	base := filepath.Base(inputPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return &Namer{Dir: dir, Base: base}
}

// Next returns the next file name and advances the counter.
func (n *Namer) Next() string {
	name := fmt.Sprintf("%s_%02d.gpx", n.Base, n.next)
	n.next++
	if n.Dir == "" {
		return name
	}
	return filepath.Join(n.Dir, name)
}

// Count returns how many names were handed out.
func (n *Namer) Count() int {
	return n.next
}
