package dump

import (
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
)

var config = spew.ConfigState{
	Indent:         "\t",
	MaxDepth:       20,
	DisableMethods: true,
	SortKeys:       true,
}

// Dump displays arbitrary data on stderr.
func Dump(data any) {
	To(os.Stderr, data)
}

// To writes arbitrary data to the given writer.
func To(writer io.Writer, data any) {
	fmt.Fprintf(writer, "%s", String(data))
}

// String returns arbitrary data as readable string.
func String(data any) string {
	return config.Sdump(data)
}
