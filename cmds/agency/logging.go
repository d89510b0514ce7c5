package agency

import (
	"flag"
	"os"
	"strings"
)

// ParseLoggingArgs feeds glog its startup flags from a single string, e.g.
// "-logtostderr=true -v=2".
func ParseLoggingArgs(s string) {
	args := make([]string, 1, 12)
	args[0] = os.Args[0]
	args = append(args, strings.Split(s, " ")...)
	orgArgs := os.Args
	os.Args = args
	flag.Parse()
	os.Args = orgArgs
}
