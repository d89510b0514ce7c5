package main

import (
	"github.com/atria-network/atria-agent/cmd"
	"github.com/golang/glog"
)

func main() {
	defer glog.Flush()

	cmd.Execute()
}
